package schemas

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-cataloger/svcs/schemas")

// ErrFailedCreatingSchema is the only inference error that crosses the
// package boundary. The per format causes below are wrapped into it so
// callers never see an underlying parser error type.
var ErrFailedCreatingSchema = errors.New("failed creating schema")

var (
	errUnsupportedFileType  = errors.New("unsupported file type")
	errMalformedJSON        = errors.New("malformed json")
	errMalformedSpreadsheet = errors.New("malformed spreadsheet")
)

//go:generate moq -rm -out schemasvc_mock.go . SchemaInferencer

// SchemaInferencer turns the content of an uploaded or downloaded file
// into the initial schema document for a dataset: an ordered list of
// property names with null types and descriptions.
type SchemaInferencer interface {
	Infer(ctx context.Context, file io.Reader, filename string) (domain.SchemaDocument, error)
}

func NewSchemaInferencer(logger zerolog.Logger) SchemaInferencer {
	return &schemaInferencer{log: logger}
}

type schemaInferencer struct {
	log zerolog.Logger
}

func (s *schemaInferencer) Infer(ctx context.Context, file io.Reader, filename string) (domain.SchemaDocument, error) {
	var err error
	_, span := tracer.Start(ctx, "infer-schema")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, _, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, s.log, ctx)

	var names []string

	switch strings.ToLower(path.Ext(filename)) {
	case ".csv":
		names, err = csvPropertyNames(file)
	case ".json":
		names, err = jsonPropertyNames(file)
	case ".xlsx":
		names, err = xlsxPropertyNames(file)
	default:
		err = fmt.Errorf("%w: %s", errUnsupportedFileType, filename)
	}

	if err != nil {
		log.Error().Err(err).Msgf("failed to infer a schema from %s", filename)
		err = fmt.Errorf("%w: %s", ErrFailedCreatingSchema, err.Error())
		return domain.SchemaDocument{}, err
	}

	return buildSchema(names), nil
}

// buildSchema wraps the extracted names in the initial schema document.
// Types and descriptions start out null and are filled in later by the
// owner, the names themselves are fixed from here on.
func buildSchema(names []string) domain.SchemaDocument {
	doc := domain.SchemaDocument{
		Properties: make([]domain.SchemaProperty, 0, len(names)),
	}

	for _, name := range names {
		doc.Properties = append(doc.Properties, domain.SchemaProperty{Name: name})
	}

	return doc
}

// csvPropertyNames reads the first line and splits it on commas. Quoting
// is not handled, so a header containing an embedded comma will be
// mis-split. This is a known limitation of the format contract.
func csvPropertyNames(file io.Reader) ([]string, error) {
	header, err := bufio.NewReader(file).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}

	line := strings.TrimRight(header, "\r\n")
	if line == "" {
		return nil, errors.New("csv file has no header line")
	}

	return strings.Split(line, ","), nil
}

// tabularExport matches the envelope that some portals wrap their table
// exports in, with the column list under meta.view.columns.
type tabularExport struct {
	Meta *struct {
		View *struct {
			Columns []struct {
				Name string `json:"name"`
			} `json:"columns"`
		} `json:"view"`
	} `json:"meta"`
}

func jsonPropertyNames(file io.Reader) ([]string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	export := tabularExport{}
	if err := json.Unmarshal(content, &export); err == nil {
		if export.Meta != nil && export.Meta.View != nil {
			names := []string{}
			for _, column := range export.Meta.View.Columns {
				names = append(names, column.Name)
			}
			return names, nil
		}
	}

	records := []json.RawMessage{}
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("%w: %s", errMalformedJSON, err.Error())
	}

	// The records may be sparse and heterogeneous, so the schema is the
	// union of all keys seen, in first seen order to keep the output
	// deterministic.
	names := []string{}
	seen := map[string]struct{}{}

	for _, record := range records {
		var name string
		if err := json.Unmarshal(record, &name); err == nil {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
			continue
		}

		keys, err := objectKeysInOrder(record)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errMalformedJSON, err.Error())
		}

		for _, key := range keys {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				names = append(names, key)
			}
		}
	}

	return names, nil
}

// objectKeysInOrder decodes a single json object and returns its keys in
// document order, which map based unmarshalling would scramble.
func objectKeysInOrder(record json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(record))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("element is neither a string nor an object")
	}

	keys := []string{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("unexpected token in object")
		}
		keys = append(keys, key)

		// consume the value belonging to this key
		value := json.RawMessage{}
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
	}

	return keys, nil
}

func xlsxPropertyNames(file io.Reader) ([]string, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errMalformedSpreadsheet, err.Error())
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", errMalformedSpreadsheet)
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errMalformedSpreadsheet, err.Error())
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: first sheet has no rows", errMalformedSpreadsheet)
	}

	return rows[0], nil
}
