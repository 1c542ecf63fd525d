package datasets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/fetcher"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/schemas"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/database"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/persistence"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-cataloger/svcs/datasets")

// ErrNotAllowed is returned when an anonymous requester tries to create a
// dataset or edit a schema.
var ErrNotAllowed = errors.New("operation requires an authenticated publisher")

// ErrInvalidInput is returned when the creation request is missing
// required fields. The wrapped message names the offending field.
var ErrInvalidInput = errors.New("invalid dataset input")

var (
	// ErrMissingTitle wraps ErrInvalidInput for a request without a title.
	ErrMissingTitle = fmt.Errorf("%w: a title is required", ErrInvalidInput)
	// ErrMissingDownloadURL wraps ErrInvalidInput for a request without a
	// source to fetch from.
	ErrMissingDownloadURL = fmt.Errorf("%w: a download url is required", ErrInvalidInput)
)

// NewDatasetRequest is the input to a dataset creation: descriptive POD
// fields plus the source the data file is fetched from.
type NewDatasetRequest struct {
	Title        string
	Description  string
	Keywords     []string
	AccessLevel  string
	BureauCodes  []string
	ProgramCodes []string
	License      string
	Rights       string
	Spatial      string
	Temporal     string
	Languages    []string

	DownloadURL  string
	SFTPUsername string
	SFTPPassword string
}

//go:generate moq -rm -out datasetsvc_mock.go . DatasetService

type DatasetService interface {
	Create(ctx context.Context, r domain.Requester, input NewDatasetRequest) (*domain.Dataset, error)
	GetAll(ctx context.Context, r domain.Requester, limit, offset int) ([]domain.Dataset, error)
	GetByIdentifier(ctx context.Context, r domain.Requester, identifier string) (*domain.Dataset, error)
	GetSchemaByID(ctx context.Context, r domain.Requester, id uint) (*domain.SchemaDocument, error)
	UpdateSchema(ctx context.Context, r domain.Requester, id uint, doc domain.SchemaDocument) error
}

func NewDatasetService(logger zerolog.Logger, db database.Datastore, files fetcher.FileFetcher, inference schemas.SchemaInferencer, baseURL string) DatasetService {
	return &datasetSvc{
		log:       logger,
		db:        db,
		files:     files,
		inference: inference,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

type datasetSvc struct {
	log       zerolog.Logger
	db        database.Datastore
	files     fetcher.FileFetcher
	inference schemas.SchemaInferencer
	baseURL   string
}

func (svc *datasetSvc) Create(ctx context.Context, r domain.Requester, input NewDatasetRequest) (*domain.Dataset, error) {
	var err error
	ctx, span := tracer.Start(ctx, "create-dataset")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	if r.IsAnonymous() {
		err = ErrNotAllowed
		return nil, err
	}

	if input.Title == "" {
		err = ErrMissingTitle
		return nil, err
	}

	if input.DownloadURL == "" {
		err = ErrMissingDownloadURL
		return nil, err
	}

	filename, err := fileNameFromURL(input.DownloadURL)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		return nil, err
	}

	creds := fetcher.Credentials{Username: input.SFTPUsername, Password: input.SFTPPassword}

	file, err := svc.files.Fetch(ctx, input.DownloadURL, creds)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc, err := svc.inference.Infer(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	record := &persistence.Dataset{
		Identifier:   uuid.NewString(),
		MType:        "dcat:Dataset",
		Title:        input.Title,
		Description:  input.Description,
		Keywords:     persistence.JoinList(input.Keywords),
		AccessLevel:  input.AccessLevel,
		BureauCodes:  persistence.JoinList(input.BureauCodes),
		ProgramCodes: persistence.JoinList(input.ProgramCodes),
		License:      input.License,
		Rights:       input.Rights,
		Spatial:      input.Spatial,
		Temporal:     input.Temporal,
		Languages:    persistence.JoinList(input.Languages),
		PublisherID:  r.ID,
		Schema:       persistence.Schema{Data: string(data)},
		Distributions: []persistence.Distribution{
			{
				MType:       "dcat:Distribution",
				Title:       filename,
				DownloadURL: input.DownloadURL,
				MediaType:   mediaTypeForFile(filename),
			},
		},
	}
	record.Complete = requiredPODFieldsFilled(record)

	record, err = svc.db.CreateDataset(record)
	if err != nil {
		log.Error().Err(err).Msg("failed to persist dataset")
		return nil, err
	}

	dataset := svc.toDomain(*record)
	return &dataset, nil
}

func (svc *datasetSvc) GetAll(ctx context.Context, r domain.Requester, limit, offset int) ([]domain.Dataset, error) {
	records, err := svc.db.GetDatasets(r, limit, offset)
	if err != nil {
		return nil, err
	}

	datasets := make([]domain.Dataset, 0, len(records))
	for _, record := range records {
		datasets = append(datasets, svc.toDomain(record))
	}

	return datasets, nil
}

func (svc *datasetSvc) GetByIdentifier(ctx context.Context, r domain.Requester, identifier string) (*domain.Dataset, error) {
	record, err := svc.db.GetDatasetByIdentifier(r, identifier)
	if err != nil {
		return nil, err
	}

	dataset := svc.toDomain(*record)
	return &dataset, nil
}

func (svc *datasetSvc) GetSchemaByID(ctx context.Context, r domain.Requester, id uint) (*domain.SchemaDocument, error) {
	record, published, err := svc.db.GetSchemaByID(r, id)
	if err != nil {
		return nil, err
	}

	doc := &domain.SchemaDocument{}
	if err := json.Unmarshal([]byte(record.Data), doc); err != nil {
		return nil, fmt.Errorf("stored schema document is not valid json: %w", err)
	}

	// published schemas advertise their meta identity
	if published {
		doc.Schema = "http://json-schema.org/draft-07/schema#"
		doc.ID = fmt.Sprintf("%s/api/schemas/%d", svc.baseURL, record.ID)
	}

	return doc, nil
}

func (svc *datasetSvc) UpdateSchema(ctx context.Context, r domain.Requester, id uint, doc domain.SchemaDocument) error {
	var err error
	_, span := tracer.Start(ctx, "update-schema")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if r.IsAnonymous() {
		err = ErrNotAllowed
		return err
	}

	err = svc.db.UpdateSchema(r, id, doc)
	return err
}

func (svc *datasetSvc) toDomain(record persistence.Dataset) domain.Dataset {
	dataset := domain.Dataset{
		ID:                  record.ID,
		Identifier:          record.Identifier,
		Title:               record.Title,
		Description:         record.Description,
		Keywords:            persistence.SplitList(record.Keywords),
		Modified:            record.UpdatedAt,
		AccessLevel:         record.AccessLevel,
		BureauCodes:         persistence.SplitList(record.BureauCodes),
		ProgramCodes:        persistence.SplitList(record.ProgramCodes),
		License:             record.License,
		Rights:              record.Rights,
		Spatial:             record.Spatial,
		Temporal:            record.Temporal,
		AccrualPeriodicity:  record.AccrualPeriodicity,
		ConformsTo:          record.ConformsTo,
		DataQuality:         record.DataQuality,
		DescribedBy:         fmt.Sprintf("%s/api/schemas/%d", svc.baseURL, record.Schema.ID),
		DescribedByType:     record.DescribedByType,
		IsPartOf:            record.IsPartOf,
		Issued:              record.Issued,
		Languages:           persistence.SplitList(record.Languages),
		LandingPage:         record.LandingPage,
		PrimaryITInvestment: record.PrimaryITInvestment,
		References:          record.References,
		SystemOfRecords:     record.SystemOfRecords,
		Theme:               record.Theme,
		Complete:            record.Complete,
		Published:           record.Published,
		SchemaID:            record.Schema.ID,
		Publisher: domain.Publisher{
			ID:       record.Publisher.ID,
			Username: record.Publisher.Username,
			Email:    record.Publisher.Email,
			Bureau:   record.Publisher.BureauID,
			Division: record.Publisher.DivisionID,
			Office:   record.Publisher.OfficeID,
		},
	}

	for _, d := range record.Distributions {
		dataset.Distributions = append(dataset.Distributions, domain.Distribution{
			Title:           d.Title,
			Description:     d.Description,
			DownloadURL:     d.DownloadURL,
			Format:          d.DFormat,
			AccessURL:       d.AccessURL,
			DescribedBy:     d.DescribedBy,
			DescribedByType: d.DescribedByType,
			ConformsTo:      d.ConformsTo,
			MediaType:       d.MediaType,
		})
	}

	return dataset
}

// requiredPODFieldsFilled reports whether every field the external schema
// requires has a value. Incomplete datasets stay out of the catalog.
func requiredPODFieldsFilled(record *persistence.Dataset) bool {
	required := []string{
		record.Title, record.Description, record.Keywords,
		record.AccessLevel, record.BureauCodes, record.ProgramCodes,
		record.License,
	}

	for _, value := range required {
		if value == "" {
			return false
		}
	}

	return true
}

func fileNameFromURL(rawURL string) (string, error) {
	source, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	name := path.Base(source.Path)
	if name == "." || name == "/" {
		return "", errors.New("download url has no file name")
	}

	return name, nil
}

func mediaTypeForFile(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return ""
	}
}
