package schemas

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

func TestInferFromCSVPreservesHeaderOrder(t *testing.T) {
	is, inferencer := testSetup(t)

	doc, err := inferencer.Infer(context.Background(), strings.NewReader("a,b,c\n1,2,3\n"), "data.csv")
	is.NoErr(err)

	is.Equal(doc.PropertyNames(), []string{"a", "b", "c"})
	is.Equal(doc.Title, nil)
	is.Equal(doc.Type, nil)

	for _, p := range doc.Properties {
		is.Equal(p.Type, nil)
		is.Equal(p.Description, nil)
	}
}

func TestInferFromCSVIsCaseInsensitiveOnExtension(t *testing.T) {
	is, inferencer := testSetup(t)

	doc, err := inferencer.Infer(context.Background(), strings.NewReader("x,y\n"), "DATA.CSV")
	is.NoErr(err)
	is.Equal(doc.PropertyNames(), []string{"x", "y"})
}

func TestInferFromHeterogeneousJSONRecords(t *testing.T) {
	is, inferencer := testSetup(t)

	doc, err := inferencer.Infer(context.Background(), strings.NewReader(`[{"x":1,"y":2},{"y":3,"z":4}]`), "data.json")
	is.NoErr(err)

	// union of all keys, in first seen order
	is.Equal(doc.PropertyNames(), []string{"x", "y", "z"})
}

func TestInferFromJSONStringArray(t *testing.T) {
	is, inferencer := testSetup(t)

	doc, err := inferencer.Infer(context.Background(), strings.NewReader(`["col1","col2","col1"]`), "data.json")
	is.NoErr(err)
	is.Equal(doc.PropertyNames(), []string{"col1", "col2"})
}

func TestInferFromTabularExportJSON(t *testing.T) {
	is, inferencer := testSetup(t)

	input := `{"meta":{"view":{"columns":[{"name":"col1"},{"name":"col2"}]}}}`
	doc, err := inferencer.Infer(context.Background(), strings.NewReader(input), "data.json")
	is.NoErr(err)
	is.Equal(doc.PropertyNames(), []string{"col1", "col2"})
}

func TestInferFromXLSXReadsFirstRowOfFirstSheet(t *testing.T) {
	is, inferencer := testSetup(t)

	workbook := excelize.NewFile()
	is.NoErr(workbook.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "name", "amount"}))
	is.NoErr(workbook.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "first", 3.50}))

	buf, err := workbook.WriteToBuffer()
	is.NoErr(err)

	doc, err := inferencer.Infer(context.Background(), buf, "data.xlsx")
	is.NoErr(err)
	is.Equal(doc.PropertyNames(), []string{"id", "name", "amount"})
}

func TestUnsupportedExtensionFailsCreatingSchema(t *testing.T) {
	is, inferencer := testSetup(t)

	_, err := inferencer.Infer(context.Background(), strings.NewReader("whatever"), "data.txt")
	is.True(errors.Is(err, ErrFailedCreatingSchema))
}

func TestMalformedJSONFailsCreatingSchema(t *testing.T) {
	is, inferencer := testSetup(t)

	_, err := inferencer.Infer(context.Background(), strings.NewReader(`{"not":"a sequence"}`), "data.json")
	is.True(errors.Is(err, ErrFailedCreatingSchema))

	_, err = inferencer.Infer(context.Background(), strings.NewReader(`[{"x":1}`), "data.json")
	is.True(errors.Is(err, ErrFailedCreatingSchema))
}

func TestMalformedSpreadsheetFailsCreatingSchema(t *testing.T) {
	is, inferencer := testSetup(t)

	_, err := inferencer.Infer(context.Background(), strings.NewReader("this is not a zip archive"), "data.xlsx")
	is.True(errors.Is(err, ErrFailedCreatingSchema))
}

func testSetup(t *testing.T) (*is.I, SchemaInferencer) {
	return is.New(t), NewSchemaInferencer(zerolog.Nop())
}
