package datasets

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/fetcher"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/schemas"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/database"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/persistence"
	"github.com/rs/zerolog"
)

func TestCreateDatasetIngestsFetchedFile(t *testing.T) {
	is, db, files, svc := testSetup(t, "a,b,c\n1,2,3\n")
	publisher := createPublisher(is, db, "u1")

	dataset, err := svc.Create(context.Background(), domain.Requester{ID: publisher.ID}, newRequest())
	is.NoErr(err)

	is.Equal(len(files.FetchCalls()), 1)
	is.True(dataset.Identifier != "")
	is.Equal(dataset.Complete, true)
	is.Equal(dataset.Published, false)

	is.Equal(len(dataset.Distributions), 1)
	is.Equal(dataset.Distributions[0].MediaType, "text/csv")
	is.Equal(dataset.Distributions[0].Title, "daily-counts.csv")
	is.Equal(dataset.Distributions[0].DownloadURL, "https://data.example.gov/daily-counts.csv")

	doc, err := svc.GetSchemaByID(context.Background(), domain.Requester{ID: publisher.ID}, dataset.SchemaID)
	is.NoErr(err)
	is.Equal(doc.PropertyNames(), []string{"a", "b", "c"})
	is.Equal(doc.Schema, "") // meta keys only appear once published
}

func TestCreateDatasetWithoutRequiredFieldsIsIncomplete(t *testing.T) {
	is, db, _, svc := testSetup(t, "a,b\n")
	publisher := createPublisher(is, db, "u1")

	input := newRequest()
	input.License = ""

	dataset, err := svc.Create(context.Background(), domain.Requester{ID: publisher.ID}, input)
	is.NoErr(err)
	is.Equal(dataset.Complete, false)

	// incomplete datasets stay invisible, even to an admin list
	datasets, err := svc.GetAll(context.Background(), domain.Requester{Admin: true}, 0, 0)
	is.NoErr(err)
	is.Equal(len(datasets), 0)
}

func TestCreateRequiresAuthentication(t *testing.T) {
	is, _, files, svc := testSetup(t, "a,b\n")

	_, err := svc.Create(context.Background(), domain.Requester{}, newRequest())
	is.True(errors.Is(err, ErrNotAllowed))
	is.Equal(len(files.FetchCalls()), 0)
}

func TestNothingIsPersistedWhenInferenceFails(t *testing.T) {
	is, db, _, svc := testSetup(t, "this is not json")
	publisher := createPublisher(is, db, "u1")

	input := newRequest()
	input.DownloadURL = "https://data.example.gov/export.json"

	_, err := svc.Create(context.Background(), domain.Requester{ID: publisher.ID}, input)
	is.True(errors.Is(err, schemas.ErrFailedCreatingSchema))

	datasets, err := svc.GetAll(context.Background(), domain.Requester{Admin: true}, 0, 0)
	is.NoErr(err)
	is.Equal(len(datasets), 0)
}

func TestFetchedFileIsClosedAfterIngest(t *testing.T) {
	is, db, files, svc := testSetup(t, "a,b\n")
	publisher := createPublisher(is, db, "u1")

	closed := false
	files.FetchFunc = func(ctx context.Context, rawURL string, creds fetcher.Credentials) (io.ReadCloser, error) {
		return &closeTracker{Reader: strings.NewReader("a,b\n"), closed: &closed}, nil
	}

	_, err := svc.Create(context.Background(), domain.Requester{ID: publisher.ID}, newRequest())
	is.NoErr(err)
	is.True(closed)
}

func TestSchemaOfPublishedDatasetCarriesMetaKeys(t *testing.T) {
	is, db, _, svc := testSetup(t, "a,b\n")
	publisher := createPublisher(is, db, "u1")

	dataset, err := svc.Create(context.Background(), domain.Requester{ID: publisher.ID}, newRequest())
	is.NoErr(err)

	publish(is, db, dataset.Identifier, publisher.ID)

	doc, err := svc.GetSchemaByID(context.Background(), domain.Requester{ID: publisher.ID}, dataset.SchemaID)
	is.NoErr(err)
	is.Equal(doc.Schema, "http://json-schema.org/draft-07/schema#")
	is.True(strings.HasSuffix(doc.ID, "/api/schemas/1"))
}

func TestUpdateSchemaRejectsAnonymousRequester(t *testing.T) {
	is, _, _, svc := testSetup(t, "a,b\n")

	err := svc.UpdateSchema(context.Background(), domain.Requester{}, 1, domain.SchemaDocument{})
	is.True(errors.Is(err, ErrNotAllowed))
}

func newRequest() NewDatasetRequest {
	return NewDatasetRequest{
		Title:        "Daily Counts",
		Description:  "Daily counts of things",
		Keywords:     []string{"counts", "daily"},
		AccessLevel:  "public",
		BureauCodes:  []string{"015:11"},
		ProgramCodes: []string{"015:001"},
		License:      "https://creativecommons.org/publicdomain/zero/1.0/",
		DownloadURL:  "https://data.example.gov/daily-counts.csv",
	}
}

type closeTracker struct {
	io.Reader
	closed *bool
}

func (c *closeTracker) Close() error {
	*c.closed = true
	return nil
}

func testSetup(t *testing.T, fileContent string) (*is.I, database.Datastore, *fetcher.FileFetcherMock, DatasetService) {
	is := is.New(t)

	db, err := database.NewDatabaseConnection(context.Background(), database.NewSQLiteConnector("file:"+t.Name()+"?mode=memory&cache=shared"))
	is.NoErr(err)

	files := &fetcher.FileFetcherMock{
		FetchFunc: func(ctx context.Context, rawURL string, creds fetcher.Credentials) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(fileContent)), nil
		},
	}

	svc := NewDatasetService(zerolog.Nop(), db, files, schemas.NewSchemaInferencer(zerolog.Nop()), "https://opendata.example.gov")

	return is, db, files, svc
}

func createPublisher(is *is.I, db database.Datastore, username string) *persistence.Publisher {
	publisher, err := db.CreatePublisher(&persistence.Publisher{
		Username:   username,
		Email:      username + "@example.gov",
		BureauID:   "b1",
		DivisionID: "d1",
		OfficeID:   "o1",
	})
	is.NoErr(err)

	return publisher
}

func publish(is *is.I, db database.Datastore, identifier string, ownerID uint) {
	err := db.SetDatasetPublished(domain.Requester{ID: ownerID}, identifier, true)
	is.NoErr(err)
}
