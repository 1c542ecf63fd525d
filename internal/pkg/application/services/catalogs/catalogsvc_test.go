package catalogs

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/datasets"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/organisations"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/database"
	"github.com/rs/zerolog"
)

func TestAssembledCatalogCarriesTheEnvelopeConstants(t *testing.T) {
	is, svc := testSetup(t, testDataset())

	catalog, err := svc.Get(context.Background(), domain.Requester{}, 0, 0)
	is.NoErr(err)

	is.Equal(catalog.Context, CatalogContext)
	is.Equal(catalog.Type, CatalogType)
	is.Equal(catalog.ConformsTo, CatalogConformsTo)
	is.Equal(catalog.DescribedBy, CatalogDescribedBy)
	is.Equal(catalog.ID, "https://opendata.example.gov/api/catalog")
	is.Equal(len(catalog.Dataset), 1)
}

func TestPublisherChainNestsOfficeInDivisionInBureauInCity(t *testing.T) {
	is, svc := testSetup(t, testDataset())

	catalog, err := svc.Get(context.Background(), domain.Requester{}, 0, 0)
	is.NoErr(err)

	office := catalog.Dataset[0].Publisher
	is.Equal(office.Name, "Open Data Office")

	division := office.SubOrganizationOf
	is.Equal(division.Name, "Data Services Division")

	bureau := division.SubOrganizationOf
	is.Equal(bureau.Name, "Bureau of Technology Services")

	root := bureau.SubOrganizationOf
	is.Equal(root.Name, "City")
	is.Equal(root.SubOrganizationOf, nil)
}

func TestMissingHierarchyLevelsCollapseTowardsTheRoot(t *testing.T) {
	dataset := testDataset()
	dataset.Publisher.Office = "unknown"

	is, svc := testSetup(t, dataset)

	catalog, err := svc.Get(context.Background(), domain.Requester{}, 0, 0)
	is.NoErr(err)

	division := catalog.Dataset[0].Publisher
	is.Equal(division.Name, "Data Services Division")
	is.Equal(division.SubOrganizationOf.Name, "Bureau of Technology Services")
	is.Equal(division.SubOrganizationOf.SubOrganizationOf.Name, "City")
}

func TestContactPointIsEmptyWhenOwnerCannotBeResolved(t *testing.T) {
	dataset := testDataset()
	dataset.Publisher.Username = ""

	is, svc := testSetup(t, dataset)

	catalog, err := svc.Get(context.Background(), domain.Requester{}, 0, 0)
	is.NoErr(err)

	serialized, err := json.Marshal(catalog.Dataset[0].ContactPoint)
	is.NoErr(err)
	is.Equal(string(serialized), "{}")
}

func TestSerializedCatalogUsesExternalKeysOnly(t *testing.T) {
	is, svc := testSetup(t, testDataset())

	catalog, err := svc.Get(context.Background(), domain.Requester{}, 0, 0)
	is.NoErr(err)

	serialized, err := json.Marshal(catalog)
	is.NoErr(err)

	parsed := map[string]json.RawMessage{}
	is.NoErr(json.Unmarshal(serialized, &parsed))

	for _, key := range []string{"@context", "@id", "@type", "@conformsTo", "describedBy", "dataset"} {
		_, ok := parsed[key]
		is.True(ok) // envelope key missing from output
	}
	for _, key := range []string{"context", "id", "type", "conformsTo"} {
		_, ok := parsed[key]
		is.True(!ok) // internal field name leaked through
	}

	entries := []map[string]json.RawMessage{}
	is.NoErr(json.Unmarshal(parsed["dataset"], &entries))
	is.Equal(len(entries), 1)

	_, ok := entries[0]["@type"]
	is.True(ok)
	for _, key := range []string{"type", "complete", "published", "mtype"} {
		_, leaked := entries[0][key]
		is.True(!leaked) // bookkeeping field leaked into the dataset object
	}

	is.Equal(string(entries[0]["keyword"]), `["counts","daily"]`)
	is.Equal(string(entries[0]["bureauCode"]), `["015:11"]`)

	contact := map[string]string{}
	is.NoErr(json.Unmarshal(entries[0]["contactPoint"], &contact))
	is.Equal(contact["fn"], "u1")
	is.Equal(contact["hasEmail"], "mailto:u1@example.gov")
}

func TestDistributionSerializesTypeAndFormatSeparately(t *testing.T) {
	is, svc := testSetup(t, testDataset())

	dataset, err := svc.GetDataset(context.Background(), domain.Requester{}, "abc-123")
	is.NoErr(err)

	serialized, err := json.Marshal(dataset.Distribution[0])
	is.NoErr(err)

	parsed := map[string]string{}
	is.NoErr(json.Unmarshal(serialized, &parsed))
	is.Equal(parsed["@type"], "dcat:Distribution")
	is.Equal(parsed["format"], "CSV")
	is.Equal(parsed["mediaType"], "text/csv")
}

func testDataset() domain.Dataset {
	return domain.Dataset{
		Identifier:   "abc-123",
		Title:        "Daily Counts",
		Description:  "Daily counts of things",
		Keywords:     []string{"counts", "daily"},
		Modified:     time.Date(2023, 3, 17, 8, 23, 9, 0, time.UTC),
		AccessLevel:  "public",
		BureauCodes:  []string{"015:11"},
		ProgramCodes: []string{"015:001"},
		License:      "https://creativecommons.org/publicdomain/zero/1.0/",
		Languages:    []string{"en-US"},
		Published:    true,
		Complete:     true,
		Publisher: domain.Publisher{
			ID:       1,
			Username: "u1",
			Email:    "u1@example.gov",
			Bureau:   "b1",
			Division: "d1",
			Office:   "o1",
		},
		Distributions: []domain.Distribution{
			{
				Title:       "daily-counts.csv",
				DownloadURL: "https://data.example.gov/daily-counts.csv",
				Format:      "CSV",
				MediaType:   "text/csv",
			},
		},
	}
}

func testSetup(t *testing.T, dataset domain.Dataset) (*is.I, CatalogService) {
	is := is.New(t)

	db, err := database.NewDatabaseConnection(context.Background(), database.NewSQLiteConnector("file:"+t.Name()+"?mode=memory&cache=shared"))
	is.NoErr(err)

	registry, err := organisations.NewRegistry(bytes.NewBufferString(registryConfig))
	is.NoErr(err)

	mock := &datasets.DatasetServiceMock{
		GetAllFunc: func(ctx context.Context, r domain.Requester, limit, offset int) ([]domain.Dataset, error) {
			return []domain.Dataset{dataset}, nil
		},
		GetByIdentifierFunc: func(ctx context.Context, r domain.Requester, identifier string) (*domain.Dataset, error) {
			return &dataset, nil
		},
	}

	return is, NewCatalogService(zerolog.Nop(), db, mock, registry, "https://opendata.example.gov")
}

const registryConfig string = `
bureaus:
  - id: b1
    code: "015:11"
    description: Bureau of Technology Services
divisions:
  - id: d1
    bureau: b1
    name: Data Services Division
    programCode: "015:001"
offices:
  - id: o1
    division: d1
    name: Open Data Office
`
