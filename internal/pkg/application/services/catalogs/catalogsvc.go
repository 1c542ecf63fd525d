package catalogs

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/datasets"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/organisations"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/database"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/persistence"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-cataloger/svcs/catalogs")

// Envelope constants mandated by the POD 1.1 schema.
const (
	CatalogContext     string = "https://project-open-data.cio.gov/v1.1/schema/catalog.jsonld"
	CatalogType        string = "dcat:Catalog"
	CatalogConformsTo  string = "https://project-open-data.cio.gov/v1.1/schema"
	CatalogDescribedBy string = "https://project-open-data.cio.gov/v1.1/schema/catalog.json"

	datasetType      string = "dcat:Dataset"
	organizationType string = "org:Organization"
	contactType      string = "vcard:Contact"

	// every publisher chain terminates in the city itself
	rootOrganizationName string = "City"
)

// The *Out types below are the serialization boundary: their json tags are
// the mapping table from internal field names to the external JSON-LD keys
// ("@"-prefixed where POD requires it), and their declaration order is the
// documented field order of the external schema. Internal bookkeeping such
// as the completeness flag or row ids has no field here and can never leak.

type OrganizationOut struct {
	Type              string           `json:"@type"`
	Name              string           `json:"name"`
	SubOrganizationOf *OrganizationOut `json:"subOrganizationOf,omitempty"`
}

// ContactPointOut serializes to an empty object when the owning identity
// could not be resolved.
type ContactPointOut struct {
	Type     string `json:"@type,omitempty"`
	Fn       string `json:"fn,omitempty"`
	HasEmail string `json:"hasEmail,omitempty"`
}

type DistributionOut struct {
	Type            string `json:"@type"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DownloadURL     string `json:"downloadURL"`
	Format          string `json:"format"`
	AccessURL       string `json:"accessURL"`
	DescribedBy     string `json:"describedBy"`
	DescribedByType string `json:"describedByType"`
	ConformsTo      string `json:"conformsTo"`
	MediaType       string `json:"mediaType"`
}

type DatasetOut struct {
	Type                string            `json:"@type"`
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	Keyword             []string          `json:"keyword"`
	Modified            string            `json:"modified"`
	Publisher           OrganizationOut   `json:"publisher"`
	ContactPoint        ContactPointOut   `json:"contactPoint"`
	Identifier          string            `json:"identifier"`
	AccessLevel         string            `json:"accessLevel"`
	BureauCode          []string          `json:"bureauCode"`
	ProgramCode         []string          `json:"programCode"`
	License             string            `json:"license"`
	Rights              string            `json:"rights"`
	Spatial             string            `json:"spatial"`
	Temporal            string            `json:"temporal"`
	Distribution        []DistributionOut `json:"distribution"`
	AccrualPeriodicity  string            `json:"accrualPeriodicity"`
	ConformsTo          string            `json:"conformsTo"`
	DataQuality         string            `json:"dataQuality"`
	DescribedBy         string            `json:"describedBy"`
	DescribedByType     string            `json:"describedByType"`
	IsPartOf            string            `json:"isPartOf"`
	Issued              string            `json:"issued"`
	Language            []string          `json:"language"`
	LandingPage         string            `json:"landingPage"`
	PrimaryITInvestment string            `json:"primaryITInvestment"`
	References          string            `json:"references"`
	SystemOfRecords     string            `json:"systemOfRecords"`
	Theme               string            `json:"theme"`
}

type CatalogOut struct {
	Context     string       `json:"@context"`
	ID          string       `json:"@id"`
	Type        string       `json:"@type"`
	ConformsTo  string       `json:"@conformsTo"`
	DescribedBy string       `json:"describedBy"`
	Dataset     []DatasetOut `json:"dataset"`
}

//go:generate moq -rm -out catalogsvc_mock.go . CatalogService

// CatalogService assembles the requester's view of the catalog into the
// external JSON-LD structure.
type CatalogService interface {
	Get(ctx context.Context, r domain.Requester, limit, offset int) (*CatalogOut, error)
	GetDataset(ctx context.Context, r domain.Requester, identifier string) (*DatasetOut, error)
}

func NewCatalogService(logger zerolog.Logger, db database.Datastore, svc datasets.DatasetService, registry organisations.Registry, baseURL string) CatalogService {
	return &catalogSvc{
		log:      logger,
		db:       db,
		datasets: svc,
		registry: registry,
		baseURL:  baseURL,
	}
}

type catalogSvc struct {
	log      zerolog.Logger
	db       database.Datastore
	datasets datasets.DatasetService
	registry organisations.Registry
	baseURL  string
}

func (svc *catalogSvc) Get(ctx context.Context, r domain.Requester, limit, offset int) (*CatalogOut, error) {
	var err error
	ctx, span := tracer.Start(ctx, "assemble-catalog")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	catalog, err := svc.db.GetOrCreateCatalog(persistence.Catalog{
		Context:     CatalogContext,
		Identifier:  svc.baseURL + "/api/catalog",
		MType:       CatalogType,
		ConformsTo:  CatalogConformsTo,
		DescribedBy: CatalogDescribedBy,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load the catalog")
		return nil, err
	}

	page, err := svc.datasets.GetAll(ctx, r, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list datasets")
		return nil, err
	}

	out := &CatalogOut{
		Context:     catalog.Context,
		ID:          catalog.Identifier,
		Type:        catalog.MType,
		ConformsTo:  catalog.ConformsTo,
		DescribedBy: catalog.DescribedBy,
		Dataset:     make([]DatasetOut, 0, len(page)),
	}

	for _, dataset := range page {
		out.Dataset = append(out.Dataset, svc.newDatasetOut(dataset))
	}

	return out, nil
}

func (svc *catalogSvc) GetDataset(ctx context.Context, r domain.Requester, identifier string) (*DatasetOut, error) {
	dataset, err := svc.datasets.GetByIdentifier(ctx, r, identifier)
	if err != nil {
		return nil, err
	}

	out := svc.newDatasetOut(*dataset)
	return &out, nil
}

func (svc *catalogSvc) newDatasetOut(dataset domain.Dataset) DatasetOut {
	out := DatasetOut{
		Type:                datasetType,
		Title:               dataset.Title,
		Description:         dataset.Description,
		Keyword:             dataset.Keywords,
		Modified:            dataset.Modified.UTC().Format(time.RFC3339),
		Publisher:           svc.organizationChain(dataset.Publisher),
		ContactPoint:        contactPoint(dataset.Publisher),
		Identifier:          fmt.Sprintf("%s/api/datasets/%s", svc.baseURL, dataset.Identifier),
		AccessLevel:         dataset.AccessLevel,
		BureauCode:          dataset.BureauCodes,
		ProgramCode:         dataset.ProgramCodes,
		License:             dataset.License,
		Rights:              dataset.Rights,
		Spatial:             dataset.Spatial,
		Temporal:            dataset.Temporal,
		Distribution:        make([]DistributionOut, 0, len(dataset.Distributions)),
		AccrualPeriodicity:  dataset.AccrualPeriodicity,
		ConformsTo:          dataset.ConformsTo,
		DataQuality:         dataset.DataQuality,
		DescribedBy:         dataset.DescribedBy,
		DescribedByType:     dataset.DescribedByType,
		IsPartOf:            dataset.IsPartOf,
		Issued:              dataset.Issued,
		Language:            dataset.Languages,
		LandingPage:         dataset.LandingPage,
		PrimaryITInvestment: dataset.PrimaryITInvestment,
		References:          dataset.References,
		SystemOfRecords:     dataset.SystemOfRecords,
		Theme:               dataset.Theme,
	}

	for _, d := range dataset.Distributions {
		out.Distribution = append(out.Distribution, DistributionOut{
			Type:            "dcat:Distribution",
			Title:           d.Title,
			Description:     d.Description,
			DownloadURL:     d.DownloadURL,
			Format:          d.Format,
			AccessURL:       d.AccessURL,
			DescribedBy:     d.DescribedBy,
			DescribedByType: d.DescribedByType,
			ConformsTo:      d.ConformsTo,
			MediaType:       d.MediaType,
		})
	}

	return out
}

// organizationChain nests the publisher's office inside its division,
// bureau and finally the city itself. A level that cannot be resolved is
// left out of the chain rather than failing the record.
func (svc *catalogSvc) organizationChain(p domain.Publisher) OrganizationOut {
	names := []string{}

	if bureau, err := svc.registry.GetBureau(p.Bureau); err == nil {
		names = append(names, bureau.Description)
	}
	if division, err := svc.registry.GetDivision(p.Division); err == nil {
		names = append(names, division.Name)
	}
	if office, err := svc.registry.GetOffice(p.Office); err == nil {
		names = append(names, office.Name)
	}

	chain := OrganizationOut{Type: organizationType, Name: rootOrganizationName}
	for _, name := range names {
		parent := chain
		chain = OrganizationOut{Type: organizationType, Name: name, SubOrganizationOf: &parent}
	}

	return chain
}

func contactPoint(p domain.Publisher) ContactPointOut {
	if p.Username == "" {
		return ContactPointOut{}
	}

	return ContactPointOut{
		Type:     contactType,
		Fn:       p.Username,
		HasEmail: "mailto:" + p.Email,
	}
}
