package main

import (
	"context"
	"flag"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/catalogs"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/datasets"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/fetcher"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/organisations"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/schemas"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/database"
	"github.com/opendatapdx/api-cataloger/internal/pkg/presentation"
)

var organisationsFileName string
var databaseFileName string

func openOrganisationsFile(ctx context.Context, path string) *os.File {
	log := logging.GetFromContext(ctx)
	orgfile, err := os.Open(path)
	if err != nil {
		log.Info().Msgf("failed to open the organisation registry file %s.", path)
		return nil
	}
	return orgfile
}

func main() {
	serviceName := "api-cataloger"
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&organisationsFileName, "orgs", "/opt/opendatapdx/organisations.yaml", "A registry of bureaus, divisions and offices")
	flag.StringVar(&databaseFileName, "db", "/opt/opendatapdx/catalog.db", "The sqlite database to store the catalog in")
	flag.Parse()

	orgfile := openOrganisationsFile(ctx, organisationsFileName)
	if orgfile == nil {
		log.Fatal().Msg("Unable to open organisation registry file. Exiting.")
	}
	defer orgfile.Close()

	registry, err := organisations.NewRegistry(orgfile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load the organisation registry")
	}

	tokenSecret := env.GetVariableOrDie(log, "TOKEN_SECRET", "secret used to verify bearer tokens")
	baseURL := env.GetVariableOrDefault(log, "CATALOG_BASE_URL", "http://localhost:8880")

	port := os.Getenv("SERVICE_PORT")
	if port == "" {
		port = "8880"
	}

	db, err := database.NewDatabaseConnection(ctx, database.NewSQLiteConnector(databaseFileName))
	if err != nil {
		log.Fatal().Msgf("failed to connect to database, shutting down... %s", err.Error())
	}

	datasetSvc := datasets.NewDatasetService(log, db, fetcher.NewFileFetcher(log), schemas.NewSchemaInferencer(log), baseURL)
	catalogSvc := catalogs.NewCatalogService(log, db, datasetSvc, registry, baseURL)

	app := presentation.NewAPI(ctx, chi.NewRouter(), []byte(tokenSecret), datasetSvc, catalogSvc)
	err = app.Start(port)
	if err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}
