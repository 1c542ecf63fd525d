package presentation

import (
	"compress/flate"
	"context"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/catalogs"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/datasets"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/authn"
	"github.com/opendatapdx/api-cataloger/internal/pkg/presentation/handlers"
	"github.com/riandyrn/otelchi"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Start(port string) error
	Router() chi.Router
}

type catalogerAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(ctx context.Context, r chi.Router, tokenSecret []byte, datasetSvc datasets.DatasetService, catalogSvc catalogs.CatalogService) API {
	return newCatalogerAPI(ctx, r, tokenSecret, datasetSvc, catalogSvc)
}

func newCatalogerAPI(ctx context.Context, r chi.Router, tokenSecret []byte, datasetSvc datasets.DatasetService, catalogSvc catalogs.CatalogService) *catalogerAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"application/json", "application/ld+json",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("api-cataloger", otelchi.WithChiRoutes(r)))
	r.Use(authn.Middleware(log, tokenSecret))

	a := &catalogerAPI{
		router: r,
		log:    log,
	}

	a.addCatalogHandlers(r, log, datasetSvc, catalogSvc)
	a.addProbeHandlers(r)

	return a
}

func (a *catalogerAPI) Start(port string) error {
	a.log.Info().Msgf("Starting api-cataloger on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *catalogerAPI) Router() chi.Router {
	return a.router
}

func (a *catalogerAPI) addCatalogHandlers(r chi.Router, log zerolog.Logger, datasetSvc datasets.DatasetService, catalogSvc catalogs.CatalogService) {
	r.Get(
		"/api/catalog",
		handlers.NewRetrieveCatalogHandler(log, catalogSvc),
	)
	r.Post(
		"/api/datasets",
		handlers.NewCreateDatasetHandler(log, datasetSvc),
	)
	r.Get(
		"/api/datasets/{id}",
		handlers.NewRetrieveDatasetHandler(log, catalogSvc),
	)
	r.Get(
		"/api/schemas/{id}",
		handlers.NewRetrieveSchemaHandler(log, datasetSvc),
	)
	r.Put(
		"/api/schemas/{id}",
		handlers.NewUpdateSchemaHandler(log, datasetSvc),
	)
}

func (a *catalogerAPI) addProbeHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
