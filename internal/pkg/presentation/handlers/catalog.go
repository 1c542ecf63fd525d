package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/catalogs"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/authn"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-cataloger/handlers")

func NewRetrieveCatalogHandler(logger zerolog.Logger, svc catalogs.CatalogService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-catalog")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		limit, offset, err := paginationParams(r)
		if err != nil {
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		catalog, err := svc.Get(ctx, authn.RequesterFromContext(ctx), limit, offset)
		if err != nil {
			log.Error().Err(err).Msg("failed to assemble catalog")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		body, err := json.Marshal(catalog)
		if err != nil {
			log.Error().Err(err).Msg("failed to serialize catalog")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/ld+json")
		w.Write(body)
	})
}

// paginationParams reads limit and offset from the query string. Both
// default to zero, which means no limit and no offset.
func paginationParams(r *http.Request) (limit int, offset int, err error) {
	limit, err = queryInt(r, "limit")
	if err != nil {
		return 0, 0, err
	}

	offset, err = queryInt(r, "offset")
	if err != nil {
		return 0, 0, err
	}

	return limit, offset, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}

	return parsed, nil
}
