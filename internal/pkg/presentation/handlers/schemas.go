package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/datasets"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/authn"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/database"
	"github.com/rs/zerolog"
)

func NewRetrieveSchemaHandler(logger zerolog.Logger, svc datasets.DatasetService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-schema")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		id, err := schemaID(r)
		if err != nil {
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		doc, err := svc.GetSchemaByID(ctx, authn.RequesterFromContext(ctx), id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			log.Error().Err(err).Msg("failed to retrieve schema")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		body, err := json.Marshal(doc)
		if err != nil {
			log.Error().Err(err).Msg("failed to serialize schema")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}

func NewUpdateSchemaHandler(logger zerolog.Logger, svc datasets.DatasetService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "update-schema")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		id, err := schemaID(r)
		if err != nil {
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		doc := domain.SchemaDocument{}
		if err = json.NewDecoder(r.Body).Decode(&doc); err != nil {
			log.Error().Err(err).Msg("bad request")
			writeFieldError(w, http.StatusBadRequest, "body", "request body is not valid json")
			return
		}

		err = svc.UpdateSchema(ctx, authn.RequesterFromContext(ctx), id, doc)
		if err != nil {
			switch {
			case errors.Is(err, datasets.ErrNotAllowed):
				w.WriteHeader(http.StatusUnauthorized)
			case errors.Is(err, database.ErrNotFound):
				w.WriteHeader(http.StatusNotFound)
			case errors.Is(err, database.ErrSchemaShape):
				writeFieldError(w, http.StatusBadRequest, "properties", err.Error())
			default:
				log.Error().Err(err).Msg("failed to update schema")
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func schemaID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, errors.New("schema id must be a positive integer")
	}

	return uint(id), nil
}
