package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/catalogs"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/datasets"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/fetcher"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/schemas"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/authn"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/database"
	"github.com/rs/zerolog"
)

func NewRetrieveDatasetHandler(logger zerolog.Logger, svc catalogs.CatalogService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-dataset")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		identifier := chi.URLParam(r, "id")
		if identifier == "" {
			err = fmt.Errorf("no dataset id supplied in query")
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		dataset, err := svc.GetDataset(ctx, authn.RequesterFromContext(ctx), identifier)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			log.Error().Err(err).Msg("failed to retrieve dataset")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		body, err := json.Marshal(dataset)
		if err != nil {
			log.Error().Err(err).Msg("failed to serialize dataset")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/ld+json")
		w.Write(body)
	})
}

type createDatasetRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Keyword      []string `json:"keyword"`
	AccessLevel  string   `json:"accessLevel"`
	BureauCode   []string `json:"bureauCode"`
	ProgramCode  []string `json:"programCode"`
	License      string   `json:"license"`
	Rights       string   `json:"rights"`
	Spatial      string   `json:"spatial"`
	Temporal     string   `json:"temporal"`
	Language     []string `json:"language"`
	DownloadURL  string   `json:"downloadURL"`
	SFTPUsername string   `json:"sftpUsername,omitempty"`
	SFTPPassword string   `json:"sftpPassword,omitempty"`
}

type createDatasetResponse struct {
	Identifier  string `json:"identifier"`
	DescribedBy string `json:"describedBy"`
	Complete    bool   `json:"complete"`
}

func NewCreateDatasetHandler(logger zerolog.Logger, svc datasets.DatasetService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "create-dataset")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		input := createDatasetRequest{}
		if err = json.NewDecoder(r.Body).Decode(&input); err != nil {
			log.Error().Err(err).Msg("bad request")
			writeFieldError(w, http.StatusBadRequest, "body", "request body is not valid json")
			return
		}

		dataset, err := svc.Create(ctx, authn.RequesterFromContext(ctx), datasets.NewDatasetRequest{
			Title:        input.Title,
			Description:  input.Description,
			Keywords:     input.Keyword,
			AccessLevel:  input.AccessLevel,
			BureauCodes:  input.BureauCode,
			ProgramCodes: input.ProgramCode,
			License:      input.License,
			Rights:       input.Rights,
			Spatial:      input.Spatial,
			Temporal:     input.Temporal,
			Languages:    input.Language,
			DownloadURL:  input.DownloadURL,
			SFTPUsername: input.SFTPUsername,
			SFTPPassword: input.SFTPPassword,
		})

		if err != nil {
			writeCreateDatasetError(w, log, err)
			return
		}

		body, err := json.Marshal(createDatasetResponse{
			Identifier:  dataset.Identifier,
			DescribedBy: dataset.DescribedBy,
			Complete:    dataset.Complete,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to serialize response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	})
}

// writeCreateDatasetError maps ingestion failures onto user facing field
// errors. Anything unanticipated is logged with its cause and surfaced as
// a generic failure, never as a raw error string.
func writeCreateDatasetError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, datasets.ErrNotAllowed):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, datasets.ErrMissingTitle):
		writeFieldError(w, http.StatusBadRequest, "title", err.Error())
	case errors.Is(err, datasets.ErrInvalidInput):
		// remaining input problems all concern the download url
		writeFieldError(w, http.StatusBadRequest, "downloadURL", err.Error())
	case errors.Is(err, fetcher.ErrUnsupportedFormat),
		errors.Is(err, fetcher.ErrUnsupportedScheme),
		errors.Is(err, fetcher.ErrDownloadFailed):
		writeFieldError(w, http.StatusBadRequest, "downloadURL", err.Error())
	case errors.Is(err, schemas.ErrFailedCreatingSchema):
		writeFieldError(w, http.StatusBadRequest, "downloadURL", err.Error())
	default:
		log.Error().Err(err).Msg("dataset creation failed")
		writeFieldError(w, http.StatusInternalServerError, "body", "dataset creation failed")
	}
}

func writeFieldError(w http.ResponseWriter, statusCode int, field, message string) {
	body, _ := json.Marshal(map[string]map[string]string{
		"errors": {field: message},
	})

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}
