package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/opendatapdx/api-cataloger/internal/pkg/application/services/catalogs"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/rs/zerolog"
)

func TestInvokeCatalogHandler(t *testing.T) {
	is, r, ts := setupTest(t)
	svc := defaultCatalogServiceMock()

	r.Get("/api/catalog", NewRetrieveCatalogHandler(zerolog.Logger{}, svc))
	response, responseBody := newGetRequest(is, ts, "application/ld+json", "/api/catalog", nil)

	is.Equal(response.StatusCode, http.StatusOK)
	is.Equal(len(svc.GetCalls()), 1) // Get should have been called once
	is.Equal(response.Header.Get("Content-Type"), "application/ld+json")
	is.True(len(responseBody) > 0)
}

func TestCatalogHandlerForwardsPagination(t *testing.T) {
	is, r, ts := setupTest(t)
	svc := defaultCatalogServiceMock()

	r.Get("/api/catalog", NewRetrieveCatalogHandler(zerolog.Logger{}, svc))
	response, _ := newGetRequest(is, ts, "application/ld+json", "/api/catalog?limit=5&offset=10", nil)

	is.Equal(response.StatusCode, http.StatusOK)
	is.Equal(svc.GetCalls()[0].Limit, 5)
	is.Equal(svc.GetCalls()[0].Offset, 10)
}

func TestCatalogHandlerRejectsNegativePagination(t *testing.T) {
	is, r, ts := setupTest(t)
	svc := defaultCatalogServiceMock()

	r.Get("/api/catalog", NewRetrieveCatalogHandler(zerolog.Logger{}, svc))
	response, _ := newGetRequest(is, ts, "application/ld+json", "/api/catalog?limit=-1", nil)

	is.Equal(response.StatusCode, http.StatusBadRequest)
	is.Equal(len(svc.GetCalls()), 0) // the service should never be invoked
}

func defaultCatalogServiceMock() *catalogs.CatalogServiceMock {
	return &catalogs.CatalogServiceMock{
		GetFunc: func(ctx context.Context, r domain.Requester, limit, offset int) (*catalogs.CatalogOut, error) {
			return &catalogs.CatalogOut{
				Context:     catalogs.CatalogContext,
				Type:        catalogs.CatalogType,
				ConformsTo:  catalogs.CatalogConformsTo,
				DescribedBy: catalogs.CatalogDescribedBy,
				Dataset:     []catalogs.DatasetOut{},
			}, nil
		},
		GetDatasetFunc: func(ctx context.Context, r domain.Requester, identifier string) (*catalogs.DatasetOut, error) {
			return &catalogs.DatasetOut{Type: "dcat:Dataset", Title: "daily counts"}, nil
		},
	}
}

func setupTest(t *testing.T) (*is.I, *chi.Mux, *httptest.Server) {
	is := is.New(t)
	r := chi.NewRouter()
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return is, r, ts
}

func newGetRequest(is *is.I, ts *httptest.Server, accept, path string, body io.Reader) (*http.Response, string) {
	return newRequest(is, ts, http.MethodGet, accept, path, body)
}

func newRequest(is *is.I, ts *httptest.Server, method, accept, path string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	is.NoErr(err)

	req.Header.Add("Accept", accept)

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	is.NoErr(err) // failed to read response body

	return resp, string(respBody)
}
