package handlers

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricetrail/history"
	"pricetrail/models"
	"pricetrail/scraper"
	"pricetrail/tracker"
)

type staticFetcher struct {
	html string
	err  error
}

func (f *staticFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return scraper.ParseDocument(strings.NewReader(f.html))
}

const productPage = `
	<html><body>
		<span id="productTitle">Aurora Kettle 1.5L</span>
		<span class="a-price-whole">1,299</span>
	</body></html>`

func newTestRouter(t *testing.T, fetcher scraper.Fetcher) *mux.Router {
	t.Helper()
	store := history.NewCSVStore(filepath.Join(t.TempDir(), "history.csv"))
	h := NewHandlers(tracker.New(fetcher, store, rand.New(rand.NewSource(1))), store)

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/track", h.TrackProduct).Methods("POST")
	r.HandleFunc("/api/v1/products", h.GetProducts).Methods("GET")
	r.HandleFunc("/api/v1/products/{id}/history", h.GetHistory).Methods("GET")
	r.HandleFunc("/api/v1/products/{id}/analysis", h.GetAnalysis).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestTrackProduct(t *testing.T) {
	router := newTestRouter(t, &staticFetcher{html: productPage})

	rec, body := doJSON(t, router, "POST", "/api/v1/track",
		`{"url":"https://www.amazon.in/dp/B0ABCDEFGH","target_price":1500,"currency":"INR"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AMAZON_B0ABCDEFGH", body["product_id"])
	assert.Equal(t, "Aurora Kettle 1.5L", body["product_name"])
	assert.Equal(t, string(models.ProvenanceSynthetic), body["provenance"])
	assert.Equal(t, "INR", body["currency"])
	assert.Equal(t, true, body["target_met"])
}

func TestTrackProductValidation(t *testing.T) {
	router := newTestRouter(t, &staticFetcher{html: productPage})

	rec, _ := doJSON(t, router, "POST", "/api/v1/track", `{"url":"","target_price":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, router, "POST", "/api/v1/track", `{"url":"https://x.example","target_price":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrackProductFetchFailure(t *testing.T) {
	router := newTestRouter(t, &staticFetcher{err: &scraper.FetchError{Kind: scraper.FailureTimeout}})

	rec, body := doJSON(t, router, "POST", "/api/v1/track",
		`{"url":"https://www.amazon.in/dp/B0ABCDEFGH","target_price":1500}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, body["error"], "fetch")
}

func TestTrackProductPriceNotFound(t *testing.T) {
	router := newTestRouter(t, &staticFetcher{html: `<html><body><h1>Sold out</h1></body></html>`})

	rec, body := doJSON(t, router, "POST", "/api/v1/track",
		`{"url":"https://www.amazon.in/dp/B0ABCDEFGH","target_price":1500}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["error"], "price")
}

func TestHistoryAndAnalysisEndpoints(t *testing.T) {
	router := newTestRouter(t, &staticFetcher{html: productPage})

	rec, _ := doJSON(t, router, "POST", "/api/v1/track",
		`{"url":"https://www.amazon.in/dp/B0ABCDEFGH","target_price":1000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, router, "GET", "/api/v1/products/AMAZON_B0ABCDEFGH/history", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])

	rec, body = doJSON(t, router, "GET", "/api/v1/products/AMAZON_B0ABCDEFGH/analysis", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	stats := body["statistics"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["sample_count"])

	rec, _ = doJSON(t, router, "GET", "/api/v1/products/NOPE/history", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = doJSON(t, router, "GET", "/api/v1/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
}
