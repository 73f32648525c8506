package messaging

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-extractor/store"
)

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func newTestRouter() http.Handler {
	d, _ := newTestDispatcher(store.NewMemoryStore())
	return NewRouter(d, logrus.New())
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRouter_Extract(t *testing.T) {
	rec, resp := doRequest(t, newTestRouter(), http.MethodPost, "/extract", `{"url":"`+widgetURL+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Product)
	assert.Equal(t, "Widget", resp.Product.Title)
	assert.NotEmpty(t, resp.RequestID)
}

func TestRouter_Commands(t *testing.T) {
	router := newTestRouter()

	rec, resp := doRequest(t, router, http.MethodPost, "/commands",
		`{"command":"addToWatchList","requestId":"abc","url":"`+widgetURL+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", resp.RequestID)
	require.NotNil(t, resp.Entry)

	rec, resp = doRequest(t, router, http.MethodGet, "/watchlist", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.WatchList, 1)
	assert.Equal(t, widgetURL, resp.WatchList[0].URL)
}

func TestRouter_Watch(t *testing.T) {
	rec, resp := doRequest(t, newTestRouter(), http.MethodPost, "/watch",
		`{"product":{"url":"https://shop.example.com/p/2","title":"Lamp","platform":"generic","stockStatus":"low_stock"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Entry)
	assert.Equal(t, "Lamp", resp.Entry.Title)
}

func TestRouter_Errors(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"undecodable body", http.MethodPost, "/commands", `{"command":`, http.StatusBadRequest},
		{"unknown command", http.MethodPost, "/commands", `{"command":"explode"}`, http.StatusBadRequest},
		{"extract without url", http.MethodPost, "/extract", `{}`, http.StatusBadRequest},
		{"unreachable page", http.MethodPost, "/extract", `{"url":"https://down.example.com/x"}`, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestRouter_Preflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/extract", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
