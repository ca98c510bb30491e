package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"travmd-form/metrics"
	"travmd-form/models"

	"github.com/stretchr/testify/require"
)

var testConfig = ServerConfig{
	Host:           "localhost",
	Port:           8081,
	UseTls:         false,
	TlsCertPath:    "",
	TlsPrivKeyPath: "",
}

type testServer struct {
	url     string
	client  *http.Client
	metrics *metrics.Metrics
}

// startTestServer serves the real router on a random port. The client keeps cookies.
func startTestServer(t *testing.T, storage LanguageStorage) *testServer {
	t.Helper()

	testState := &ServerState{
		languageStorage: storage,
		metrics:         metrics.New(),
		staticPath:      t.TempDir(),
	}

	srv, err := NewServer(testState, testConfig)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{
		url:     ts.URL,
		client:  &http.Client{Jar: jar},
		metrics: testState.metrics,
	}
}

func doJSON[T any](t *testing.T, s *testServer, method, path string, payload any) (*http.Response, []byte, *T) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}
	req, err := http.NewRequest(method, s.url+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var v T
	_ = json.Unmarshal(respBody, &v)
	return resp, respBody, &v
}

func postJSON[T any](t *testing.T, s *testServer, path string, payload any) (*http.Response, []byte, *T) {
	t.Helper()
	return doJSON[T](t, s, http.MethodPost, path, payload)
}

func mustStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	require.Equalf(t, want, resp.StatusCode, "body: %s", body)
}

// Request builders
type formOpt func(*models.FormSnapshot)

func withField(id, value string) formOpt {
	return func(f *models.FormSnapshot) { f.Fields[id] = value }
}

func withAnswer(group, value string) formOpt {
	return func(f *models.FormSnapshot) { f.Radios[group] = value }
}

func newForm(opts ...formOpt) models.FormSnapshot {
	f := models.FormSnapshot{
		Fields: map[string]string{
			"vorname":    "Jürgen",
			"name":       "Müller",
			"geb":        "14.03.1990",
			"reiseland1": "Kenia",
		},
		Checkboxes: map[string]bool{},
		Radios:     map[string]string{},
	}
	for _, o := range opts {
		o(&f)
	}
	return f
}

// test doubles

type failingStorage struct{}

var errStorageDown = errors.New("storage down")

func (failingStorage) StoreLanguage(string, string) error { return errStorageDown }

func (failingStorage) RetrieveLanguage(string) (string, error) { return "", errStorageDown }

func httptestRecorder(srv *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}
