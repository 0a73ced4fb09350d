package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Davidshtp/Dashboard/internal/client/gateway"
)

// fakeGateway backs the stores with an in-process HTTP server and counts every
// request, so tests can assert that local rejections never reach the network.
type fakeGateway struct {
	mux      *http.ServeMux
	srv      *httptest.Server
	requests atomic.Int32
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	f := &fakeGateway{mux: http.NewServeMux()}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeGateway) client() *gateway.Client {
	return gateway.New(f.srv.URL, nil)
}

func (f *fakeGateway) handle(pattern string, fn http.HandlerFunc) {
	f.mux.HandleFunc(pattern, fn)
}

func (f *fakeGateway) count() int {
	return int(f.requests.Load())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func writeDetail(t *testing.T, w http.ResponseWriter, status int, detail string) {
	t.Helper()
	writeJSON(t, w, status, map[string]string{"detail": detail})
}
