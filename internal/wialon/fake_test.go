package wialon_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

type recordedCall struct {
	Svc         string
	SID         string
	Params      map[string]any
	ContentType string
	Method      string
}

// fakeWialon is an httptest server that answers each request with the body
// returned by respond and records every call it sees.
type fakeWialon struct {
	*httptest.Server

	mu    sync.Mutex
	calls []recordedCall
}

func newFakeWialon(t *testing.T, respond func(c recordedCall) string) *fakeWialon {
	t.Helper()

	f := &fakeWialon{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		c := recordedCall{
			Svc:         q.Get("svc"),
			SID:         q.Get("sid"),
			ContentType: r.Header.Get("Content-Type"),
			Method:      r.Method,
		}
		if raw := q.Get("params"); raw != "" {
			_ = json.Unmarshal([]byte(raw), &c.Params)
		}

		f.mu.Lock()
		f.calls = append(f.calls, c)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond(c)))
	}))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeWialon) count(svc string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.calls {
		if c.Svc == svc {
			n++
		}
	}
	return n
}

func (f *fakeWialon) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeWialon) last(svc string) recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Svc == svc {
			return f.calls[i]
		}
	}
	return recordedCall{}
}

func (f *fakeWialon) client() *wialon.Client {
	return wialon.NewClient(wialon.WithBaseURL(f.URL))
}

func loginBody(eid string) string {
	return `{"host":"10.0.0.1","eid":"` + eid + `","user":{"id":27,"nm":"terminus"}}`
}
