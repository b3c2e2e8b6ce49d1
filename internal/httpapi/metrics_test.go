package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"predictd/internal/manager"
)

func TestEventRecorderCountsLifecycle(t *testing.T) {
	loads := testutil.ToFloat64(managerLoadsTotal)
	loadErrs := testutil.ToFloat64(managerLoadErrorsTotal)
	evictions := testutil.ToFloat64(managerEvictionsTotal)

	var rec EventRecorder
	rec.Publish(manager.Event{Name: "load_done", ModelID: "m1"})
	rec.Publish(manager.Event{Name: "load_error", ModelID: "m1"})
	rec.Publish(manager.Event{Name: "evict", ModelID: "m1"})
	rec.Publish(manager.Event{Name: "unload_done", ModelID: "m1"}) // not counted

	if got := testutil.ToFloat64(managerLoadsTotal) - loads; got != 1 {
		t.Fatalf("loads delta=%v", got)
	}
	if got := testutil.ToFloat64(managerLoadErrorsTotal) - loadErrs; got != 1 {
		t.Fatalf("load errors delta=%v", got)
	}
	if got := testutil.ToFloat64(managerEvictionsTotal) - evictions; got != 1 {
		t.Fatalf("evictions delta=%v", got)
	}
}

func TestItoa(t *testing.T) {
	cases := map[int]string{0: "0", 200: "200", 404: "404", 503: "503"}
	for n, want := range cases {
		if got := itoa(n); got != want {
			t.Fatalf("itoa(%d)=%q want %q", n, got, want)
		}
	}
}

func TestRoutePatternOrPath(t *testing.T) {
	r := chi.NewRouter()
	var got string
	r.Get("/api/v1/models", func(w http.ResponseWriter, r *http.Request) {
		got = routePatternOrPath(r)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/models", nil))
	if got != "/api/v1/models" {
		t.Fatalf("pattern=%q", got)
	}

	// outside chi routing, fall back to the URL path
	plain := httptest.NewRequest(http.MethodGet, "/whatever", nil)
	if p := routePatternOrPath(plain); p != "/whatever" {
		t.Fatalf("fallback=%q", p)
	}
}

func TestStatusRecorderCapturesCode(t *testing.T) {
	w := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: w, status: 200}
	sr.WriteHeader(http.StatusTeapot)
	if sr.status != http.StatusTeapot || w.Code != http.StatusTeapot {
		t.Fatalf("status=%d recorder=%d", sr.status, w.Code)
	}
}
