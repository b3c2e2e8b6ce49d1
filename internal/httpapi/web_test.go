package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"predictd/internal/manager"
	"predictd/pkg/types"
)

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestFormPageRendersEmptyForm(t *testing.T) {
	svc := &mockService{
		models:       []types.Model{{ID: "m1.model", Name: "Model One"}},
		defaultModel: "m1.model",
	}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `action="/predict"`) {
		t.Fatal("expected predict form")
	}
	if !strings.Contains(body, "Model One") {
		t.Fatal("expected model option")
	}
	if strings.Contains(body, "Result") {
		t.Fatal("empty form should not render a result")
	}
}

func TestFormPredictGetRendersEmptyForm(t *testing.T) {
	svc := &mockService{models: []types.Model{{ID: "m1", Name: "m1"}}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/predict", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `action="/predict"`) {
		t.Fatal("expected predict form")
	}
	if strings.Contains(body, "Result") {
		t.Fatal("GET must not render a result")
	}
}

func TestFormPredictRendersResult(t *testing.T) {
	svc := &mockService{models: []types.Model{{ID: "m1", Name: "m1"}}}
	r := NewMux(svc)
	w := postForm(t, r, url.Values{"model": {"m1"}, "features": {"1, 2"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "42") {
		t.Fatalf("expected predicted value in page: %s", w.Body.String())
	}
	if svc.lastReq.Model != "m1" || len(svc.lastReq.Features) != 2 || svc.lastReq.Features[1] != 2 {
		t.Fatalf("request not forwarded: %+v", svc.lastReq)
	}
}

func TestFormPredictRejectsMalformedNumbers(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	w := postForm(t, r, url.Values{"features": {"1, banana"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "banana") {
		t.Fatal("expected offending token in message")
	}
	// the submitted text survives for correction
	if !strings.Contains(w.Body.String(), "1, banana") {
		t.Fatal("expected raw input to be re-rendered")
	}
}

func TestFormPredictEmptyInput(t *testing.T) {
	r := NewMux(&mockService{})
	w := postForm(t, r, url.Values{"features": {"   "}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestFormPredictMapsManagerErrors(t *testing.T) {
	r := NewMux(&mockService{predictErr: manager.ErrModelNotFound("ghost")})
	w := postForm(t, r, url.Values{"features": {"1"}})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ghost") {
		t.Fatal("expected error message in page")
	}
}

func TestStaticAssets(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "font-family") {
		t.Fatal("expected stylesheet body")
	}
}

func TestParseFeatures(t *testing.T) {
	got, err := parseFeatures(" 1,2.5 , -3 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2.5 || got[2] != -3 {
		t.Fatalf("got %v", got)
	}
	if _, err := parseFeatures(""); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := parseFeatures("1,,2"); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := parseFeatures("abc"); err == nil {
		t.Fatal("expected error for non-number")
	}
}
