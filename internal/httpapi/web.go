package httpapi

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"predictd/pkg/types"
)

//go:embed templates/*.tmpl static/*
var webFS embed.FS

var pageTmpl = template.Must(template.ParseFS(webFS, "templates/*.tmpl"))

// formPage carries everything the form template renders: the model list,
// what the user typed, and either a validation message or a result.
type formPage struct {
	Models  []modelOption
	Raw     string
	Message string
	Result  *formResult
}

type modelOption struct {
	ID       string
	Name     string
	Selected bool
	Features []string
}

type formResult struct {
	Model         string
	Kind          string
	Value         string
	Label         string
	Probabilities map[string]float64
}

func newFormPage(svc Service, selected string) formPage {
	if selected == "" {
		selected = svc.DefaultModel()
	}
	page := formPage{}
	for _, m := range svc.ListModels() {
		page.Models = append(page.Models, modelOption{
			ID:       m.ID,
			Name:     m.Name,
			Selected: m.ID == selected,
			Features: m.Features,
		})
	}
	return page
}

func renderForm(w http.ResponseWriter, status int, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.ExecuteTemplate(w, "index.tmpl", page); err != nil {
		logf("render form: %v", err)
	}
}

// handleFormPage renders the empty input form.
func handleFormPage(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderForm(w, http.StatusOK, newFormPage(svc, ""))
	}
}

// handleFormPredict takes the submitted form field, wraps it into a
// single-row batch, runs the predictor and renders the result.
func handleFormPredict(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			page := newFormPage(svc, "")
			page.Message = "could not parse form submission"
			renderForm(w, http.StatusBadRequest, page)
			return
		}
		raw := r.PostFormValue("features")
		model := r.PostFormValue("model")
		page := newFormPage(svc, model)
		page.Raw = raw

		features, err := parseFeatures(raw)
		if err != nil {
			page.Message = err.Error()
			renderForm(w, http.StatusUnprocessableEntity, page)
			return
		}

		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Predict(ctx, types.PredictRequest{Model: model, Features: features})
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusForError(err)
			if status == http.StatusTooManyRequests {
				IncrementBackpressure("queue")
			}
			page.Message = err.Error()
			renderForm(w, status, page)
			return
		}

		res := &formResult{
			Model:         resp.Model,
			Kind:          resp.Kind,
			Label:         resp.Label,
			Probabilities: resp.Probabilities,
		}
		if resp.Value != nil {
			res.Value = strconv.FormatFloat(*resp.Value, 'g', -1, 64)
		}
		page.Result = res
		renderForm(w, http.StatusOK, page)
	}
}

// parseFeatures splits a comma-separated list of numbers into a feature row.
func parseFeatures(raw string) ([]float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("enter at least one feature value")
	}
	parts := strings.Split(trimmed, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", strings.TrimSpace(p))
		}
		out = append(out, v)
	}
	return out, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(webFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
