package ui

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"cricdash/domain/table"
	apperrors "cricdash/internal/errors"

	"github.com/gomarkdown/markdown"
)

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Warn("encoding response: %v", err)
	}
}

// writeError maps an application error to its HTTP status and a JSON body.
func (a *App) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed: %v", err)
	}
	a.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}

func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInvalidFilter, apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (a *App) execute(name string, data interface{}) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return &buf, nil
}

// renderMarkdown turns a chart description into HTML for the page.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	return template.HTML(markdown.ToHTML([]byte(md), nil, nil))
}

func formatCell(v table.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.Text()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// queryInt reads a non-negative integer query parameter.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.InvalidInput("query parameter " + key + " must be a non-negative integer")
	}
	return n, nil
}
