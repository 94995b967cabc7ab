package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/config"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/classify"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/usecase"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/infrastructure/export"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/observability/metrics"
)

const serviceName = "elibrary-api"

type Router struct {
	uploadUC  *usecase.UploadDocumentUseCase
	libraryUC *usecase.LibraryUseCase
	metrics   *metrics.HTTPServerMetrics
	cfg       config.Config
}

func NewRouter(
	uploadUC *usecase.UploadDocumentUseCase,
	libraryUC *usecase.LibraryUseCase,
	m *metrics.HTTPServerMetrics,
	cfg config.Config,
) *Router {
	return &Router{
		uploadUC:  uploadUC,
		libraryUC: libraryUC,
		metrics:   m,
		cfg:       cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/library", rt.library)
	mux.HandleFunc("/v1/library/export", rt.exportLibrary)
	mux.HandleFunc("/v1/recommendations", rt.recommendations)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// uploadDocument saves the PDF and returns the classified candidate entry.
// The library is untouched until the user confirms via POST /v1/library.
func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only PDF files are accepted"})
		return
	}

	result, err := rt.uploadUC.Upload(r.Context(), fileHeader.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordClassification(serviceName, result.Source)
		rt.metrics.RecordCatalogLookup(serviceName, lookupOutcome(result))
	}
	writeJSON(w, http.StatusOK, result)
}

// lookupOutcome reconstructs the catalog call's fate from the upload result.
// Resumes never consult the catalog.
func lookupOutcome(result usecase.UploadResult) string {
	switch result.Source {
	case classify.SourceResume:
		return "skipped"
	case classify.SourceCatalog:
		return "hit"
	default:
		if len(result.Warnings) > 0 {
			return "error"
		}
		return "miss"
	}
}

func (rt *Router) library(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.addToLibrary(w, r)
	case http.MethodGet:
		rt.libraryView(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) addToLibrary(w http.ResponseWriter, r *http.Request) {
	var entry domain.LibraryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	stored, err := rt.libraryUC.Add(r.Context(), entry)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		if total, err := rt.libraryUC.Count(r.Context()); err == nil {
			rt.metrics.RecordLibraryAdd(serviceName, stored.Genre, total)
		}
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (rt *Router) libraryView(w http.ResponseWriter, r *http.Request) {
	view, ok := rt.buildView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) exportLibrary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	view, ok := rt.buildView(w, r)
	if !ok {
		return
	}

	workbook, err := export.LibraryXLSX(view.Entries)
	if err != nil {
		writeError(w, fmt.Errorf("export library: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="library.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (rt *Router) buildView(w http.ResponseWriter, r *http.Request) (usecase.LibraryView, bool) {
	key, err := usecase.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, err)
		return usecase.LibraryView{}, false
	}

	view, err := rt.libraryUC.View(r.Context(), r.URL.Query().Get("q"), key)
	if err != nil {
		writeError(w, err)
		return usecase.LibraryView{}, false
	}
	return view, true
}

func (rt *Router) recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	view, err := rt.libraryUC.Recommendations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if domain.IsKind(err, domain.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
