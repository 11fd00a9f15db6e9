package main

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/equinoxlabs/content-engine/internal/config"
	"github.com/equinoxlabs/content-engine/internal/models"
	"github.com/equinoxlabs/content-engine/internal/pipeline"
	"github.com/equinoxlabs/content-engine/internal/store"
)

type server struct {
	log   *slog.Logger
	cfg   *config.Server
	store *store.Store
	pipe  *pipeline.Pipeline
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"reports": s.store.Len(),
		"running": s.pipe.Running(),
	})
}

// handleHome serves the catalog groupings: the first three reports as
// featured, the next six as trending.
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"featured": s.store.Slice(0, 3),
		"trending": s.store.Slice(3, 9),
	})
}

func (s *server) handleListReports(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	offset := clampInt(r.URL.Query().Get("offset"), 0, 10_000)
	limit := clampInt(r.URL.Query().Get("limit"), s.cfg.DefaultPage, s.cfg.MaxPage)

	var reports []models.Report
	if category != "" {
		reports = s.store.ByCategory(category)
	} else {
		reports = s.store.All()
	}

	total := len(reports)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total": total,
		"items": reports[offset:end],
	})
}

func (s *server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	report, ok := s.store.BySlug(slug)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "report not found"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": models.Categories})
}

func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"running": s.pipe.Running(),
		"events":  s.pipe.Events(),
	})
}

type generateRequest struct {
	Count int `json:"count"`
}

// handleGenerate triggers a bulk batch. A run already in flight makes
// the trigger a no-op and reports 409.
func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	count := req.Count
	if count <= 0 {
		count = s.cfg.SeedBatchSize
	}
	if count > s.cfg.MaxBatchSize {
		count = s.cfg.MaxBatchSize
	}

	// The batch outlives the request; detach it from the request ctx.
	if err := s.pipe.Trigger(context.WithoutCancel(r.Context()), count); err != nil {
		if errors.Is(err, pipeline.ErrBusy) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "batch already running"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status": "started",
		"count":  count,
	})
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// handleSitemap renders an XML sitemap over the published slugs.
func (s *server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	sm := sitemap{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, report := range s.store.All() {
		sm.URLs = append(sm.URLs, sitemapURL{
			Loc:     fmt.Sprintf("/reports/%s", report.Slug),
			LastMod: report.UpdatedAt.Format("2006-01-02"),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(w).Encode(sm); err != nil {
		s.log.Warn("encode sitemap", slog.Any("err", err))
	}
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
