package api

import (
	"log/slog"
	"net/http"
	"strconv"
)

// Sitemap handles GET /sitemap.xml. The number of prefecture fallbacks and
// skipped records is exposed in response headers.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, rep, err := h.svc.Sitemap(r.Context())
	if err != nil {
		slog.Error("sitemap failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("X-Sitemap-Fallbacks", strconv.Itoa(len(rep.Fallbacks)))
	w.Header().Set("X-Sitemap-Skipped", strconv.Itoa(len(rep.Skipped)))
	writeBody(w, r, "application/xml; charset=utf-8", body)
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	writeBody(w, r, "text/plain; charset=utf-8", []byte(h.svc.Robots()))
}
