package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sectiontoc/internal/contextutil"
	"sectiontoc/internal/service"
	"sectiontoc/internal/toc"
)

// Query parameters understood by the TOC endpoints.
const (
	paramPages          = "pages"
	paramCurrentPage    = "page"
	paramExclude        = "exclude"
	paramMode           = "mode"
	paramIncludeColPos  = "includeColPos"
	paramExcludeColPos  = "excludeColPos"
	paramMaxDepth       = "maxDepth"
	paramAnchorOverride = "anchorOverride"
)

// TocHandler handles HTTP requests for tables of contents.
type TocHandler struct {
	tocService service.TocService
	logger     *slog.Logger
}

// NewTocHandler creates a new TocHandler.
func NewTocHandler(tocService service.TocService) *TocHandler {
	return &TocHandler{
		tocService: tocService,
		logger:     slog.Default(),
	}
}

// TocResponse represents the HTTP response payload for a table of contents.
type TocResponse struct {
	Items   []toc.Entry `json:"items"`
	Count   int         `json:"count"`
	PageIDs []int       `json:"page_ids"`
}

func newTocResponse(resp service.TocResponse) TocResponse {
	items := resp.Entries
	if items == nil {
		items = []toc.Entry{}
	}
	return TocResponse{Items: items, Count: len(items), PageIDs: resp.PageIDs}
}

// ServeHTTP handles GET /api/toc.
//
// Query parameters: pages (comma-separated ids or "this"), page (current page
// id), exclude (current element id), mode, includeColPos, excludeColPos,
// maxDepth and anchorOverride.
func (h *TocHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContextOr(ctx, h.logger)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, msg := parseTocQuery(r.URL.Query())
	if msg != "" {
		logger.WarnContext(ctx, "invalid query", "error", msg)
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resp, err := h.tocService.BuildToc(ctx, req)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to build table of contents")
		return
	}

	writeJSON(ctx, logger, w, http.StatusOK, newTocResponse(resp))
}

// ServePage handles GET /api/pages/{pageID}/toc.
func (h *TocHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContextOr(ctx, h.logger)

	pageID, err := strconv.Atoi(chi.URLParam(r, "pageID"))
	if err != nil || pageID <= 0 {
		logger.WarnContext(ctx, "invalid page id", "page_id", chi.URLParam(r, "pageID"))
		writeError(w, http.StatusBadRequest, "Invalid page id")
		return
	}

	req, msg := parseTocQuery(r.URL.Query())
	if msg != "" {
		logger.WarnContext(ctx, "invalid query", "error", msg)
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resp, err := h.tocService.PageToc(ctx, pageID, req)
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to build table of contents")
		return
	}

	writeJSON(ctx, logger, w, http.StatusOK, newTocResponse(resp))
}

// parseTocQuery converts query parameters to a service request. Only the
// integer and boolean parameters can be malformed; the message says which.
func parseTocQuery(q url.Values) (service.TocRequest, string) {
	req := service.TocRequest{
		Pages:         q.Get(paramPages),
		Mode:          q.Get(paramMode),
		IncludeColPos: q.Get(paramIncludeColPos),
		ExcludeColPos: q.Get(paramExcludeColPos),
		MaxDepth:      q.Get(paramMaxDepth),
	}

	if v := strings.TrimSpace(q.Get(paramCurrentPage)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return service.TocRequest{}, "Invalid page parameter"
		}
		req.CurrentPageID = n
	}

	if v := strings.TrimSpace(q.Get(paramExclude)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return service.TocRequest{}, "Invalid exclude parameter"
		}
		req.CurrentElementID = n
	}

	if v := strings.TrimSpace(q.Get(paramAnchorOverride)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return service.TocRequest{}, "Invalid anchorOverride parameter"
		}
		req.UseAnchorOverride = &b
	}

	return req, ""
}
