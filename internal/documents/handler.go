package documents

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
)

const (
	defaultMaxUpload = 10 << 20
	// multipart framing on top of the file itself
	formOverhead = 1 << 20
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group. All routes
// require a caller identity.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/documents", middleware.RequireIdentity())
	docs.POST("", h.upload)
	docs.GET("", h.list)
	docs.GET("/current", h.current)
	docs.GET("/:id", h.get)
	docs.GET("/:id/text", h.text)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit := h.Svc.MaxBytes
	if limit <= 0 {
		limit = defaultMaxUpload
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+formOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file exceeds upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.DocumentIDKey, doc.ID)
	respond.Created(c, c.FullPath()+"/"+doc.ID, toResponse(doc))
}

func (h *Handler) current(c *gin.Context) {
	doc, err := h.Svc.Current(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.DocumentIDKey, doc.ID)
	respond.OK(c, toResponse(doc))
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.DocumentIDKey, doc.ID)
	respond.OK(c, toResponse(doc))
}

func (h *Handler) text(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.Svc.Get(ctx, middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.DocumentIDKey, doc.ID)
	text, err := h.Svc.Text(ctx, doc)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, TextResponse{DocumentID: doc.ID, Text: text, Characters: len([]rune(text))})
}

func (h *Handler) list(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	docs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func queryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, extract.ErrExtraction):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", err.Error(), nil)
	default:
		_ = c.Error(err)
		respond.Error(c, http.StatusInternalServerError, "internal", "document request failed", nil)
	}
}
