package analyses

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"resume-matcher/internal/documents"
	"resume-matcher/internal/match"
	"resume-matcher/internal/match/sections"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
)

const (
	defaultMaxUpload = 10 << 20
	formOverhead     = 1 << 20
)

// AnalyzeRequest is the JSON body of POST /analyses. The multipart upload
// endpoint reads the same fields from form values.
type AnalyzeRequest struct {
	ResumeText string `json:"resumeText" form:"resumeText" validate:"max=200000"`
	DocumentID string `json:"documentId" form:"documentId" validate:"omitempty,max=64"`
	JobText    string `json:"jobText" form:"jobText" validate:"max=100000"`
	JobURL     string `json:"jobUrl" form:"jobUrl" validate:"omitempty,url,max=2048"`
	Relocation string `json:"relocation" form:"relocation" validate:"omitempty,oneof=willing unwilling unspecified yes no true false"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.POST("/analyses/upload", h.analyzeUpload)
}

func (h *Handler) analyze(c *gin.Context) {
	var body AnalyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
		return
	}
	req, ok := h.buildRequest(c, body)
	if !ok {
		return
	}
	h.run(c, req)
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUpload
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+formOverhead)

	var body AnalyzeRequest
	if err := c.ShouldBind(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeValidation, "file exceeds upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid form body", nil)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "resume file is required", respond.Fields("resume", "required"))
		return
	}
	if fileHeader.Size > limit {
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeValidation, "file exceeds upload limit", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}

	req, ok := h.buildRequest(c, body)
	if !ok {
		return
	}
	req.Resume = &Upload{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	}
	h.run(c, req)
}

// buildRequest validates the body and writes the error response when it
// fails.
func (h *Handler) buildRequest(c *gin.Context, body AnalyzeRequest) (Request, bool) {
	if err := validate.Struct(body); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request", validationDetails(err))
		return Request{}, false
	}
	relocation, err := sections.ParseRelocation(body.Relocation)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		return Request{}, false
	}
	return Request{
		UserID:     middleware.UserIDFromContext(c),
		ResumeText: body.ResumeText,
		DocumentID: body.DocumentID,
		JobText:    body.JobText,
		JobURL:     body.JobURL,
		Relocation: relocation,
	}, true
}

func (h *Handler) run(c *gin.Context, req Request) {
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	ctx = WithRoute(ctx, c.FullPath())
	analysis, err := h.Svc.Analyze(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.AnalysisIDKey, analysis.ID)
	c.Set(middleware.JobTypeKey, string(analysis.JobType))
	if analysis.DocumentID != "" {
		c.Set(middleware.DocumentIDKey, analysis.DocumentID)
	}
	respond.OK(c, analysis)
}

func validationDetails(err error) []respond.FieldIssue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]respond.FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, respond.FieldIssue{Field: fe.Field(), Issue: fe.Tag()})
	}
	return details
}

func writeError(c *gin.Context, err error) {
	var inputErr *match.InputError
	switch {
	case errors.As(err, &inputErr):
		respond.Error(c, http.StatusBadRequest, ErrorCodeMissingInput, inputErr.Error(), respond.Fields(inputErr.Field, "empty"))
	case errors.Is(err, ErrExtraction):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeExtraction, err.Error(), nil)
	case errors.Is(err, ErrJobFetch):
		respond.Error(c, http.StatusBadGateway, ErrorCodeJobFetch, err.Error(), nil)
	case errors.Is(err, documents.ErrNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "document not found", nil)
	case errors.Is(err, documents.ErrInvalidInput), errors.Is(err, ErrDocumentsUnavailable):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
	default:
		_ = c.Error(err)
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "analysis failed", nil)
	}
}
