package insight

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mx-space/docinsight/internal/modules/history"
	"github.com/mx-space/docinsight/internal/modules/processing/extract"
	"github.com/mx-space/docinsight/internal/pkg/response"
)

const (
	msgOnlyPDF        = "Only PDF files are supported."
	msgReadFailed     = "Failed to read PDF: "
	msgNoReadableText = "No readable text found in PDF."
	msgNotFound       = "Document not found"
	msgMissingFile    = "Field 'file' is required."
	msgTooLarge       = "File too large."
)

type Handler struct {
	svc            *Service
	maxUploadBytes int64
}

func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload-resume", h.upload)
	rg.GET("/insights", h.insights)
}

// POST /upload-resume
func (h *Handler) upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			response.TooLarge(c, msgTooLarge)
			return
		}
		response.UnprocessableEntity(c, msgMissingFile)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		response.BadRequest(c, msgOnlyPDF)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	item, err := h.svc.Ingest(c.Request.Context(), fh.Filename, data)
	if err != nil {
		var unreadable *extract.DocumentUnreadableError
		switch {
		case errors.As(err, &unreadable):
			response.BadRequest(c, msgReadFailed+unreadable.Error())
		case errors.Is(err, ErrNoReadableText):
			response.BadRequest(c, msgNoReadableText)
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, item)
}

// GET /insights?id=
func (h *Handler) insights(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		items, err := h.svc.List(c.Request.Context())
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.List(c, items)
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, history.ErrRecordNotFound) {
			response.NotFoundMsg(c, msgNotFound)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, item)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
