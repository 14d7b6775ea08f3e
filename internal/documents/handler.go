package documents

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvscreen-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches upload and search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload-cv/", h.upload)
	rg.GET("/search-cv/", h.search)
	rg.POST("/reextract-cv/", h.reextract)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	cv, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload CV", nil)
		}
		return
	}

	c.Set("cvId", cv.ID)
	respond.Created(c, toResponse(cv))
}

type reextractRequest struct {
	CVID string `json:"cv_id"`
}

func (h *Handler) reextract(c *gin.Context) {
	var req reextractRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CVID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "cv_id is required", nil)
		return
	}

	cv, err := h.Svc.Reextract(c.Request.Context(), req.CVID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "CV not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to re-extract CV", nil)
		}
		return
	}

	c.Set("cvId", cv.ID)
	respond.OK(c, toResponse(cv))
}

func (h *Handler) search(c *gin.Context) {
	keyword := c.Query("q")

	results, err := h.Svc.Search(c.Request.Context(), keyword)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Please provide a search keyword.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search CVs", nil)
		}
		return
	}

	if len(results) == 0 {
		respond.JSON(c, http.StatusNotFound, gin.H{"message": "No matching CVs found."})
		return
	}

	resp := make([]UploadedCVResponse, 0, len(results))
	for _, cv := range results {
		resp = append(resp, toResponse(cv))
	}
	respond.OK(c, resp)
}
