package candidates

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvscreen-backend/internal/llm"
	"cvscreen-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the candidates service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis and chatbot routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-cv/", h.analyze)
	rg.POST("/chatbot/", h.chatbot)
}

type analyzeRequest struct {
	CVID string `json:"cv_id"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.CVID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "cv_id is required", nil)
		return
	}
	c.Set("cvId", req.CVID)

	cand, err := h.Svc.Analyze(c.Request.Context(), req.CVID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "CV not found", nil)
		case errors.Is(err, ErrNoExtractedText):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No extracted text found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, llm.Reason(err), err.Error(), nil)
		}
		return
	}

	c.Set("candidateId", cand.ID)
	respond.OK(c, gin.H{
		"message":      "CV analyzed and stored successfully",
		"candidate_id": cand.ID,
	})
}

type chatbotRequest struct {
	Query string `json:"query"`
}

func (h *Handler) chatbot(c *gin.Context) {
	var req chatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	results, err := h.Svc.Query(c.Request.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyQuery):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Query is required.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, llm.Reason(err), err.Error(), nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"query":   strings.TrimSpace(req.Query),
		"results": results,
	})
}
