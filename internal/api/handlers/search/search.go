package search

import (
	"net/http"
	"strings"

	searchcore "recipe-search/internal/core/search"
	"recipe-search/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxQuestionLength bounds the query so a pasted document cannot be
// embedded wholesale.
const maxQuestionLength = 2000

// AskRequest is the search request body.
type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

// Handler serves recipe search requests through the worker queue.
type Handler struct {
	queue *searchcore.Queue
}

// NewHandler creates the search handler.
func NewHandler(queue *searchcore.Queue) *Handler {
	return &Handler{queue: queue}
}

// HandleAsk answers one natural-language recipe question.
func (h *Handler) HandleAsk(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req AskRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		common.LogWarn("invalid search request body",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, http.StatusBadRequest, common.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		respondError(c, http.StatusBadRequest, common.ErrCodeInvalidRequest, "question is required")
		return
	}
	if len(req.Question) > maxQuestionLength {
		respondError(c, http.StatusBadRequest, common.ErrCodeInvalidRequest, "question too long")
		return
	}

	resultCh, err := h.queue.Enqueue(c.Request.Context(), req.Question, req.TopK)
	if err != nil {
		common.LogWarn("failed to enqueue search",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, http.StatusServiceUnavailable, common.ErrCodeServiceUnavailable, "service temporarily unavailable")
		return
	}

	select {
	case resp := <-resultCh:
		c.JSON(http.StatusOK, resp)
	case <-c.Request.Context().Done():
		respondError(c, http.StatusGatewayTimeout, common.ErrCodeRequestTimeout, "request timeout")
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, common.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
