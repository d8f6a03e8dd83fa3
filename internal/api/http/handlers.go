package http

import (
	"net/http"

	"github.com/GriffinCanCode/CareFlow/internal/api/middleware"
	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/logging"
	"github.com/GriffinCanCode/CareFlow/internal/service"
	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"github.com/GriffinCanCode/CareFlow/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by Root
const Version = "1.0.0"

// EndpointLister lists configured flows. The flow gateway satisfies it.
type EndpointLister interface {
	Endpoints() []types.EndpointConfig
}

// Handlers contains all HTTP handlers
type Handlers struct {
	assistant *service.Assistant
	endpoints EndpointLister
	renderer  *Renderer
	logger    *logging.Logger
	maxUpload int64
}

// NewHandlers creates a new handler set. maxUpload bounds a multipart body.
func NewHandlers(assistant *service.Assistant, endpoints EndpointLister, renderer *Renderer, logger *logging.Logger, maxUpload int64) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &Handlers{
		assistant: assistant,
		endpoints: endpoints,
		renderer:  renderer,
		logger:    logger.Named("handlers"),
		maxUpload: maxUpload,
	}
}

// flowStatus is the public view of a configured flow
type flowStatus struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

// Root handles the status check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "online",
		"service":    "CareFlow Gateway",
		"version":    Version,
		"operations": service.Operations(),
	})
}

// Health lists the configured flows
func (h *Handlers) Health(c *gin.Context) {
	endpoints := h.endpoints.Endpoints()
	flows := make([]flowStatus, 0, len(endpoints))
	for _, ep := range endpoints {
		flows = append(flows, flowStatus{Key: ep.Key, DisplayName: ep.DisplayName})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"flows":  flows,
	})
}

// AskQuestion answers a medical question
func (h *Handlers) AskQuestion(c *gin.Context) {
	var req types.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := utils.ValidateMessage(req.Question, "question", true); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.respond(c, h.assistant.AskQuestion(c.Request.Context(), req.Question))
}

// FindHospitals searches for hospitals near an optional location
func (h *Handlers) FindHospitals(c *gin.Context) {
	var req types.HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := utils.ValidateHospitalSearch(req.Query, req.Location); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.respond(c, h.assistant.FindHospitals(c.Request.Context(), req.Query, req.Location))
}

// Analyze returns the handler for a file-accepting operation. The body is
// either JSON {message} or multipart with a message field and files parts.
func (h *Handlers) Analyze(operationID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		message, attachments, err := h.readAnalysis(c)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := utils.ValidateMessage(message, "message", len(attachments) == 0); err != nil {
			badRequest(c, err.Error())
			return
		}

		result, err := h.assistant.Analyze(c.Request.Context(), operationID, message, attachments...)
		if err != nil {
			h.logger.Error("Analysis route misconfigured", zap.String("operation", operationID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.respond(c, result)
	}
}

// respond writes result with status 200, rendering HTML when requested
func (h *Handlers) respond(c *gin.Context, result *types.InvocationResult) {
	resp := types.ResultResponse{
		InvocationResult: result,
		RequestID:        middleware.GetRequestID(c),
	}

	if c.Query("format") == "html" {
		html, err := h.renderer.Render(result.Message)
		if err != nil {
			h.logger.Warn("Failed to render message", zap.String("endpoint", result.Endpoint), zap.Error(err))
		} else {
			resp.HTML = html
		}
	}

	c.JSON(http.StatusOK, resp)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
