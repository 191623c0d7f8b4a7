package presethandler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"relay-server/services/control-api/internal/domain/preset"
	"relay-server/services/control-api/internal/infrastructure/metrics"
	"relay-server/services/control-api/internal/interfaces/httpserver/dto"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// PresetHandler handles HTTP requests for presets
type PresetHandler struct {
	create *preset.CreatePresetUseCase
	get    *preset.GetPresetUseCase
	list   *preset.ListPresetsUseCase
	update *preset.UpdatePresetUseCase
	delete *preset.DeletePresetUseCase
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(
	create *preset.CreatePresetUseCase,
	get *preset.GetPresetUseCase,
	list *preset.ListPresetsUseCase,
	update *preset.UpdatePresetUseCase,
	del *preset.DeletePresetUseCase,
) *PresetHandler {
	return &PresetHandler{
		create: create,
		get:    get,
		list:   list,
		update: update,
		delete: del,
	}
}

// PresetResponse is the API response format for a preset
type PresetResponse struct {
	ID          string         `json:"id"`
	WorkspaceID *string        `json:"workspace_id,omitempty"`
	IsSystem    bool           `json:"is_system"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Template    string         `json:"template"`
	Model       string         `json:"model"`
	Parameters  map[string]any `json:"parameters"`
	IsPublic    bool           `json:"is_public"`
	UsageCount  int64          `json:"usage_count"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

func toResponse(p *preset.Preset) PresetResponse {
	resp := PresetResponse{
		ID:          p.ID,
		IsSystem:    p.IsSystemPreset(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Template:    p.Template,
		Model:       p.Model,
		Parameters:  p.Parameters,
		IsPublic:    p.IsPublic,
		UsageCount:  p.UsageCount,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if owner, ok := p.Scope.WorkspaceID(); ok {
		resp.WorkspaceID = &owner
	}
	return resp
}

// CreateRequest is the request body for creating a preset. Omitting
// workspace_id creates a protected system preset.
type CreateRequest struct {
	WorkspaceID *string        `json:"workspace_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Template    string         `json:"template"`
	Model       string         `json:"model"`
	Parameters  map[string]any `json:"parameters"`
	IsPublic    bool           `json:"is_public"`
}

// Create handles POST /v1/presets
func (h *PresetHandler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	p, err := h.create.Execute(c.Request.Context(), preset.CreatePresetCommand{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Template:    req.Template,
		Model:       req.Model,
		Parameters:  req.Parameters,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics.RecordPresetCreated(p.IsSystemPreset())
	c.JSON(http.StatusCreated, gin.H{"data": toResponse(p)})
}

// Get handles GET /v1/presets/:id. Every successful retrieval counts toward
// the preset's usage.
func (h *PresetHandler) Get(c *gin.Context) {
	cmd := preset.GetPresetCommand{PresetID: c.Param("id")}
	if workspaceID := c.Query("workspace_id"); workspaceID != "" {
		cmd.CallerWorkspaceID = &workspaceID
	}

	p, err := h.get.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics.PresetUsageTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"data": toResponse(p)})
}

// List handles GET /v1/presets
func (h *PresetHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_query", Message: err.Error()})
		return
	}

	cmd := preset.ListPresetsCommand{
		IncludeSystemPresets: c.Query("include_system") == "true",
		Limit:                q.Limit,
		Offset:               q.Offset,
	}
	if workspaceID := c.Query("workspace_id"); workspaceID != "" {
		cmd.WorkspaceID = &workspaceID
	}
	if category := c.Query("category"); category != "" {
		cmd.Category = &category
	}
	if isPublicStr := c.Query("is_public"); isPublicStr != "" {
		isPublic := isPublicStr == "true"
		cmd.IsPublic = &isPublic
	}

	presets, err := h.list.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := make([]PresetResponse, 0, len(presets))
	for _, p := range presets {
		data = append(data, toResponse(p))
	}

	c.JSON(http.StatusOK, dto.ListResponse[PresetResponse]{
		Data:  data,
		Total: int64(len(data)),
	})
}

// UpdateRequest is the request body for partially updating a preset
type UpdateRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	Template    *string        `json:"template"`
	Model       *string        `json:"model"`
	Parameters  map[string]any `json:"parameters"`
	IsPublic    *bool          `json:"is_public"`
}

// Update handles PATCH /v1/presets/:id
func (h *PresetHandler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	p, err := h.update.Execute(c.Request.Context(), preset.UpdatePresetCommand{
		PresetID:    c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Template:    req.Template,
		Model:       req.Model,
		Parameters:  req.Parameters,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toResponse(p)})
}

// Delete handles DELETE /v1/presets/:id
func (h *PresetHandler) Delete(c *gin.Context) {
	cmd := preset.DeletePresetCommand{PresetID: c.Param("id")}
	if workspaceID := c.Query("workspace_id"); workspaceID != "" {
		cmd.CallerWorkspaceID = &workspaceID
	}

	if err := h.delete.Execute(c.Request.Context(), cmd); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RenderRequest is the request body for rendering a preset template
type RenderRequest struct {
	WorkspaceID *string        `json:"workspace_id"`
	Variables   map[string]any `json:"variables"`
}

// Render handles POST /v1/presets/:id/render. Rendering goes through the
// retrieval use case, so it counts toward usage like any other fetch.
func (h *PresetHandler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	p, err := h.get.Execute(c.Request.Context(), preset.GetPresetCommand{
		PresetID:          c.Param("id"),
		CallerWorkspaceID: req.WorkspaceID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	rendered, err := p.Render(c.Request.Context(), req.Variables)
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics.PresetUsageTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"rendered": rendered, "model": p.Model, "parameters": p.Parameters}})
}

func (h *PresetHandler) handleError(c *gin.Context, err error) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		status := platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
		c.JSON(status, dto.ErrorResponse{
			Error:   strings.ToLower(string(platformErr.Type)),
			Message: platformErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal_error", Message: err.Error()})
}
