package conversationhandler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/infrastructure/metrics"
	"relay-server/services/control-api/internal/interfaces/httpserver/dto"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// ConversationHandler handles HTTP requests for conversations and their
// messages
type ConversationHandler struct {
	create *conversation.CreateConversationUseCase
	add    *conversation.AddMessageUseCase
	get    *conversation.GetConversationUseCase
	list   *conversation.ListConversationsUseCase
	rename *conversation.RenameConversationUseCase
	delete *conversation.DeleteConversationUseCase
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(
	create *conversation.CreateConversationUseCase,
	add *conversation.AddMessageUseCase,
	get *conversation.GetConversationUseCase,
	list *conversation.ListConversationsUseCase,
	rename *conversation.RenameConversationUseCase,
	del *conversation.DeleteConversationUseCase,
) *ConversationHandler {
	return &ConversationHandler{
		create: create,
		add:    add,
		get:    get,
		list:   list,
		rename: rename,
		delete: del,
	}
}

// ConversationResponse is the API response format for a conversation
type ConversationResponse struct {
	ID          string         `json:"id"`
	WorkspaceID string         `json:"workspace_id"`
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Model       string         `json:"model"`
	Provider    string         `json:"provider"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// MessageResponse is the API response format for a message
type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	Tokens         int    `json:"tokens"`
	Credits        int    `json:"credits"`
	CreatedAt      string `json:"created_at"`
}

// ConversationDetailResponse bundles a conversation with its messages
type ConversationDetailResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}

func toConversationResponse(c *conversation.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:          c.ID,
		WorkspaceID: c.WorkspaceID,
		UserID:      c.UserID,
		Title:       c.Title,
		Model:       c.Model,
		Provider:    c.Provider,
		Metadata:    c.Metadata,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}

func toMessageResponse(m *conversation.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           string(m.Role),
		Content:        m.Content,
		Tokens:         m.Tokens,
		Credits:        m.Credits,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}

// CreateRequest is the request body for creating a conversation
type CreateRequest struct {
	WorkspaceID string         `json:"workspace_id"`
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Model       string         `json:"model"`
	Provider    string         `json:"provider"`
	Metadata    map[string]any `json:"metadata"`
}

// Create handles POST /v1/conversations
func (h *ConversationHandler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	conv, err := h.create.Execute(c.Request.Context(), conversation.CreateConversationCommand{
		WorkspaceID: req.WorkspaceID,
		UserID:      req.UserID,
		Title:       req.Title,
		Model:       req.Model,
		Provider:    req.Provider,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics.ConversationsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"data": toConversationResponse(conv)})
}

// AddMessageRequest is the request body for appending a message
type AddMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Tokens  int    `json:"tokens"`
	Credits int    `json:"credits"`
}

// AddMessage handles POST /v1/conversations/:id/messages
func (h *ConversationHandler) AddMessage(c *gin.Context) {
	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	msg, err := h.add.Execute(c.Request.Context(), conversation.AddMessageCommand{
		ConversationID: c.Param("id"),
		Role:           req.Role,
		Content:        req.Content,
		Tokens:         req.Tokens,
		Credits:        req.Credits,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics.RecordMessageAdded(req.Role)
	c.JSON(http.StatusCreated, gin.H{"data": toMessageResponse(msg)})
}

// Get handles GET /v1/conversations/:id
func (h *ConversationHandler) Get(c *gin.Context) {
	detail, err := h.get.Execute(c.Request.Context(), conversation.GetConversationCommand{
		ConversationID: c.Param("id"),
		UserID:         c.Query("user_id"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	messages := make([]MessageResponse, 0, len(detail.Messages))
	for _, m := range detail.Messages {
		messages = append(messages, toMessageResponse(m))
	}

	c.JSON(http.StatusOK, gin.H{"data": ConversationDetailResponse{
		Conversation: toConversationResponse(detail.Conversation),
		Messages:     messages,
	}})
}

// List handles GET /v1/conversations
func (h *ConversationHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_query", Message: err.Error()})
		return
	}

	cmd := conversation.ListConversationsCommand{
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if workspaceID := c.Query("workspace_id"); workspaceID != "" {
		cmd.WorkspaceID = &workspaceID
	}
	if userID := c.Query("user_id"); userID != "" {
		cmd.UserID = &userID
	}

	page, err := h.list.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := make([]ConversationResponse, 0, len(page.Items))
	for _, conv := range page.Items {
		data = append(data, toConversationResponse(conv))
	}

	c.JSON(http.StatusOK, dto.ListResponse[ConversationResponse]{
		Data:    data,
		Total:   page.Total,
		HasMore: page.HasMore,
	})
}

// RenameRequest is the request body for renaming a conversation
type RenameRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}

// Rename handles PATCH /v1/conversations/:id
func (h *ConversationHandler) Rename(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	conv, err := h.rename.Execute(c.Request.Context(), conversation.RenameConversationCommand{
		ConversationID: c.Param("id"),
		UserID:         req.UserID,
		Title:          req.Title,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toConversationResponse(conv)})
}

// Delete handles DELETE /v1/conversations/:id
func (h *ConversationHandler) Delete(c *gin.Context) {
	err := h.delete.Execute(c.Request.Context(), conversation.DeleteConversationCommand{
		ConversationID: c.Param("id"),
		UserID:         c.Query("user_id"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics.RecordConversationDeleted("api")
	c.Status(http.StatusNoContent)
}

func (h *ConversationHandler) handleError(c *gin.Context, err error) {
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
