package conversation_test

import (
	"context"
	"errors"
	"testing"

	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/domain/query"
	"relay-server/services/control-api/internal/domain/user"
	"relay-server/services/control-api/internal/domain/workspace"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

const (
	testWorkspaceID = "ws_a3f8d2k9p1m4n7q2"
	testUserID      = "user_b4g9e3l0q2n5p8r3"
	otherUserID     = "user_x0y1z2w3v4u5t6s7"
)

// mockConversationRepository is a func-field mock of ConversationRepository.
// Only the fields a test sets are exercised.
type mockConversationRepository struct {
	SaveFunc              func(ctx context.Context, conv *conversation.Conversation) error
	FindByIDFunc          func(ctx context.Context, id string) (*conversation.Conversation, error)
	FindByWorkspaceIDFunc func(ctx context.Context, workspaceID string) ([]*conversation.Conversation, error)
	FindByUserIDFunc      func(ctx context.Context, userID string) ([]*conversation.Conversation, error)
	FindByFilterFunc      func(ctx context.Context, filter conversation.ConversationFilter, pagination *query.Pagination) ([]*conversation.Conversation, error)
	CountFunc             func(ctx context.Context, filter conversation.ConversationFilter) (int64, error)
	FindPageFunc          func(ctx context.Context, filter conversation.ConversationFilter, pagination *query.Pagination) (query.Page[*conversation.Conversation], error)
	DeleteFunc            func(ctx context.Context, id string) error
}

func (m *mockConversationRepository) Save(ctx context.Context, conv *conversation.Conversation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, conv)
	}
	return nil
}

func (m *mockConversationRepository) FindByID(ctx context.Context, id string) (*conversation.Conversation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, notFoundErr(ctx, "conversation not found")
}

func (m *mockConversationRepository) FindByWorkspaceID(ctx context.Context, workspaceID string) ([]*conversation.Conversation, error) {
	if m.FindByWorkspaceIDFunc != nil {
		return m.FindByWorkspaceIDFunc(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockConversationRepository) FindByUserID(ctx context.Context, userID string) ([]*conversation.Conversation, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockConversationRepository) FindByFilter(ctx context.Context, filter conversation.ConversationFilter, pagination *query.Pagination) ([]*conversation.Conversation, error) {
	if m.FindByFilterFunc != nil {
		return m.FindByFilterFunc(ctx, filter, pagination)
	}
	return nil, nil
}

func (m *mockConversationRepository) Count(ctx context.Context, filter conversation.ConversationFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockConversationRepository) FindPage(ctx context.Context, filter conversation.ConversationFilter, pagination *query.Pagination) (query.Page[*conversation.Conversation], error) {
	if m.FindPageFunc != nil {
		return m.FindPageFunc(ctx, filter, pagination)
	}
	return query.Page[*conversation.Conversation]{}, nil
}

func (m *mockConversationRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockMessageRepository is a func-field mock of MessageRepository.
type mockMessageRepository struct {
	CreateFunc                 func(ctx context.Context, msg *conversation.Message) error
	SaveFunc                   func(ctx context.Context, msg *conversation.Message) error
	FindByIDFunc               func(ctx context.Context, id string) (*conversation.Message, error)
	FindByConversationIDFunc   func(ctx context.Context, conversationID string) ([]*conversation.Message, error)
	CountByConversationIDFunc  func(ctx context.Context, conversationID string) (int64, error)
	DeleteByConversationIDFunc func(ctx context.Context, conversationID string) error
	DeleteFunc                 func(ctx context.Context, id string) error
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *conversation.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) Save(ctx context.Context, msg *conversation.Message) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) FindByID(ctx context.Context, id string) (*conversation.Message, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, notFoundErr(ctx, "message not found")
}

func (m *mockMessageRepository) FindByConversationID(ctx context.Context, conversationID string) ([]*conversation.Message, error) {
	if m.FindByConversationIDFunc != nil {
		return m.FindByConversationIDFunc(ctx, conversationID)
	}
	return nil, nil
}

func (m *mockMessageRepository) CountByConversationID(ctx context.Context, conversationID string) (int64, error) {
	if m.CountByConversationIDFunc != nil {
		return m.CountByConversationIDFunc(ctx, conversationID)
	}
	return 0, nil
}

func (m *mockMessageRepository) DeleteByConversationID(ctx context.Context, conversationID string) error {
	if m.DeleteByConversationIDFunc != nil {
		return m.DeleteByConversationIDFunc(ctx, conversationID)
	}
	return nil
}

func (m *mockMessageRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockLookupRepository serves both workspace.Repository and user.Repository.
type mockLookupRepository struct {
	existing map[string]bool
}

func (m *mockLookupRepository) Exists(ctx context.Context, id string) (bool, error) {
	return m.existing[id], nil
}

func (m *mockLookupRepository) FindByID(ctx context.Context, id string) (*workspace.Workspace, error) {
	if m.existing[id] {
		return &workspace.Workspace{ID: id}, nil
	}
	return nil, notFoundErr(ctx, "workspace not found")
}

type mockUserRepository struct {
	existing map[string]bool
}

func (m *mockUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	return m.existing[id], nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if m.existing[id] {
		return &user.User{ID: id}, nil
	}
	return nil, notFoundErr(ctx, "user not found")
}

func notFoundErr(ctx context.Context, msg string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		msg, nil, "00000000-0000-4000-8000-000000000000")
}

func ownedConversation(id string) *conversation.Conversation {
	return &conversation.Conversation{
		ID:          id,
		WorkspaceID: testWorkspaceID,
		UserID:      testUserID,
		Title:       "Planning",
		Model:       "gpt-4o",
		Provider:    "openai",
	}
}

func TestCreateConversationUseCase(t *testing.T) {
	ctx := context.Background()

	cmd := conversation.CreateConversationCommand{
		WorkspaceID: testWorkspaceID,
		UserID:      testUserID,
		Title:       "Planning",
		Model:       "gpt-4o",
		Provider:    "openai",
		Metadata:    map[string]any{"source": "mobile"},
	}

	t.Run("workspace missing", func(t *testing.T) {
		uc := conversation.NewCreateConversationUseCase(
			&mockConversationRepository{},
			&mockLookupRepository{},
			&mockUserRepository{existing: map[string]bool{testUserID: true}},
		)

		_, err := uc.Execute(ctx, cmd)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
		assertMessage(t, err, "Workspace not found")
	})

	t.Run("user missing", func(t *testing.T) {
		uc := conversation.NewCreateConversationUseCase(
			&mockConversationRepository{},
			&mockLookupRepository{existing: map[string]bool{testWorkspaceID: true}},
			&mockUserRepository{},
		)

		_, err := uc.Execute(ctx, cmd)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
		assertMessage(t, err, "User not found")
	})

	t.Run("invalid command never reaches repositories", func(t *testing.T) {
		called := false
		uc := conversation.NewCreateConversationUseCase(
			&mockConversationRepository{
				SaveFunc: func(ctx context.Context, conv *conversation.Conversation) error {
					called = true
					return nil
				},
			},
			&mockLookupRepository{existing: map[string]bool{testWorkspaceID: true}},
			&mockUserRepository{existing: map[string]bool{testUserID: true}},
		)

		bad := cmd
		bad.Title = "  "
		_, err := uc.Execute(ctx, bad)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			t.Errorf("expected VALIDATION, got %v", err)
		}
		if called {
			t.Error("Save must not run for an invalid command")
		}
	})

	t.Run("success persists new conversation", func(t *testing.T) {
		var saved *conversation.Conversation
		uc := conversation.NewCreateConversationUseCase(
			&mockConversationRepository{
				SaveFunc: func(ctx context.Context, conv *conversation.Conversation) error {
					saved = conv
					return nil
				},
			},
			&mockLookupRepository{existing: map[string]bool{testWorkspaceID: true}},
			&mockUserRepository{existing: map[string]bool{testUserID: true}},
		)

		conv, err := uc.Execute(ctx, cmd)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if saved == nil || saved.ID != conv.ID {
			t.Fatal("conversation not persisted")
		}
		if conv.WorkspaceID != testWorkspaceID || conv.UserID != testUserID {
			t.Error("ownership fields not carried over")
		}
		if saved.Metadata["source"] != "mobile" {
			t.Errorf("Metadata = %v, want carried to the repository", saved.Metadata)
		}
	})
}

func TestAddMessageUseCase(t *testing.T) {
	ctx := context.Background()
	convID := "conv_a3f8d2k9p1m4n7q2"

	cmd := conversation.AddMessageCommand{
		ConversationID: convID,
		Role:           "user",
		Content:        "Hello",
		Tokens:         3,
		Credits:        1,
	}

	t.Run("conversation missing", func(t *testing.T) {
		uc := conversation.NewAddMessageUseCase(&mockConversationRepository{}, &mockMessageRepository{})

		_, err := uc.Execute(ctx, cmd)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
		assertMessage(t, err, "Conversation not found")
	})

	t.Run("success creates message bound to conversation", func(t *testing.T) {
		var created *conversation.Message
		uc := conversation.NewAddMessageUseCase(
			&mockConversationRepository{
				FindByIDFunc: func(ctx context.Context, id string) (*conversation.Conversation, error) {
					return ownedConversation(id), nil
				},
			},
			&mockMessageRepository{
				CreateFunc: func(ctx context.Context, msg *conversation.Message) error {
					created = msg
					return nil
				},
			},
		)

		msg, err := uc.Execute(ctx, cmd)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if created == nil {
			t.Fatal("message not persisted")
		}
		if msg.ConversationID != convID {
			t.Errorf("ConversationID = %q, want %q", msg.ConversationID, convID)
		}
		if msg.Role != conversation.MessageRoleUser {
			t.Errorf("Role = %q", msg.Role)
		}
	})
}

func TestGetConversationUseCase(t *testing.T) {
	ctx := context.Background()
	convID := "conv_a3f8d2k9p1m4n7q2"

	t.Run("not found", func(t *testing.T) {
		uc := conversation.NewGetConversationUseCase(&mockConversationRepository{}, &mockMessageRepository{})

		_, err := uc.Execute(ctx, conversation.GetConversationCommand{ConversationID: convID, UserID: testUserID})
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("non-owner gets no data", func(t *testing.T) {
		messagesTouched := false
		uc := conversation.NewGetConversationUseCase(
			&mockConversationRepository{
				FindByIDFunc: func(ctx context.Context, id string) (*conversation.Conversation, error) {
					return ownedConversation(id), nil
				},
			},
			&mockMessageRepository{
				FindByConversationIDFunc: func(ctx context.Context, conversationID string) ([]*conversation.Message, error) {
					messagesTouched = true
					return nil, nil
				},
			},
		)

		detail, err := uc.Execute(ctx, conversation.GetConversationCommand{ConversationID: convID, UserID: otherUserID})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Errorf("expected FORBIDDEN, got %v", err)
		}
		assertMessage(t, err, "Unauthorized")
		if detail != nil {
			t.Error("no detail may leak to a non-owner")
		}
		if messagesTouched {
			t.Error("messages must not be loaded for a non-owner")
		}
	})

	t.Run("owner gets conversation with messages", func(t *testing.T) {
		msgs := []*conversation.Message{
			{ID: "msg_000000000000000a", ConversationID: convID, Role: conversation.MessageRoleUser, Content: "Hi"},
			{ID: "msg_000000000000000b", ConversationID: convID, Role: conversation.MessageRoleAssistant, Content: "Hello"},
		}
		uc := conversation.NewGetConversationUseCase(
			&mockConversationRepository{
				FindByIDFunc: func(ctx context.Context, id string) (*conversation.Conversation, error) {
					return ownedConversation(id), nil
				},
			},
			&mockMessageRepository{
				FindByConversationIDFunc: func(ctx context.Context, conversationID string) ([]*conversation.Message, error) {
					return msgs, nil
				},
			},
		)

		detail, err := uc.Execute(ctx, conversation.GetConversationCommand{ConversationID: convID, UserID: testUserID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if detail.Conversation.ID != convID {
			t.Errorf("Conversation.ID = %q", detail.Conversation.ID)
		}
		if len(detail.Messages) != 2 {
			t.Fatalf("got %d messages, want 2", len(detail.Messages))
		}
		if detail.Messages[0].ID != "msg_000000000000000a" {
			t.Error("message order not preserved")
		}
	})
}

func TestListConversationsUseCase(t *testing.T) {
	ctx := context.Background()
	ws := testWorkspaceID

	uc := conversation.NewListConversationsUseCase(&mockConversationRepository{
		FindPageFunc: func(ctx context.Context, filter conversation.ConversationFilter, pagination *query.Pagination) (query.Page[*conversation.Conversation], error) {
			if filter.WorkspaceID == nil || *filter.WorkspaceID != ws {
				t.Error("workspace filter not forwarded")
			}
			if pagination.Limit == nil || *pagination.Limit != 2 {
				t.Error("limit not forwarded")
			}
			return query.Page[*conversation.Conversation]{
				Items:   []*conversation.Conversation{ownedConversation("conv_000000000000000a"), ownedConversation("conv_000000000000000b")},
				Total:   5,
				HasMore: true,
			}, nil
		},
	})

	page, err := uc.Execute(ctx, conversation.ListConversationsCommand{WorkspaceID: &ws, Limit: 2})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if page.Total != 5 || !page.HasMore {
		t.Errorf("page = %+v", page)
	}
	if len(page.Items) != 2 {
		t.Errorf("got %d items, want 2", len(page.Items))
	}
}

func TestRenameConversationUseCase(t *testing.T) {
	ctx := context.Background()
	convID := "conv_a3f8d2k9p1m4n7q2"

	t.Run("non-owner rejected", func(t *testing.T) {
		uc := conversation.NewRenameConversationUseCase(&mockConversationRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*conversation.Conversation, error) {
				return ownedConversation(id), nil
			},
		})

		_, err := uc.Execute(ctx, conversation.RenameConversationCommand{
			ConversationID: convID,
			UserID:         otherUserID,
			Title:          "Hijacked",
		})
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Errorf("expected FORBIDDEN, got %v", err)
		}
		assertMessage(t, err, "Unauthorized")
	})

	t.Run("owner renames and persists", func(t *testing.T) {
		var saved *conversation.Conversation
		uc := conversation.NewRenameConversationUseCase(&mockConversationRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*conversation.Conversation, error) {
				return ownedConversation(id), nil
			},
			SaveFunc: func(ctx context.Context, conv *conversation.Conversation) error {
				saved = conv
				return nil
			},
		})

		conv, err := uc.Execute(ctx, conversation.RenameConversationCommand{
			ConversationID: convID,
			UserID:         testUserID,
			Title:          "Renamed",
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if conv.Title != "Renamed" {
			t.Errorf("Title = %q", conv.Title)
		}
		if saved == nil || saved.Title != "Renamed" {
			t.Error("rename not persisted")
		}
	})
}

func TestDeleteConversationUseCase(t *testing.T) {
	ctx := context.Background()
	convID := "conv_a3f8d2k9p1m4n7q2"

	t.Run("non-owner rejected before any delete", func(t *testing.T) {
		deleted := false
		uc := conversation.NewDeleteConversationUseCase(
			&mockConversationRepository{
				FindByIDFunc: func(ctx context.Context, id string) (*conversation.Conversation, error) {
					return ownedConversation(id), nil
				},
				DeleteFunc: func(ctx context.Context, id string) error {
					deleted = true
					return nil
				},
			},
			&mockMessageRepository{
				DeleteByConversationIDFunc: func(ctx context.Context, conversationID string) error {
					deleted = true
					return nil
				},
			},
		)

		err := uc.Execute(ctx, conversation.DeleteConversationCommand{ConversationID: convID, UserID: otherUserID})
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Errorf("expected FORBIDDEN, got %v", err)
		}
		if deleted {
			t.Error("nothing may be deleted for a non-owner")
		}
	})

	t.Run("messages are deleted before the conversation", func(t *testing.T) {
		var order []string
		uc := conversation.NewDeleteConversationUseCase(
			&mockConversationRepository{
				FindByIDFunc: func(ctx context.Context, id string) (*conversation.Conversation, error) {
					return ownedConversation(id), nil
				},
				DeleteFunc: func(ctx context.Context, id string) error {
					order = append(order, "conversation")
					return nil
				},
			},
			&mockMessageRepository{
				DeleteByConversationIDFunc: func(ctx context.Context, conversationID string) error {
					order = append(order, "messages")
					return nil
				},
			},
		)

		if err := uc.Execute(ctx, conversation.DeleteConversationCommand{ConversationID: convID, UserID: testUserID}); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(order) != 2 || order[0] != "messages" || order[1] != "conversation" {
			t.Errorf("delete order = %v, want [messages conversation]", order)
		}
	})

	t.Run("message delete failure leaves conversation intact", func(t *testing.T) {
		convDeleted := false
		uc := conversation.NewDeleteConversationUseCase(
			&mockConversationRepository{
				FindByIDFunc: func(ctx context.Context, id string) (*conversation.Conversation, error) {
					return ownedConversation(id), nil
				},
				DeleteFunc: func(ctx context.Context, id string) error {
					convDeleted = true
					return nil
				},
			},
			&mockMessageRepository{
				DeleteByConversationIDFunc: func(ctx context.Context, conversationID string) error {
					return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
						"connection reset", nil, "00000000-0000-4000-8000-000000000001")
				},
			},
		)

		err := uc.Execute(ctx, conversation.DeleteConversationCommand{ConversationID: convID, UserID: testUserID})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if convDeleted {
			t.Error("conversation must not be deleted after a message delete failure")
		}
	})
}

func assertMessage(t *testing.T, err error, want string) {
	t.Helper()
	var pe *platformerrors.PlatformError
	if !errors.As(err, &pe) {
		t.Fatalf("not a platform error: %v", err)
	}
	if pe.Message != want {
		t.Errorf("message = %q, want %q", pe.Message, want)
	}
}
