// Package container wires repositories and use cases for callers that do not
// go through compile-time injection, such as jobs and tests. Repositories are
// process-wide singletons resolved lazily; use cases are built fresh per call
// on top of those singletons.
package container

import (
	"sync"

	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/domain/preset"
	"relay-server/services/control-api/internal/domain/user"
	"relay-server/services/control-api/internal/domain/workspace"
	"relay-server/services/control-api/internal/infrastructure/database/repository/conversationrepo"
	"relay-server/services/control-api/internal/infrastructure/database/repository/messagerepo"
	"relay-server/services/control-api/internal/infrastructure/database/repository/presetrepo"
	"relay-server/services/control-api/internal/infrastructure/database/repository/userrepo"
	"relay-server/services/control-api/internal/infrastructure/database/repository/workspacerepo"
	"relay-server/services/control-api/internal/infrastructure/database/transaction"
)

var (
	mu       sync.Mutex
	instance *Container
)

// Container resolves repositories lazily and memoizes them for the process
// lifetime.
type Container struct {
	db *transaction.Database

	mu               sync.Mutex
	conversationRepo conversation.ConversationRepository
	messageRepo      conversation.MessageRepository
	presetRepo       preset.PresetRepository
	workspaceRepo    workspace.Repository
	userRepo         user.Repository
}

// New builds a container backed by the given database. Most callers should
// use GetInstance instead.
func New(db *transaction.Database) *Container {
	return &Container{db: db}
}

// GetInstance returns the process-wide container, creating it on first call.
// The database handle is only consulted on that first call; later calls
// ignore it and return the existing instance.
func GetInstance(db *transaction.Database) *Container {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = New(db)
	}
	return instance
}

// Reset discards the process-wide container so the next GetInstance builds a
// fresh one. Intended for tests that need isolated repository state.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}

// ConversationRepository returns the conversation repository singleton.
func (c *Container) ConversationRepository() conversation.ConversationRepository {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conversationRepo == nil {
		c.conversationRepo = conversationrepo.NewConversationGormRepository(c.db)
	}
	return c.conversationRepo
}

// MessageRepository returns the message repository singleton.
func (c *Container) MessageRepository() conversation.MessageRepository {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messageRepo == nil {
		c.messageRepo = messagerepo.NewMessageGormRepository(c.db)
	}
	return c.messageRepo
}

// PresetRepository returns the preset repository singleton.
func (c *Container) PresetRepository() preset.PresetRepository {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.presetRepo == nil {
		c.presetRepo = presetrepo.NewPresetGormRepository(c.db)
	}
	return c.presetRepo
}

// WorkspaceRepository returns the workspace repository singleton.
func (c *Container) WorkspaceRepository() workspace.Repository {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workspaceRepo == nil {
		c.workspaceRepo = workspacerepo.NewWorkspaceGormRepository(c.db)
	}
	return c.workspaceRepo
}

// UserRepository returns the user repository singleton.
func (c *Container) UserRepository() user.Repository {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userRepo == nil {
		c.userRepo = userrepo.NewUserGormRepository(c.db)
	}
	return c.userRepo
}

// Use-case factories. Each call builds a fresh use case sharing the
// repository singletons above.

func (c *Container) NewCreateConversationUseCase() *conversation.CreateConversationUseCase {
	return conversation.NewCreateConversationUseCase(c.ConversationRepository(), c.WorkspaceRepository(), c.UserRepository())
}

func (c *Container) NewAddMessageUseCase() *conversation.AddMessageUseCase {
	return conversation.NewAddMessageUseCase(c.ConversationRepository(), c.MessageRepository())
}

func (c *Container) NewGetConversationUseCase() *conversation.GetConversationUseCase {
	return conversation.NewGetConversationUseCase(c.ConversationRepository(), c.MessageRepository())
}

func (c *Container) NewListConversationsUseCase() *conversation.ListConversationsUseCase {
	return conversation.NewListConversationsUseCase(c.ConversationRepository())
}

func (c *Container) NewRenameConversationUseCase() *conversation.RenameConversationUseCase {
	return conversation.NewRenameConversationUseCase(c.ConversationRepository())
}

func (c *Container) NewDeleteConversationUseCase() *conversation.DeleteConversationUseCase {
	return conversation.NewDeleteConversationUseCase(c.ConversationRepository(), c.MessageRepository())
}

func (c *Container) NewCreatePresetUseCase() *preset.CreatePresetUseCase {
	return preset.NewCreatePresetUseCase(c.PresetRepository(), c.WorkspaceRepository())
}

func (c *Container) NewGetPresetUseCase() *preset.GetPresetUseCase {
	return preset.NewGetPresetUseCase(c.PresetRepository())
}

func (c *Container) NewListPresetsUseCase() *preset.ListPresetsUseCase {
	return preset.NewListPresetsUseCase(c.PresetRepository())
}

func (c *Container) NewUpdatePresetUseCase() *preset.UpdatePresetUseCase {
	return preset.NewUpdatePresetUseCase(c.PresetRepository())
}

func (c *Container) NewDeletePresetUseCase() *preset.DeletePresetUseCase {
	return preset.NewDeletePresetUseCase(c.PresetRepository())
}
