package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay-server/services/control-api/internal/infrastructure/database/transaction"
)

// Construction is lazy throughout, so a nil gorm handle is enough to exercise
// the wiring without a database.
func testDB() *transaction.Database {
	return transaction.NewDatabase(nil)
}

func TestGetInstance_Singleton(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	db := testDB()
	first := GetInstance(db)
	require.NotNil(t, first)
	assert.Same(t, first, GetInstance(db), "GetInstance must return the same container")

	// Later calls ignore the handle they are given.
	assert.Same(t, first, GetInstance(testDB()), "existing instance must survive a different handle")
}

func TestReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first := GetInstance(testDB())
	Reset()
	second := GetInstance(testDB())
	assert.NotSame(t, first, second, "Reset must discard the previous instance")
}

func TestRepositoryGetters_Memoized(t *testing.T) {
	c := New(testDB())

	assert.Same(t, c.ConversationRepository(), c.ConversationRepository())
	assert.Same(t, c.MessageRepository(), c.MessageRepository())
	assert.Same(t, c.PresetRepository(), c.PresetRepository())
	assert.Same(t, c.WorkspaceRepository(), c.WorkspaceRepository())
	assert.Same(t, c.UserRepository(), c.UserRepository())
}

func TestUseCaseFactories_FreshPerCall(t *testing.T) {
	c := New(testDB())

	assert.NotSame(t, c.NewCreateConversationUseCase(), c.NewCreateConversationUseCase())
	assert.NotSame(t, c.NewGetPresetUseCase(), c.NewGetPresetUseCase())

	for _, uc := range []any{
		c.NewCreateConversationUseCase(),
		c.NewAddMessageUseCase(),
		c.NewGetConversationUseCase(),
		c.NewListConversationsUseCase(),
		c.NewRenameConversationUseCase(),
		c.NewDeleteConversationUseCase(),
		c.NewCreatePresetUseCase(),
		c.NewGetPresetUseCase(),
		c.NewListPresetsUseCase(),
		c.NewUpdatePresetUseCase(),
		c.NewDeletePresetUseCase(),
	} {
		require.NotNil(t, uc, "factory returned nil")
	}
}
