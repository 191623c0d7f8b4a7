package repository

import (
	"relay-server/services/control-api/internal/infrastructure/database/repository/conversationrepo"
	"relay-server/services/control-api/internal/infrastructure/database/repository/messagerepo"
	"relay-server/services/control-api/internal/infrastructure/database/repository/presetrepo"
	"relay-server/services/control-api/internal/infrastructure/database/repository/userrepo"
	"relay-server/services/control-api/internal/infrastructure/database/repository/workspacerepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	conversationrepo.NewConversationGormRepository,
	messagerepo.NewMessageGormRepository,
	presetrepo.NewPresetGormRepository,
	workspacerepo.NewWorkspaceGormRepository,
	userrepo.NewUserGormRepository,
)
