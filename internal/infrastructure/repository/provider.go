package repository

import (
	"github.com/google/wire"

	attachmentdomain "parley-server/services/chat-api/internal/domain/attachment"
	codeconvdomain "parley-server/services/chat-api/internal/domain/codeconv"
	messagedomain "parley-server/services/chat-api/internal/domain/message"
	personadomain "parley-server/services/chat-api/internal/domain/persona"
	pindomain "parley-server/services/chat-api/internal/domain/pin"
	preferencesdomain "parley-server/services/chat-api/internal/domain/preferences"
	profiledomain "parley-server/services/chat-api/internal/domain/profile"
	projectdomain "parley-server/services/chat-api/internal/domain/project"
	sharedomain "parley-server/services/chat-api/internal/domain/share"
	summarydomain "parley-server/services/chat-api/internal/domain/summary"
	threaddomain "parley-server/services/chat-api/internal/domain/thread"
	userdomain "parley-server/services/chat-api/internal/domain/user"

	"parley-server/services/chat-api/internal/infrastructure/repository/attachmentrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/codeconvrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/messagerepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/personarepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/pinrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/preferencesrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/profilerepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/projectrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/sharerepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/summaryrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/threadrepo"
	"parley-server/services/chat-api/internal/infrastructure/repository/userrepo"
)

// Provider wires every GORM repository to its domain interface.
var Provider = wire.NewSet(
	threadrepo.NewRepository,
	wire.Bind(new(threaddomain.Repository), new(*threadrepo.Repository)),
	messagerepo.NewRepository,
	wire.Bind(new(messagedomain.Repository), new(*messagerepo.Repository)),
	attachmentrepo.NewRepository,
	wire.Bind(new(attachmentdomain.Repository), new(*attachmentrepo.Repository)),
	sharerepo.NewRepository,
	wire.Bind(new(sharedomain.Repository), new(*sharerepo.Repository)),
	projectrepo.NewRepository,
	wire.Bind(new(projectdomain.Repository), new(*projectrepo.Repository)),
	personarepo.NewRepository,
	wire.Bind(new(personadomain.Repository), new(*personarepo.Repository)),
	pinrepo.NewRepository,
	wire.Bind(new(pindomain.Repository), new(*pinrepo.Repository)),
	summaryrepo.NewRepository,
	wire.Bind(new(summarydomain.Repository), new(*summaryrepo.Repository)),
	codeconvrepo.NewRepository,
	wire.Bind(new(codeconvdomain.Repository), new(*codeconvrepo.Repository)),
	profilerepo.NewRepository,
	wire.Bind(new(profiledomain.Repository), new(*profilerepo.Repository)),
	preferencesrepo.NewRepository,
	wire.Bind(new(preferencesdomain.Repository), new(*preferencesrepo.Repository)),
	userrepo.NewRepository,
	wire.Bind(new(userdomain.Repository), new(*userrepo.Repository)),
)
