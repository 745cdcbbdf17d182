package awards

import (
	"github.com/fedspend/awards-api/modules/awards/infrastructure/persistence"
	"github.com/fedspend/awards-api/modules/awards/presentation/controllers"
	"github.com/fedspend/awards-api/modules/awards/services"
	refpersistence "github.com/fedspend/awards-api/modules/references/infrastructure/persistence"
	recipientservices "github.com/fedspend/awards-api/modules/recipient/services"
	"github.com/fedspend/awards-api/pkg/application"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "awards"
}

// Register wires the assembler. The recipient module must be registered
// first; its identity service is pulled from the registry.
func (m *Module) Register(app application.Application) error {
	identity := app.Service(recipientservices.IdentityService{}).(*recipientservices.IdentityService)

	app.RegisterServices(
		services.NewAwardService(
			persistence.NewAwardRepository(),
			refpersistence.NewAgencyRepository(),
			refpersistence.NewLegalEntityRepository(),
			refpersistence.NewCFDARepository(),
			identity,
		),
	)
	app.RegisterControllers(
		controllers.NewAwardController(app),
	)
	return nil
}
