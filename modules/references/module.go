package references

import (
	"github.com/fedspend/awards-api/modules/references/infrastructure/persistence"
	"github.com/fedspend/awards-api/modules/references/presentation/controllers"
	"github.com/fedspend/awards-api/modules/references/services"
	"github.com/fedspend/awards-api/pkg/application"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "references"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewGlossaryService(persistence.NewGlossaryRepository()),
	)
	app.RegisterControllers(
		controllers.NewGlossaryController(app),
	)
	return nil
}
