package search

import (
	"github.com/fedspend/awards-api/modules/search/infrastructure/persistence"
	"github.com/fedspend/awards-api/modules/search/presentation/controllers"
	"github.com/fedspend/awards-api/modules/search/services"
	"github.com/fedspend/awards-api/pkg/application"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "search"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewSpendingService(persistence.NewSpendingRepository()),
	)
	app.RegisterControllers(
		controllers.NewSpendingController(app),
	)
	return nil
}
