package recipient

import (
	"github.com/fedspend/awards-api/modules/recipient/infrastructure/persistence"
	"github.com/fedspend/awards-api/modules/recipient/services"
	"github.com/fedspend/awards-api/pkg/application"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "recipient"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewIdentityService(persistence.NewLookupRepository()),
	)
	return nil
}
