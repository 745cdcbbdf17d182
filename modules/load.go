package modules

import (
	"github.com/fedspend/awards-api/modules/awards"
	"github.com/fedspend/awards-api/modules/recipient"
	"github.com/fedspend/awards-api/modules/references"
	"github.com/fedspend/awards-api/modules/search"
	"github.com/fedspend/awards-api/pkg/application"
)

// BuiltInModules in registration order: recipient before awards, because the
// assembler pulls the identity service from the registry.
var BuiltInModules = []application.Module{
	references.NewModule(),
	recipient.NewModule(),
	awards.NewModule(),
	search.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
