package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fedspend/awards-api/modules/references/domain"
	"github.com/fedspend/awards-api/modules/references/services"
	"github.com/fedspend/awards-api/pkg/application"
	"github.com/fedspend/awards-api/pkg/composables"
	"github.com/fedspend/awards-api/pkg/httpjson"
)

type GlossaryController struct {
	app      application.Application
	service  *services.GlossaryService
	basePath string
}

func NewGlossaryController(app application.Application) application.Controller {
	return &GlossaryController{
		app:      app,
		service:  app.Service(services.GlossaryService{}).(*services.GlossaryService),
		basePath: "/api/v2/references/glossary",
	}
}

func (c *GlossaryController) Key() string {
	return c.basePath
}

func (c *GlossaryController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/", c.List).Methods(http.MethodGet)
}

func (c *GlossaryController) List(w http.ResponseWriter, r *http.Request) {
	definitions, err := c.service.List(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list glossary definitions")
		httpjson.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
		return
	}
	if definitions == nil {
		definitions = []domain.Definition{}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"results": definitions})
}
