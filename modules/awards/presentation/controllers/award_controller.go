package controllers

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fedspend/awards-api/modules/awards/domain"
	"github.com/fedspend/awards-api/modules/awards/services"
	"github.com/fedspend/awards-api/pkg/application"
	"github.com/fedspend/awards-api/pkg/composables"
	"github.com/fedspend/awards-api/pkg/httpjson"
)

type AwardController struct {
	app      application.Application
	service  *services.AwardService
	basePath string
}

func NewAwardController(app application.Application) application.Controller {
	return &AwardController{
		app:      app,
		service:  app.Service(services.AwardService{}).(*services.AwardService),
		basePath: "/api/v2/awards",
	}
}

func (c *AwardController) Key() string {
	return c.basePath
}

func (c *AwardController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{award_id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{award_id}/", c.Get).Methods(http.MethodGet)
}

func (c *AwardController) Get(w http.ResponseWriter, r *http.Request) {
	requestedAward := mux.Vars(r)["award_id"]

	resp, err := c.service.Assemble(r.Context(), requestedAward)
	if err != nil {
		if stderrors.Is(err, domain.ErrAwardNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "NOT_FOUND",
				fmt.Sprintf("No award found with: '%s'", requestedAward))
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to assemble award")
		httpjson.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
		return
	}

	httpjson.Write(w, http.StatusOK, resp.Body())
}
