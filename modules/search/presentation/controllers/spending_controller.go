package controllers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fedspend/awards-api/modules/search/domain"
	"github.com/fedspend/awards-api/modules/search/services"
	"github.com/fedspend/awards-api/pkg/application"
	"github.com/fedspend/awards-api/pkg/composables"
	"github.com/fedspend/awards-api/pkg/httpjson"
)

// spendingOverTimeRequest is the POST body. Filters stays a pointer so an
// absent block is distinguishable from an empty one.
type spendingOverTimeRequest struct {
	Group   string          `json:"group"`
	Filters *domain.Filters `json:"filters"`
}

type SpendingController struct {
	app      application.Application
	service  *services.SpendingService
	basePath string
}

func NewSpendingController(app application.Application) application.Controller {
	return &SpendingController{
		app:      app,
		service:  app.Service(services.SpendingService{}).(*services.SpendingService),
		basePath: "/api/v2/search",
	}
}

func (c *SpendingController) Key() string {
	return c.basePath
}

func (c *SpendingController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/spending_over_time", c.SpendingOverTime).Methods(http.MethodPost)
	router.HandleFunc("/spending_over_time/", c.SpendingOverTime).Methods(http.MethodPost)
}

func (c *SpendingController) SpendingOverTime(w http.ResponseWriter, r *http.Request) {
	var req spendingOverTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return
	}

	result, err := c.service.SpendingOverTime(r.Context(), req.Group, req.Filters)
	if err != nil {
		switch {
		case stderrors.Is(err, domain.ErrInvalidGroup), stderrors.Is(err, services.ErrMissingFilters):
			httpjson.WriteError(w, http.StatusUnprocessableEntity, "INVALID_PARAMETER", err.Error())
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("failed to aggregate spending over time")
			httpjson.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
		}
		return
	}

	httpjson.Write(w, http.StatusOK, result)
}
