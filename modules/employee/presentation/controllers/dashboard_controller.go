package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/emstack/ems-console/modules/employee/presentation/viewmodels"
	"github.com/emstack/ems-console/modules/employee/services"
	"github.com/emstack/ems-console/pkg/httpapi"
	"github.com/emstack/ems-console/pkg/middleware"
	"github.com/emstack/ems-console/pkg/session"
)

// DashboardController serves the two post-login landing pages. Each one is
// gated to its role; an admin visiting the employee dashboard gets a 403, not
// a redirect loop.
type DashboardController struct {
	employees *services.EmployeeService
}

func NewDashboardController(employees *services.EmployeeService) *DashboardController {
	return &DashboardController{employees: employees}
}

func (c *DashboardController) Key() string {
	return "/dashboards"
}

func (c *DashboardController) Register(r *mux.Router) {
	admin := r.PathPrefix("/admin-dashboard").Subrouter()
	admin.Use(middleware.RequireRole(session.RoleAdmin))
	admin.HandleFunc("", c.Admin).Methods(http.MethodGet)

	emp := r.PathPrefix("/employee-dashboard").Subrouter()
	emp.Use(middleware.RequireRole(session.RoleEmployee))
	emp.HandleFunc("", c.Employee).Methods(http.MethodGet)
}

func (c *DashboardController) Admin(w http.ResponseWriter, r *http.Request) {
	total, err := c.employees.Total(r.Context())
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &viewmodels.DashboardProps{TotalEmployees: total})
}

func (c *DashboardController) Employee(w http.ResponseWriter, r *http.Request) {
	total, err := c.employees.Total(r.Context())
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &viewmodels.DashboardProps{TotalEmployees: total})
}
