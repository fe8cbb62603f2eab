package controllers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/emstack/ems-console/modules/department/domain/aggregates/department"
	"github.com/emstack/ems-console/modules/department/presentation/mappers"
	"github.com/emstack/ems-console/modules/department/presentation/viewmodels"
	"github.com/emstack/ems-console/modules/department/services"
	"github.com/emstack/ems-console/pkg/constants"
	"github.com/emstack/ems-console/pkg/httpapi"
	"github.com/emstack/ems-console/pkg/middleware"
	"github.com/emstack/ems-console/pkg/session"
)

// DepartmentController owns the admin department management page. The form
// is plain urlencoded; departments carry no file uploads.
type DepartmentController struct {
	departments *services.DepartmentService
	basePath    string
}

func NewDepartmentController(departments *services.DepartmentService) *DepartmentController {
	return &DepartmentController{
		departments: departments,
		basePath:    "/manage-department",
	}
}

func (c *DepartmentController) Key() string {
	return c.basePath
}

func (c *DepartmentController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireRole(session.RoleAdmin))
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/head-options", c.HeadOptions).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *DepartmentController) List(w http.ResponseWriter, r *http.Request) {
	c.respondList(w, r)
}

func (c *DepartmentController) respondList(w http.ResponseWriter, r *http.Request) {
	items, err := c.departments.GetAll(r.Context())
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	rows := make([]*viewmodels.DepartmentRow, 0, len(items))
	for i, d := range items {
		rows = append(rows, mappers.DepartmentToRow(d, i))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &viewmodels.DepartmentsPageProps{Rows: rows})
}

// HeadOptions answers the debounced head-selector search with label/value
// pairs, email as the label.
func (c *DepartmentController) HeadOptions(w http.ResponseWriter, r *http.Request) {
	options, err := c.departments.SearchHeads(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	out := make([]*viewmodels.SelectOption, 0, len(options))
	for _, o := range options {
		out = append(out, &viewmodels.SelectOption{Value: o.Value, Label: o.Label})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"options": out})
}

func (c *DepartmentController) Create(w http.ResponseWriter, r *http.Request) {
	dto, ok := c.decodeForm(w, r)
	if !ok {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			"validation failed", errs)
		return
	}
	if err := c.departments.Create(r.Context(), dto); err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	c.respondList(w, r)
}

func (c *DepartmentController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	dto, ok := c.decodeForm(w, r)
	if !ok {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			"validation failed", errs)
		return
	}
	if err := c.departments.Update(r.Context(), id, dto); err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	c.respondList(w, r)
}

func (c *DepartmentController) Delete(w http.ResponseWriter, r *http.Request) {
	if !httpapi.Confirmed(r) {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "CONFIRMATION_REQUIRED",
			"confirm this action before submitting", nil)
		return
	}
	if err := c.departments.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	c.respondList(w, r)
}

func (c *DepartmentController) decodeForm(w http.ResponseWriter, r *http.Request) (*department.UpsertDTO, bool) {
	if err := r.ParseForm(); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return nil, false
	}
	var dto department.UpsertDTO
	if err := constants.FormDecoder.Decode(&dto, url.Values(r.PostForm)); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return nil, false
	}
	return &dto, true
}
