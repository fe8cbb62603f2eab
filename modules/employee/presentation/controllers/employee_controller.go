package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"github.com/emstack/ems-console/modules/employee/domain/aggregates/employee"
	"github.com/emstack/ems-console/modules/employee/presentation/mappers"
	"github.com/emstack/ems-console/modules/employee/presentation/viewmodels"
	"github.com/emstack/ems-console/modules/employee/services"
	"github.com/emstack/ems-console/pkg/constants"
	"github.com/emstack/ems-console/pkg/httpapi"
	"github.com/emstack/ems-console/pkg/middleware"
	"github.com/emstack/ems-console/pkg/session"
	"github.com/emstack/ems-console/pkg/shared"
)

// DepartmentOptionsProvider supplies the select options for the employee form
// modal. Implemented by the department service.
type DepartmentOptionsProvider interface {
	DepartmentOptions(ctx context.Context) ([]shared.Option, error)
}

type EmployeeControllerOptions struct {
	Service           *services.EmployeeService
	DepartmentOptions DepartmentOptionsProvider
	AssetBaseURL      string
	PageSize          int
	MaxUploadMemory   int64
}

// EmployeeController owns the admin employee management page. Every response
// is a viewmodel; mutations answer with the refreshed list so the client
// never renders stale rows.
type EmployeeController struct {
	opts     EmployeeControllerOptions
	basePath string
}

func NewEmployeeController(opts EmployeeControllerOptions) *EmployeeController {
	return &EmployeeController{
		opts:     opts,
		basePath: "/manage-employee",
	}
}

func (c *EmployeeController) Key() string {
	return c.basePath
}

func (c *EmployeeController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireRole(session.RoleAdmin))
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/search", c.Search).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}/soft-delete", c.SoftDelete).Methods(http.MethodPatch)
	router.HandleFunc("/{id}/restore", c.Restore).Methods(http.MethodPatch)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *EmployeeController) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			page = parsed
		}
	}
	c.respondList(w, r, page)
}

// respondList renders a list page. When the requested page falls outside the
// server-reported range, the clamped page is fetched instead, so deleting the
// last row of the last page lands on the new last page.
func (c *EmployeeController) respondList(w http.ResponseWriter, r *http.Request, page int) {
	result, err := c.opts.Service.GetPaginated(r.Context(), page, c.opts.PageSize)
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	if clamped := result.Info.Clamp(page); clamped != page {
		result, err = c.opts.Service.GetPaginated(r.Context(), clamped, c.opts.PageSize)
		if err != nil {
			_ = httpapi.WriteFailure(w, err)
			return
		}
	}

	rows := make([]*viewmodels.EmployeeRow, 0, len(result.Items))
	for i, e := range result.Items {
		rows = append(rows, mappers.EmployeeToRow(e, i, result.Info, c.opts.AssetBaseURL))
	}

	options := []*viewmodels.SelectOption{}
	if c.opts.DepartmentOptions != nil {
		pairs, err := c.opts.DepartmentOptions.DepartmentOptions(r.Context())
		if err != nil {
			middleware.UseLogger(r.Context()).WithError(err).Warn("department options unavailable")
		}
		for _, p := range pairs {
			options = append(options, &viewmodels.SelectOption{Value: p.Value, Label: p.Label})
		}
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, &viewmodels.EmployeesPageProps{
		Rows:              rows,
		Pagination:        mappers.PaginationToVM(result.Info),
		DepartmentOptions: options,
	})
}

func (c *EmployeeController) Search(w http.ResponseWriter, r *http.Request) {
	results, err := c.opts.Service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	options := make([]*viewmodels.SelectOption, 0, len(results))
	for _, res := range results {
		options = append(options, &viewmodels.SelectOption{Value: res.ID, Label: res.Email})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"options": options})
}

func (c *EmployeeController) Create(w http.ResponseWriter, r *http.Request) {
	var dto employee.CreateDTO
	if !c.decodeForm(w, r, &dto, &dto.Image) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}
	if err := c.opts.Service.Create(r.Context(), &dto); err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	c.respondList(w, r, 1)
}

func (c *EmployeeController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var dto employee.UpdateDTO
	if !c.decodeForm(w, r, &dto, &dto.Image) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationErrors(w, errs)
		return
	}
	if err := c.opts.Service.Update(r.Context(), id, &dto); err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	c.respondList(w, r, c.pageParam(r))
}

func (c *EmployeeController) SoftDelete(w http.ResponseWriter, r *http.Request) {
	c.destructive(w, r, c.opts.Service.SoftDelete)
}

func (c *EmployeeController) Restore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := c.opts.Service.Restore(r.Context(), id); err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	c.respondList(w, r, c.pageParam(r))
}

func (c *EmployeeController) Delete(w http.ResponseWriter, r *http.Request) {
	c.destructive(w, r, c.opts.Service.Delete)
}

// destructive runs a confirmed removal. Without confirm=true nothing reaches
// the upstream.
func (c *EmployeeController) destructive(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) error) {
	if !httpapi.Confirmed(r) {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "CONFIRMATION_REQUIRED",
			"confirm this action before submitting", nil)
		return
	}
	id := mux.Vars(r)["id"]
	if err := op(r.Context(), id); err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	c.respondList(w, r, c.pageParam(r))
}

func (c *EmployeeController) pageParam(r *http.Request) int {
	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 1
}

// decodeForm parses the multipart submission into dto and resolves the image
// field. A selected file must sniff as an image; removeImage=true marks the
// photo cleared, which validation then rejects.
func (c *EmployeeController) decodeForm(w http.ResponseWriter, r *http.Request, dto any, image *shared.ImageField) bool {
	if err := r.ParseMultipartForm(c.opts.MaxUploadMemory); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return false
	}
	if err := constants.FormDecoder.Decode(dto, url.Values(r.MultipartForm.Value)); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return false
	}

	*image = shared.ImageUnchanged()
	if r.FormValue("removeImage") == "true" {
		*image = shared.ImageCleared()
	}

	file, header, err := r.FormFile("profileImage")
	if errors.Is(err, http.ErrMissingFile) {
		return true
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return false
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return false
	}
	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		writeValidationErrors(w, map[string]string{"ProfileImage": "Only image files are accepted"})
		return false
	}
	*image = shared.ImageReplaced(shared.Upload{
		Name:        header.Filename,
		Content:     content,
		ContentType: mtype.String(),
	})
	return true
}

func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
		"validation failed", errs)
}
