package emsapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// SortNewestFirst lists employees by creation time descending.
const SortNewestFirst = "-createdAt"

type EmployeeDepartmentDTO struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Head *struct {
		ID string `json:"_id"`
	} `json:"head,omitempty"`
}

type EmployeeDTO struct {
	ID           string                  `json:"_id"`
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Role         string                  `json:"role"`
	Salary       float64                 `json:"salary"`
	Departments  []EmployeeDepartmentDTO `json:"departments"`
	ProfileImage string                  `json:"profileImage"`
	IsDeleted    bool                    `json:"isDeleted"`
	CreatedAt    time.Time               `json:"createdAt"`
}

type PaginationDTO struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PerPage     int `json:"perPage"`
}

type EmployeeListResponse struct {
	Users      []EmployeeDTO `json:"users"`
	Pagination PaginationDTO `json:"pagination"`
}

func (c *Client) ListEmployees(ctx context.Context, page, limit int, sort string) (*EmployeeListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if sort != "" {
		q.Set("sort", sort)
	}
	var out EmployeeListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/employee/get", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type EmployeeOptionDTO struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

func (c *Client) SearchEmployees(ctx context.Context, query string) ([]EmployeeOptionDTO, error) {
	q := url.Values{}
	q.Set("query", query)
	var out struct {
		Employees []EmployeeOptionDTO `json:"employees"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/employee/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Employees, nil
}

// EmployeeForm is the multipart payload of the employee create/update form.
// Password is only sent on create; the image part only when a new file was
// selected.
type EmployeeForm struct {
	Name        string
	Email       string
	Password    string
	Role        string
	Salary      string
	Departments []string
	Image       *Upload
}

func (f *EmployeeForm) values() url.Values {
	v := url.Values{}
	v.Set("name", f.Name)
	v.Set("email", f.Email)
	v.Set("salary", f.Salary)
	v.Set("role", f.Role)
	for _, dep := range f.Departments {
		v.Add("departments[]", dep)
	}
	if f.Password != "" {
		v.Set("password", f.Password)
	}
	return v
}

func (c *Client) CreateEmployee(ctx context.Context, f *EmployeeForm) error {
	return c.doMultipart(ctx, http.MethodPost, "/employee/create", f.values(), f.Image, nil)
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, f *EmployeeForm) error {
	return c.doMultipart(ctx, http.MethodPut, "/employee/update-employee/"+id, f.values(), f.Image, nil)
}

func (c *Client) SoftDeleteEmployee(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPatch, "/employee/soft-delete/"+id, nil, nil, nil)
}

func (c *Client) RestoreEmployee(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPatch, "/employee/restore/"+id, nil, nil, nil)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/employee/delete/"+id, nil, nil, nil)
}

func (c *Client) TotalEmployees(ctx context.Context) (int, error) {
	var out struct {
		TotalEmployees int `json:"totalEmployees"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/employee/total", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.TotalEmployees, nil
}
