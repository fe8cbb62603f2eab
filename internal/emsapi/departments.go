package emsapi

import (
	"context"
	"net/http"
)

type DepartmentHeadDTO struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// DepartmentDTO mirrors the upstream wire shape. The description field is
// spelled "discription" on the wire; that is the remote contract.
type DepartmentDTO struct {
	ID          string             `json:"_id"`
	Name        string             `json:"name"`
	Description string             `json:"discription"`
	Head        *DepartmentHeadDTO `json:"head,omitempty"`
}

func (c *Client) ListDepartments(ctx context.Context) ([]DepartmentDTO, error) {
	var out struct {
		Departments []DepartmentDTO `json:"departments"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/department/get", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Departments, nil
}

// DepartmentForm is the compact create/update payload. Head may be empty,
// meaning no head assigned.
type DepartmentForm struct {
	Name        string `json:"name"`
	Description string `json:"discription"`
	Head        string `json:"head"`
}

func (c *Client) CreateDepartment(ctx context.Context, f *DepartmentForm) error {
	return c.doJSON(ctx, http.MethodPost, "/department/create", nil, f, nil)
}

func (c *Client) UpdateDepartment(ctx context.Context, id string, f *DepartmentForm) error {
	return c.doJSON(ctx, http.MethodPut, "/department/update-department/"+id, nil, f, nil)
}

func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/department/delete/"+id, nil, nil, nil)
}
