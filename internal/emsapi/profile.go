package emsapi

import (
	"context"
	"net/http"
	"net/url"
)

// ProfileDTO is the signed-in employee's own record, served by the
// emp-profile resource rather than the admin list endpoint.
type ProfileDTO struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Salary          float64  `json:"salary"`
	ProfileImage    string   `json:"profileImage"`
	Departments     []string `json:"departments"`
	HeadDepartments []string `json:"headDepartments"`
}

type profileEnvelope struct {
	Data ProfileDTO `json:"data"`
}

func (c *Client) GetProfile(ctx context.Context) (*ProfileDTO, error) {
	var out profileEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/emp-profile/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ProfileForm is the restricted self-edit payload: name and photo only.
type ProfileForm struct {
	Name  string
	Image *Upload
}

func (c *Client) UpdateProfile(ctx context.Context, f *ProfileForm) (*ProfileDTO, error) {
	fields := url.Values{}
	if f.Name != "" {
		fields.Set("name", f.Name)
	}
	var out profileEnvelope
	if err := c.doMultipart(ctx, http.MethodPut, "/emp-profile/update-profile", fields, f.Image, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
