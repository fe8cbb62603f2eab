package auth

import (
	"strings"

	"github.com/emstack/ems-console/pkg/constants"
	"github.com/emstack/ems-console/pkg/serrors"
	"github.com/emstack/ems-console/pkg/session"
)

// Credentials is the login form draft.
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func (c *Credentials) Normalize() {
	c.Email = strings.TrimSpace(c.Email)
}

func (c *Credentials) Ok() (serrors.ValidationErrors, bool) {
	c.Normalize()
	errs := make(serrors.ValidationErrors)
	if err := constants.Validate.Struct(c); err != nil {
		errs = serrors.FromValidator(err)
	}
	return errs, len(errs) == 0
}

// Grant is a successful login: the issued token, the identity it belongs to
// and the landing page for that role.
type Grant struct {
	Token    string
	UserID   string
	Role     session.Role
	Redirect string
}

// RedirectFor maps a role to its landing page after login.
func RedirectFor(role session.Role) string {
	if role == session.RoleAdmin {
		return "/admin-dashboard"
	}
	return "/employee-dashboard"
}
