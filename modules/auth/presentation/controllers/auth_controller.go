package controllers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/emstack/ems-console/modules/auth/domain/auth"
	"github.com/emstack/ems-console/modules/auth/services"
	profileservices "github.com/emstack/ems-console/modules/profile/services"
	"github.com/emstack/ems-console/pkg/constants"
	"github.com/emstack/ems-console/pkg/httpapi"
	"github.com/emstack/ems-console/pkg/querycache"
	"github.com/emstack/ems-console/pkg/session"
)

type AuthControllerOptions struct {
	Service         *services.AuthService
	Store           session.Store
	Cache           *querycache.Cache
	SidCookieKey    string
	SessionDuration time.Duration
}

// AuthController owns the public auth routes. Everything here is reachable
// without a session; the login response tells the client where to land.
type AuthController struct {
	opts AuthControllerOptions
}

func NewAuthController(opts AuthControllerOptions) *AuthController {
	return &AuthController{opts: opts}
}

func (c *AuthController) Key() string {
	return "/auth"
}

func (c *AuthController) Register(r *mux.Router) {
	r.HandleFunc("/login", c.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)
	r.HandleFunc("/forget-password", c.ForgetPassword).Methods(http.MethodPost)
	r.HandleFunc("/reset-password/{token}", c.ResetPassword).Methods(http.MethodPost)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return
	}
	var creds auth.Credentials
	if err := constants.FormDecoder.Decode(&creds, url.Values(r.PostForm)); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return
	}
	if errs, ok := creds.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			"validation failed", errs)
		return
	}

	grant, err := c.opts.Service.Login(r.Context(), &creds)
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}

	session.Issue(w, c.opts.Store, c.opts.SidCookieKey, session.Session{
		Token:  grant.Token,
		UserID: grant.UserID,
		Role:   grant.Role,
	}, c.opts.SessionDuration)

	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"redirect": grant.Redirect,
		"role":     grant.Role,
	})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	// The user's cached profile record must not outlive the session.
	if c.opts.Cache != nil {
		if cookie, err := r.Cookie(c.opts.SidCookieKey); err == nil {
			if s, ok := c.opts.Store.Get(cookie.Value); ok {
				c.opts.Cache.Invalidate(profileservices.ProfileKey(s.UserID))
			}
		}
	}
	session.Clear(w, r, c.opts.Store, c.opts.SidCookieKey)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (c *AuthController) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return
	}
	email := r.PostFormValue("email")
	if email == "" {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			"validation failed", map[string]string{"Email": "This field is required"})
		return
	}
	message, err := c.opts.Service.ForgetPassword(r.Context(), email)
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"message": message})
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return
	}
	password := r.PostFormValue("password")
	if password == "" {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			"validation failed", map[string]string{"Password": "This field is required"})
		return
	}
	message, err := c.opts.Service.ResetPassword(r.Context(), mux.Vars(r)["token"], password)
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"message": message})
}
