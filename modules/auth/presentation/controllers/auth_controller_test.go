package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/emstack/ems-console/internal/emsapi"
	"github.com/emstack/ems-console/modules/auth/services"
	profileservices "github.com/emstack/ems-console/modules/profile/services"
	"github.com/emstack/ems-console/pkg/logging"
	"github.com/emstack/ems-console/pkg/querycache"
	"github.com/emstack/ems-console/pkg/session"
)

type fakeAuthClient struct {
	role string
}

func (f *fakeAuthClient) Login(ctx context.Context, email, password string) (*emsapi.LoginResponse, error) {
	if password != "secret" {
		return nil, &emsapi.APIError{Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	}
	res := &emsapi.LoginResponse{Token: "tok-123"}
	res.User.ID = "u1"
	res.User.Role = f.role
	return res, nil
}

func (f *fakeAuthClient) ForgetPassword(ctx context.Context, email string) (string, error) {
	return "Reset link sent to your email", nil
}

func (f *fakeAuthClient) ResetPassword(ctx context.Context, token, password string) (string, error) {
	return "Password has been reset", nil
}

func newRouter(client services.AuthClient) (*mux.Router, *session.MemoryStore, *querycache.Cache) {
	log := logging.ConsoleLogger(logrus.PanicLevel)
	store := session.NewMemoryStore(time.Hour)
	cache := querycache.New(log)

	r := mux.NewRouter()
	NewAuthController(AuthControllerOptions{
		Service:         services.NewAuthService(client, log),
		Store:           store,
		Cache:           cache,
		SidCookieKey:    "sid",
		SessionDuration: time.Hour,
	}).Register(r)
	return r, store, cache
}

func postLogin(router *mux.Router, email, password string) *httptest.ResponseRecorder {
	body := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sidCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("sid cookie not set")
	return nil
}

func TestLogin_AdminLandsOnAdminDashboard(t *testing.T) {
	router, store, _ := newRouter(&fakeAuthClient{role: "admin"})

	rec := postLogin(router, "admin@x.com", "secret")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "/admin-dashboard", out.Redirect)

	c := sidCookie(t, rec)
	require.True(t, c.HttpOnly)
	s, ok := store.Get(c.Value)
	require.True(t, ok)
	require.Equal(t, "tok-123", s.Token)
	require.Equal(t, session.RoleAdmin, s.Role)
}

func TestLogin_EmployeeLandsOnEmployeeDashboard(t *testing.T) {
	router, _, _ := newRouter(&fakeAuthClient{role: "employee"})

	rec := postLogin(router, "jane@x.com", "secret")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "/employee-dashboard", out.Redirect)
}

func TestLogin_UpstreamRejectionSurfacesMessage(t *testing.T) {
	router, _, _ := newRouter(&fakeAuthClient{role: "admin"})

	rec := postLogin(router, "admin@x.com", "wrong")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLogin_ValidatesForm(t *testing.T) {
	router, _, _ := newRouter(&fakeAuthClient{role: "admin"})

	rec := postLogin(router, "not-an-email", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Meta map[string]string `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Contains(t, envelope.Meta, "Email")
	require.Contains(t, envelope.Meta, "Password")
}

func TestLogout_ClearsSessionAndRedirects(t *testing.T) {
	router, store, _ := newRouter(&fakeAuthClient{role: "admin"})

	rec := postLogin(router, "admin@x.com", "secret")
	sid := sidCookie(t, rec).Value

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)

	require.Equal(t, http.StatusSeeOther, out.Code)
	require.Equal(t, "/login", out.Header().Get("Location"))
	_, ok := store.Get(sid)
	require.False(t, ok, "session must be gone after logout")
}

func TestLogout_EvictsCachedProfile(t *testing.T) {
	router, _, cache := newRouter(&fakeAuthClient{role: "employee"})

	rec := postLogin(router, "jane@x.com", "secret")
	sid := sidCookie(t, rec).Value

	// Prime the signed-in user's profile key the way a profile read would.
	var loads int
	key := profileservices.ProfileKey("u1")
	_, err := cache.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		loads++
		return "jane's record", nil
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)
	require.Equal(t, http.StatusSeeOther, out.Code)

	// The record must not survive the session; the next read reloads.
	_, err = cache.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		loads++
		return "fresh record", nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, loads)
}

func TestResetPassword_SubmitsTokenFromPath(t *testing.T) {
	router, _, _ := newRouter(&fakeAuthClient{role: "admin"})

	body := url.Values{"password": {"new-secret"}}
	req := httptest.NewRequest(http.MethodPost, "/reset-password/reset-tok", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Password has been reset")
}
