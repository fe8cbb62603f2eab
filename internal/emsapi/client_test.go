package emsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/emstack/ems-console/pkg/logging"
	"github.com/emstack/ems-console/pkg/session"
)

func jsonDecode(r *http.Request, out any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(out)
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Options{
		BaseURL: srv.URL + "/api",
		Tokens:  tokens,
		Timeout: 5 * time.Second,
		Logger:  logging.ConsoleLogger(logrus.PanicLevel),
	})
	require.NoError(t, err)
	return c, srv
}

func TestClient_BearerTokenReadPerCall(t *testing.T) {
	var seen []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalEmployees": 1}`))
	})

	var current atomic.Value
	current.Store("first")
	tokens := TokenSourceFunc(func(context.Context) string { return current.Load().(string) })
	c, _ := newTestClient(t, handler, tokens)

	_, err := c.TotalEmployees(context.Background())
	require.NoError(t, err)

	// Token rotation must take effect without rebuilding the client.
	current.Store("second")
	_, err = c.TotalEmployees(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestClient_SessionTokenSourceReadsContext(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"departments": []}`))
	})
	c, _ := newTestClient(t, handler, SessionTokenSource())

	ctx := session.With(context.Background(), session.Session{Token: "abc", Role: session.RoleAdmin})
	_, err := c.ListDepartments(ctx)
	require.NoError(t, err)
}

func TestClient_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header["Authorization"]
		require.False(t, ok, "no token in the store means no Authorization header")
		_, _ = w.Write([]byte(`{"token":"t","user":{"_id":"u1","role":"admin"}}`))
	})
	c, _ := newTestClient(t, handler, SessionTokenSource())

	_, err := c.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
}

func TestClient_StructuredErrorMessageSurfaced(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "Email already exists"}`))
	})
	c, _ := newTestClient(t, handler, StaticTokenSource("t"))

	err := c.CreateEmployee(context.Background(), &EmployeeForm{Name: "A", Email: "a@x.com"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "Email already exists", apiErr.Message)
}

func TestClient_UnstructuredErrorGetsGenericMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	})
	c, _ := newTestClient(t, handler, StaticTokenSource("t"))

	err := c.SoftDeleteEmployee(context.Background(), "e1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Equal(t, GenericFailureMessage, apiErr.Message)
}

func TestClient_UnreachableServerGetsGenericMessage(t *testing.T) {
	c, err := New(Options{
		BaseURL: "http://127.0.0.1:1/api",
		Tokens:  StaticTokenSource("t"),
		Timeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = c.ListDepartments(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 0, apiErr.Status)
	require.Equal(t, GenericFailureMessage, apiErr.Message)
}

func TestClient_ListEmployeesQueryParams(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/employee/get", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.Equal(t, "-createdAt", r.URL.Query().Get("sort"))
		_, _ = w.Write([]byte(`{"users":[{"_id":"e1","name":"A"}],"pagination":{"currentPage":2,"totalPages":3,"perPage":10}}`))
	})
	c, _ := newTestClient(t, handler, StaticTokenSource("t"))

	res, err := c.ListEmployees(context.Background(), 2, 10, SortNewestFirst)
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	require.Equal(t, 2, res.Pagination.CurrentPage)
	require.Equal(t, 3, res.Pagination.TotalPages)
}

func TestClient_EmployeeFormMultipartShape(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Jane", r.FormValue("name"))
		require.Equal(t, "jane@x.com", r.FormValue("email"))
		require.Equal(t, "50000", r.FormValue("salary"))
		require.Equal(t, "employee", r.FormValue("role"))
		require.Equal(t, []string{"d1", "d2"}, r.MultipartForm.Value["departments[]"])
		require.Equal(t, "secret", r.FormValue("password"))

		file, header, err := r.FormFile("profileImage")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		require.Equal(t, "avatar.png", header.Filename)

		w.WriteHeader(http.StatusCreated)
	})
	c, _ := newTestClient(t, handler, StaticTokenSource("t"))

	err := c.CreateEmployee(context.Background(), &EmployeeForm{
		Name:        "Jane",
		Email:       "jane@x.com",
		Password:    "secret",
		Role:        "employee",
		Salary:      "50000",
		Departments: []string{"d1", "d2"},
		Image: &Upload{
			Field:       "profileImage",
			Name:        "avatar.png",
			Content:     []byte{0x89, 'P', 'N', 'G'},
			ContentType: "image/png",
		},
	})
	require.NoError(t, err)
}

func TestClient_UpdateOmitsPasswordField(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/employee/update-employee/e1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, ok := r.MultipartForm.Value["password"]
		require.False(t, ok, "edit form must not carry a password field")
	})
	c, _ := newTestClient(t, handler, StaticTokenSource("t"))

	err := c.UpdateEmployee(context.Background(), "e1", &EmployeeForm{
		Name:   "Jane",
		Email:  "jane@x.com",
		Role:   "employee",
		Salary: "50000",
	})
	require.NoError(t, err)
}

func TestClient_DepartmentWireField(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/department/create", r.URL.Path)
		var body map[string]string
		require.NoError(t, jsonDecode(r, &body))
		require.Equal(t, "Sales", body["name"])
		require.Equal(t, "field sales team", body["discription"])
		require.Equal(t, "", body["head"])
	})
	c, _ := newTestClient(t, handler, StaticTokenSource("t"))

	err := c.CreateDepartment(context.Background(), &DepartmentForm{
		Name:        "Sales",
		Description: "field sales team",
	})
	require.NoError(t, err)
}
