package main

import (
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/gorilla/mux"

	authcontrollers "github.com/emstack/ems-console/modules/auth/presentation/controllers"
	authservices "github.com/emstack/ems-console/modules/auth/services"
	departmentremote "github.com/emstack/ems-console/modules/department/infrastructure/remote"
	departmentcontrollers "github.com/emstack/ems-console/modules/department/presentation/controllers"
	departmentservices "github.com/emstack/ems-console/modules/department/services"
	employeeremote "github.com/emstack/ems-console/modules/employee/infrastructure/remote"
	employeecontrollers "github.com/emstack/ems-console/modules/employee/presentation/controllers"
	employeeservices "github.com/emstack/ems-console/modules/employee/services"
	profileremote "github.com/emstack/ems-console/modules/profile/infrastructure/remote"
	profilecontrollers "github.com/emstack/ems-console/modules/profile/presentation/controllers"
	profileservices "github.com/emstack/ems-console/modules/profile/services"

	"github.com/emstack/ems-console/internal/emsapi"
	"github.com/emstack/ems-console/pkg/configuration"
	"github.com/emstack/ems-console/pkg/httpapi"
	"github.com/emstack/ems-console/pkg/middleware"
	"github.com/emstack/ems-console/pkg/querycache"
	"github.com/emstack/ems-console/pkg/server"
	"github.com/emstack/ems-console/pkg/session"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	client, err := emsapi.New(emsapi.Options{
		BaseURL:         conf.RemoteAPI.BaseURL,
		Tokens:          emsapi.SessionTokenSource(),
		Timeout:         conf.RemoteAPI.Timeout,
		RequestIDHeader: conf.RequestIDHeader,
		Logger:          logger,
	})
	if err != nil {
		log.Fatalf("remote API client: %v", err)
	}

	store := session.NewMemoryStore(conf.SessionDuration)
	cache := querycache.New(logger)

	employeeService := employeeservices.NewEmployeeService(employeeremote.NewEmployeeRepository(client), cache, logger)
	departmentService := departmentservices.NewDepartmentService(departmentremote.NewDepartmentRepository(client), cache, logger)
	profileService := profileservices.NewProfileService(profileremote.NewProfileRepository(client), cache, logger)
	authService := authservices.NewAuthService(client, logger)

	controllers := []server.Controller{
		authcontrollers.NewAuthController(authcontrollers.AuthControllerOptions{
			Service:         authService,
			Store:           store,
			Cache:           cache,
			SidCookieKey:    conf.SidCookieKey,
			SessionDuration: conf.SessionDuration,
		}),
		employeecontrollers.NewEmployeeController(employeecontrollers.EmployeeControllerOptions{
			Service:           employeeService,
			DepartmentOptions: departmentService,
			AssetBaseURL:      conf.AssetBaseURL,
			PageSize:          conf.PageSize,
			MaxUploadMemory:   conf.MaxUploadMemory,
		}),
		employeecontrollers.NewDashboardController(employeeService),
		departmentcontrollers.NewDepartmentController(departmentService),
		profilecontrollers.NewProfileController(profilecontrollers.ProfileControllerOptions{
			Service:         profileService,
			AssetBaseURL:    conf.AssetBaseURL,
			MaxUploadMemory: conf.MaxUploadMemory,
		}),
	}

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(logger),
		middleware.WithSession(store, conf.SidCookieKey),
	}

	srv := server.NewHTTPServer(
		controllers,
		middlewares,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "page not found", nil)
		}),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
		}),
	)

	logger.WithField("address", conf.SocketAddress).Info("listening")
	if err := srv.Start(conf.SocketAddress); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
