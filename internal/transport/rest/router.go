package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/clinicore/hr-management/internal/auth"
	"github.com/clinicore/hr-management/internal/authz"
	"github.com/clinicore/hr-management/internal/client"
	"github.com/clinicore/hr-management/internal/department"
	"github.com/clinicore/hr-management/internal/employee"
	"github.com/clinicore/hr-management/internal/position"
	"github.com/clinicore/hr-management/internal/project"
	"github.com/clinicore/hr-management/internal/transport/middleware"
	"github.com/clinicore/hr-management/internal/transport/swagger"
	"github.com/clinicore/hr-management/internal/workspace"
)

// Handlers bundles every module handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	Employee   *employee.Handler
	Department *department.Handler
	Position   *position.Handler
	Client     *client.Handler
	Project    *project.Handler
	Workspace  *workspace.Handler
}

// RegisterAllRoutes mounts the full API under /api/v1. Every mutating route
// is wrapped by the permission guard; scoped permissions pick up the route's
// URL parameters.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, authorizer *authz.Authorizer, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	require := func(perms ...authz.Permission) func(http.Handler) http.Handler {
		return middleware.RequireAnyPermission(authorizer, perms...)
	}

	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)

			sr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.AuthMiddleware)
				ar.Post("/logout", h.Auth.Logout)
				ar.Get("/me", h.Auth.Me)
			})
		})

		// Everything below requires an authenticated principal.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/employees", func(er chi.Router) {
				er.With(require(authz.UsersCreate)).Post("/", h.Employee.Create)
				er.With(require(authz.UsersRead)).Get("/", h.Employee.List)
				er.With(require(authz.UsersRead)).Get("/managers", h.Employee.Managers)
				er.With(require(authz.UsersRead, authz.UsersReadOwn)).Get("/{id}", h.Employee.Get)
				er.With(require(authz.UsersUpdate, authz.UsersUpdateOwn)).Patch("/{id}", h.Employee.Update)
				er.With(require(authz.UsersUpdate)).Post("/{id}/status", h.Employee.ChangeStatus)
			})

			pr.Route("/departments", func(dr chi.Router) {
				dr.With(require(authz.DepartmentsCreate)).Post("/", h.Department.Create)
				dr.With(require(authz.DepartmentsRead)).Get("/", h.Department.List)
				dr.With(require(authz.DepartmentsRead, authz.DepartmentsReadOwn)).Get("/{id}", h.Department.Get)
				dr.With(require(authz.DepartmentsUpdate, authz.DepartmentsUpdateOwn)).Patch("/{id}", h.Department.Update)
				dr.With(require(authz.DepartmentsDelete)).Delete("/{id}", h.Department.Delete)
			})

			pr.Route("/positions", func(por chi.Router) {
				por.With(require(authz.DepartmentsUpdate)).Post("/", h.Position.Create)
				por.With(require(authz.DepartmentsRead)).Get("/", h.Position.List)
				por.With(require(authz.DepartmentsRead)).Get("/{id}", h.Position.Get)
				por.With(require(authz.DepartmentsUpdate)).Patch("/{id}", h.Position.Update)
				por.With(require(authz.DepartmentsDelete)).Delete("/{id}", h.Position.Delete)
			})

			pr.Route("/clients", func(cr chi.Router) {
				cr.With(require(authz.UsersCreate)).Post("/", h.Client.Create)
				cr.With(require(authz.UsersRead)).Get("/", h.Client.List)
				cr.With(require(authz.UsersRead, authz.UsersReadOwn)).Get("/{userID}", h.Client.Get)
				cr.With(require(authz.UsersUpdate, authz.UsersUpdateOwn)).Patch("/{userID}", h.Client.Update)
				cr.With(require(authz.UsersDelete)).Delete("/{userID}", h.Client.Delete)
			})

			pr.Route("/projects", func(prr chi.Router) {
				prr.With(require(authz.ProjectsCreate)).Post("/", h.Project.Create)
				prr.With(require(authz.ProjectsRead, authz.ProjectsReadAssigned)).Get("/", h.Project.List)
				prr.With(require(authz.ProjectsRead, authz.ProjectsReadAssigned)).Get("/{id}", h.Project.Get)
				prr.With(require(authz.ProjectsUpdate, authz.ProjectsUpdateAssigned)).Patch("/{id}", h.Project.Update)
				prr.With(require(authz.ProjectsDelete)).Delete("/{id}", h.Project.Delete)
			})

			pr.Route("/workspaces", func(wr chi.Router) {
				wr.With(require(authz.WorkspacesCreate)).Post("/", h.Workspace.Create)
				wr.With(require(authz.WorkspacesRead, authz.WorkspacesAccessAssigned)).Get("/", h.Workspace.List)
				wr.With(require(authz.WorkspacesRead, authz.WorkspacesAccessAssigned)).Get("/{id}", h.Workspace.Get)
				wr.With(require(authz.WorkspacesUpdate)).Patch("/{id}", h.Workspace.Update)

				wr.With(require(authz.WorkspacesUpdate)).Post("/{id}/members", h.Workspace.AddMember)
				wr.With(require(authz.WorkspacesRead, authz.WorkspacesAccessAssigned)).Get("/{id}/members", h.Workspace.ListMembers)
				wr.With(require(authz.WorkspacesUpdate)).Delete("/{id}/members/{userID}", h.Workspace.RemoveMember)

				wr.With(require(authz.MessagesSend)).Post("/{id}/messages", h.Workspace.SendMessage)
				wr.With(require(authz.MessagesRead)).Get("/{id}/messages", h.Workspace.ListMessages)
				wr.With(require(authz.MessagesUpdateOwn)).Patch("/{id}/messages/{messageID}", h.Workspace.EditMessage)
				wr.With(require(authz.MessagesDeleteOwn)).Delete("/{id}/messages/{messageID}", h.Workspace.DeleteMessage)
			})
		})
	})
}
