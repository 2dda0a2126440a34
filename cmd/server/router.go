package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tasktrack/tasktrack-api/internal/api"
	apiMiddleware "github.com/tasktrack/tasktrack-api/internal/api/middleware"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
)

// setupRouter registers every route. Protected routes authenticate first
// (401) and check the route's capability second (403); handlers run only
// after both pass.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	authHandler := api.NewAuthHandler(app.userService, app.authenticator)
	userHandler := api.NewUserHandler(app.userService)
	taskHandler := api.NewTaskHandler(app.taskService)
	commentHandler := api.NewCommentHandler(app.commentService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.resolver)

	with := func(r chi.Router, want auth.Capability) chi.Router {
		return r.With(apiMiddleware.RequireCapability(want))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/admin", func(r chi.Router) {
				with(r, auth.CapListEmployees).Get("/users", userHandler.ListEmployees)
				with(r, auth.CapCreateTask).Post("/task", taskHandler.CreateTask)
				with(r, auth.CapListAllTasks).Get("/tasks", taskHandler.ListTasks)
				with(r, auth.CapViewAnyTask).Get("/task/{id}", taskHandler.GetTask)
				with(r, auth.CapUpdateTask).Put("/task/{id}", taskHandler.UpdateTask)
				with(r, auth.CapDeleteTask).Delete("/task/{id}", taskHandler.DeleteTask)
				with(r, auth.CapSearchTasks).Get("/tasks/search/{title}", taskHandler.SearchTasks)
				with(r, auth.CapViewAnyTask).Post("/task/comment/{taskId}", commentHandler.CreateComment)
				with(r, auth.CapViewAnyComments).Get("/comments/{taskId}", commentHandler.ListComments)
			})

			r.Route("/employee", func(r chi.Router) {
				with(r, auth.CapListOwnTasks).Get("/tasks", taskHandler.ListOwnTasks)
				with(r, auth.CapListOwnTasks).Get("/task/{id}", taskHandler.GetTask)
				with(r, auth.CapUpdateOwnTaskStatus).Get("/tasks/{id}/{status}", taskHandler.UpdateOwnTaskStatus)
				with(r, auth.CapUpdateOwnTaskStatus).Put("/tasks/{id}/{status}", taskHandler.UpdateOwnTaskStatus)
				with(r, auth.CapViewOwnComments).Post("/task/comment/{taskId}", commentHandler.CreateComment)
				with(r, auth.CapViewOwnComments).Get("/comments/{taskId}", commentHandler.ListComments)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
