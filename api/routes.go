package main

import (
	"net/http"
)

func composeRoutes(app *application) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthcheck", app.healthCheckHandler)

	mux.HandleFunc("POST /users/register", app.registerUserHandler)
	mux.HandleFunc("POST /users/login", app.loginUserHandler)
	mux.HandleFunc("GET /users/profile", app.requireAuth(app.getProfileHandler))
	mux.HandleFunc("PUT /users/account", app.requireAuth(app.updateAccountHandler))
	mux.HandleFunc("DELETE /users/account", app.requireAuth(app.deleteAccountHandler))
	mux.HandleFunc("GET /users/stats/todos", app.requireAuth(app.getTodoStatsHandler))

	mux.HandleFunc("GET /todos", app.requireAuth(app.getTodosHandler))
	mux.HandleFunc("POST /todos", app.requireAuth(app.createTodoHandler))
	mux.HandleFunc("DELETE /todos/completed", app.requireAuth(app.clearCompletedTodosHandler))
	mux.HandleFunc("GET /todos/projects", app.requireAuth(app.getProjectNamesHandler))
	mux.HandleFunc("PUT /todos/projects/{name}", app.requireAuth(app.renameProjectHandler))
	mux.HandleFunc("DELETE /todos/projects/{name}", app.requireAuth(app.clearProjectHandler))
	mux.HandleFunc("GET /todos/{id}", app.requireAuth(app.getTodoHandler))
	mux.HandleFunc("PUT /todos/{id}", app.requireAuth(app.updateTodoHandler))
	mux.HandleFunc("DELETE /todos/{id}", app.requireAuth(app.deleteTodoHandler))

	var handler http.Handler = mux
	if app.config.limiter.enabled {
		handler = app.rateLimit(handler)
	}
	handler = app.enableCORS(handler)
	handler = recoverPanic(handler)
	return logRequests(handler)
}
