package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// todoIDFromRequest parses the {id} path segment. An unparseable id behaves
// exactly like an id that matches nothing.
func todoIDFromRequest(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil && id > 0
}

func (app *application) getTodosHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	sortBy := r.URL.Query().Get("sortBy")
	project := r.URL.Query().Get("project")
	todos, err := app.storage.getTodos(id.UserID, sortBy, project)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Success", todos)
}

func (app *application) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	var input struct {
		Title       string     `json:"title"`
		Description *string    `json:"description"`
		Deadline    *time.Time `json:"deadline"`
		ProjectName *string    `json:"project_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	t, err := app.storage.insertTodo(id.UserID, input.Title, input.Description, input.Deadline, input.ProjectName)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Todo created successfully", t)
}

func (app *application) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	todoID, ok := todoIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Todo not found or not authorized")
		return
	}
	t, err := app.storage.getTodoByID(todoID, id.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Todo not found or not authorized")
		return
	}
	writeSuccess(w, http.StatusOK, "Success", t)
}

func (app *application) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	todoID, ok := todoIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Todo not found or not authorized")
		return
	}
	var input todoUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.isEmpty() {
		writeError(w, http.StatusBadRequest, "No update data provided")
		return
	}
	t, err := app.storage.updateTodo(todoID, id.UserID, input)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Todo not found or not authorized")
		return
	}
	writeSuccess(w, http.StatusOK, "Todo updated successfully", t)
}

func (app *application) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	todoID, ok := todoIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Todo not found or not authorized")
		return
	}
	t, err := app.storage.deleteTodo(todoID, id.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Todo not found or not authorized")
		return
	}
	writeSuccess(w, http.StatusOK, "Todo deleted successfully", t)
}

func (app *application) clearCompletedTodosHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	count, err := app.storage.clearCompletedTodos(id.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, fmt.Sprintf("Deleted %d completed tasks", count), map[string]int64{
		"deletedCount": count,
	})
}

func (app *application) renameProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	oldName := r.PathValue("name")
	var input struct {
		NewProjectName string `json:"newProjectName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.NewProjectName == "" {
		writeError(w, http.StatusBadRequest, "New project name is required")
		return
	}
	count, err := app.storage.renameProject(id.UserID, oldName, input.NewProjectName)
	if err != nil {
		writeServerError(w, err)
		return
	}
	msg := fmt.Sprintf("Updated %d tasks for project %q to %q", count, oldName, input.NewProjectName)
	writeSuccess(w, http.StatusOK, msg, map[string]int64{"updatedCount": count})
}

func (app *application) clearProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	name := r.PathValue("name")
	count, err := app.storage.clearProject(id.UserID, name)
	if err != nil {
		writeServerError(w, err)
		return
	}
	msg := fmt.Sprintf("Cleared project name for %d tasks in project %q", count, name)
	writeSuccess(w, http.StatusOK, msg, map[string]int64{"updatedCount": count})
}

func (app *application) getProjectNamesHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	names, err := app.storage.getProjectNames(id.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Success", names)
}
