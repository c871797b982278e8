package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func authenticated(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), identityContextKey, &identity{UserID: 1, Username: "alice"})
	return req.WithContext(ctx)
}

// These cover the handler-level checks that reject a request before any
// store call is made; the test application has no database behind it, so a
// handler reaching storage would panic.
func TestRegisterValidation(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "invalid body",
			body:        "{",
			wantMessage: "Invalid request body",
		},
		{
			name:        "missing username",
			body:        `{"email":"alice@x.com","password":"Str0ng!Pw"}`,
			wantMessage: "Username, email, and password are required",
		},
		{
			name:        "missing email",
			body:        `{"username":"alice","password":"Str0ng!Pw"}`,
			wantMessage: "Username, email, and password are required",
		},
		{
			name:        "missing password",
			body:        `{"username":"alice","email":"alice@x.com"}`,
			wantMessage: "Username, email, and password are required",
		},
		{
			name:        "invalid email",
			body:        `{"username":"alice","email":"not-an-email","password":"Str0ng!Pw"}`,
			wantMessage: "Invalid email format",
		},
		{
			name:        "weak password",
			body:        `{"username":"alice","email":"alice@x.com","password":"password"}`,
			wantMessage: weakPasswordMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			app.registerUserHandler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			env := decodeEnvelope(t, rec)
			if env.Status != "error" {
				t.Errorf("envelope status = %q, want %q", env.Status, "error")
			}
			if env.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", env.Message, tt.wantMessage)
			}
		})
	}
}

func TestLoginValidation(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"Str0ng!Pw"}`},
		{"missing password", `{"email":"alice@x.com"}`},
		{"empty body", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			app.loginUserHandler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			env := decodeEnvelope(t, rec)
			if env.Message != "Email and password are required" {
				t.Errorf("message = %q", env.Message)
			}
		})
	}
}

func TestUpdateAccountRequiresData(t *testing.T) {
	app := newTestApp()

	req := authenticated(httptest.NewRequest(http.MethodPut, "/users/account", strings.NewReader(`{}`)))
	rec := httptest.NewRecorder()
	app.updateAccountHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "No update data provided" {
		t.Errorf("message = %q, want %q", env.Message, "No update data provided")
	}
}

func TestCreateTodoRequiresTitle(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		body string
	}{
		{"no title", `{"description":"two liters"}`},
		{"empty title", `{"title":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authenticated(httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(tt.body)))
			rec := httptest.NewRecorder()
			app.createTodoHandler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			env := decodeEnvelope(t, rec)
			if env.Message != "Title is required" {
				t.Errorf("message = %q, want %q", env.Message, "Title is required")
			}
		})
	}
}

func TestUpdateTodoRequiresData(t *testing.T) {
	app := newTestApp()

	req := authenticated(httptest.NewRequest(http.MethodPut, "/todos/3", strings.NewReader(`{}`)))
	req.SetPathValue("id", "3")
	rec := httptest.NewRecorder()
	app.updateTodoHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "No update data provided" {
		t.Errorf("message = %q, want %q", env.Message, "No update data provided")
	}
}

func TestTodoHandlersRejectBadID(t *testing.T) {
	app := newTestApp()

	handlers := map[string]http.HandlerFunc{
		"get":    app.getTodoHandler,
		"update": app.updateTodoHandler,
		"delete": app.deleteTodoHandler,
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			req := authenticated(httptest.NewRequest(http.MethodGet, "/todos/abc", strings.NewReader(`{"title":"x"}`)))
			req.SetPathValue("id", "abc")
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
			}
			env := decodeEnvelope(t, rec)
			if env.Message != "Todo not found or not authorized" {
				t.Errorf("message = %q", env.Message)
			}
		})
	}
}

func TestRenameProjectRequiresNewName(t *testing.T) {
	app := newTestApp()

	req := authenticated(httptest.NewRequest(http.MethodPut, "/todos/projects/chores", strings.NewReader(`{}`)))
	req.SetPathValue("name", "chores")
	rec := httptest.NewRecorder()
	app.renameProjectHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "New project name is required" {
		t.Errorf("message = %q, want %q", env.Message, "New project name is required")
	}
}
