package main

import (
	"encoding/json"
	"net/http"
)

type authResponse struct {
	User  *user  `json:"user"`
	Token string `json:"token"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Username == "" || input.Email == "" || input.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email, and password are required")
		return
	}
	if !isValidEmail(input.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if !isStrongPassword(input.Password) {
		writeError(w, http.StatusBadRequest, weakPasswordMessage)
		return
	}

	existing, err := app.storage.getUserByUsername(input.Username)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Username already exists")
		return
	}
	existing, err = app.storage.getUserByEmail(input.Email)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Email already exists")
		return
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		writeServerError(w, err)
		return
	}
	u, err := app.storage.insertUser(input.Username, input.Email, hash)
	if err != nil {
		// lost the race against a concurrent duplicate registration
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		writeServerError(w, err)
		return
	}

	token, err := issueToken(app.config.jwtSecret, u.ID, u.Username)
	if err != nil {
		writeServerError(w, err)
		return
	}

	app.mailer.sendWelcome(u)

	writeSuccess(w, http.StatusCreated, "User registered successfully", authResponse{
		User:  u,
		Token: token,
	})
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := app.storage.getUserByEmail(input.Email)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !verifyPassword(input.Password, u.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Wrong Password")
		return
	}

	token, err := issueToken(app.config.jwtSecret, u.ID, u.Username)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Login successful", authResponse{
		User:  u,
		Token: token,
	})
}

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	u, err := app.storage.getUserByID(id.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeSuccess(w, http.StatusOK, "Success", u)
}

func (app *application) updateAccountHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	var input userUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.isEmpty() {
		writeError(w, http.StatusBadRequest, "No update data provided")
		return
	}

	if input.Username != nil {
		existing, err := app.storage.getUserByUsername(*input.Username)
		if err != nil {
			writeServerError(w, err)
			return
		}
		if existing != nil && existing.ID != id.UserID {
			writeError(w, http.StatusConflict, "Username already taken")
			return
		}
	}
	if input.Email != nil {
		if !isValidEmail(*input.Email) {
			writeError(w, http.StatusBadRequest, "Invalid email format")
			return
		}
		existing, err := app.storage.getUserByEmail(*input.Email)
		if err != nil {
			writeServerError(w, err)
			return
		}
		if existing != nil && existing.ID != id.UserID {
			writeError(w, http.StatusConflict, "Email already taken")
			return
		}
	}
	if input.Password != nil && !isStrongPassword(*input.Password) {
		writeError(w, http.StatusBadRequest, weakPasswordMessage)
		return
	}

	u, err := app.storage.updateUser(id.UserID, input)
	if err != nil {
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "Username or email already taken")
			return
		}
		writeServerError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	writeSuccess(w, http.StatusOK, "Account updated successfully", u)
}

func (app *application) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	u, err := app.storage.deleteUser(id.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeSuccess(w, http.StatusOK, "Account deleted successfully", nil)
}

func (app *application) getTodoStatsHandler(w http.ResponseWriter, r *http.Request) {
	id := getIdentityFromRequest(r)
	stats, err := app.storage.getTodoStats(id.UserID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Success", stats)
}
