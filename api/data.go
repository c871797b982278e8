package main

import "time"

type user struct {
	ID           int       `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
}

type todo struct {
	ID          int        `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UserID      int        `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"completed"`
	Deadline    *time.Time `json:"deadline"`
	ProjectName *string    `json:"project_name"`
}

type todoStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// userUpdate and todoUpdate carry partial updates: a nil field was not
// supplied by the caller and must be left untouched.
type userUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (u *userUpdate) isEmpty() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil
}

type todoUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	IsCompleted *bool      `json:"completed"`
	Deadline    *time.Time `json:"deadline"`
	ProjectName *string    `json:"project_name"`
}

func (u *todoUpdate) isEmpty() bool {
	return u.Title == nil && u.Description == nil && u.IsCompleted == nil &&
		u.Deadline == nil && u.ProjectName == nil
}
