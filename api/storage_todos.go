package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const todoColumns = "id, created_at, user_id, title, description, completed, deadline, project_name"

func scanTodo(row *sql.Row) (*todo, error) {
	var t todo
	err := row.Scan(&t.ID, &t.CreatedAt, &t.UserID, &t.Title, &t.Description,
		&t.IsCompleted, &t.Deadline, &t.ProjectName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// buildTodoListQuery scopes the listing to one owner, optionally filters by
// project name (case-insensitive) and picks the sort order:
//
//	"deadline"  deadline ascending, null deadlines last
//	"project"   project name ascending nulls first, then deadline, then age
//	default     newest first
func buildTodoListQuery(userID int, sortBy, project string) (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM todos WHERE user_id = $1", todoColumns)
	args := []any{userID}
	if project != "" {
		args = append(args, project)
		query += fmt.Sprintf(" AND project_name ILIKE $%d", len(args))
	}
	switch sortBy {
	case "deadline":
		query += " ORDER BY deadline NULLS LAST, created_at DESC"
	case "project":
		query += " ORDER BY project_name NULLS FIRST, deadline NULLS LAST, created_at DESC"
	default:
		query += " ORDER BY created_at DESC"
	}
	return query, args
}

func (s *storage) getTodos(userID int, sortBy, project string) ([]todo, error) {
	query, args := buildTodoListQuery(userID, sortBy, project)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list todos")
	}
	defer rows.Close()

	todos := []todo{}
	for rows.Next() {
		var t todo
		err := rows.Scan(&t.ID, &t.CreatedAt, &t.UserID, &t.Title, &t.Description,
			&t.IsCompleted, &t.Deadline, &t.ProjectName)
		if err != nil {
			return nil, errors.Wrap(err, "scan todo")
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list todos")
	}
	return todos, nil
}

// getTodoByID returns (nil, nil) both for an id that does not exist and for
// one owned by somebody else. Callers cannot tell the two apart.
func (s *storage) getTodoByID(id, userID int) (*todo, error) {
	query := fmt.Sprintf(`SELECT %s FROM todos WHERE id = $1 AND user_id = $2`, todoColumns)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	t, err := scanTodo(s.db.QueryRowContext(ctx, query, id, userID))
	return t, errors.Wrap(err, "get todo")
}

func (s *storage) insertTodo(userID int, title string, description *string, deadline *time.Time, projectName *string) (*todo, error) {
	query := fmt.Sprintf(`INSERT INTO todos (user_id, title, description, deadline, project_name)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING %s`, todoColumns)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	t, err := scanTodo(s.db.QueryRowContext(ctx, query, userID, title, description, deadline, projectName))
	return t, errors.Wrap(err, "insert todo")
}

// buildTodoUpdate assembles the SET clause from the supplied fields only.
// Ownership is re-verified inside the same statement: the WHERE clause
// filters by both id and owner, so there is no separate check to race
// against. Returns an empty query when no field was supplied.
func buildTodoUpdate(id, userID int, upd todoUpdate) (string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.IsCompleted != nil {
		add("completed", *upd.IsCompleted)
	}
	if upd.Deadline != nil {
		add("deadline", *upd.Deadline)
	}
	if upd.ProjectName != nil {
		add("project_name", *upd.ProjectName)
	}
	if len(sets) == 0 {
		return "", nil
	}
	args = append(args, id, userID)
	query := fmt.Sprintf("UPDATE todos SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), todoColumns)
	return query, args
}

func (s *storage) updateTodo(id, userID int, upd todoUpdate) (*todo, error) {
	query, args := buildTodoUpdate(id, userID, upd)
	if query == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	t, err := scanTodo(s.db.QueryRowContext(ctx, query, args...))
	return t, errors.Wrap(err, "update todo")
}

func (s *storage) deleteTodo(id, userID int) (*todo, error) {
	query := fmt.Sprintf(`DELETE FROM todos WHERE id = $1 AND user_id = $2 RETURNING %s`, todoColumns)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	t, err := scanTodo(s.db.QueryRowContext(ctx, query, id, userID))
	return t, errors.Wrap(err, "delete todo")
}

// renameProject relabels every todo of the user carrying the old project
// name. Zero matches is not an error.
func (s *storage) renameProject(userID int, oldName, newName string) (int64, error) {
	query := `UPDATE todos SET project_name = $3
			  WHERE user_id = $1 AND project_name = $2`
	return s.execCount(query, userID, oldName, newName)
}

func (s *storage) clearProject(userID int, name string) (int64, error) {
	query := `UPDATE todos SET project_name = NULL
			  WHERE user_id = $1 AND project_name = $2`
	return s.execCount(query, userID, name)
}

func (s *storage) clearCompletedTodos(userID int) (int64, error) {
	query := `DELETE FROM todos
			  WHERE user_id = $1 AND completed = TRUE`
	return s.execCount(query, userID)
}

func (s *storage) execCount(query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "exec")
	}
	count, err := res.RowsAffected()
	return count, errors.Wrap(err, "rows affected")
}

func (s *storage) getProjectNames(userID int) ([]string, error) {
	query := `SELECT DISTINCT project_name FROM todos
			  WHERE user_id = $1 AND project_name IS NOT NULL AND project_name != ''
			  ORDER BY project_name`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list project names")
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scan project name")
		}
		names = append(names, name)
	}
	return names, errors.Wrap(rows.Err(), "list project names")
}
