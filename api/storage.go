package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const queryTimeout = 5 * time.Second

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConnections)
	db.SetMaxIdleConns(cfg.db.maxIdleConnections)
	db.SetConnMaxIdleTime(cfg.db.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping database")
	}
	return db, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The handlers pre-check uniqueness themselves; the constraint
// catches the window between check and insert.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

type storage struct {
	db *sql.DB
}

func newStorage(db *sql.DB) *storage {
	return &storage{db: db}
}

// getUserByUsername returns the full row including the password hash, or
// (nil, nil) when no such user exists.
func (s *storage) getUserByUsername(username string) (*user, error) {
	query := `SELECT id, created_at, username, email, password_hash
			  FROM users
			  WHERE username = $1`
	return s.getUser(query, username)
}

func (s *storage) getUserByEmail(email string) (*user, error) {
	query := `SELECT id, created_at, username, email, password_hash
			  FROM users
			  WHERE email = $1`
	return s.getUser(query, email)
}

func (s *storage) getUser(query string, arg any) (*user, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var u user
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get user")
	}
	return &u, nil
}

// getUserByID returns the public projection: the password hash is never
// loaded for profile reads.
func (s *storage) getUserByID(id int) (*user, error) {
	query := `SELECT id, created_at, username, email
			  FROM users
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var u user
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get user by id")
	}
	return &u, nil
}

func (s *storage) insertUser(username, email string, passwordHash []byte) (*user, error) {
	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at, username, email`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var u user
	err := s.db.QueryRowContext(ctx, query, username, email, passwordHash).
		Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "insert user")
	}
	return &u, nil
}

// buildUserUpdate assembles the SET clause from the supplied fields only.
// Returns an empty query when nothing was supplied.
func buildUserUpdate(id int, username, email *string, passwordHash []byte) (string, []any) {
	var sets []string
	var args []any
	if username != nil {
		args = append(args, *username)
		sets = append(sets, fmt.Sprintf("username = $%d", len(args)))
	}
	if email != nil {
		args = append(args, *email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if passwordHash != nil {
		args = append(args, passwordHash)
		sets = append(sets, fmt.Sprintf("password_hash = $%d", len(args)))
	}
	if len(sets) == 0 {
		return "", nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING id, created_at, username, email`,
		strings.Join(sets, ", "), len(args))
	return query, args
}

// updateUser mutates only the supplied fields and returns the public
// projection of the updated row, (nil, nil) when nothing was supplied or no
// row matched.
func (s *storage) updateUser(id int, upd userUpdate) (*user, error) {
	var passwordHash []byte
	if upd.Password != nil {
		var err error
		passwordHash, err = hashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
	}
	query, args := buildUserUpdate(id, upd.Username, upd.Email, passwordHash)
	if query == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var u user
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "update user")
	}
	return &u, nil
}

// deleteUser removes the user and, through the schema's cascade, every todo
// they own. Returns the minimal identity of the deleted row or (nil, nil).
func (s *storage) deleteUser(id int) (*user, error) {
	query := `DELETE FROM users
			  WHERE id = $1
			  RETURNING id, username`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var u user
	err := s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "delete user")
	}
	return &u, nil
}

func (s *storage) getTodoStats(userID int) (*todoStats, error) {
	query := `SELECT
				COUNT(*) AS total,
				COUNT(CASE WHEN completed = TRUE THEN 1 END) AS completed,
				COUNT(CASE WHEN completed = FALSE THEN 1 END) AS pending
			  FROM todos
			  WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var stats todoStats
	err := s.db.QueryRowContext(ctx, query, userID).
		Scan(&stats.Total, &stats.Completed, &stats.Pending)
	if err != nil {
		return nil, errors.Wrap(err, "get todo stats")
	}
	return &stats, nil
}
