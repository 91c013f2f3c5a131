// Package userdir provides the user directory, the single source of
// truth for dashboard accounts.
package userdir

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"                      // SQLite driver
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver

	"github.com/theeace/dashboard-go/models"
)

// ErrConflict is returned when a username or user ID is already taken.
var ErrConflict = errors.New("Username or User ID already exists")

// ErrInvalidCredentials is returned when no stored user matches the
// supplied username, user ID and passkey exactly. Login fails closed.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// Config holds user directory connection parameters.
type Config struct {
	TursoDatabase string
	TursoToken    string
	SQLitePath    string
}

// Directory wraps the user database connection.
type Directory struct {
	conn     *sql.DB
	useTurso bool
}

// Open creates the user directory connection. Turso is tried first
// when credentials are present; SQLite is the fallback.
func Open(config Config) (*Directory, error) {
	var conn *sql.DB
	var err error
	var useTurso bool

	if config.TursoDatabase != "" && config.TursoToken != "" {
		connStr := config.TursoDatabase + "?authToken=" + config.TursoToken
		conn, err = sql.Open("libsql", connStr)
		if err == nil {
			if pingErr := conn.Ping(); pingErr == nil {
				useTurso = true
			} else {
				conn.Close()
				conn = nil
			}
		}
	}

	if conn == nil {
		dbDir := filepath.Dir(config.SQLitePath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		conn, err = sql.Open("sqlite3", config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}

		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("SQLite database ping failed: %w", err)
		}
		useTurso = false
	}

	d := &Directory{conn: conn, useTurso: useTurso}
	if err := d.ensureSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database connection.
func (d *Directory) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// ConnectionInfo returns a string describing the database connection.
func (d *Directory) ConnectionInfo() string {
	if d.useTurso {
		return "Turso"
	}
	return "SQLite"
}

func (d *Directory) ensureSchema() error {
	_, err := d.conn.Exec(`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		passkey TEXT NOT NULL,
		created_at TEXT NOT NULL,
		last_login TEXT
	)`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// List returns all users newest first, with passkeys omitted.
func (d *Directory) List() ([]models.User, error) {
	rows, err := d.conn.Query(
		`SELECT user_id, username, created_at, last_login FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var lastLogin sql.NullString
		if err := rows.Scan(&u.UserID, &u.Username, &u.CreatedAt, &lastLogin); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		if lastLogin.Valid {
			u.LastLogin = &lastLogin.String
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return users, nil
}

// exists reports whether any user already holds the username or ID.
func (d *Directory) exists(username, userID string) (bool, error) {
	var count int
	err := d.conn.QueryRow(
		`SELECT COUNT(*) FROM users WHERE username = ? OR user_id = ?`, username, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new user. Returns ErrConflict when the username or
// user ID collides with an existing account.
func (d *Directory) Create(username, userID, passkey string) (*models.User, error) {
	taken, err := d.exists(username, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	user := &models.User{
		Username:  username,
		UserID:    userID,
		Passkey:   passkey,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err = d.conn.Exec(
		`INSERT INTO users (user_id, username, passkey, created_at, last_login) VALUES (?, ?, ?, ?, NULL)`,
		user.UserID, user.Username, user.Passkey, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// Delete removes a user account. Missing users are not an error.
func (d *Directory) Delete(userID string) error {
	_, err := d.conn.Exec(`DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Authenticate matches the stored triple exactly and records the login
// time on success. Unknown credentials are rejected, never synthesized.
func (d *Directory) Authenticate(username, userID, passkey string) (*models.User, error) {
	var u models.User
	var lastLogin sql.NullString
	err := d.conn.QueryRow(
		`SELECT user_id, username, passkey, created_at, last_login FROM users
		 WHERE username = ? AND user_id = ? AND passkey = ?`,
		username, userID, passkey).Scan(&u.UserID, &u.Username, &u.Passkey, &u.CreatedAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := d.conn.Exec(`UPDATE users SET last_login = ? WHERE user_id = ?`, now, u.UserID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	u.LastLogin = &now
	return &u, nil
}
