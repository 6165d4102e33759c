package repositories

import (
	"database/sql"
	"errors"

	"nawabus/internal/domain"
)

type UserRepository struct {
	DB *sql.DB
}

// User is the credentials row; passenger identity lives in profiles.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
}

// GetByEmail loads the credentials row for login.
func (r UserRepository) GetByEmail(email string) (User, error) {
	var u User
	err := r.DB.QueryRow(`SELECT id, email, password_hash FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "utilizador", Err: err}
	}
	if err != nil {
		return u, domain.InternalError{Err: err}
	}
	return u, nil
}

// EmailExists backs the duplicate check on signup.
func (r UserRepository) EmailExists(email string) (bool, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// Create inserts the credentials row and returns its id.
func (r UserRepository) Create(email, passwordHash string) (int64, error) {
	res, err := r.DB.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, passwordHash)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}
