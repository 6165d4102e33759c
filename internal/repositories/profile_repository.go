package repositories

import (
	"database/sql"
	"errors"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
)

type ProfileRepository struct {
	DB *sql.DB
}

// GetByUserID loads the passenger profile joined with the account email.
func (r ProfileRepository) GetByUserID(userID int64) (models.Profile, error) {
	var p models.Profile
	err := r.DB.QueryRow(`SELECT p.user_id, p.first_name, p.last_name, p.phone_number, u.email
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ?`, userID).Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "perfil", Err: err}
	}
	if err != nil {
		return p, domain.InternalError{Err: err}
	}
	return p, nil
}

// Upsert keeps profile fields current after signup.
func (r ProfileRepository) Upsert(p models.Profile) error {
	_, err := r.DB.Exec(`INSERT INTO profiles (user_id, first_name, last_name, phone_number)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE first_name=VALUES(first_name), last_name=VALUES(last_name),
			phone_number=VALUES(phone_number)`,
		p.UserID, p.FirstName, p.LastName, p.PhoneNumber)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
