package models

import "strings"

// Profile links passenger identity fields to an authenticated user.
type Profile struct {
	UserID      int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// FullName joins first and last name, tolerating either being empty.
func (p Profile) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return "Passageiro"
	}
	return name
}
