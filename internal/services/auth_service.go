package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
	"nawabus/internal/repositories"
	"nawabus/internal/utils"
)

// AuthService handles signup and login; a fresh signup is signed in
// immediately, no confirmation step.
type AuthService struct {
	Users     repositories.UserRepository
	Profiles  repositories.ProfileRepository
	JWTSecret []byte
	RequestID string
}

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the authenticated payload both register and login return.
type Session struct {
	Token   string         `json:"token"`
	UserID  int64          `json:"user_id"`
	Profile models.Profile `json:"profile"`
}

// Register creates the account, splits the full name into the profile
// fields and returns a live session.
func (s AuthService) Register(req RegisterRequest) (Session, error) {
	var session Session

	email := strings.ToLower(utils.TrimOrEmpty(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return session, domain.ValidationError{Field: "email", Msg: "email inválido"}
	}
	if len(req.Password) < 6 {
		return session, domain.ValidationError{Field: "password", Msg: "a palavra-passe deve ter pelo menos 6 caracteres"}
	}
	if utils.TrimOrEmpty(req.FullName) == "" {
		return session, domain.ValidationError{Field: "full_name", Msg: "nome completo obrigatório"}
	}

	exists, err := s.Users.EmailExists(email)
	if err != nil {
		return session, err
	}
	if exists {
		return session, domain.ConflictError{Resource: "email", Msg: "este email já está registado"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return session, domain.InternalError{Err: err}
	}

	userID, err := s.Users.Create(email, string(hash))
	if err != nil {
		return session, err
	}

	first, last := utils.SplitFullName(req.FullName)
	profile := models.Profile{
		UserID:      userID,
		FirstName:   first,
		LastName:    last,
		PhoneNumber: utils.TrimOrEmpty(req.Phone),
		Email:       email,
	}
	if err := s.Profiles.Upsert(profile); err != nil {
		return session, err
	}

	token, err := s.signToken(userID)
	if err != nil {
		return session, err
	}

	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", userID))
	return Session{Token: token, UserID: userID, Profile: profile}, nil
}

// Login verifies credentials. Wrong email and wrong password are
// indistinguishable to the caller.
func (s AuthService) Login(req LoginRequest) (Session, error) {
	var session Session

	email := strings.ToLower(utils.TrimOrEmpty(req.Email))
	user, err := s.Users.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return session, domain.ValidationError{Msg: "email ou palavra-passe incorretos"}
		}
		return session, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return session, domain.ValidationError{Msg: "email ou palavra-passe incorretos"}
	}

	profile, err := s.Profiles.GetByUserID(user.ID)
	if err != nil && !domain.IsNotFound(err) {
		return session, err
	}
	profile.Email = user.Email

	token, err := s.signToken(user.ID)
	if err != nil {
		return session, err
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return Session{Token: token, UserID: user.ID, Profile: profile}, nil
}

func (s AuthService) signToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return signed, nil
}

// ParseToken validates a bearer token and extracts the user id; the auth
// middleware is its only caller.
func ParseToken(secret []byte, raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ValidationError{Msg: "sessão inválida ou expirada", Err: err}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ValidationError{Msg: "sessão inválida ou expirada"}
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, domain.ValidationError{Msg: "sessão inválida ou expirada"}
	}
	return int64(id), nil
}
