package services

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/acadpages/homepage-be/internal/models"
)

// UserServiceProvider defines the interface for the credential store.
type UserServiceProvider interface {
	GetUserByUsername(username string) (models.User, error)
	CreateAdmin(username, password, email string) (models.User, error)
	CountUsers() (int, error)
}

// UserService provides access to admin credential records. Records are only
// ever created through out-of-band provisioning; the HTTP surface reads them.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByUsername retrieves a credential record by exact username match,
// including the password hash. Wraps sql.ErrNoRows when absent.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	var email sql.NullString
	row := s.db.QueryRow("SELECT id, username, password_hash, email, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %q not found: %w", username, sql.ErrNoRows)
		}
		return models.User{}, err
	}
	user.Email = email.String
	return user, nil
}

// CreateAdmin provisions a credential record, hashing the password.
func (s *UserService) CreateAdmin(username, password, email string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("username and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO users(username, password_hash, email) VALUES(?, ?, ?)",
		username, string(hashedPassword), email)
	if err != nil {
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return models.User{ID: id, Username: username, Email: email}, nil
}

// CountUsers returns the number of credential records.
func (s *UserService) CountUsers() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
