package services

import (
	"database/sql"
	"fmt"

	"github.com/acadpages/homepage-be/internal/models"
)

// FriendServiceProvider defines the interface for friend link records.
type FriendServiceProvider interface {
	GetActiveFriends() ([]models.Friend, error)
	CreateFriend(f models.Friend) (models.Friend, error)
	UpdateFriend(id int64, f models.Friend) (models.Friend, error)
	DeleteFriend(id int64) error
}

// FriendService provides CRUD for friend link records.
type FriendService struct {
	db *sql.DB
}

// NewFriendService creates a new FriendService.
func NewFriendService(db *sql.DB) *FriendService {
	return &FriendService{db: db}
}

func scanFriend(scanner interface{ Scan(...interface{}) error }) (models.Friend, error) {
	var f models.Friend
	var desc, avatar sql.NullString
	var active int

	err := scanner.Scan(&f.ID, &f.Name, &f.URL, &desc, &avatar, &f.OrderIndex, &active, &f.CreatedAt)
	if err != nil {
		return f, err
	}

	f.Description = desc.String
	f.Avatar = avatar.String
	f.IsActive = active != 0
	return f, nil
}

const friendColumns = `id, name, url, description, avatar, order_index, is_active, created_at`

// GetActiveFriends retrieves the friend links shown publicly.
func (s *FriendService) GetActiveFriends() ([]models.Friend, error) {
	rows, err := s.db.Query(`SELECT ` + friendColumns + ` FROM friends WHERE is_active = 1 ORDER BY order_index, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Friend{}
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, f)
	}
	return records, rows.Err()
}

// GetFriendByID retrieves a single friend link, active or not.
func (s *FriendService) GetFriendByID(id int64) (models.Friend, error) {
	row := s.db.QueryRow(`SELECT `+friendColumns+` FROM friends WHERE id = ?`, id)
	f, err := scanFriend(row)
	if err == sql.ErrNoRows {
		return f, fmt.Errorf("friend link %d not found: %w", id, sql.ErrNoRows)
	}
	return f, err
}

// CreateFriend inserts a new friend link.
func (s *FriendService) CreateFriend(f models.Friend) (models.Friend, error) {
	res, err := s.db.Exec(`
		INSERT INTO friends (name, url, description, avatar, order_index, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.Name, f.URL, f.Description, f.Avatar, f.OrderIndex, boolToInt(f.IsActive))
	if err != nil {
		return models.Friend{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Friend{}, err
	}
	return s.GetFriendByID(id)
}

// UpdateFriend overwrites a friend link.
func (s *FriendService) UpdateFriend(id int64, f models.Friend) (models.Friend, error) {
	_, err := s.db.Exec(`
		UPDATE friends
		SET name = ?, url = ?, description = ?, avatar = ?, order_index = ?, is_active = ?
		WHERE id = ?`,
		f.Name, f.URL, f.Description, f.Avatar, f.OrderIndex, boolToInt(f.IsActive), id)
	if err != nil {
		return models.Friend{}, err
	}
	return s.GetFriendByID(id)
}

// DeleteFriend removes a friend link.
func (s *FriendService) DeleteFriend(id int64) error {
	_, err := s.db.Exec(`DELETE FROM friends WHERE id = ?`, id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
