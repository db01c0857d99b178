package services

import (
	"database/sql"
	"fmt"

	"github.com/acadpages/homepage-be/internal/models"
)

// AwardServiceProvider defines the interface for award records.
type AwardServiceProvider interface {
	GetAllAwards() ([]models.Award, error)
	CreateAward(a models.Award) (models.Award, error)
	UpdateAward(id int64, a models.Award) (models.Award, error)
	DeleteAward(id int64) error
}

// AwardService provides CRUD for award records.
type AwardService struct {
	db *sql.DB
}

// NewAwardService creates a new AwardService.
func NewAwardService(db *sql.DB) *AwardService {
	return &AwardService{db: db}
}

func scanAward(scanner interface{ Scan(...interface{}) error }) (models.Award, error) {
	var a models.Award
	var org, desc, tags sql.NullString
	var year sql.NullInt64

	err := scanner.Scan(&a.ID, &a.Title, &org, &year, &desc, &tags, &a.OrderIndex, &a.CreatedAt)
	if err != nil {
		return a, err
	}

	a.Organization = org.String
	a.Year = int(year.Int64)
	a.Description = desc.String
	a.Tags = tags.String
	return a, nil
}

const awardColumns = `id, title, organization, year, description, tags, order_index, created_at`

// GetAllAwards retrieves all awards, ordered for display.
func (s *AwardService) GetAllAwards() ([]models.Award, error) {
	rows, err := s.db.Query(`SELECT ` + awardColumns + ` FROM awards ORDER BY order_index, year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Award{}
	for rows.Next() {
		a, err := scanAward(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetAwardByID retrieves a single award record.
func (s *AwardService) GetAwardByID(id int64) (models.Award, error) {
	row := s.db.QueryRow(`SELECT `+awardColumns+` FROM awards WHERE id = ?`, id)
	a, err := scanAward(row)
	if err == sql.ErrNoRows {
		return a, fmt.Errorf("award %d not found: %w", id, sql.ErrNoRows)
	}
	return a, err
}

// CreateAward inserts a new award record.
func (s *AwardService) CreateAward(a models.Award) (models.Award, error) {
	res, err := s.db.Exec(`
		INSERT INTO awards (title, organization, year, description, tags, order_index)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Title, a.Organization, a.Year, a.Description, a.Tags, a.OrderIndex)
	if err != nil {
		return models.Award{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Award{}, err
	}
	return s.GetAwardByID(id)
}

// UpdateAward overwrites an award record.
func (s *AwardService) UpdateAward(id int64, a models.Award) (models.Award, error) {
	_, err := s.db.Exec(`
		UPDATE awards
		SET title = ?, organization = ?, year = ?, description = ?, tags = ?, order_index = ?
		WHERE id = ?`,
		a.Title, a.Organization, a.Year, a.Description, a.Tags, a.OrderIndex, id)
	if err != nil {
		return models.Award{}, err
	}
	return s.GetAwardByID(id)
}

// DeleteAward removes an award record.
func (s *AwardService) DeleteAward(id int64) error {
	_, err := s.db.Exec(`DELETE FROM awards WHERE id = ?`, id)
	return err
}
