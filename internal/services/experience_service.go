package services

import (
	"database/sql"
	"fmt"

	"github.com/acadpages/homepage-be/internal/models"
)

// ExperienceServiceProvider defines the interface for experience records.
type ExperienceServiceProvider interface {
	GetAllExperience() ([]models.Experience, error)
	CreateExperience(e models.Experience) (models.Experience, error)
	UpdateExperience(id int64, e models.Experience) (models.Experience, error)
	DeleteExperience(id int64) error
}

// ExperienceService provides CRUD for experience records.
type ExperienceService struct {
	db *sql.DB
}

// NewExperienceService creates a new ExperienceService.
func NewExperienceService(db *sql.DB) *ExperienceService {
	return &ExperienceService{db: db}
}

func scanExperience(scanner interface{ Scan(...interface{}) error }) (models.Experience, error) {
	var e models.Experience
	var start, end, desc, location, tags sql.NullString

	err := scanner.Scan(&e.ID, &e.Position, &e.Organization, &start, &end,
		&desc, &location, &tags, &e.OrderIndex, &e.CreatedAt)
	if err != nil {
		return e, err
	}

	e.StartDate = start.String
	e.EndDate = end.String
	e.Description = desc.String
	e.Location = location.String
	e.Tags = tags.String
	return e, nil
}

const experienceColumns = `id, position, organization, start_date, end_date, description, location, tags, order_index, created_at`

// GetAllExperience retrieves all experience records, ordered for display.
func (s *ExperienceService) GetAllExperience() ([]models.Experience, error) {
	rows, err := s.db.Query(`SELECT ` + experienceColumns + ` FROM experience ORDER BY order_index, start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

// GetExperienceByID retrieves a single experience record.
func (s *ExperienceService) GetExperienceByID(id int64) (models.Experience, error) {
	row := s.db.QueryRow(`SELECT `+experienceColumns+` FROM experience WHERE id = ?`, id)
	e, err := scanExperience(row)
	if err == sql.ErrNoRows {
		return e, fmt.Errorf("experience record %d not found: %w", id, sql.ErrNoRows)
	}
	return e, err
}

// CreateExperience inserts a new experience record.
func (s *ExperienceService) CreateExperience(e models.Experience) (models.Experience, error) {
	res, err := s.db.Exec(`
		INSERT INTO experience (position, organization, start_date, end_date, description, location, tags, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Position, e.Organization, e.StartDate, e.EndDate, e.Description, e.Location, e.Tags, e.OrderIndex)
	if err != nil {
		return models.Experience{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Experience{}, err
	}
	return s.GetExperienceByID(id)
}

// UpdateExperience overwrites an experience record.
func (s *ExperienceService) UpdateExperience(id int64, e models.Experience) (models.Experience, error) {
	_, err := s.db.Exec(`
		UPDATE experience
		SET position = ?, organization = ?, start_date = ?, end_date = ?,
		    description = ?, location = ?, tags = ?, order_index = ?
		WHERE id = ?`,
		e.Position, e.Organization, e.StartDate, e.EndDate, e.Description, e.Location, e.Tags, e.OrderIndex, id)
	if err != nil {
		return models.Experience{}, err
	}
	return s.GetExperienceByID(id)
}

// DeleteExperience removes an experience record.
func (s *ExperienceService) DeleteExperience(id int64) error {
	_, err := s.db.Exec(`DELETE FROM experience WHERE id = ?`, id)
	return err
}
