package services

import (
	"database/sql"
	"fmt"

	"github.com/acadpages/homepage-be/internal/models"
)

// EducationServiceProvider defines the interface for education records.
type EducationServiceProvider interface {
	GetAllEducation() ([]models.Education, error)
	CreateEducation(e models.Education) (models.Education, error)
	UpdateEducation(id int64, e models.Education) (models.Education, error)
	DeleteEducation(id int64) error
}

// EducationService provides CRUD for education records.
type EducationService struct {
	db *sql.DB
}

// NewEducationService creates a new EducationService.
func NewEducationService(db *sql.DB) *EducationService {
	return &EducationService{db: db}
}

// scanEducation is a helper to scan an education record from a row or rows.
func scanEducation(scanner interface{ Scan(...interface{}) error }) (models.Education, error) {
	var e models.Education
	var field, desc, tags sql.NullString
	var startYear, endYear sql.NullInt64

	err := scanner.Scan(&e.ID, &e.Degree, &e.Institution, &field,
		&startYear, &endYear, &desc, &tags, &e.OrderIndex, &e.CreatedAt)
	if err != nil {
		return e, err
	}

	e.Field = field.String
	e.StartYear = int(startYear.Int64)
	e.EndYear = int(endYear.Int64)
	e.Description = desc.String
	e.Tags = tags.String
	return e, nil
}

const educationColumns = `id, degree, institution, field, start_year, end_year, description, tags, order_index, created_at`

// GetAllEducation retrieves all education records, ordered for display.
func (s *EducationService) GetAllEducation() ([]models.Education, error) {
	rows, err := s.db.Query(`SELECT ` + educationColumns + ` FROM education ORDER BY order_index, start_year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Education{}
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

// GetEducationByID retrieves a single education record.
func (s *EducationService) GetEducationByID(id int64) (models.Education, error) {
	row := s.db.QueryRow(`SELECT `+educationColumns+` FROM education WHERE id = ?`, id)
	e, err := scanEducation(row)
	if err == sql.ErrNoRows {
		return e, fmt.Errorf("education record %d not found: %w", id, sql.ErrNoRows)
	}
	return e, err
}

// CreateEducation inserts a new education record.
func (s *EducationService) CreateEducation(e models.Education) (models.Education, error) {
	res, err := s.db.Exec(`
		INSERT INTO education (degree, institution, field, start_year, end_year, description, tags, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Degree, e.Institution, e.Field, e.StartYear, e.EndYear, e.Description, e.Tags, e.OrderIndex)
	if err != nil {
		return models.Education{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Education{}, err
	}
	return s.GetEducationByID(id)
}

// UpdateEducation overwrites an education record.
func (s *EducationService) UpdateEducation(id int64, e models.Education) (models.Education, error) {
	_, err := s.db.Exec(`
		UPDATE education
		SET degree = ?, institution = ?, field = ?, start_year = ?,
		    end_year = ?, description = ?, tags = ?, order_index = ?
		WHERE id = ?`,
		e.Degree, e.Institution, e.Field, e.StartYear, e.EndYear, e.Description, e.Tags, e.OrderIndex, id)
	if err != nil {
		return models.Education{}, err
	}
	return s.GetEducationByID(id)
}

// DeleteEducation removes an education record.
func (s *EducationService) DeleteEducation(id int64) error {
	_, err := s.db.Exec(`DELETE FROM education WHERE id = ?`, id)
	return err
}
