package services

import (
	"database/sql"
	"fmt"

	"github.com/acadpages/homepage-be/internal/models"
)

// ProjectServiceProvider defines the interface for project records.
type ProjectServiceProvider interface {
	GetAllProjects() ([]models.Project, error)
	CreateProject(p models.Project) (models.Project, error)
	UpdateProject(id int64, p models.Project) (models.Project, error)
	DeleteProject(id int64) error
}

// ProjectService provides CRUD for project records.
type ProjectService struct {
	db *sql.DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *sql.DB) *ProjectService {
	return &ProjectService{db: db}
}

func scanProject(scanner interface{ Scan(...interface{}) error }) (models.Project, error) {
	var p models.Project
	var desc, detailed, role, start, end sql.NullString
	var tech, url, github, status, tags sql.NullString

	err := scanner.Scan(&p.ID, &p.Title, &desc, &detailed, &role, &start, &end,
		&tech, &url, &github, &status, &tags, &p.OrderIndex, &p.CreatedAt)
	if err != nil {
		return p, err
	}

	p.Description = desc.String
	p.DetailedDescription = detailed.String
	p.Role = role.String
	p.StartDate = start.String
	p.EndDate = end.String
	p.Technologies = tech.String
	p.URL = url.String
	p.GitHubURL = github.String
	p.Status = status.String
	p.Tags = tags.String
	return p, nil
}

const projectColumns = `id, title, description, detailed_description, role, start_date, end_date, technologies, url, github_url, status, tags, order_index, created_at`

// GetAllProjects retrieves all projects, ordered for display.
func (s *ProjectService) GetAllProjects() ([]models.Project, error) {
	rows, err := s.db.Query(`SELECT ` + projectColumns + ` FROM projects ORDER BY order_index, start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// GetProjectByID retrieves a single project record.
func (s *ProjectService) GetProjectByID(id int64) (models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return p, fmt.Errorf("project %d not found: %w", id, sql.ErrNoRows)
	}
	return p, err
}

// CreateProject inserts a new project record.
func (s *ProjectService) CreateProject(p models.Project) (models.Project, error) {
	if p.Status == "" {
		p.Status = "completed"
	}
	res, err := s.db.Exec(`
		INSERT INTO projects (title, description, detailed_description, role, start_date, end_date, technologies, url, github_url, status, tags, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.DetailedDescription, p.Role, p.StartDate, p.EndDate,
		p.Technologies, p.URL, p.GitHubURL, p.Status, p.Tags, p.OrderIndex)
	if err != nil {
		return models.Project{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Project{}, err
	}
	return s.GetProjectByID(id)
}

// UpdateProject overwrites a project record.
func (s *ProjectService) UpdateProject(id int64, p models.Project) (models.Project, error) {
	_, err := s.db.Exec(`
		UPDATE projects
		SET title = ?, description = ?, detailed_description = ?, role = ?,
		    start_date = ?, end_date = ?, technologies = ?, url = ?,
		    github_url = ?, status = ?, tags = ?, order_index = ?
		WHERE id = ?`,
		p.Title, p.Description, p.DetailedDescription, p.Role, p.StartDate, p.EndDate,
		p.Technologies, p.URL, p.GitHubURL, p.Status, p.Tags, p.OrderIndex, id)
	if err != nil {
		return models.Project{}, err
	}
	return s.GetProjectByID(id)
}

// DeleteProject removes a project record.
func (s *ProjectService) DeleteProject(id int64) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}
