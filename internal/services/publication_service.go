package services

import (
	"database/sql"
	"fmt"

	"github.com/acadpages/homepage-be/internal/models"
)

// PublicationServiceProvider defines the interface for publication records.
type PublicationServiceProvider interface {
	GetAllPublications() ([]models.Publication, error)
	CreatePublication(p models.Publication) (models.Publication, error)
	UpdatePublication(id int64, p models.Publication) (models.Publication, error)
	DeletePublication(id int64) error
}

// PublicationService provides CRUD for publication records.
type PublicationService struct {
	db *sql.DB
}

// NewPublicationService creates a new PublicationService.
func NewPublicationService(db *sql.DB) *PublicationService {
	return &PublicationService{db: db}
}

func scanPublication(scanner interface{ Scan(...interface{}) error }) (models.Publication, error) {
	var p models.Publication
	var journal, volume, pages, doi, url, abstract, keywords, pubType sql.NullString
	var year sql.NullInt64

	err := scanner.Scan(&p.ID, &p.Title, &p.Authors, &journal, &year, &volume,
		&pages, &doi, &url, &abstract, &keywords, &pubType, &p.OrderIndex, &p.CreatedAt)
	if err != nil {
		return p, err
	}

	p.Journal = journal.String
	p.Year = int(year.Int64)
	p.Volume = volume.String
	p.Pages = pages.String
	p.DOI = doi.String
	p.URL = url.String
	p.Abstract = abstract.String
	p.Keywords = keywords.String
	p.Type = pubType.String
	return p, nil
}

const publicationColumns = `id, title, authors, journal, year, volume, pages, doi, url, abstract, keywords, type, order_index, created_at`

// GetAllPublications retrieves all publications, ordered for display.
func (s *PublicationService) GetAllPublications() ([]models.Publication, error) {
	rows, err := s.db.Query(`SELECT ` + publicationColumns + ` FROM publications ORDER BY order_index, year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// GetPublicationByID retrieves a single publication record.
func (s *PublicationService) GetPublicationByID(id int64) (models.Publication, error) {
	row := s.db.QueryRow(`SELECT `+publicationColumns+` FROM publications WHERE id = ?`, id)
	p, err := scanPublication(row)
	if err == sql.ErrNoRows {
		return p, fmt.Errorf("publication %d not found: %w", id, sql.ErrNoRows)
	}
	return p, err
}

// CreatePublication inserts a new publication record.
func (s *PublicationService) CreatePublication(p models.Publication) (models.Publication, error) {
	if p.Type == "" {
		p.Type = "journal"
	}
	res, err := s.db.Exec(`
		INSERT INTO publications (title, authors, journal, year, volume, pages, doi, url, abstract, keywords, type, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Authors, p.Journal, p.Year, p.Volume, p.Pages,
		p.DOI, p.URL, p.Abstract, p.Keywords, p.Type, p.OrderIndex)
	if err != nil {
		return models.Publication{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Publication{}, err
	}
	return s.GetPublicationByID(id)
}

// UpdatePublication overwrites a publication record.
func (s *PublicationService) UpdatePublication(id int64, p models.Publication) (models.Publication, error) {
	_, err := s.db.Exec(`
		UPDATE publications
		SET title = ?, authors = ?, journal = ?, year = ?, volume = ?, pages = ?,
		    doi = ?, url = ?, abstract = ?, keywords = ?, type = ?, order_index = ?
		WHERE id = ?`,
		p.Title, p.Authors, p.Journal, p.Year, p.Volume, p.Pages,
		p.DOI, p.URL, p.Abstract, p.Keywords, p.Type, p.OrderIndex, id)
	if err != nil {
		return models.Publication{}, err
	}
	return s.GetPublicationByID(id)
}

// DeletePublication removes a publication record.
func (s *PublicationService) DeletePublication(id int64) error {
	_, err := s.db.Exec(`DELETE FROM publications WHERE id = ?`, id)
	return err
}
