package services

import (
	"database/sql"
	"fmt"

	"github.com/acadpages/homepage-be/internal/models"
)

// ProfileServiceProvider defines the interface for the profile and site
// settings singletons.
type ProfileServiceProvider interface {
	GetProfile() (models.Profile, error)
	UpdateProfile(p models.Profile) (models.Profile, error)
	GetSettings() (models.Settings, error)
	UpdateSettings(st models.Settings) (models.Settings, error)
}

// ProfileService provides access to the singleton profile and settings rows.
type ProfileService struct {
	db *sql.DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *sql.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves the profile record.
func (s *ProfileService) GetProfile() (models.Profile, error) {
	var p models.Profile
	var title, bio, avatar, email, phone, address sql.NullString
	var website, linkedin, github, orcid, interests sql.NullString

	row := s.db.QueryRow(`
		SELECT id, name, title, bio, avatar_url, email, phone, address,
		       website, linkedin, github, orcid, research_interests, updated_at
		FROM profile WHERE id = 1`)
	err := row.Scan(&p.ID, &p.Name, &title, &bio, &avatar, &email, &phone, &address,
		&website, &linkedin, &github, &orcid, &interests, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Profile{}, fmt.Errorf("profile not found: %w", sql.ErrNoRows)
		}
		return models.Profile{}, err
	}

	p.Title = title.String
	p.Bio = bio.String
	p.AvatarURL = avatar.String
	p.Email = email.String
	p.Phone = phone.String
	p.Address = address.String
	p.Website = website.String
	p.LinkedIn = linkedin.String
	p.GitHub = github.String
	p.ORCID = orcid.String
	p.ResearchInterests = interests.String
	return p, nil
}

// UpdateProfile writes the profile record and returns the stored state.
func (s *ProfileService) UpdateProfile(p models.Profile) (models.Profile, error) {
	_, err := s.db.Exec(`
		UPDATE profile
		SET name = ?, title = ?, bio = ?, avatar_url = ?, email = ?, phone = ?,
		    address = ?, website = ?, linkedin = ?, github = ?, orcid = ?,
		    research_interests = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1`,
		p.Name, p.Title, p.Bio, p.AvatarURL, p.Email, p.Phone,
		p.Address, p.Website, p.LinkedIn, p.GitHub, p.ORCID,
		p.ResearchInterests)
	if err != nil {
		return models.Profile{}, err
	}
	return s.GetProfile()
}

// GetSettings retrieves the settings record. When the row is missing a
// default-shaped record is returned instead of an error.
func (s *ProfileService) GetSettings() (models.Settings, error) {
	var st models.Settings
	var beian, title, desc, keywords, analytics sql.NullString
	var css, footer, social sql.NullString

	row := s.db.QueryRow(`
		SELECT id, beian, site_title, site_description, keywords,
		       analytics_code, custom_css, footer_text, social_links, updated_at
		FROM settings WHERE id = 1`)
	err := row.Scan(&st.ID, &beian, &title, &desc, &keywords,
		&analytics, &css, &footer, &social, &st.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Settings{ID: 1, SiteTitle: "Academic Homepage"}, nil
		}
		return models.Settings{}, err
	}

	st.Beian = beian.String
	st.SiteTitle = title.String
	st.SiteDescription = desc.String
	st.Keywords = keywords.String
	st.AnalyticsCode = analytics.String
	st.CustomCSS = css.String
	st.FooterText = footer.String
	st.SocialLinks = social.String
	return st, nil
}

// UpdateSettings upserts the settings fields the admin console edits.
func (s *ProfileService) UpdateSettings(st models.Settings) (models.Settings, error) {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, beian, site_title, site_description, keywords, analytics_code)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			beian = excluded.beian,
			site_title = excluded.site_title,
			site_description = excluded.site_description,
			keywords = excluded.keywords,
			analytics_code = excluded.analytics_code,
			updated_at = CURRENT_TIMESTAMP`,
		st.Beian, st.SiteTitle, st.SiteDescription, st.Keywords, st.AnalyticsCode)
	if err != nil {
		return models.Settings{}, err
	}
	return s.GetSettings()
}
