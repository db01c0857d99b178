package models

// Profile is the single public profile record (row id 1).
type Profile struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Title             string `json:"title"`
	Bio               string `json:"bio"`
	AvatarURL         string `json:"avatar_url"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	Website           string `json:"website"`
	LinkedIn          string `json:"linkedin"`
	GitHub            string `json:"github"`
	ORCID             string `json:"orcid"`
	ResearchInterests string `json:"research_interests"`
	UpdatedAt         string `json:"updated_at"`
}

// Settings is the single site configuration record (row id 1).
type Settings struct {
	ID              int64  `json:"id"`
	Beian           string `json:"beian"`
	SiteTitle       string `json:"site_title"`
	SiteDescription string `json:"site_description"`
	Keywords        string `json:"keywords"`
	AnalyticsCode   string `json:"analytics_code"`
	CustomCSS       string `json:"custom_css"`
	FooterText      string `json:"footer_text"`
	SocialLinks     string `json:"social_links"`
	UpdatedAt       string `json:"updated_at"`
}
