package models

// Public page content records. Fields are plain optional strings and
// integers; ordering within a section is controlled by OrderIndex.

// Education is a degree entry.
type Education struct {
	ID          int64  `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Field       string `json:"field"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	OrderIndex  int    `json:"order_index"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Publication is a paper or article.
type Publication struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Authors    string `json:"authors"`
	Journal    string `json:"journal"`
	Year       int    `json:"year"`
	Volume     string `json:"volume"`
	Pages      string `json:"pages"`
	DOI        string `json:"doi"`
	URL        string `json:"url"`
	Abstract   string `json:"abstract"`
	Keywords   string `json:"keywords"`
	Type       string `json:"type"`
	OrderIndex int    `json:"order_index"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Project is a research or software project.
type Project struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	DetailedDescription string `json:"detailed_description"`
	Role                string `json:"role"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	Technologies        string `json:"technologies"`
	URL                 string `json:"url"`
	GitHubURL           string `json:"github_url"`
	Status              string `json:"status"`
	Tags                string `json:"tags"`
	OrderIndex          int    `json:"order_index"`
	CreatedAt           string `json:"created_at,omitempty"`
}

// Experience is a work or academic position.
type Experience struct {
	ID           int64  `json:"id"`
	Position     string `json:"position"`
	Organization string `json:"organization"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Tags         string `json:"tags"`
	OrderIndex   int    `json:"order_index"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Award is an honor or prize.
type Award struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Year         int    `json:"year"`
	Description  string `json:"description"`
	Tags         string `json:"tags"`
	OrderIndex   int    `json:"order_index"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Friend is an external link shown in the friends section. Inactive links
// are hidden from the public listing but kept in storage.
type Friend struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	OrderIndex  int    `json:"order_index"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at,omitempty"`
}
