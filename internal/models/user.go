package models

// User is an admin credential record. Accounts are provisioned out-of-band
// at startup; there is no public registration.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"` // Never expose this to the client
	CreatedAt    string `json:"created_at,omitempty"`
}
