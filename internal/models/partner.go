package models

type Partner struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	Path        string       `json:"path"`
	PartnersURL string       `json:"partners_url,omitempty"`
	CollsURL    string       `json:"colls_url,omitempty"`
	LockVersion int          `json:"lock_version"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
	Collections []Collection `json:"collections,omitempty"`
}
