package models

type Collection struct {
	ID              string   `json:"id"`
	PartnerID       string   `json:"partner_id"`
	OwnerID         string   `json:"owner_id,omitempty"`
	Code            string   `json:"code"`
	DisplayCode     string   `json:"display_code"`
	Path            string   `json:"path"`
	Name            string   `json:"name"`
	CollType        string   `json:"coll_type,omitempty"`
	Classification  string   `json:"classification,omitempty"`
	Quota           int64    `json:"quota"`
	ReadyForContent bool     `json:"ready_for_content"`
	PartnerURL      string   `json:"partner_url,omitempty"`
	OwnerURL        string   `json:"owner_url,omitempty"`
	LockVersion     int      `json:"lock_version"`
	RelPath         string   `json:"rel_path,omitempty"`
	StorageURL      string   `json:"storage_url"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
	Partner         *Partner `json:"partner,omitempty"`
}
