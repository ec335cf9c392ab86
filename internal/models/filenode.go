package models

// FileNode to jeden wpis w hierarchicznym magazynie API zewnętrznego.
// Katalogi niosą Children tylko dla aktualnie pobranego poziomu, pliki nigdy.
type FileNode struct {
	Name         string     `json:"name"`
	ObjectType   string     `json:"object_type"`
	Size         int64      `json:"size,omitempty"`
	DisplaySize  string     `json:"display_size,omitempty"`
	LastModified string     `json:"last_modified,omitempty"`
	URL          string     `json:"url,omitempty"`
	DownloadURL  string     `json:"download_url,omitempty"`
	MimeType     string     `json:"mime_type,omitempty"`
	Path         string     `json:"path,omitempty"`
	Children     []FileNode `json:"children,omitempty"`
}

const (
	ObjectTypeFile      = "file"
	ObjectTypeDirectory = "directory"
)
