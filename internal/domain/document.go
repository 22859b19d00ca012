package domain

import (
	"fmt"
	"time"
)

// Document records metadata for a file attached to a venture. The file
// contents live in external storage; only the reference is kept here.
type Document struct {
	ID         string    `json:"id"`
	VentureID  string    `json:"ventureId"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (d *Document) Validate() error {
	if d.VentureID == "" {
		return fmt.Errorf("document venture ID is required")
	}
	if d.Name == "" {
		return fmt.Errorf("document name is required")
	}
	if d.URL == "" {
		return fmt.Errorf("document URL is required")
	}
	if d.Size < 0 {
		return fmt.Errorf("document size must be non-negative, got %d", d.Size)
	}
	return nil
}
