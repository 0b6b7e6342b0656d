package model

import "time"

type CardCheck struct {
	FileURL      string     `json:"fileUrl"`
	HasFile      bool       `json:"hasFile"`
	NeedsUpdate  bool       `json:"needsUpdate"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

type CardImage struct {
	PNG []byte
	SVG string
}
