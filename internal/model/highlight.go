package model

import "time"

type DbHighlight struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	Title     string    `json:"title"`
	Highlight string    `json:"highlight"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DbHighlightRepo struct {
	FullName string `json:"full_name"`
}
