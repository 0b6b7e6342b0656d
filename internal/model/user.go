package model

import (
	"fmt"
	"time"
)

type DbUser struct {
	ID              int64     `json:"id"`
	Login           string    `json:"login"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	FollowersCount  int       `json:"followers_count"`
	HighlightsCount int       `json:"highlights_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u *DbUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// AvatarURL builds the public avatar location for a login.
func AvatarURL(login string, size int) string {
	return fmt.Sprintf("https://github.com/%s.png?size=%d", login, size)
}
