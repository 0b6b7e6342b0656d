package model

import "time"

type DbInsight struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	IsPublic  bool            `json:"is_public"`
	Repos     []DbInsightRepo `json:"repos"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type DbInsightRepo struct {
	RepoID   int64  `json:"repo_id"`
	FullName string `json:"full_name"`
}

type DbContributor struct {
	Login string `json:"author_login"`
}
