package service

import (
	"context"

	"github.com/devstats/social-card-service/internal/model"
	"github.com/devstats/social-card-service/internal/render"
	"github.com/devstats/social-card-service/internal/repository"
	"go.uber.org/zap"
)

// DataFetcher is the slice of the remote data API the card pipeline consumes.
type DataFetcher interface {
	User(ctx context.Context, username string) (*model.DbUser, error)
	Insight(ctx context.Context, id int64) (*model.DbInsight, error)
	InsightContributors(ctx context.Context, id int64) ([]model.DbContributor, error)
	Highlight(ctx context.Context, id int64) (*model.DbHighlight, error)
	HighlightRepos(ctx context.Context, id int64) ([]model.DbHighlightRepo, error)
	RateLimit(ctx context.Context) (*model.RateLimit, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

type Cards interface {
	CheckUser(ctx context.Context, username string) (*model.CardCheck, error)
	CheckInsight(ctx context.Context, id int64) (*model.CardCheck, error)
	CheckHighlight(ctx context.Context, id int64) (*model.CardCheck, error)

	EnsureUser(ctx context.Context, username string) (string, error)
	EnsureInsight(ctx context.Context, id int64) (string, error)
	EnsureHighlight(ctx context.Context, id int64) (string, error)

	GenerateUser(ctx context.Context, user *model.DbUser) (*model.CardImage, error)
	GenerateInsight(ctx context.Context, insight *model.DbInsight, contributors []model.DbContributor) (*model.CardImage, error)
	GenerateHighlight(ctx context.Context, highlight *model.DbHighlight, repos []model.DbHighlightRepo) (*model.CardImage, error)

	GeneratedTotals(ctx context.Context) map[string]int64
}

type Service struct {
	Cards
}

func New(logger *zap.Logger, repo *repository.Repository, fetcher DataFetcher, renderer *render.Renderer) *Service {
	return &Service{
		Cards: newCardService(logger, repo, fetcher, renderer),
	}
}
