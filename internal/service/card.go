package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/devstats/social-card-service/internal/model"
	"github.com/devstats/social-card-service/internal/render"
	"github.com/devstats/social-card-service/internal/repository"
	"github.com/devstats/social-card-service/internal/repository/redisrepo"
	"github.com/devstats/social-card-service/pkg/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RATE_LIMIT_THRESHOLD = 1000

	NAME_CHAR_BUDGET   = 24
	BIO_CHAR_BUDGET    = 80
	TITLE_CHAR_BUDGET  = 40
	REPO_DISPLAY_LIMIT = 3
	AVATAR_SIZE        = 180

	CARD_LOCK_TTL  = 30 * time.Second
	CARD_LOCK_WAIT = 10 * time.Second

	USERS_RESOURCE      = "users"
	INSIGHTS_RESOURCE   = "insights"
	HIGHLIGHTS_RESOURCE = "highlights"
)

type cardService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	fetcher  DataFetcher
	renderer *render.Renderer
	group    singleflight.Group
}

func newCardService(logger *zap.Logger, repo *repository.Repository, fetcher DataFetcher, renderer *render.Renderer) Cards {
	return &cardService{
		logger:   logger,
		repo:     repo,
		fetcher:  fetcher,
		renderer: renderer,
	}
}

func cardKey(resource string, id string) string {
	return fmt.Sprintf("%s/%s.png", resource, id)
}

// check computes the freshness decision for a stored card against the
// subject's remote update time. needsUpdate stays true unless a stored copy
// exists and is strictly newer.
func (s *cardService) check(ctx context.Context, key string, updatedAt time.Time) (*model.CardCheck, error) {
	check := &model.CardCheck{
		FileURL:     s.repo.Objects.PublicURL(key),
		NeedsUpdate: true,
	}

	info, err := s.repo.Objects.Head(ctx, key)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check stored card(%s): %s", key, err.Error())
		return nil, ErrInternal
	}
	if info == nil {
		return check, nil
	}

	lastModified := info.LastModified
	check.HasFile = true
	check.LastModified = &lastModified
	if lastModified.After(updatedAt) {
		check.NeedsUpdate = false
	}

	return check, nil
}

func (s *cardService) CheckUser(ctx context.Context, username string) (*model.CardCheck, error) {
	user, err := s.fetcher.User(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.check(ctx, cardKey(USERS_RESOURCE, username), user.UpdatedAt)
}

func (s *cardService) CheckInsight(ctx context.Context, id int64) (*model.CardCheck, error) {
	insight, err := s.fetcher.Insight(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.check(ctx, cardKey(INSIGHTS_RESOURCE, strconv.FormatInt(id, 10)), insight.UpdatedAt)
}

func (s *cardService) CheckHighlight(ctx context.Context, id int64) (*model.CardCheck, error) {
	highlight, err := s.fetcher.Highlight(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.check(ctx, cardKey(HIGHLIGHTS_RESOURCE, strconv.FormatInt(id, 10)), highlight.UpdatedAt)
}

func (s *cardService) EnsureUser(ctx context.Context, username string) (string, error) {
	if err := s.checkRateLimit(ctx); err != nil {
		return "", err
	}

	key := cardKey(USERS_RESOURCE, username)
	return s.coalesce(ctx, key, USERS_RESOURCE, func(ctx context.Context) (*model.CardImage, error) {
		user, err := s.fetcher.User(ctx, username)
		if err != nil {
			return nil, err
		}

		card, err := s.GenerateUser(ctx, user)
		if err != nil {
			s.logger.Sugar().Errorf("failed to render user(%s) card: %s", username, err.Error())
			return nil, ErrCardNotFound
		}

		return card, nil
	})
}

func (s *cardService) EnsureInsight(ctx context.Context, id int64) (string, error) {
	if err := s.checkRateLimit(ctx); err != nil {
		return "", err
	}

	key := cardKey(INSIGHTS_RESOURCE, strconv.FormatInt(id, 10))
	return s.coalesce(ctx, key, INSIGHTS_RESOURCE, func(ctx context.Context) (*model.CardImage, error) {
		insight, err := s.fetcher.Insight(ctx, id)
		if err != nil {
			return nil, err
		}

		contributors, err := s.fetcher.InsightContributors(ctx, id)
		if err != nil {
			return nil, err
		}

		card, err := s.GenerateInsight(ctx, insight, contributors)
		if err != nil {
			s.logger.Sugar().Errorf("failed to render insight(%d) card: %s", id, err.Error())
			return nil, ErrCardNotFound
		}

		return card, nil
	})
}

func (s *cardService) EnsureHighlight(ctx context.Context, id int64) (string, error) {
	if err := s.checkRateLimit(ctx); err != nil {
		return "", err
	}

	key := cardKey(HIGHLIGHTS_RESOURCE, strconv.FormatInt(id, 10))
	return s.coalesce(ctx, key, HIGHLIGHTS_RESOURCE, func(ctx context.Context) (*model.CardImage, error) {
		highlight, err := s.fetcher.Highlight(ctx, id)
		if err != nil {
			return nil, err
		}

		repos, err := s.fetcher.HighlightRepos(ctx, id)
		if err != nil {
			return nil, err
		}

		card, err := s.GenerateHighlight(ctx, highlight, repos)
		if err != nil {
			s.logger.Sugar().Errorf("failed to render highlight(%d) card: %s", id, err.Error())
			return nil, ErrCardNotFound
		}

		return card, nil
	})
}

func (s *cardService) checkRateLimit(ctx context.Context) error {
	rateLimit, err := s.fetcher.RateLimit(ctx)
	if err != nil {
		return err
	}

	if rateLimit.Remaining < RATE_LIMIT_THRESHOLD {
		s.logger.Sugar().Warnf("remote rate limit budget low (%d remaining), refusing card generation", rateLimit.Remaining)
		return ErrRateLimitExceeded
	}

	return nil
}

// coalesce deduplicates concurrent regeneration of the same key in-process,
// then runs the fetch+render+upload sequence under the cross-instance lock.
func (s *cardService) coalesce(ctx context.Context, key string, resource string, fetchRender func(context.Context) (*model.CardImage, error)) (string, error) {
	url, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.regenerate(ctx, key, resource, fetchRender)
	})
	if err != nil {
		return "", err
	}

	return url.(string), nil
}

func (s *cardService) regenerate(ctx context.Context, key string, resource string, fetchRender func(context.Context) (*model.CardImage, error)) (string, error) {
	lockKey := redisrepo.CardLockKey(key)
	acquired, err := s.repo.Redis.Default.SetNX(ctx, lockKey, 1, CARD_LOCK_TTL)
	if err != nil {
		// redis being down must not take card generation with it
		s.logger.Sugar().Warnf("failed to acquire generation lock(%s): %s", lockKey, err.Error())
		return s.upload(ctx, key, resource, fetchRender)
	}

	if !acquired {
		if url, ok := s.waitForWriter(ctx, lockKey, key); ok {
			return url, nil
		}
		// the writer stalled or released without an artifact; fall back to
		// last-writer-wins
		return s.upload(ctx, key, resource, fetchRender)
	}

	defer func() {
		if err := s.repo.Redis.Default.Del(context.WithoutCancel(ctx), lockKey).Err(); err != nil {
			s.logger.Sugar().Warnf("failed to release generation lock(%s): %s", lockKey, err.Error())
		}
	}()

	return s.upload(ctx, key, resource, fetchRender)
}

func (s *cardService) upload(ctx context.Context, key string, resource string, fetchRender func(context.Context) (*model.CardImage, error)) (string, error) {
	card, err := fetchRender(ctx)
	if err != nil {
		return "", err
	}

	if err := s.repo.Objects.Upload(ctx, key, card.PNG, "image/png"); err != nil {
		s.logger.Sugar().Errorf("failed to upload card(%s): %s", key, err.Error())
		return "", ErrCardNotFound
	}

	if err := s.repo.Redis.Default.Incr(ctx, redisrepo.CardsGeneratedKey(resource)).Err(); err != nil {
		s.logger.Sugar().Warnf("failed to increment generated counter(%s): %s", resource, err.Error())
	}

	return s.repo.Objects.PublicURL(key), nil
}

// waitForWriter polls until the concurrent writer releases its lock, then
// returns the public URL it produced. The lock is released even when the
// writer failed, so the stored artifact is verified before trusting the URL.
func (s *cardService) waitForWriter(ctx context.Context, lockKey string, key string) (string, bool) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	deadline := time.After(CARD_LOCK_WAIT)
	for {
		select {
		case <-ctx.Done():
			return "", false
		case <-deadline:
			return "", false
		case <-ticker.C:
			if err := s.repo.Redis.Default.Get(ctx, lockKey).Err(); err == redis.Nil {
				info, err := s.repo.Objects.Head(ctx, key)
				if err != nil {
					s.logger.Sugar().Warnf("failed to verify card(%s) after writer released its lock: %s", key, err.Error())
					return "", false
				}
				if info == nil {
					return "", false
				}
				return s.repo.Objects.PublicURL(key), true
			}
		}
	}
}

// GeneratedTotals reports how many cards have been generated per resource.
// Counters are best-effort: a missing or unreadable key reads as zero.
func (s *cardService) GeneratedTotals(ctx context.Context) map[string]int64 {
	totals := make(map[string]int64, 3)
	for _, resource := range []string{USERS_RESOURCE, INSIGHTS_RESOURCE, HIGHLIGHTS_RESOURCE} {
		total, err := s.repo.Redis.Default.Get(ctx, redisrepo.CardsGeneratedKey(resource)).Int64()
		if err != nil && err != redis.Nil {
			s.logger.Sugar().Warnf("failed to read generated counter(%s): %s", resource, err.Error())
		}
		totals[resource] = total
	}

	return totals
}

func (s *cardService) GenerateUser(ctx context.Context, user *model.DbUser) (*model.CardImage, error) {
	view := render.UserCardView{
		Name:       utils.TruncateString(user.DisplayName(), NAME_CHAR_BUDGET),
		Login:      user.Login,
		Bio:        utils.TruncateString(user.Bio, BIO_CHAR_BUDGET),
		Followers:  user.FollowersCount,
		Highlights: user.HighlightsCount,
		Avatar:     s.fetchAvatar(ctx, user.Login),
	}

	svg, err := s.renderer.UserCard(view)
	if err != nil {
		return nil, err
	}

	return s.rasterize(svg)
}

func (s *cardService) GenerateInsight(ctx context.Context, insight *model.DbInsight, contributors []model.DbContributor) (*model.CardImage, error) {
	names := make([]string, 0, len(insight.Repos))
	for _, repo := range insight.Repos {
		names = append(names, repo.FullName)
	}
	shown, overflow := utils.ClampList(names, REPO_DISPLAY_LIMIT)

	view := render.InsightCardView{
		Name:         utils.TruncateString(insight.Name, NAME_CHAR_BUDGET),
		Repos:        shown,
		Overflow:     overflow,
		Contributors: len(contributors),
	}

	svg, err := s.renderer.InsightCard(view)
	if err != nil {
		return nil, err
	}

	return s.rasterize(svg)
}

func (s *cardService) GenerateHighlight(ctx context.Context, highlight *model.DbHighlight, repos []model.DbHighlightRepo) (*model.CardImage, error) {
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.FullName)
	}
	shown, overflow := utils.ClampList(names, REPO_DISPLAY_LIMIT)

	view := render.HighlightCardView{
		Title:    utils.TruncateString(highlight.Title, TITLE_CHAR_BUDGET),
		Body:     utils.TruncateString(highlight.Highlight, BIO_CHAR_BUDGET),
		Login:    highlight.Login,
		Avatar:   s.fetchAvatar(ctx, highlight.Login),
		Repos:    shown,
		Overflow: overflow,
	}

	svg, err := s.renderer.HighlightCard(view)
	if err != nil {
		return nil, err
	}

	return s.rasterize(svg)
}

func (s *cardService) rasterize(svg string) (*model.CardImage, error) {
	png, err := render.Rasterize(svg, render.CardWidth, render.CardHeight, render.CardBackground)
	if err != nil {
		return nil, err
	}

	return &model.CardImage{PNG: png, SVG: svg}, nil
}

// fetchAvatar inlines the subject's avatar as a data URI so the rendered SVG
// is self-contained. A missing avatar degrades the card, it does not fail it.
func (s *cardService) fetchAvatar(ctx context.Context, login string) template.URL {
	avatar, err := s.fetcher.FetchImage(ctx, model.AvatarURL(login, AVATAR_SIZE))
	if err != nil {
		s.logger.Sugar().Warnf("failed to fetch avatar for user(%s): %s", login, err.Error())
		return ""
	}

	return template.URL("data:" + http.DetectContentType(avatar) + ";base64," + base64.StdEncoding.EncodeToString(avatar))
}
