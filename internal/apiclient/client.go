package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/devstats/social-card-service/internal/model"
	"go.uber.org/zap"
)

// Client is a thin JSON client for the remote data API. Every call re-fetches;
// nothing is cached at this layer.
type Client struct {
	logger     *zap.Logger
	httpClient *http.Client
	baseURL    string
}

func New(logger *zap.Logger, baseURL string) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(body, &bodyJSON); err == nil {
			c.logger.Sugar().Errorf("ERROR from data API endpoint(%s), code(%d), details: %v", endpoint, resp.StatusCode, bodyJSON["message"])
		}
		return fmt.Errorf("data API returned status %d for endpoint(%s)", resp.StatusCode, endpoint)
	}

	return json.Unmarshal(body, out)
}

func (c *Client) User(ctx context.Context, username string) (*model.DbUser, error) {
	var user model.DbUser
	if err := c.get(ctx, fmt.Sprintf("/v1/users/%s", username), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) Insight(ctx context.Context, id int64) (*model.DbInsight, error) {
	var insight model.DbInsight
	if err := c.get(ctx, fmt.Sprintf("/v1/insights/%d", id), &insight); err != nil {
		return nil, err
	}

	return &insight, nil
}

func (c *Client) InsightContributors(ctx context.Context, id int64) ([]model.DbContributor, error) {
	var page struct {
		Data []model.DbContributor `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/v1/insights/%d/contributors", id), &page); err != nil {
		return nil, err
	}

	return page.Data, nil
}

func (c *Client) Highlight(ctx context.Context, id int64) (*model.DbHighlight, error) {
	var highlight model.DbHighlight
	if err := c.get(ctx, fmt.Sprintf("/v1/user/highlights/%d", id), &highlight); err != nil {
		return nil, err
	}

	return &highlight, nil
}

func (c *Client) HighlightRepos(ctx context.Context, id int64) ([]model.DbHighlightRepo, error) {
	var page struct {
		Data []model.DbHighlightRepo `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/v1/user/highlights/%d/tagged-repos", id), &page); err != nil {
		return nil, err
	}

	return page.Data, nil
}

func (c *Client) RateLimit(ctx context.Context) (*model.RateLimit, error) {
	var rateLimit model.RateLimit
	if err := c.get(ctx, "/v1/rate-limit", &rateLimit); err != nil {
		return nil, err
	}

	return &rateLimit, nil
}

// FetchImage downloads an avatar or similar asset as raw bytes so the renderer
// can inline it into the card.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
