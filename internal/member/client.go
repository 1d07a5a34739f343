package member

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const activeMembersKey = "active_members"

// Client fetches active members from the directory service over HTTP.
// Results are cached briefly; bulk fee generation may hit this several times
// in quick succession from retried admin actions.
type Client struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

func NewClient(baseURL string, ttl time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache.New(ttl, 2*ttl),
	}
}

func (c *Client) ActiveMemberIDs(ctx context.Context) ([]uuid.UUID, error) {
	if cached, found := c.cache.Get(activeMembersKey); found {
		return cached.([]uuid.UUID), nil
	}

	url := c.baseURL + "/api/v1/members?status=active"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching active members: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("member directory returned status %d", resp.StatusCode)
	}

	var members []struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&members); err != nil {
		return nil, fmt.Errorf("decoding members: %w", err)
	}

	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	c.cache.Set(activeMembersKey, ids, cache.DefaultExpiration)

	return ids, nil
}
