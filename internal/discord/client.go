package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// APIClient handles communication with the Hourglass Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// parseUserID converts a Discord snowflake into the numeric id the API uses.
func parseUserID(discordID string) (int64, error) {
	id, err := strconv.ParseInt(discordID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid discord user id %q: %w", discordID, err)
	}
	return id, nil
}

// doRequest performs an HTTP request with retry logic. Server errors retry
// with exponential backoff; client errors return immediately.
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeAPIError drains an error response, preferring the structured error
// message (or validation field map) over the bare status code.
func decodeAPIError(resp *http.Response) error {
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if msg, ok := payload["error"]; ok && msg != "" {
			return fmt.Errorf("API error: %s", msg)
		}
		// Validation errors come back as a field map.
		for field, msg := range payload {
			return fmt.Errorf("API error: %s: %s", field, msg)
		}
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

// postMessage performs a POST and returns the success message from the
// standard {message} envelope.
func (c *APIClient) postMessage(path string, body interface{}) (string, error) {
	resp, err := c.doRequest(http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	var msgResp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return msgResp.Message, nil
}

// getJSON performs a GET and decodes the body into out.
func (c *APIClient) getJSON(path string, out interface{}) error {
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// AddGame records a game on the user's list
func (c *APIClient) AddGame(discordID, game string) (string, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return "", err
	}
	return c.postMessage("/api/v1/games", map[string]interface{}{
		"user_id": id,
		"name":    game,
	})
}

// RemoveGame removes a game from the user's list
func (c *APIClient) RemoveGame(discordID, game string) (string, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return "", err
	}
	return c.postMessage("/api/v1/games/remove", map[string]interface{}{
		"user_id": id,
		"name":    game,
	})
}

// ListGames returns the user's games in insertion order
func (c *APIClient) ListGames(discordID string) ([]domain.Game, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return nil, err
	}

	var out struct {
		Games []domain.Game `json:"games"`
	}
	if err := c.getJSON("/api/v1/games?user_id="+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return out.Games, nil
}

// CommonGames returns the games two users share, spelled per the first user
func (c *APIClient) CommonGames(discordID, otherID string) ([]domain.Game, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return nil, err
	}
	other, err := parseUserID(otherID)
	if err != nil {
		return nil, err
	}

	var out struct {
		Games []domain.Game `json:"games"`
	}
	path := fmt.Sprintf("/api/v1/games/common?user_id=%d&other_id=%d", id, other)
	if err := c.getJSON(path, &out); err != nil {
		return nil, err
	}
	return out.Games, nil
}

// WhoPlays returns the ids of everyone who plays the named game
func (c *APIClient) WhoPlays(game string) ([]int64, error) {
	var out struct {
		UserIDs []int64 `json:"user_ids"`
	}
	if err := c.getJSON("/api/v1/games/players?game="+url.QueryEscape(game), &out); err != nil {
		return nil, err
	}
	return out.UserIDs, nil
}

// AllGameNames returns one spelling per distinct game, sorted
func (c *APIClient) AllGameNames() ([]string, error) {
	var out struct {
		Names []string `json:"names"`
	}
	if err := c.getJSON("/api/v1/games/names", &out); err != nil {
		return nil, err
	}
	return out.Names, nil
}

// SetTimezone stores the user's IANA timezone
func (c *APIClient) SetTimezone(discordID, timezone string) (string, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return "", err
	}
	return c.postMessage("/api/v1/timezone", map[string]interface{}{
		"user_id":  id,
		"timezone": timezone,
	})
}

// GetTimezone returns the stored timezone, nil when unset
func (c *APIClient) GetTimezone(discordID string) (*string, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return nil, err
	}

	var out struct {
		Timezone *string `json:"timezone"`
	}
	if err := c.getJSON("/api/v1/timezone?user_id="+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return out.Timezone, nil
}

// Snooze hides the user from matchmaking for the given number of minutes
func (c *APIClient) Snooze(discordID string, minutes int) (time.Time, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return time.Time{}, err
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/snooze", map[string]interface{}{
		"user_id": id,
		"minutes": minutes,
	})
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, decodeAPIError(resp)
	}

	var out struct {
		Until time.Time `json:"until"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Until, nil
}

// Unsnooze clears the user's snooze
func (c *APIClient) Unsnooze(discordID string) (string, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return "", err
	}
	return c.postMessage("/api/v1/snooze/clear", map[string]interface{}{
		"user_id": id,
	})
}

// AddAvailability records an availability window on a weekday
func (c *APIClient) AddAvailability(discordID, day, start, end string) (string, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return "", err
	}
	return c.postMessage("/api/v1/availability", map[string]interface{}{
		"user_id": id,
		"day":     day,
		"start":   start,
		"end":     end,
	})
}

// ClearAvailability removes every interval on the weekday
func (c *APIClient) ClearAvailability(discordID, day string) (string, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return "", err
	}
	return c.postMessage("/api/v1/availability/clear", map[string]interface{}{
		"user_id": id,
		"day":     day,
	})
}

// WeeklySummary returns the rendered weekly availability block
func (c *APIClient) WeeklySummary(discordID string) (string, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return "", err
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.getJSON("/api/v1/availability/summary?user_id="+strconv.FormatInt(id, 10), &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// FindReadyPlayers returns the users free right now who share a game with
// the invoker; game narrows the match to one title when non-empty.
func (c *APIClient) FindReadyPlayers(discordID, game string) ([]domain.ReadyPlayer, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(id, 10))
	if game != "" {
		params.Set("game", game)
	}

	var out struct {
		Players []domain.ReadyPlayer `json:"players"`
	}
	if err := c.getJSON("/api/v1/matchmaking/ready?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Players, nil
}

// NextAvailable returns the target user's next availability window, nil when
// the user has no schedule.
func (c *APIClient) NextAvailable(discordID string) (*domain.NextSlot, error) {
	id, err := parseUserID(discordID)
	if err != nil {
		return nil, err
	}

	var out struct {
		Next *domain.NextSlot `json:"next"`
	}
	if err := c.getJSON("/api/v1/matchmaking/next?user_id="+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return out.Next, nil
}

// Stats returns service-level counts
func (c *APIClient) Stats() (users, games int, err error) {
	var out struct {
		Users int `json:"users"`
		Games int `json:"games"`
	}
	if err := c.getJSON("/api/v1/stats", &out); err != nil {
		return 0, 0, err
	}
	return out.Users, out.Games, nil
}
