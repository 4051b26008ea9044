package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/haven/internal/domain"
)

// Chat sends a message as the signed-in user.
func (c *Client) Chat(ctx context.Context, text string) (*domain.ChatReply, error) {
	return c.chat(ctx, "/chat", text)
}

// ChatPublic sends a message without an account.
func (c *Client) ChatPublic(ctx context.Context, text string) (*domain.ChatReply, error) {
	return c.chat(ctx, "/chat/public", text)
}

func (c *Client) chat(ctx context.Context, path, text string) (*domain.ChatReply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationError("Message cannot be empty.")
	}
	var reply domain.ChatReply
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		body:   map[string]string{"text": text},
	}, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// LogMood records a mood entry and returns the server acknowledgement.
func (c *Client) LogMood(ctx context.Context, mood, note string, at time.Time) (json.RawMessage, error) {
	if strings.TrimSpace(mood) == "" {
		return nil, validationError("Pick a mood to log.")
	}
	body := struct {
		Mood      string `json:"mood"`
		Note      string `json:"note"`
		Timestamp string `json:"timestamp"`
	}{mood, note, at.UTC().Format(time.RFC3339)}

	var ack json.RawMessage
	if err := c.do(ctx, request{method: http.MethodPost, path: "/mood", body: body}, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// MoodHistory lists logged moods.
func (c *Client) MoodHistory(ctx context.Context) ([]domain.MoodEntry, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/mood/history"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.MoodEntry](raw, "entries", "history", "data")
}

// MoodInsights fetches aggregate mood statistics.
func (c *Client) MoodInsights(ctx context.Context) (*domain.MoodInsights, error) {
	var insights domain.MoodInsights
	if err := c.do(ctx, request{method: http.MethodGet, path: "/mood/insights"}, &insights); err != nil {
		return nil, err
	}
	return &insights, nil
}

// SubmitProgress posts one progress record. It makes exactly one logical
// request; only the auth refresh-and-replay can add a second round trip.
func (c *Client) SubmitProgress(ctx context.Context, rec domain.ProgressRecord) (json.RawMessage, error) {
	body := struct {
		Type      string          `json:"type"`
		Category  domain.Category `json:"category"`
		Duration  int             `json:"duration"`
		Timestamp string          `json:"timestamp"`
		UserID    string          `json:"user_id"`
	}{rec.Type, rec.Category, rec.DurationMinutes, rec.Timestamp.UTC().Format(time.RFC3339), rec.UserID}

	var ack json.RawMessage
	if err := c.do(ctx, request{method: http.MethodPost, path: "/progress", body: body}, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// ListProgress lists progress entries, optionally for one category.
func (c *Client) ListProgress(ctx context.Context, category domain.Category) ([]domain.ProgressEntry, error) {
	req := request{method: http.MethodGet, path: "/progress"}
	if category != "" {
		req.query = url.Values{"category": {string(category)}}
	}
	var raw json.RawMessage
	if err := c.do(ctx, req, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.ProgressEntry](raw, "progress", "entries", "data")
}

// CategoryStats fetches aggregate progress for one category.
func (c *Client) CategoryStats(ctx context.Context, category domain.Category) (*domain.CategoryStats, error) {
	if category == "" {
		return nil, validationError("A category is required.")
	}
	var stats domain.CategoryStats
	path := "/progress/category/" + url.PathEscape(string(category))
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &stats); err != nil {
		return nil, err
	}
	if stats.Category == "" {
		stats.Category = category
	}
	return &stats, nil
}

// Recommendations lists personalized suggestions.
func (c *Client) Recommendations(ctx context.Context) ([]domain.Recommendation, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/recommendations"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.Recommendation](raw, "recommendations", "data")
}

// Resource fetches a single resource by id.
func (c *Client) Resource(ctx context.Context, id string) (*domain.Resource, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationError("A resource id is required.")
	}
	var res domain.Resource
	if err := c.do(ctx, request{method: http.MethodGet, path: "/resources/" + url.PathEscape(id)}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
