package walkapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

/*
Client is the device-side HTTP client for the walk service. It implements
tracking.LocationSink, route.RouteSource, chat.ChatAPI and chat.WalkGetter,
so the on-device services run against the same contracts the server
implements directly.
*/
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, accessToken string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   accessToken,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Get fetches the walk read model, status included.
func (c *Client) Get(ctx context.Context, walkID uuid.UUID) (*models.Walk, error) {
	const op = "walkapi.Client.Get"

	var payload struct {
		Walk models.Walk `json:"walk"`
	}
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/walks/%s", walkID), nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &payload.Walk, nil
}

// SaveLocation persists one sample and returns the refreshed route.
func (c *Client) SaveLocation(ctx context.Context, sample models.LocationSample) (models.SaveLocationResult, error) {
	const op = "walkapi.Client.SaveLocation"

	var result models.SaveLocationResult
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/walks/%s/locations", sample.WalkID), sample, &result)
	if err != nil {
		return models.SaveLocationResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetWalkRoute fetches every recorded point for a walk.
func (c *Client) GetWalkRoute(ctx context.Context, walkID uuid.UUID) (models.WalkRoute, error) {
	const op = "walkapi.Client.GetWalkRoute"

	var route models.WalkRoute
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/walks/%s/route", walkID), nil, &route)
	if err != nil {
		return models.WalkRoute{}, fmt.Errorf("%s: %w", op, err)
	}
	return route, nil
}

// GetMessages fetches the full transcript, oldest first.
func (c *Client) GetMessages(ctx context.Context, walkID uuid.UUID) ([]models.ChatMessage, error) {
	const op = "walkapi.Client.GetMessages"

	var payload struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/walks/%s/messages", walkID), nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Messages, nil
}

// SendMessage appends one message and returns the stored row.
func (c *Client) SendMessage(ctx context.Context, msg models.NewOutgoingMessage) (models.ChatMessage, error) {
	const op = "walkapi.Client.SendMessage"

	var payload struct {
		Message models.ChatMessage `json:"message"`
	}
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/walks/%s/messages", msg.WalkID), msg, &payload)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Message, nil
}

// MarkMessagesRead marks the counterpart's messages as read. The endpoint
// takes no body: the server resolves the reader from the bearer token, which
// names the same user this client was built for.
func (c *Client) MarkMessagesRead(ctx context.Context, walkID, _ uuid.UUID) error {
	const op = "walkapi.Client.MarkMessagesRead"

	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/walks/%s/messages/read", walkID), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrap.Error(wrap.WithAction(ctx, types.ActionExternalServiceFailed), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError maps API error responses onto the domain sentinels the
// services gate on, so same-process and over-the-wire callers see the
// same errors.
func (c *Client) decodeError(resp *http.Response) error {
	var payload apiError
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		return fmt.Errorf("unexpected response status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", payload.Error, types.ErrWalkNotFound)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", payload.Error, types.ErrChatUnavailable)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, payload.Error)
}
