package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
)

var (
	ErrNoResults = fmt.Errorf("no geocoding results")
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client reverse-geocodes coordinates into display addresses. It implements
// route.GeoCoder; callers are expected to fall back to raw coordinates when
// an error is returned.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		Types            []string `json:"types"`
	} `json:"results"`
}

// GetAddress returns the formatted address for a coordinate, preferring
// street-level results over broader ones. Empty result sets come back as
// ErrNoResults.
func (c *Client) GetAddress(ctx context.Context, latitude, longitude float64) (string, error) {
	const op = "geocode.Client.GetAddress"

	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", latitude, longitude))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return "", wrap.Error(ctx, fmt.Errorf("%s: geocoding request failed: %w", op, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return "", wrap.Error(ctx, fmt.Errorf("%s: unexpected response status %d", op, resp.StatusCode))
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		ctx = wrap.WithAction(ctx, "decode_geocode_payload")
		return "", wrap.Error(ctx, fmt.Errorf("%s: failed to decode geocoding response: %w", op, err))
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return "", wrap.Error(ctx, fmt.Errorf("%s: %w", op, ErrNoResults))
	}

	// Street-level entries describe the walk better than locality or
	// political areas, so take the first one when present.
	for _, r := range payload.Results {
		for _, t := range r.Types {
			if t == "street_address" || t == "route" {
				return r.FormattedAddress, nil
			}
		}
	}
	return payload.Results[0].FormattedAddress, nil
}
