package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lapor/internal/model"
)

const nominatimTimeout = 10 * time.Second

// Nominatim is a reverse geocoder backed by a Nominatim-compatible
// endpoint.
type Nominatim struct {
	baseURL string
	client  *http.Client
}

// NewNominatim creates a client for the given endpoint, e.g.
// "https://nominatim.openstreetmap.org".
func NewNominatim(baseURL string) *Nominatim {
	return &Nominatim{
		baseURL: baseURL,
		client:  &http.Client{Timeout: nominatimTimeout},
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode implements ReverseGeocoder.
func (n *Nominatim) ReverseGeocode(ctx context.Context, c model.Coordinates) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", c.Lat))
	q.Set("lon", fmt.Sprintf("%f", c.Lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := n.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &Error{Code: Timeout}
		}
		return "", &Error{Code: PositionUnavailable}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return "", &Error{Code: PermissionDenied}
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.DisplayName, nil
}
