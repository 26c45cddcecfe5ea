package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultSendTimeout = 10 * time.Second

type telemetryPayload struct {
	DeviceID     string    `json:"device_id"`
	TemperatureC float64   `json:"temperature_c"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// HTTPSender posts readings as JSON to a collector endpoint.
type HTTPSender struct {
	url      string
	deviceID string
	client   *http.Client
	now      func() time.Time
}

// SenderOption configures the sender.
type SenderOption func(*HTTPSender)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) SenderOption {
	return func(s *HTTPSender) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the client timeout.
func WithTimeout(d time.Duration) SenderOption {
	return func(s *HTTPSender) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithNow overrides the timestamp source.
func WithNow(now func() time.Time) SenderOption {
	return func(s *HTTPSender) {
		if now != nil {
			s.now = now
		}
	}
}

// NewHTTPSender constructs a sender for url.
func NewHTTPSender(url, deviceID string, opts ...SenderOption) (*HTTPSender, error) {
	if url == "" {
		return nil, errors.New("telemetry sender: empty url")
	}
	s := &HTTPSender{
		url:      url,
		deviceID: deviceID,
		client:   &http.Client{Timeout: defaultSendTimeout},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send posts one reading. Any non-2xx status is an error.
func (s *HTTPSender) Send(ctx context.Context, value float64) error {
	body, err := json.Marshal(telemetryPayload{
		DeviceID:     s.deviceID,
		TemperatureC: value,
		RecordedAt:   s.now().UTC(),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry sender: non-2xx response %d", resp.StatusCode)
	}
	return nil
}

// DiscardSender accepts every reading; used when no collector is configured.
type DiscardSender struct{}

func (DiscardSender) Send(context.Context, float64) error { return nil }
