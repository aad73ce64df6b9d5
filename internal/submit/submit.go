package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// Submitter delivers a composed order to the external persistence
// endpoint. A non-nil error means the caller should take the local
// fallback path; it never means the order is lost.
type Submitter interface {
	Submit(ctx context.Context, order domain.Order) error
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPSubmitter(cfg Config) *HTTPSubmitter {
	return &HTTPSubmitter{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, order domain.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach order endpoint: %w", err)
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("order endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
