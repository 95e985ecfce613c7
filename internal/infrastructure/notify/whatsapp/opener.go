package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPOpener fires a GET at the deep link and discards the response. The
// server-side stand-in for opening the link in a new browsing context.
type HTTPOpener struct {
	client *http.Client
}

func NewHTTPOpener(timeout time.Duration) *HTTPOpener {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPOpener{client: &http.Client{Timeout: timeout}}
}

func (o *HTTPOpener) Open(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create deep link request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("open deep link: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("deep link status: %s", resp.Status)
	}
	return nil
}
