package tessd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/arjunkps/docudesk/internal/infrastructure/resilience"
)

// Client talks to a tesseract-server sidecar over HTTP. Recognition quality
// is the sidecar's problem; this adapter only moves bytes.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Option func(*Client)

func WithResilience(executor *resilience.Executor) Option {
	return func(c *Client) {
		c.executor = executor
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func New(baseURL, language string, opts ...Option) *Client {
	if language == "" {
		language = "eng"
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Recognize(ctx context.Context, image []byte) (string, error) {
	var text string
	call := func(ctx context.Context) error {
		out, err := c.recognizeOnce(ctx, image)
		if err != nil {
			return err
		}
		text = out
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "ocr.recognize", call, classifyOCRError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *Client) recognizeOnce(ctx context.Context, image []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "upload")
	if err != nil {
		return "", fmt.Errorf("build ocr form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("write ocr form: %w", err)
	}
	options := fmt.Sprintf(`{"languages":[%q]}`, c.language)
	if err := writer.WriteField("options", options); err != nil {
		return "", fmt.Errorf("write ocr options: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close ocr form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tesseract", &body)
	if err != nil {
		return "", fmt.Errorf("create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &HTTPStatusError{
			Operation:  "recognize",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}

	var response struct {
		Data struct {
			Stdout string `json:"stdout"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	return response.Data.Stdout, nil
}

// Noop is the engine used when no OCR endpoint is configured. Images then
// degrade to empty extracted text.
type Noop struct{}

func (Noop) Recognize(context.Context, []byte) (string, error) {
	return "", nil
}
