package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Eigen-OS/eigen-os/internal/validation"
)

// apiClient is a minimal Eigen-OS System API client.
type apiClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func newAPIClient() *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(viper.GetString("addr"), "/"),
		apiKey:  viper.GetString("api-key"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError wraps non-2xx responses, carrying the decoded error envelope.
type apiError struct {
	StatusCode int
	Code       string
	Message    string
	Violations []validation.FieldViolation
}

func (e *apiError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error: status=%d %s", e.StatusCode, e.Message)
}

// do performs a JSON-over-HTTP call. All RPC endpoints are POST.
func (c *apiClient) do(ctx context.Context, endpoint string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// get performs a plain GET against an operational endpoint.
func (c *apiClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// stream opens the SSE job-update stream. The caller owns the response
// body. No client timeout: the stream stays open until the server closes
// it or ctx is cancelled.
func (c *apiClient) stream(ctx context.Context, jobID string, lastEventSeq int64) (*http.Response, error) {
	q := url.Values{}
	q.Set("job_id", jobID)
	if lastEventSeq != 0 {
		q.Set("last_event_seq", strconv.FormatInt(lastEventSeq, 10))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/stream?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &apiError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var envelope struct {
		Error struct {
			Code       string                      `json:"code"`
			Message    string                      `json:"message"`
			Violations []validation.FieldViolation `json:"violations"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Violations = envelope.Error.Violations
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
