package jdoodle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codehive-ide/codehive-backend/internal/apperr"
	"github.com/codehive-ide/codehive-backend/internal/execution/domain"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client wraps the remote code-execution API. Transport-level failures
// and application-level failures are classified differently: only the
// former is retry-eligible.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type executeRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	Script       string `json:"script"`
	Language     string `json:"language"`
	Stdin        string `json:"stdin"`
	VersionIndex string `json:"versionIndex"`
}

type executeResponse struct {
	Output     string `json:"output"`
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
}

// Execute submits source text for remote execution and returns the
// captured stdout. An unreachable or failing transport yields an
// execution_transport_error; a delivered response whose payload reports a
// failed run (compile error, runtime crash) yields an
// execution_runtime_error carrying the diagnostic text, with any partial
// output preserved in the result.
func (c *Client) Execute(ctx context.Context, script, language, stdin string) (domain.Result, error) {
	payload := executeRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Script:       script,
		Language:     language,
		Stdin:        stdin,
		VersionIndex: "0",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Result{}, apperr.ExecTransport(err, "failed to encode execution request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return domain.Result{}, apperr.ExecTransport(err, "failed to build execution request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Result{}, apperr.ExecTransport(err, "execution service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Result{}, apperr.ExecTransport(
			fmt.Errorf("status %d", resp.StatusCode),
			fmt.Sprintf("execution service returned status %d", resp.StatusCode),
		)
	}

	var out executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Result{}, apperr.ExecTransport(err, "failed to decode execution response")
	}

	result := domain.Result{Output: out.Output, Language: language}
	if out.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = "failed to execute code"
		}
		// The program itself failed; its diagnostics travel with the
		// result rather than replacing it.
		return result, apperr.ExecRuntime(msg)
	}

	return result, nil
}
