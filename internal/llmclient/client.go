// Package llmclient calls one of two OpenAI-compatible chat-completion
// providers, auto-selected by endpoint substring, and classifies failures
// into a typed error taxonomy. The client never retries; that is a policy
// decision left to the caller.
package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"tapdlens/internal/logging"
)

// Provider tags the detected chat-completion vendor.
type Provider string

const (
	ProviderSiliconFlow Provider = "provider-A"
	ProviderDeepSeek     Provider = "provider-B"
)

// Credentials holds both providers' defaults and keys; DetectProvider picks
// which one actually applies to a given endpoint.
type Credentials struct {
	SiliconFlowKey      string
	SiliconFlowEndpoint string
	SiliconFlowModel    string

	DeepSeekKey      string
	DeepSeekEndpoint string
	DeepSeekModel    string
}

// Client is a single-call, single-provider HTTP chat-completion client.
type Client struct {
	http *http.Client
}

// New builds a Client with the given default per-call wall-clock budget.
func New(requestTimeout time.Duration) *Client {
	if requestTimeout <= 0 {
		requestTimeout = 300 * time.Second
	}
	return &Client{http: &http.Client{Timeout: requestTimeout}}
}

// DetectProvider classifies endpoint by substring, per §4.5's table.
func DetectProvider(endpoint string) Provider {
	if strings.Contains(endpoint, "siliconflow") {
		return ProviderSiliconFlow
	}
	return ProviderDeepSeek
}

// resolvedCall carries the per-provider defaults and extra payload fields
// already applied, ready to send.
type resolvedCall struct {
	provider Provider
	endpoint string
	model    string
	apiKey   string
	extra    map[string]any
}

// resolve applies provider defaults/overrides and validates the credential
// the detected provider actually needs is present.
func (c *Client) resolve(creds Credentials, endpoint, model string) (*resolvedCall, error) {
	provider := DetectProvider(endpoint)

	rc := &resolvedCall{provider: provider, endpoint: endpoint, model: model}

	switch provider {
	case ProviderSiliconFlow:
		if rc.endpoint == "" {
			rc.endpoint = creds.SiliconFlowEndpoint
		}
		if rc.model == "" {
			rc.model = creds.SiliconFlowModel
		}
		if creds.SiliconFlowKey == "" {
			return nil, &CallError{Kind: KindConfig, Provider: provider,
				Message: "missing SiliconFlow API key", Hint: "set SF_KEY"}
		}
		rc.apiKey = creds.SiliconFlowKey
		rc.extra = map[string]any{"temperature": 0.2, "top_p": 0.7}
	default:
		if rc.endpoint == "" {
			rc.endpoint = creds.DeepSeekEndpoint
		}
		if rc.model == "" {
			rc.model = creds.DeepSeekModel
		}
		if creds.DeepSeekKey == "" {
			return nil, &CallError{Kind: KindConfig, Provider: provider,
				Message: "missing DeepSeek API key", Hint: "set DS_KEY"}
		}
		rc.apiKey = creds.DeepSeekKey
	}

	return rc, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Stream    bool          `json:"stream"`
}

type chatChoice struct {
	Message struct {
		Content          string `json:"content"`
		ReasoningContent string `json:"reasoning_content"`
	} `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Call sends one chat-completion request and returns the model's reply
// text. endpoint/model may be left empty to use the detected provider's
// defaults from creds.
func (c *Client) Call(ctx context.Context, creds Credentials, prompt, model, endpoint string, maxTokens int) (string, error) {
	rc, err := c.resolve(creds, endpoint, model)
	if err != nil {
		return "", err
	}

	log := logging.L()
	log.Debug("calling chat-completion endpoint",
		zap.String("provider", string(rc.provider)), zap.String("model", rc.model))

	body := map[string]any{
		"model":    rc.model,
		"messages": []chatMessage{{Role: "user", Content: prompt}},
		"stream":   false,
	}
	if maxTokens > 0 {
		body["max_tokens"] = maxTokens
	}
	for k, v := range rc.extra {
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &CallError{Kind: KindTransport, Provider: rc.provider, Message: "encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.endpoint+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &CallError{Kind: KindTransport, Provider: rc.provider, Message: "build request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+rc.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &CallError{Kind: KindTimeout, Provider: rc.provider, Message: "no response within budget", Cause: err}
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", &CallError{Kind: KindTransport, Provider: rc.provider, Message: "cancelled", Cause: err}
		}
		return "", &CallError{Kind: KindTransport, Provider: rc.provider, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CallError{Kind: KindTransport, Provider: rc.provider, Message: "read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.classifyError(rc.provider, resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &CallError{Kind: KindTransport, Provider: rc.provider, Message: "decode response", Cause: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &CallError{Kind: KindTransport, Provider: rc.provider, Message: "empty choices in response"}
	}

	msg := parsed.Choices[0].Message
	content := msg.Content
	if strings.TrimSpace(content) == "" {
		content = msg.ReasoningContent
	}
	return content, nil
}

func (c *Client) classifyError(provider Provider, status int, raw []byte) error {
	var body struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)

	msg := string(raw)
	if body.Error != nil && body.Error.Message != "" {
		msg = body.Error.Message
	} else if body.Message != "" {
		msg = body.Message
	}

	kind, known := classifyStatus(status)
	if !known {
		return &CallError{Kind: KindTransport, Provider: provider,
			Message: fmt.Sprintf("unexpected status %d: %s", status, msg)}
	}

	ce := &CallError{Kind: kind, Provider: provider, Message: msg}
	switch kind {
	case KindAuth:
		if provider == ProviderSiliconFlow {
			ce.Hint = "set SF_KEY"
		} else {
			ce.Hint = "set DS_KEY"
		}
	case KindRateLimit:
		ce.Hint = "back off and retry later"
	case KindOverload, KindServer:
		ce.Hint = "transient; caller may retry"
	}
	return ce
}
