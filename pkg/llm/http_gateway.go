package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"
)

// HTTPGateway calls an OpenAI-compatible JSON-mode chat completion
// endpoint. Per spec §1 the model provider client is an explicitly
// out-of-scope external collaborator — only its Gateway contract matters
// — so this implementation is deliberately thin: a single request/response
// round trip with no retries, no provider-specific SDK, and no streaming.
// See DESIGN.md for why no third-party HTTP/LLM client from the example
// corpus was a better fit than net/http here.
type HTTPGateway struct {
	BaseURL string // e.g. "https://api.openai.com/v1"
	APIKey  string
	Model   string
	Client  *http.Client
}

// NewHTTPGateway constructs a gateway. An empty apiKey is valid input —
// callers never fail to construct a Gateway; every call against an
// unconfigured gateway instead fails with KindTransport, matching spec §6
// ("if absent, every LLM stage records LLM_TRANSPORT").
func NewHTTPGateway(baseURL, apiKey, model string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &HTTPGateway{BaseURL: baseURL, APIKey: apiKey, Model: model, Client: client}
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// CallJSON implements Gateway. It posts a single JSON-mode chat
// completion request and unmarshals the first choice's message content
// into target. Any failure is classified into exactly one Kind; target is
// only ever written to on full success (spec §4.1's "never partially
// valid" contract).
func (g *HTTPGateway) CallJSON(ctx context.Context, prompt string, target any, timeout time.Duration) error {
	if g.APIKey == "" {
		return transportErr("no API key configured", nil)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqBody := chatCompletionRequest{
		Model: g.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return parseErr("failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost,
		strings.TrimRight(g.BaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return transportErr("failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		if callCtx.Err() != nil {
			return transportErr("request timed out or cancelled", err)
		}
		return transportErr("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErr("failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return transportErr(fmt.Sprintf("unexpected status %d", resp.StatusCode), fmt.Errorf("%s", string(body)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return parseErr("response was not valid chat completion JSON", err)
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return refusedErr("model returned an empty response")
	}

	content := completion.Choices[0].Message.Content
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return parseErr("target must be a non-nil pointer", nil)
	}
	// Decode into a fresh value so a half-matching payload never reaches target.
	decoded := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal([]byte(content), decoded.Interface()); err != nil {
		return parseErr("model content did not match the expected schema", err)
	}
	rv.Elem().Set(decoded.Elem())

	return nil
}
