package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nkarpov/gemini-chat/pkg/llm"
)

// Client is a minimal Gemini generateContent client.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	httpDo  *http.Client
}

func New(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		httpDo: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// apiError is Google's error envelope for non-2xx responses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate submits prompt as a single-turn completion request and returns the
// first candidate's text. Upstream failures come back as *llm.Error, tagged
// from the HTTP status code and error envelope.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", &llm.Error{Kind: llm.KindOther, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classifyHTTP(resp)
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &llm.Error{Kind: llm.KindOther, Message: fmt.Sprintf("decoding gemini response: %v", err)}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &llm.Error{Kind: llm.KindOther, Message: "no response from gemini"}
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// classifyHTTP turns a non-2xx response into a tagged error using the status
// code and the decoded error envelope. Auth is checked first so that messages
// mentioning both an invalid key and quota resolve to auth.
func classifyHTTP(resp *http.Response) *llm.Error {
	var envelope apiError
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	msg := envelope.Error.Message
	if msg == "" {
		msg = fmt.Sprintf("gemini http %d", resp.StatusCode)
	}

	status := strings.ToUpper(envelope.Error.Status)
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "api key not valid") || status == "UNAUTHENTICATED" ||
		resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &llm.Error{Kind: llm.KindAuth, Message: msg}
	case resp.StatusCode == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED":
		return &llm.Error{Kind: llm.KindQuota, Message: msg}
	case resp.StatusCode == http.StatusNotFound || strings.Contains(lower, "model not found") ||
		strings.Contains(lower, "is not found"):
		return &llm.Error{Kind: llm.KindModelNotFound, Message: msg}
	default:
		return &llm.Error{Kind: llm.KindOther, Message: msg}
	}
}
