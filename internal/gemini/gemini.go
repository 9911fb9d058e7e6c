package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrBackendUnavailable indicates that every candidate model failed its
// liveness probe. Callers recover from this by falling back to mock data;
// it is never a fatal error.
var ErrBackendUnavailable = errors.New("no working Gemini model found")

// CandidateModels is the ordered list of model endpoints to try. The first
// candidate whose liveness probe succeeds handles the real request.
var CandidateModels = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-001",
	"gemini-2.5-flash",
	"gemini-2.0-flash-lite",
	"gemini-pro-latest",
}

// livenessPrompt is the minimal generation used to probe a candidate.
const livenessPrompt = "Hello"

// requestTimeout bounds a full Generate invocation (probes plus the real
// call). The upstream client enforces no deadline of its own.
const requestTimeout = 2 * time.Minute

// Client wraps the Gemini client and implements model-candidate failover.
type Client struct {
	client     *genai.Client
	candidates []string

	// callFn issues one generation against one model. Overridable in tests.
	callFn func(ctx context.Context, model, prompt string) (string, error)
}

// NewClient creates a Gemini client with the given API credential. The
// credential comes from injected configuration; it must be non-empty.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:     client,
		candidates: CandidateModels,
	}
	c.callFn = c.callModel
	return c, nil
}

// Close closes the underlying Gemini client.
func (c *Client) Close() {
	c.client.Close()
}

// Generate sends the prompt to the first live candidate model and returns
// its raw text response. Candidates are probed in order on every call; no
// health state is kept between invocations. If no candidate answers the
// probe, Generate fails with ErrBackendUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	model, err := c.pickModel(ctx)
	if err != nil {
		return "", err
	}

	text, err := c.callFn(ctx, model, prompt)
	if err != nil {
		return "", fmt.Errorf("model %s failed to generate content: %w", model, err)
	}
	return text, nil
}

// pickModel probes each candidate with a trivial generation and returns
// the first one that responds.
func (c *Client) pickModel(ctx context.Context) (string, error) {
	var lastErr error
	for _, model := range c.candidates {
		log.Printf("INFO: Trying Gemini model: %s", model)
		if _, err := c.callFn(ctx, model, livenessPrompt); err != nil {
			log.Printf("WARN: Model %s failed liveness probe: %v", model, err)
			lastErr = err
			continue
		}
		log.Printf("INFO: Successfully connected to model: %s", model)
		return model, nil
	}
	if lastErr != nil {
		return "", fmt.Errorf("%w: last probe error: %v", ErrBackendUnavailable, lastErr)
	}
	return "", ErrBackendUnavailable
}

// callModel issues a single generation request and concatenates the text
// parts of the first candidate response.
func (c *Client) callModel(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model %s", model)
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("no text content in response from model %s", model)
	}
	return out, nil
}
