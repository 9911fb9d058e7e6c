package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// stubClient builds a Client whose callFn is replaced; the underlying genai
// client is never touched.
func stubClient(candidates []string, callFn func(ctx context.Context, model, prompt string) (string, error)) *Client {
	return &Client{
		candidates: candidates,
		callFn:     callFn,
	}
}

func TestGenerateUsesFirstLiveCandidate(t *testing.T) {
	var calls []string
	c := stubClient([]string{"model-a", "model-b"}, func(ctx context.Context, model, prompt string) (string, error) {
		calls = append(calls, model+"/"+prompt)
		if model == "model-a" {
			return "", errors.New("quota exceeded")
		}
		if prompt == livenessPrompt {
			return "ok", nil
		}
		return "real answer", nil
	})

	got, err := c.Generate(context.Background(), "the real prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "real answer" {
		t.Errorf("expected the real response, got %q", got)
	}

	want := []string{
		"model-a/" + livenessPrompt,
		"model-b/" + livenessPrompt,
		"model-b/the real prompt",
	}
	if fmt.Sprint(calls) != fmt.Sprint(want) {
		t.Errorf("unexpected call sequence:\n got %v\nwant %v", calls, want)
	}
}

func TestGenerateAllCandidatesDown(t *testing.T) {
	c := stubClient([]string{"model-a", "model-b"}, func(ctx context.Context, model, prompt string) (string, error) {
		return "", errors.New("unavailable")
	})

	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	c := stubClient(nil, func(ctx context.Context, model, prompt string) (string, error) {
		t.Fatal("callFn must not run without candidates")
		return "", nil
	})

	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestGenerateProbesOnEveryCall(t *testing.T) {
	probes := 0
	c := stubClient([]string{"model-a"}, func(ctx context.Context, model, prompt string) (string, error) {
		if prompt == livenessPrompt {
			probes++
		}
		return "ok", nil
	})

	for i := 0; i < 3; i++ {
		if _, err := c.Generate(context.Background(), "prompt"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if probes != 3 {
		t.Errorf("expected a probe per call (no cached health), got %d probes over 3 calls", probes)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), ""); err == nil {
		t.Fatal("expected an error for an empty API key")
	}
}
