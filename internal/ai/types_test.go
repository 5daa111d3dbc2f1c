package ai

import (
	"strings"
	"testing"
)

func TestForEngine(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_KEY", "")

	c, err := ForEngine("gemini")
	if err != nil {
		t.Fatalf("ForEngine(gemini): %v", err)
	}
	if c.Name() != "gemini" {
		t.Errorf("Name() = %q, want gemini", c.Name())
	}

	if _, err := ForEngine("openai"); err == nil {
		t.Error("expected error for openai without API key")
	} else if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should name the missing key: %v", err)
	}

	if _, err := ForEngine("mistral"); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{Provider: "gemini", StatusCode: 503}
	if err.Error() != "gemini status 503" {
		t.Errorf("Error() = %q", err.Error())
	}
}
