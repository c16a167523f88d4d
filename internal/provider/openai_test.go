package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIClient_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Expected test-key authorization")
		}

		var body OpenAIRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if body.Model != "gpt-4o" {
			t.Errorf("Expected gpt-4o, got %s", body.Model)
		}
		if body.MaxTokens != 2000 {
			t.Errorf("Expected default 2000 max tokens, got %d", body.MaxTokens)
		}
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" {
			t.Errorf("Expected system+user messages, got %+v", body.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"choices": [
				{
					"message": {"role": "assistant", "content": "COURT SESSION BEGINS..."},
					"finish_reason": "stop"
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key")
	client.baseURL = server.URL

	resp, err := client.Generate(context.Background(), Request{
		Prompt:       "Simulate the full proceeding",
		SystemPrompt: "You are an experienced judge.",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp != "COURT SESSION BEGINS..." {
		t.Errorf("Unexpected response: %q", resp)
	}
}

func TestOpenAIClient_Generate_NoAPIKey(t *testing.T) {
	client := NewOpenAIClient("")

	_, err := client.Generate(context.Background(), Request{Prompt: "hello"})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "API key not configured") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestOpenAIClient_Generate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key")
	client.baseURL = server.URL

	_, err := client.Generate(context.Background(), Request{Prompt: "hello"})
	if err == nil {
		t.Fatal("Expected error for empty choices")
	}
	if !strings.Contains(err.Error(), "no completion returned") {
		t.Errorf("Unexpected error: %v", err)
	}
}
