package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	apierrors "github.com/ragu/kaiwa/internal/errors"
	"github.com/ragu/kaiwa/internal/models"
)

func TestBuildGenerateRequest(t *testing.T) {
	tests := []struct {
		name        string
		prompt      string
		instruction string
	}{
		{
			name:        "simple prompt",
			prompt:      "How do I say good morning?",
			instruction: models.SystemInstruction("Japanese"),
		},
		{
			name:        "prompt with newlines and quotes",
			prompt:      "Line one\nLine \"two\"",
			instruction: models.SystemInstruction("Japanese"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildGenerateRequest(tt.prompt, tt.instruction)
			if err != nil {
				t.Fatalf("buildGenerateRequest() unexpected error: %v", err)
			}
			if !gjson.ValidBytes(got) {
				t.Fatalf("buildGenerateRequest() returned invalid JSON")
			}

			parsed := gjson.ParseBytes(got)

			if text := parsed.Get("contents.0.parts.0.text").String(); text != tt.prompt {
				t.Errorf("contents text = %q, want %q", text, tt.prompt)
			}
			if sys := parsed.Get("systemInstruction.parts.0.text").String(); sys != tt.instruction {
				t.Errorf("systemInstruction = %q, want %q", sys, tt.instruction)
			}
			if n := len(parsed.Get("contents").Array()); n != 1 {
				t.Errorf("contents has %d entries, want 1", n)
			}
		})
	}
}

func TestBuildGenerateRequest_GenerationConfig(t *testing.T) {
	got, err := buildGenerateRequest("hi", models.SystemInstruction(""))
	if err != nil {
		t.Fatalf("buildGenerateRequest() unexpected error: %v", err)
	}

	cfg := gjson.GetBytes(got, "generationConfig")
	if cfg.Get("temperature").Float() != 0.7 {
		t.Errorf("temperature = %v, want 0.7", cfg.Get("temperature").Float())
	}
	if cfg.Get("topK").Int() != 40 {
		t.Errorf("topK = %v, want 40", cfg.Get("topK").Int())
	}
	if cfg.Get("topP").Float() != 0.95 {
		t.Errorf("topP = %v, want 0.95", cfg.Get("topP").Float())
	}
	if cfg.Get("maxOutputTokens").Int() != 1024 {
		t.Errorf("maxOutputTokens = %v, want 1024", cfg.Get("maxOutputTokens").Int())
	}
}

func TestParseResponse(t *testing.T) {
	const endpoint = "/v1beta/models/gemini-2.5-flash:generateContent"

	tests := []struct {
		name       string
		body       string
		statusCode int
		wantReply  string
		wantErr    bool
		check      func(*testing.T, error)
	}{
		{
			name:       "valid candidate",
			body:       `{"candidates":[{"content":{"parts":[{"text":"Hello"}]}}]}`,
			statusCode: 200,
			wantReply:  "Hello",
		},
		{
			name:       "multiline reply",
			body:       `{"candidates":[{"content":{"parts":[{"text":"line one\nline two"}]}}]}`,
			statusCode: 200,
			wantReply:  "line one\nline two",
		},
		{
			name:       "error descriptor in 200 body",
			body:       `{"error":{"message":"quota exceeded"}}`,
			statusCode: 200,
			wantErr:    true,
			check: func(t *testing.T, err error) {
				if !apierrors.IsAPIError(err) {
					t.Errorf("want APIError, got %T", err)
				}
				if !strings.Contains(err.Error(), "quota exceeded") {
					t.Errorf("error %q should carry the descriptor message", err)
				}
			},
		},
		{
			name:       "error descriptor with status",
			body:       `{"error":{"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
			statusCode: 400,
			wantErr:    true,
			check: func(t *testing.T, err error) {
				if apierrors.GetHTTPStatus(err) != 400 {
					t.Errorf("GetHTTPStatus() = %d, want 400", apierrors.GetHTTPStatus(err))
				}
			},
		},
		{
			name:       "non-2xx without descriptor",
			body:       `upstream unavailable`,
			statusCode: 502,
			wantErr:    true,
			check: func(t *testing.T, err error) {
				if apierrors.GetHTTPStatus(err) != 502 {
					t.Errorf("GetHTTPStatus() = %d, want 502", apierrors.GetHTTPStatus(err))
				}
			},
		},
		{
			name:       "missing candidates",
			body:       `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			statusCode: 200,
			wantErr:    true,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, apierrors.ErrInvalidResponse) {
					t.Errorf("want ErrInvalidResponse, got %v", err)
				}
			},
		},
		{
			name:       "empty candidates array",
			body:       `{"candidates":[]}`,
			statusCode: 200,
			wantErr:    true,
			check: func(t *testing.T, err error) {
				// Same mapping as a missing array.
				if !errors.Is(err, apierrors.ErrInvalidResponse) {
					t.Errorf("want ErrInvalidResponse, got %v", err)
				}
			},
		},
		{
			name:       "candidate without parts",
			body:       `{"candidates":[{"content":{}}]}`,
			statusCode: 200,
			wantErr:    true,
			check: func(t *testing.T, err error) {
				if !apierrors.IsParseError(err) {
					t.Errorf("want ParseError, got %T", err)
				}
				if err.Error() != "invalid response from the model" {
					t.Errorf("error = %q, want the fixed invalid-response message", err)
				}
			},
		},
		{
			name:       "not JSON at all",
			body:       `<html>gateway error</html>`,
			statusCode: 200,
			wantErr:    true,
			check: func(t *testing.T, err error) {
				if !apierrors.IsParseError(err) {
					t.Errorf("want ParseError, got %T", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := parseResponse([]byte(tt.body), tt.statusCode, endpoint)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseResponse() expected error, got reply %q", reply)
				}
				if tt.check != nil {
					tt.check(t, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("parseResponse() unexpected error: %v", err)
			}
			if reply != tt.wantReply {
				t.Errorf("reply = %q, want %q", reply, tt.wantReply)
			}
		})
	}
}

func TestGenerateContent_EmptyPrompt(t *testing.T) {
	client := &Client{apiKey: "test-key", baseURL: models.DefaultBaseURL, model: models.DefaultModel}

	for _, prompt := range []string{"", "   ", "\n\t"} {
		if _, err := client.GenerateContent(prompt); err == nil {
			t.Errorf("GenerateContent(%q) expected error for blank prompt", prompt)
		}
	}
}

func TestNewClient(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		if _, err := NewClient(""); err == nil {
			t.Error("NewClient(\"\") expected error")
		}
	})

	t.Run("applies options", func(t *testing.T) {
		client, err := NewClient("test-key",
			WithModel("pro"),
			WithBaseURL("http://127.0.0.1:9"),
			WithTargetLanguage("Portuguese"),
		)
		if err != nil {
			t.Fatalf("NewClient() unexpected error: %v", err)
		}
		if client.Model() != models.ModelPro {
			t.Errorf("Model() = %q, want %q (alias resolved)", client.Model(), models.ModelPro)
		}
		if client.baseURL != "http://127.0.0.1:9" {
			t.Errorf("baseURL = %q", client.baseURL)
		}
		if client.Language() != "Portuguese" {
			t.Errorf("Language() = %q", client.Language())
		}
	})
}
