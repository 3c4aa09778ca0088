package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	apierrors "github.com/ragu/kaiwa/internal/errors"
	"github.com/ragu/kaiwa/internal/models"
)

// gjson paths into the generateContent response
const (
	pathErrorMessage = "error.message"
	pathReplyText    = "candidates.0.content.parts.0.text"
)

// invalidResponseMessage is the fixed message for structurally broken
// responses. Missing and empty candidate arrays map to the same message.
const invalidResponseMessage = "invalid response from the model"

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GenerateContent sends a prompt and returns the first candidate's reply
// text. One request per call: no retry, no deduplication.
func (c *Client) GenerateContent(prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	endpoint := models.GenerateContentPath(c.model)

	payload, err := buildGenerateRequest(prompt, models.SystemInstruction(c.language))
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("endpoint", endpoint).Msg("generate content transport failure")
		return "", apierrors.NewNetworkError("generate content", endpoint, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewNetworkError("generate content", endpoint, err)
	}

	log.Debug().
		Str("model", c.model).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("generate content round trip")

	return parseResponse(body, resp.StatusCode, endpoint)
}

// buildGenerateRequest creates the JSON body for the generate request
func buildGenerateRequest(prompt, instruction string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		SystemInstruction: &content{
			Parts: []part{{Text: instruction}},
		},
		GenerationConfig: generationConfig{
			Temperature:     models.GenerationTemperature,
			TopK:            models.GenerationTopK,
			TopP:            models.GenerationTopP,
			MaxOutputTokens: models.GenerationMaxOutputTokens,
		},
	}
	return json.Marshal(req)
}

// parseResponse extracts the reply text from a generateContent response.
// An error descriptor in the body wins over everything else, even on a 200.
func parseResponse(body []byte, statusCode int, endpoint string) (string, error) {
	parsed := gjson.ParseBytes(body)

	if errMsg := parsed.Get(pathErrorMessage); errMsg.Exists() && errMsg.String() != "" {
		status := 0
		if statusCode != http.StatusOK {
			status = statusCode
		}
		return "", apierrors.NewAPIError(status, endpoint, errMsg.String())
	}

	if statusCode != http.StatusOK {
		return "", apierrors.NewAPIError(statusCode, endpoint, "generate content failed")
	}

	reply := parsed.Get(pathReplyText)
	if !reply.Exists() {
		log.Debug().Str("path", pathReplyText).Msg("response missing reply text")
		return "", apierrors.NewParseError(invalidResponseMessage, pathReplyText)
	}

	return reply.String(), nil
}
