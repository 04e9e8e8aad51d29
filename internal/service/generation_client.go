package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"riskscope/internal/config"
)

// Generator is the text-generation dependency of the questionnaire engine.
// Implementations return raw text which is never trusted to be valid
// structured data; callers must gate it through the response parser.
type Generator interface {
	Generate(ctx context.Context, modelName, prompt string) (string, error)
}

// GeminiClient calls the Gemini generateContent API
type GeminiClient struct {
	config *config.AIConfig
	client *http.Client
}

// NewGeminiClient creates a generation client from AI config
func NewGeminiClient(cfg *config.AIConfig) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Enabled returns true if an API key is configured
func (c *GeminiClient) Enabled() bool {
	return c.config.IsEnabled()
}

// Generate makes a request to the Gemini API and returns the first
// candidate's text.
func (c *GeminiClient) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"safetySettings": []map[string]string{
			{
				"category":  "HARM_CATEGORY_HARASSMENT",
				"threshold": "BLOCK_NONE",
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     c.config.Params.Temperature,
			"topK":            c.config.Params.TopK,
			"topP":            c.config.Params.TopP,
			"maxOutputTokens": c.config.Params.MaxOutputTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.config.ModelEndpoint(modelName), c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation request failed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
