package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/greensort/ecosort-web-ui/internal/models"
)

// Gemini provides an interface to the Google Generative Language API for single-shot text
// generation. It composes a fixed system instruction with the user's question and performs one
// authenticated POST per call; the credential is session state and is supplied per request rather
// than held on the client.
type Gemini struct {
	endpoint     string
	model        string
	systemPrompt string

	client *http.Client

	logger *slog.Logger
}

type geminiGenerateRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

const geminiAPIEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// Generation parameters are held constant across all calls.
const (
	geminiTemperature     = 0.7
	geminiTopK            = 40
	geminiTopP            = 0.95
	geminiMaxOutputTokens = 1024
)

// NewGemini creates a new Gemini instance for the given model and system prompt. The endpoint
// parameter overrides the default API base URL and is mainly useful for tests; pass an empty
// string to reach the real service.
func NewGemini(endpoint, model, systemPrompt string, logger *slog.Logger) Gemini {
	if endpoint == "" {
		endpoint = geminiAPIEndpoint
	}
	return Gemini{
		endpoint:     endpoint,
		model:        model,
		systemPrompt: systemPrompt,
		client:       &http.Client{},
		logger:       logger.With(slog.String("module", "gemini")),
	}
}

// Generate submits one generation request carrying the system prompt and the user's question, and
// returns the first candidate text from the response. A well-formed response without any candidate
// text yields the fixed apology string rather than an error; transport failures, non-success
// statuses, and unparseable bodies all surface as a single error condition for the caller to map
// to fallback text.
func (g Gemini) Generate(ctx context.Context, apiKey, question string) (string, error) {
	reqBody := geminiGenerateRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: g.systemPrompt + "\n\nUser question: " + question},
				},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     geminiTemperature,
			TopK:            geminiTopK,
			TopP:            geminiTopP,
			MaxOutputTokens: geminiMaxOutputTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.endpoint, g.model, url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		g.logger.Error("Generation request rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return "", fmt.Errorf("generation request failed with status %d", resp.StatusCode)
	}

	var genResp geminiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	// A parseable response with no candidate text is not treated as a failure; the remote model
	// sometimes filters everything out, and the user should get an apology instead of an error.
	text := firstCandidateText(genResp)
	if text == "" {
		g.logger.Warn("Generation response carried no candidate text")
		return models.ApologyText, nil
	}

	return text, nil
}

func firstCandidateText(resp geminiGenerateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
