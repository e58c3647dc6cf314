package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls the Google AI Studio generateContent endpoint.
type GeminiProvider struct {
	keyName string
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiProvider(keyName, model string, timeout time.Duration) *GeminiProvider {
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.0-flash"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiProvider{
		keyName: keyName,
		apiKey:  resolveGeminiKey(keyName),
		model:   strings.TrimPrefix(strings.TrimSpace(model), "models/"),
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *GeminiProvider) info() ProviderInfo {
	return ProviderInfo{Name: "gemini", Model: g.model, Key: g.keyName}
}

func (g *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	if g.apiKey == "" {
		return GenerateResponse{}, g.info(), fmt.Errorf("gemini key missing for alias %q", g.keyName)
	}
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
	})
	if err != nil {
		return GenerateResponse{}, g.info(), fmt.Errorf("encode gemini request: %w", err)
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return GenerateResponse{}, g.info(), fmt.Errorf("build gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return GenerateResponse{}, g.info(), fmt.Errorf("gemini generate request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := readResponseBody(resp.Body)
	if err != nil {
		return GenerateResponse{}, g.info(), fmt.Errorf("gemini %w", err)
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Error.Message != "" {
			return GenerateResponse{}, g.info(), fmt.Errorf("gemini generate error %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return GenerateResponse{}, g.info(), fmt.Errorf("gemini generate error %d: %s", resp.StatusCode, string(body))
	}
	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return GenerateResponse{}, g.info(), fmt.Errorf("decode gemini response: %w", err)
	}
	text, ok := extractGeminiText(parsed)
	if !ok {
		return GenerateResponse{}, g.info(), fmt.Errorf("gemini returned no text candidates")
	}
	return GenerateResponse{Text: text}, g.info(), nil
}

// geminiTextStrategies are tried in order; the first one that yields non-empty text wins.
var geminiTextStrategies = []func(geminiResponse) (string, bool){
	firstCandidateText,
	anyCandidateFirstPart,
}

func extractGeminiText(resp geminiResponse) (string, bool) {
	for _, strategy := range geminiTextStrategies {
		if text, ok := strategy(resp); ok {
			return text, true
		}
	}
	return "", false
}

// firstCandidateText joins every text part of the first candidate.
func firstCandidateText(resp geminiResponse) (string, bool) {
	if len(resp.Candidates) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// anyCandidateFirstPart returns the first non-empty leading part across all candidates.
func anyCandidateFirstPart(resp geminiResponse) (string, bool) {
	for _, c := range resp.Candidates {
		if len(c.Content.Parts) == 0 {
			continue
		}
		if text := c.Content.Parts[0].Text; strings.TrimSpace(text) != "" {
			return text, true
		}
	}
	return "", false
}

func resolveGeminiKey(alias string) string {
	if alias != "" {
		if v := os.Getenv("STUDYFLOW_GEMINI_KEY_" + strings.ToUpper(alias)); v != "" {
			return v
		}
	}
	return os.Getenv("GEMINI_API_KEY")
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}
