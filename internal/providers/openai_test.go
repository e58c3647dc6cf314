package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenAIProviderChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		require.Equal(t, "Summarize: cells", body.Messages[1].Content)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Cells are units of life."}}]}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	p := NewOpenAIProvider("", 5*time.Second)
	p.baseURL = srv.URL

	resp, info, err := p.Generate(context.Background(), GenerateRequest{Operation: "summary", Prompt: "Summarize: cells"})
	require.NoError(t, err)
	require.Equal(t, "openai", info.Name)
	require.Equal(t, "Cells are units of life.", resp.Text)
}

func TestOpenAIProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	p := NewOpenAIProvider("", time.Second)
	p.baseURL = srv.URL

	_, _, err := p.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	require.Equal(t, ErrorRate, ClassifyError(err))
}

func TestGroqProviderMissingKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("STUDYFLOW_GROQ_KEY_ALIAS1", "")
	p := NewGroqProvider("alias1", time.Second)
	_, info, err := p.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	require.Equal(t, "groq", info.Name)
	require.Equal(t, ErrorAuth, ClassifyError(err))
}

func TestOllamaProviderGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, false, body["stream"])
		require.Equal(t, "qwen2.5-7b", body["model"])
		_, _ = w.Write([]byte(`{"response":"[{\"time\":\"9\",\"activity\":\"read\"}]"}`))
	}))
	defer srv.Close()

	t.Setenv("STUDYFLOW_OLLAMA_BASE_URL", srv.URL+"/")
	p := NewOllamaProvider("qwen2.5-7b", time.Second)
	resp, _, err := p.Generate(context.Background(), GenerateRequest{Operation: "timetable", Prompt: "plan"})
	require.NoError(t, err)
	require.Equal(t, `[{"time":"9","activity":"read"}]`, resp.Text)
}
