package providers

import (
	"fmt"
	"strings"
	"time"

	"studyflow/internal/config"
)

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

type Manager struct {
	llmProviders []NamedLLMProvider
}

func NewManager(cfg config.Config) (*Manager, error) {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	refs, err := ParseProviderList(cfg.LLMProviders)
	if err != nil {
		return nil, fmt.Errorf("parse STUDYFLOW_LLM_PROVIDERS: %w", err)
	}
	m := &Manager{}
	for _, ref := range refs {
		p, err := buildProvider(ref, cfg, timeout)
		if err != nil {
			return nil, err
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	return m, nil
}

// FirstLLMProvider is the provider every request uses. Requests make exactly one model
// call, so later entries are never tried as fallbacks.
func (m *Manager) FirstLLMProvider() (LLMProvider, ProviderRef) {
	if len(m.llmProviders) == 0 {
		return NewMockProvider(), defaultProviderRef
	}
	return m.llmProviders[0].Provider, m.llmProviders[0].Ref
}

func (m *Manager) FindLLMProviderByName(name string) (LLMProvider, ProviderRef, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil, ProviderRef{}, false
	}
	for i := range m.llmProviders {
		if m.llmProviders[i].Ref.Name == target {
			return m.llmProviders[i].Provider, m.llmProviders[i].Ref, true
		}
	}
	return nil, ProviderRef{}, false
}

func (m *Manager) LLMProviderRefs() []ProviderRef {
	out := make([]ProviderRef, 0, len(m.llmProviders))
	for i := range m.llmProviders {
		out = append(out, m.llmProviders[i].Ref)
	}
	return out
}

func buildProvider(ref ProviderRef, cfg config.Config, timeout time.Duration) (LLMProvider, error) {
	switch ref.Name {
	case "mock":
		return NewMockProvider(), nil
	case "gemini":
		return NewGeminiProvider(ref.KeyAlias, cfg.GeminiModel, timeout), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias, timeout), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias, timeout), nil
	case "ollama":
		return NewOllamaProvider(ref.KeyAlias, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
