package providers

import (
	"fmt"
	"strings"
)

// ProviderRef is one entry of STUDYFLOW_LLM_PROVIDERS, written as name or name:alias.
// Name is lower-cased; the alias selects which credential env var is read.
type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

func (r ProviderRef) String() string {
	if r.KeyAlias == "" {
		return r.Name
	}
	return r.Name + ":" + r.KeyAlias
}

var defaultProviderRef = ProviderRef{Raw: "mock", Name: "mock"}

// ParseProviderList parses a '|' separated provider list. Blank entries are skipped and
// an empty list means mock.
func ParseProviderList(raw string) ([]ProviderRef, error) {
	var out []ProviderRef
	for _, entry := range strings.Split(raw, "|") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ref, err := parseProviderRef(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		return []ProviderRef{defaultProviderRef}, nil
	}
	return out, nil
}

func parseProviderRef(entry string) (ProviderRef, error) {
	name, alias, hasAlias := strings.Cut(entry, ":")
	ref := ProviderRef{
		Raw:      entry,
		Name:     strings.ToLower(strings.TrimSpace(name)),
		KeyAlias: strings.TrimSpace(alias),
	}
	switch {
	case ref.Name == "":
		return ProviderRef{}, fmt.Errorf("provider entry %q has no name", entry)
	case hasAlias && ref.KeyAlias == "":
		return ProviderRef{}, fmt.Errorf("provider entry %q has an empty alias after ':'", entry)
	}
	return ref, nil
}
