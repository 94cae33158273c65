package language

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedLanguage is returned when no variant matches the identifier
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Info describes a supported language for capability advertisement
type Info struct {
	Name    string
	Version string
}

// Registry maps language identifier to its variant
type Registry struct {
	toolchain Toolchain
	languages []Language
	index     map[string]int
}

// DefaultLanguages returns all built-in variants
func DefaultLanguages() []Language {
	return []Language{
		{Name: "matlab", New: newMatlab},
		{Name: "python2", New: newPython2},
		{Name: "python3", New: newPython3},
		{Name: "java", New: newJava},
		{Name: "c", New: newC},
	}
}

// NewRegistry constructs a registry from the supplied languages
func NewRegistry(tc Toolchain, langs ...Language) (*Registry, error) {
	r := &Registry{
		toolchain: tc,
		languages: make([]Language, 0, len(langs)),
		index:     make(map[string]int, len(langs)),
	}
	for _, l := range langs {
		name := normalize(l.Name)
		if name == "" {
			return nil, errors.New("language missing identifier")
		}
		if l.New == nil {
			return nil, fmt.Errorf("language %q missing constructor", name)
		}
		if _, ok := r.index[name]; ok {
			return nil, fmt.Errorf("duplicate language %q", name)
		}
		l.Name = name
		r.index[name] = len(r.languages)
		r.languages = append(r.languages, l)
	}
	if len(r.languages) == 0 {
		return nil, errors.New("at least one language must be registered")
	}
	return r, nil
}

// Resolve returns the task constructor for the identifier, compared case
// insensitively
func (r *Registry) Resolve(name string) (NewFunc, error) {
	i, ok := r.index[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
	l := r.languages[i]
	tc := r.toolchain
	return func(p Params) Task {
		return l.New(tc, p)
	}, nil
}

// List returns the supported languages in registration order
func (r *Registry) List() []Info {
	rt := make([]Info, 0, len(r.languages))
	for _, l := range r.languages {
		rt = append(rt, Info{
			Name:    l.Name,
			Version: l.New(r.toolchain, Params{}).Version(),
		})
	}
	return rt
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
