// Package translate abstracts company-name translation. Uzbek registry
// pages publish names in Uzbek; downstream customs tooling expects Russian.
package translate

import "context"

// Translator converts text between two languages, identified by ISO 639-1
// codes.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// Noop returns the input unchanged. Used when no translation backend is
// configured.
type Noop struct{}

func (Noop) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
