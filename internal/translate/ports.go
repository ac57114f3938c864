package translate

import "context"

type Translator interface {
	// Translate returns text rendered from the source into the target
	// language. When the provider answers 200 without a translation, the
	// input comes back unchanged rather than an error.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
