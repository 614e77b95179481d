package driven

import "context"

// GenerationService produces answer text from an assembled prompt.
//
// Implementations distinguish transient failures (rate limiting, temporary
// unavailability) from fatal ones by wrapping domain.ErrGenerationExhausted
// and domain.ErrGenerationUnavailable respectively, so callers can
// discriminate with errors.Is instead of matching broad error types.
// Retry policy is the adapter's concern; the service behind this port is
// stateless beyond the network call.
type GenerationService interface {
	// Generate produces text for the given prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures sampling behaviour.
type GenerateOptions struct {
	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// TopP is the nucleus-sampling threshold.
	TopP float64

	// MaxTokens is the maximum number of tokens to generate. 0 means the
	// model default.
	MaxTokens int
}
