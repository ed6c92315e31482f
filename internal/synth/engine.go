// Package synth provides speech-synthesis engines that turn phrase text into
// MP3 audio.
package synth

import "context"

// Engine converts text into MP3-encoded audio.
//
// Synthesize blocks for the duration of the provider call; cancellation is the
// caller's business via ctx. Implementations do not retry: a provider failure
// surfaces immediately.
type Engine interface {
	// Name identifies the engine for logs and diagnostics.
	Name() string

	// Synthesize converts text to MP3 bytes.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Validate checks the engine is usable (credentials present, endpoint
	// reachable configuration) without performing a synthesis call.
	Validate() error
}
