// Package speech implements the cache-backed playback pipeline: resolve a
// phrase to its cache filename, play the cached clip if present, otherwise
// synthesize, persist, and play.
package speech

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/clawkit/clawkit/internal/audio"
	"github.com/clawkit/clawkit/internal/cache"
	"github.com/clawkit/clawkit/internal/phrase"
	"github.com/clawkit/clawkit/internal/synth"
)

// DefaultPhrase is spoken when the caller provides no text.
const DefaultPhrase = "Work complete!"

// Pipeline wires the phrase resolver, the on-disk clip store, a synthesis
// engine, and a playback sink into the speak state machine.
//
// Error policy (in order of severity):
//   - cache read, playback-of-cached-clip, and cache write failures are
//     warnings; the pipeline degrades to the next step and still produces
//     audio when the provider is reachable.
//   - synthesis and configuration failures are fatal and propagate to the
//     caller unretried.
type Pipeline struct {
	store  *cache.Store
	engine synth.Engine
	player audio.Player
	logger *log.Logger
}

// New assembles a pipeline. A nil logger falls back to the package-level
// default.
func New(store *cache.Store, engine synth.Engine, player audio.Player, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		store:  store,
		engine: engine,
		player: player,
		logger: logger,
	}
}

// Speak produces audio for text, consulting the cache first.
//
// A cached clip that cannot be read or played falls through to fresh
// synthesis rather than aborting; the unreadable entry is deliberately left
// in place (see the package tests for the recorded trade-off). A failed cache
// write after synthesis is logged and playback proceeds from memory.
func (p *Pipeline) Speak(ctx context.Context, text string) error {
	name := phrase.ResolveFilename(text)
	logger := p.logger.With("phrase", text, "file", name)

	if p.store.Exists(name) {
		data, err := p.store.Read(name)
		if err != nil {
			logger.Warn("cached clip unreadable, re-synthesizing", "err", err)
		} else if perr := p.player.Play(ctx, data); perr != nil {
			logger.Warn("cached clip playback failed, re-synthesizing", "err", perr)
		} else {
			logger.Debug("played cached clip", "bytes", len(data))
			return nil
		}
	}

	data, err := p.engine.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("synthesis via %s failed: %w", p.engine.Name(), err)
	}
	logger.Debug("synthesized clip", "engine", p.engine.Name(), "bytes", len(data))

	// Caching is best-effort: a read-only or missing cache directory must
	// never block audio output.
	if err := p.store.Write(name, data); err != nil {
		logger.Warn("could not cache clip", "err", err)
	}

	if err := p.player.Play(ctx, data); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// Warm synthesizes and persists every standard-table phrase that is not yet
// cached, without playing anything. It returns the number of clips generated.
// Unlike Speak, a cache write failure here is fatal: persisting is the whole
// point of warming.
func (p *Pipeline) Warm(ctx context.Context) (int, error) {
	texts := make([]string, 0, len(phrase.Filenames))
	for text := range phrase.Filenames {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	generated := 0
	for _, text := range texts {
		name := phrase.Filenames[text]
		if p.store.Exists(name) {
			p.logger.Debug("already cached", "file", name)
			continue
		}

		data, err := p.engine.Synthesize(ctx, text)
		if err != nil {
			return generated, fmt.Errorf("synthesis via %s failed for %q: %w", p.engine.Name(), text, err)
		}
		if err := p.store.Write(name, data); err != nil {
			return generated, err
		}
		p.logger.Info("cached", "file", name, "bytes", len(data))
		generated++
	}
	return generated, nil
}
