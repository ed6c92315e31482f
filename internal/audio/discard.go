package audio

import "context"

// Discard is a Player that swallows audio. Pipelines that only fill the cache
// (warming) use it instead of opening the audio device.
var Discard Player = discardPlayer{}

type discardPlayer struct{}

func (discardPlayer) Play(context.Context, []byte) error { return nil }
func (discardPlayer) Close() error                       { return nil }
