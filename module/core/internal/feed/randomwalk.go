package feed

import (
	"math/rand"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

var _ Source = (*RandomWalk)(nil)

// defaultJitterDeg gives up to ~50m of drift per tick at mid latitudes.
const defaultJitterDeg = 0.001

// RandomWalk perturbs the previous position by a small random offset on
// each call, emulating device movement.
type RandomWalk struct {
	pos    domain.Position
	jitter float64
	rng    *rand.Rand
}

func NewRandomWalk(start domain.Position, seed int64) *RandomWalk {
	return &RandomWalk{
		pos:    start,
		jitter: defaultJitterDeg,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (w *RandomWalk) Next() domain.Position {
	w.pos = domain.Position{
		Lat: w.pos.Lat + (w.rng.Float64()-0.5)*w.jitter,
		Lng: w.pos.Lng + (w.rng.Float64()-0.5)*w.jitter,
	}
	return w.pos
}
