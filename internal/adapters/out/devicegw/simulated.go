// Package devicegw provides device gateway implementations for polling runs.
package devicegw

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// SimulatedGateway produces synthetic sensor values in place of a real
// device API. Values follow the shape of a temperature sensor reading:
// 20 plus up to 10 units of jitter in either direction.
type SimulatedGateway struct {
	mu  sync.Mutex
	rng *rand.Rand

	// latency approximates the round-trip of a real gateway call and is a
	// cancellable suspension point.
	latency time.Duration
}

// NewSimulatedGateway creates a simulated gateway with the given artificial
// per-fetch latency.
func NewSimulatedGateway(latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		latency: latency,
	}
}

// Fetch returns a synthetic data point for the device, honoring context
// cancellation during the simulated round-trip.
func (g *SimulatedGateway) Fetch(ctx context.Context, _ string) (float64, error) {
	if g.latency > 0 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(g.latency):
		}
	}

	g.mu.Lock()
	value := 20 + g.rng.Float64()*20 - 10
	g.mu.Unlock()
	return value, nil
}
