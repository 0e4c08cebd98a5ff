// internal/provider/static.go
package provider

import (
	"context"
	"fmt"

	stderrors "route-optimizer/internal/common/errors"
)

// StaticPair seeds a StaticProvider with one known coordinate pair.
type StaticPair struct {
	FromLat, FromLon float64
	ToLat, ToLon     float64
	DistanceKm       float64
	DurationMinutes  float64
}

// StaticProvider serves distances from a fixed table. Used in tests and for
// local development without network access. Pairs match exactly on their
// coordinates; unknown pairs fail like an unavailable provider.
type StaticProvider struct {
	m    map[string]Result
	fail bool
}

func NewStaticProvider(pairs []StaticPair) *StaticProvider {
	m := make(map[string]Result, len(pairs))
	for _, p := range pairs {
		m[pairKey(p.FromLat, p.FromLon, p.ToLat, p.ToLon)] = Result{
			DistanceKm:      p.DistanceKm,
			DurationMinutes: p.DurationMinutes,
			Provider:        "static",
		}
	}
	return &StaticProvider{m: m}
}

// NewFailingProvider returns a provider whose every call fails; tests use it
// to force the fallback path.
func NewFailingProvider() *StaticProvider {
	return &StaticProvider{fail: true}
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) CalculateDistanceAndTime(ctx context.Context, lat1, lon1, lat2, lon2 float64) (Result, error) {
	if p.fail {
		return Result{}, stderrors.NewProviderUnavailableError("static", fmt.Errorf("provider configured to fail"))
	}

	r, ok := p.m[pairKey(lat1, lon1, lat2, lon2)]
	if !ok {
		return Result{}, stderrors.NewProviderUnavailableError("static", fmt.Errorf("no static route for pair (%v,%v) -> (%v,%v)", lat1, lon1, lat2, lon2))
	}
	return r, nil
}

func pairKey(lat1, lon1, lat2, lon2 float64) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", lat1, lon1, lat2, lon2)
}
