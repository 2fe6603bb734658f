// Package geo estimates the distance between a recruit's home and a
// program's campus.
//
// Estimates are deterministic and total: the same pair always yields the
// same mileage, and unresolvable locations degrade to a fixed heuristic
// instead of failing.
package geo

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
)

// Default fallback mileage constants.
const (
	defaultSameStateMiles  = 140
	defaultCrossStateMiles = 750
	earthRadiusMiles       = 3958.8
)

//go:embed tables.yaml
var tablesYAML []byte

// location is one lat/lon entry in the lookup tables.
type location struct {
	Lat float64 `koanf:"lat"`
	Lon float64 `koanf:"lon"`
}

// tables holds the embedded state-centroid and campus lookup data.
type tables struct {
	States   map[string]location `koanf:"states"`
	Campuses map[string]location `koanf:"campuses"`
}

// Option applies a configuration option to the TableEstimator.
type Option func(*TableEstimator)

// WithSameStateFallback sets the mileage used when a same-state pair cannot
// be resolved from the tables.
func WithSameStateFallback(miles int) Option {
	return func(e *TableEstimator) {
		if miles > 0 {
			e.sameStateMiles = miles
		}
	}
}

// WithCrossStateFallback sets the mileage used when an unresolvable pair
// spans states (or states are unknown).
func WithCrossStateFallback(miles int) Option {
	return func(e *TableEstimator) {
		if miles > 0 {
			e.crossStateMiles = miles
		}
	}
}

// Estimator resolves a recruit/team pair to a mileage figure.
type Estimator interface {
	// Estimate returns the great-circle distance in whole miles. It never
	// fails; unresolvable locations degrade to a heuristic value.
	Estimate(ctx context.Context, recruit model.Recruit, team model.Team) int
}

// TableEstimator implements Estimator backed by the embedded lookup tables.
type TableEstimator struct {
	states          map[string]location
	campuses        map[string]location
	sameStateMiles  int
	crossStateMiles int
}

// NewTableEstimator creates an estimator from the embedded tables.
func NewTableEstimator(opts ...Option) (*TableEstimator, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(tablesYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse geo tables: %w", err)
	}
	var t tables
	if err := k.UnmarshalWithConf("", &t, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal geo tables: %w", err)
	}

	e := &TableEstimator{
		states:          t.States,
		campuses:        t.Campuses,
		sameStateMiles:  defaultSameStateMiles,
		crossStateMiles: defaultCrossStateMiles,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Estimate returns the rounded great-circle distance between the recruit's
// home and the team's campus. Explicit coordinates win over table lookups.
func (e *TableEstimator) Estimate(_ context.Context, recruit model.Recruit, team model.Team) int {
	homeLat, homeLon, homeOK := e.resolveHome(recruit)
	campusLat, campusLon, campusOK := e.resolveCampus(team)

	if homeOK && campusOK {
		return int(math.Round(haversineMiles(homeLat, homeLon, campusLat, campusLon)))
	}

	if sameState(recruit.HomeState, team.State) {
		return e.sameStateMiles
	}
	return e.crossStateMiles
}

func (e *TableEstimator) resolveHome(r model.Recruit) (lat, lon float64, ok bool) {
	if r.HomeLat != nil && r.HomeLon != nil {
		return *r.HomeLat, *r.HomeLon, true
	}
	if loc, found := e.states[strings.ToUpper(strings.TrimSpace(r.HomeState))]; found {
		return loc.Lat, loc.Lon, true
	}
	return 0, 0, false
}

func (e *TableEstimator) resolveCampus(t model.Team) (lat, lon float64, ok bool) {
	if t.Lat != nil && t.Lon != nil {
		return *t.Lat, *t.Lon, true
	}
	if loc, found := e.campuses[t.Name]; found {
		return loc.Lat, loc.Lon, true
	}
	if loc, found := e.states[strings.ToUpper(strings.TrimSpace(t.State))]; found {
		return loc.Lat, loc.Lon, true
	}
	return 0, 0, false
}

func sameState(a, b string) bool {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	return a != "" && a == b
}

// haversineMiles computes the great-circle distance between two points.
func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}
