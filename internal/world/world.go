// Package world provides a minimal game-world implementation of the scene
// queries the weather simulation consumes: the game clock, the player's
// region, and the indoor/outdoor classification.
package world

import (
	"math"
	"strings"

	"github.com/appengine-ltd/skysim/internal/sky"
)

// Sim is a simple single-player world clock and player locator. It
// satisfies sky.Scene and is mutated only by its owner's goroutine, the
// same one that drives WeatherManager.Update.
type Sim struct {
	day      int
	hour     float64
	region   string
	exterior bool
	position sky.Vec3

	// Timescale is game seconds per real second; 30 matches the classic
	// engine default.
	Timescale float64
}

// NewSim starts a world at 7am on day 1 in the given region, outdoors.
func NewSim(region string) *Sim {
	return &Sim{
		day:       1,
		hour:      7,
		region:    strings.ToLower(region),
		exterior:  true,
		Timescale: 30,
	}
}

func (s *Sim) Timestamp() sky.Timestamp {
	return sky.Timestamp{Day: s.day, Hour: s.hour}
}

func (s *Sim) PlayerRegion() string { return s.region }

func (s *Sim) IsExterior() bool { return s.exterior }

func (s *Sim) PlayerPosition() sky.Vec3 { return s.position }

// AdvanceHours moves the clock forward, rolling days as needed.
func (s *Sim) AdvanceHours(hours float64) {
	if hours < 0 {
		return
	}
	s.hour += hours
	for s.hour >= 24 {
		s.hour -= 24
		s.day++
	}
}

// Tick converts elapsed real seconds to game time via the timescale and
// advances the clock.
func (s *Sim) Tick(elapsedRealSeconds float64) {
	s.AdvanceHours(s.Timescale * elapsedRealSeconds / 3600)
}

// SetClock jumps straight to a day and hour, normalizing the hour into
// [0, 24).
func (s *Sim) SetClock(day int, hour float64) {
	extraDays := int(math.Floor(hour / 24))
	s.day = day + extraDays
	s.hour = hour - float64(extraDays)*24
}

func (s *Sim) SetRegion(region string) { s.region = strings.ToLower(region) }

func (s *Sim) SetExterior(exterior bool) { s.exterior = exterior }

func (s *Sim) SetPosition(p sky.Vec3) { s.position = p }
