package sky

import "math"

// MoonState is the per-frame output for one moon. All fields are derived;
// nothing here carries identity between frames.
type MoonState struct {
	// Rotation is the angle from the rise horizon in degrees, 0..180.
	Rotation float64 `json:"rotation"`
	// AxisOffset tilts the travel arc away from vertical.
	AxisOffset float64 `json:"axis_offset"`
	// Phase is the 0..7 step of the eight-phase cycle.
	Phase int `json:"phase"`
	// ShadowBlend is the ratio between the textured surface and the
	// sky-colored disk.
	ShadowBlend float64 `json:"shadow_blend"`
	// Alpha is the overall visibility of the moon.
	Alpha float64 `json:"alpha"`
}

// MoonModel is the orbital configuration for one moon, resolved from
// "Moons_<name>_<attribute>" fallback keys.
type MoonModel struct {
	Name string

	fadeInStart   float64
	fadeInFinish  float64
	fadeOutStart  float64
	fadeOutFinish float64

	axisOffset     float64
	speed          float64
	dailyIncrement float64

	fadeStartAngle           float64
	fadeEndAngle             float64
	moonShadowEarlyFadeAngle float64
}

func NewMoonModel(name string, fb Fallback) MoonModel {
	key := func(attribute string) string { return "Moons_" + name + "_" + attribute }

	m := MoonModel{
		Name:                     name,
		fadeInStart:              fb.Float(key("Fade_In_Start")),
		fadeInFinish:             fb.Float(key("Fade_In_Finish")),
		fadeOutStart:             fb.Float(key("Fade_Out_Start")),
		fadeOutFinish:            fb.Float(key("Fade_Out_Finish")),
		axisOffset:               fb.Float(key("Axis_Offset")),
		speed:                    fb.Float(key("Speed")),
		dailyIncrement:           fb.Float(key("Daily_Increment")),
		fadeStartAngle:           fb.Float(key("Fade_Start_Angle")),
		fadeEndAngle:             fb.Float(key("Fade_End_Angle")),
		moonShadowEarlyFadeAngle: fb.Float(key("Moon_Shadow_Early_Fade_Angle")),
	}

	// Cap the speed so the moon can always complete its half rotation
	// inside a 23 hour window; faster configurations stall the rise math.
	m.speed = math.Min(m.speed, 180.0/23.0)

	return m
}

// CalculateState composes the independent angle, phase and fade
// computations for the given game time.
func (m *MoonModel) CalculateState(gameTime Timestamp) MoonState {
	rotationFromHorizon := m.angle(gameTime)
	return MoonState{
		Rotation:    rotationFromHorizon,
		AxisOffset:  m.axisOffset,
		Phase:       m.phase(gameTime),
		ShadowBlend: m.shadowBlend(rotationFromHorizon),
		Alpha:       m.earlyMoonShadowAlpha(rotationFromHorizon) * m.hourlyAlpha(gameTime.Hour),
	}
}

// angle tracks the cumulative rotation since the most recent moonrise.
// Three cases matter: the moon rises and sets within the day, the moon rose
// yesterday and is still up (carry yesterday's partial angle), or the rise
// hour is simply earlier today.
func (m *MoonModel) angle(gameTime Timestamp) float64 {
	moonRiseHourToday := m.moonRiseHour(gameTime.Day)
	moonRiseAngleToday := 0.0

	if gameTime.Hour < moonRiseHourToday {
		moonRiseHourYesterday := m.moonRiseHour(gameTime.Day - 1)
		if moonRiseHourYesterday < 24 {
			moonRiseAngleYesterday := m.rotation(24 - moonRiseHourYesterday)
			if moonRiseAngleYesterday < 180 {
				// Rose yesterday without setting; keep accumulating.
				moonRiseAngleToday = m.rotation(gameTime.Hour) + moonRiseAngleYesterday
			}
		}
	} else {
		moonRiseAngleToday = m.rotation(gameTime.Hour - moonRiseHourToday)
	}

	if moonRiseAngleToday >= 180 {
		// The moon set; snap back to the rise horizon.
		moonRiseAngleToday = 0
	}

	return moonRiseAngleToday
}

// moonRiseHour may return >= 24, which postpones the rise to the next day.
// The 16-day offset anchors the cycle to the calendar epoch.
func (m *MoonModel) moonRiseHour(daysPassed int) float64 {
	const epochDay = 16
	return m.dailyIncrement + math.Mod(float64(daysPassed-1+epochDay)*m.dailyIncrement, 24)
}

// rotation converts elapsed hours into degrees travelled; speed is in whole
// rotations per day, and a full day sweep is 15 degrees per hour.
func (m *MoonModel) rotation(hours float64) float64 {
	return 15 * m.speed * hours
}

// phase steps through the eight-phase cycle every three days, using
// yesterday's phase until the moon has risen today.
func (m *MoonModel) phase(gameTime Timestamp) int {
	if gameTime.Hour < m.moonRiseHour(gameTime.Day) {
		return (gameTime.Day / 3) % 8
	}
	return ((gameTime.Day + 1) / 3) % 8
}

// shadowBlend ramps the moon from a sky-colored disk to its textured
// surface while rising, holds it textured across the sky, and ramps back
// down while setting.
func (m *MoonModel) shadowBlend(angle float64) float64 {
	fadeEndAngle2 := 180 - m.fadeEndAngle
	fadeStartAngle2 := 180 - m.fadeStartAngle
	return evalRamp(angle, []rampSpan{
		{start: m.fadeEndAngle, end: m.fadeStartAngle, from: 0, to: 1},
		{start: m.fadeStartAngle, end: fadeStartAngle2, from: 1, to: 1},
		{start: fadeStartAngle2, end: fadeEndAngle2, from: 1, to: 0},
	}, 0)
}

// hourlyAlpha fades the moon out across the morning and back in across the
// evening, by hour of day.
func (m *MoonModel) hourlyAlpha(gameHour float64) float64 {
	return evalRamp(gameHour, []rampSpan{
		{start: m.fadeOutStart, end: m.fadeOutFinish, from: 1, to: 0},
		{start: m.fadeOutFinish, end: m.fadeInStart, from: 0, to: 0},
		{start: m.fadeInStart, end: m.fadeInFinish, from: 0, to: 1},
	}, 1)
}

// earlyMoonShadowAlpha hides the moon in a narrow arc just outside the
// horizon fades, relative to the fade end angle.
func (m *MoonModel) earlyMoonShadowAlpha(angle float64) float64 {
	moonShadowEarlyFadeAngle1 := m.fadeEndAngle - m.moonShadowEarlyFadeAngle
	fadeEndAngle2 := 180 - m.fadeEndAngle
	moonShadowEarlyFadeAngle2 := fadeEndAngle2 + m.moonShadowEarlyFadeAngle
	return evalRamp(angle, []rampSpan{
		{start: moonShadowEarlyFadeAngle1, end: m.fadeEndAngle, from: 0, to: 1},
		{start: m.fadeEndAngle, end: fadeEndAngle2, from: 1, to: 1},
		{start: fadeEndAngle2, end: moonShadowEarlyFadeAngle2, from: 1, to: 0},
	}, 0)
}
