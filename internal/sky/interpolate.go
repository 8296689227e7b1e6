package sky

// Scalar is a float64 with interpolation support, so plain values can be
// driven through the same keyframe machinery as colors.
type Scalar float64

func (s Scalar) Blend(other Scalar, factor float64) Scalar {
	return Scalar(float64(s)*(1-factor) + float64(other)*factor)
}

// Color is an RGBA quadruple in linear 0..1 space. Thunder flashes push
// components above 1 on purpose; consumers clamp where it matters.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

func (c Color) Blend(other Color, factor float64) Color {
	return Color{
		R: c.R*(1-factor) + other.R*factor,
		G: c.G*(1-factor) + other.G*factor,
		B: c.B*(1-factor) + other.B*factor,
		A: c.A*(1-factor) + other.A*factor,
	}
}

func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B, A: c.A + other.A}
}

// TimeOfDaySettings holds the day-cycle boundaries in game hours (0-24).
// Callers keep NightEnd < DayStart <= DayEnd < NightStart.
type TimeOfDaySettings struct {
	NightStart  float64
	NightEnd    float64
	DayStart    float64
	DayEnd      float64
	SunriseTime float64
}

type blendable[T any] interface {
	Blend(other T, factor float64) T
}

// TimeOfDay interpolates a value across the four keyframes of the day cycle.
// The phase rules are evaluated in a fixed order; the first matching branch
// wins, which keeps the boundary behaviour continuous at phase edges.
type TimeOfDay[T blendable[T]] struct {
	Sunrise T
	Day     T
	Sunset  T
	Night   T
}

func (t TimeOfDay[T]) At(gameHour float64, settings TimeOfDaySettings) T {
	switch {
	// night
	case gameHour <= settings.NightEnd || gameHour >= settings.NightStart+1:
		return t.Night

	// sunrise
	case gameHour >= settings.NightEnd && gameHour <= settings.DayStart+1:
		if gameHour <= settings.SunriseTime {
			// fade in over the half hour leading up to the sunrise time
			advance := settings.SunriseTime - gameHour
			return t.Sunrise.Blend(t.Night, advance/0.5)
		}
		// fade out toward the day value over three hours
		advance := gameHour - settings.SunriseTime
		return t.Sunrise.Blend(t.Day, advance/3)

	// day
	case gameHour >= settings.DayStart+1 && gameHour <= settings.DayEnd-1:
		return t.Day

	// sunset
	case gameHour >= settings.DayEnd-1 && gameHour <= settings.NightStart+1:
		if gameHour <= settings.DayEnd+1 {
			// fade in, pivoting one hour past the end of day
			advance := (settings.DayEnd + 1) - gameHour
			return t.Sunset.Blend(t.Day, advance/2)
		}
		// fade out into night
		advance := gameHour - (settings.DayEnd + 1)
		return t.Sunset.Blend(t.Night, advance/2)
	}

	// Unreachable for well-formed settings.
	var zero T
	return zero
}
