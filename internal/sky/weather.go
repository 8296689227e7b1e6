package sky

// Weather is the immutable configuration for one weather type, resolved
// once from the fallback table at manager construction.
type Weather struct {
	Name string

	CloudTexture string

	SkyColor     TimeOfDay[Color]
	FogColor     TimeOfDay[Color]
	AmbientColor TimeOfDay[Color]
	SunColor     TimeOfDay[Color]
	LandFogDepth TimeOfDay[Scalar]

	SunDiscSunsetColor Color

	WindSpeed  float64
	CloudSpeed float64
	GlareView  float64

	// IsStorm is derived from the wind speed crossing the configured
	// storm threshold; storm weathers get a travel direction in the result.
	IsStorm bool

	RainSpeed     float64
	RainFrequency float64

	ParticleEffect string
	RainEffect     string

	AmbientLoopSoundID string

	transitionDelta      float64
	cloudsMaximumPercent float64

	ThunderFrequency float64
	ThunderThreshold float64
	ThunderSoundIDs  [4]string
	FlashDecrement   float64
}

// NewWeather resolves one weather type from the fallback table. Keys follow
// the "Weather_<name>_<attribute>" convention.
func NewWeather(name string, fb Fallback, stormWindSpeed, rainSpeed float64, particleEffect string) Weather {
	key := func(attribute string) string { return "Weather_" + name + "_" + attribute }

	timeOfDayColor := func(attribute string) TimeOfDay[Color] {
		return TimeOfDay[Color]{
			Sunrise: fb.Color(key(attribute + "_Sunrise_Color")),
			Day:     fb.Color(key(attribute + "_Day_Color")),
			Sunset:  fb.Color(key(attribute + "_Sunset_Color")),
			Night:   fb.Color(key(attribute + "_Night_Color")),
		}
	}

	w := Weather{
		Name:         name,
		CloudTexture: fb.String(key("Cloud_Texture")),
		SkyColor:     timeOfDayColor("Sky"),
		FogColor:     timeOfDayColor("Fog"),
		AmbientColor: timeOfDayColor("Ambient"),
		SunColor:     timeOfDayColor("Sun"),
		LandFogDepth: TimeOfDay[Scalar]{
			Sunrise: Scalar(fb.Float(key("Land_Fog_Day_Depth"))),
			Day:     Scalar(fb.Float(key("Land_Fog_Day_Depth"))),
			Sunset:  Scalar(fb.Float(key("Land_Fog_Day_Depth"))),
			Night:   Scalar(fb.Float(key("Land_Fog_Night_Depth"))),
		},
		SunDiscSunsetColor:   fb.Color(key("Sun_Disc_Sunset_Color")),
		WindSpeed:            fb.Float(key("Wind_Speed")),
		CloudSpeed:           fb.Float(key("Cloud_Speed")),
		GlareView:            fb.Float(key("Glare_View")),
		RainSpeed:            rainSpeed,
		RainFrequency:        fb.Float(key("Rain_Entrance_Speed")),
		ParticleEffect:       particleEffect,
		transitionDelta:      fb.Float(key("Transition_Delta")),
		cloudsMaximumPercent: fb.Float(key("Clouds_Maximum_Percent")),
		ThunderFrequency:     fb.Float(key("Thunder_Frequency")),
		ThunderThreshold:     fb.Float(key("Thunder_Threshold")),
		FlashDecrement:       fb.Float(key("Flash_Decrement")),
	}
	w.IsStorm = w.WindSpeed > stormWindSpeed

	if fb.Bool(key("Using_Precip")) {
		w.RainEffect = "raindrop"
	}

	for i := range w.ThunderSoundIDs {
		w.ThunderSoundIDs[i] = fb.String(key("Thunder_Sound_ID_" + string(rune('0'+i))))
	}

	// Precipitating weathers share a looping rain bed; everything else has
	// its own ambient loop (possibly none).
	if w.RainEffect != "" {
		w.AmbientLoopSoundID = fb.String(key("Rain_Loop_Sound_ID"))
		if w.AmbientLoopSoundID == "" {
			w.AmbientLoopSoundID = "rain"
		}
	} else {
		w.AmbientLoopSoundID = fb.String(key("Ambient_Loop_Sound_ID"))
	}

	return w
}

// TransitionDelta is how quickly a transition into this weather progresses,
// in Hz of real time.
func (w *Weather) TransitionDelta() float64 {
	return w.transitionDelta
}

// CloudBlendFactor maps transition progress onto the cloud texture
// cross-fade; Clouds_Maximum_Percent controls how early it saturates. An
// unconfigured maximum falls back to the plain ratio.
func (w *Weather) CloudBlendFactor(transitionRatio float64) float64 {
	if w.cloudsMaximumPercent < rampEpsilon {
		return transitionRatio
	}
	return transitionRatio / w.cloudsMaximumPercent
}

// ThunderFlash is the per-session lightning state for one weather type. It
// lives with the manager rather than on the Weather config, which stays
// immutable after construction.
type ThunderFlash struct {
	Brightness float64
}

// CalculateThunder decays the flash and possibly fires a new strike,
// returning the resulting brightness. When paused, the brightness is frozen
// and no strikes occur. Brightness is additive across strikes and is not
// clamped to 1.
func (w *Weather) CalculateThunder(flash *ThunderFlash, transitionRatio, elapsedSeconds float64, isPaused bool, dice Dice, sounds SoundSink) float64 {
	if isPaused {
		return flash.Brightness
	}

	// No thunder below the threshold, or for weathers without a frequency.
	if transitionRatio >= w.ThunderThreshold && w.ThunderFrequency > 0 {
		w.flashDecrement(flash, elapsedSeconds)

		if dice.RollProbability() <= w.thunderChance(transitionRatio, elapsedSeconds) {
			w.lightningAndThunder(flash, dice, sounds)
		}
	} else {
		flash.Brightness = 0
	}

	return flash.Brightness
}

func (w *Weather) flashDecrement(flash *ThunderFlash, elapsedSeconds float64) {
	// Flash_Decrement is whole brightness units per second; a fresh strike
	// at 1.0 with a decrement of 4 decays in roughly a quarter second.
	decrement := w.FlashDecrement * elapsedSeconds
	if decrement > flash.Brightness {
		flash.Brightness = 0
	} else {
		flash.Brightness -= decrement
	}
}

func (w *Weather) thunderChance(transitionRatio, elapsedSeconds float64) float64 {
	// A frequency of 1 works out to roughly ten strikes per minute of real
	// time, scaled by how far past the threshold the transition has gone.
	// A threshold of 1 leaves no span to scale over; treat it as full
	// strength once reached.
	scaleFactor := 1.0
	if span := 1 - w.ThunderThreshold; span >= rampEpsilon {
		scaleFactor = (transitionRatio - w.ThunderThreshold) / span
	}
	return ((w.ThunderFrequency * 10) / 60) * elapsedSeconds * scaleFactor
}

func (w *Weather) lightningAndThunder(flash *ThunderFlash, dice Dice, sounds SoundSink) {
	// The four thunder sound ids run from 0 (closest, brightest flash) to
	// 3 (farthest, faintest); each step of distance costs 0.25 brightness.
	distance := dice.RollDice(4)
	flash.Brightness += 1 - float64(distance)*0.25
	sounds.Play(w.ThunderSoundIDs[distance], 1, 1)
}
