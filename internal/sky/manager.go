package sky

import (
	"math"
	"strings"
)

// Config holds the engine-level constants that don't live in the fallback
// table: the wind speed above which a weather counts as a storm, and the
// landmark storm clouds travel away from.
type Config struct {
	StormWindSpeed float64
	StormOrigin    Vec3
}

// DefaultConfig marks the high-wind weathers (ash, blight, blizzard) as
// storms and centers them on the volcano landmark.
func DefaultConfig() Config {
	return Config{
		StormWindSpeed: 0.5,
		StormOrigin:    Vec3{X: 19950, Y: 72032, Z: 27831},
	}
}

// WeatherManager owns the whole weather simulation: the ten weather
// configurations, the per-region states, the two moons, the transition
// state machine and the per-frame result. It is single threaded; all
// mutation happens inside Update or the explicit mutators, which callers
// invoke from the owning game loop.
type WeatherManager struct {
	scene  Scene
	sounds SoundSink
	dice   Dice

	sunriseTime      float64
	sunsetTime       float64
	sunriseDuration  float64
	sunsetDuration   float64
	sunPreSunsetTime float64
	timeSettings     TimeOfDaySettings

	hoursBetweenWeatherChanges float64
	rainSpeed                  float64
	stormWindSpeed             float64
	stormOrigin                Vec3

	nightFade     TimeOfDay[Scalar]
	underwaterFog TimeOfDay[Scalar]

	weathers []Weather
	flashes  []ThunderFlash

	moonPrimary   MoonModel
	moonSecondary MoonModel

	regionDefs []RegionDefinition
	regions    map[string]*RegionWeather

	currentRegion     string
	timePassed        float64
	fastForward       bool
	weatherUpdateTime float64
	transitionFactor  float64
	currentWeather    WeatherID
	nextWeather       WeatherID
	queuedWeather     WeatherID

	result             WeatherResult
	underwaterFogDepth float64
	windSpeed          float64
	isStorm            bool
	stormDirection     Vec3
	skyEnabled         bool
	sunEnabled         bool
	sunDirection       Vec3
	glareFade          float64
	primaryMoonState   MoonState
	secondaryMoonState MoonState

	playingLoopID string
	loopActive    bool
}

// NewWeatherManager resolves all static configuration and starts the
// session on Clear weather in every region.
func NewWeatherManager(scene Scene, sounds SoundSink, dice Dice, fb Fallback, regionDefs []RegionDefinition, cfg Config) *WeatherManager {
	m := &WeatherManager{
		scene:  scene,
		sounds: sounds,
		dice:   dice,

		sunriseTime:      fb.Float("Weather_Sunrise_Time"),
		sunsetTime:       fb.Float("Weather_Sunset_Time"),
		sunriseDuration:  fb.Float("Weather_Sunrise_Duration"),
		sunsetDuration:   fb.Float("Weather_Sunset_Duration"),
		sunPreSunsetTime: fb.Float("Weather_Sun_Pre-Sunset_Time"),

		hoursBetweenWeatherChanges: fb.Float("Weather_Hours_Between_Weather_Changes"),
		rainSpeed:                  fb.Float("Weather_Precip_Gravity"),
		stormWindSpeed:             cfg.StormWindSpeed,
		stormOrigin:                cfg.StormOrigin,

		// The night overlay is fully transparent through daylight and
		// solid at night; the sunset-to-night phase blends it in.
		nightFade: TimeOfDay[Scalar]{Sunrise: 0, Day: 0, Sunset: 0, Night: 1},
		underwaterFog: TimeOfDay[Scalar]{
			Sunrise: Scalar(fb.Float("Water_UnderwaterSunriseFog")),
			Day:     Scalar(fb.Float("Water_UnderwaterDayFog")),
			Sunset:  Scalar(fb.Float("Water_UnderwaterSunsetFog")),
			Night:   Scalar(fb.Float("Water_UnderwaterNightFog")),
		},

		moonPrimary:   NewMoonModel("Primary", fb),
		moonSecondary: NewMoonModel("Secondary", fb),

		regionDefs: regionDefs,
		regions:    make(map[string]*RegionWeather),

		currentWeather: WeatherClear,
		nextWeather:    WeatherNone,
		queuedWeather:  WeatherNone,
	}

	m.timeSettings = TimeOfDaySettings{
		NightStart:  m.sunsetTime + m.sunsetDuration,
		NightEnd:    m.sunriseTime - 0.5,
		DayStart:    m.sunriseTime + m.sunriseDuration,
		DayEnd:      m.sunsetTime,
		SunriseTime: m.sunriseTime,
	}

	m.weatherUpdateTime = m.hoursBetweenWeatherChanges

	m.weathers = make([]Weather, 0, WeatherTypeCount)
	m.addWeather("Clear", fb, "")
	m.addWeather("Cloudy", fb, "")
	m.addWeather("Foggy", fb, "")
	m.addWeather("Overcast", fb, "")
	m.addWeather("Rain", fb, "")
	m.addWeather("Thunderstorm", fb, "")
	m.addWeather("Ashstorm", fb, "ashcloud")
	m.addWeather("Blight", fb, "blightcloud")
	m.addWeather("Snow", fb, "snow")
	m.addWeather("Blizzard", fb, "blizzard")
	m.flashes = make([]ThunderFlash, len(m.weathers))

	m.importRegions()
	m.forceWeather(WeatherClear)

	return m
}

func (m *WeatherManager) addWeather(name string, fb Fallback, particleEffect string) {
	m.weathers = append(m.weathers, NewWeather(name, fb, m.stormWindSpeed, m.rainSpeed, particleEffect))
}

func (m *WeatherManager) importRegions() {
	for _, def := range m.regionDefs {
		region := NewRegionWeather(def)
		m.regions[strings.ToLower(def.ID)] = &region
	}
}

// ChangeWeather sets a region's selected weather. Applied to the player's
// current region it starts (or queues) a transition; with a transition and
// a queued transition already pending, the queued one is overwritten.
// Out-of-range weather ids and unknown regions are ignored.
func (m *WeatherManager) ChangeWeather(regionID string, weatherID WeatherID) {
	if !m.knownWeather(weatherID) {
		return
	}
	lower := strings.ToLower(regionID)
	region, ok := m.regions[lower]
	if !ok {
		return
	}
	region.SetWeather(weatherID)
	m.regionalWeatherChanged(lower, region)
}

// ModRegion replaces a region's weather chances. The change persists with
// the session; if the region no longer supports its current weather, a
// transition to a newly drawn one begins (or is queued).
func (m *WeatherManager) ModRegion(regionID string, chances []int) {
	lower := strings.ToLower(regionID)
	region, ok := m.regions[lower]
	if !ok {
		return
	}
	region.SetChances(chances, m.dice)
	m.regionalWeatherChanged(lower, region)
}

// PlayerTeleported reacts to the player arriving in an exterior cell of a
// different region: the region's weather applies immediately and any
// in-progress transition is discarded.
func (m *WeatherManager) PlayerTeleported() {
	if !m.scene.IsExterior() {
		return
	}
	playerRegion := strings.ToLower(m.scene.PlayerRegion())
	region, ok := m.regions[playerRegion]
	if ok && playerRegion != m.currentRegion {
		m.currentRegion = playerRegion
		m.forceWeather(region.GetWeather(m.dice))
	}
}

// Update advances the simulation by elapsedSeconds of real time. When
// paused, timers and thunder freeze but the interpolated sky values are
// still recomputed so a frozen scene keeps its lighting.
func (m *WeatherManager) Update(elapsedSeconds float64, paused bool) {
	time := m.scene.Timestamp()

	if !paused {
		playerRegion := strings.ToLower(m.scene.PlayerRegion())
		if m.updateWeatherTime() || m.updateWeatherRegion(playerRegion) {
			if region, ok := m.regions[m.currentRegion]; ok {
				m.addWeatherTransition(region.GetWeather(m.dice))
			}
		}
		m.updateWeatherTransitions(elapsedSeconds)
	}

	if !m.scene.IsExterior() {
		m.skyEnabled = false
		m.StopSounds()
		return
	}
	m.skyEnabled = true

	m.calculateWeatherResult(time.Hour, elapsedSeconds, paused)

	m.windSpeed = m.result.WindSpeed
	m.isStorm = m.result.IsStorm

	if m.isStorm {
		direction := m.scene.PlayerPosition().Sub(m.stormOrigin)
		direction.Z = 0
		m.stormDirection = direction.Normalized()
	}

	// The sun is level with the horizon at the sunrise time and at the
	// start of night; it is disabled in between.
	m.sunEnabled = !(time.Hour >= m.timeSettings.NightStart || time.Hour <= m.sunriseTime)
	m.sunDirection = m.calculateSunDirection(time.Hour)
	m.glareFade = m.calculateGlareFade(time.Hour)

	m.underwaterFogDepth = float64(m.underwaterFog.At(time.Hour, m.timeSettings))

	m.primaryMoonState = m.moonPrimary.CalculateState(time)
	m.secondaryMoonState = m.moonSecondary.CalculateState(time)

	m.updateAmbientLoop()
}

// calculateSunDirection runs the sun east to west at a fixed tilt. Day and
// night sweeps may run at different speeds, since the sunrise time and
// night start mark where the sun crosses the horizon.
func (m *WeatherManager) calculateSunDirection(gameHour float64) Vec3 {
	adjustedHour := gameHour
	adjustedNightStart := m.timeSettings.NightStart
	if gameHour < m.sunriseTime {
		adjustedHour += 24
	}
	if m.timeSettings.NightStart < m.sunriseTime {
		adjustedNightStart += 24
	}

	isNight := adjustedHour >= adjustedNightStart
	dayDuration := adjustedNightStart - m.sunriseTime
	nightDuration := 24 - dayDuration

	var theta float64
	if !isNight {
		theta = math.Pi * (adjustedHour - m.sunriseTime) / dayDuration
	} else {
		theta = math.Pi * (adjustedHour - adjustedNightStart) / nightDuration
	}

	direction := Vec3{
		X: math.Cos(theta),
		Y: -0.268, // approx tan(-15 degrees)
		Z: math.Sin(theta),
	}
	return direction.Scale(-1)
}

// calculateGlareFade ramps the sun glare up to full strength midway between
// sunrise and sunset and back down again, zero outside daylight.
func (m *WeatherManager) calculateGlareFade(gameHour float64) float64 {
	peakHour := m.sunriseTime + (m.sunsetTime-m.sunriseTime)/2
	switch {
	case gameHour < m.sunriseTime || gameHour > m.sunsetTime:
		return 0
	case gameHour < peakHour:
		return 1 - (peakHour-gameHour)/(peakHour-m.sunriseTime)
	default:
		return 1 - (gameHour-peakHour)/(m.sunsetTime-peakHour)
	}
}

func (m *WeatherManager) updateAmbientLoop() {
	if m.playingLoopID != m.result.AmbientLoopSoundID {
		m.StopSounds()
		if m.result.AmbientLoopSoundID != "" {
			m.sounds.PlayLoop(m.result.AmbientLoopSoundID, 1)
			m.loopActive = true
		}
		m.playingLoopID = m.result.AmbientLoopSoundID
	}
	if m.loopActive {
		m.sounds.SetLoopVolume(m.result.AmbientSoundVolume)
	}
}

// StopSounds halts the ambient weather loop if one is playing.
func (m *WeatherManager) StopSounds() {
	if m.loopActive {
		m.sounds.StopLoop()
		m.loopActive = false
		m.playingLoopID = ""
	}
}

// AdvanceTime accumulates skipped game time. Bulk skips (sleeping, travel,
// training) also set the fast-forward flag so in-progress transitions snap
// to their end state on the next update.
func (m *WeatherManager) AdvanceTime(hours float64, incremental bool) {
	m.timePassed += hours
	if !incremental {
		m.fastForward = true
	}
}

// CurrentWeather returns the weather type currently shown (the "from" side
// while transitioning).
func (m *WeatherManager) CurrentWeather() WeatherID {
	return m.currentWeather
}

// NextWeather returns the transition target, or WeatherNone when stable.
func (m *WeatherManager) NextWeather() WeatherID {
	return m.nextWeather
}

// QueuedWeather returns the pending transition, or WeatherNone.
func (m *WeatherManager) QueuedWeather() WeatherID {
	return m.queuedWeather
}

// TransitionFactor reports progress remaining toward the next weather:
// 1 just started, 0 fully transitioned.
func (m *WeatherManager) TransitionFactor() float64 {
	return m.transitionFactor
}

func (m *WeatherManager) WindSpeed() float64          { return m.windSpeed }
func (m *WeatherManager) InStorm() bool               { return m.isStorm }
func (m *WeatherManager) StormDirection() Vec3        { return m.stormDirection }
func (m *WeatherManager) SkyEnabled() bool            { return m.skyEnabled }
func (m *WeatherManager) SunEnabled() bool            { return m.sunEnabled }
func (m *WeatherManager) SunDirection() Vec3          { return m.sunDirection }
func (m *WeatherManager) GlareFade() float64          { return m.glareFade }
func (m *WeatherManager) Result() WeatherResult       { return m.result }
func (m *WeatherManager) UnderwaterFogDepth() float64 { return m.underwaterFogDepth }

// MoonStates returns the primary and secondary moon states for the last
// computed frame.
func (m *WeatherManager) MoonStates() (MoonState, MoonState) {
	return m.primaryMoonState, m.secondaryMoonState
}

// IsDark reports whether an exterior scene is outside the daylight window.
func (m *WeatherManager) IsDark() bool {
	if !m.scene.IsExterior() {
		return false
	}
	hour := m.scene.Timestamp().Hour
	return hour < m.sunriseTime || hour > m.timeSettings.NightStart-1
}

// Clear resets the session to its initial state: fresh region imports,
// Clear weather, timers zeroed.
func (m *WeatherManager) Clear() {
	m.StopSounds()
	m.currentRegion = ""
	m.timePassed = 0
	m.weatherUpdateTime = 0
	m.forceWeather(WeatherClear)
	m.regions = make(map[string]*RegionWeather)
	m.importRegions()
}

func (m *WeatherManager) regionalWeatherChanged(regionID string, region *RegionWeather) {
	playerRegion := strings.ToLower(m.scene.PlayerRegion())
	if playerRegion != "" && playerRegion == regionID {
		m.addWeatherTransition(region.GetWeather(m.dice))
	}
}

// updateWeatherTime drains the accumulated game time into the update timer.
// When the timer expires, every region's selection is expired so the next
// read draws fresh, and the timer rearms.
func (m *WeatherManager) updateWeatherTime() bool {
	m.weatherUpdateTime -= m.timePassed
	m.timePassed = 0
	if m.weatherUpdateTime <= 0 {
		for _, region := range m.regions {
			region.SetWeather(WeatherNone)
		}
		m.weatherUpdateTime += m.hoursBetweenWeatherChanges
		return true
	}
	return false
}

func (m *WeatherManager) updateWeatherRegion(playerRegion string) bool {
	if playerRegion != "" && playerRegion != m.currentRegion {
		m.currentRegion = playerRegion
		return true
	}
	return false
}

// updateWeatherTransitions drives the transition state machine. Fast
// forwarding (or an already-stable machine) snaps straight to the queued
// weather if set, else the next; a completed transition promotes the queued
// weather and carries the overshoot time into the new transition's factor.
func (m *WeatherManager) updateWeatherTransitions(elapsedRealSeconds float64) {
	if !m.fastForward && m.inTransition() {
		delta := m.weathers[m.nextWeather].TransitionDelta()
		m.transitionFactor -= elapsedRealSeconds * delta
		if m.transitionFactor <= 0 {
			m.currentWeather = m.nextWeather
			m.nextWeather = m.queuedWeather
			m.queuedWeather = WeatherNone

			if m.inTransition() {
				newDelta := m.weathers[m.nextWeather].TransitionDelta()
				remainingSeconds := -(m.transitionFactor / delta)
				m.transitionFactor = 1 - remainingSeconds*newDelta
			} else {
				m.transitionFactor = 0
			}
		}
		return
	}

	if m.queuedWeather.IsValid() {
		m.currentWeather = m.queuedWeather
	} else if m.nextWeather.IsValid() {
		m.currentWeather = m.nextWeather
	}
	m.nextWeather = WeatherNone
	m.queuedWeather = WeatherNone
	m.fastForward = false
}

func (m *WeatherManager) forceWeather(weatherID WeatherID) {
	m.transitionFactor = 0
	m.currentWeather = weatherID
	m.nextWeather = WeatherNone
	m.queuedWeather = WeatherNone
}

func (m *WeatherManager) inTransition() bool {
	return m.nextWeather.IsValid()
}

// addWeatherTransition begins transitioning to weatherID immediately when
// stable, otherwise queues it (last write wins on the queued slot).
func (m *WeatherManager) addWeatherTransition(weatherID WeatherID) {
	if !m.knownWeather(weatherID) {
		return
	}

	if !m.inTransition() && weatherID != m.currentWeather {
		m.nextWeather = weatherID
		m.transitionFactor = 1
	} else if m.inTransition() && weatherID != m.nextWeather {
		m.queuedWeather = weatherID
	}
}

// calculateWeatherResult fills the per-frame result and adds the thunder
// flashes from both sides of a transition as a flat additive tint.
func (m *WeatherManager) calculateWeatherResult(gameHour, elapsedSeconds float64, isPaused bool) {
	flash := 0.0
	if !m.inTransition() {
		m.calculateResult(m.currentWeather, gameHour)
		flash = m.weathers[m.currentWeather].CalculateThunder(
			&m.flashes[m.currentWeather], 1, elapsedSeconds, isPaused, m.dice, m.sounds)
	} else {
		m.calculateTransitionResult(1-m.transitionFactor, gameHour)
		currentFlash := m.weathers[m.currentWeather].CalculateThunder(
			&m.flashes[m.currentWeather], m.transitionFactor, elapsedSeconds, isPaused, m.dice, m.sounds)
		nextFlash := m.weathers[m.nextWeather].CalculateThunder(
			&m.flashes[m.nextWeather], 1-m.transitionFactor, elapsedSeconds, isPaused, m.dice, m.sounds)
		flash = currentFlash + nextFlash
	}

	flashColor := Color{R: flash, G: flash, B: flash}
	m.result.FogColor = m.result.FogColor.Add(flashColor)
	m.result.AmbientColor = m.result.AmbientColor.Add(flashColor)
	m.result.SunColor = m.result.SunColor.Add(flashColor)
}

// calculateResult computes one weather's interpolated values at gameHour.
func (m *WeatherManager) calculateResult(weatherID WeatherID, gameHour float64) {
	current := &m.weathers[weatherID]

	m.result.CloudTexture = current.CloudTexture
	m.result.NextCloudTexture = ""
	m.result.CloudBlendFactor = 0
	m.result.WindSpeed = current.WindSpeed
	m.result.CloudSpeed = current.CloudSpeed
	m.result.GlareView = current.GlareView
	m.result.AmbientLoopSoundID = current.AmbientLoopSoundID
	m.result.AmbientSoundVolume = 1
	m.result.EffectFade = 1

	m.result.IsStorm = current.IsStorm

	m.result.RainSpeed = current.RainSpeed
	m.result.RainFrequency = current.RainFrequency

	m.result.ParticleEffect = current.ParticleEffect
	m.result.RainEffect = current.RainEffect

	m.result.Night = gameHour < m.sunriseTime || gameHour > m.timeSettings.NightStart-1

	m.result.FogDepth = float64(current.LandFogDepth.At(gameHour, m.timeSettings))
	m.result.FogColor = current.FogColor.At(gameHour, m.timeSettings)
	m.result.AmbientColor = current.AmbientColor.At(gameHour, m.timeSettings)
	m.result.SunColor = current.SunColor.At(gameHour, m.timeSettings)
	m.result.SkyColor = current.SkyColor.At(gameHour, m.timeSettings)
	m.result.NightFade = float64(m.nightFade.At(gameHour, m.timeSettings))

	m.result.SunDiscColor = m.calculateSunDiscColor(current, gameHour)
}

// calculateSunDiscColor tints the sun disc toward the configured sunset
// color as sunset approaches, folds the ambient term in the way the classic
// fixed pipeline did (then clamps per channel), and fades the disc out
// after sunset and in after sunrise.
func (m *WeatherManager) calculateSunDiscColor(current *Weather, gameHour float64) Color {
	white := Color{R: 1, G: 1, B: 1, A: 1}
	disc := white

	if gameHour >= m.sunsetTime-m.sunPreSunsetTime {
		factor := (gameHour - (m.sunsetTime - m.sunPreSunsetTime)) / m.sunPreSunsetTime
		factor = math.Min(1, factor)
		disc = white.Blend(current.SunDiscSunsetColor, factor)
		ambient := m.result.AmbientColor
		disc = Color{
			R: math.Min(1, disc.R+disc.R*ambient.R),
			G: math.Min(1, disc.G+disc.G*ambient.G),
			B: math.Min(1, disc.B+disc.B*ambient.B),
			A: disc.A,
		}
	}

	switch {
	case gameHour >= m.sunsetTime:
		fade := math.Min(1, (gameHour-m.sunsetTime)/2)
		disc.A = 1 - fade*fade
	case gameHour >= m.sunriseTime && gameHour <= m.sunriseTime+1:
		disc.A = gameHour - m.sunriseTime
	default:
		disc.A = 1
	}

	return disc
}

// calculateTransitionResult blends the outgoing and incoming weathers.
// Continuous fields lerp by factor; categorical fields switch sides at the
// midpoint, with the ambient volume and effect fade ramping the old side
// out across the first half and the new side in across the second.
func (m *WeatherManager) calculateTransitionResult(factor, gameHour float64) {
	m.calculateResult(m.currentWeather, gameHour)
	current := m.result
	m.calculateResult(m.nextWeather, gameHour)
	other := m.result

	m.result.CloudTexture = current.CloudTexture
	m.result.NextCloudTexture = other.CloudTexture
	m.result.CloudBlendFactor = m.weathers[m.nextWeather].CloudBlendFactor(factor)

	m.result.FogColor = current.FogColor.Blend(other.FogColor, factor)
	m.result.SunColor = current.SunColor.Blend(other.SunColor, factor)
	m.result.SkyColor = current.SkyColor.Blend(other.SkyColor, factor)

	m.result.AmbientColor = current.AmbientColor.Blend(other.AmbientColor, factor)
	m.result.SunDiscColor = current.SunDiscColor.Blend(other.SunDiscColor, factor)
	m.result.NightFade = lerp(current.NightFade, other.NightFade, factor)
	m.result.FogDepth = lerp(current.FogDepth, other.FogDepth, factor)
	m.result.WindSpeed = lerp(current.WindSpeed, other.WindSpeed, factor)
	m.result.CloudSpeed = lerp(current.CloudSpeed, other.CloudSpeed, factor)
	m.result.GlareView = lerp(current.GlareView, other.GlareView, factor)

	m.result.Night = current.Night

	if factor < 0.5 {
		m.result.IsStorm = current.IsStorm
		m.result.ParticleEffect = current.ParticleEffect
		m.result.RainEffect = current.RainEffect
		m.result.RainSpeed = current.RainSpeed
		m.result.RainFrequency = current.RainFrequency
		m.result.AmbientSoundVolume = 1 - factor*2
		m.result.EffectFade = m.result.AmbientSoundVolume
		m.result.AmbientLoopSoundID = current.AmbientLoopSoundID
	} else {
		m.result.IsStorm = other.IsStorm
		m.result.ParticleEffect = other.ParticleEffect
		m.result.RainEffect = other.RainEffect
		m.result.RainSpeed = other.RainSpeed
		m.result.RainFrequency = other.RainFrequency
		m.result.AmbientSoundVolume = 2 * (factor - 0.5)
		m.result.EffectFade = m.result.AmbientSoundVolume
		m.result.AmbientLoopSoundID = other.AmbientLoopSoundID
	}
}

func lerp(x, y, factor float64) float64 {
	return x*(1-factor) + y*factor
}
