package sky

// WeatherResult is the per-frame bundle handed to rendering and audio. It
// carries either a single weather's interpolated values or the blend of the
// outgoing and incoming weathers mid-transition.
type WeatherResult struct {
	CloudTexture     string  `json:"cloud_texture"`
	NextCloudTexture string  `json:"next_cloud_texture,omitempty"`
	CloudBlendFactor float64 `json:"cloud_blend_factor"`

	FogColor     Color `json:"fog_color"`
	AmbientColor Color `json:"ambient_color"`
	SkyColor     Color `json:"sky_color"`
	SunColor     Color `json:"sun_color"`
	SunDiscColor Color `json:"sun_disc_color"`

	// NightFade is the alpha of the night-sky overlay, 0 in daylight and 1
	// deep into the night.
	NightFade float64 `json:"night_fade"`

	FogDepth   float64 `json:"fog_depth"`
	WindSpeed  float64 `json:"wind_speed"`
	CloudSpeed float64 `json:"cloud_speed"`
	GlareView  float64 `json:"glare_view"`

	AmbientLoopSoundID string  `json:"ambient_loop_sound_id,omitempty"`
	AmbientSoundVolume float64 `json:"ambient_sound_volume"`
	EffectFade         float64 `json:"effect_fade"`

	IsStorm bool `json:"is_storm"`
	Night   bool `json:"night"`

	RainSpeed     float64 `json:"rain_speed"`
	RainFrequency float64 `json:"rain_frequency"`

	ParticleEffect string `json:"particle_effect,omitempty"`
	RainEffect     string `json:"rain_effect,omitempty"`
}
