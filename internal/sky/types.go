package sky

import "math"

// WeatherID indexes the fixed weather-type list. WeatherNone means
// "no selection"; regional selections carrying it are recomputed lazily.
type WeatherID int

const WeatherNone WeatherID = -1

func (id WeatherID) IsValid() bool { return id >= 0 }

// The ten weather types, in chance-table order.
const (
	WeatherClear WeatherID = iota
	WeatherCloudy
	WeatherFoggy
	WeatherOvercast
	WeatherRain
	WeatherThunderstorm
	WeatherAshstorm
	WeatherBlight
	WeatherSnow
	WeatherBlizzard

	WeatherTypeCount = 10
)

var weatherNames = [WeatherTypeCount]string{
	"Clear", "Cloudy", "Foggy", "Overcast", "Rain",
	"Thunderstorm", "Ashstorm", "Blight", "Snow", "Blizzard",
}

// WeatherNames returns the canonical type names in id order.
func WeatherNames() []string {
	names := make([]string, WeatherTypeCount)
	copy(names, weatherNames[:])
	return names
}

func (id WeatherID) String() string {
	if id < 0 || int(id) >= len(weatherNames) {
		return "None"
	}
	return weatherNames[id]
}

// Timestamp is the in-game time: whole days passed plus the fractional
// hour of the current day in [0, 24).
type Timestamp struct {
	Day  int     `json:"day"`
	Hour float64 `json:"hour"`
}

// Vec3 is a world-space vector, used for the player position and the
// derived sun/storm directions.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Normalized() Vec3 {
	length := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if length < rampEpsilon {
		return Vec3{}
	}
	return v.Scale(1 / length)
}

// Scene supplies the world state the weather simulation reads each tick.
type Scene interface {
	Timestamp() Timestamp
	PlayerRegion() string
	IsExterior() bool
	PlayerPosition() Vec3
}

// SoundSink receives the sound commands the simulation emits: one-shot
// thunder claps and the looping ambient weather bed.
type SoundSink interface {
	Play(id string, volume, pitch float64)
	PlayLoop(id string, volume float64)
	SetLoopVolume(volume float64)
	StopLoop()
}

// Fallback supplies the static per-weather and per-moon configuration
// values, keyed the classic "Weather_<name>_<attribute>" way. Missing keys
// yield zero values.
type Fallback interface {
	Float(key string) float64
	Bool(key string) bool
	String(key string) string
	Color(key string) Color
}

// Dice is the uniform random source the simulation draws from. RollDice
// returns an integer in [0, max); RollProbability a float in [0, 1).
type Dice interface {
	RollDice(max int) int
	RollProbability() float64
}
