package sky

import "fmt"

// fbMap is a minimal in-package Fallback for tests.
type fbMap map[string]string

func (f fbMap) String(key string) string { return f[key] }

func (f fbMap) Bool(key string) bool { return f[key] == "1" }

func (f fbMap) Float(key string) float64 {
	var v float64
	fmt.Sscanf(f[key], "%g", &v)
	return v
}

func (f fbMap) Color(key string) Color {
	var r, g, b float64
	fmt.Sscanf(f[key], "%g,%g,%g", &r, &g, &b)
	return Color{R: r / 255, G: g / 255, B: b / 255, A: 1}
}

// testFallback builds a fallback table with uniform, easy-to-reason-about
// values for all ten weather types.
func testFallback() fbMap {
	fb := fbMap{
		"Weather_Sunrise_Time":                  "6",
		"Weather_Sunset_Time":                   "18",
		"Weather_Sunrise_Duration":              "2",
		"Weather_Sunset_Duration":               "2",
		"Weather_Sun_Pre-Sunset_Time":           "1.5",
		"Weather_Hours_Between_Weather_Changes": "20",
		"Weather_Precip_Gravity":                "575",
	}
	for _, name := range WeatherNames() {
		key := func(attr string) string { return "Weather_" + name + "_" + attr }
		fb[key("Transition_Delta")] = "0.05"
		fb[key("Clouds_Maximum_Percent")] = "1"
		fb[key("Wind_Speed")] = "0.1"
		fb[key("Cloud_Speed")] = "1.5"
		fb[key("Glare_View")] = "1"
		fb[key("Land_Fog_Day_Depth")] = "0.7"
		fb[key("Land_Fog_Night_Depth")] = "0.9"
	}
	fb["Weather_Ashstorm_Wind_Speed"] = "0.8"
	fb["Weather_Rain_Using_Precip"] = "1"
	fb["Weather_Thunderstorm_Using_Precip"] = "1"
	fb["Weather_Thunderstorm_Thunder_Frequency"] = "1"
	fb["Weather_Thunderstorm_Thunder_Threshold"] = "0.5"
	fb["Weather_Thunderstorm_Flash_Decrement"] = "4"
	for i := 0; i < 4; i++ {
		fb[fmt.Sprintf("Weather_Thunderstorm_Thunder_Sound_ID_%d", i)] = fmt.Sprintf("thunder%d", i)
	}
	fb["Weather_Clear_Ambient_Loop_Sound_ID"] = ""
	fb["Weather_Ashstorm_Ambient_Loop_Sound_ID"] = "ashstorm"
	return fb
}

// scriptedDice replays canned rolls; exhausted scripts repeat their last
// entry so tests don't have to count every internal draw.
type scriptedDice struct {
	rolls []int
	probs []float64
}

func (d *scriptedDice) RollDice(max int) int {
	if len(d.rolls) == 0 {
		return 0
	}
	v := d.rolls[0]
	if len(d.rolls) > 1 {
		d.rolls = d.rolls[1:]
	}
	if v >= max {
		v = max - 1
	}
	return v
}

func (d *scriptedDice) RollProbability() float64 {
	if len(d.probs) == 0 {
		return 1
	}
	v := d.probs[0]
	if len(d.probs) > 1 {
		d.probs = d.probs[1:]
	}
	return v
}

// fakeScene is a scriptable Scene.
type fakeScene struct {
	day      int
	hour     float64
	region   string
	exterior bool
	position Vec3
}

func (s *fakeScene) Timestamp() Timestamp { return Timestamp{Day: s.day, Hour: s.hour} }
func (s *fakeScene) PlayerRegion() string { return s.region }
func (s *fakeScene) IsExterior() bool     { return s.exterior }
func (s *fakeScene) PlayerPosition() Vec3 { return s.position }

// recordingSink captures sound commands.
type recordingSink struct {
	plays  []string
	loopID string
	volume float64
	stops  int
}

func (r *recordingSink) Play(id string, volume, pitch float64) { r.plays = append(r.plays, id) }
func (r *recordingSink) PlayLoop(id string, volume float64)    { r.loopID = id; r.volume = volume }
func (r *recordingSink) SetLoopVolume(volume float64)          { r.volume = volume }
func (r *recordingSink) StopLoop()                             { r.loopID = ""; r.stops++ }

func testRegions() []RegionDefinition {
	return []RegionDefinition{
		{ID: "Grasslands", Chances: []int{40, 30, 10, 10, 10, 0, 0, 0, 0, 0}},
		{ID: "Ashlands", Chances: []int{25, 20, 0, 10, 0, 0, 35, 10, 0, 0}},
	}
}

func newTestManager(scene *fakeScene, sink *recordingSink, dice Dice) *WeatherManager {
	return NewWeatherManager(scene, sink, dice, testFallback(), testRegions(), DefaultConfig())
}
