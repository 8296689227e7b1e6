package fallback

import "fmt"

// weatherSpec is the compact per-weather default set; buildDefaults expands
// it into the flat key space the Table serves. Color groups are ordered
// sunrise, day, sunset, night as "r,g,b" byte triples.
type weatherSpec struct {
	name         string
	cloudTexture string

	sky     [4]string
	fog     [4]string
	ambient [4]string
	sun     [4]string

	landFogDayDepth   float64
	landFogNightDepth float64
	sunDiscSunset     string

	windSpeed  float64
	cloudSpeed float64
	glareView  float64

	rainEntranceSpeed float64
	usingPrecip       bool
	ambientLoop       string
	rainLoop          string

	transitionDelta float64
	cloudsMaxPct    float64

	thunderFrequency float64
	thunderThreshold float64
	flashDecrement   float64
	thunderSounds    [4]string
}

var weatherDefaults = []weatherSpec{
	{
		name:         "Clear",
		cloudTexture: "clear",
		sky:          [4]string{"118,141,164", "95,135,203", "56,89,129", "9,10,11"},
		fog:          [4]string{"255,189,157", "206,227,255", "255,189,157", "9,10,11"},
		ambient:      [4]string{"47,66,96", "137,140,160", "68,75,96", "32,35,42"},
		sun:          [4]string{"242,159,99", "255,252,238", "255,115,79", "59,97,176"},
		landFogDayDepth:   0.7,
		landFogNightDepth: 0.9,
		sunDiscSunset:     "255,189,157",
		windSpeed:         0.1,
		cloudSpeed:        1.25,
		glareView:         1,
		transitionDelta:   0.015,
		cloudsMaxPct:      1,
	},
	{
		name:         "Cloudy",
		cloudTexture: "cloudy",
		sky:          [4]string{"126,158,173", "117,160,215", "111,114,159", "9,10,11"},
		fog:          [4]string{"255,207,149", "245,235,224", "252,155,116", "9,10,11"},
		ambient:      [4]string{"66,74,87", "137,145,160", "71,80,92", "32,39,54"},
		sun:          [4]string{"241,177,99", "255,236,221", "255,89,0", "77,91,124"},
		landFogDayDepth:   0.8,
		landFogNightDepth: 1,
		sunDiscSunset:     "255,189,157",
		windSpeed:         0.2,
		cloudSpeed:        2,
		glareView:         1,
		transitionDelta:   0.015,
		cloudsMaxPct:      1,
	},
	{
		name:         "Foggy",
		cloudTexture: "foggy",
		sky:          [4]string{"197,190,180", "184,211,228", "142,159,176", "18,23,28"},
		fog:          [4]string{"173,164,148", "150,187,209", "113,135,157", "19,24,29"},
		ambient:      [4]string{"48,43,37", "92,101,109", "28,33,39", "28,33,39"},
		sun:          [4]string{"177,162,137", "111,131,151", "125,157,189", "81,100,119"},
		landFogDayDepth:   1.09,
		landFogNightDepth: 1.19,
		sunDiscSunset:     "128,128,128",
		windSpeed:         0,
		cloudSpeed:        1.25,
		glareView:         0.25,
		transitionDelta:   0.015,
		cloudsMaxPct:      1,
	},
	{
		name:         "Overcast",
		cloudTexture: "overcast",
		sky:          [4]string{"91,99,106", "143,146,149", "108,115,121", "19,22,25"},
		fog:          [4]string{"91,99,106", "143,146,149", "108,115,121", "19,22,25"},
		ambient:      [4]string{"84,88,92", "93,96,105", "83,77,75", "57,60,66"},
		sun:          [4]string{"87,125,163", "163,169,183", "85,103,157", "32,54,100"},
		landFogDayDepth:   0.7,
		landFogNightDepth: 0.7,
		sunDiscSunset:     "128,128,128",
		windSpeed:         0.2,
		cloudSpeed:        1.5,
		glareView:         0,
		transitionDelta:   0.015,
		cloudsMaxPct:      1,
	},
	{
		name:         "Rain",
		cloudTexture: "rainy",
		sky:          [4]string{"71,74,75", "116,120,122", "73,73,73", "24,25,26"},
		fog:          [4]string{"71,74,75", "116,120,122", "73,73,73", "24,25,26"},
		ambient:      [4]string{"97,90,88", "105,110,113", "88,97,97", "50,55,67"},
		sun:          [4]string{"131,122,120", "149,157,170", "120,126,131", "50,62,101"},
		landFogDayDepth:   0.8,
		landFogNightDepth: 0.8,
		sunDiscSunset:     "128,128,128",
		windSpeed:         0.3,
		cloudSpeed:        2,
		glareView:         0,
		rainEntranceSpeed: 7,
		usingPrecip:       true,
		rainLoop:          "rain",
		transitionDelta:   0.015,
		cloudsMaxPct:      0.66,
	},
	{
		name:         "Thunderstorm",
		cloudTexture: "thunder",
		sky:          [4]string{"35,36,39", "97,104,115", "35,36,39", "19,20,22"},
		fog:          [4]string{"70,74,85", "97,104,115", "70,74,85", "19,20,22"},
		ambient:      [4]string{"54,54,54", "90,90,90", "54,54,54", "49,51,54"},
		sun:          [4]string{"91,99,122", "138,144,155", "96,101,117", "55,76,110"},
		landFogDayDepth:   1,
		landFogNightDepth: 1.15,
		sunDiscSunset:     "128,128,128",
		windSpeed:         0.5,
		cloudSpeed:        3,
		glareView:         0,
		rainEntranceSpeed: 5,
		usingPrecip:       true,
		rainLoop:          "rain heavy",
		transitionDelta:   0.03,
		cloudsMaxPct:      0.66,
		thunderFrequency:  0.4,
		thunderThreshold:  0.6,
		flashDecrement:    4,
		thunderSounds:     [4]string{"Thunder0", "Thunder1", "Thunder2", "Thunder3"},
	},
	{
		name:         "Ashstorm",
		cloudTexture: "ashstorm",
		sky:          [4]string{"91,56,51", "124,73,58", "106,55,40", "20,21,22"},
		fog:          [4]string{"91,56,51", "124,73,58", "106,55,40", "20,21,22"},
		ambient:      [4]string{"52,42,37", "75,49,41", "44,40,25", "36,42,49"},
		sun:          [4]string{"184,91,71", "228,139,114", "185,86,57", "54,66,74"},
		landFogDayDepth:   1.1,
		landFogNightDepth: 1.2,
		sunDiscSunset:     "128,128,128",
		windSpeed:         0.8,
		cloudSpeed:        7,
		glareView:         0,
		ambientLoop:       "ashstorm",
		transitionDelta:   0.035,
		cloudsMaxPct:      1,
	},
	{
		name:         "Blight",
		cloudTexture: "blight",
		sky:          [4]string{"90,35,35", "90,35,35", "92,33,33", "44,14,14"},
		fog:          [4]string{"90,35,35", "90,35,35", "92,33,33", "44,14,14"},
		ambient:      [4]string{"61,40,40", "79,54,54", "61,40,40", "56,58,62"},
		sun:          [4]string{"180,78,78", "180,78,78", "180,78,78", "61,91,143"},
		landFogDayDepth:   1.1,
		landFogNightDepth: 1.2,
		sunDiscSunset:     "128,128,128",
		windSpeed:         0.9,
		cloudSpeed:        9,
		glareView:         0,
		ambientLoop:       "blight",
		transitionDelta:   0.04,
		cloudsMaxPct:      1,
	},
	{
		name:         "Snow",
		cloudTexture: "snow",
		sky:          [4]string{"196,91,91", "153,158,166", "96,115,134", "31,35,39"},
		fog:          [4]string{"106,91,91", "153,158,166", "96,115,134", "31,35,39"},
		ambient:      [4]string{"92,84,84", "93,96,105", "83,77,75", "57,60,66"},
		sun:          [4]string{"127,127,127", "163,169,183", "106,114,136", "35,50,96"},
		landFogDayDepth:   1.1,
		landFogNightDepth: 1.2,
		sunDiscSunset:     "128,128,128",
		windSpeed:         0,
		cloudSpeed:        1.5,
		glareView:         0,
		transitionDelta:   0.014,
		cloudsMaxPct:      1,
	},
	{
		name:         "Blizzard",
		cloudTexture: "blizzard",
		sky:          [4]string{"91,99,106", "121,133,145", "108,115,121", "27,29,31"},
		fog:          [4]string{"91,99,106", "121,133,145", "108,115,121", "27,29,31"},
		ambient:      [4]string{"84,88,92", "93,96,105", "83,77,75", "57,60,66"},
		sun:          [4]string{"114,128,146", "163,169,183", "106,114,136", "35,50,96"},
		landFogDayDepth:   2.8,
		landFogNightDepth: 3,
		sunDiscSunset:     "128,128,128",
		windSpeed:         0.9,
		cloudSpeed:        7.5,
		glareView:         0,
		ambientLoop:       "blizzard",
		transitionDelta:   0.03,
		cloudsMaxPct:      1,
	},
}

var defaultValues = buildDefaults()

func buildDefaults() map[string]string {
	values := map[string]string{
		"Weather_Sunrise_Time":                  "6",
		"Weather_Sunset_Time":                   "18",
		"Weather_Sunrise_Duration":              "2",
		"Weather_Sunset_Duration":               "2",
		"Weather_Sun_Pre-Sunset_Time":           "1.5",
		"Weather_Hours_Between_Weather_Changes": "20",
		"Weather_Precip_Gravity":                "575",

		"Water_UnderwaterSunriseFog": "3",
		"Water_UnderwaterDayFog":     "2.5",
		"Water_UnderwaterSunsetFog":  "3",
		"Water_UnderwaterNightFog":   "4",

		"Moons_Primary_Fade_In_Start":                "14",
		"Moons_Primary_Fade_In_Finish":               "15",
		"Moons_Primary_Fade_Out_Start":               "7",
		"Moons_Primary_Fade_Out_Finish":              "10",
		"Moons_Primary_Axis_Offset":                  "35",
		"Moons_Primary_Speed":                        "0.5",
		"Moons_Primary_Daily_Increment":              "1",
		"Moons_Primary_Fade_Start_Angle":             "50",
		"Moons_Primary_Fade_End_Angle":               "40",
		"Moons_Primary_Moon_Shadow_Early_Fade_Angle": "0.5",

		"Moons_Secondary_Fade_In_Start":                "14",
		"Moons_Secondary_Fade_In_Finish":               "15",
		"Moons_Secondary_Fade_Out_Start":               "7",
		"Moons_Secondary_Fade_Out_Finish":              "10",
		"Moons_Secondary_Axis_Offset":                  "50",
		"Moons_Secondary_Speed":                        "0.6",
		"Moons_Secondary_Daily_Increment":              "1.2",
		"Moons_Secondary_Fade_Start_Angle":             "50",
		"Moons_Secondary_Fade_End_Angle":               "30",
		"Moons_Secondary_Moon_Shadow_Early_Fade_Angle": "0.5",
	}

	phases := [4]string{"Sunrise", "Day", "Sunset", "Night"}
	for _, w := range weatherDefaults {
		key := func(attribute string) string { return "Weather_" + w.name + "_" + attribute }

		values[key("Cloud_Texture")] = w.cloudTexture
		for i, phase := range phases {
			values[key("Sky_"+phase+"_Color")] = w.sky[i]
			values[key("Fog_"+phase+"_Color")] = w.fog[i]
			values[key("Ambient_"+phase+"_Color")] = w.ambient[i]
			values[key("Sun_"+phase+"_Color")] = w.sun[i]
		}
		values[key("Land_Fog_Day_Depth")] = fmt.Sprintf("%g", w.landFogDayDepth)
		values[key("Land_Fog_Night_Depth")] = fmt.Sprintf("%g", w.landFogNightDepth)
		values[key("Sun_Disc_Sunset_Color")] = w.sunDiscSunset
		values[key("Wind_Speed")] = fmt.Sprintf("%g", w.windSpeed)
		values[key("Cloud_Speed")] = fmt.Sprintf("%g", w.cloudSpeed)
		values[key("Glare_View")] = fmt.Sprintf("%g", w.glareView)
		values[key("Rain_Entrance_Speed")] = fmt.Sprintf("%g", w.rainEntranceSpeed)
		values[key("Transition_Delta")] = fmt.Sprintf("%g", w.transitionDelta)
		values[key("Clouds_Maximum_Percent")] = fmt.Sprintf("%g", w.cloudsMaxPct)
		if w.usingPrecip {
			values[key("Using_Precip")] = "1"
		}
		if w.ambientLoop != "" {
			values[key("Ambient_Loop_Sound_ID")] = w.ambientLoop
		}
		if w.rainLoop != "" {
			values[key("Rain_Loop_Sound_ID")] = w.rainLoop
		}
		if w.thunderFrequency > 0 {
			values[key("Thunder_Frequency")] = fmt.Sprintf("%g", w.thunderFrequency)
			values[key("Thunder_Threshold")] = fmt.Sprintf("%g", w.thunderThreshold)
			values[key("Flash_Decrement")] = fmt.Sprintf("%g", w.flashDecrement)
			for i, id := range w.thunderSounds {
				values[key(fmt.Sprintf("Thunder_Sound_ID_%d", i))] = id
			}
		}
	}

	return values
}
