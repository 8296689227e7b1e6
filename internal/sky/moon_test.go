package sky

import (
	"math"
	"testing"
)

func moonFB(overrides map[string]string) fbMap {
	fb := fbMap{
		"Moons_Test_Fade_In_Start":                "14",
		"Moons_Test_Fade_In_Finish":               "15",
		"Moons_Test_Fade_Out_Start":               "7",
		"Moons_Test_Fade_Out_Finish":              "10",
		"Moons_Test_Axis_Offset":                  "35",
		"Moons_Test_Speed":                        "1",
		"Moons_Test_Daily_Increment":              "0",
		"Moons_Test_Fade_Start_Angle":             "50",
		"Moons_Test_Fade_End_Angle":               "40",
		"Moons_Test_Moon_Shadow_Early_Fade_Angle": "0.5",
	}
	for k, v := range overrides {
		fb[k] = v
	}
	return fb
}

func TestMoonSpeedIsClamped(t *testing.T) {
	// With a daily increment of 0 the moon rises at hour 0 every day, so
	// the angle after one hour is just the hourly rotation. A configured
	// speed of 20 rotations/day must be capped at 180/23.
	moon := NewMoonModel("Test", moonFB(map[string]string{"Moons_Test_Speed": "20"}))
	angle := moon.CalculateState(Timestamp{Day: 5, Hour: 1}).Rotation
	want := 15 * (180.0 / 23.0)
	if math.Abs(angle-want) > 1e-6 {
		t.Fatalf("angle after 1h: got %.4f, want clamped %.4f", angle, want)
	}
}

func TestMoonAngleMonotonicThenResets(t *testing.T) {
	moon := NewMoonModel("Test", moonFB(nil))

	// Speed 1 covers 15 degrees/hour: the moon is up from hour 0 to 12.
	prev := -1.0
	for hour := 0.0; hour < 12; hour += 0.25 {
		angle := moon.CalculateState(Timestamp{Day: 3, Hour: hour}).Rotation
		if angle < prev {
			t.Fatalf("angle regressed within a rise-to-set span: %.4f < %.4f at hour %.2f", angle, prev, hour)
		}
		if angle >= 180 {
			t.Fatalf("angle %.4f at hour %.2f should have reset below 180", angle, hour)
		}
		prev = angle
	}

	// At and past the half rotation the angle snaps back to the horizon.
	if angle := moon.CalculateState(Timestamp{Day: 3, Hour: 12}).Rotation; angle != 0 {
		t.Fatalf("angle at set: got %.4f, want 0", angle)
	}
	if angle := moon.CalculateState(Timestamp{Day: 3, Hour: 13}).Rotation; angle >= 180 {
		t.Fatalf("angle after set: got %.4f, want < 180", angle)
	}
}

func TestMoonCarriesOverYesterdaysPartialAngle(t *testing.T) {
	// Daily increment 20: the rise hour lands late in the day, so early
	// hours accumulate on top of yesterday's partial rotation. Slow the
	// moon down so yesterday's angle stays below 180.
	fb := moonFB(map[string]string{
		"Moons_Test_Daily_Increment": "20",
		"Moons_Test_Speed":           "0.5",
	})
	moon := NewMoonModel("Test", fb)

	// Day 4 rises at hour 40 (i.e. not today); day 3 rose at hour 20 and
	// only covered 30 degrees before midnight.
	day, hour := 4, 10.0
	if rise := moon.moonRiseHour(day); rise <= hour {
		t.Fatalf("test setup: day %d rise %.2f should be after hour %.2f", day, rise, hour)
	}
	riseYesterday := moon.moonRiseHour(day - 1)
	if riseYesterday >= 24 {
		t.Fatalf("test setup: yesterday's rise %.2f should be < 24", riseYesterday)
	}

	want := moon.rotation(24-riseYesterday) + moon.rotation(hour)
	if want >= 180 {
		t.Fatalf("test setup: carried angle %.4f should stay below 180", want)
	}
	got := moon.CalculateState(Timestamp{Day: day, Hour: hour}).Rotation
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("carried angle: got %.4f, want %.4f", got, want)
	}
}

func TestMoonPhaseUsesYesterdayUntilMoonrise(t *testing.T) {
	fb := moonFB(map[string]string{"Moons_Test_Daily_Increment": "1"})
	moon := NewMoonModel("Test", fb)

	// Day 5 rises at hour 21 and sits on a phase boundary: day 5 maps to
	// phase 1, day 6 to phase 2.
	day := 5
	before := moon.CalculateState(Timestamp{Day: day, Hour: 0.5}).Phase
	after := moon.CalculateState(Timestamp{Day: day, Hour: 22}).Phase
	if before != (day/3)%8 {
		t.Fatalf("phase before moonrise: got %d, want %d", before, (day/3)%8)
	}
	if after != ((day+1)/3)%8 {
		t.Fatalf("phase after moonrise: got %d, want %d", after, ((day+1)/3)%8)
	}
}

func TestMoonShadowBlendRamps(t *testing.T) {
	moon := NewMoonModel("Test", moonFB(nil))

	cases := []struct {
		angle float64
		want  float64
	}{
		{angle: 10, want: 0},    // below the horizon fade
		{angle: 45, want: 0.5},  // halfway up the rise fade
		{angle: 100, want: 1},   // plateau
		{angle: 135, want: 0.5}, // halfway down the set fade
		{angle: 170, want: 0},   // hidden again
	}
	for _, tc := range cases {
		got := moon.shadowBlend(tc.angle)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("shadowBlend(%.1f): got %.4f, want %.4f", tc.angle, got, tc.want)
		}
	}
}

func TestMoonShadowBlendDegenerateAngles(t *testing.T) {
	// Equal fade start/end would divide by zero without the epsilon guard.
	fb := moonFB(map[string]string{
		"Moons_Test_Fade_Start_Angle": "40",
		"Moons_Test_Fade_End_Angle":   "40",
	})
	moon := NewMoonModel("Test", fb)

	for _, angle := range []float64{0, 40, 90, 140, 180} {
		got := moon.shadowBlend(angle)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("shadowBlend(%.1f) with degenerate fades: got %v", angle, got)
		}
	}
}

func TestMoonEarlyShadowAlphaRamps(t *testing.T) {
	moon := NewMoonModel("Test", moonFB(nil))

	// Fade end angle 40 with an early fade width of 0.5: hidden below
	// 39.5, solid across 40..140, hidden again past 140.5.
	cases := []struct {
		angle float64
		want  float64
	}{
		{angle: 10, want: 0},
		{angle: 39.75, want: 0.5},
		{angle: 90, want: 1},
		{angle: 140.25, want: 0.5},
		{angle: 170, want: 0},
	}
	for _, tc := range cases {
		got := moon.earlyMoonShadowAlpha(tc.angle)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("earlyMoonShadowAlpha(%.2f): got %.4f, want %.4f", tc.angle, got, tc.want)
		}
	}
}

func TestMoonHourlyAlpha(t *testing.T) {
	moon := NewMoonModel("Test", moonFB(nil))

	cases := []struct {
		hour float64
		want float64
	}{
		{hour: 3, want: 1},          // solid before the morning fade
		{hour: 8, want: 2.0 / 3.0},  // a third into the fade out
		{hour: 12, want: 0},         // hidden during the day
		{hour: 14.5, want: 0.5},     // fading back in
		{hour: 20, want: 1},         // solid at night
	}
	for _, tc := range cases {
		got := moon.hourlyAlpha(tc.hour)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("hourlyAlpha(%.1f): got %.4f, want %.4f", tc.hour, got, tc.want)
		}
	}
}
