package sky

import (
	"math"
	"testing"
)

func testSettings() TimeOfDaySettings {
	return TimeOfDaySettings{
		NightStart:  20,
		NightEnd:    5.5,
		DayStart:    8,
		DayEnd:      18,
		SunriseTime: 6,
	}
}

func TestTimeOfDayPhaseSelection(t *testing.T) {
	tod := TimeOfDay[Scalar]{Sunrise: 1, Day: 2, Sunset: 3, Night: 4}
	settings := testSettings()

	cases := []struct {
		hour float64
		want float64
	}{
		{hour: 2, want: 4},      // deep night
		{hour: 23, want: 4},     // night after wrap
		{hour: 5.5, want: 4},    // night boundary, first branch wins
		{hour: 6, want: 1},      // exactly sunrise
		{hour: 12, want: 2},     // midday
		{hour: 9, want: 2},      // sunrise fade-out fully reaches day
		{hour: 19, want: 3},     // sunset pivot at day end + 1
		{hour: 21, want: 4},     // sunset fade-out fully reaches night
	}
	for _, tc := range cases {
		got := float64(tod.At(tc.hour, settings))
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("hour %.2f: got %.4f, want %.4f", tc.hour, got, tc.want)
		}
	}
}

func TestTimeOfDayBlendsMidPhase(t *testing.T) {
	tod := TimeOfDay[Scalar]{Sunrise: 1, Day: 2, Sunset: 3, Night: 4}
	settings := testSettings()

	// Half an hour into the 3 hour sunrise fade-out toward day.
	got := float64(tod.At(7.5, settings))
	want := 1*(1-0.5) + 2*0.5
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("sunrise fade-out at 7.5h: got %.4f, want %.4f", got, want)
	}

	// One hour past the sunset pivot, halfway into night.
	got = float64(tod.At(20, settings))
	want = 3*(1-0.5) + 4*0.5
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("sunset fade-out at 20h: got %.4f, want %.4f", got, want)
	}
}

func TestTimeOfDayNeverExtrapolates(t *testing.T) {
	tod := TimeOfDay[Scalar]{Sunrise: 1, Day: 2, Sunset: 3, Night: 4}
	settings := testSettings()

	for hour := 0.0; hour < 24; hour += 0.05 {
		got := float64(tod.At(hour, settings))
		if got < 1-1e-9 || got > 4+1e-9 {
			t.Fatalf("hour %.2f: value %.4f escapes keyframe range [1,4]", hour, got)
		}
	}
}

func TestTimeOfDayColorBlend(t *testing.T) {
	tod := TimeOfDay[Color]{
		Sunrise: Color{R: 1, A: 1},
		Day:     Color{G: 1, A: 1},
		Sunset:  Color{B: 1, A: 1},
		Night:   Color{A: 1},
	}
	got := tod.At(7.5, testSettings())
	if math.Abs(got.R-0.5) > 1e-9 || math.Abs(got.G-0.5) > 1e-9 || math.Abs(got.A-1) > 1e-9 {
		t.Fatalf("expected half sunrise, half day, got %+v", got)
	}
}
