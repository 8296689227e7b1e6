package sky

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestFirstUpdateAdoptsPlayerRegion(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	sink := &recordingSink{}
	m := newTestManager(scene, sink, &scriptedDice{rolls: []int{0}})

	// The region draw lands on Clear, which matches the starting weather,
	// so no transition begins.
	m.Update(1, false)
	if m.CurrentWeather() != WeatherClear {
		t.Fatalf("expected Clear, got %v", m.CurrentWeather())
	}
	if m.NextWeather() != WeatherNone {
		t.Fatalf("expected no transition, got next %v", m.NextWeather())
	}
	if !m.SkyEnabled() {
		t.Fatalf("exterior scene should enable the sky")
	}
}

func TestChangeWeatherRunsTransitionToCompletion(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	sink := &recordingSink{}
	m := newTestManager(scene, sink, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	m.ChangeWeather("Grasslands", WeatherAshstorm)
	if m.NextWeather() != WeatherAshstorm {
		t.Fatalf("expected transition target Ashstorm, got %v", m.NextWeather())
	}
	if m.TransitionFactor() != 1 {
		t.Fatalf("fresh transition should start at factor 1, got %v", m.TransitionFactor())
	}

	// Delta 0.05 at 4s per tick finishes in five ticks; the factor must
	// fall monotonically until then.
	prev := m.TransitionFactor()
	for i := 0; i < 10 && m.NextWeather().IsValid(); i++ {
		m.Update(4, false)
		if f := m.TransitionFactor(); m.NextWeather().IsValid() && f >= prev {
			t.Fatalf("factor did not decrease: %v -> %v", prev, f)
		}
		prev = m.TransitionFactor()
	}

	if m.CurrentWeather() != WeatherAshstorm {
		t.Fatalf("transition never completed, current %v next %v", m.CurrentWeather(), m.NextWeather())
	}
	if m.TransitionFactor() != 0 {
		t.Fatalf("completed transition should rest at factor 0, got %v", m.TransitionFactor())
	}
	if sink.loopID != "ashstorm" {
		t.Fatalf("expected the ashstorm loop playing, got %q", sink.loopID)
	}
}

func TestTransitionBlendsContinuousFields(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	// Clear wind 0.1, Ashstorm wind 0.8; halfway through the blend should
	// sit at 0.45.
	m.ChangeWeather("Grasslands", WeatherAshstorm)
	m.Update(10, false)

	result := m.Result()
	if math.Abs(result.WindSpeed-0.45) > 1e-9 {
		t.Fatalf("wind at midpoint: got %v, want 0.45", result.WindSpeed)
	}
	if math.Abs(result.CloudBlendFactor-0.5) > 1e-9 {
		t.Fatalf("cloud blend at midpoint: got %v, want 0.5", result.CloudBlendFactor)
	}
}

func TestTransitionSwitchesCategoricalFieldsAtMidpoint(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	sink := &recordingSink{}
	m := newTestManager(scene, sink, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)
	m.ChangeWeather("Grasslands", WeatherAshstorm)

	// 4s at delta 0.05 is 20% in: still the outgoing side, with the
	// ambient volume and effect fade ramping out (1 - 2*0.2).
	m.Update(4, false)
	result := m.Result()
	if result.IsStorm {
		t.Fatalf("storm flag flipped before the midpoint")
	}
	if result.ParticleEffect != "" || result.AmbientLoopSoundID != "" {
		t.Fatalf("first half should keep Clear's effects, got %q %q",
			result.ParticleEffect, result.AmbientLoopSoundID)
	}
	if math.Abs(result.AmbientSoundVolume-0.6) > 1e-9 {
		t.Fatalf("outgoing volume: got %v, want 0.6", result.AmbientSoundVolume)
	}
	if result.EffectFade != result.AmbientSoundVolume {
		t.Fatalf("effect fade should track the volume ramp, got %v", result.EffectFade)
	}

	// 12 more seconds is 80% in: the incoming side, ramping back up
	// (2 * (0.8 - 0.5)).
	m.Update(12, false)
	result = m.Result()
	if !result.IsStorm {
		t.Fatalf("storm flag should flip past the midpoint")
	}
	if result.ParticleEffect != "ashcloud" || result.AmbientLoopSoundID != "ashstorm" {
		t.Fatalf("second half should carry Ashstorm's effects, got %q %q",
			result.ParticleEffect, result.AmbientLoopSoundID)
	}
	if math.Abs(result.AmbientSoundVolume-0.6) > 1e-9 {
		t.Fatalf("incoming volume: got %v, want 0.6", result.AmbientSoundVolume)
	}
	if result.EffectFade != result.AmbientSoundVolume {
		t.Fatalf("effect fade should track the volume ramp, got %v", result.EffectFade)
	}
	if sink.loopID != "ashstorm" {
		t.Fatalf("incoming loop should be playing, got %q", sink.loopID)
	}
}

func TestQueuedTransitionCarriesOvershoot(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	m.ChangeWeather("Grasslands", WeatherAshstorm)
	m.ChangeWeather("Grasslands", WeatherBlight)
	if m.QueuedWeather() != WeatherBlight {
		t.Fatalf("expected Blight queued, got %v", m.QueuedWeather())
	}

	// 24s at delta 0.05 overshoots the first transition by 4s; the queued
	// transition starts with those 4s already spent: 1 - 4*0.05 = 0.8.
	m.Update(24, false)
	if m.CurrentWeather() != WeatherAshstorm || m.NextWeather() != WeatherBlight {
		t.Fatalf("expected Ashstorm -> Blight, got %v -> %v", m.CurrentWeather(), m.NextWeather())
	}
	if m.QueuedWeather() != WeatherNone {
		t.Fatalf("queued slot should have been promoted, got %v", m.QueuedWeather())
	}
	if math.Abs(m.TransitionFactor()-0.8) > 1e-9 {
		t.Fatalf("carried factor: got %v, want 0.8", m.TransitionFactor())
	}
}

func TestFastForwardSnapsToQueuedWeather(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	m.ChangeWeather("Grasslands", WeatherAshstorm)
	m.ChangeWeather("Grasslands", WeatherBlight)

	// Bulk time skips abandon the blend entirely.
	m.AdvanceTime(8, false)
	m.Update(1, false)
	if m.CurrentWeather() != WeatherBlight {
		t.Fatalf("fast forward should land on the queued weather, got %v", m.CurrentWeather())
	}
	if m.NextWeather() != WeatherNone || m.QueuedWeather() != WeatherNone {
		t.Fatalf("machine should be stable, next %v queued %v", m.NextWeather(), m.QueuedWeather())
	}
}

func TestWeatherTimerExpiryRedrawsRegion(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	// First draw selects Clear; the post-expiry draw of 99 walks the
	// Grasslands table {40,30,10,10,10} to its final entry, Rain.
	dice := &scriptedDice{rolls: []int{0, 99}}
	m := newTestManager(scene, &recordingSink{}, dice)
	m.Update(1, false)

	m.AdvanceTime(25, true)
	m.Update(1, false)
	if m.NextWeather() != WeatherRain {
		t.Fatalf("expired timer should start a transition to Rain, got %v", m.NextWeather())
	}
}

func TestPlayerTeleportedAppliesRegionImmediately(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	// Draw 99 walks the Ashlands table {25,20,0,10,0,0,35,10} to Blight.
	dice := &scriptedDice{rolls: []int{0, 99}}
	m := newTestManager(scene, &recordingSink{}, dice)
	m.Update(1, false)

	m.ChangeWeather("Grasslands", WeatherAshstorm)
	scene.region = "Ashlands"
	m.PlayerTeleported()
	if m.CurrentWeather() != WeatherBlight {
		t.Fatalf("teleport should apply the new region's weather, got %v", m.CurrentWeather())
	}
	if m.NextWeather() != WeatherNone {
		t.Fatalf("teleport should discard the in-progress transition, got next %v", m.NextWeather())
	}

	// The next tick must not treat the region as changed again.
	m.Update(1, false)
	if m.NextWeather() != WeatherNone {
		t.Fatalf("no follow-up transition expected, got next %v", m.NextWeather())
	}
}

func TestPlayerTeleportedIgnoredIndoors(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	scene.region = "Ashlands"
	scene.exterior = false
	m.PlayerTeleported()
	if m.CurrentWeather() != WeatherClear {
		t.Fatalf("interior teleport should change nothing, got %v", m.CurrentWeather())
	}
}

func TestInvalidInputsAreIgnored(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	m.ChangeWeather("Grasslands", WeatherID(42))
	m.ChangeWeather("Grasslands", WeatherNone)
	m.ChangeWeather("Atlantis", WeatherRain)
	m.ModRegion("Atlantis", []int{100})

	if m.CurrentWeather() != WeatherClear || m.NextWeather() != WeatherNone {
		t.Fatalf("invalid inputs must be no-ops, current %v next %v", m.CurrentWeather(), m.NextWeather())
	}
}

func TestIndoorsDisablesSkyAndStopsLoop(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	sink := &recordingSink{}
	m := newTestManager(scene, sink, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	m.ChangeWeather("Grasslands", WeatherAshstorm)
	m.AdvanceTime(0, false)
	m.Update(1, false)
	if sink.loopID != "ashstorm" {
		t.Fatalf("expected the ashstorm loop playing, got %q", sink.loopID)
	}

	scene.exterior = false
	m.Update(1, false)
	if m.SkyEnabled() {
		t.Fatalf("interior scene should disable the sky")
	}
	if sink.loopID != "" || sink.stops == 0 {
		t.Fatalf("interior scene should stop the loop, loop %q stops %d", sink.loopID, sink.stops)
	}
}

func TestPausedUpdateFreezesTransition(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	m.ChangeWeather("Grasslands", WeatherAshstorm)
	m.Update(100, true)
	if m.TransitionFactor() != 1 {
		t.Fatalf("paused update must not advance the transition, got %v", m.TransitionFactor())
	}
	if !m.SkyEnabled() {
		t.Fatalf("paused update should still refresh the scene values")
	}
}

func TestStormDirectionPointsAwayFromOrigin(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	origin := DefaultConfig().StormOrigin
	scene.position = Vec3{X: origin.X + 30, Y: origin.Y + 40, Z: origin.Z + 99}

	m.ChangeWeather("Grasslands", WeatherAshstorm)
	m.AdvanceTime(0, false)
	m.Update(1, false)

	if !m.InStorm() {
		t.Fatalf("ashstorm should count as a storm")
	}
	dir := m.StormDirection()
	if math.Abs(dir.X-0.6) > 1e-9 || math.Abs(dir.Y-0.8) > 1e-9 || dir.Z != 0 {
		t.Fatalf("storm direction: got %+v, want {0.6 0.8 0}", dir)
	}
}

func TestSunAndDarknessTrackTheClock(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})

	m.Update(1, false)
	if !m.SunEnabled() {
		t.Fatalf("sun should be up at noon")
	}
	if m.IsDark() {
		t.Fatalf("noon is not dark")
	}
	if m.Result().NightFade != 0 {
		t.Fatalf("night overlay at noon: got %v", m.Result().NightFade)
	}
	// Glare peaks exactly midway between sunrise and sunset.
	if math.Abs(m.GlareFade()-1) > 1e-9 {
		t.Fatalf("glare at noon: got %v, want 1", m.GlareFade())
	}

	scene.hour = 9
	m.Update(1, false)
	if math.Abs(m.GlareFade()-0.5) > 1e-9 {
		t.Fatalf("glare at 9h: got %v, want 0.5", m.GlareFade())
	}

	scene.hour = 23
	m.Update(1, false)
	if m.SunEnabled() {
		t.Fatalf("sun should be down at 23h")
	}
	if !m.IsDark() {
		t.Fatalf("23h is dark")
	}
	if !m.Result().Night {
		t.Fatalf("result should flag night at 23h")
	}
	if m.Result().NightFade != 1 {
		t.Fatalf("night overlay at 23h: got %v", m.Result().NightFade)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)
	m.ChangeWeather("Grasslands", WeatherAshstorm)
	m.Update(4, false)

	state := m.Snapshot()

	var buf bytes.Buffer
	if err := EncodeState(&buf, state); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeState(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(state, decoded) {
		t.Fatalf("state did not survive the codec:\n%+v\n%+v", state, decoded)
	}

	other := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	if !other.Restore(decoded) {
		t.Fatalf("restore rejected a current-format record")
	}
	if !reflect.DeepEqual(other.Snapshot(), state) {
		t.Fatalf("restored state differs:\n%+v\n%+v", other.Snapshot(), state)
	}
	if other.CurrentWeather() != WeatherClear || other.NextWeather() != WeatherAshstorm {
		t.Fatalf("restored machine: current %v next %v", other.CurrentWeather(), other.NextWeather())
	}
}

func TestRestoreRejectsOldSaves(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	stale := m.Snapshot()
	stale.Version = 1
	stale.CurrentWeather = WeatherBlizzard
	if m.Restore(stale) {
		t.Fatalf("restore accepted a record below the oldest compatible format")
	}
	if m.CurrentWeather() != WeatherClear {
		t.Fatalf("rejected restore must leave state untouched, got %v", m.CurrentWeather())
	}
}

func TestRestoreDiscardsUnknownWeatherIDs(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)

	// Saves pass through hand-editable JSON; ids past the weather list
	// must not reach the indexers.
	state := m.Snapshot()
	state.CurrentWeather = WeatherID(15)
	bogus := WeatherID(12)
	state.NextWeather = &bogus
	region := state.Regions["grasslands"]
	region.Weather = WeatherID(99)
	state.Regions["grasslands"] = region

	if !m.Restore(state) {
		t.Fatalf("restore rejected a current-format record")
	}
	m.Update(1, false)
	if m.CurrentWeather() != WeatherClear {
		t.Fatalf("unknown shown weather should degrade to Clear, got %v", m.CurrentWeather())
	}
	if m.NextWeather() != WeatherNone {
		t.Fatalf("unknown transition target should be dropped, got %v", m.NextWeather())
	}
}

func TestRestoreRecordWithoutTransitionStaysStable(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})

	// A record that simply omits the transition fields restores stable;
	// the zero weather id must not be read as "transitioning to Clear".
	raw := `{"version": 2, "current_weather": 8, "current_region": "grasslands", "weather_update_time": 20}`
	state, err := DecodeState(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !m.Restore(state) {
		t.Fatalf("restore rejected a compatible record")
	}
	if m.NextWeather() != WeatherNone || m.QueuedWeather() != WeatherNone {
		t.Fatalf("restored machine should be stable, next %v queued %v", m.NextWeather(), m.QueuedWeather())
	}

	m.Update(1, false)
	if m.CurrentWeather() != WeatherSnow {
		t.Fatalf("restored weather lost: got %v, want Snow", m.CurrentWeather())
	}
	if m.NextWeather() != WeatherNone {
		t.Fatalf("no transition expected after restore, got %v", m.NextWeather())
	}
}

func TestRestoreWithoutRegionsImportsDefinitions(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	m := newTestManager(scene, &recordingSink{}, &scriptedDice{rolls: []int{0}})

	if !m.Restore(State{Version: 2, CurrentWeather: WeatherSnow}) {
		t.Fatalf("restore rejected a compatible legacy record")
	}
	if m.CurrentWeather() != WeatherSnow {
		t.Fatalf("expected Snow after restore, got %v", m.CurrentWeather())
	}
	want := []string{"ashlands", "grasslands"}
	if got := m.RegionIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("regions after legacy restore: got %v, want %v", got, want)
	}
}

func TestClearResetsSession(t *testing.T) {
	scene := &fakeScene{day: 1, hour: 12, region: "Grasslands", exterior: true}
	sink := &recordingSink{}
	m := newTestManager(scene, sink, &scriptedDice{rolls: []int{0}})
	m.Update(1, false)
	m.ChangeWeather("Grasslands", WeatherAshstorm)
	m.AdvanceTime(0, false)
	m.Update(1, false)

	m.Clear()
	if m.CurrentWeather() != WeatherClear || m.NextWeather() != WeatherNone {
		t.Fatalf("reset machine: current %v next %v", m.CurrentWeather(), m.NextWeather())
	}
	if sink.loopID != "" {
		t.Fatalf("reset should stop the loop, got %q", sink.loopID)
	}
}
