package sky

import (
	"encoding/json"
	"io"
	"sort"
	"strings"
)

// Save format versions. Records older than the oldest compatible version
// are silently discarded on restore; losing a weather snapshot is cheaper
// than refusing an old save.
const (
	SaveFormatVersion           = 3
	oldestCompatibleSaveFormat = 2
)

// RegionState is the persisted shape of one region's weather state.
type RegionState struct {
	Weather WeatherID `json:"weather"`
	Chances []int     `json:"chances"`
}

// State is the versioned weather record written into saves. Derived
// per-frame output (WeatherResult, moon states) is intentionally absent.
// The transition fields are pointers so that a record without them restores
// as stable; the zero WeatherID is Clear, not "none".
type State struct {
	Version           int                    `json:"version"`
	CurrentRegion     string                 `json:"current_region"`
	TimePassed        float64                `json:"time_passed"`
	FastForward       bool                   `json:"fast_forward"`
	WeatherUpdateTime float64                `json:"weather_update_time"`
	TransitionFactor  float64                `json:"transition_factor"`
	CurrentWeather    WeatherID              `json:"current_weather"`
	NextWeather       *WeatherID             `json:"next_weather,omitempty"`
	QueuedWeather     *WeatherID             `json:"queued_weather,omitempty"`
	Regions           map[string]RegionState `json:"regions"`
}

func optionalWeather(id WeatherID) *WeatherID {
	if !id.IsValid() {
		return nil
	}
	return &id
}

// Snapshot captures the persistent weather state.
func (m *WeatherManager) Snapshot() State {
	state := State{
		Version:           SaveFormatVersion,
		CurrentRegion:     m.currentRegion,
		TimePassed:        m.timePassed,
		FastForward:       m.fastForward,
		WeatherUpdateTime: m.weatherUpdateTime,
		TransitionFactor:  m.transitionFactor,
		CurrentWeather:    m.currentWeather,
		NextWeather:       optionalWeather(m.nextWeather),
		QueuedWeather:     optionalWeather(m.queuedWeather),
		Regions:           make(map[string]RegionState, len(m.regions)),
	}
	for id, region := range m.regions {
		chances := make([]int, len(region.Chances))
		copy(chances, region.Chances)
		state.Regions[id] = RegionState{Weather: region.Weather, Chances: chances}
	}
	return state
}

// Restore applies a previously captured state. Records below the oldest
// compatible format are discarded and the current state is left untouched;
// the return value reports whether the record was applied. A record with no
// region map (as produced by imported legacy saves) falls back to a fresh
// import of the static region definitions.
//
// Weather ids are not trusted: saves pass through hand-editable JSON, and an
// out-of-range id would be indexed into the weather list on the next update.
// Unknown ids degrade silently, to Clear for the shown weather and to "no
// selection" everywhere else.
func (m *WeatherManager) Restore(state State) bool {
	if state.Version < oldestCompatibleSaveFormat {
		return false
	}

	m.currentRegion = strings.ToLower(state.CurrentRegion)
	m.timePassed = state.TimePassed
	m.fastForward = state.FastForward
	m.weatherUpdateTime = state.WeatherUpdateTime
	m.transitionFactor = state.TransitionFactor
	m.currentWeather = WeatherClear
	if m.knownWeather(state.CurrentWeather) {
		m.currentWeather = state.CurrentWeather
	}
	m.nextWeather = m.restoredWeather(state.NextWeather)
	m.queuedWeather = m.restoredWeather(state.QueuedWeather)
	if !m.inTransition() {
		m.transitionFactor = 0
	}

	m.regions = make(map[string]*RegionWeather)
	if len(state.Regions) == 0 {
		m.importRegions()
		return true
	}
	for id, rs := range state.Regions {
		chances := make([]int, len(rs.Chances))
		copy(chances, rs.Chances)
		weather := rs.Weather
		if !m.knownWeather(weather) {
			weather = WeatherNone
		}
		m.regions[strings.ToLower(id)] = &RegionWeather{Weather: weather, Chances: chances}
	}
	return true
}

func (m *WeatherManager) knownWeather(id WeatherID) bool {
	return id.IsValid() && int(id) < len(m.weathers)
}

func (m *WeatherManager) restoredWeather(id *WeatherID) WeatherID {
	if id == nil || !m.knownWeather(*id) {
		return WeatherNone
	}
	return *id
}

// RegionIDs lists the known region ids, sorted, for tooling and consoles.
func (m *WeatherManager) RegionIDs() []string {
	ids := make([]string, 0, len(m.regions))
	for id := range m.regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EncodeState writes a state record as JSON.
func EncodeState(w io.Writer, state State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}

// DecodeState reads a state record from JSON.
func DecodeState(r io.Reader) (State, error) {
	var state State
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return State{}, err
	}
	return state, nil
}
