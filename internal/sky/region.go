package sky

// RegionWeather holds one region's weather-type chance table and its
// currently selected weather. Selection is recomputed lazily whenever it is
// read while unset, and immediately when a chance change invalidates it.
type RegionWeather struct {
	Weather WeatherID
	Chances []int
}

// RegionDefinition is the static shape of a region: an id and its ten
// weather chances, which are expected (not enforced) to sum to 100.
type RegionDefinition struct {
	ID      string `yaml:"id" json:"id"`
	Chances []int  `yaml:"chances" json:"chances"`
}

// NewRegionWeather builds the runtime state for a region definition with no
// selection yet made.
func NewRegionWeather(def RegionDefinition) RegionWeather {
	chances := make([]int, len(def.Chances))
	copy(chances, def.Chances)
	return RegionWeather{
		Weather: WeatherNone,
		Chances: chances,
	}
}

// SetChances overwrites the chance table. If the current selection is now
// out of range or has lost all probability, a new weather is drawn at once.
func (r *RegionWeather) SetChances(chances []int, dice Dice) {
	if len(r.Chances) < len(chances) {
		grown := make([]int, len(chances))
		copy(grown, r.Chances)
		r.Chances = grown
	}
	copy(r.Chances, chances)

	if int(r.Weather) >= len(r.Chances) || (r.Weather.IsValid() && r.Chances[r.Weather] == 0) {
		r.chooseNewWeather(dice)
	}
}

func (r *RegionWeather) SetWeather(id WeatherID) {
	r.Weather = id
}

// GetWeather returns the current selection, drawing a fresh one first if
// the selection was expired. Expiry happens on the periodic weather-update
// timer.
func (r *RegionWeather) GetWeather(dice Dice) WeatherID {
	if r.Weather == WeatherNone {
		r.chooseNewWeather(dice)
	}
	return r.Weather
}

// chooseNewWeather draws a weighted selection from the chance table. The
// chances are expected to sum to 100; when they sum short, the leftover
// probability mass falls through to the last entry. That bias matches the
// long-standing behaviour and is deliberately not normalized away.
func (r *RegionWeather) chooseNewWeather(dice Dice) {
	chance := dice.RollDice(100) + 1 // 1..100
	sum := 0
	selected := len(r.Chances) - 1
	for i, c := range r.Chances {
		sum += c
		if chance <= sum {
			selected = i
			break
		}
	}
	r.Weather = WeatherID(selected)
}
