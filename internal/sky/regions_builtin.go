package sky

// BuiltinRegions is the default region set used when no region file is
// supplied. Chances are ordered Clear, Cloudy, Foggy, Overcast, Rain,
// Thunderstorm, Ashstorm, Blight, Snow, Blizzard and sum to 100.
func BuiltinRegions() []RegionDefinition {
	return []RegionDefinition{
		{ID: "Grasslands", Chances: []int{40, 30, 10, 10, 10, 0, 0, 0, 0, 0}},
		{ID: "Coast", Chances: []int{25, 25, 20, 10, 15, 5, 0, 0, 0, 0}},
		{ID: "Marsh", Chances: []int{10, 20, 30, 20, 15, 5, 0, 0, 0, 0}},
		{ID: "Highlands", Chances: []int{30, 30, 10, 15, 10, 5, 0, 0, 0, 0}},
		{ID: "Ashlands", Chances: []int{25, 20, 0, 10, 0, 0, 35, 10, 0, 0}},
		{ID: "Mountains", Chances: []int{15, 20, 10, 15, 0, 0, 0, 0, 25, 15}},
	}
}
