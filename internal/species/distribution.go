package species

// Region is one geographical area where a species is commonly found.
type Region struct {
	Name       string
	Lat        float64
	Lng        float64
	Population string
}

// distribution holds habitat regions per species key. Not every species has
// distribution data — callers must treat an empty result as "unknown range".
var distribution = map[string][]Region{
	"dolphin": {
		{Name: "Pacific Ocean", Lat: 0, Lng: -140, Population: "High"},
		{Name: "Atlantic Ocean", Lat: 30, Lng: -40, Population: "High"},
		{Name: "Mediterranean Sea", Lat: 40, Lng: 15, Population: "Medium"},
		{Name: "Indian Ocean", Lat: -10, Lng: 70, Population: "High"},
		{Name: "Caribbean Sea", Lat: 15, Lng: -75, Population: "Medium"},
	},
	"jellyfish": {
		{Name: "Great Barrier Reef", Lat: -18, Lng: 147, Population: "High"},
		{Name: "Mediterranean Sea", Lat: 35, Lng: 18, Population: "High"},
		{Name: "North Sea", Lat: 56, Lng: 3, Population: "Medium"},
		{Name: "Japanese Waters", Lat: 35, Lng: 140, Population: "High"},
	},
	"sea rays": {
		{Name: "Maldives", Lat: 3.2, Lng: 73.2, Population: "High"},
		{Name: "Great Barrier Reef", Lat: -16, Lng: 145, Population: "High"},
		{Name: "Red Sea", Lat: 22, Lng: 38, Population: "High"},
		{Name: "Caribbean Sea", Lat: 18, Lng: -78, Population: "Medium"},
	},
	"starfish": {
		{Name: "Pacific Northwest", Lat: 47, Lng: -123, Population: "High"},
		{Name: "Great Barrier Reef", Lat: -15, Lng: 145, Population: "High"},
		{Name: "Mediterranean Sea", Lat: 38, Lng: 15, Population: "Medium"},
		{Name: "Antarctic Waters", Lat: -70, Lng: 0, Population: "High"},
	},
	"whale": {
		{Name: "Alaska Waters", Lat: 60, Lng: -150, Population: "High"},
		{Name: "Antarctic Peninsula", Lat: -65, Lng: -60, Population: "High"},
		{Name: "Norway Coast", Lat: 69, Lng: 16, Population: "High"},
		{Name: "Baja California", Lat: 28, Lng: -114, Population: "High"},
	},
}

// distributionAliases folds recorded species names onto distribution keys.
var distributionAliases = map[string]string{
	"dolphins":   "dolphin",
	"jelly fish": "jellyfish",
	"whales":     "whale",
}

// DistributionRegions returns the known habitat regions for a species name,
// tolerant of case and separator differences. Species without distribution
// data return nil.
func DistributionRegions(name string) []Region {
	key := normalize(name)
	if alias, ok := distributionAliases[key]; ok {
		key = alias
	}
	return distribution[key]
}
