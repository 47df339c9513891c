// Package species holds the static marine-species reference data: the local
// classifier's class list, the descriptive-details table, and the vision
// keyword table. All of it is process-wide, read-only, and compiled into the
// binary — nothing here mutates at run time.
package species

import "strings"

// ClassNames are the local classifier's output classes, in index order.
// The classifier emits a probability distribution over exactly these nine;
// callers must bounds-check the argmax index against this list before
// trusting it (a mismatched model file would otherwise map to garbage).
var ClassNames = []string{
	"Coral",      // 0
	"Fish",       // 1
	"Jelly Fish", // 2
	"Lobster",    // 3
	"Penguin",    // 4
	"Seal",       // 5
	"Sharks",     // 6
	"Squid",      // 7
	"Turtle",     // 8
}

// Details is the descriptive reference record for one species.
type Details struct {
	Name             string `json:"name"`
	ScientificName   string `json:"scientific_name"`
	Facts            string `json:"facts"`
	EndangeredStatus string `json:"endangered_status"`
	FunFact          string `json:"fun_fact"`
	Habitat          string `json:"habitat"`
	Diet             string `json:"diet"`
	Size             string `json:"size"`
	Threats          string `json:"threats"`
	PopulationTrend  string `json:"population_trend"`
}

// normalize folds case and treats underscores and spaces as equivalent, so
// "Sea_Turtle", "sea turtle" and "Sea Turtle" all key the same record.
func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", " "))
}

// Lookup resolves a species name to its reference details.
//
// Unknown names never fail: they resolve to a generic placeholder record
// carrying the (separator-cleaned) name, so the identification pipeline can
// always return a well-formed result.
func Lookup(name string) Details {
	if d, ok := details[normalize(name)]; ok {
		if d.Name == "" {
			d.Name = name
		}
		return d
	}
	return Placeholder(strings.ReplaceAll(name, "_", " "))
}

// Known reports whether a species name has a real (non-placeholder) entry.
func Known(name string) bool {
	_, ok := details[normalize(name)]
	return ok
}

// Placeholder builds the generic fallback record for a species the reference
// table does not cover.
func Placeholder(name string) Details {
	return Details{
		Name:             name,
		ScientificName:   "Unknown",
		Facts:            "This appears to be a " + name + ", a marine species found in ocean environments.",
		EndangeredStatus: "Unknown",
		FunFact:          "Marine ecosystems are incredibly diverse with unique adaptations!",
		Habitat:          "Marine environments",
		Diet:             "Varies by species",
		Size:             "Varies by species",
		Threats:          "Climate change, pollution, overfishing",
		PopulationTrend:  "Unknown",
	}
}
