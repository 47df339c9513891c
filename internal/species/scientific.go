package species

import (
	"sync"

	"github.com/gnames/gnparser"
)

// Reference entries store scientific names at whatever rank the source data
// used (family, order, genus). gnparser gives us the canonical simple form
// for display and a parse-quality check, so the species-details endpoint can
// tell a real scientific name from the "Unknown" placeholder.

var (
	parserOnce sync.Once
	parserMu   sync.Mutex
	parser     gnparser.GNparser
)

// CanonicalScientificName parses a scientific name and returns its canonical
// simple form. Unparsable input (including the "Unknown" placeholder) returns
// the input unchanged and false.
//
// The parser instance is not safe for concurrent use, so calls are
// serialized; parsing is fast enough that this never shows up in profiles.
func CanonicalScientificName(name string) (string, bool) {
	// gnparser happily reads "Unknown" as a uninomial, so the placeholder
	// has to be screened out before parsing.
	if name == "" || name == "Unknown" {
		return name, false
	}

	parserOnce.Do(func() {
		parser = gnparser.New(gnparser.NewConfig())
	})

	parserMu.Lock()
	parsed := parser.ParseName(name)
	parserMu.Unlock()

	if !parsed.Parsed || parsed.Canonical == nil || parsed.Canonical.Simple == "" {
		return name, false
	}
	return parsed.Canonical.Simple, true
}
