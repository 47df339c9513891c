package species

import "strings"

// visionKeywords maps vision-API object labels onto species keys. Many labels
// fold into one species ("Great white shark" and "Tiger shark" are both
// "sharks"); matching is a case-insensitive substring test, so the broader
// label "Shark" also catches anything containing it.
var visionKeywords = map[string][]string{
	"fish":            {"Fish", "Tropical fish", "Marine biology", "Aquarium fish", "Saltwater fish"},
	"sharks":          {"Shark", "Great white shark", "Tiger shark", "Hammerhead shark"},
	"turtle_tortoise": {"Sea turtle", "Turtle", "Marine turtle", "Loggerhead turtle"},
	"dolphin":         {"Dolphin", "Marine mammal", "Bottlenose dolphin"},
	"whale":           {"Whale", "Humpback whale", "Blue whale", "Marine mammal"},
	"octopus":         {"Octopus", "Cephalopod", "Marine invertebrate"},
	"jelly fish":      {"Jellyfish", "Cnidaria", "Marine invertebrate"},
	"seahorse":        {"Seahorse", "Marine fish"},
	"starfish":        {"Starfish", "Sea star", "Echinoderm"},
	"crabs":           {"Crab", "Crustacean", "Marine arthropod"},
	"lobster":         {"Lobster", "Crustacean"},
	"shrimp":          {"Shrimp", "Prawn", "Crustacean"},
	"corals":          {"Coral", "Coral reef", "Marine organism"},
	"sea urchins":     {"Sea urchin", "Echinoderm"},
	"eel":             {"Eel", "Moray eel", "Electric eel"},
	"sea rays":        {"Ray", "Stingray", "Manta ray", "Skate"},
	"seal":            {"Seal", "Sea lion", "Marine mammal"},
	"penguin":         {"Penguin", "Marine bird"},
	"puffers":         {"Pufferfish", "Blowfish"},
}

// keywordOrder fixes the match order: generic labels like "Marine mammal"
// appear under several species, and map iteration would pick one at random.
var keywordOrder = []string{
	"fish", "sharks", "turtle_tortoise", "dolphin", "whale", "octopus",
	"jelly fish", "seahorse", "starfish", "crabs", "lobster", "shrimp",
	"corals", "sea urchins", "eel", "sea rays", "seal", "penguin", "puffers",
}

// MatchLabel maps a detected object label to a species key, or ("", false)
// when the label does not correspond to any known marine species.
func MatchLabel(label string) (string, bool) {
	lower := strings.ToLower(label)
	for _, key := range keywordOrder {
		for _, kw := range visionKeywords[key] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return key, true
			}
		}
	}
	return "", false
}

// DisplayName turns a species key into its display form: underscores become
// spaces and each word is capitalized ("turtle_tortoise" → "Turtle Tortoise").
func DisplayName(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
