package species

// details is the reference table, keyed by normalized name (lowercase,
// underscores folded to spaces). Entries without an explicit Name take the
// caller's spelling at lookup time.
var details = map[string]Details{
	"angelfish": {
		ScientificName:   "Pomacanthidae",
		Facts:            "Angelfish are colorful marine fish known for their distinctive flat, disc-shaped bodies and vibrant patterns.",
		EndangeredStatus: "Least Concern to Vulnerable",
		FunFact:          "Angelfish can change their colors and patterns as they mature!",
		Habitat:          "Coral reefs in tropical waters",
		Diet:             "Algae, small invertebrates, and sponges",
		Size:             "7-60cm depending on species",
		Threats:          "Coral reef destruction, aquarium trade",
		PopulationTrend:  "Stable to declining",
	},
	"clownfish": {
		ScientificName:   "Amphiprioninae",
		Facts:            "Clownfish live in symbiosis with sea anemones, protected by a special mucus coating.",
		EndangeredStatus: "Least Concern",
		FunFact:          "All clownfish are born male and can change to female when needed!",
		Habitat:          "Coral reefs and anemones in Indo-Pacific",
		Diet:             "Algae, zooplankton, and anemone tentacles",
		Size:             "10-18cm",
		Threats:          "Coral bleaching, aquarium trade",
		PopulationTrend:  "Stable",
	},
	"sharks": {
		Name:             "Sharks",
		ScientificName:   "Selachimorpha",
		Facts:            "Sharks are apex predators with cartilaginous skeletons and multiple rows of teeth.",
		EndangeredStatus: "Many species threatened",
		FunFact:          "Sharks have existed for over 400 million years!",
		Habitat:          "All ocean environments worldwide",
		Diet:             "Fish, marine mammals, plankton",
		Size:             "20cm to 12m depending on species",
		Threats:          "Overfishing, finning, bycatch",
		PopulationTrend:  "Declining globally",
	},
	"sea turtle": {
		Name:             "Sea Turtle",
		ScientificName:   "Chelonioidea",
		Facts:            "Sea turtles are ancient marine reptiles that navigate using Earth's magnetic field.",
		EndangeredStatus: "Most species endangered",
		FunFact:          "Sea turtles return to the same beach where they were born to nest!",
		Habitat:          "Oceans worldwide, nesting on beaches",
		Diet:             "Jellyfish, seagrass, algae, crustaceans",
		Size:             "60cm to 2m shell length",
		Threats:          "Plastic pollution, fishing nets, beach development",
		PopulationTrend:  "Declining globally",
	},
	"turtle": {
		Name:             "Sea Turtle",
		ScientificName:   "Chelonioidea",
		Facts:            "Sea turtles are ancient marine reptiles that navigate using Earth's magnetic field.",
		EndangeredStatus: "Most species endangered",
		FunFact:          "Sea turtles return to the same beach where they were born to nest!",
		Habitat:          "Oceans worldwide, nesting on beaches",
		Diet:             "Jellyfish, seagrass, algae, crustaceans",
		Size:             "60cm to 2m shell length",
		Threats:          "Plastic pollution, fishing nets, beach development",
		PopulationTrend:  "Declining globally",
	},
	"turtle tortoise": {
		Name:             "Sea Turtle",
		ScientificName:   "Chelonioidea",
		Facts:            "Sea turtles are ancient marine reptiles that navigate using Earth's magnetic field.",
		EndangeredStatus: "Most species endangered",
		FunFact:          "Sea turtles return to the same beach where they were born to nest!",
		Habitat:          "Oceans worldwide, nesting on beaches",
		Diet:             "Jellyfish, seagrass, algae, crustaceans",
		Size:             "60cm to 2m shell length",
		Threats:          "Plastic pollution, fishing nets, beach development",
		PopulationTrend:  "Declining globally",
	},
	"dolphin": {
		Name:             "Dolphin",
		ScientificName:   "Delphinidae",
		Facts:            "Dolphins are highly intelligent marine mammals with complex social structures.",
		EndangeredStatus: "Varies by species",
		FunFact:          "Dolphins have names for each other using unique whistle signatures!",
		Habitat:          "Oceans and some rivers worldwide",
		Diet:             "Fish, squid, and crustaceans",
		Size:             "1.2-9m depending on species",
		Threats:          "Fishing nets, pollution, boat strikes",
		PopulationTrend:  "Varies by species",
	},
	"octopus": {
		Name:             "Octopus",
		ScientificName:   "Octopoda",
		Facts:            "Octopuses are intelligent cephalopods with eight arms and three hearts.",
		EndangeredStatus: "Most species least concern",
		FunFact:          "Octopuses can change color and texture instantly to camouflage!",
		Habitat:          "Ocean floors worldwide",
		Diet:             "Crabs, shrimp, fish, and mollusks",
		Size:             "5cm to 9m arm span",
		Threats:          "Overfishing, habitat destruction",
		PopulationTrend:  "Generally stable",
	},
	"jellyfish": {
		Name:             "Jellyfish",
		ScientificName:   "Cnidaria",
		Facts:            "Jellyfish are ancient creatures composed of 95% water with no brain or heart.",
		EndangeredStatus: "Most species stable",
		FunFact:          "Some jellyfish species are immortal and can reverse their aging process!",
		Habitat:          "All ocean environments",
		Diet:             "Plankton, small fish, and other jellyfish",
		Size:             "1mm to 2m bell diameter",
		Threats:          "Climate change, pollution",
		PopulationTrend:  "Many species increasing",
	},
	"jelly fish": {
		Name:             "Jellyfish",
		ScientificName:   "Cnidaria",
		Facts:            "Jellyfish are ancient creatures composed of 95% water with no brain or heart.",
		EndangeredStatus: "Most species stable",
		FunFact:          "Some jellyfish species are immortal and can reverse their aging process!",
		Habitat:          "All ocean environments",
		Diet:             "Plankton, small fish, and other jellyfish",
		Size:             "1mm to 2m bell diameter",
		Threats:          "Climate change, pollution",
		PopulationTrend:  "Many species increasing",
	},
	"seahorse": {
		Name:             "Seahorse",
		ScientificName:   "Hippocampus",
		Facts:            "Seahorses are unique fish where males carry and give birth to the young.",
		EndangeredStatus: "Many species vulnerable",
		FunFact:          "Seahorses mate for life and perform elaborate courtship dances!",
		Habitat:          "Shallow coastal waters with seagrass",
		Diet:             "Small crustaceans and plankton",
		Size:             "1.5-35cm",
		Threats:          "Habitat loss, traditional medicine trade",
		PopulationTrend:  "Declining",
	},
	"pufferfish": {
		Name:             "Pufferfish",
		ScientificName:   "Tetraodontidae",
		Facts:            "Pufferfish can inflate their bodies and contain potent neurotoxins.",
		EndangeredStatus: "Most species stable",
		FunFact:          "Some pufferfish create intricate sand circles to attract mates!",
		Habitat:          "Tropical and subtropical waters",
		Diet:             "Algae, invertebrates, and small fish",
		Size:             "2.5cm to 1.2m",
		Threats:          "Overfishing, habitat destruction",
		PopulationTrend:  "Generally stable",
	},
	"puffers": {
		Name:             "Pufferfish",
		ScientificName:   "Tetraodontidae",
		Facts:            "Pufferfish can inflate their bodies and contain potent neurotoxins.",
		EndangeredStatus: "Most species stable",
		FunFact:          "Some pufferfish create intricate sand circles to attract mates!",
		Habitat:          "Tropical and subtropical waters",
		Diet:             "Algae, invertebrates, and small fish",
		Size:             "2.5cm to 1.2m",
		Threats:          "Overfishing, habitat destruction",
		PopulationTrend:  "Generally stable",
	},
	"sea rays": {
		Name:             "Sea Rays",
		ScientificName:   "Batoidea",
		Facts:            "Rays are flattened cartilaginous fish related to sharks.",
		EndangeredStatus: "Many species threatened",
		FunFact:          "Manta rays have the largest brain-to-body ratio of any fish!",
		Habitat:          "Ocean floors and open water",
		Diet:             "Plankton, small fish, mollusks",
		Size:             "10cm to 9m wingspan",
		Threats:          "Overfishing, bycatch, habitat loss",
		PopulationTrend:  "Declining",
	},
	"ray": {
		Name:             "Rays",
		ScientificName:   "Batoidea",
		Facts:            "Rays are flattened cartilaginous fish related to sharks.",
		EndangeredStatus: "Many species threatened",
		FunFact:          "Manta rays have the largest brain-to-body ratio of any fish!",
		Habitat:          "Ocean floors and open water",
		Diet:             "Plankton, small fish, mollusks",
		Size:             "10cm to 9m wingspan",
		Threats:          "Overfishing, bycatch, habitat loss",
		PopulationTrend:  "Declining",
	},
	"clams": {
		Name:             "Clams",
		ScientificName:   "Bivalvia",
		Facts:            "Clams are filter-feeding marine bivalve mollusks that live in sand or mud.",
		EndangeredStatus: "Least Concern",
		FunFact:          "The giant clam can live for over 100 years!",
		Habitat:          "Benthic zones of oceans and freshwater",
		Diet:             "Phytoplankton and organic particles",
		Size:             "Up to 1.2m (giant clam)",
		Threats:          "Over-harvesting, ocean acidification",
		PopulationTrend:  "Stable",
	},
	"corals": {
		Name:             "Corals",
		ScientificName:   "Anthozoa",
		Facts:            "Corals are marine invertebrates that live in colonies and form the foundation of coral reefs.",
		EndangeredStatus: "Many species are threatened",
		FunFact:          "Corals are actually animals, not plants!",
		Habitat:          "Tropical and subtropical waters",
		Diet:             "Plankton and photosynthesis from algae",
		Size:             "Varies widely",
		Threats:          "Coral bleaching, climate change, pollution",
		PopulationTrend:  "Declining",
	},
	"coral": {
		Name:             "Corals",
		ScientificName:   "Anthozoa",
		Facts:            "Corals are marine invertebrates that live in colonies and form the foundation of coral reefs.",
		EndangeredStatus: "Many species are threatened",
		FunFact:          "Corals are actually animals, not plants!",
		Habitat:          "Tropical and subtropical waters",
		Diet:             "Plankton and photosynthesis from algae",
		Size:             "Varies widely",
		Threats:          "Coral bleaching, climate change, pollution",
		PopulationTrend:  "Declining",
	},
	"crabs": {
		Name:             "Crabs",
		ScientificName:   "Brachyura",
		Facts:            "Crabs are crustaceans with a thick exoskeleton and a single pair of pincers.",
		EndangeredStatus: "Most species least concern",
		FunFact:          "Crabs can walk sideways, but some species can also walk forward and backward!",
		Habitat:          "Coastal waters, tide pools, and deep sea",
		Diet:             "Algae, mollusks, worms, other crustaceans",
		Size:             "1cm to 4m leg span (Japanese spider crab)",
		Threats:          "Overfishing, habitat destruction",
		PopulationTrend:  "Generally stable",
	},
	"eel": {
		Name:             "Eel",
		ScientificName:   "Anguilliformes",
		Facts:            "Eels are long, slender fish that can grow to be several meters long.",
		EndangeredStatus: "Varies by species",
		FunFact:          "Some eels can produce electricity to stun their prey!",
		Habitat:          "Coastal waters, coral reefs, deep sea",
		Diet:             "Fish, crustaceans, and other invertebrates",
		Size:             "10cm to 4m",
		Threats:          "Overfishing, habitat loss",
		PopulationTrend:  "Varies by species",
	},
	"fish": {
		Name:             "Fish",
		ScientificName:   "Vertebrata",
		Facts:            "Fish are aquatic vertebrates that have gills and fins. They are the most diverse group of vertebrates.",
		EndangeredStatus: "Varies widely by species",
		FunFact:          "There are over 34,000 known species of fish!",
		Habitat:          "All water environments",
		Diet:             "Varies widely",
		Size:             "Varies widely",
		Threats:          "Overfishing, habitat destruction, pollution",
		PopulationTrend:  "Varies widely",
	},
	"lobster": {
		Name:             "Lobster",
		ScientificName:   "Nephropidae",
		Facts:            "Lobsters are large marine crustaceans with a long body and muscular tail, and a pair of large claws.",
		EndangeredStatus: "Least Concern",
		FunFact:          "Lobsters can live for over 50 years and grow indefinitely!",
		Habitat:          "Ocean floors in temperate waters",
		Diet:             "Fish, crustaceans, and mollusks",
		Size:             "20-60cm",
		Threats:          "Overfishing",
		PopulationTrend:  "Stable",
	},
	"nudibranchs": {
		Name:             "Nudibranchs",
		ScientificName:   "Nudibranchia",
		Facts:            "Nudibranchs, or sea slugs, are shell-less marine gastropod mollusks known for their vibrant colors.",
		EndangeredStatus: "Not evaluated",
		FunFact:          "Nudibranchs steal stinging cells from jellyfish and use them for their own defense!",
		Habitat:          "Ocean floors worldwide",
		Diet:             "Sponges, anemones, and other nudibranchs",
		Size:             "5mm to 60cm",
		Threats:          "Pollution, habitat loss",
		PopulationTrend:  "Stable",
	},
	"otter": {
		Name:             "Otter",
		ScientificName:   "Lutrinae",
		Facts:            "Otters are carnivorous mammals found in both marine and freshwater environments.",
		EndangeredStatus: "Varies by species",
		FunFact:          "Sea otters use rocks as tools to crack open shellfish!",
		Habitat:          "Coastal waters and rivers worldwide",
		Diet:             "Fish, crustaceans, and mollusks",
		Size:             "60cm to 1.8m",
		Threats:          "Habitat loss, pollution, hunting",
		PopulationTrend:  "Varies by species",
	},
	"penguin": {
		Name:             "Penguin",
		ScientificName:   "Spheniscidae",
		Facts:            "Penguins are flightless birds that are highly adapted for life in the water.",
		EndangeredStatus: "Varies by species",
		FunFact:          "Penguins can drink saltwater because they have a special gland to filter out the salt!",
		Habitat:          "Southern Hemisphere oceans and coastlines",
		Diet:             "Fish, squid, and krill",
		Size:             "30cm to 1.2m",
		Threats:          "Climate change, habitat loss, pollution",
		PopulationTrend:  "Varies by species",
	},
	"sea urchins": {
		Name:             "Sea Urchins",
		ScientificName:   "Echinoidea",
		Facts:            "Sea urchins are spiny, globular marine echinoderms that live in the seabed.",
		EndangeredStatus: "Most species stable",
		FunFact:          "Sea urchins use their spines for defense, movement, and to trap food!",
		Habitat:          "Ocean floors worldwide",
		Diet:             "Algae, small invertebrates, and decaying matter",
		Size:             "3-10cm diameter",
		Threats:          "Over-harvesting, pollution",
		PopulationTrend:  "Stable",
	},
	"sea lion": {
		Name:             "Sea Lion",
		ScientificName:   "Otariinae",
		Facts:            "Sea lions are pinnipeds known for their external ear flaps, long front flippers, and the ability to walk on all fours on land.",
		EndangeredStatus: "Most species least concern",
		FunFact:          "Sea lions can bark like dogs and have a very social nature!",
		Habitat:          "Coastal waters and islands worldwide",
		Diet:             "Fish, squid, and crustaceans",
		Size:             "1.5-3m",
		Threats:          "Fishing gear entanglement, habitat destruction",
		PopulationTrend:  "Stable to declining",
	},
	"seal": {
		Name:             "Seal",
		ScientificName:   "Pinnipedia",
		Facts:            "Seals are semi-aquatic marine mammals with streamlined bodies and flippers.",
		EndangeredStatus: "Varies by species",
		FunFact:          "Seals can sleep underwater and surface to breathe without waking!",
		Habitat:          "Coastal waters from polar to temperate regions",
		Diet:             "Fish, squid, and crustaceans",
		Size:             "1-6m depending on species",
		Threats:          "Hunting, fishing gear entanglement, climate change",
		PopulationTrend:  "Varies by species",
	},
	"shrimp": {
		Name:             "Shrimp",
		ScientificName:   "Pleocyemata",
		Facts:            "Shrimp are small marine crustaceans that are an important food source for many marine animals.",
		EndangeredStatus: "Least Concern",
		FunFact:          "Some shrimp species can snap their claws so fast it creates a sound louder than a gunshot!",
		Habitat:          "All water environments",
		Diet:             "Algae, organic particles, and small invertebrates",
		Size:             "2-20cm",
		Threats:          "Overfishing, habitat destruction",
		PopulationTrend:  "Stable",
	},
	"squid": {
		Name:             "Squid",
		ScientificName:   "Teuthida",
		Facts:            "Squid are cephalopods known for their large eyes, eight arms, two tentacles, and the ability to squirt ink.",
		EndangeredStatus: "Least Concern",
		FunFact:          "Some squid species can fly out of the water for short distances!",
		Habitat:          "All ocean environments",
		Diet:             "Fish, crustaceans, and other squid",
		Size:             "5cm to 13m (giant squid)",
		Threats:          "Overfishing",
		PopulationTrend:  "Stable",
	},
	"starfish": {
		Name:             "Starfish",
		ScientificName:   "Asteroidea",
		Facts:            "Starfish are marine invertebrates with radial symmetry, typically having five arms.",
		EndangeredStatus: "Least Concern",
		FunFact:          "Starfish can regenerate lost arms and sometimes even a whole new body!",
		Habitat:          "Ocean floors worldwide",
		Diet:             "Mollusks, crustaceans, and other invertebrates",
		Size:             "2cm to 1m",
		Threats:          "Habitat destruction, pollution",
		PopulationTrend:  "Stable",
	},
	"whale": {
		Name:             "Whale",
		ScientificName:   "Cetacea",
		Facts:            "Whales are large marine mammals known for their intelligence and complex communication.",
		EndangeredStatus: "Varies by species",
		FunFact:          "Blue whales are the largest animals ever known to have existed!",
		Habitat:          "All ocean environments worldwide",
		Diet:             "Krill, plankton, fish, and squid",
		Size:             "3m to 30m",
		Threats:          "Whaling, noise pollution, climate change",
		PopulationTrend:  "Varies by species",
	},
}
