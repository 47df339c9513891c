// Package identify implements the species-identification fallback pipeline:
// local classifier first, cloud vision second, generative enrichment on top
// of the vision path. The pipeline never surfaces an error to its caller —
// every step's failure is absorbed at that step, and the caller receives
// either a well-formed Result or nil, the explicit "no identification"
// sentinel.
package identify

import (
	"context"

	"github.com/aquatrace/aquatrace/internal/species"
)

// Confidence handling is fixed policy, not configuration: the local model's
// result is only trusted above this cutoff, and only when the argmax index
// actually falls inside the known class list.
const ConfidenceThreshold = 85.0

// Detection method values reported in results.
const (
	MethodLocalModel  = "local model"
	MethodCloudVision = "cloud vision API"
)

// Result is a completed identification. Field names mirror the JSON contract
// of the predict APIs.
type Result struct {
	Name             string  `json:"name"`
	ScientificName   string  `json:"scientific_name"`
	Confidence       float64 `json:"confidence"` // percentage, 0–100
	Facts            string  `json:"facts"`
	EndangeredStatus string  `json:"endangered_status"`
	FunFact          string  `json:"fun_fact"`
	Habitat          string  `json:"habitat"`
	Diet             string  `json:"diet"`
	Size             string  `json:"size"`
	Threats          string  `json:"threats"`
	PopulationTrend  string  `json:"population_trend"`
	DetectionMethod  string  `json:"detection_method"`
}

// Classifier is the local model: a forward pass producing the argmax class
// index and its probability as a percentage.
type Classifier interface {
	Classify(ctx context.Context, imagePath string) (classIndex int, confidence float64, err error)
}

// DetectedObject is one object-localization hit from the vision fallback.
type DetectedObject struct {
	Name  string
	Score float64 // 0–1
}

// ObjectDetector is the cloud vision fallback.
type ObjectDetector interface {
	DetectObjects(ctx context.Context, imagePath string) ([]DetectedObject, error)
}

// Enricher produces descriptive species details from a generative-text
// service when the vision path identifies a species the static reference
// table cannot describe richly enough.
type Enricher interface {
	SpeciesDetails(ctx context.Context, speciesName string) (species.Details, error)
}

// fromDetails assembles a Result from reference details plus the
// pipeline-level fields.
func fromDetails(d species.Details, confidence float64, method string) *Result {
	return &Result{
		Name:             d.Name,
		ScientificName:   d.ScientificName,
		Confidence:       confidence,
		Facts:            d.Facts,
		EndangeredStatus: d.EndangeredStatus,
		FunFact:          d.FunFact,
		Habitat:          d.Habitat,
		Diet:             d.Diet,
		Size:             d.Size,
		Threats:          d.Threats,
		PopulationTrend:  d.PopulationTrend,
		DetectionMethod:  method,
	}
}

// unknownResult is the vision path's "nothing matched" outcome: still a
// result (confidence 0), distinct from the nil sentinel.
func unknownResult() *Result {
	return &Result{
		Name:             "Unknown Marine Species",
		ScientificName:   "Unknown",
		Confidence:       0,
		Facts:            "Could not identify a specific marine species in this image.",
		EndangeredStatus: "Unknown",
		FunFact:          "Try uploading a clearer image of a marine animal.",
		Habitat:          "Unknown",
		Diet:             "Unknown",
		Size:             "Unknown",
		Threats:          "Unknown",
		PopulationTrend:  "Unknown",
		DetectionMethod:  MethodCloudVision,
	}
}
