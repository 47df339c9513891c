package identify

import (
	"context"
	"log/slog"
	"math"

	"github.com/aquatrace/aquatrace/internal/species"
)

// Pipeline runs the strict ordered fallback: local classifier → cloud vision
// → enrichment. Any of the three collaborators may be nil (not configured);
// the pipeline degrades past a missing or failing step instead of erroring.
type Pipeline struct {
	classifier Classifier     // nil when no local model is loaded
	detector   ObjectDetector // nil when the vision fallback is not configured
	enricher   Enricher       // nil when the generative service is not configured
	logger     *slog.Logger
}

// NewPipeline creates a Pipeline. Pass nil for any collaborator that is not
// configured — the corresponding step is skipped.
func NewPipeline(classifier Classifier, detector ObjectDetector, enricher Enricher, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		detector:   detector,
		enricher:   enricher,
		logger:     logger,
	}
}

// Identify maps an image to a best-effort species identification.
//
// Returns nil — the "no result" sentinel — only when no step could produce
// anything: callers must treat that as a silent no-op, not an error. A
// Result with confidence 0 ("Unknown Marine Species") is NOT the sentinel;
// it means the vision step ran and found no marine species.
func (p *Pipeline) Identify(ctx context.Context, imagePath string) *Result {
	if r := p.identifyLocal(ctx, imagePath); r != nil {
		return r
	}
	if r := p.identifyVision(ctx, imagePath); r != nil {
		return r
	}
	p.logger.Info("identification produced no result", slog.String("image", imagePath))
	return nil
}

// identifyLocal runs the local classifier step. Returns nil to fall through:
// no model, model error, low confidence, or an out-of-range class index.
func (p *Pipeline) identifyLocal(ctx context.Context, imagePath string) *Result {
	if p.classifier == nil {
		return nil
	}

	idx, confidence, err := p.classifier.Classify(ctx, imagePath)
	if err != nil {
		p.logger.Warn("local classifier failed, falling back",
			slog.String("image", imagePath),
			slog.String("error", err.Error()),
		)
		return nil
	}

	// Both guards are fixed policy: the threshold is not tunable per call,
	// and the bounds check protects against a model file whose output size
	// doesn't match the compiled class list.
	if confidence <= ConfidenceThreshold || idx < 0 || idx >= len(species.ClassNames) {
		p.logger.Info("local classifier below threshold, falling back",
			slog.Float64("confidence", confidence),
			slog.Int("classIndex", idx),
		)
		return nil
	}

	name := species.ClassNames[idx]
	p.logger.Info("species identified by local model",
		slog.String("species", name),
		slog.Float64("confidence", confidence),
	)
	return fromDetails(species.Lookup(name), round1(confidence), MethodLocalModel)
}

// identifyVision runs the cloud fallback: object localization, keyword
// matching, generative enrichment. A reachable vision service that finds no
// marine species still yields the "Unknown Marine Species" result; only an
// absent or failing service returns nil.
func (p *Pipeline) identifyVision(ctx context.Context, imagePath string) *Result {
	if p.detector == nil {
		return nil
	}

	objects, err := p.detector.DetectObjects(ctx, imagePath)
	if err != nil {
		p.logger.Warn("vision fallback failed",
			slog.String("image", imagePath),
			slog.String("error", err.Error()),
		)
		return nil
	}

	// Highest-confidence label that maps to a known species wins.
	var bestKey string
	var bestScore float64
	for _, obj := range objects {
		key, ok := species.MatchLabel(obj.Name)
		if ok && obj.Score > bestScore {
			bestKey = key
			bestScore = obj.Score
		}
	}

	if bestKey == "" {
		p.logger.Info("vision fallback found no marine species",
			slog.Int("objects", len(objects)))
		return unknownResult()
	}

	name := species.DisplayName(bestKey)
	confidence := round1(bestScore * 100)
	p.logger.Info("species identified by vision fallback",
		slog.String("species", name),
		slog.Float64("confidence", confidence),
	)

	return fromDetails(p.enrich(ctx, name), confidence, MethodCloudVision)
}

// enrich fetches descriptive details from the generative service, degrading
// to generic placeholder text on any failure — enrichment problems never
// fail an identification the vision step already made.
func (p *Pipeline) enrich(ctx context.Context, name string) species.Details {
	if p.enricher == nil {
		return enrichFallback(name)
	}

	d, err := p.enricher.SpeciesDetails(ctx, name)
	if err != nil {
		p.logger.Warn("enrichment failed, using placeholder details",
			slog.String("species", name),
			slog.String("error", err.Error()),
		)
		return enrichFallback(name)
	}
	return d
}

// enrichFallback is the generic text substituted when the generative call
// fails or is unavailable.
func enrichFallback(name string) species.Details {
	return species.Details{
		Name:             name,
		ScientificName:   "Unknown",
		Facts:            "This appears to be a " + name + " identified by the vision service.",
		EndangeredStatus: "Unknown",
		FunFact:          "Marine species: " + name,
		Habitat:          "Marine environment",
		Diet:             "Varies by species",
		Size:             "Varies",
		Threats:          "Climate change and human activities",
		PopulationTrend:  "Unknown",
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
