package identify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/aquatrace/aquatrace/internal/species"
)

const defaultGeminiModel = "gemini-2.0-flash"

// detailsPrompt is the fixed enrichment prompt. The response schema matches
// species.Details minus the display name, which we already know.
const detailsPrompt = `Provide detailed information about the marine species: %s

Please provide the following information in JSON format:
{
    "scientific_name": "Scientific name of the species",
    "facts": "Brief description and key facts about this species",
    "endangered_status": "Conservation status (e.g., Least Concern, Vulnerable, Endangered)",
    "fun_fact": "An interesting fun fact about this species",
    "habitat": "Where this species typically lives",
    "diet": "What this species typically eats",
    "size": "Typical size range of this species",
    "threats": "Main threats to this species",
    "population_trend": "Current population trend (Stable, Increasing, Declining)"
}

Make sure the response is valid JSON format only, no additional text.`

// GeminiEnricher asks a Gemini model for descriptive species details when
// the vision fallback identifies a species. Callers treat any error as
// "use placeholder text" — enrichment is best-effort by contract.
type GeminiEnricher struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiEnricher creates the Gemini client. model may be empty to use the
// default.
func NewGeminiEnricher(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiEnricher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("identify: gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("identify: creating gemini client: %w", err)
	}

	return &GeminiEnricher{client: client, model: model, logger: logger}, nil
}

// SpeciesDetails requests the enrichment JSON and parses it into a Details
// record. Unparsable model output is an error; the pipeline substitutes
// placeholder text.
func (e *GeminiEnricher) SpeciesDetails(ctx context.Context, speciesName string) (species.Details, error) {
	prompt := fmt.Sprintf(detailsPrompt, speciesName)

	res, err := e.client.Models.GenerateContent(ctx, e.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return species.Details{}, fmt.Errorf("identify: gemini request: %w", err)
	}

	text := res.Text()
	d, err := parseDetailsJSON(speciesName, text)
	if err != nil {
		return species.Details{}, err
	}

	e.logger.Debug("gemini enrichment succeeded", slog.String("species", speciesName))
	return d, nil
}

// parseDetailsJSON decodes the model's JSON, tolerating fenced code blocks
// that some models emit despite the JSON response type.
func parseDetailsJSON(speciesName, text string) (species.Details, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload struct {
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
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return species.Details{}, fmt.Errorf("identify: parsing gemini response: %w", err)
	}

	return species.Details{
		Name:             speciesName,
		ScientificName:   payload.ScientificName,
		Facts:            payload.Facts,
		EndangeredStatus: payload.EndangeredStatus,
		FunFact:          payload.FunFact,
		Habitat:          payload.Habitat,
		Diet:             payload.Diet,
		Size:             payload.Size,
		Threats:          payload.Threats,
		PopulationTrend:  payload.PopulationTrend,
	}, nil
}
