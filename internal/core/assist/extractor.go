package assist

import (
	"context"
	"fmt"
	"strings"

	"recipe-search/internal/core/pipeline"
	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator produces one model response per prompt. Satisfied by the AI
// service; tests swap in a stub.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// Extractor formats a record with LLM assistance, falling back to the
// heuristic pipeline on any failure. The fallback is silent: callers
// always receive a well-formed document and never see an error.
type Extractor struct {
	config    *config.Config
	generator Generator
}

// NewExtractor creates the assisted extractor.
func NewExtractor(cfg *config.Config, gen Generator) *Extractor {
	return &Extractor{
		config:    cfg,
		generator: gen,
	}
}

// modelOutput is the exact shape the prompt asks for.
type modelOutput struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	TextID       string   `json:"text_id"`
}

// FormatRecord renders one record with model assistance. Every failure
// path, from transport errors through unusable output, yields the same
// document the heuristic pipeline would produce on its own.
func (e *Extractor) FormatRecord(ctx context.Context, rec *common.RawRecord, loc pipeline.Locale) string {
	if e == nil || e.generator == nil || !e.config.OpenRouter.Enabled {
		return pipeline.FormatRecord(rec, loc)
	}

	doc, err := e.tryModels(ctx, rec, loc)
	if err != nil {
		common.LogWarn("assisted extraction failed, using heuristic pipeline",
			zap.String("recipe", rec.RecipeName),
			zap.Error(err),
		)
		return pipeline.FormatRecord(rec, loc)
	}
	return doc
}

// tryModels walks the configured model list until one produces usable
// output.
func (e *Extractor) tryModels(ctx context.Context, rec *common.RawRecord, loc pipeline.Locale) (string, error) {
	prompt := buildPrompt(rec, loc)

	var lastErr error
	for _, model := range e.config.OpenRouter.Models {
		content, err := e.generator.Generate(ctx, prompt, model)
		if err != nil {
			lastErr = err
			common.LogWarn("model generation failed, trying next",
				zap.String("model", model),
				zap.Error(err),
			)
			continue
		}

		doc, err := e.renderOutput(content, rec, loc)
		if err != nil {
			lastErr = err
			common.LogWarn("model output unusable, trying next",
				zap.String("model", model),
				zap.Error(err),
			)
			continue
		}
		return doc, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return "", lastErr
}

// buildPrompt asks for strict JSON in the response locale. The raw text
// is embedded verbatim; the model sees exactly what the heuristics see.
func buildPrompt(rec *common.RawRecord, loc pipeline.Locale) string {
	lang := "English"
	if loc == pipeline.LocaleIndonesian {
		lang = "Indonesian"
	}

	source := rec.Text
	if len(rec.Steps) > 0 {
		source = strings.Join(rec.Steps, "\n")
	}

	var b strings.Builder
	b.WriteString("You are a recipe structuring assistant. Extract the ingredient list and cooking instructions from the recipe text below.\n\n")
	b.WriteString("Respond with ONLY a JSON object, no markdown fences and no commentary, in this exact shape:\n")
	b.WriteString(`{"ingredients": ["..."], "instructions": ["..."], "text_id": "..."}` + "\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- ingredients: one entry per ingredient, keep quantities and units exactly as written\n")
	b.WriteString("- instructions: one entry per step, in cooking order\n")
	b.WriteString(fmt.Sprintf("- keep the %s wording of the source text, do not translate\n", lang))
	b.WriteString(fmt.Sprintf(
		"- text_id: the whole recipe rendered as one %s markdown document: a \"## <recipe name>\" title line, then the sections \"%s\", \"%s\" and \"%s\" listing the entries above\n\n",
		lang,
		pipeline.IngredientsHeader(loc),
		pipeline.InstructionsHeader(loc),
		pipeline.NutritionHeader(loc),
	))
	b.WriteString("Recipe name: " + rec.RecipeName + "\n\n")
	b.WriteString("Recipe text:\n" + source + "\n")
	return b.String()
}

// renderOutput validates and normalizes one model response into the
// final document. Model lists pass through the same consolidation and
// cleanup as heuristic output so both paths share one shape.
func (e *Extractor) renderOutput(content string, rec *common.RawRecord, loc pipeline.Locale) (string, error) {
	out, err := parseModelOutput(content)
	if err != nil {
		return "", err
	}

	ingredients := pipeline.ConsolidateIngredients(out.Ingredients)
	instructions := cleanInstructions(out.Instructions)

	if len(ingredients) == 0 || len(instructions) == 0 {
		return "", fmt.Errorf("model output missing required sections")
	}

	// a model-rendered document is only trusted when its section
	// headers match the requested locale
	if textID := strings.TrimSpace(out.TextID); strings.Contains(textID, pipeline.IngredientsHeader(loc)) {
		return textID, nil
	}

	res := common.ExtractionResult{
		Ingredients:  ingredients,
		Instructions: instructions,
		Nutrition:    nutritionFor(rec),
	}

	name := strings.TrimSpace(rec.RecipeName)
	if name == "" {
		name = pipeline.Untitled(loc)
	}
	return pipeline.BuildDocument(name, res, loc), nil
}

// parseModelOutput decodes the response, first strictly, then after the
// two standard repairs for prose wrapping and unquoted keys.
func parseModelOutput(content string) (*modelOutput, error) {
	var out modelOutput
	if err := common.ParseJSONStrict(content, &out); err == nil {
		return &out, nil
	}

	obj := common.ExtractJSONObject(content)
	if obj == "" {
		return nil, fmt.Errorf("no JSON object in model response")
	}
	obj = common.QuoteJSONKeys(obj)

	if err := common.ParseJSON(obj, &out); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	return &out, nil
}

// cleanInstructions strips enumeration and credits from model steps and
// drops empties, preserving order.
func cleanInstructions(steps []string) []string {
	seen := make(map[string]bool, len(steps))
	var out []string
	for _, step := range steps {
		step = strings.TrimSpace(pipeline.StripEnumeration(pipeline.StripCredit(step)))
		if step == "" {
			continue
		}
		key := strings.ToLower(step)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, step)
	}
	return out
}

// nutritionFor reuses the payload nutrient list when present, otherwise
// the heuristic scan. The model is never asked for nutrition facts.
func nutritionFor(rec *common.RawRecord) []string {
	if len(rec.Nutrients) > 0 {
		seen := make(map[string]bool, len(rec.Nutrients))
		var out []string
		for _, n := range rec.Nutrients {
			n = strings.TrimSpace(n)
			if n == "" || seen[strings.ToLower(n)] {
				continue
			}
			seen[strings.ToLower(n)] = true
			out = append(out, n)
		}
		return out
	}
	return pipeline.ExtractNutrition(rec.Text)
}
