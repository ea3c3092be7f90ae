package assist

import (
	"context"
	"errors"
	"os"
	"testing"

	"recipe-search/internal/core/pipeline"
	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type stubGenerator struct {
	responses []string
	errs      []error
	calls     int
	models    []string
	prompts   []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	i := s.calls
	s.calls++
	s.models = append(s.models, model)
	s.prompts = append(s.prompts, prompt)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no response configured")
}

func testConfig(enabled bool) *config.Config {
	return &config.Config{
		OpenRouter: config.OpenRouterConfig{
			Enabled: enabled,
			Models:  []string{"model-a", "model-b"},
		},
	}
}

func testRecord() *common.RawRecord {
	return &common.RawRecord{
		RecipeName: "Test Cake",
		Text:       "2 cups flour. Preheat oven to 350F. Mix flour and sugar.",
	}
}

func TestFormatRecordUsesModelOutput(t *testing.T) {
	gen := &stubGenerator{
		responses: []string{`{"ingredients": ["2 cups flour", "1 cup sugar"], "instructions": ["Preheat the oven.", "Mix everything."], "text_id": ""}`},
	}
	e := NewExtractor(testConfig(true), gen)

	got := e.FormatRecord(context.Background(), testRecord(), pipeline.LocaleEnglish)

	assert.Contains(t, got, "- 2 cups flour")
	assert.Contains(t, got, "- 1 cup sugar")
	assert.Contains(t, got, "1. Preheat the oven.")
	assert.Contains(t, got, "2. Mix everything.")
	assert.Equal(t, 1, gen.calls)
}

func TestFormatRecordRepairsWrappedJSON(t *testing.T) {
	gen := &stubGenerator{
		responses: []string{"Sure, here you go:\n```json\n{ingredients: [\"200 g butter\"], instructions: [\"Melt the butter.\"], text_id: \"\"}\n```"},
	}
	e := NewExtractor(testConfig(true), gen)

	got := e.FormatRecord(context.Background(), testRecord(), pipeline.LocaleEnglish)

	assert.Contains(t, got, "- 200 g butter")
	assert.Contains(t, got, "1. Melt the butter.")
}

func TestFormatRecordFallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{
		errs: []error{errors.New("boom"), errors.New("boom")},
	}
	e := NewExtractor(testConfig(true), gen)
	rec := testRecord()

	got := e.FormatRecord(context.Background(), rec, pipeline.LocaleEnglish)

	require.Equal(t, pipeline.FormatRecord(rec, pipeline.LocaleEnglish), got)
	assert.Equal(t, 2, gen.calls, "every configured model is tried")
}

func TestFormatRecordFallsBackOnGarbageOutput(t *testing.T) {
	gen := &stubGenerator{
		responses: []string{"this is not json", "still not json"},
	}
	e := NewExtractor(testConfig(true), gen)
	rec := testRecord()

	got := e.FormatRecord(context.Background(), rec, pipeline.LocaleEnglish)

	require.Equal(t, pipeline.FormatRecord(rec, pipeline.LocaleEnglish), got)
}

func TestFormatRecordFallsBackOnEmptySections(t *testing.T) {
	gen := &stubGenerator{
		responses: []string{
			`{"ingredients": [], "instructions": ["Mix."], "text_id": ""}`,
			`{"ingredients": ["1 cup rice"], "instructions": [], "text_id": ""}`,
		},
	}
	e := NewExtractor(testConfig(true), gen)
	rec := testRecord()

	got := e.FormatRecord(context.Background(), rec, pipeline.LocaleEnglish)

	require.Equal(t, pipeline.FormatRecord(rec, pipeline.LocaleEnglish), got)
	assert.Equal(t, 2, gen.calls)
}

func TestFormatRecordRetriesNextModel(t *testing.T) {
	gen := &stubGenerator{
		errs: []error{errors.New("rate limited"), nil},
		responses: []string{
			"",
			`{"ingredients": ["300 ml milk"], "instructions": ["Warm the milk."], "text_id": ""}`,
		},
	}
	e := NewExtractor(testConfig(true), gen)

	got := e.FormatRecord(context.Background(), testRecord(), pipeline.LocaleEnglish)

	assert.Contains(t, got, "- 300 ml milk")
	require.Equal(t, []string{"model-a", "model-b"}, gen.models)
}

func TestFormatRecordReusesModelTextID(t *testing.T) {
	pre := "## Kue Tes\n\n### 🛒 Bahan-bahan\n- 2 cups flour"
	gen := &stubGenerator{
		responses: []string{`{"ingredients": ["2 cups flour"], "instructions": ["Aduk rata."], "text_id": "` + "## Kue Tes\\n\\n### 🛒 Bahan-bahan\\n- 2 cups flour" + `"}`},
	}
	e := NewExtractor(testConfig(true), gen)

	got := e.FormatRecord(context.Background(), testRecord(), pipeline.LocaleIndonesian)

	require.Equal(t, pre, got)
}

func TestFormatRecordIgnoresWrongLocaleTextID(t *testing.T) {
	// an Indonesian-rendered document must not be returned for an
	// English query; the structured lists are rendered instead
	gen := &stubGenerator{
		responses: []string{`{"ingredients": ["2 cups flour"], "instructions": ["Mix everything."], "text_id": "` +
			"## Kue Tes\\n\\n### 🛒 Bahan-bahan\\n- 2 cups flour" + `"}`},
	}
	e := NewExtractor(testConfig(true), gen)

	got := e.FormatRecord(context.Background(), testRecord(), pipeline.LocaleEnglish)

	assert.NotContains(t, got, "Bahan-bahan")
	assert.Contains(t, got, "### 🛒 Ingredients")
	assert.Contains(t, got, "- 2 cups flour")
	assert.Contains(t, got, "1. Mix everything.")
}

func TestBuildPromptRequestsLocalizedDocument(t *testing.T) {
	gen := &stubGenerator{
		responses: []string{`{"ingredients": ["1 cup rice"], "instructions": ["Cook the rice."], "text_id": ""}`, ""},
	}
	e := NewExtractor(testConfig(true), gen)

	e.FormatRecord(context.Background(), testRecord(), pipeline.LocaleEnglish)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "### 🛒 Ingredients")
	assert.Contains(t, gen.prompts[0], "rendered as one English markdown document")

	gen = &stubGenerator{
		responses: []string{`{"ingredients": ["100 g gula"], "instructions": ["Aduk rata."], "text_id": ""}`},
	}
	e = NewExtractor(testConfig(true), gen)

	e.FormatRecord(context.Background(), testRecord(), pipeline.LocaleIndonesian)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "### 🛒 Bahan-bahan")
	assert.Contains(t, gen.prompts[0], "### 🍳 Cara Memasak")
}

func TestFormatRecordDisabledSkipsGenerator(t *testing.T) {
	gen := &stubGenerator{}
	e := NewExtractor(testConfig(false), gen)
	rec := testRecord()

	got := e.FormatRecord(context.Background(), rec, pipeline.LocaleEnglish)

	require.Equal(t, pipeline.FormatRecord(rec, pipeline.LocaleEnglish), got)
	assert.Equal(t, 0, gen.calls)
}

func TestNilExtractorFallsBack(t *testing.T) {
	var e *Extractor
	rec := testRecord()
	got := e.FormatRecord(context.Background(), rec, pipeline.LocaleIndonesian)
	require.Equal(t, pipeline.FormatRecord(rec, pipeline.LocaleIndonesian), got)
}
