package search

import (
	"context"
	"strings"
	"time"

	"recipe-search/internal/core/assist"
	"recipe-search/internal/core/pipeline"
	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"go.uber.org/zap"
)

// maxTopK caps caller-supplied result counts.
const maxTopK = 10

// Service runs one query through the full retrieval pipeline: locale
// detection, embedding, vector search, the weak-match gate, and per-hit
// formatting. Failures degrade to localized message entries; Ask never
// returns an error.
type Service struct {
	config    *config.Config
	embedder  Embedder
	store     VectorSearcher
	extractor *assist.Extractor
}

// NewService creates the search service. extractor may be nil when
// assisted extraction is disabled.
func NewService(cfg *config.Config, embedder Embedder, store VectorSearcher, extractor *assist.Extractor) *Service {
	return &Service{
		config:    cfg,
		embedder:  embedder,
		store:     store,
		extractor: extractor,
	}
}

// Ask answers one natural-language recipe query. topK <= 0 selects the
// configured default.
func (s *Service) Ask(ctx context.Context, query string, topK int) *Response {
	traceID := common.GenerateUUID()
	start := time.Now()

	loc := pipeline.DetectLocale(query)

	if topK <= 0 {
		topK = s.config.Retrieval.TopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		common.LogError("query embedding failed",
			zap.Error(err),
			zap.String("trace_id", traceID),
		)
		return errorResponse(loc, err)
	}

	points, err := s.store.Search(ctx, vector, topK)
	if err != nil {
		common.LogError("vector search failed",
			zap.Error(err),
			zap.String("trace_id", traceID),
		)
		return errorResponse(loc, err)
	}

	if len(points) == 0 {
		common.LogInfo("search returned no points",
			zap.String("trace_id", traceID),
			zap.String("locale", string(loc)),
		)
		return notFoundResponse(loc)
	}

	best := points[0].Score
	if best < s.config.Retrieval.WeakScoreThreshold {
		common.LogInfo("search gated as weak match",
			zap.String("trace_id", traceID),
			zap.Float64("best_score", best),
			zap.Float64("threshold", s.config.Retrieval.WeakScoreThreshold),
		)
		return weakMatchResponse(loc, best)
	}

	hits := make([]common.RecipeHit, 0, len(points))
	for i, p := range points {
		rec := p.Payload
		var doc string
		if i == 0 || !s.config.Retrieval.AssistedTopHitOnly {
			doc = s.formatAssisted(ctx, &rec, loc)
		} else {
			doc = pipeline.FormatRecord(&rec, loc)
		}
		hits = append(hits, common.RecipeHit{
			RecipeName: recipeName(&rec, loc),
			Text:       doc,
			Score:      p.Score,
		})
	}

	common.LogInfo("request completed",
		zap.String("trace_id", traceID),
		zap.Int("hits", len(hits)),
		zap.Float64("best_score", best),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Response{
		Answer:  joinDocuments(hits),
		Results: hits,
	}
}

// formatAssisted uses the assisted extractor when available, otherwise
// the heuristic pipeline directly.
func (s *Service) formatAssisted(ctx context.Context, rec *common.RawRecord, loc pipeline.Locale) string {
	if s.extractor == nil {
		return pipeline.FormatRecord(rec, loc)
	}
	return s.extractor.FormatRecord(ctx, rec, loc)
}

func recipeName(rec *common.RawRecord, loc pipeline.Locale) string {
	name := strings.TrimSpace(rec.RecipeName)
	if name == "" {
		return pipeline.Untitled(loc)
	}
	return name
}

// notFoundResponse is the single localized entry for an empty search.
func notFoundResponse(loc pipeline.Locale) *Response {
	doc := "## " + pipeline.NotFoundTitle(loc) + "\n\n" + pipeline.NotFoundMessage(loc)
	return &Response{
		Answer: doc,
		Results: []common.RecipeHit{{
			RecipeName: pipeline.NotFoundTitle(loc),
			Text:       doc,
			Score:      0,
			NotFound:   true,
		}},
	}
}

// weakMatchResponse is the single localized entry for a best score under
// the threshold. The best score is carried in the message.
func weakMatchResponse(loc pipeline.Locale, best float64) *Response {
	doc := "## " + pipeline.NotFoundTitle(loc) + "\n\n" + pipeline.WeakMatchMessage(loc, best)
	return &Response{
		Answer: doc,
		Results: []common.RecipeHit{{
			RecipeName: pipeline.NotFoundTitle(loc),
			Text:       doc,
			Score:      best,
			NotFound:   true,
		}},
	}
}

// errorResponse is the single localized entry for an upstream failure.
// The raw error stays in the entry for operators; the document shown to
// users carries only the localized message. Unlike the not-found and
// weak-match entries, not_found stays unset so callers can tell a
// failed search from an empty one.
func errorResponse(loc pipeline.Locale, err error) *Response {
	doc := "## " + pipeline.NotFoundTitle(loc) + "\n\n" + pipeline.SearchErrorMessage(loc)
	return &Response{
		Answer: doc,
		Results: []common.RecipeHit{{
			RecipeName: pipeline.NotFoundTitle(loc),
			Text:       doc,
			Score:      0,
			Error:      err.Error(),
		}},
	}
}

func joinDocuments(hits []common.RecipeHit) string {
	docs := make([]string, len(hits))
	for i, h := range hits {
		docs[i] = h.Text
	}
	return strings.Join(docs, "\n\n---\n\n")
}
