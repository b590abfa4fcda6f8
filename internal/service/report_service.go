package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mindscreen/internal/cache"
	"mindscreen/internal/config"
	"mindscreen/internal/model"
	"mindscreen/internal/report"
	"mindscreen/internal/repository"
)

// maxFailureReasons caps how many failure reasons the aggregated
// provider error carries
const maxFailureReasons = 4

// ReportService generates personalized reports, LLM-backed when
// configured and deterministic otherwise. Past this boundary the caller
// always receives text: provider failures downgrade to the fallback
// generator, they never propagate.
type ReportService struct {
	aiCfg      *config.AIConfig
	llm        Completer
	memory     cache.ReportCache
	persisted  repository.ReportCacheRepo
	policy     RetryPolicy
	ttl        time.Duration
	production bool
}

// NewReportService creates a new report service
func NewReportService(
	aiCfg *config.AIConfig,
	llm Completer,
	memory cache.ReportCache,
	persisted repository.ReportCacheRepo,
	ttl time.Duration,
	production bool,
) *ReportService {
	return &ReportService{
		aiCfg:      aiCfg,
		llm:        llm,
		memory:     memory,
		persisted:  persisted,
		policy:     DefaultRetryPolicy(aiCfg.MaxAttempts, time.Duration(aiCfg.BackoffMS)*time.Millisecond),
		ttl:        ttl,
		production: production,
	}
}

// Generate runs the adaptive report state machine: hash, two-tier cache
// lookup, model chain with retry, post-processing, write-through cache.
// Concurrent requests for the same cold key may both call the provider;
// the generator is idempotent and the last writer wins, so single-flight
// de-duplication is deliberately not attempted.
func (s *ReportService) Generate(ctx context.Context, results *model.AssessmentResults) (*model.ReportResult, error) {
	if results == nil || len(results.Scores) == 0 {
		return nil, errors.New("report: empty results")
	}

	key := report.ProfileHash(results)

	if entry := s.lookup(ctx, key); entry != nil {
		text := s.renormalizeLegacy(ctx, key, entry)
		return &model.ReportResult{
			Text:   text,
			Source: entry.Source,
			Cached: true,
			Err:    s.visibleErr(entry.Err),
		}, nil
	}

	if !s.aiCfg.IsEnabled() {
		// No key configured: straight to the deterministic path, no
		// network call.
		return s.fallback(ctx, key, results, ""), nil
	}

	text, genErr := s.callChain(ctx, results)
	if genErr != nil {
		if ctx.Err() != nil {
			// Caller cancelled; report it without touching the cache.
			return nil, ctx.Err()
		}
		log.Printf("report: provider chain exhausted: %v", genErr)
		return s.fallback(ctx, key, results, genErr.Error()), nil
	}

	text = report.Run(text, report.Pipeline(results))
	s.store(ctx, key, &model.CacheEntry{
		Text:      text,
		Source:    model.SourceLLM,
		ExpiresAt: time.Now().Add(s.ttl),
		UpdatedAt: time.Now(),
	})
	return &model.ReportResult{Text: text, Source: model.SourceLLM}, nil
}

// Deterministic returns the template-based report without consulting
// the provider or the cache.
func (s *ReportService) Deterministic(results *model.AssessmentResults) *model.ReportResult {
	return &model.ReportResult{Text: report.Fallback(results), Source: model.SourceFallback}
}

// lookup checks the memory tier, then the persisted tier (rehydrating
// the memory tier on a hit).
func (s *ReportService) lookup(ctx context.Context, key string) *model.CacheEntry {
	if entry, err := s.memory.Get(ctx, key); err == nil && entry != nil {
		return entry
	}
	if s.persisted == nil {
		return nil
	}
	entry, err := s.persisted.Get(ctx, key)
	if err != nil {
		log.Printf("report: persisted cache read failed: %v", err)
		return nil
	}
	if entry == nil || entry.Expired(time.Now()) {
		return nil
	}
	if err := s.memory.Put(ctx, key, entry); err != nil {
		log.Printf("report: memory cache write failed: %v", err)
	}
	return entry
}

// renormalizeLegacy reshapes cached text written under an older format
// into the current paragraph shape and writes the repaired entry back.
func (s *ReportService) renormalizeLegacy(ctx context.Context, key string, entry *model.CacheEntry) string {
	if strings.Count(entry.Text, "\n\n") == report.ParagraphCount-1 {
		return entry.Text
	}
	fixed := report.Run(entry.Text, report.RenormalizePipeline())
	if fixed != entry.Text {
		entry.Text = fixed
		entry.UpdatedAt = time.Now()
		s.store(ctx, key, entry)
	}
	return fixed
}

// callChain walks the de-duplicated model chain, applying the retry
// policy per model, and returns the first non-empty completion. Full
// exhaustion yields one aggregated error carrying the last reasons.
func (s *ReportService) callChain(ctx context.Context, results *model.AssessmentResults) (string, error) {
	prompt := report.BuildPrompt(results)
	var reasons []string

	for _, modelName := range s.aiCfg.ModelChain() {
		name := modelName
		text, err := s.policy.Do(ctx, func() (string, error) {
			attemptCtx, cancel := context.WithTimeout(ctx, time.Duration(s.aiCfg.TimeoutMS)*time.Millisecond)
			defer cancel()
			return s.llm.Complete(attemptCtx, name, report.SystemPrompt, prompt)
		})
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		reasons = append(reasons, fmt.Sprintf("%s: %v", name, err))
		if len(reasons) > maxFailureReasons {
			reasons = reasons[len(reasons)-maxFailureReasons:]
		}
	}
	return "", fmt.Errorf("all models failed: %s", strings.Join(reasons, "; "))
}

// fallback produces and caches the deterministic report. The failure
// reason rides along in the entry so repeated requests for the same
// profile stay off the failing provider until the TTL expires.
func (s *ReportService) fallback(ctx context.Context, key string, results *model.AssessmentResults, reason string) *model.ReportResult {
	text := report.Fallback(results)
	s.store(ctx, key, &model.CacheEntry{
		Text:      text,
		Source:    model.SourceFallback,
		Err:       reason,
		ExpiresAt: time.Now().Add(s.ttl),
		UpdatedAt: time.Now(),
	})
	return &model.ReportResult{
		Text:   text,
		Source: model.SourceFallback,
		Err:    s.visibleErr(reason),
	}
}

// store writes through both tiers. Persistence failures are logged and
// swallowed; the memory tier already serves the response.
func (s *ReportService) store(ctx context.Context, key string, entry *model.CacheEntry) {
	if err := s.memory.Put(ctx, key, entry); err != nil {
		log.Printf("report: memory cache write failed: %v", err)
	}
	if s.persisted == nil {
		return
	}
	if err := s.persisted.Upsert(ctx, key, entry); err != nil {
		log.Printf("report: persisted cache write failed: %v", err)
	}
}

func (s *ReportService) visibleErr(reason string) string {
	if s.production {
		return ""
	}
	return reason
}
