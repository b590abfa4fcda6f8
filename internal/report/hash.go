package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"mindscreen/internal/model"
)

// CacheFormatVersion is folded into every profile hash so that report
// format changes invalidate old cache entries without a manual purge.
const CacheFormatVersion = "v2"

// ProfileHash computes a stable cache key from the clinically relevant
// features of a result set: normalized scores and category scores
// rounded to 4 decimals, the sorted dominant-category set, and the
// salient item indices per instrument. Two submissions whose features
// collapse to the same snapshot intentionally share a cached report.
func ProfileHash(results *model.AssessmentResults) string {
	var parts []string
	parts = append(parts, "fmt="+CacheFormatVersion)

	ids := make([]string, 0, len(results.Scores))
	for id := range results.Scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := results.Scores[id]
		parts = append(parts, fmt.Sprintf("%s=%.4f", id, s.Normalized))
		if len(s.SalientItems) > 0 {
			items := make([]string, len(s.SalientItems))
			for i, idx := range s.SalientItems {
				items[i] = fmt.Sprintf("%d", idx)
			}
			parts = append(parts, id+".items="+strings.Join(items, ","))
		}
		if s.ScreenPositive() {
			parts = append(parts, id+".screen=1")
		}
	}

	cats := make([]string, 0, len(results.CategoryScores))
	for cat := range results.CategoryScores {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)
	for _, cat := range cats {
		parts = append(parts, fmt.Sprintf("cat.%s=%.4f", cat, results.CategoryScores[model.Category(cat)]))
	}

	dominant := dominantSet(results)
	parts = append(parts, "dom="+strings.Join(dominant, ","))

	sum := sha256.Sum256([]byte(strings.Join(parts, ";")))
	return hex.EncodeToString(sum[:])
}

// dominantSet returns every category tied at the maximum normalized
// score, sorted for a canonical ordering.
func dominantSet(results *model.AssessmentResults) []string {
	max := -1.0
	for _, v := range results.CategoryScores {
		if v > max {
			max = v
		}
	}
	var out []string
	for cat, v := range results.CategoryScores {
		if v == max {
			out = append(out, string(cat))
		}
	}
	sort.Strings(out)
	return out
}
