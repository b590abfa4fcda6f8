package registry_test

import (
	"testing"

	"mindscreen/internal/model"
	"mindscreen/internal/registry"
	"mindscreen/internal/scoring"
)

func TestCatalogThresholdsPartitionScoreDomain(t *testing.T) {
	reg := registry.New()
	for _, def := range reg.All() {
		def := def
		t.Run(def.ID, func(t *testing.T) {
			max := def.MaxScore()
			for s := 0; s <= max; s++ {
				matches := 0
				for _, th := range def.Thresholds {
					if float64(s) >= th.Min && float64(s) <= th.Max {
						matches++
					}
				}
				if matches != 1 {
					t.Fatalf("score %d matched %d thresholds, want exactly 1", s, matches)
				}
			}
		})
	}
}

func TestCatalogExtremesHitOuterBands(t *testing.T) {
	reg := registry.New()
	for _, def := range reg.All() {
		def := def
		t.Run(def.ID, func(t *testing.T) {
			zeros := make([]float64, len(def.Items))
			maxed := make([]float64, len(def.Items))
			for i := range maxed {
				maxed[i] = float64(def.ItemMax(i))
			}

			low, err := scoring.Score(def, zeros)
			if err != nil {
				t.Fatalf("zero vector: %v", err)
			}
			if low.Interpretation.Label != def.Thresholds[0].Label {
				t.Errorf("zero vector got band %q, want %q", low.Interpretation.Label, def.Thresholds[0].Label)
			}

			high, err := scoring.Score(def, maxed)
			if err != nil {
				t.Fatalf("max vector: %v", err)
			}
			top := def.Thresholds[len(def.Thresholds)-1]
			if high.Interpretation.Label != top.Label {
				t.Errorf("max vector got band %q, want %q", high.Interpretation.Label, top.Label)
			}
			if high.Normalized != 1 {
				t.Errorf("max vector normalized = %v, want 1", high.Normalized)
			}
		})
	}
}

func TestGetAndCategories(t *testing.T) {
	reg := registry.New()
	if reg.Get("phq9") == nil {
		t.Fatal("phq9 missing from catalog")
	}
	if reg.Get("nope") != nil {
		t.Fatal("unexpected instrument for unknown id")
	}
	if got := len(reg.ByCategory(model.CategoryDepression)); got != 2 {
		t.Errorf("depression instruments = %d, want 2 (phq9, mdq)", got)
	}
	seen := map[model.Category]bool{}
	for _, def := range reg.All() {
		seen[def.Category] = true
	}
	for _, cat := range model.CategoryPriority {
		if !seen[cat] {
			t.Errorf("no instrument screens category %q", cat)
		}
	}
}
