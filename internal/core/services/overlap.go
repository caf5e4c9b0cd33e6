package services

import (
	"sort"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

// SpeakerOverlap returns the speakers present in both table sets, sorted.
// Train/dev splits are expected to share no speakers; a non-empty result
// means the split leaks.
func SpeakerOverlap(a, b *domain.DataDir) []string {
	inA := make(map[string]bool)
	for _, spk := range a.Speakers() {
		inA[spk] = true
	}
	var overlap []string
	seen := make(map[string]bool)
	for _, spk := range b.Speakers() {
		if inA[spk] && !seen[spk] {
			seen[spk] = true
			overlap = append(overlap, spk)
		}
	}
	sort.Strings(overlap)
	return overlap
}
