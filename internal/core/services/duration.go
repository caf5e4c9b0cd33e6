package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

// SubsetDuration computes the total wall-clock duration of a table set in
// seconds. A precomputed per-recording duration table takes priority; when
// absent, per-recording durations are derived from the segment table as
// max(end) - min(start) per recording. With neither, the second return is
// false: there is no duration information and none is fabricated.
func SubsetDuration(d *domain.DataDir) (float64, bool) {
	if d.RecoToDur != nil {
		total := 0.0
		for _, dur := range d.RecoToDur {
			total += dur
		}
		return total, true
	}
	if len(d.Segments) == 0 {
		return 0, false
	}
	type span struct {
		min, max float64
	}
	spans := make(map[string]span)
	for _, s := range d.Segments {
		sp, ok := spans[s.RecoID]
		if !ok {
			spans[s.RecoID] = span{min: s.Start, max: s.End}
			continue
		}
		if s.Start < sp.min {
			sp.min = s.Start
		}
		if s.End > sp.max {
			sp.max = s.End
		}
		spans[s.RecoID] = sp
	}
	total := 0.0
	for _, sp := range spans {
		total += sp.max - sp.min
	}
	return total, true
}

// FormatDuration renders seconds as H:MM:SS, rounded to the nearest
// second. Display only: aggregated values keep full precision.
func FormatDuration(seconds float64) string {
	total := int64(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
