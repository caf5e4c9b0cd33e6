package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

func dirWithSpeakers(speakers ...string) *domain.DataDir {
	d := &domain.DataDir{}
	for i, spk := range speakers {
		d.UttToSpk = append(d.UttToSpk, domain.Entry{
			Key:   spk + "-utt" + string(rune('a'+i)),
			Value: spk,
		})
	}
	return d
}

// TestSpeakerOverlap_Disjoint tests clean splits report nothing
func TestSpeakerOverlap_Disjoint(t *testing.T) {
	train := dirWithSpeakers("s1", "s2", "s3")
	dev := dirWithSpeakers("s4", "s5")
	assert.Empty(t, SpeakerOverlap(train, dev))
}

// TestSpeakerOverlap_Leak tests shared speakers are reported sorted
func TestSpeakerOverlap_Leak(t *testing.T) {
	train := dirWithSpeakers("s3", "s1", "s2")
	dev := dirWithSpeakers("s2", "s9", "s1")
	assert.Equal(t, []string{"s1", "s2"}, SpeakerOverlap(train, dev))
}
