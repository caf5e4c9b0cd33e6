package domain

import "strings"

// Entry is one record of a key→value table such as wav.scp or utt2spk.
// Order is preserved from the file so that selection stays deterministic.
type Entry struct {
	Key   string
	Value string
}

// Segment is one time-bounded slice of a recording, keyed by utterance.
type Segment struct {
	UttID  string
	RecoID string
	Start  float64
	End    float64
}

// Annotation is one time-aligned reference annotation (RTTM SPEAKER line).
type Annotation struct {
	RecoID   string
	Channel  string
	Start    float64
	Duration float64
	Speaker  string
}

// DataDir is the parsed table set of one source directory.
// The tables are semantically immutable; transforms return new values.
type DataDir struct {
	// Wavs maps recording IDs to stream specs (wav.scp), in file order.
	Wavs []Entry

	// UttToSpk maps utterance IDs to speaker IDs (utt2spk), in file order.
	UttToSpk []Entry

	// Segments is the utterance segment table, in file order.
	// Empty when the corpus has no segments file (whole-file utterances).
	Segments []Segment

	// RecoToDur holds precomputed per-recording durations in seconds.
	// Nil when the corpus carries no duration table.
	RecoToDur map[string]float64

	// Annotations holds optional time-aligned reference annotations.
	Annotations []Annotation
}

// Items returns the ordered identifiers selectable under the given unit.
// Recording items come from wav.scp order, utterance items from utt2spk
// order, and speaker items in order of first appearance in utt2spk.
func (d *DataDir) Items(unit SelectionUnit) []string {
	switch unit {
	case UnitRecording:
		ids := make([]string, 0, len(d.Wavs))
		for _, e := range d.Wavs {
			ids = append(ids, e.Key)
		}
		return ids
	case UnitSpeaker:
		seen := make(map[string]bool, len(d.UttToSpk))
		var ids []string
		for _, e := range d.UttToSpk {
			if !seen[e.Value] {
				seen[e.Value] = true
				ids = append(ids, e.Value)
			}
		}
		return ids
	default: // UnitUtterance
		ids := make([]string, 0, len(d.UttToSpk))
		for _, e := range d.UttToSpk {
			ids = append(ids, e.Key)
		}
		return ids
	}
}

// uttToReco builds the utterance→recording map from the segments table.
// Without a segments table the utterance ID doubles as the recording ID.
func (d *DataDir) uttToReco() map[string]string {
	m := make(map[string]string, len(d.Segments))
	for _, s := range d.Segments {
		m[s.UttID] = s.RecoID
	}
	return m
}

// Subset filters the table set down to the selected item identifiers,
// interpreted under the given unit. All derived tables stay consistent:
// keeping a recording keeps its utterances, keeping a speaker keeps that
// speaker's utterances, and wav.scp shrinks to the recordings still
// referenced.
func (d *DataDir) Subset(unit SelectionUnit, selected []string) *DataDir {
	pick := make(map[string]bool, len(selected))
	for _, id := range selected {
		pick[id] = true
	}

	uttReco := d.uttToReco()
	recoOf := func(uttID string) string {
		if reco, ok := uttReco[uttID]; ok {
			return reco
		}
		return uttID
	}
	keepUtt := func(e Entry) bool {
		switch unit {
		case UnitRecording:
			return pick[recoOf(e.Key)]
		case UnitSpeaker:
			return pick[e.Value]
		default:
			return pick[e.Key]
		}
	}

	sub := &DataDir{}
	keptUtts := make(map[string]bool)
	keptRecos := make(map[string]bool)
	for _, e := range d.UttToSpk {
		if !keepUtt(e) {
			continue
		}
		sub.UttToSpk = append(sub.UttToSpk, e)
		keptUtts[e.Key] = true
		keptRecos[recoOf(e.Key)] = true
	}
	for _, s := range d.Segments {
		if keptUtts[s.UttID] {
			sub.Segments = append(sub.Segments, s)
		}
	}
	for _, e := range d.Wavs {
		if keptRecos[e.Key] {
			sub.Wavs = append(sub.Wavs, e)
		}
	}
	if d.RecoToDur != nil {
		sub.RecoToDur = make(map[string]float64)
		for reco, dur := range d.RecoToDur {
			if keptRecos[reco] {
				sub.RecoToDur[reco] = dur
			}
		}
	}
	for _, a := range d.Annotations {
		if keptRecos[a.RecoID] {
			sub.Annotations = append(sub.Annotations, a)
		}
	}
	return sub
}

// Prefixed returns a copy with every identifier and cross-reference
// rewritten under the prefix: utterance, speaker and recording IDs in
// utt2spk, segments, wav.scp and annotations. An empty prefix returns the
// receiver unchanged.
func (d *DataDir) Prefixed(prefix string) *DataDir {
	if prefix == "" {
		return d
	}
	out := &DataDir{}
	for _, e := range d.Wavs {
		out.Wavs = append(out.Wavs, Entry{Key: prefix + e.Key, Value: e.Value})
	}
	for _, e := range d.UttToSpk {
		out.UttToSpk = append(out.UttToSpk, Entry{Key: prefix + e.Key, Value: prefix + e.Value})
	}
	for _, s := range d.Segments {
		out.Segments = append(out.Segments, Segment{
			UttID:  prefix + s.UttID,
			RecoID: prefix + s.RecoID,
			Start:  s.Start,
			End:    s.End,
		})
	}
	if d.RecoToDur != nil {
		out.RecoToDur = make(map[string]float64, len(d.RecoToDur))
		for reco, dur := range d.RecoToDur {
			out.RecoToDur[prefix+reco] = dur
		}
	}
	for _, a := range d.Annotations {
		a.RecoID = prefix + a.RecoID
		a.Speaker = prefix + a.Speaker
		out.Annotations = append(out.Annotations, a)
	}
	return out
}

// SpkToUtts regenerates the speaker→utterances table from utt2spk.
// Speakers appear in order of first utterance; utterances keep file order.
func (d *DataDir) SpkToUtts() []Entry {
	utts := make(map[string][]string)
	var order []string
	for _, e := range d.UttToSpk {
		if _, ok := utts[e.Value]; !ok {
			order = append(order, e.Value)
		}
		utts[e.Value] = append(utts[e.Value], e.Key)
	}
	out := make([]Entry, 0, len(order))
	for _, spk := range order {
		out = append(out, Entry{Key: spk, Value: strings.Join(utts[spk], " ")})
	}
	return out
}

// Speakers returns the distinct speaker IDs in order of first appearance.
func (d *DataDir) Speakers() []string {
	return d.Items(UnitSpeaker)
}
