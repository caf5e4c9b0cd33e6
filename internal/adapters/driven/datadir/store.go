package datadir

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driven"
)

// Table file names inside a data directory.
const (
	wavScpFile   = "wav.scp"
	uttToSpkFile = "utt2spk"
	spkToUttFile = "spk2utt"
	segmentsFile = "segments"
	recoDurFile  = "reco2dur"
	rttmFile     = "ref.rttm"
)

// Ensure Store implements the interface.
var _ driven.DataDirStore = (*Store)(nil)

// Store reads and writes corpus data directories on the local filesystem.
type Store struct{}

// NewStore creates a data directory store.
func NewStore() *Store {
	return &Store{}
}

// Load parses a source directory's table set. wav.scp and utt2spk are
// required; segments, reco2dur and ref.rttm are optional.
func (s *Store) Load(_ context.Context, path string) (*domain.DataDir, error) {
	d := &domain.DataDir{}

	wavs, err := readTable(filepath.Join(path, wavScpFile))
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %s", domain.ErrMissingInput, path, wavScpFile)
	}
	d.Wavs = wavs

	utt2spk, err := readTable(filepath.Join(path, uttToSpkFile))
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %s", domain.ErrMissingInput, path, uttToSpkFile)
	}
	d.UttToSpk = utt2spk

	segments, err := readSegments(filepath.Join(path, segmentsFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Join(path, segmentsFile), err)
	}
	d.Segments = segments

	durs, err := readDurations(filepath.Join(path, recoDurFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Join(path, recoDurFile), err)
	}
	d.RecoToDur = durs

	annotations, err := readRTTM(filepath.Join(path, rttmFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Join(path, rttmFile), err)
	}
	d.Annotations = annotations

	return d, nil
}

// Write materialises a table set into a directory. spk2utt is regenerated
// from utt2spk; optional tables are written only when the set carries them.
func (s *Store) Write(_ context.Context, path string, d *domain.DataDir) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := writeTable(filepath.Join(path, wavScpFile), d.Wavs); err != nil {
		return err
	}
	if err := writeTable(filepath.Join(path, uttToSpkFile), d.UttToSpk); err != nil {
		return err
	}
	if err := writeTable(filepath.Join(path, spkToUttFile), d.SpkToUtts()); err != nil {
		return err
	}
	if len(d.Segments) > 0 {
		if err := writeSegments(filepath.Join(path, segmentsFile), d.Segments); err != nil {
			return err
		}
	}
	if d.RecoToDur != nil {
		if err := writeDurations(filepath.Join(path, recoDurFile), d.RecoToDur); err != nil {
			return err
		}
	}
	if len(d.Annotations) > 0 {
		if err := writeRTTM(filepath.Join(path, rttmFile), d.Annotations); err != nil {
			return err
		}
	}
	return nil
}

// Merge concatenates previously written subset directories into one
// destination in subset order. A duration table is written only when every
// subset carried one, so the destination never mixes measured and absent
// durations. Annotations are concatenated when present.
func (s *Store) Merge(ctx context.Context, destination string, subsetPaths []string) error {
	if len(subsetPaths) == 0 {
		return fmt.Errorf("%w: no subset directories to merge", domain.ErrEmptyResult)
	}

	merged := &domain.DataDir{}
	allDurations := true
	for _, p := range subsetPaths {
		d, err := s.Load(ctx, p)
		if err != nil {
			return fmt.Errorf("loading subset %s: %w", p, err)
		}
		merged.Wavs = append(merged.Wavs, d.Wavs...)
		merged.UttToSpk = append(merged.UttToSpk, d.UttToSpk...)
		merged.Segments = append(merged.Segments, d.Segments...)
		merged.Annotations = append(merged.Annotations, d.Annotations...)
		if d.RecoToDur == nil {
			allDurations = false
			continue
		}
		if merged.RecoToDur == nil {
			merged.RecoToDur = make(map[string]float64)
		}
		for reco, dur := range d.RecoToDur {
			merged.RecoToDur[reco] = dur
		}
	}
	if !allDurations {
		merged.RecoToDur = nil
	}
	return s.Write(ctx, destination, merged)
}

// Validate checks a directory for required tables and dangling
// cross-references between them.
func (s *Store) Validate(ctx context.Context, path string) error {
	d, err := s.Load(ctx, path)
	if err != nil {
		return err
	}

	recos := make(map[string]bool, len(d.Wavs))
	for _, e := range d.Wavs {
		recos[e.Key] = true
	}
	utts := make(map[string]bool, len(d.UttToSpk))
	for _, e := range d.UttToSpk {
		utts[e.Key] = true
	}

	for _, seg := range d.Segments {
		if !utts[seg.UttID] {
			return fmt.Errorf("%w: %s: segment references unknown utterance %s", domain.ErrMissingInput, path, seg.UttID)
		}
		if !recos[seg.RecoID] {
			return fmt.Errorf("%w: %s: segment %s references unknown recording %s", domain.ErrMissingInput, path, seg.UttID, seg.RecoID)
		}
		if seg.End < seg.Start {
			return fmt.Errorf("%s: segment %s ends (%g) before it starts (%g)", path, seg.UttID, seg.End, seg.Start)
		}
	}
	if len(d.Segments) == 0 {
		// Whole-file utterances: utterance IDs double as recording IDs.
		for _, e := range d.UttToSpk {
			if !recos[e.Key] {
				return fmt.Errorf("%w: %s: utterance %s has no wav.scp entry", domain.ErrMissingInput, path, e.Key)
			}
		}
	}
	for reco := range d.RecoToDur {
		if !recos[reco] {
			return fmt.Errorf("%w: %s: reco2dur references unknown recording %s", domain.ErrMissingInput, path, reco)
		}
	}
	for _, a := range d.Annotations {
		if !recos[a.RecoID] {
			return fmt.Errorf("%w: %s: annotation references unknown recording %s", domain.ErrMissingInput, path, a.RecoID)
		}
	}
	return nil
}

// readTable parses a key→value table: first field is the key, the rest of
// the line (which may itself contain spaces, e.g. wav.scp pipe commands)
// is the value.
func readTable(path string) ([]domain.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []domain.Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		entries = append(entries, domain.Entry{Key: key, Value: strings.TrimSpace(value)})
	}
	return entries, scanner.Err()
}

// readSegments parses `utt_id reco_id start_sec end_sec` lines.
func readSegments(path string) ([]domain.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var segments []domain.Segment
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed segment line %q", scanner.Text())
		}
		start, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad segment start in %q: %w", scanner.Text(), err)
		}
		end, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad segment end in %q: %w", scanner.Text(), err)
		}
		segments = append(segments, domain.Segment{
			UttID:  fields[0],
			RecoID: fields[1],
			Start:  start,
			End:    end,
		})
	}
	return segments, scanner.Err()
}

// readDurations parses `reco_id seconds` lines.
func readDurations(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	durs := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed duration line %q", scanner.Text())
		}
		dur, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad duration in %q: %w", scanner.Text(), err)
		}
		durs[fields[0]] = dur
	}
	return durs, scanner.Err()
}

// readRTTM parses SPEAKER lines of an RTTM reference file:
// SPEAKER <reco> <chan> <start> <dur> <NA> <NA> <speaker> <NA> <NA>
// Other line types are passed over.
func readRTTM(path string) ([]domain.Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var annotations []domain.Annotation
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "SPEAKER" {
			continue
		}
		if len(fields) < 8 {
			return nil, fmt.Errorf("malformed RTTM line %q", scanner.Text())
		}
		start, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad RTTM start in %q: %w", scanner.Text(), err)
		}
		dur, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("bad RTTM duration in %q: %w", scanner.Text(), err)
		}
		annotations = append(annotations, domain.Annotation{
			RecoID:   fields[1],
			Channel:  fields[2],
			Start:    start,
			Duration: dur,
			Speaker:  fields[7],
		})
	}
	return annotations, scanner.Err()
}

func writeTable(path string, entries []domain.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n", e.Key, e.Value)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeSegments(path string, segments []domain.Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, s := range segments {
		fmt.Fprintf(w, "%s %s %s %s\n", s.UttID, s.RecoID, formatSeconds(s.Start), formatSeconds(s.End))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeDurations(path string, durs map[string]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	recos := make([]string, 0, len(durs))
	for reco := range durs {
		recos = append(recos, reco)
	}
	sort.Strings(recos)

	w := bufio.NewWriter(f)
	for _, reco := range recos {
		fmt.Fprintf(w, "%s %s\n", reco, formatSeconds(durs[reco]))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeRTTM(path string, annotations []domain.Annotation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, a := range annotations {
		fmt.Fprintf(w, "SPEAKER %s %s %s %s <NA> <NA> %s <NA> <NA>\n",
			a.RecoID, a.Channel, formatSeconds(a.Start), formatSeconds(a.Duration), a.Speaker)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// formatSeconds renders a timestamp with minimal digits, so round values
// stay round across a load/write cycle.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
