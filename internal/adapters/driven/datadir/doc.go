// Package datadir implements driven.DataDirStore over Kaldi-style corpus
// data directories: whitespace-delimited table files with one record per
// line (wav.scp, utt2spk, spk2utt, segments, reco2dur, ref.rttm).
//
// The store treats table files as semantically immutable: loads parse into
// domain.DataDir values, writes always regenerate derived tables (spk2utt)
// from the primary ones, and merges concatenate previously written subset
// directories without rewriting identifiers.
package datadir
