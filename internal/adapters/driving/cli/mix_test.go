package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpusmix-cli/internal/adapters/driven/datadir"
	"github.com/custodia-labs/corpusmix-cli/internal/core/services"
)

// writeSourceDir builds a data directory with n whole-file utterances.
func writeSourceDir(t *testing.T, root, name string, n int) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	var wavs, utt2spk, reco2dur bytes.Buffer
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-utt%03d", name, i)
		fmt.Fprintf(&wavs, "%s /audio/%s.wav\n", id, id)
		fmt.Fprintf(&utt2spk, "%s %s-spk%d\n", id, name, i%3)
		fmt.Fprintf(&reco2dur, "%s 2.5\n", id)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wav.scp"), wavs.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "utt2spk"), utt2spk.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reco2dur"), reco2dur.Bytes(), 0o644))
	return dir
}

// wireRealServices injects services backed by the real datadir store.
func wireRealServices(t *testing.T) {
	t.Helper()
	dirs := datadir.NewStore()
	SetServices(services.NewMixService(dirs, nil), services.NewRunService(nil), dirs, nil)
	t.Cleanup(func() {
		SetServices(nil, nil, nil, nil)
	})
}

// resetSliceFlags clears repeatable flag values between executions.
func resetSliceFlags() {
	mixFlags.sources = nil
	mixFlags.percentages = nil
	mixFlags.counts = nil
	planFlags.sources = nil
	planFlags.percentages = nil
	planFlags.counts = nil
	devSources = nil
	devPercentages = nil
	devCounts = nil
	devDestination = ""
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

// TestMixCmd_EndToEnd tests the full pipeline against on-disk fixtures
func TestMixCmd_EndToEnd(t *testing.T) {
	wireRealServices(t)
	resetSliceFlags()

	root := t.TempDir()
	srcA := writeSourceDir(t, root, "ami", 20)
	srcB := writeSourceDir(t, root, "icsi", 20)
	dest := filepath.Join(root, "mixed")

	out, err := execute(t,
		"mix",
		"--source", srcA, "--source", srcB,
		"--dest", dest,
		"--unit", "utterance",
		"--target", "10",
		"--seed", "123",
		"--prefix", "index",
		"--weights", "uniform",
	)
	require.NoError(t, err, out)

	// Destination carries the merged tables.
	store := datadir.NewStore()
	merged, err := store.Load(context.Background(), dest)
	require.NoError(t, err)
	assert.Len(t, merged.UttToSpk, 10)
	for _, e := range merged.UttToSpk[:5] {
		assert.Contains(t, e.Key, "p1_ami-")
	}
	for _, e := range merged.UttToSpk[5:] {
		assert.Contains(t, e.Key, "p2_icsi-")
	}

	// Report shows percentages and the duration summary.
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Duration summary")
	assert.Contains(t, out, "0:00:25") // 10 utterances at 2.5s
}

// TestMixCmd_InsufficientData tests a fatal abort leaves no destination
func TestMixCmd_InsufficientData(t *testing.T) {
	wireRealServices(t)
	resetSliceFlags()

	root := t.TempDir()
	src := writeSourceDir(t, root, "tiny", 3)
	dest := filepath.Join(root, "mixed")

	out, err := execute(t,
		"mix",
		"--source", src,
		"--dest", dest,
		"--unit", "utterance",
		"--target", "10",
		"--seed", "1",
		"--prefix", "none",
		"--weights", "uniform",
		"--cap=false",
	)
	require.Error(t, err, out)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "destination must not exist after a failed run")
}

// TestMixCmd_DevPass tests the optional second pass is independent
func TestMixCmd_DevPass(t *testing.T) {
	wireRealServices(t)
	resetSliceFlags()

	root := t.TempDir()
	src := writeSourceDir(t, root, "ami", 30)
	trainDest := filepath.Join(root, "train")
	devDest := filepath.Join(root, "dev")

	out, err := execute(t,
		"mix",
		"--source", src,
		"--dest", trainDest,
		"--unit", "utterance",
		"--target", "8",
		"--seed", "5",
		"--prefix", "none",
		"--weights", "uniform",
		"--dev-dest", devDest,
		"--dev-target", "4",
		"--dev-seed", "99",
	)
	require.NoError(t, err, out)

	store := datadir.NewStore()
	train, err := store.Load(context.Background(), trainDest)
	require.NoError(t, err)
	dev, err := store.Load(context.Background(), devDest)
	require.NoError(t, err)
	assert.Len(t, train.UttToSpk, 8)
	assert.Len(t, dev.UttToSpk, 4)
}

// TestMixCmd_DevPassOwnComposition tests the dev pass takes its own
// explicit counts, prefix mode and cap, independent of the train flags
func TestMixCmd_DevPassOwnComposition(t *testing.T) {
	wireRealServices(t)
	resetSliceFlags()

	root := t.TempDir()
	srcA := writeSourceDir(t, root, "ami", 20)
	srcB := writeSourceDir(t, root, "icsi", 20)
	trainDest := filepath.Join(root, "train")
	devDest := filepath.Join(root, "dev")

	out, err := execute(t,
		"mix",
		"--source", srcA, "--source", srcB,
		"--dest", trainDest,
		"--unit", "utterance",
		"--target", "8",
		"--seed", "5",
		"--prefix", "index",
		"--weights", "uniform",
		"--dev-dest", devDest,
		"--dev-count", "3", "--dev-count", "1",
		"--dev-prefix", "name",
		"--dev-cap",
	)
	require.NoError(t, err, out)

	store := datadir.NewStore()
	train, err := store.Load(context.Background(), trainDest)
	require.NoError(t, err)
	require.Len(t, train.UttToSpk, 8)
	assert.Contains(t, train.UttToSpk[0].Key, "p1_ami-")

	dev, err := store.Load(context.Background(), devDest)
	require.NoError(t, err)
	require.Len(t, dev.UttToSpk, 4)
	for _, e := range dev.UttToSpk[:3] {
		assert.Contains(t, e.Key, "ami_ami-")
	}
	assert.Contains(t, dev.UttToSpk[3].Key, "icsi_icsi-")
}

// TestPlanCmd tests planning prints the allocation without touching disk
func TestPlanCmd(t *testing.T) {
	wireRealServices(t)
	resetSliceFlags()

	out, err := execute(t,
		"plan",
		"--source", "/nonexistent/a",
		"--source", "/nonexistent/b",
		"--source", "/nonexistent/c",
		"--source", "/nonexistent/d",
		"--unit", "utterance",
		"--target", "100",
		"--weights", "uniform",
		"--prefix", "index",
		"--seed", "7",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "25 items")
	assert.Contains(t, out, "total 100 items")
}

// TestPlanCmd_ConflictingOverrides tests percentage/count exclusivity
func TestPlanCmd_ConflictingOverrides(t *testing.T) {
	wireRealServices(t)
	resetSliceFlags()

	_, err := execute(t,
		"plan",
		"--source", "/a", "--source", "/b",
		"--unit", "utterance",
		"--target", "10",
		"--weights", "uniform",
		"--prefix", "index",
		"--percentage", "50", "--percentage", "50",
		"--count", "5", "--count", "5",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
