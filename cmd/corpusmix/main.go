// Command corpusmix builds mixed corpus subsets from multiple source data
// directories under a reproducible sampling policy.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/corpusmix-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/corpusmix-cli/internal/adapters/driven/datadir"
	"github.com/custodia-labs/corpusmix-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/corpusmix-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpusmix-cli/internal/core/services"
	"github.com/custodia-labs/corpusmix-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "corpusmix: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// CORPUSMIX_HOME overrides ~/.corpusmix for config and run manifests.
	home := os.Getenv("CORPUSMIX_HOME")

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	// The run store is optional: a failure to open it degrades to
	// unrecorded runs rather than blocking the pipeline.
	var runStore driven.RunStore
	dataDir := ""
	if home != "" {
		dataDir = filepath.Join(home, "data")
	}
	if store, err := sqlite.NewStore(dataDir); err == nil {
		runStore = store
		defer store.Close()
	} else {
		logger.Warn("run manifests disabled: %v", err)
	}

	dirStore := datadir.NewStore()
	mixService := services.NewMixService(dirStore, runStore)
	runService := services.NewRunService(runStore)

	cli.SetServices(mixService, runService, dirStore, configStore)
	return cli.Execute()
}
