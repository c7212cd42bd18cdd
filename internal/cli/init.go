package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/boxsdk/internal/sqlite"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml and create the sandbox database",
		Long: "Create the configuration directory and a default config.yaml if missing,\n" +
			"then create the sandbox database in the data directory.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	dataDir, err := a.dataDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}
	cfgPath := configPath(a.configDir)
	written, err := writeConfigIfMissing(cfgPath, defaultConfigFile())
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	store := sqlite.NewStore()
	if err := store.Open(dataDir); err != nil {
		return sysError(fmt.Errorf("initialize sandbox store: %w", err))
	}
	if err := store.Close(); err != nil {
		return sysError(fmt.Errorf("close sandbox store: %w", err))
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "Wrote %s\n", cfgPath)
	}
	fmt.Fprintf(out, "Sandbox data directory: %s\n", dataDir)
	return nil
}
