// Package cli implements the boxctl command-line interface: comment and
// metadata template commands against the API, and a local sandbox server.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/boxsdk/internal/logging"
	"github.com/mesh-intelligence/boxsdk/internal/paths"
	"github.com/mesh-intelligence/boxsdk/pkg/box"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by one command tree: flags, loaded config, and
// the logger built from it.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	log       *logrus.Logger
}

// NewRootCmd creates the top-level "boxctl" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "boxctl",
		Short: "Work with comments and metadata templates",
		Long: "boxctl replies to and edits comments, and creates and updates metadata\n" +
			"templates, against the API or a local sandbox.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "sandbox data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newCommentCmd())
	root.AddCommand(a.newTemplateCmd())
	root.AddCommand(a.newSandboxCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}

// setup resolves the config directory, loads config.yaml, and builds the
// logger. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = dir

	a.cfg, err = loadConfig(dir)
	if err != nil {
		return userError(err)
	}

	a.log, err = logging.New(a.cfg.GetString(cfgKeyLogLevel), a.cfg.GetString(cfgKeyLogFormat), cmd.ErrOrStderr())
	if err != nil {
		return userError(err)
	}
	return nil
}

// dataDir returns the sandbox data directory:
// --data-dir > config.yaml data_dir > BOXCTL_DATA_DIR > platform default.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
}

// client builds an API client from the loaded configuration.
func (a *app) client() (*box.Client, error) {
	c, err := box.NewClient(clientConfig(a.cfg), box.WithLogger(a.log))
	if err != nil {
		return nil, userError(fmt.Errorf("client config: %w", err))
	}
	return c, nil
}

// printer returns the output writer for cmd in the mode selected by --json
// and the terminal check.
func (a *app) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), a.flags.jsonMode)
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// apiError classifies an error returned by the client. 4xx responses are
// the user's to fix; server errors and transport failures are not.
func apiError(err error) error {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
		return userError(err)
	}
	return sysError(err)
}

// exitCode maps an Execute error to the process exit code. Errors not
// classified by a command, such as argument validation, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// readInput reads a file argument, where "-" means r.
func readInput(path string, r io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(r)
	}
	return os.ReadFile(path)
}
