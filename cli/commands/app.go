// Package commands implements the runware command-line interface.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petal-labs/runware/cli/config"
	"github.com/petal-labs/runware/cli/keystore"
	"github.com/petal-labs/runware/container"
	"github.com/petal-labs/runware/logging"
	"github.com/petal-labs/runware/runware"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// ContainerFactory builds the binding container from resolved settings.
type ContainerFactory func(cfg container.Config, opts ...runware.Option) *container.Container

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig   ConfigLoader
	newKeystore  KeystoreFactory
	newContainer ContainerFactory
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer

	cfgFile    string
	apiKey     string
	jsonOutput bool
	verbose    bool
	logFile    string

	cfg    *config.Config
	logger *zap.Logger
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithContainerFactory injects the container constructor.
func WithContainerFactory(factory ContainerFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newContainer = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:   config.LoadConfig,
		newKeystore:  keystore.NewKeystore,
		newContainer: container.New,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "runware",
		Short: "runware - generate and edit images with the Runware API",
		Long: `runware is a command-line interface for the Runware image API.

Use it to generate images, inpaint, upload reference images, run PhotoMaker,
manage API keys and scaffold projects.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.handleError(a.initConfig())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.runware/config.yaml)")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "Runware API key (overrides env, config and keystore)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write logs to this file (rotated)")

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(a.newImageCommand())
	root.AddCommand(a.newInpaintCommand())
	root.AddCommand(a.newUploadCommand())
	root.AddCommand(a.newPhotoMakerCommand())
	root.AddCommand(a.newBindingsCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newInitCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Root returns the root cobra command.
func (a *App) Root() *cobra.Command {
	return a.root
}

// Execute runs the root command with process arguments. The returned error,
// if any, has already been reported and carries an exit code.
func (a *App) Execute() error {
	err := a.root.Execute()
	if err == nil {
		return nil
	}

	// Usage errors from cobra itself have not been reported yet.
	var ee *exitError
	if !errors.As(err, &ee) {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitWithCode(ExitValidation, err)
	}
	return err
}

// Run executes the CLI with the given arguments.
func (a *App) Run(args []string) error {
	a.root.SetArgs(args)
	return a.Execute()
}

func (a *App) initConfig() error {
	if err := config.LoadDotEnv(); err != nil {
		return exitWithCode(ExitValidation, err)
	}

	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Options{
		Verbose:  a.verbose,
		FilePath: a.logFile,
		Output:   a.stderr,
	})
	a.logger.Debug("config loaded", zap.String("path", path), zap.String("base_url", cfg.Runware.BaseURL))

	return nil
}

// openContainer resolves the API key and builds the binding container.
func (a *App) openContainer() (*container.Container, error) {
	var ks keystore.Keystore
	if k, err := a.newKeystore(); err == nil {
		ks = k
	} else {
		a.logger.Debug("keystore unavailable", zap.Error(err))
	}

	key, err := a.cfg.ResolveAPIKey(a.apiKey, ks)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("api key resolved", zap.String("key", key.Hint()))

	return a.newContainer(a.cfg.ContainerConfig(key), runware.WithTelemetry(logging.NewTelemetryHook(a.logger))), nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}
