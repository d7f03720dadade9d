// Package cli wires the azdo-buildstats commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Elpulgo/azdo-buildstats/internal/azdevops"
	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
	"github.com/Elpulgo/azdo-buildstats/internal/config"
	"github.com/Elpulgo/azdo-buildstats/internal/render"
	"github.com/Elpulgo/azdo-buildstats/internal/ui/styles"
	"github.com/Elpulgo/azdo-buildstats/internal/version"
)

// PATStore reads and writes the personal access token.
type PATStore interface {
	GetPAT() (string, error)
	SetPAT(token string) error
	ResolvePAT() (string, error)
}

// Deps are the collaborators the commands use. Tests replace them.
type Deps struct {
	Out io.Writer
	Err io.Writer

	// LoadConfig reads the config. An empty path uses the default location.
	LoadConfig func(path string) (*config.Config, error)
	// NewSource builds the build source for a config and PAT. Transport logs go to log.
	NewSource func(cfg *config.Config, pat string, log *logrus.Entry) (buildstats.BuildSource, error)
	// Store holds the PAT.
	Store PATStore
	// RunProgram runs a Bubble Tea program to completion.
	RunProgram func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error)
	// Version checks for newer releases.
	Version *version.Checker
}

// DefaultDeps returns the production collaborators.
func DefaultDeps() Deps {
	return Deps{
		Out:        os.Stdout,
		Err:        os.Stderr,
		LoadConfig: loadConfig,
		NewSource:  newAzureSource,
		Store:      config.NewKeyringStore(),
		RunProgram: func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
			return tea.NewProgram(m, opts...).Run()
		},
		Version: version.NewChecker(version.Version),
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func newAzureSource(cfg *config.Config, pat string, log *logrus.Entry) (buildstats.BuildSource, error) {
	return azdevops.NewMultiClient(cfg.Organization, cfg.Projects, pat,
		azdevops.WithRetryMax(cfg.RetryMax),
		azdevops.WithLogger(log.WithField("component", "azdevops")),
	)
}

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	output     string
}

// env is the state a command runs with once config and logging are set up.
type env struct {
	deps   Deps
	cfg    *config.Config
	log    *logrus.Entry
	styles *styles.Styles
}

// NewRootCommand builds the command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:   "azdo-buildstats",
		Short: "Build status and downtime statistics for Azure DevOps",
		Long: `azdo-buildstats reports the status of Azure DevOps build definitions,
counts failures over the last day and estimates downtime from failing runs.

Configuration is read from ~/.config/azdo-buildstats/config.yaml unless --config
is given. AZDO_* environment variables override file values, and the PAT is read
from the system keyring or AZDO_PAT.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(deps.Out)
	cmd.SetErr(deps.Err)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to the config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); defaults to the config value")
	flags.StringVarP(&opts.output, "output", "o", string(render.FormatTable), "Output format: table, json or yaml")

	cmd.AddCommand(
		newReportCmd(deps, &opts),
		newStatsCmd(deps, &opts),
		newDowntimeCmd(deps, &opts),
		newWatchCmd(deps, &opts),
		newAuthCmd(deps),
		newVersionCmd(deps),
	)
	return cmd
}

// setup loads the config and creates the logger for a command.
func (o *globalOptions) setup(deps Deps) (*env, error) {
	cfg, err := deps.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	levelName := o.logLevel
	if levelName == "" {
		levelName = cfg.GetLogLevel()
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(deps.Err)
	logger.SetLevel(level)

	return &env{
		deps:   deps,
		cfg:    cfg,
		log:    logrus.NewEntry(logger).WithField("organization", cfg.Organization),
		styles: styles.NewStyles(styles.GetThemeByNameWithFallback(cfg.GetTheme())),
	}, nil
}

// renderer returns a renderer for the --output flag.
func (o *globalOptions) renderer(e *env) (*render.Renderer, error) {
	format, err := render.ParseFormat(o.output)
	if err != nil {
		return nil, err
	}
	return render.New(e.deps.Out, format, e.styles), nil
}

// service resolves the PAT and builds a Service over the configured source.
func (e *env) service(wrap func(buildstats.BuildSource) buildstats.BuildSource) (*buildstats.Service, error) {
	pat, err := e.deps.Store.ResolvePAT()
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, fmt.Errorf("no PAT found\nHint: run 'azdo-buildstats auth' or set %s", config.PATEnvVar)
		}
		return nil, fmt.Errorf("failed to get PAT: %w", err)
	}

	source, err := e.deps.NewSource(e.cfg, pat, e.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure DevOps client: %w", err)
	}
	if wrap != nil {
		source = wrap(source)
	}
	return buildstats.NewService(source, e.log), nil
}
