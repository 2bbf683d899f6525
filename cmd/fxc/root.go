package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/fxc"
	"github.com/gogpu/fxc/config"
)

const fxcVersion = "0.1.0-dev"

// app holds the command tree and the values of its flags.
type app struct {
	stdout io.Writer
	stderr io.Writer
	diag   *diagPrinter

	cfgFile      string
	logLevel     string
	logFormat    string
	outDir       string
	glslVersion  string
	strictStages bool
	emitCounts   bool
	maxBodyBytes int
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		diag:   newDiagPrinter(stderr),
	}
}

// execute runs the command line and reports any failure on stderr.
func (a *app) execute(args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	err := root.Execute()
	if err != nil {
		a.diag.print(err)
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fxc <input.fx>",
		Short: "FX shader compiler",
		Long: `fxc compiles FX shader files into GLSL stage sources and metadata.

For every shader S in input P it writes:
  P_S.vert.glsl  - vertex stage, when defined
  P_S.frag.glsl  - fragment stage, when defined
  P_S.meta       - uniforms and vertex inputs for runtime loaders

Either all artifacts of a run are written or none are.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runCompile,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or "+config.FileName+" next to the input)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: error, warn, info, debug")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text, json")
	flags.StringVar(&a.outDir, "out-dir", "", "write artifacts to this directory")
	flags.StringVar(&a.glslVersion, "glsl-version", "", `GLSL version directive, e.g. "330 core" or "300 es"`)
	flags.BoolVar(&a.strictStages, "strict-stages", false, "reject shaders that define a stage twice")
	flags.BoolVar(&a.emitCounts, "emit-counts", false, "write real counts on metadata count lines")
	flags.IntVar(&a.maxBodyBytes, "max-body-bytes", 0, "limit transpiled body size (0 = unlimited)")

	root.AddCommand(
		a.tokensCmd(),
		a.astCmd(),
		a.inspectCmd(),
		a.watchCmd(),
		a.versionCmd(),
	)
	return root
}

// settings resolves the configuration for input and applies flag
// overrides on top of it.
func (a *app) settings(cmd *cobra.Command, input string) (*config.Config, *slog.Logger, error) {
	cfg, path, err := config.Discover(a.cfgFile, input)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("out-dir") {
		cfg.Output.Dir = a.outDir
	}
	if flags.Changed("glsl-version") {
		cfg.GLSL.Version = a.glslVersion
	}
	if flags.Changed("strict-stages") {
		cfg.Compiler.StrictStages = a.strictStages
	}
	if flags.Changed("emit-counts") {
		cfg.Meta.EmitCounts = a.emitCounts
	}
	if flags.Changed("max-body-bytes") {
		cfg.Compiler.MaxBodyBytes = a.maxBodyBytes
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger, err := newLogger(a.stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return cfg, logger, nil
}

// compileOptions resolves settings for input into compile options.
func (a *app) compileOptions(cmd *cobra.Command, input string) (fxc.CompileOptions, *config.Config, error) {
	cfg, logger, err := a.settings(cmd, input)
	if err != nil {
		return fxc.CompileOptions{}, nil, err
	}
	opts, err := fxc.OptionsFromConfig(cfg, logger)
	if err != nil {
		return fxc.CompileOptions{}, nil, err
	}
	return opts, cfg, nil
}

func (a *app) runCompile(cmd *cobra.Command, args []string) error {
	opts, _, err := a.compileOptions(cmd, args[0])
	if err != nil {
		return err
	}
	_, err = fxc.CompileFile(args[0], opts)
	return err
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fxc version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "fxc version %s\n", fxcVersion)
		},
	}
}
