package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/perfconfig/internal/application"
	"github.com/eugenenazirov/perfconfig/internal/config"
	"github.com/eugenenazirov/perfconfig/internal/logging"
)

const (
	commandShow  = "show"
	commandCheck = "check"
	commandKeys  = "keys"
)

type cliFlags struct {
	configFile  *string
	format      *string
	prefix      *string
	envFiles    *[]string
	assignments *[]string
	redact      *bool
	redactSet   bool
	logLevel    *string
}

func newApp() (*kingpin.Application, *cliFlags) {
	kingpinApp := kingpin.New("perfconfig", "Resolves the sync performance harness options from the environment, files and flags")
	flags := &cliFlags{}
	flags.configFile = kingpinApp.Flag("config", "Path to YAML configuration file").String()
	flags.format = kingpinApp.Flag("format", "Output format: text, json, yaml or env").Short('f').String()
	flags.prefix = kingpinApp.Flag("prefix", "Environment variable prefix for options").String()
	flags.envFiles = kingpinApp.Flag("env-file", "Dotenv file with option definitions (repeatable)").Strings()
	flags.assignments = kingpinApp.Flag("set", "Option definition KEY=VALUE (repeatable, highest precedence)").Short('s').Strings()
	flags.redact = kingpinApp.Flag("redact", "Mask secret option values in output").IsSetByUser(&flags.redactSet).Bool()
	flags.logLevel = kingpinApp.Flag("log-level", "Log level: debug, info, warn or error").String()

	kingpinApp.Command(commandShow, "Print every resolved option").Default()
	kingpinApp.Command(commandCheck, "Verify that defined options have the expected shape")
	kingpinApp.Command(commandKeys, "List the recognized option names")

	return kingpinApp, flags
}

func (f *cliFlags) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile:  *f.configFile,
		EnvFiles:    *f.envFiles,
		Assignments: *f.assignments,
	}

	if *f.format != "" {
		overrides.Format = f.format
	}

	if *f.prefix != "" {
		overrides.EnvPrefix = f.prefix
	}

	if f.redactSet {
		overrides.Redact = f.redact
	}

	if *f.logLevel != "" {
		overrides.LogLevel = f.logLevel
	}

	return overrides
}

func main() {
	kingpinApp, flags := newApp()
	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	if err := run(command, flags, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "perfconfig: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, flags *cliFlags, stdout io.Writer) error {
	cfg, err := config.Load(flags.overrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return err
	}

	switch command {
	case commandCheck:
		return app.Check(stdout)
	case commandKeys:
		return app.Keys(stdout)
	default:
		return app.Show(stdout)
	}
}
