package application

import (
	"errors"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eugenenazirov/perfconfig/internal/config"
	"github.com/eugenenazirov/perfconfig/internal/options"
	"github.com/eugenenazirov/perfconfig/internal/render"
)

// ErrCheckFailed is returned by Check when any option has a malformed value.
var ErrCheckFailed = errors.New("one or more options are malformed")

// App holds the resolved option set and the settings used to present it.
type App struct {
	cfg    config.Config
	set    options.Set
	logger *zap.Logger
}

// New resolves the option set once from every configured source.
// Precedence: --set flags > YAML options > process environment > env files > link-time values
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	sources, err := BuildSources(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build option sources: %w", err)
	}

	set := options.Resolve(sources...)
	logResolved(logger, set)

	return &App{
		cfg:    cfg,
		set:    set,
		logger: logger,
	}, nil
}

// BuildSources returns the option sources for cfg ordered by precedence.
// lookup replaces os.LookupEnv when non-nil.
func BuildSources(cfg config.Config, lookup options.LookupEnv) ([]options.Source, error) {
	sources := []options.Source{
		cfg.Assignments,
		cfg.Options,
		options.EnvSource(cfg.EnvPrefix, lookup),
	}

	if len(cfg.EnvFiles) > 0 {
		vars, err := godotenv.Read(cfg.EnvFiles...)
		if err != nil {
			return nil, fmt.Errorf("read env files: %w", err)
		}
		sources = append(sources, options.EnvSource(cfg.EnvPrefix, func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		}))
	}

	return append(sources, options.BuildSource()), nil
}

// Set returns the resolved options.
func (a *App) Set() options.Set {
	return a.set
}

// Show renders the resolved options in the configured format.
func (a *App) Show(w io.Writer) error {
	return render.Write(w, a.set, a.cfg.Format, render.Options{
		Redact:    a.cfg.RedactSecrets,
		EnvPrefix: a.cfg.EnvPrefix,
	})
}

// Check writes one line per malformed option and returns ErrCheckFailed if any were found.
func (a *App) Check(w io.Writer) error {
	problems := options.Check(a.set)
	for _, p := range problems {
		fmt.Fprintln(w, p)
		a.logger.Warn("malformed option", zap.String("name", string(p.Name)), zap.Stringer("kind", p.Kind))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d problem(s)", ErrCheckFailed, len(problems))
	}
	fmt.Fprintf(w, "ok: %d of %d options set\n", a.set.Present(), len(options.Names()))
	return nil
}

// Keys lists the option catalog with the configured prefix.
func (a *App) Keys(w io.Writer) error {
	return render.WriteKeys(w, options.Specs(), a.cfg.EnvPrefix)
}

func logResolved(logger *zap.Logger, set options.Set) {
	defined := make([]string, 0, set.Present())
	for _, e := range set.Entries() {
		if !e.Value.IsSet() {
			continue
		}
		defined = append(defined, string(e.Name))

		spec, _ := options.SpecFor(e.Name)
		if spec.Secret {
			continue
		}
		logger.Debug("option resolved", zap.String("name", string(e.Name)), zap.Stringer("value", e.Value))
	}
	logger.Info("options resolved",
		zap.Int("present", len(defined)),
		zap.Int("total", len(options.Names())),
		zap.Strings("defined", defined),
	)
}
