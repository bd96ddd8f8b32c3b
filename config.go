/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Seednode/rankmatch/games/ranking"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "RANKMATCH"

type Config struct {
	bind           string
	envFile        string
	port           int
	prefix         string
	profile        bool
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool

	minPlayers   int
	lockStarted  bool
	codeLength   int
	topicChoices int
	rounds       int
	timer        int
	rateLimit    float64

	log zerolog.Logger
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.minPlayers < 2 {
		return fmt.Errorf("invalid minimum player count (must be at least 2): %d", c.minPlayers)
	}
	if c.codeLength < 3 || c.codeLength > 12 {
		return fmt.Errorf("invalid room code length (must be between 3-12 inclusive): %d", c.codeLength)
	}
	if c.topicChoices < 1 {
		return fmt.Errorf("invalid topic choice count (must be at least 1): %d", c.topicChoices)
	}
	if c.rounds < 1 || c.timer < 1 {
		return fmt.Errorf("invalid default rounds/timer (must be at least 1): %d/%d", c.rounds, c.timer)
	}
	if c.rateLimit <= 0 {
		return fmt.Errorf("invalid rate limit (must be positive): %v", c.rateLimit)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// options translates the game flags into engine options.
func (c *Config) options() ranking.Options {
	opts := ranking.DefaultOptions()

	opts.MinPlayers = c.minPlayers
	opts.LockStarted = c.lockStarted
	opts.CodeLength = c.codeLength
	opts.TopicChoices = c.topicChoices
	opts.Defaults = ranking.Settings{RoundCount: c.rounds, TimerSeconds: c.timer}
	opts.IdleTimeout = c.sessionTimeout
	opts.Logger = c.log.With().Str("component", "engine").Logger()

	return opts
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// load reads the dotenv file, then copies environment values onto every
// flag not given on the command line.
func (c *Config) load(fs *pflag.FlagSet) error {
	if err := loadEnvFile(c.envFile); err != nil {
		return err
	}

	v := newViper()

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		if f.Name == "port" {
			_ = v.BindEnv(f.Name, envPrefix+"_PORT", "PORT")
		} else {
			_ = v.BindEnv(f.Name)
		}
		if !f.Changed && v.IsSet(f.Name) {
			if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				errs = append(errs, fmt.Errorf("invalid value for %s from environment: %w", f.Name, err))
			}
		}
	})

	return errors.Join(errs...)
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func newCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rankmatch",
		Short:         "A multiplayer ranking party game: guess how your friends order things.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.load(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: RANKMATCH_BIND)")
	fs.IntVar(&cfg.codeLength, "code-length", 4, "number of letters in generated room codes (env: RANKMATCH_CODE_LENGTH)")
	fs.StringVar(&cfg.envFile, "env-file", ".env", "dotenv file to load before reading the environment (env: RANKMATCH_ENV_FILE)")
	fs.BoolVar(&cfg.lockStarted, "lock-started", true, "reject new players once a game has started (env: RANKMATCH_LOCK_STARTED)")
	fs.IntVar(&cfg.minPlayers, "min-players", 3, "players required before the host can start (env: RANKMATCH_MIN_PLAYERS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: RANKMATCH_PORT or PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: RANKMATCH_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: RANKMATCH_PROFILE)")
	fs.Float64Var(&cfg.rateLimit, "rate-limit", 20, "inbound events per second allowed per connection (env: RANKMATCH_RATE_LIMIT)")
	fs.IntVar(&cfg.rounds, "rounds", 5, "default number of rounds per game (env: RANKMATCH_ROUNDS)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle rooms are closed, 0 to disable (env: RANKMATCH_SESSION_TIMEOUT)")
	fs.IntVar(&cfg.timer, "timer", 60, "default seconds per round (env: RANKMATCH_TIMER)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: RANKMATCH_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: RANKMATCH_TLS_KEY)")
	fs.IntVar(&cfg.topicChoices, "topic-choices", 3, "premade topics offered to each spotlight (env: RANKMATCH_TOPIC_CHOICES)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: RANKMATCH_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: RANKMATCH_VERSION)")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("rankmatch v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
