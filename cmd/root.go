package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/enernova/enernova/internal/app"
	"github.com/enernova/enernova/internal/authclient"
	"github.com/enernova/enernova/internal/authclient/httpauth"
	"github.com/enernova/enernova/internal/authclient/localauth"
	"github.com/enernova/enernova/internal/config"
	"github.com/enernova/enernova/internal/i18n"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/registration"
	"github.com/enernova/enernova/internal/session"
	"github.com/enernova/enernova/internal/tracing"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC 11 reply cannot land in a text input.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const envPrefix = "ENERNOVA"

var envKeyReplacer = strings.NewReplacer(".", "_")

// defaultConfigPath is created when no config file is found.
const defaultConfigPath = ".enernova/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "enernova",
	Short:   "EnerNova contributor registration",
	Long:    `A terminal client for creating an EnerNova contributor account and entering the contributor area.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/enernova/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log and enable the log panel (ctrl+x)")
	rootCmd.PersistentFlags().String("locale", "", "interface language (id-ID or en-US)")
	rootCmd.PersistentFlags().String("backend", "", "account backend (local or http)")

	_ = viper.BindPFlag("locale", rootCmd.PersistentFlags().Lookup("locale"))
	_ = viper.BindPFlag("auth.backend", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .enernova/config.yaml (current directory)
		// 2. ~/.config/enernova/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "enernova"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				viper.SetConfigFile(defaultConfigPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setDefaults registers every default and the ENERNOVA_ environment
// overrides (ENERNOVA_AUTH_BACKEND, ENERNOVA_TRACING_ENABLED, ...).
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("locale", d.Locale)
	v.SetDefault("auth.backend", d.Auth.Backend)
	v.SetDefault("auth.base_url", d.Auth.BaseURL)
	v.SetDefault("auth.timeout", d.Auth.Timeout)
	v.SetDefault("auth.local_db", d.Auth.LocalDB)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
}

// initLogging enables the debug log when --debug or ENERNOVA_DEBUG is set.
// ENERNOVA_LOG names the file and ENERNOVA_LOG_LEVEL the minimum level.
// The returned cleanup is never nil.
func initLogging(prefix string) (func(), error) {
	if !debugEnabled() {
		return func() {}, nil
	}
	logPath := os.Getenv(envPrefix + "_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	if raw := os.Getenv(envPrefix + "_LOG_LEVEL"); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "debug logging enabled", "path", logPath, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

func debugEnabled() bool {
	return debugFlag || os.Getenv(envPrefix+"_DEBUG") != ""
}

// newBackend builds the configured account backend. The returned close
// function releases what the backend holds.
func newBackend(c config.Config, tr registration.Translator) (authclient.Backend, func() error, error) {
	switch c.Auth.Backend {
	case config.BackendHTTP:
		b, err := httpauth.New(c.Auth.BaseURL)
		if err != nil {
			return nil, nil, err
		}
		return b, func() error { return nil }, nil

	default:
		b, db, err := newLocalBackend(c, tr)
		if err != nil {
			return nil, nil, err
		}
		return b, db.Close, nil
	}
}

func newLocalBackend(c config.Config, tr registration.Translator) (*localauth.Backend, *localauth.DB, error) {
	lcfg, err := localauth.LoadConfigFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("local auth config: %w", err)
	}
	db, err := localauth.NewDB(config.ExpandHome(c.Auth.LocalDB))
	if err != nil {
		return nil, nil, fmt.Errorf("opening account database: %w", err)
	}
	b, err := localauth.New(db, lcfg, localauth.WithTranslator(tr))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return b, db, nil
}

func newTracing(c config.Config) (*tracing.Provider, error) {
	tc := c.Tracing
	tc.FilePath = config.ExpandHome(tc.FilePath)
	p, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	return p, nil
}

func runApp(_ *cobra.Command, _ []string) error {
	cleanup, err := initLogging("enernova")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	tp, err := newTracing(cfg)
	if err != nil {
		return err
	}
	defer shutdownTracing(tp)

	tr := i18n.NewActive(cfg.Locale)
	backend, closeBackend, err := newBackend(cfg, tr)
	if err != nil {
		return err
	}
	defer func() { _ = closeBackend() }()

	sessions := session.NewManager()
	if err := sessions.Init(context.Background()); err != nil {
		return fmt.Errorf("initializing sessions: %w", err)
	}
	defer sessions.Close()

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = defaultConfigPath
	}

	model := app.New(app.Config{
		Auth:          authclient.NewClient(backend, sessions),
		Sessions:      sessions,
		Translator:    tr,
		ConfigPath:    configFilePath,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		Timeout:       cfg.Auth.Timeout,
		Debug:         debugEnabled(),
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	viper.OnConfigChange(func(e fsnotify.Event) {
		var next config.Config
		if err := viper.Unmarshal(&next); err != nil {
			log.ErrorErr(log.CatConfig, "reloading config", err, "file", e.Name)
			return
		}
		if err := config.Validate(next); err != nil {
			log.ErrorErr(log.CatConfig, "ignoring invalid config", err, "file", e.Name)
			return
		}
		log.Info(log.CatConfig, "config reloaded", "file", e.Name, "op", e.Op.String())
		p.Send(app.ConfigReloadedMsg{Config: next})
	})
	viper.WatchConfig()

	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		_ = m.Close()
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func shutdownTracing(tp *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatConfig, "flushing traces", err)
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
