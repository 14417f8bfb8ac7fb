package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tfgkk/schoolcomp/internal/api"
	"github.com/tfgkk/schoolcomp/internal/config"
	"github.com/tfgkk/schoolcomp/internal/database"
)

var rootCmdPersistentFlags struct {
	ConfigFile string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.schoolcomp, /etc/schoolcomp)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

var rootCmd = &cobra.Command{
	Use:   "schoolcomp",
	Short: "Schoolcomp is the school competition registration portal backend",
	Long:  `Schoolcomp serves the registration portal API: administrators publish competitions and audit registrations, students register, and rosters are imported from spreadsheets.`,
	Example: `schoolcomp --config config.yml
  schoolcomp --log-level debug`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Run: root,
}

func root(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	level := cfg.LogLevel
	if rootCmdPersistentFlags.LogLevel != "" {
		level = rootCmdPersistentFlags.LogLevel
	}
	setLogLevel(level)

	db, err := openDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint: errcheck

	server, err := api.New(cfg, db)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("schoolcomp started successfully")
	<-c
	log.Info("shutting down gracefully...")
}

func openDatabase(path string) (*database.Client, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return database.New(path)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func Execute() error {
	return rootCmd.Execute()
}
