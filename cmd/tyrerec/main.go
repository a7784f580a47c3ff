package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"tyrerec/internal/catalog"
	"tyrerec/internal/config"
	"tyrerec/internal/logging"
	"tyrerec/internal/service"
	"tyrerec/internal/tui"
	"tyrerec/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, catalogPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./tyrerec.yaml or ~/.config/tyrerec/config.yaml if not provided)")
	flag.StringVar(&catalogPath, "catalog", "", "Path to the tyre catalog (overrides config)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	var out io.Writer = os.Stderr
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: out}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logging: %v\n", err)
		os.Exit(1)
	}
	log := logging.Logger()

	cat, err := catalog.Load(cfg.Catalog.Path, cfg.Catalog.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}
	log.Info().
		Str("source", cat.Source).
		Str("checksum", cat.Checksum).
		Strs("columns", cat.Header).
		Int("rows", len(cat.Records)).
		Msg("catalog loaded")

	svc, err := service.Build(cat.Records, service.Options{
		K:      cfg.Index.K,
		Index:  vectorstore.Type(cfg.Index.Type),
		Metric: vectorstore.Metric(cfg.Index.Metric),
		Logger: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("index build failed")
	}

	if _, err := tea.NewProgram(tui.New(svc)).Run(); err != nil {
		log.Fatal().Err(err).Msg("tui exited")
	}
}
