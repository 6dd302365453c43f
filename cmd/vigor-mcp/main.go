package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/vigor/internal/assess"
	"github.com/claude/vigor/internal/config"
	vigormcp "github.com/claude/vigor/internal/mcp"
	"github.com/claude/vigor/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// vigor-mcp exposes assessments over MCP on stdio. Two modes:
//
//	-config config.yaml   local mode, reads the database directly
//	-server <URL>         remote mode, queries a running vigor server's
//	                      REST API (typically over Tailscale). Pass -config
//	                      too when the server runs a tuned engine section,
//	                      so local scoring matches it.
func main() {
	configPath := flag.String("config", "", "path to config file")
	serverURL := flag.String("server", "", "vigor server URL (remote mode)")
	flag.Parse()

	// Logs go to stderr: stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *configPath == "" && *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: vigor-mcp -config config.yaml | vigor-mcp -server <URL> [-config config.yaml]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var ds vigormcp.DataSource
	var assessor *assess.Assessor

	if *serverURL != "" {
		engineCfg := assess.DefaultConfig()
		if *configPath != "" {
			cfg, err := config.Load(*configPath)
			if err != nil {
				log.Error("failed to load config", "error", err)
				os.Exit(1)
			}
			engineCfg = cfg.Engine
		}
		ds = vigormcp.NewHTTPClient(*serverURL)
		assessor = assess.New(engineCfg)
		log.Info("remote mode", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ds = db
		assessor = assess.New(cfg.Engine)
		log.Info("local mode", "database", cfg.Database.Name)
	}

	s := vigormcp.New(ds, assessor, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
