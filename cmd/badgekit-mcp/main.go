// Command badgekit-mcp is an MCP (Model Context Protocol) server that exposes
// badge rendering to AI assistants.
//
// # Installation
//
//	go install github.com/lvillar/badgekit/cmd/badgekit-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "badgekit": {
//	      "command": "badgekit-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - render_badge: Render one badge PDF from a template and a record
//   - preview_badge: Resolve placeholders and placement without drawing
//   - validate_template: Report template violations and off-page elements
//   - render_batch: Render many records into one print job, optionally imposed
//   - resolve_field: Explain how a placeholder name resolves
//
// # Available Resources
//
//   - badgekit://template/sample : A complete fold-over badge template
//   - badgekit://fields/synonyms : Field synonyms and lookup order
//
// Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/lvillar/badgekit"
	"github.com/lvillar/badgekit/mcp"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("ignoring unreadable .env file")
	}
	if lvl, err := logrus.ParseLevel(os.Getenv("BADGEKIT_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	opts := []badgekit.Option{badgekit.WithLogger(log)}
	if font := os.Getenv("BADGEKIT_FONT"); font != "" {
		opts = append(opts, badgekit.WithFontFamily(font))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer()
	server.SetLogger(log)

	mcp.RegisterDefaultTools(server, badgekit.New(opts...))
	mcp.RegisterDefaultResources(server)

	// Run only notices cancellation between messages, so a signal while it
	// waits on stdin ends the process here instead.
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			log.WithError(err).Error("badgekit-mcp stopped")
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("badgekit-mcp interrupted")
	}
}
