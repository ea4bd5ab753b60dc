package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/hmans/rolodex/internal/auth"
	"github.com/hmans/rolodex/internal/graph"
	"github.com/hmans/rolodex/internal/importer"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL API server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - The schema in SDL form at /graphql (GET)

Requests may carry an Authorization: Bearer <token> header obtained
from the login mutation.

Examples:
  # Start server on the configured address
  rolodex serve

  # Start on a custom address and re-import cards on change
  rolodex serve --addr :3000 --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// graphqlRequest is the standard GraphQL-over-HTTP request body.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

func runServer() error {
	codec, err := requireCodec()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rolodex",
	})

	engine := graph.NewEngine(graph.NewResolver(dir, codec))
	builder := auth.NewBuilder(dir, codec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		if cfg.Store.CardsDir == "" {
			return fmt.Errorf("--watch requires cards_dir in %s", "rolodex.toml")
		}
		if err := startCardWatch(ctx, logger); err != nil {
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/graphql", func(c *gin.Context) {
		c.String(http.StatusOK, graph.SDL)
	})

	router.POST("/graphql", func(c *gin.Context) {
		var req graphqlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": "invalid request body"}}})
			return
		}

		reqCtx, err := builder.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			logger.Error("resolving identity", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []gin.H{{"message": "internal error"}}})
			return
		}

		resp := engine.Execute(reqCtx, req.Query, req.Variables, req.OperationName)
		if len(resp.Errors) > 0 {
			logger.Warn("query finished with errors", "count", len(resp.Errors))
		}
		c.JSON(http.StatusOK, resp)
	})

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server stopped")
	}

	return nil
}

// startCardWatch runs an initial card import and keeps re-importing
// whenever the cards directory changes.
func startCardWatch(ctx context.Context, logger *log.Logger) error {
	result, err := importer.Import(ctx, dir, cfg.Store.CardsDir)
	if err != nil {
		return fmt.Errorf("importing cards: %w", err)
	}
	logger.Info("cards imported", "created", result.Created, "updated", result.Updated, "skipped", len(result.Skipped))

	w := importer.NewWatcher(dir, cfg.Store.CardsDir, func(r *importer.Result, err error) {
		if err != nil {
			logger.Error("card sync failed", "err", err)
			return
		}
		logger.Info("cards synced", "created", r.Created, "updated", r.Updated, "skipped", len(r.Skipped))
	})
	return w.Start(ctx)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Watch the cards directory and re-import on change")
	rootCmd.AddCommand(serveCmd)
}
