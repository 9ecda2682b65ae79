package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/psommers/rolegate/internal/api"
	"github.com/psommers/rolegate/internal/auth"
	"github.com/psommers/rolegate/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rolegate web server",
	Long:  `Start the rolegate web server with the configured users and session settings.`,
	Example: `rolegate serve --config config.yml
rolegate serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := auth.NewStaticStore(cfg.AuthUsers())
	if err != nil {
		log.Fatalf("failed to create credential store: %v", err)
	}

	server, err := api.New(cfg, store, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	log.Info("rolegate started successfully", "users", len(cfg.Users))
	if err := runUntilSignal(cmd.Context(), server, sig); err != nil {
		log.Fatal("API server error", "error", err)
	}
}

type runner interface {
	Run(ctx context.Context) error
}

// runUntilSignal runs r until it returns on its own or a signal arrives.
// It returns the error of r in both cases.
func runUntilSignal(ctx context.Context, r runner, sig <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.Run(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-sig:
		log.Info("shutting down gracefully...")
		cancel()
		return <-errCh
	}
}
