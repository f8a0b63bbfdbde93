package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"deckctl/internal/system"
	"deckctl/internal/webui/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "address to bind (host:port); defaults to the configured addr")
	serveCmd.Flags().BoolP("open", "o", false, "open the browser after start")
	serveCmd.Flags().String("wasm-dir", "", "directory with wasm_exec.js and deck.wasm")
	serveCmd.Flags().BoolP("watch", "w", false, "reload connected browsers when the deck changes")
}

var serveCmd = &cobra.Command{
	Use:   "serve <deck>",
	Short: "Serve a deck to browsers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		open, _ := cmd.Flags().GetBool("open")
		wasmDir, _ := cmd.Flags().GetString("wasm-dir")
		watch, _ := cmd.Flags().GetBool("watch")
		if addr == "" {
			addr = conf.Addr
		}
		if _, err := os.Stat(args[0]); err != nil {
			return fmt.Errorf("deck: %w", err)
		}
		srv := &server.Server{Addr: addr, DeckPath: args[0], WasmDir: wasmDir, Watch: watch}

		// Handle Ctrl+C
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		url := fmt.Sprintf("http://%s/", addr)
		system.Logger.Info("serving deck", "url", url)
		if open {
			if err := server.OpenBrowser(url); err != nil {
				system.Logger.Warn("failed to open browser", "err", err)
			}
		}
		if err := srv.Start(ctx); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
		return nil
	},
}
