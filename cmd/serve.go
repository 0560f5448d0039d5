/*
Copyright © 2025 Alex Programs

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Alex-Programs/nuenki-dictionary/internal/adapter/rest"
	"github.com/Alex-Programs/nuenki-dictionary/internal/infrastructure/config"
	"github.com/Alex-Programs/nuenki-dictionary/internal/infrastructure/server"
	"github.com/Alex-Programs/nuenki-dictionary/internal/store"
	"github.com/Alex-Programs/nuenki-dictionary/internal/usecase"
)

const serveDumpKey = "dictionary.dump_path"

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dictionary lookups over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Logger
		logger := newLogger(cfg)

		// The dump must be fully loaded before the listener opens; a lookup
		// can never race the load.
		dumpPath := viper.GetString(serveDumpKey)
		st, err := store.Load(logger, dumpPath)
		if err != nil {
			return fmt.Errorf("load dictionary: %w", err)
		}

		// Build server
		lookupUC := usecase.NewLookupUsecase(st)
		handler := rest.NewHandler(lookupUC, logger)
		srv := server.NewServer(cfg, logger, handler.Router())

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		// Graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("dump", "", "path to the dictionary dump")

	bindFlagToViper(serveDumpKey, serveCmd.Flags().Lookup("dump"))
}
