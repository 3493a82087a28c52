package cli

import (
	"context"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/hanashi/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the story API and chapter reader over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			addr := strings.TrimSpace(listen)
			if addr == "" {
				addr = app.Cfg.GetString("http_addr")
			}
			if addr == "" {
				addr = ":8080"
			}
			srv := server.New(app.Cfg, app.Lib, app.Log)
			httpSrv := &http.Server{Addr: addr, Handler: srv.Router()}
			go func() {
				<-cmd.Context().Done()
				_ = httpSrv.Shutdown(context.Background())
			}()
			app.Log.Printf("http server listening on %s", addr)
			err := httpSrv.ListenAndServe()
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (override config http_addr)")
	return cmd
}
