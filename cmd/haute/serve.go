package main

import (
	"log/slog"
	"net"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/digitalhaute/internal/certs"
	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API used by the mobile app",
		Long: `Serve the JSON API used by the mobile app. With --tls a self-signed
certificate covering the listen host is issued on first use and kept under
$HOME/.config/haute/certs.`,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			addr := a.cfg.ServerAddr
			srv := server.New(a.engine, slog.Default())

			if !viper.GetBool("server.tls") {
				cmd.Println(cli.FormatInfo("Listening on http://" + addr))
				return srv.ListenAndServe(cmd.Context(), addr)
			}

			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			host, _, _ := net.SplitHostPort(addr)
			cert, err := certs.NewFileManager(filepath.Join(home, ".config", "haute", "certs"), host).GetOrCreateCertificate()
			if err != nil {
				return err
			}

			cmd.Println(cli.FormatInfo("Listening on https://" + addr))
			return srv.ListenAndServeTLS(cmd.Context(), addr, cert)
		}),
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed certificate")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))
	return cmd
}
