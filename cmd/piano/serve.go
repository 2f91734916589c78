package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gordonklaus/piano/server"
)

var addr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve POST /render over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRenderer()
		if err != nil {
			return err
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           server.New(r, logger).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Info("listening", "addr", addr)
		return srv.ListenAndServe()
	},
}
