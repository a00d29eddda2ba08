package main

import (
	"github.com/spf13/cobra"

	"github.com/straja-ai/agegate/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := root.load(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			listen := rt.cfg.Server.Addr
			if addr != "" {
				listen = addr
			}
			srv := server.New(rt.cfg.Server, rt.analyzer, rt.matcher, rt.log, version)
			return srv.Start(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	return cmd
}
