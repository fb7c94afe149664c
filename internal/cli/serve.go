package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yokitheyo/bracketdecode/internal/server"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve decode and validate over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *rootOpts.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			dec, err := cfg.Decoder()
			if err != nil {
				return WrapExitError(ExitCommandError, "decoder", err)
			}

			log := rootOpts.log
			defer log.Sync()

			log.Info("config loaded",
				zap.String("mode", dec.Mode().String()),
				zap.Int("max_output", dec.MaxOutput()),
				zap.Int("max_conns", cfg.Server.MaxConns),
			)

			srv := server.New(cfg.Server, dec, log)
			if err := srv.ListenAndServe(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "serve", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config")

	return cmd
}
