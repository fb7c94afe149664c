package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type decodeOptions struct {
	mode      string
	maxOutput int
}

func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode [notation...]",
		Short: "Expand notations",
		Long: `Expand each notation given as an argument, or each line of stdin when
no arguments are given. Invalid notations produce no output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "", "composition mode (compat|nested), overrides config")
	cmd.Flags().IntVar(&opts.maxOutput, "max-output", -1, "maximum expanded bytes per notation, 0 = unlimited")

	return cmd
}

func runDecode(rootOpts *RootOptions, opts *decodeOptions, cmd *cobra.Command, args []string) error {
	cfg := *rootOpts.cfg
	if opts.mode != "" {
		cfg.Decode.Mode = opts.mode
	}
	if opts.maxOutput >= 0 {
		cfg.Decode.MaxOutput = opts.maxOutput
	}

	dec, err := cfg.Decoder()
	if err != nil {
		return WrapExitError(ExitCommandError, "decoder", err)
	}

	inputs, err := readInputs(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}

	outcomes := make([]Outcome, 0, len(inputs))
	failed := 0
	for _, in := range inputs {
		out, err := dec.Decode(in)
		if err != nil {
			failed++
			rootOpts.log.Debug("decode failed", zap.String("notation", in), zap.Error(err))
			outcomes = append(outcomes, Outcome{Input: in, Error: err.Error()})
			continue
		}
		outcomes = append(outcomes, Outcome{Input: in, Output: out})
	}

	err = writeOutcomes(cmd.OutOrStdout(), rootOpts.Format, outcomes, func(o Outcome) string {
		if o.Error != "" {
			return "error: " + o.Error
		}
		return o.Output
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	if failed > 0 {
		return NewExitError(ExitInvalidInput, fmt.Sprintf("%d of %d notations could not be decoded", failed, len(inputs)))
	}
	return nil
}
