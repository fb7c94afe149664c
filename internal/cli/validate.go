package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yokitheyo/bracketdecode/notation"
)

func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [notation...]",
		Short: "Check notations without expanding them",
		Long: `Check each notation against the bracket grammar. For valid input the
expanded size is reported using the configured mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args)
		},
	}
}

func runValidate(rootOpts *RootOptions, cmd *cobra.Command, args []string) error {
	dec, err := rootOpts.cfg.Decoder()
	if err != nil {
		return WrapExitError(ExitCommandError, "decoder", err)
	}

	inputs, err := readInputs(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}

	outcomes := make([]Outcome, 0, len(inputs))
	invalid := 0
	for _, in := range inputs {
		valid := true
		o := Outcome{Input: in, Valid: &valid}

		n, err := notation.Parse(in)
		if err != nil {
			valid = false
			invalid++
			var gerr *notation.GrammarError
			if errors.As(err, &gerr) {
				o.Error = fmt.Sprintf("%s at %d", gerr.Reason, gerr.Pos)
			} else {
				o.Error = err.Error()
			}
			outcomes = append(outcomes, o)
			continue
		}

		if size, err := dec.Size(n); err == nil {
			o.Size = &size
		} else {
			o.Error = err.Error()
		}
		outcomes = append(outcomes, o)
	}

	err = writeOutcomes(cmd.OutOrStdout(), rootOpts.Format, outcomes, func(o Outcome) string {
		if !*o.Valid {
			return "invalid: " + o.Error
		}
		if o.Size == nil {
			return "ok (" + o.Error + ")"
		}
		return fmt.Sprintf("ok (%d bytes)", *o.Size)
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	if invalid > 0 {
		return NewExitError(ExitInvalidInput, fmt.Sprintf("%d of %d notations are invalid", invalid, len(inputs)))
	}
	return nil
}
