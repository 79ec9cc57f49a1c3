package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/extfs/pkg/extfs/udf"
)

// nullLiteral marks a NULL argument on the command line.
const nullLiteral = `\N`

type callResult struct {
	Function string `json:"function"`
	Type     string `json:"type"`
	Value    *int64 `json:"value"`
	Null     bool   `json:"null"`
}

func newCallCommand(s *settings) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "call FUNCTION [ARG...]",
		Short: "Invoke an external function",
		Long: `Invoke an external function by name with positional arguments.
A literal \N passes NULL, which skips the function and yields a NULL result.
SYSTEM_CALL runs its argument through the OS shell verbatim.`,
		Example: `  extfs call path_exists /tmp
  extfs call copy_file /tmp/a /tmp/b w
  extfs call sizeof_directory /var/log --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := udf.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown function %q (see 'extfs functions')", args[0])
			}

			values, err := parseArgs(fn, args[1:])
			if err != nil {
				return err
			}

			adapter, err := s.adapter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res, err := fn.Invoke(cmd.Context(), adapter, values)
			if err != nil {
				return err
			}

			if asJSON {
				out := callResult{Function: fn.Name, Type: string(res.Type), Null: res.Null}
				if !res.Null {
					v := res.Int
					out.Value = &v
				}
				data, err := json.Marshal(out)
				if err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func parseArgs(fn udf.Function, args []string) ([]udf.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", fn.Signature(), len(fn.Params), len(args))
	}
	values := make([]udf.Value, len(args))
	for i, arg := range args {
		p := fn.Params[i]
		if arg == nullLiteral {
			values[i] = udf.Value{Type: p.Type, Null: true}
			continue
		}
		values[i] = udf.Value{Type: p.Type, Str: arg}
	}
	return values, nil
}

func newFunctionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the available external functions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, fn := range udf.Functions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-70s %s\n", fn.Signature(), fn.Description)
			}
		},
	}
}
