package cli

import (
	"encoding/json"
	"fmt"

	"github.com/passgen/passgen-go/internal/model"
	"github.com/spf13/cobra"
)

func newStrengthCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "strength [password]",
		Short: "Rate the strength of a password",
		Long: `Rate the strength of a password.

Without an argument the password is read from the terminal without echo,
or from the first line of stdin when it is not a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(cmd, app, args)
			if err != nil {
				return err
			}

			st, err := app.generator.Strength(model.StrengthRequest{Password: password})
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(st)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStrength(st))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func passwordArg(cmd *cobra.Command, app *App, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if isTerminal(cmd.InOrStdin()) {
		return app.ReadPassword("password: ", cmd.ErrOrStderr())
	}
	return readLine(cmd.InOrStdin())
}
