// Package settings implements commands that inspect and persist user settings
package settings

import (
	"fmt"
	"io"

	"fintrack/currency-format/cmd/root"
	"fintrack/currency-format/internal/logging"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	// Cmd groups the settings subcommands
	Cmd = &cobra.Command{
		Use:   "settings",
		Short: "Show or change formatting settings",
	}

	showCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the resolved formatter configuration as YAML",
		Long: `Print the configuration that formatting would use for --user, after the
base configuration, the user's stored settings and any flag overrides.`,
		Args: cobra.NoArgs,
		RunE: showFunc,
	}

	setCmd = &cobra.Command{
		Use:   "set",
		Short: "Store the given flags as --user's settings",
		Long: `Merge the formatting flags into the stored settings of --user.

Example:
  currency-format settings set --user alice --currency EUR --position right_space --decimals 0`,
		Args: cobra.NoArgs,
		RunE: setFunc,
	}

	usersCmd = &cobra.Command{
		Use:   "users",
		Short: "List users with stored settings",
		Args:  cobra.NoArgs,
		RunE:  usersFunc,
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Remove --user's stored settings",
		Args:  cobra.NoArgs,
		RunE:  resetFunc,
	}
)

func init() {
	Cmd.AddCommand(showCmd, setCmd, usersCmd, resetCmd)
}

func showFunc(cmd *cobra.Command, args []string) error {
	_, f, err := root.ResolveFormatter(cmd)
	if err != nil {
		return err
	}
	return writeYAML(cmd.OutOrStdout(), f.Snapshot())
}

func setFunc(cmd *cobra.Command, args []string) error {
	user := root.SharedFlags.User
	if user == "" {
		return fmt.Errorf("--user is required")
	}
	patch := root.Overrides()
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to set: pass at least one of --currency, --position, --decimals, --thousand-sep, --decimal-sep")
	}

	stored, err := root.GetContainer().GetStore().Update(user, patch)
	if err != nil {
		return err
	}
	root.GetLogger().Info("Stored user settings", logging.Field{Key: logging.FieldUser, Value: user})
	return writeYAML(cmd.OutOrStdout(), stored)
}

func usersFunc(cmd *cobra.Command, args []string) error {
	users, err := root.GetContainer().GetStore().Users()
	if err != nil {
		return err
	}
	for _, u := range users {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), u); err != nil {
			return err
		}
	}
	return nil
}

func resetFunc(cmd *cobra.Command, args []string) error {
	user := root.SharedFlags.User
	if user == "" {
		return fmt.Errorf("--user is required")
	}
	if err := root.GetContainer().GetStore().Delete(user); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Settings for %s removed\n", user)
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding YAML: %w", err)
	}
	return enc.Close()
}
