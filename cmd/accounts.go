package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/enernova/enernova/internal/authclient/localauth"
	"github.com/enernova/enernova/internal/i18n"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts in the local account database",
	RunE:  runAccounts,
}

var accountsJSON bool

func init() {
	rootCmd.AddCommand(accountsCmd)

	accountsCmd.Flags().BoolVar(&accountsJSON, "json", false, "print accounts as JSON")
}

func runAccounts(cmd *cobra.Command, _ []string) error {
	backend, db, err := newLocalBackend(cfg, i18n.NewLocalizer(cfg.Locale))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	accounts, err := backend.Accounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}
	return printAccounts(cmd, accounts, accountsJSON)
}

func printAccounts(cmd *cobra.Command, accounts []localauth.Account, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(accounts)
	}

	if len(accounts) == 0 {
		_, err := fmt.Fprintln(out, "No accounts.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, a := range accounts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Email, a.Role, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
