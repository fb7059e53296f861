package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/cli"
	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/ledger"
	"github.com/moneta-app/moneta/internal/model"
	"github.com/moneta-app/moneta/internal/report"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, add, edit, and delete the accounts money moves between.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(editAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			accounts := engine.Store().Accounts(nil)
			currency := currencySymbol()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Kind"),
				cli.HeaderStyle.Render("Balance"))
			for _, a := range accounts {
				balance := a.Balance
				if a.Kind == model.AccountKindDebt {
					// Debts display as magnitude.
					balance = balance.Abs()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Kind, cli.FormatMoney(balance, currency))
			}

			wealth := report.ComputeWealth(accounts)
			fmt.Fprintf(w, "\t\t%s\t%s\n", cli.SubtleStyle.Render("net wealth"), cli.FormatMoney(wealth.Net, currency))
			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			balanceStr, _ := cmd.Flags().GetString("balance")
			balance := model.Money{}
			if balanceStr != "" {
				if balance, err = model.ParseSignedAmount(balanceStr); err != nil {
					return fmt.Errorf("%w: %s", common.ErrInvalidAmount, balanceStr)
				}
			}
			kind, _ := cmd.Flags().GetString("kind")
			icon, _ := cmd.Flags().GetString("icon")
			color, _ := cmd.Flags().GetString("color")

			account, err := engine.EditAccount(cmd.Context(), ledger.AccountEdit{
				Name:    args[0],
				Balance: balance,
				Icon:    icon,
				Color:   color,
				Kind:    model.AccountKind(kind),
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account %q (%s)", account.Name, account.ID)))
			return nil
		},
	}

	cmd.Flags().String("balance", "0", "starting balance")
	cmd.Flags().String("kind", "regular", "account kind (regular, savings, debt)")
	cmd.Flags().String("icon", "Wallet", "display icon")
	cmd.Flags().String("color", "#6366f1", "display color")
	return cmd
}

func editAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an account",
		Long: `Edit an account's name, icon, color, kind or balance.

Changing the balance starts the reconciliation flow: moneta asks whether to
just replace the stored number or to also record a balance-correction
transaction so history stays consistent. Use --reconcile to answer up front.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			current, ok := engine.Store().AccountByID(args[0])
			if !ok {
				return fmt.Errorf("account %s: %w", args[0], common.ErrNotFound)
			}

			edit := ledger.AccountEdit{
				ID:      current.ID,
				Name:    current.Name,
				Balance: current.Balance,
				Icon:    current.Icon,
				Color:   current.Color,
				Kind:    current.Kind,
			}
			if v, _ := cmd.Flags().GetString("name"); v != "" {
				edit.Name = v
			}
			if v, _ := cmd.Flags().GetString("icon"); v != "" {
				edit.Icon = v
			}
			if v, _ := cmd.Flags().GetString("color"); v != "" {
				edit.Color = v
			}
			if v, _ := cmd.Flags().GetString("kind"); v != "" {
				edit.Kind = model.AccountKind(v)
			}
			if v, _ := cmd.Flags().GetString("balance"); v != "" {
				if edit.Balance, err = model.ParseSignedAmount(v); err != nil {
					return fmt.Errorf("%w: %s", common.ErrInvalidAmount, v)
				}
			}

			account, err := engine.EditAccount(cmd.Context(), edit)
			if rr, pending := common.IsReconciliationRequired(err); pending {
				mode, modeErr := resolveReconcileMode(cmd, rr)
				if modeErr != nil {
					engine.CancelReconciliation(rr.AccountID)
					return modeErr
				}
				if mode == "" {
					engine.CancelReconciliation(rr.AccountID)
					fmt.Println(cli.FormatWarning("Edit cancelled, account unchanged"))
					return nil
				}
				if account, err = engine.ReconcileBalance(cmd.Context(), rr.AccountID, mode); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated account %q, balance %s",
				account.Name, cli.FormatMoney(account.Balance, currencySymbol()))))
			return nil
		},
	}

	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("balance", "", "new balance (starts reconciliation)")
	cmd.Flags().String("icon", "", "new icon")
	cmd.Flags().String("color", "", "new color")
	cmd.Flags().String("kind", "", "new kind (regular, savings, debt)")
	cmd.Flags().String("reconcile", "", "how to handle a balance change (replace, adjust, cancel)")
	return cmd
}

// resolveReconcileMode maps the --reconcile flag, or an interactive answer,
// to a reconcile mode. Empty means cancel.
func resolveReconcileMode(cmd *cobra.Command, rr *common.ReconciliationRequiredError) (ledger.ReconcileMode, error) {
	answer, _ := cmd.Flags().GetString("reconcile")
	if answer == "" {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Balance differs from the stored value by %s %s", rr.Diff, currencySymbol())))
		fmt.Print("Record a correction transaction [a], replace the number [r], or cancel [c]? ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		answer = strings.TrimSpace(line)
	}

	switch strings.ToLower(answer) {
	case "a", "adjust", "record-adjustment":
		return ledger.ReconcileRecordAdjustment, nil
	case "r", "replace":
		return ledger.ReconcileReplace, nil
	case "c", "cancel", "":
		return "", nil
	}
	return "", fmt.Errorf("unknown reconcile choice %q", answer)
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an account",
		Long: `Delete an account. Its past transactions are kept; history shows them
against a deleted-account placeholder. The last remaining account cannot be
deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := engine.DeleteAccount(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted account %s", args[0])))
			return nil
		},
	}
}
