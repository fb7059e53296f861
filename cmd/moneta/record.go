package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/cli"
	"github.com/moneta-app/moneta/internal/model"
)

func recordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an expense or income",
	}

	cmd.AddCommand(recordMovementCmd(model.TypeExpense))
	cmd.AddCommand(recordMovementCmd(model.TypeIncome))

	return cmd
}

func recordMovementCmd(txType model.TransactionType) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(txType) + " AMOUNT",
		Short: fmt.Sprintf("Record an %s", txType),
		Long: fmt.Sprintf(`Record an %s against an account and category. The amount accepts both
decimal point and decimal comma ("12.34" and "12,34" are the same).`, txType),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := model.ParseAmount(args[0])
			if err != nil {
				return err
			}

			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			accountID, _ := cmd.Flags().GetString("account")
			categoryID, _ := cmd.Flags().GetString("category")
			note, _ := cmd.Flags().GetString("note")

			tx, err := engine.RecordTransaction(cmd.Context(), txType, amount, accountID, categoryID, "", note)
			if err != nil {
				return err
			}

			store := engine.Store()
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s on %s (%s)",
				txType,
				cli.FormatMoney(tx.Amount, currencySymbol()),
				accountLabel(store, tx.AccountID),
				categoryLabel(store, tx.CategoryID))))
			return nil
		},
	}

	cmd.Flags().String("account", "", "account id (required)")
	cmd.Flags().String("category", "", "category id (required)")
	cmd.Flags().String("note", "", "optional note")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer AMOUNT",
		Short: "Move money between two accounts",
		Long: `Move money from one account to another. Both balances change together:
the source loses the amount and the destination gains it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := model.ParseAmount(args[0])
			if err != nil {
				return err
			}

			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			note, _ := cmd.Flags().GetString("note")

			tx, err := engine.RecordTransaction(cmd.Context(), model.TypeTransfer, amount, from, "", to, note)
			if err != nil {
				return err
			}

			store := engine.Store()
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transferred %s from %s to %s",
				cli.FormatMoney(tx.Amount, currencySymbol()),
				accountLabel(store, tx.AccountID),
				accountLabel(store, tx.ToAccountID))))
			return nil
		},
	}

	cmd.Flags().String("from", "", "source account id (required)")
	cmd.Flags().String("to", "", "destination account id (required)")
	cmd.Flags().String("note", "", "optional note")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
