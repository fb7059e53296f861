package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/cli"
	"github.com/moneta-app/moneta/internal/model"
	"github.com/moneta-app/moneta/internal/report"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions in the selected period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := selectorFromFlags(cmd)
			if err != nil {
				return err
			}

			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			store := engine.Store()
			currency := currencySymbol()

			txs := report.Filter(store.Transactions(nil), sel.Predicate())
			sort.SliceStable(txs, func(i, j int) bool {
				return txs[i].Date.After(txs[j].Date)
			})

			if len(txs) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions in " + sel.Label()))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Account"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Note"))

			for _, t := range txs {
				account := accountLabel(store, t.AccountID)
				if t.Type == model.TypeTransfer {
					account = account + " → " + accountLabel(store, t.ToAccountID)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					t.Date.Format("2006-01-02"),
					categoryLabel(store, t.CategoryID),
					account,
					cli.FormatSignedMoney(t.Amount, t.Type, currency),
					cli.SubtleStyle.Render(t.Note))
			}
			return nil
		},
	}

	addPeriodFlags(cmd)
	return cmd
}
