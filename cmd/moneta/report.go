package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/cli"
	"github.com/moneta-app/moneta/internal/period"
	"github.com/moneta-app/moneta/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the period summary",
		Long: `Show totals, the savings indicator, net wealth, the expense breakdown by
category and the daily spending series for the selected period.`,
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

			filtered := report.Filter(store.Transactions(nil), sel.Predicate())
			totals := report.ComputeTotals(filtered)
			wealth := report.ComputeWealth(store.Accounts(nil))
			stats := report.ComputeStats(filtered, totals, sel.Anchor, time.Now())

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Summary for %s", sel.Label())))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Expenses\t%s\n", cli.ExpenseStyle.Render(cli.FormatMoney(totals.Expenses, currency)))
			fmt.Fprintf(w, "Income\t%s\n", cli.IncomeStyle.Render(cli.FormatMoney(totals.Incomes, currency)))
			fmt.Fprintf(w, "Saved\t%d%%\n", report.SavingsIndicator(totals))
			fmt.Fprintf(w, "Spent today\t%s\n", cli.FormatMoney(stats.TodayTotal, currency))
			fmt.Fprintf(w, "Avg per day\t%s\n", cli.FormatMoney(stats.AvgPerDay, currency))
			fmt.Fprintf(w, "Assets\t%s\n", cli.FormatMoney(wealth.Assets, currency))
			fmt.Fprintf(w, "Debts\t%s\n", cli.FormatMoney(wealth.Debts, currency))
			fmt.Fprintf(w, "Net wealth\t%s\n", cli.FormatMoney(wealth.Net, currency))
			w.Flush()

			breakdown := report.CategoryBreakdown(filtered, store.Categories(nil))
			if len(breakdown) > 0 {
				fmt.Println()
				fmt.Println(cli.HeaderStyle.Render("By category"))
				bw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, share := range breakdown {
					fmt.Fprintf(bw, "%s\t%s\t%d%%\n", share.Category.Name, cli.FormatMoney(share.Amount, currency), share.Percentage)
				}
				bw.Flush()
			}

			if daily, _ := cmd.Flags().GetBool("daily"); daily && sel.Kind == period.Month {
				fmt.Println()
				fmt.Println(cli.HeaderStyle.Render("Daily spending"))
				printDailySeries(report.DailySeries(filtered, sel.Anchor), currency)
			}

			return nil
		},
	}

	addPeriodFlags(cmd)
	cmd.Flags().Bool("daily", false, "include the daily spending series (month period only)")
	return cmd
}

// printDailySeries renders a simple bar per day, scaled to the busiest day.
func printDailySeries(series []report.DayPoint, currency string) {
	var maxCents int64
	for _, p := range series {
		if p.Amount.Cents > maxCents {
			maxCents = p.Amount.Cents
		}
	}
	if maxCents == 0 {
		fmt.Println(cli.SubtleStyle.Render("no spending this month"))
		return
	}

	const barWidth = 30
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range series {
		n := int(p.Amount.Cents * barWidth / maxCents)
		bar := strings.Repeat("█", n)
		label := ""
		if !p.Amount.IsZero() {
			label = cli.FormatMoney(p.Amount, currency)
		}
		fmt.Fprintf(w, "%2d\t%s\t%s\n", p.Day, cli.InfoStyle.Render(bar), cli.SubtleStyle.Render(label))
	}
	w.Flush()
}
