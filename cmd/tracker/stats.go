package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show balance, weekly and monthly spending and the category breakdown",
		Long: `Show the dashboard figures: totals and balance, spending this week and this
month compared with the previous period, and expenses per category.

Weeks start on Monday. Periods are evaluated in TRACKER_TIMEZONE.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	cmd.Flags().Bool("json", false, "print the raw summary as JSON")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	now := app.Now()
	summary := app.Ledger.Summary(ctx, now)
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	settings := app.Ledger.Settings
	format := settings.FormatAmount
	fmt.Fprintf(out, "Hello, %s\n\n", settings.Get().Name)

	w := newTable(out)
	fmt.Fprintf(w, "Balance\t%s\n", format(summary.Balance.Abs()))
	if summary.Balance.Cents < 0 {
		fmt.Fprintf(w, "\t(overspent)\n")
	}
	fmt.Fprintf(w, "Total income\t%s\n", format(summary.TotalIncome))
	fmt.Fprintf(w, "Total expense\t%s\n", format(summary.TotalExpense))
	fmt.Fprintf(w, "This week\t%s\t%s vs last week (%s)\n",
		format(summary.WeeklyExpense), formatPercent(summary.WeeklyChange), format(summary.LastWeekExpense))
	fmt.Fprintf(w, "This month\t%s\t%s vs last month (%s)\n",
		format(summary.MonthlyExpense), formatPercent(summary.MonthlyChange), format(summary.LastMonthExpense))
	fmt.Fprintf(w, "Income this month\t%s\n", format(summary.MonthlyIncome))
	if err := w.Flush(); err != nil {
		return err
	}

	ranked := app.Ledger.Breakdown(ctx, now)
	if len(ranked) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nSpending by category")
	w = newTable(out)
	for _, share := range ranked {
		fmt.Fprintf(w, "%s %s\t%s\t%5.1f%%\n", share.Category.Icon, share.Category.Name, format(share.Amount), share.Percent)
	}
	return w.Flush()
}

func trendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show monthly spending for the last months",
		Args:  cobra.NoArgs,
		RunE:  runTrend,
	}

	cmd.Flags().IntP("months", "m", 6, "number of months to show")

	return cmd
}

func runTrend(cmd *cobra.Command, _ []string) error {
	months, _ := cmd.Flags().GetInt("months")
	if months < 1 {
		return fmt.Errorf("--months must be at least 1")
	}

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	trend := app.Ledger.Trend(app.Now(), months)

	var peak int64 = 1
	for _, m := range trend {
		peak = max(peak, m.Expense.Cents)
	}

	const barWidth = 30
	w := newTable(cmd.OutOrStdout())
	for _, m := range trend {
		label := m.Month.Format("Jan 2006")
		if m.Current {
			label += " *"
		}
		bar := strings.Repeat("█", int(m.Expense.Cents*barWidth/peak))
		fmt.Fprintf(w, "%s\t%s\t%s\n", label, app.Ledger.Settings.FormatAmount(m.Expense), bar)
	}
	return w.Flush()
}
