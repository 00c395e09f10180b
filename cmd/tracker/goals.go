package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracker/internal/core"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage budget goals",
		Long: `Budget goals cap the spending of one category per week or per month.
There is at most one goal per category and period; setting it again
replaces the limit.`,
	}

	cmd.AddCommand(goalsSetCmd(), goalsListCmd(), goalsDeleteCmd())
	return cmd
}

func goalsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Create a budget goal or change its limit",
		Example: "  tracker goals set --category food --limit 5000 --period monthly",
		Args:    cobra.NoArgs,
		RunE:    runGoalsSet,
	}

	cmd.Flags().String("category", "", "expense category id")
	cmd.Flags().String("limit", "", "spending limit")
	cmd.Flags().String("period", string(core.Monthly), "weekly or monthly")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("limit")

	return cmd
}

func runGoalsSet(cmd *cobra.Command, _ []string) error {
	rawCategory, _ := cmd.Flags().GetString("category")
	rawLimit, _ := cmd.Flags().GetString("limit")
	rawPeriod, _ := cmd.Flags().GetString("period")

	category := strings.ToLower(strings.TrimSpace(rawCategory))
	if err := checkCategory(category, core.Expense); err != nil {
		return err
	}
	limit, err := parseAmount(rawLimit)
	if err != nil {
		return err
	}
	period, err := core.ParsePeriod(rawPeriod)
	if err != nil {
		return err
	}

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	goal, err := app.Ledger.Goals.Add(cmd.Context(), core.GoalDraft{
		Category: category,
		Limit:    limit,
		Period:   period,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Goal %s: %s %s limit %s\n",
		goal.ID, categoryLabel(goal.Category), goal.Period, app.Ledger.Settings.FormatAmount(goal.Limit))
	return nil
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show each budget goal with spending in its current period",
		Args:    cobra.NoArgs,
		RunE:    runGoalsList,
	}
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	progress := app.Ledger.GoalProgress(app.Now())
	out := cmd.OutOrStdout()
	if len(progress) == 0 {
		fmt.Fprintln(out, "No budget goals set. Use 'tracker goals set' to add one.")
		return nil
	}

	format := app.Ledger.Settings.FormatAmount
	w := newTable(out)
	fmt.Fprintln(w, "ID\tCATEGORY\tPERIOD\tSPENT\tLIMIT\tUSED\tSTATUS")
	for _, p := range progress {
		status := format(p.Remaining) + " left"
		if p.Over {
			status = "over by " + format(p.Spent.Sub(p.Goal.Limit))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
			shortID(p.Goal.ID),
			categoryLabel(p.Goal.Category),
			p.Goal.Period,
			format(p.Spent),
			format(p.Goal.Limit),
			p.Percent,
			status)
	}
	return w.Flush()
}

func goalsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <goal-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a budget goal",
		Args:    cobra.ExactArgs(1),
		RunE:    runGoalsDelete,
	}
}

func runGoalsDelete(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	id := strings.TrimSpace(args[0])
	if id == "" {
		return errBlankID
	}
	for _, g := range app.Ledger.Goals.All() {
		if strings.HasPrefix(g.ID, id) {
			id = g.ID
			break
		}
	}
	if err := app.Ledger.Goals.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s\n", id)
	return nil
}
