package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracker/internal/cli"
	"tracker/internal/core"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Example: `  tracker add --amount 120.50 --category food --description "Lunch"
  tracker add --type income --amount 50000 --category salary --date 2024-01-05`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cmd.Flags().String("type", string(core.Expense), "transaction type (income, expense)")
	cmd.Flags().String("amount", "", "positive amount, e.g. 120.50")
	cmd.Flags().String("category", core.OtherCategoryID, "category id")
	cmd.Flags().String("description", "", "free text description")
	cmd.Flags().String("date", "", "event date as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	rawType, _ := cmd.Flags().GetString("type")
	rawAmount, _ := cmd.Flags().GetString("amount")
	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")
	rawDate, _ := cmd.Flags().GetString("date")

	kind, err := core.ParseTransactionType(rawType)
	if err != nil {
		return err
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return err
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if err := checkCategory(category, kind); err != nil {
		return err
	}
	date := app.Now()
	if rawDate != "" {
		if date, err = parseDay(rawDate, app.Location); err != nil {
			return err
		}
	}

	t, err := app.Ledger.Transactions.Add(ctx, core.Draft{
		Type:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s) %s\n",
		t.Type, app.Ledger.Settings.FormatAmount(t.Amount), categoryLabel(t.Category), t.ID)
	return nil
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Change fields of a recorded transaction",
		Long: `Change fields of a recorded transaction. Only the flags given are applied.
The id may be abbreviated to any unique prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().String("type", "", "transaction type (income, expense)")
	cmd.Flags().String("amount", "", "positive amount")
	cmd.Flags().String("category", "", "category id")
	cmd.Flags().String("description", "", "free text description")
	cmd.Flags().String("date", "", "event date as YYYY-MM-DD")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	current, err := resolveTransaction(app, args[0])
	if err != nil {
		return err
	}

	var patch core.TransactionPatch
	flags := cmd.Flags()
	if flags.Changed("type") {
		raw, _ := flags.GetString("type")
		kind, err := core.ParseTransactionType(raw)
		if err != nil {
			return err
		}
		patch.Type = &kind
	}
	if flags.Changed("amount") {
		raw, _ := flags.GetString("amount")
		amount, err := parseAmount(raw)
		if err != nil {
			return err
		}
		patch.Amount = &amount
	}
	if flags.Changed("category") {
		raw, _ := flags.GetString("category")
		category := strings.ToLower(strings.TrimSpace(raw))
		if err := checkCategory(category, ""); err != nil {
			return err
		}
		patch.Category = &category
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		patch.Description = &description
	}
	if flags.Changed("date") {
		raw, _ := flags.GetString("date")
		date, err := parseDay(raw, app.Location)
		if err != nil {
			return err
		}
		patch.Date = &date
	}

	if err := app.Ledger.Transactions.Update(ctx, current.ID, patch); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", current.ID)
	return nil
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, newest first",
		Args:    cobra.NoArgs,
		RunE:    runList,
	}

	cmd.Flags().StringP("search", "s", "", "match description or category")
	cmd.Flags().String("type", "", "only income or expense")
	cmd.Flags().IntP("limit", "n", 0, "show at most n transactions (0 for all)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	query, _ := cmd.Flags().GetString("search")
	rawType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	var kind core.TransactionType
	if rawType != "" {
		if kind, err = core.ParseTransactionType(rawType); err != nil {
			return err
		}
	}

	txns := app.Ledger.Transactions.Search(query, kind)
	out := cmd.OutOrStdout()
	if len(txns) == 0 {
		fmt.Fprintln(out, "No transactions found. Use 'tracker add' to record one.")
		return nil
	}
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tDESCRIPTION\tAMOUNT")
	for _, t := range txns {
		sign := "+"
		if t.Type == core.Expense {
			sign = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%s\n",
			shortID(t.ID),
			t.Date.In(app.Location).Format("2006-01-02"),
			categoryLabel(t.Category),
			t.Description,
			sign, app.Ledger.Settings.FormatAmount(t.Amount))
	}
	return w.Flush()
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <transaction-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Long:    "Delete a transaction. The id may be abbreviated to any unique prefix.",
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	t, err := resolveTransaction(app, args[0])
	if err != nil {
		return err
	}
	if err := app.Ledger.Transactions.Delete(cmd.Context(), t.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", t.ID)
	return nil
}

// resolveTransaction finds the single transaction whose id starts with prefix.
func resolveTransaction(app *cli.App, prefix string) (core.Transaction, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return core.Transaction{}, errBlankID
	}
	if t, ok := app.Ledger.Transactions.Get(prefix); ok {
		return t, nil
	}
	var matches []core.Transaction
	for _, t := range app.Ledger.Transactions.All() {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return core.Transaction{}, fmt.Errorf("no transaction with id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return core.Transaction{}, fmt.Errorf("id prefix %q matches %d transactions", prefix, len(matches))
	}
}
