package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracker/internal/core"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the display name and currency symbol",
		Args:  cobra.NoArgs,
		RunE:  runSettings,
	}

	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("currency", "", "currency symbol, e.g. ₹ or $")

	return cmd
}

func runSettings(cmd *cobra.Command, _ []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	var patch core.SettingsPatch
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		patch.Name = &name
	}
	if cmd.Flags().Changed("currency") {
		currency, _ := cmd.Flags().GetString("currency")
		patch.Currency = &currency
	}

	settings := app.Ledger.Settings.Get()
	if patch.Name != nil || patch.Currency != nil {
		if settings, err = app.Ledger.Settings.Update(cmd.Context(), patch); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:     %s\n", settings.Name)
	fmt.Fprintf(out, "Currency: %s\n", settings.Currency)
	return nil
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the available categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tUSED FOR")
			for _, c := range core.Categories() {
				fmt.Fprintf(w, "%s\t%s %s\t%s\n", c.ID, c.Icon, c.Name, c.Kind)
			}
			return w.Flush()
		},
	}
}
