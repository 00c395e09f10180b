package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"tracker/internal/export"
	"tracker/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV bank statement",
		Long: `Import transactions from a CSV file with the columns
date, description, amount and optionally category and type.

Without a type column a negative amount is an expense and a positive amount
an income. Unknown categories are imported as "other". All valid rows are
stored in one write; rows that cannot be parsed are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("delimiter", ",", "field delimiter")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	delimiter, _ := cmd.Flags().GetString("delimiter")
	comma, size := utf8.DecodeRuneInString(delimiter)
	if size == 0 || size != len(delimiter) {
		return fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	result, err := app.Ledger.ImportCSV(cmd.Context(), f, importer.Options{
		Location: app.Location,
		Comma:    comma,
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	for _, skipped := range result.Skipped {
		fmt.Fprintf(out, "Skipped %v\n", skipped)
	}
	fmt.Fprintf(out, "Imported %d transactions, skipped %d rows\n", len(result.Imported), len(result.Skipped))
	return nil
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all transactions as JSON or to Google Sheets",
		Long: `Export all transactions as an indented JSON array.

The file defaults to gpay-tracker-export-YYYY-MM-DD.json in the working
directory; use --out - to write to standard output. With --sheets the
transactions are also written to the spreadsheet named by
GOOGLE_SPREADSHEET_ID, replacing the contents of GOOGLE_EXPORT_SHEET_NAME.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringP("out", "o", "", "output file, - for stdout")
	cmd.Flags().Bool("sheets", false, "also export to Google Sheets")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(app)

	outPath, _ := cmd.Flags().GetString("out")
	toSheets, _ := cmd.Flags().GetBool("sheets")

	out := cmd.OutOrStdout()
	if outPath == "-" {
		if err := app.Ledger.Transactions.Export(ctx, out); err != nil {
			return err
		}
	} else {
		if outPath == "" {
			outPath = export.FileName(app.Now())
		}
		if err := writeExportFile(cmd, app.Ledger.Transactions.Export, outPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d transactions to %s\n", len(app.Ledger.Transactions.All()), outPath)
	}

	if toSheets {
		exporter, err := app.SheetsExporter(ctx)
		if err != nil {
			return err
		}
		if err := app.Ledger.ExportToSheet(ctx, exporter); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to sheet %s\n", app.Config.GoogleExportSheetName)
	}
	return nil
}

func writeExportFile(cmd *cobra.Command, write func(context.Context, io.Writer) error, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", closeErr)
		}
	}()
	return write(cmd.Context(), f)
}
