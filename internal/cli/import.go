package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/tend/internal/ics"
	"github.com/lazypower/tend/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import [file.csv]",
	Short: "Import contacts from a CSV file",
	Long:  "Import contacts from a CSV export. The header row maps columns; only 'name' is required. Rows matching an existing friend are reported as duplicates and left alone.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	res, err := importer.ImportFile(db, args[0], time.Now())
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	fmt.Printf("Imported %d, %d duplicates, %d skipped.\n",
		res.Added, len(res.Duplicates), len(res.Skipped))
	for _, d := range res.Duplicates {
		fmt.Printf("  duplicate: %s\n", d)
	}
	for _, s := range res.Skipped {
		fmt.Printf("  skipped: %s\n", s)
	}
	return nil
}

var exportOut string

var exportICSCmd = &cobra.Command{
	Use:   "export-ics",
	Short: "Export due dates and birthdays as an iCalendar file",
	RunE:  runExportICS,
}

func runExportICS(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	friends, err := db.ListFriends()
	if err != nil {
		return fmt.Errorf("list friends: %w", err)
	}

	data := ics.Export(friends, time.Now())
	if exportOut == "" || exportOut == "-" {
		os.Stdout.Write(data)
		return nil
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Printf("Wrote %s (%d friends).\n", exportOut, len(friends))
	return nil
}

func init() {
	exportICSCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
}
