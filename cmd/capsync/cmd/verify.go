package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/campusmedia/capsync/pkg/verify"
)

var (
	verifyTerm string
	verifyOut  string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Report CRM records that diverge from the academic records",
	Long: `Verify compares the CRM's course records against the authoritative
academic records for one term and writes two CSV reports: stale_data.csv
for records whose room, schedule, or instructors have drifted, and
missing_courses.csv for capture-eligible sections absent from the CRM.

Verify is read-only; it never writes to any of the three systems.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		syncer, cleanup, err := newSyncer(ctx)
		if err != nil {
			return exitOnError(err)
		}
		defer cleanup()

		report, err := syncer.Verify(ctx, verifyTerm)
		if err != nil {
			return exitOnError(err)
		}

		if err := os.MkdirAll(verifyOut, 0o755); err != nil {
			return exitOnError(err)
		}
		if err := writeReport(filepath.Join(verifyOut, "stale_data.csv"), func(f *os.File) error {
			return verify.WriteStaleCSV(f, report.Stale)
		}); err != nil {
			return exitOnError(err)
		}
		if err := writeReport(filepath.Join(verifyOut, "missing_courses.csv"), func(f *os.File) error {
			return verify.WriteMissingCSV(f, report.Missing)
		}); err != nil {
			return exitOnError(err)
		}

		fmt.Println(report.Summary())
		fmt.Println("reports written to", verifyOut)
		return nil
	},
}

// writeReport creates the file and delegates row rendering.
func writeReport(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	verifyCmd.Flags().StringVar(&verifyTerm, "term", "", "term identifier to verify (required)")
	verifyCmd.Flags().StringVar(&verifyOut, "out", "reports", "directory for CSV reports")
	_ = verifyCmd.MarkFlagRequired("term")
}
