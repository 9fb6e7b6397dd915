package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusmedia/capsync/pkg/sync"
)

var (
	syncTerm     string
	syncSections []string
	syncDryRun   bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push eligible course sections into the capture CRM",
	Long: `Sync fetches one term's sections from the academic records, resolves
instructors against CRM contacts, and upserts course records: updates for
sections already in the CRM, inserts for capture-eligible new sections.

Any record the CRM rejects aborts the run.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var opts []sync.Option
		if syncDryRun {
			opts = append(opts, sync.WithDryRun())
		}

		syncer, cleanup, err := newSyncer(ctx, opts...)
		if err != nil {
			return exitOnError(err)
		}
		defer cleanup()

		result, err := syncer.Sync(ctx, syncTerm, syncSections...)
		if err != nil {
			return exitOnError(err)
		}

		fmt.Println(result.Summary())
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncTerm, "term", "", "term identifier to sync (required)")
	syncCmd.Flags().StringArrayVar(&syncSections, "section", nil, "restrict to specific section IDs (repeatable)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "plan batches without writing to the CRM")
	_ = syncCmd.MarkFlagRequired("term")
}
