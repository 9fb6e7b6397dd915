// Package cmd implements the capsync command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/campusmedia/capsync/internal/cache"
	"github.com/campusmedia/capsync/internal/config"
	"github.com/campusmedia/capsync/internal/sources/crm"
	"github.com/campusmedia/capsync/internal/sources/edo"
	"github.com/campusmedia/capsync/pkg/logging"
	"github.com/campusmedia/capsync/pkg/sync"
)

var (
	verbose bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "capsync",
	Short: "Course capture scheduling sync",
	Long: `Capsync reconciles course-scheduling records across the campus
student-information system, the academic-records (EDO) database, and the
course-capture CRM.

It detects courses eligible for classroom recording that are missing from
the CRM, pushes corrected room, schedule, and instructor data into the CRM,
and reports CRM records that have drifted from the academic records.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		configureLogging()
	},
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(verifyCmd)
}

// configureLogging applies the log settings from flags and environment.
func configureLogging() {
	level := os.Getenv("CAPSYNC_LOG_LEVEL")
	if verbose {
		level = "debug"
	}
	logging.Configure(logging.Config{
		Level:   level,
		Format:  os.Getenv("CAPSYNC_LOG_FORMAT"),
		NoColor: os.Getenv("NO_COLOR") != "",
	})
}

// newSyncer wires the configured sources into a Syncer. The returned
// cleanup function releases database pools.
func newSyncer(ctx context.Context, opts ...sync.Option) (*sync.Syncer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	academic, err := edo.New(ctx, cfg.EDODSN, cfg.SISDSN)
	if err != nil {
		return nil, nil, err
	}

	var crmOpts []crm.Option
	if cfg.CacheTTL > 0 {
		crmOpts = append(crmOpts, crm.WithCache(cache.New(cfg.CacheTTL, cfg.CacheTTL), cfg.CacheTTL))
	}
	crmClient := crm.New(cfg.CRMURL, cfg.CRMToken, crmOpts...)

	return sync.New(academic, crmClient, opts...), academic.Close, nil
}

// exitOnError prints the error and exits non-zero.
func exitOnError(err error) error {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
