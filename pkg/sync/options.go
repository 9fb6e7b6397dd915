package sync

// Option configures a Syncer.
type Option func(*Syncer)

// WithDryRun plans batches without writing anything to the CRM. Course
// records for not-yet-created contacts will have empty instructor slots,
// since identifiers only exist once the contact upsert commits.
func WithDryRun() Option {
	return func(s *Syncer) {
		s.dryRun = true
	}
}
