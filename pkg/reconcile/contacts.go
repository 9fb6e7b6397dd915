package reconcile

import (
	"github.com/campusmedia/capsync/pkg/capture"
)

// ContactPlan partitions the instructors of requires-update sections into
// those with an existing CRM contact (reused by UID) and those needing
// creation. Contact resolution commits before course batches are built, so
// every instructor identifier slot can be filled from a complete index.
type ContactPlan struct {
	// IDsByUID maps instructor UID to CRM contact identifier for every
	// instructor already known to the CRM.
	IDsByUID map[string]string

	// Create lists instructors with no CRM contact yet, deduplicated by
	// UID, in first-seen order. One create request per UID per run.
	Create []capture.Instructor
}

// Contacts plans contact resolution for the given match results. Only
// instructors attached to requires-update sections participate; an
// instructor teaching several such sections appears at most once.
func Contacts(results []capture.MatchResult, contactIDsByUID map[string]string) *ContactPlan {
	plan := &ContactPlan{
		IDsByUID: make(map[string]string),
	}

	seen := make(map[string]struct{})
	for _, result := range results {
		if !result.RequiresUpdate {
			continue
		}
		for _, inst := range result.Section.Instructors {
			if inst.UID == "" {
				continue
			}
			if _, dup := seen[inst.UID]; dup {
				continue
			}
			seen[inst.UID] = struct{}{}

			if id, ok := contactIDsByUID[inst.UID]; ok {
				plan.IDsByUID[inst.UID] = id
				continue
			}
			plan.Create = append(plan.Create, inst)
		}
	}

	return plan
}

// MergeCreated folds the identifiers returned by the contact upsert back
// into the plan's UID index. Results are positional: results[i] reports the
// outcome for the record built from Create[i]. Newly created contacts have
// no identifier until the upsert response returns it, so this must run
// before course records are constructed.
func (p *ContactPlan) MergeCreated(results []capture.UpsertResult) {
	for i, res := range results {
		if i >= len(p.Create) {
			break
		}
		if res.Success && res.ID != "" {
			p.IDsByUID[p.Create[i].UID] = res.ID
		}
	}
}

// InstructorIDs returns the CRM contact identifiers for a section's
// instructors, in section order. UIDs missing from the index yield no
// entry; the caller decides whether that is fatal.
func (p *ContactPlan) InstructorIDs(section capture.Section) []string {
	ids := make([]string, 0, len(section.Instructors))
	for _, inst := range section.Instructors {
		if id, ok := p.IDsByUID[inst.UID]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
