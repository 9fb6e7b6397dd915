// Package rooms resolves the physical location of a course section against
// the CRM's location list. Each system spells rooms differently, so matching
// goes through the canonical location key: the normalized "building room"
// string. The package also answers capture eligibility, which consults only
// rooms flagged as capture-capable.
package rooms

import (
	"github.com/rs/zerolog"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/normalize"
)

// Index is a lookup over the CRM location list keyed by canonical location
// key. Build one per run from the fetched location snapshot.
type Index struct {
	byKey map[string]capture.Location

	// eligible holds only capture-capable rooms. Non-capable rooms are
	// excluded from this set entirely, not merely treated as non-matching:
	// a section whose room exists in the CRM without the capability flag is
	// ineligible even though ResolveID still finds it.
	eligible map[string]struct{}
}

// NewIndex builds an Index from the CRM location snapshot. When two
// locations normalize to the same canonical key, the first occurrence in
// input order wins and the duplicate is logged once.
func NewIndex(locations []capture.Location, logger *zerolog.Logger) *Index {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	idx := &Index{
		byKey:    make(map[string]capture.Location, len(locations)),
		eligible: make(map[string]struct{}),
	}

	for _, loc := range locations {
		key := normalize.Location(loc.Building + " " + loc.RoomNumber)
		if prior, dup := idx.byKey[key]; dup {
			logger.Warn().
				Str("key", key).
				Str("kept_id", prior.ID).
				Str("dropped_id", loc.ID).
				Msg("duplicate canonical location key; keeping first occurrence")
			continue
		}
		idx.byKey[key] = loc
		if loc.CaptureCapable {
			idx.eligible[key] = struct{}{}
		}
	}

	return idx
}

// ResolveID returns the CRM identifier of the location matching the given
// free-text room string, if any.
func (idx *Index) ResolveID(freeText string) (string, bool) {
	loc, ok := idx.byKey[normalize.Location(freeText)]
	if !ok {
		return "", false
	}
	return loc.ID, true
}

// Eligible reports whether the given free-text room string names a
// capture-capable CRM location.
func (idx *Index) Eligible(freeText string) bool {
	_, ok := idx.eligible[normalize.Location(freeText)]
	return ok
}

// Len returns the number of distinct canonical locations in the index.
func (idx *Index) Len() int {
	return len(idx.byKey)
}
