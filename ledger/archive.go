/*
archive.go - Monthly earnings archival

PURPOSE:
  Moves the active earnings collection into the archive document under a
  calendar month label and clears the active collection.

BEHAVIOR TO KNOW:
  - OVERWRITE SEMANTICS: archiving under a label that already exists
    replaces that label's snapshot. Archiving January twice keeps only
    the second snapshot.
  - The label is the month name at the time of the CALL, not the dates on
    the records. Whatever sits in the active collection is filed under
    today's month.
  - Clearing removes the active key entirely; "never used" and "emptied"
    both read back as an empty list.
  - There is no transaction across the archive write and the active-key
    removal; each step fails fast on its own.

RefreshDaily is the additive variant used for day-bucketed data: it
appends the day's records onto a flat archive list and resets the day.

SEE ALSO:
  - repository.go: MutateMap, the locked map-document primitive
*/
package ledger

import (
	"context"
	"sort"
	"time"
)

// =============================================================================
// ARCHIVAL SERVICE
// =============================================================================

// ArchivalService files collection snapshots under month labels.
type ArchivalService struct {
	repo *Repository

	// Now is the clock used to derive month labels. Tests override it.
	Now func() time.Time
}

func NewArchivalService(repo *Repository) *ArchivalService {
	return &ArchivalService{repo: repo, Now: time.Now}
}

// ArchiveMonth snapshots the active collection under monthLabel in the
// archive document, then removes the active key. Re-archiving a label
// replaces its previous snapshot.
func (s *ArchivalService) ArchiveMonth(ctx context.Context, monthLabel, activeKey, archiveKey string) error {
	snapshot, err := Load[Entry](ctx, s.repo, activeKey)
	if err != nil {
		return err
	}

	err = MutateMap(ctx, s.repo, archiveKey, func(m map[string][]Entry) (map[string][]Entry, error) {
		m[monthLabel] = snapshot
		return m, nil
	})
	if err != nil {
		return err
	}

	return s.repo.Remove(ctx, activeKey)
}

// ArchiveCurrentMonth archives the active earnings under the current
// calendar month name and returns the label used.
func (s *ArchivalService) ArchiveCurrentMonth(ctx context.Context) (string, error) {
	label := MonthLabel(s.Now())
	if err := s.ArchiveMonth(ctx, label, KeyEarnings, KeyArchivedEarnings); err != nil {
		return "", err
	}
	return label, nil
}

// DeleteMonth removes one month's snapshot from the archive. An absent
// label is a no-op; callers that need a user-facing error check
// HasMonth first.
func (s *ArchivalService) DeleteMonth(ctx context.Context, monthLabel string) error {
	return MutateMap(ctx, s.repo, KeyArchivedEarnings, func(m map[string][]Entry) (map[string][]Entry, error) {
		delete(m, monthLabel)
		return m, nil
	})
}

// HasMonth reports whether a snapshot exists for the label.
func (s *ArchivalService) HasMonth(ctx context.Context, monthLabel string) (bool, error) {
	m, err := LoadMap[Entry](ctx, s.repo, KeyArchivedEarnings)
	if err != nil {
		return false, err
	}
	_, ok := m[monthLabel]
	return ok, nil
}

// Months lists the archived month labels in calendar order; labels that
// are not month names sort last, alphabetically.
func (s *ArchivalService) Months(ctx context.Context) ([]string, error) {
	m, err := LoadMap[Entry](ctx, s.repo, KeyArchivedEarnings)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		mi, mj := monthIndex(labels[i]), monthIndex(labels[j])
		if mi != mj {
			return mi < mj
		}
		return labels[i] < labels[j]
	})
	return labels, nil
}

// MonthEntries returns one month's archived records.
func (s *ArchivalService) MonthEntries(ctx context.Context, monthLabel string) ([]Entry, error) {
	m, err := LoadMap[Entry](ctx, s.repo, KeyArchivedEarnings)
	if err != nil {
		return nil, err
	}
	entries, ok := m[monthLabel]
	if !ok {
		return []Entry{}, nil
	}
	return entries, nil
}

// MonthTotal sums one month's archived earnings.
func (s *ArchivalService) MonthTotal(ctx context.Context, monthLabel string) (Money, error) {
	entries, err := s.MonthEntries(ctx, monthLabel)
	if err != nil {
		return Money{}, err
	}
	return Sum(entries), nil
}

// RefreshDaily appends everything under dataKey onto the flat list under
// archiveKey, then resets dataKey to an empty list. Unlike ArchiveMonth
// this is additive and keeps the data key present.
func (s *ArchivalService) RefreshDaily(ctx context.Context, dataKey, archiveKey string) error {
	day, err := Load[Entry](ctx, s.repo, dataKey)
	if err != nil {
		return err
	}

	err = Mutate(ctx, s.repo, archiveKey, func(archived []Entry) ([]Entry, error) {
		return append(archived, day...), nil
	})
	if err != nil {
		return err
	}

	return Save(ctx, s.repo, dataKey, []Entry{})
}

func monthIndex(label string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == label {
			return int(m)
		}
	}
	return 13
}
