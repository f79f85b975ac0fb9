package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"bytebabies/internal/models"
)

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// maxBatchWrites bounds the concurrent writes of one batch
const maxBatchWrites = 8

// MarkAttendance upserts the record for (childID, date). Re-marking overwrites, so the
// last write wins. An absence starts the hook chain in the background.
func (f *Facade) MarkAttendance(ctx context.Context, childID, date string, present bool) error {
	if !models.ValidDate(date) {
		return ErrInvalidDate
	}
	rec, err := f.attendance.MarkAttendance(ctx, childID, date, present)
	if err != nil {
		return err
	}
	if !present {
		f.runHooks(ctx, *rec)
	}
	return nil
}

// MarkAttendanceBatch marks every child in marks for date concurrently and reports the
// joined error of all failed writes
func (f *Facade) MarkAttendanceBatch(ctx context.Context, date string, marks map[string]bool) error {
	if !models.ValidDate(date) {
		return ErrInvalidDate
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(maxBatchWrites)

	// Every write runs to completion; failures are collected rather than cancelling the rest
	for childID, present := range marks {
		childID, present := childID, present
		g.Go(func() error {
			if err := f.MarkAttendance(ctx, childID, date, present); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("child %s: %w", childID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// FetchAttendanceForDate returns every record for date
func (f *Facade) FetchAttendanceForDate(ctx context.Context, date string) []models.AttendanceRecord {
	records, err := f.attendance.ListByDate(ctx, date)
	if err != nil {
		logReadFailure("attendance for date", err)
		return []models.AttendanceRecord{}
	}
	return records
}

// FetchAttendanceForChild returns the child's records, oldest first
func (f *Facade) FetchAttendanceForChild(ctx context.Context, childID string) []models.AttendanceRecord {
	records, err := f.attendance.ListByChild(ctx, childID)
	if err != nil {
		logReadFailure("attendance for child", err)
		return []models.AttendanceRecord{}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records
}

// FetchAbsentTodayForParent returns the parent's children marked absent today
func (f *Facade) FetchAbsentTodayForParent(ctx context.Context, parentID string) []models.Child {
	absent := []models.Child{}

	records, err := f.attendance.ListByDate(ctx, f.Today())
	if err != nil {
		logReadFailure("today's attendance", err)
		return absent
	}
	absentIDs := make(map[string]bool)
	for _, rec := range records {
		if !rec.Present {
			absentIDs[rec.ChildID] = true
		}
	}
	if len(absentIDs) == 0 {
		return absent
	}

	for _, child := range f.FetchChildrenOfParent(ctx, parentID) {
		if absentIDs[child.ID] {
			absent = append(absent, child)
		}
	}
	return absent
}
