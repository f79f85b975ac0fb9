package repository

import (
	"context"
	"fmt"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
)

// AttendanceRepository handles the Attendance collection. Records are keyed by
// models.AttendanceID so a re-mark overwrites.
type AttendanceRepository struct {
	store docstore.Store
}

func NewAttendanceRepository(store docstore.Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// MarkAttendance upserts the record for (childID, date) and returns it
func (r *AttendanceRepository) MarkAttendance(ctx context.Context, childID, date string, present bool) (*models.AttendanceRecord, error) {
	rec := &models.AttendanceRecord{
		ID:      models.AttendanceID(childID, date),
		ChildID: childID,
		Date:    date,
		Present: present,
	}
	if err := r.store.Set(ctx, AttendanceCollection, rec.ID, attendanceToFields(rec)); err != nil {
		return nil, fmt.Errorf("failed to mark attendance: %w", err)
	}
	return rec, nil
}

func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	return r.listWhere(ctx, "date", date)
}

func (r *AttendanceRepository) ListByChild(ctx context.Context, childID string) ([]models.AttendanceRecord, error) {
	return r.listWhere(ctx, "childId", childID)
}

func (r *AttendanceRepository) listWhere(ctx context.Context, field, value string) ([]models.AttendanceRecord, error) {
	docs, err := r.store.Where(ctx, AttendanceCollection, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	records := make([]models.AttendanceRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, attendanceFromDocument(doc))
	}
	return records, nil
}

func attendanceToFields(a *models.AttendanceRecord) docstore.Fields {
	return docstore.Fields{
		"childId": a.ChildID,
		"date":    a.Date,
		"present": a.Present,
	}
}

func attendanceFromDocument(doc docstore.Document) models.AttendanceRecord {
	return models.AttendanceRecord{
		ID:      doc.ID,
		ChildID: doc.Fields.String("childId"),
		Date:    doc.Fields.String("date"),
		Present: doc.Fields.Bool("present"),
	}
}
