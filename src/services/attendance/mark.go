package attendance

import (
	"context"
	"fmt"

	"attendance-tracker/src/models"
	"attendance-tracker/src/utils"
)

// ค่าเริ่มต้นเมื่อ client ไม่ส่งมา
const (
	defaultSessionsHeld  = 1
	defaultAttendedCount = 0
	defaultStatus        = models.StatusMixed
)

// Mark normalizes one submission against the calendar and upserts it.
// Holiday and teacher-leave overrides always win over the caller's status.
func (s *Service) Mark(ctx context.Context, in models.AttendanceMark) (*models.AttendanceRecord, error) {
	day, err := utils.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, in.Date)
	}
	rec := recordFromMark(in)
	rec.Date = utils.FormatDate(day)

	holiday, err := s.calendar.IsHoliday(ctx, rec.Date)
	if err != nil {
		return nil, err
	}
	onLeave := false
	if !holiday {
		if onLeave, err = s.calendar.IsTeacherLeave(ctx, rec.SubjectCode, rec.Date); err != nil {
			return nil, err
		}
	}

	rec = normalize(rec, holiday, onLeave)
	if rec.AttendedCount > rec.SessionsHeld {
		return nil, fmt.Errorf("%w: %d > %d", ErrAttendedExceedsHeld, rec.AttendedCount, rec.SessionsHeld)
	}

	if err := s.records.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("upsert record: %w", err)
	}
	return &rec, nil
}

func recordFromMark(in models.AttendanceMark) models.AttendanceRecord {
	rec := models.AttendanceRecord{
		StudentID:     in.StudentID,
		SubjectCode:   in.SubjectCode,
		Date:          in.Date,
		SessionsHeld:  defaultSessionsHeld,
		AttendedCount: defaultAttendedCount,
		Status:        defaultStatus,
	}
	if in.SessionsHeld != nil {
		rec.SessionsHeld = *in.SessionsHeld
	}
	if in.AttendedCount != nil {
		rec.AttendedCount = *in.AttendedCount
	}
	if in.Status != "" {
		rec.Status = in.Status
	}
	return rec
}

// normalize applies calendar overrides. A holiday forces status=holiday,
// attended=0 and at least one session held; teacher leave forces
// status=teacher_leave and attended=0, keeping sessions_held as given.
func normalize(rec models.AttendanceRecord, holiday, onLeave bool) models.AttendanceRecord {
	switch {
	case holiday:
		rec.Status = models.StatusHoliday
		rec.SessionsHeld = max(rec.SessionsHeld, 1)
		rec.AttendedCount = 0
	case onLeave:
		rec.Status = models.StatusTeacherLeave
		rec.AttendedCount = 0
	}
	return rec
}
