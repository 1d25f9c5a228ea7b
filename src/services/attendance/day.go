package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance-tracker/src/models"
	"attendance-tracker/src/utils"
)

// GetDayView returns a student's records for one day together with the
// calendar-derived status suggestions for their subjects.
//
// A past day that is not a holiday gets a holiday record (0 sessions held)
// for every enrolled subject that has neither a teacher-leave entry nor an
// existing record: an unmarked past day counts as "nothing scheduled".
func (s *Service) GetDayView(ctx context.Context, studentID string, day time.Time) (*models.DayView, error) {
	day = utils.TruncateDay(day)
	date := utils.FormatDate(day)

	st, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	subjects := enrolledSubjects(st)

	holiday, err := s.calendar.IsHoliday(ctx, date)
	if err != nil {
		return nil, err
	}

	leave := map[string]bool{}
	if !holiday {
		if leave, err = s.leaveBySubject(ctx, subjects, date); err != nil {
			return nil, err
		}
	}

	if day.Before(s.clock.Today()) && !holiday {
		if _, err := s.backfill(ctx, studentID, date, subjects, leave); err != nil {
			return nil, err
		}
	}

	records, err := s.records.FindByDay(ctx, studentID, date)
	if err != nil {
		return nil, fmt.Errorf("load day records: %w", err)
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}

	suggestions := make(map[string]models.AttendanceStatus)
	for _, code := range subjects {
		switch {
		case holiday:
			suggestions[code] = models.StatusHoliday
		case leave[code]:
			suggestions[code] = models.StatusTeacherLeave
		}
	}

	return &models.DayView{Records: records, Suggestions: suggestions}, nil
}

// Backfill runs only the backfill step of GetDayView. It is a no-op for
// today, future days and holidays.
func (s *Service) Backfill(ctx context.Context, studentID string, day time.Time) (int, error) {
	day = utils.TruncateDay(day)
	if !day.Before(s.clock.Today()) {
		return 0, nil
	}
	date := utils.FormatDate(day)

	holiday, err := s.calendar.IsHoliday(ctx, date)
	if err != nil || holiday {
		return 0, err
	}

	st, err := s.student(ctx, studentID)
	if err != nil {
		return 0, err
	}
	subjects := enrolledSubjects(st)
	leave, err := s.leaveBySubject(ctx, subjects, date)
	if err != nil {
		return 0, err
	}
	return s.backfill(ctx, studentID, date, subjects, leave)
}

func (s *Service) leaveBySubject(ctx context.Context, subjects []string, date string) (map[string]bool, error) {
	leave := make(map[string]bool, len(subjects))
	for _, code := range subjects {
		onLeave, err := s.calendar.IsTeacherLeave(ctx, code, date)
		if err != nil {
			return nil, err
		}
		leave[code] = onLeave
	}
	return leave, nil
}

// backfill stops at the first storage error; records written before it
// are kept.
func (s *Service) backfill(ctx context.Context, studentID, date string, subjects []string, leave map[string]bool) (int, error) {
	var created int
	for _, code := range subjects {
		ok, err := s.backfillOne(ctx, studentID, code, date, leave[code])
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// backfillOne creates the implicit holiday record for one subject if it is
// missing. Reports whether a record was written.
func (s *Service) backfillOne(ctx context.Context, studentID, code, date string, onLeave bool) (bool, error) {
	if onLeave {
		return false, nil
	}
	existing, err := s.records.FindOne(ctx, studentID, code, date)
	if err != nil {
		return false, fmt.Errorf("find record %s/%s: %w", code, date, err)
	}
	if existing != nil {
		return false, nil
	}

	err = s.records.Insert(ctx, models.AttendanceRecord{
		StudentID:     studentID,
		SubjectCode:   code,
		Date:          date,
		SessionsHeld:  0,
		AttendedCount: 0,
		Status:        models.StatusHoliday,
	})
	if err != nil {
		// a concurrent request created it first
		if errors.Is(err, models.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("backfill record %s/%s: %w", code, date, err)
	}
	return true, nil
}
