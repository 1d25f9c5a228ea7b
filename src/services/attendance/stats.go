package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"attendance-tracker/src/models"
	"attendance-tracker/src/utils"
)

// GetStats aggregates a student's records from the start of the period
// through today. Holiday and teacher-leave records are left out of every
// total. Only the reported percentages are rounded; the alert uses the
// unrounded ratio and threshold.
func (s *Service) GetStats(ctx context.Context, studentID string, period models.Period) (*models.AttendanceStats, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	today := s.clock.Today()
	from, err := s.windowStart(ctx, period, today)
	if err != nil {
		return nil, err
	}
	to := utils.FormatDate(today)

	records, err := s.records.FindInRange(ctx, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	st, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}

	subjects, overall := aggregate(records)
	// เทียบค่าดิบ ไม่ใช่ค่าที่ปัดแล้ว
	overall.Threshold = st.Threshold(s.defaultThreshold) * 100
	overall.Alert = rawPercentage(overall.Attended, overall.Held) < overall.Threshold

	return &models.AttendanceStats{
		Period:   period,
		From:     from,
		To:       to,
		Overall:  overall,
		Subjects: subjects,
	}, nil
}

// windowStart resolves the first day of the period. The semester starts at
// the latest semester_start calendar entry, or the first of the month when
// there is none.
func (s *Service) windowStart(ctx context.Context, period models.Period, today time.Time) (string, error) {
	switch period {
	case models.PeriodWeekly:
		return utils.FormatDate(utils.WeekStart(today)), nil
	case models.PeriodMonthly:
		return utils.FormatDate(utils.MonthStart(today)), nil
	}

	start, ok, err := s.calendar.LatestSemesterStart(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return utils.FormatDate(utils.MonthStart(today)), nil
	}
	return start, nil
}

// aggregate sums held/attended per subject in first-seen order and overall.
func aggregate(records []models.AttendanceRecord) ([]models.SubjectStats, models.OverallStats) {
	subjects := []models.SubjectStats{}
	index := map[string]int{}
	var overall models.OverallStats

	for _, r := range records {
		if r.Status.Excluded() {
			continue
		}
		overall.Held += r.SessionsHeld
		overall.Attended += r.AttendedCount

		i, ok := index[r.SubjectCode]
		if !ok {
			i = len(subjects)
			index[r.SubjectCode] = i
			subjects = append(subjects, models.SubjectStats{SubjectCode: r.SubjectCode})
		}
		subjects[i].Held += r.SessionsHeld
		subjects[i].Attended += r.AttendedCount
	}

	for i := range subjects {
		subjects[i].Percentage = percentage(subjects[i].Attended, subjects[i].Held)
	}
	overall.Percentage = percentage(overall.Attended, overall.Held)
	return subjects, overall
}

func rawPercentage(attended, held int) float64 {
	if held <= 0 {
		return 0.0
	}
	return float64(attended) / float64(held) * 100
}

// percentage is the reported value, rounded to 2 decimals.
func percentage(attended, held int) float64 {
	return round2(rawPercentage(attended, held))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
