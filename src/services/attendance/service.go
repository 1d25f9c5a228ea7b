package attendance

import (
	"context"
	"errors"

	"attendance-tracker/src/models"
	"attendance-tracker/src/services/calendar"
	"attendance-tracker/src/utils"
)

var (
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrInvalidDate         = errors.New("invalid date")
	ErrAttendedExceedsHeld = errors.New("attended_count exceeds sessions_held")
)

// RecordStore persists attendance records keyed by (student_id, subject_code, date).
type RecordStore interface {
	// FindOne returns nil, nil when no record exists for the key.
	FindOne(ctx context.Context, studentID, subjectCode, date string) (*models.AttendanceRecord, error)
	FindByDay(ctx context.Context, studentID, date string) ([]models.AttendanceRecord, error)
	// FindInRange returns records with from <= date <= to.
	FindInRange(ctx context.Context, studentID, from, to string) ([]models.AttendanceRecord, error)
	// Insert fails with models.ErrDuplicate when the key already exists.
	Insert(ctx context.Context, rec models.AttendanceRecord) error
	// Upsert overwrites every field of the record matching the key, or
	// inserts it.
	Upsert(ctx context.Context, rec models.AttendanceRecord) error
}

// StudentFinder returns an error wrapping models.ErrNotFound for unknown ids.
type StudentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// Service คำนวณการเข้าเรียน: backfill รายวัน, บันทึกการเช็คชื่อ และสถิติ
type Service struct {
	records          RecordStore
	calendar         calendar.Lookup
	students         StudentFinder
	clock            utils.Clock
	defaultThreshold float64
}

type Option func(*Service)

// WithDefaultThreshold sets the fraction used for students without a
// stored min_threshold.
func WithDefaultThreshold(f float64) Option {
	return func(s *Service) { s.defaultThreshold = f }
}

func WithClock(c utils.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func NewService(records RecordStore, lookup calendar.Lookup, students StudentFinder, opts ...Option) *Service {
	s := &Service{
		records:          records,
		calendar:         lookup,
		students:         students,
		clock:            utils.SystemClock(),
		defaultThreshold: models.DefaultMinThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// student loads the student; an unknown id is not an error here, callers
// degrade to no subjects and the default threshold.
func (s *Service) student(ctx context.Context, id string) (*models.Student, error) {
	st, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return st, nil
}

// enrolledSubjects returns the student's subject codes without duplicates,
// keeping the stored order.
func enrolledSubjects(st *models.Student) []string {
	if st == nil {
		return nil
	}
	seen := make(map[string]bool, len(st.Subjects))
	out := make([]string, 0, len(st.Subjects))
	for _, code := range st.Subjects {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
