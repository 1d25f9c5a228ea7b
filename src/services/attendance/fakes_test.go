package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"attendance-tracker/src/models"
	"attendance-tracker/src/utils"
)

type memStore struct {
	mu      sync.Mutex
	order   []string
	records map[string]models.AttendanceRecord
	inserts int
	upserts int
	failOn  string // "insert", "upsert", "find"
	failAt  int    // fail the n-th insert (1-based) when failOn == "insert"
}

func newMemStore() *memStore {
	return &memStore{records: map[string]models.AttendanceRecord{}}
}

func memKey(studentID, subjectCode, date string) string {
	return studentID + "|" + subjectCode + "|" + date
}

func (m *memStore) FindOne(_ context.Context, studentID, subjectCode, date string) (*models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "find" {
		return nil, fmt.Errorf("store unavailable")
	}
	rec, ok := m.records[memKey(studentID, subjectCode, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memStore) filter(keep func(models.AttendanceRecord) bool) []models.AttendanceRecord {
	out := []models.AttendanceRecord{}
	for _, k := range m.order {
		if r := m.records[k]; keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *memStore) FindByDay(_ context.Context, studentID, date string) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter(func(r models.AttendanceRecord) bool {
		return r.StudentID == studentID && r.Date == date
	}), nil
}

func (m *memStore) FindInRange(_ context.Context, studentID, from, to string) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "find" {
		return nil, fmt.Errorf("store unavailable")
	}
	return m.filter(func(r models.AttendanceRecord) bool {
		return r.StudentID == studentID && r.Date >= from && r.Date <= to
	}), nil
}

func (m *memStore) Insert(_ context.Context, rec models.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.failOn == "insert" && m.inserts == m.failAt {
		return fmt.Errorf("store unavailable")
	}
	k := memKey(rec.StudentID, rec.SubjectCode, rec.Date)
	if _, ok := m.records[k]; ok {
		return models.ErrDuplicate
	}
	m.order = append(m.order, k)
	m.records[k] = rec
	return nil
}

func (m *memStore) Upsert(_ context.Context, rec models.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.failOn == "upsert" {
		return fmt.Errorf("store unavailable")
	}
	k := memKey(rec.StudentID, rec.SubjectCode, rec.Date)
	if _, ok := m.records[k]; !ok {
		m.order = append(m.order, k)
	}
	m.records[k] = rec
	return nil
}

// add seeds a record directly.
func (m *memStore) add(recs ...models.AttendanceRecord) {
	for _, r := range recs {
		_ = m.Upsert(context.Background(), r)
	}
	m.upserts = 0
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type fakeCalendar struct {
	holidays       map[string]bool
	leave          map[string]bool // subject|date
	semesterStarts []string
	holidayCalls   int
	err            error
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{holidays: map[string]bool{}, leave: map[string]bool{}}
}

func (f *fakeCalendar) IsHoliday(_ context.Context, date string) (bool, error) {
	f.holidayCalls++
	if f.err != nil {
		return false, f.err
	}
	return f.holidays[date], nil
}

func (f *fakeCalendar) IsTeacherLeave(_ context.Context, subjectCode, date string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.leave[subjectCode+"|"+date], nil
}

func (f *fakeCalendar) LatestSemesterStart(_ context.Context) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	if len(f.semesterStarts) == 0 {
		return "", false, nil
	}
	starts := append([]string(nil), f.semesterStarts...)
	sort.Sort(sort.Reverse(sort.StringSlice(starts)))
	return starts[0], true, nil
}

type fakeStudents map[string]*models.Student

func (f fakeStudents) FindByID(_ context.Context, id string) (*models.Student, error) {
	if st, ok := f[id]; ok {
		return st, nil
	}
	return nil, fmt.Errorf("student %s: %w", id, models.ErrNotFound)
}

type fixture struct {
	store    *memStore
	calendar *fakeCalendar
	students fakeStudents
	svc      *Service
	today    time.Time
}

// newFixture builds a Service whose "today" is the given date.
func newFixture(today string) *fixture {
	d, err := utils.ParseDate(today)
	if err != nil {
		panic(err)
	}
	f := &fixture{
		store:    newMemStore(),
		calendar: newFakeCalendar(),
		students: fakeStudents{},
		today:    d,
	}
	f.svc = NewService(f.store, f.calendar, f.students, WithClock(utils.FixedClock(d)))
	return f
}

func (f *fixture) enroll(id string, subjects ...string) *models.Student {
	st := &models.Student{Name: id, Subjects: subjects}
	f.students[id] = st
	return st
}

func mustDate(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func intp(v int) *int { return &v }
