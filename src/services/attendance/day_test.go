package attendance

import (
	"context"
	"errors"
	"testing"

	"attendance-tracker/src/models"
	"attendance-tracker/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDayView(t *testing.T) {
	suite := testutil.NewSuiteResult("Day View Tests")
	defer suite.PrintSummary()
	ctx := context.Background()

	suite.Run(t, "BackfillsUnmarkedPastDay", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101", "CS102")

		view, err := f.svc.GetDayView(ctx, "s1", mustDate("2024-05-15"))
		require.NoError(t, err)

		require.Len(t, view.Records, 2)
		for i, code := range []string{"CS101", "CS102"} {
			r := view.Records[i]
			assert.Equal(t, "s1", r.StudentID)
			assert.Equal(t, code, r.SubjectCode)
			assert.Equal(t, "2024-05-15", r.Date)
			assert.Equal(t, 0, r.SessionsHeld)
			assert.Equal(t, 0, r.AttendedCount)
			assert.Equal(t, models.StatusHoliday, r.Status)
		}
		assert.Empty(t, view.Suggestions)
	})

	suite.Run(t, "BackfillIsIdempotent", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101", "CS102")
		day := mustDate("2024-05-15")

		first, err := f.svc.GetDayView(ctx, "s1", day)
		require.NoError(t, err)
		second, err := f.svc.GetDayView(ctx, "s1", day)
		require.NoError(t, err)

		assert.Equal(t, first.Records, second.Records)
		assert.Equal(t, 2, f.store.count())
		assert.Equal(t, 2, f.store.inserts)
	})

	suite.Run(t, "HolidaySuggestsAndSkipsBackfill", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101", "CS102")
		f.calendar.holidays["2024-05-15"] = true

		view, err := f.svc.GetDayView(ctx, "s1", mustDate("2024-05-15"))
		require.NoError(t, err)

		assert.Empty(t, view.Records)
		assert.Equal(t, map[string]models.AttendanceStatus{
			"CS101": models.StatusHoliday,
			"CS102": models.StatusHoliday,
		}, view.Suggestions)
		assert.Equal(t, 0, f.store.inserts)
	})

	suite.Run(t, "TeacherLeaveSubjectNotBackfilled", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101", "CS102")
		f.calendar.leave["CS102|2024-05-15"] = true

		view, err := f.svc.GetDayView(ctx, "s1", mustDate("2024-05-15"))
		require.NoError(t, err)

		require.Len(t, view.Records, 1)
		assert.Equal(t, "CS101", view.Records[0].SubjectCode)
		assert.Equal(t, map[string]models.AttendanceStatus{"CS102": models.StatusTeacherLeave}, view.Suggestions)
	})

	suite.Run(t, "TodayAndFutureAreNotBackfilled", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101")

		for _, d := range []string{"2024-05-18", "2024-05-20"} {
			view, err := f.svc.GetDayView(ctx, "s1", mustDate(d))
			require.NoError(t, err)
			assert.Empty(t, view.Records, d)
		}
		assert.Equal(t, 0, f.store.inserts)
	})

	suite.Run(t, "ExistingRecordIsKept", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101", "CS102")
		marked := models.AttendanceRecord{
			StudentID: "s1", SubjectCode: "CS101", Date: "2024-05-15",
			SessionsHeld: 2, AttendedCount: 1, Status: models.StatusMixed,
		}
		f.store.add(marked)

		view, err := f.svc.GetDayView(ctx, "s1", mustDate("2024-05-15"))
		require.NoError(t, err)

		require.Len(t, view.Records, 2)
		assert.Equal(t, marked, view.Records[0])
		assert.Equal(t, "CS102", view.Records[1].SubjectCode)
		assert.Equal(t, models.StatusHoliday, view.Records[1].Status)
	})

	suite.Run(t, "UnknownStudentDegrades", func(t *testing.T) {
		f := newFixture("2024-05-18")

		view, err := f.svc.GetDayView(ctx, "ghost", mustDate("2024-05-15"))
		require.NoError(t, err)
		assert.Empty(t, view.Records)
		assert.NotNil(t, view.Records)
		assert.Empty(t, view.Suggestions)
	})

	suite.Run(t, "DuplicateEnrollmentBackfilledOnce", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101", "CS101", "")

		view, err := f.svc.GetDayView(ctx, "s1", mustDate("2024-05-15"))
		require.NoError(t, err)
		assert.Len(t, view.Records, 1)
		assert.Equal(t, 1, f.store.inserts)
	})

	suite.Run(t, "StoreFailureKeepsPartialBackfill", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101", "CS102", "CS103")
		f.store.failOn = "insert"
		f.store.failAt = 2

		_, err := f.svc.GetDayView(ctx, "s1", mustDate("2024-05-15"))
		require.Error(t, err)
		assert.Equal(t, 1, f.store.count())
	})

	suite.Run(t, "CalendarFailurePropagates", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101")
		boom := errors.New("calendar unavailable")
		f.calendar.err = boom

		_, err := f.svc.GetDayView(ctx, "s1", mustDate("2024-05-15"))
		assert.ErrorIs(t, err, boom)
	})
}

func TestBackfill(t *testing.T) {
	ctx := context.Background()

	t.Run("CountsCreatedRecords", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101", "CS102")
		f.store.add(models.AttendanceRecord{StudentID: "s1", SubjectCode: "CS102", Date: "2024-05-17", SessionsHeld: 1, Status: models.StatusNotAttended})

		n, err := f.svc.Backfill(ctx, "s1", mustDate("2024-05-17"))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = f.svc.Backfill(ctx, "s1", mustDate("2024-05-17"))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("NoopForToday", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101")

		n, err := f.svc.Backfill(ctx, "s1", mustDate("2024-05-18"))
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, f.calendar.holidayCalls)
	})

	t.Run("NoopForHoliday", func(t *testing.T) {
		f := newFixture("2024-05-18")
		f.enroll("s1", "CS101")
		f.calendar.holidays["2024-05-17"] = true

		n, err := f.svc.Backfill(ctx, "s1", mustDate("2024-05-17"))
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, f.store.count())
	})
}
