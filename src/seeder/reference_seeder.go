package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"

	"attendance-tracker/src/models"
	"attendance-tracker/src/services/subjects"
)

type SubjectCreator interface {
	Create(ctx context.Context, subject models.Subject) (*models.Subject, error)
}

type CalendarWriter interface {
	ListEntries(ctx context.Context, from, to string) ([]models.AcademicCalendarEntry, error)
	AddEntry(ctx context.Context, entry models.AcademicCalendarEntry) (*models.AcademicCalendarEntry, error)
}

// SampleSubjects รายวิชาตัวอย่างสำหรับ dev
var SampleSubjects = []models.Subject{
	{Code: "CS101", Name: "Introduction to Programming", Semester: 1},
	{Code: "MA101", Name: "Calculus I", Semester: 1},
	{Code: "EN101", Name: "Academic English", Semester: 1},
	{Code: "CS201", Name: "Data Structures", Semester: 2},
	{Code: "CS202", Name: "Discrete Mathematics", Semester: 2},
}

// SeedReferenceData creates the sample subjects and, when the calendar has
// no entry on semesterStart yet, a semester_start entry for it. Running it
// again is a no-op.
func SeedReferenceData(ctx context.Context, subjectSvc SubjectCreator, calendarSvc CalendarWriter, semesterStart string) error {
	created := 0
	for _, s := range SampleSubjects {
		if _, err := subjectSvc.Create(ctx, s); err != nil {
			if errors.Is(err, subjects.ErrSubjectExists) {
				continue
			}
			return fmt.Errorf("seed subject %s: %w", s.Code, err)
		}
		created++
	}
	log.Printf("✅ Seeded %d subjects (%d already present)", created, len(SampleSubjects)-created)

	existing, err := calendarSvc.ListEntries(ctx, semesterStart, semesterStart)
	if err != nil {
		return fmt.Errorf("check calendar %s: %w", semesterStart, err)
	}
	for _, e := range existing {
		if e.Type == models.CalendarSemesterStart {
			return nil
		}
	}
	if _, err := calendarSvc.AddEntry(ctx, models.AcademicCalendarEntry{
		Title: "Semester start",
		Date:  semesterStart,
		Type:  models.CalendarSemesterStart,
	}); err != nil {
		return fmt.Errorf("seed semester start: %w", err)
	}
	log.Printf("✅ Seeded semester start on %s", semesterStart)
	return nil
}
