package calendar

import (
	"context"
	"errors"
	"fmt"

	"attendance-tracker/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Lookup answers calendar questions for attendance logic. Every call reads
// the current reference data; nothing is cached.
type Lookup interface {
	IsHoliday(ctx context.Context, date string) (bool, error)
	IsTeacherLeave(ctx context.Context, subjectCode, date string) (bool, error)
	// LatestSemesterStart returns the date of the most recent semester_start
	// entry, ok=false when there is none.
	LatestSemesterStart(ctx context.Context) (date string, ok bool, err error)
}

// Service ปฏิทินการศึกษาและวันลาของอาจารย์ (MongoDB)
type Service struct {
	calendar *mongo.Collection
	leave    *mongo.Collection
}

func NewService(calendar, leave *mongo.Collection) *Service {
	return &Service{calendar: calendar, leave: leave}
}

var _ Lookup = (*Service)(nil)

func holidayFilter(date string) bson.M {
	return bson.M{"date": date, "type": models.CalendarHoliday}
}

func teacherLeaveFilter(subjectCode, date string) bson.M {
	return bson.M{"subject_code": subjectCode, "date": date}
}

// dateRangeFilter สร้าง filter ช่วงวันที่แบบรวมขอบ (ว่าง = ไม่จำกัด)
func dateRangeFilter(from, to string) bson.M {
	q := bson.M{}
	if from == "" && to == "" {
		return q
	}
	r := bson.M{}
	if from != "" {
		r["$gte"] = from
	}
	if to != "" {
		r["$lte"] = to
	}
	q["date"] = r
	return q
}

func exists(ctx context.Context, col *mongo.Collection, filter bson.M) (bool, error) {
	err := col.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) IsHoliday(ctx context.Context, date string) (bool, error) {
	ok, err := exists(ctx, s.calendar, holidayFilter(date))
	if err != nil {
		return false, fmt.Errorf("holiday lookup: %w", err)
	}
	return ok, nil
}

func (s *Service) IsTeacherLeave(ctx context.Context, subjectCode, date string) (bool, error) {
	ok, err := exists(ctx, s.leave, teacherLeaveFilter(subjectCode, date))
	if err != nil {
		return false, fmt.Errorf("teacher leave lookup: %w", err)
	}
	return ok, nil
}

func (s *Service) LatestSemesterStart(ctx context.Context) (string, bool, error) {
	var entry models.AcademicCalendarEntry
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	err := s.calendar.FindOne(ctx, bson.M{"type": models.CalendarSemesterStart}, opts).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("semester start lookup: %w", err)
	}
	return entry.Date, true, nil
}

// AddEntry เพิ่มวันในปฏิทินการศึกษา
func (s *Service) AddEntry(ctx context.Context, entry models.AcademicCalendarEntry) (*models.AcademicCalendarEntry, error) {
	if entry.Type == "" {
		entry.Type = models.CalendarHoliday
	}
	res, err := s.calendar.InsertOne(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("insert calendar entry: %w", err)
	}
	entry.ID = objectID(res.InsertedID)
	return &entry, nil
}

// ListEntries ดึงรายการปฏิทินในช่วง [from, to]
func (s *Service) ListEntries(ctx context.Context, from, to string) ([]models.AcademicCalendarEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.calendar.Find(ctx, dateRangeFilter(from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("list calendar: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.AcademicCalendarEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode calendar: %w", err)
	}
	return entries, nil
}

// AddTeacherLeave บันทึกวันลาของอาจารย์ประจำวิชา
func (s *Service) AddTeacherLeave(ctx context.Context, entry models.TeacherLeaveEntry) (*models.TeacherLeaveEntry, error) {
	res, err := s.leave.InsertOne(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("insert teacher leave: %w", err)
	}
	entry.ID = objectID(res.InsertedID)
	return &entry, nil
}

// ListTeacherLeave filters by subject code and/or exact date; empty
// arguments are ignored.
func (s *Service) ListTeacherLeave(ctx context.Context, subjectCode, date string) ([]models.TeacherLeaveEntry, error) {
	cursor, err := s.leave.Find(ctx, teacherLeaveQuery(subjectCode, date))
	if err != nil {
		return nil, fmt.Errorf("list teacher leave: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.TeacherLeaveEntry{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode teacher leave: %w", err)
	}
	return items, nil
}

func teacherLeaveQuery(subjectCode, date string) bson.M {
	q := bson.M{}
	if subjectCode != "" {
		q["subject_code"] = subjectCode
	}
	if date != "" {
		q["date"] = date
	}
	return q
}
