package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CalendarType ประเภทของวันในปฏิทินการศึกษา
type CalendarType string

const (
	CalendarHoliday       CalendarType = "holiday"
	CalendarEvent         CalendarType = "event"
	CalendarSemesterStart CalendarType = "semester_start"
	CalendarSemesterEnd   CalendarType = "semester_end"
)

// AcademicCalendarEntry one dated entry of the academic calendar. Several
// entries may share a date.
type AcademicCalendarEntry struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title string             `bson:"title" json:"title" validate:"required"`
	Date  string             `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Type  CalendarType       `bson:"type" json:"type" validate:"required,oneof=holiday event semester_start semester_end"`
}

// TeacherLeaveEntry marks a subject's sessions on a date as cancelled.
type TeacherLeaveEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectCode string             `bson:"subject_code" json:"subject_code" validate:"required"`
	Date        string             `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Reason      *string            `bson:"reason,omitempty" json:"reason"`
}
