package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AttendanceStatus สถานะการเข้าเรียนของวิชาในวันหนึ่ง
type AttendanceStatus string

const (
	StatusAttended     AttendanceStatus = "attended"
	StatusNotAttended  AttendanceStatus = "not_attended"
	StatusTeacherLeave AttendanceStatus = "teacher_leave"
	StatusHoliday      AttendanceStatus = "holiday"
	StatusMixed        AttendanceStatus = "mixed"
)

// Excluded reports whether records with this status are left out of
// attendance totals.
func (s AttendanceStatus) Excluded() bool {
	return s == StatusHoliday || s == StatusTeacherLeave
}

// AttendanceRecord บันทึกการเข้าเรียน หนึ่งรายการต่อ (student_id, subject_code, date)
type AttendanceRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID     string             `bson:"student_id" json:"student_id"`
	SubjectCode   string             `bson:"subject_code" json:"subject_code"`
	Date          string             `bson:"date" json:"date"`
	SessionsHeld  int                `bson:"sessions_held" json:"sessions_held"`
	AttendedCount int                `bson:"attended_count" json:"attended_count"`
	Status        AttendanceStatus   `bson:"status" json:"status"`
}

// AttendanceMark body ของ POST /attendance/mark
type AttendanceMark struct {
	StudentID     string           `json:"student_id" validate:"required"`
	SubjectCode   string           `json:"subject_code" validate:"required"`
	Date          string           `json:"date" validate:"required,datetime=2006-01-02"`
	SessionsHeld  *int             `json:"sessions_held" validate:"omitempty,min=0"`
	AttendedCount *int             `json:"attended_count" validate:"omitempty,min=0"`
	Status        AttendanceStatus `json:"status" validate:"omitempty,oneof=attended not_attended teacher_leave holiday mixed"`
}

// DayView ผลลัพธ์ของ GET /attendance/day
type DayView struct {
	Records     []AttendanceRecord          `json:"records"`
	Suggestions map[string]AttendanceStatus `json:"suggestions"`
}

// Period ช่วงเวลาของสถิติ
type Period string

const (
	PeriodWeekly   Period = "weekly"
	PeriodMonthly  Period = "monthly"
	PeriodSemester Period = "semester"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodSemester:
		return true
	}
	return false
}

type OverallStats struct {
	Attended   int     `json:"attended"`
	Held       int     `json:"held"`
	Percentage float64 `json:"percentage"`
	Threshold  float64 `json:"threshold"`
	Alert      bool    `json:"alert"`
}

type SubjectStats struct {
	SubjectCode string  `json:"subject_code"`
	Attended    int     `json:"attended"`
	Held        int     `json:"held"`
	Percentage  float64 `json:"percentage"`
}

// AttendanceStats ผลลัพธ์ของ GET /attendance/stats
type AttendanceStats struct {
	Period   Period         `json:"period"`
	From     string         `json:"from"`
	To       string         `json:"to"`
	Overall  OverallStats   `json:"overall"`
	Subjects []SubjectStats `json:"subjects"`
}
