package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// DefaultMinThreshold เกณฑ์การเข้าเรียนขั้นต่ำเมื่อนิสิตไม่ได้ตั้งค่าไว้
const DefaultMinThreshold = 0.67

// Student นิสิต
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        *string            `bson:"email,omitempty" json:"email"`
	Phone        *string            `bson:"phone,omitempty" json:"phone"`
	PasswordHash *string            `bson:"password_hash,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Course       *string            `bson:"course,omitempty" json:"course"`
	Semester     *int               `bson:"semester,omitempty" json:"semester"`
	Subjects     []string           `bson:"subjects" json:"subjects"`
	MinThreshold *float64           `bson:"min_threshold,omitempty" json:"min_threshold"`
}

// Threshold returns the student's minimum attendance fraction, or fallback
// when none is stored.
func (s *Student) Threshold(fallback float64) float64 {
	if s == nil || s.MinThreshold == nil {
		return fallback
	}
	return *s.MinThreshold
}

// StudentUpdate คือฟิลด์ที่แก้ไขได้ผ่าน PUT /student/:id (nil = ไม่แก้)
type StudentUpdate struct {
	Name         *string   `json:"name" validate:"omitempty,min=1"`
	Semester     *int      `json:"semester" validate:"omitempty,min=1,max=8"`
	Course       *string   `json:"course"`
	Subjects     *[]string `json:"subjects" validate:"omitempty,dive,required"`
	MinThreshold *float64  `json:"min_threshold" validate:"omitempty,min=0,max=1"`
}
