package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Subject รายวิชา (ข้อมูลอ้างอิงที่ admin เป็นคนสร้าง)
type Subject struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code     string             `bson:"code" json:"code" validate:"required"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Semester int                `bson:"semester" json:"semester" validate:"required,min=1,max=8"`
}
