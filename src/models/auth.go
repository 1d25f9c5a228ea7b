package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP รหัสยืนยันทางโทรศัพท์ (ใช้ collection นี้เมื่อไม่มี Redis)
type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Phone     string             `bson:"phone" json:"phone"`
	Code      string             `bson:"code" json:"code"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

type OTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type OTPVerify struct {
	Phone    string  `json:"phone" validate:"required"`
	Code     string  `json:"code" validate:"required"`
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
	Course   *string `json:"course"`
	Semester *int    `json:"semester" validate:"omitempty,min=1,max=8"`
}

type RegisterEmail struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone"`
	Course   string  `json:"course" validate:"required"`
	Semester int     `json:"semester" validate:"required,min=1,max=8"`
}

type LoginEmail struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse ส่ง token กลับพร้อมข้อมูลนิสิต
type AuthResponse struct {
	Token   string   `json:"token"`
	Student *Student `json:"student"`
}
