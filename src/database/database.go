package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ชื่อ collection ใน MongoDB
const (
	StudentCollectionName      = "student"
	SubjectCollectionName      = "subject"
	CalendarCollectionName     = "academiccalendar"
	TeacherLeaveCollectionName = "teacherleave"
	OTPCollectionName          = "otp"
	AttendanceCollectionName   = "attendancerecord"
)

var (
	client     *mongo.Client
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error

	DB                     *mongo.Database
	StudentCollection      *mongo.Collection
	SubjectCollection      *mongo.Collection
	CalendarCollection     *mongo.Collection
	TeacherLeaveCollection *mongo.Collection
	OTPCollection          *mongo.Collection
	AttendanceCollection   *mongo.Collection
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว แล้วผูก collection ทั้งหมด
func ConnectMongoDB(mongoURI, dbName string) error {
	if mongoURI == "" {
		return fmt.Errorf("mongo uri is empty")
	}

	once.Do(func() { // ✅ Run only once
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(ctx, clientOptions)
		if connectErr != nil {
			log.Println("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		// ตรวจสอบการเชื่อมต่อ
		connectErr = client.Ping(ctx, readpref.Primary())
		if connectErr != nil {
			log.Println("❌ MongoDB ping failed:", connectErr)
			return
		}

		DB = client.Database(dbName)
		StudentCollection = DB.Collection(StudentCollectionName)
		SubjectCollection = DB.Collection(SubjectCollectionName)
		CalendarCollection = DB.Collection(CalendarCollectionName)
		TeacherLeaveCollection = DB.Collection(TeacherLeaveCollectionName)
		OTPCollection = DB.Collection(OTPCollectionName)
		AttendanceCollection = DB.Collection(AttendanceCollectionName)

		log.Println("✅ MongoDB connected successfully")
	})

	return connectErr
}

// OTPExpiredGrace keeps an expired code stored for a while after expires_at
// so verify can answer "code expired" rather than "invalid code".
const OTPExpiredGrace = time.Minute

func indexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		AttendanceCollectionName: {
			{
				// หนึ่ง record ต่อ (student_id, subject_code, date)
				Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "subject_code", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_student_subject_date"),
			},
			{
				Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("student_date"),
			},
		},
		SubjectCollectionName: {
			{
				Keys:    bson.D{{Key: "code", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_code"),
			},
			{
				Keys:    bson.D{{Key: "semester", Value: 1}},
				Options: options.Index().SetName("semester"),
			},
		},
		CalendarCollectionName: {
			{
				Keys:    bson.D{{Key: "date", Value: 1}, {Key: "type", Value: 1}},
				Options: options.Index().SetName("date_type"),
			},
		},
		TeacherLeaveCollectionName: {
			{
				Keys:    bson.D{{Key: "subject_code", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("subject_date"),
			},
		},
		OTPCollectionName: {
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(int32(OTPExpiredGrace / time.Second)).SetName("ttl_expires_at"),
			},
			{
				Keys:    bson.D{{Key: "phone", Value: 1}},
				Options: options.Index().SetName("phone"),
			},
		},
		StudentCollectionName: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_email"),
			},
			{
				Keys:    bson.D{{Key: "phone", Value: 1}},
				Options: options.Index().SetSparse(true).SetName("phone"),
			},
		},
	}
}

// EnsureIndexes สร้าง index ที่ระบบต้องใช้ (เรียกซ้ำได้)
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range indexSpecs() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	log.Println("✅ MongoDB indexes ensured")
	return nil
}

// ListCollections แสดงรายชื่อ collection ใน database ปัจจุบัน
func ListCollections(ctx context.Context) ([]string, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not configured")
	}
	return DB.ListCollectionNames(ctx, bson.M{})
}

// Disconnect ปิดการเชื่อมต่อ MongoDB
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
