package attendance

import (
	"context"
	"errors"

	"attendance-tracker/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore เก็บ AttendanceRecord ใน collection attendancerecord
// ต้องมี unique index บน (student_id, subject_code, date) ดู database.EnsureIndexes
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

var _ RecordStore = (*MongoStore)(nil)

func keyFilter(studentID, subjectCode, date string) bson.M {
	return bson.M{"student_id": studentID, "subject_code": subjectCode, "date": date}
}

func rangeFilter(studentID, from, to string) bson.M {
	return bson.M{"student_id": studentID, "date": bson.M{"$gte": from, "$lte": to}}
}

func (m *MongoStore) FindOne(ctx context.Context, studentID, subjectCode, date string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := m.col.FindOne(ctx, keyFilter(studentID, subjectCode, date)).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (m *MongoStore) FindByDay(ctx context.Context, studentID, date string) ([]models.AttendanceRecord, error) {
	return m.find(ctx, bson.M{"student_id": studentID, "date": date})
}

func (m *MongoStore) FindInRange(ctx context.Context, studentID, from, to string) ([]models.AttendanceRecord, error) {
	return m.find(ctx, rangeFilter(studentID, from, to))
}

func (m *MongoStore) find(ctx context.Context, filter bson.M) ([]models.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.AttendanceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (m *MongoStore) Insert(ctx context.Context, rec models.AttendanceRecord) error {
	rec.ID = primitive.NilObjectID
	_, err := m.col.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicate
	}
	return err
}

// Upsert is last-write-wins; there is no version check.
func (m *MongoStore) Upsert(ctx context.Context, rec models.AttendanceRecord) error {
	update := bson.M{"$set": bson.M{
		"student_id":     rec.StudentID,
		"subject_code":   rec.SubjectCode,
		"date":           rec.Date,
		"sessions_held":  rec.SessionsHeld,
		"attended_count": rec.AttendedCount,
		"status":         rec.Status,
	}}
	_, err := m.col.UpdateOne(ctx,
		keyFilter(rec.StudentID, rec.SubjectCode, rec.Date),
		update,
		options.Update().SetUpsert(true),
	)
	return err
}
