package subjects

import (
	"context"
	"errors"
	"fmt"

	"attendance-tracker/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSubjectExists = errors.New("subject code exists")

type Service struct {
	col *mongo.Collection
}

func NewService(col *mongo.Collection) *Service {
	return &Service{col: col}
}

// Create เพิ่มรายวิชาใหม่ รหัสวิชาต้องไม่ซ้ำ
func (s *Service) Create(ctx context.Context, subject models.Subject) (*models.Subject, error) {
	err := s.col.FindOne(ctx, bson.M{"code": subject.Code}).Err()
	if err == nil {
		return nil, ErrSubjectExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find subject %s: %w", subject.Code, err)
	}

	subject.ID = primitive.NilObjectID
	res, err := s.col.InsertOne(ctx, subject)
	if err != nil {
		// unique index on code catches a concurrent create
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSubjectExists
		}
		return nil, fmt.Errorf("insert subject: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		subject.ID = oid
	}
	return &subject, nil
}

// ListBySemester ดึงรายวิชาทั้งหมดของภาคการศึกษา
func (s *Service) ListBySemester(ctx context.Context, semester int) ([]models.Subject, error) {
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{"semester": semester}, opts)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer cursor.Close(ctx)

	subjects := []models.Subject{}
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, fmt.Errorf("decode subjects: %w", err)
	}
	return subjects, nil
}
