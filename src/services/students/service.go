package students

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attendance-tracker/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service ข้อมูลนิสิตใน collection student
type Service struct {
	col *mongo.Collection
}

func NewService(col *mongo.Collection) *Service {
	return &Service{col: col}
}

func notFound(key string) error {
	return fmt.Errorf("student %s: %w", key, models.ErrNotFound)
}

func (s *Service) findOne(ctx context.Context, filter bson.M, key string) (*models.Student, error) {
	var student models.Student
	err := s.col.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(key)
		}
		return nil, fmt.Errorf("find student %s: %w", key, err)
	}
	return &student, nil
}

// FindByID ids that are not valid ObjectIDs are reported as not found.
func (s *Service) FindByID(ctx context.Context, id string) (*models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, notFound(id)
	}
	return s.findOne(ctx, bson.M{"_id": oid}, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	email = normalizeEmail(email)
	return s.findOne(ctx, bson.M{"email": email}, email)
}

func (s *Service) FindByPhone(ctx context.Context, phone string) (*models.Student, error) {
	return s.findOne(ctx, bson.M{"phone": phone}, phone)
}

// Create บันทึกนิสิตใหม่ อีเมลซ้ำจะได้ models.ErrDuplicate
func (s *Service) Create(ctx context.Context, student models.Student) (*models.Student, error) {
	if student.Email != nil {
		e := normalizeEmail(*student.Email)
		student.Email = &e
	}
	if student.Role == "" {
		student.Role = models.RoleStudent
	}
	if student.Subjects == nil {
		student.Subjects = []string{}
	}
	student.ID = primitive.NilObjectID

	res, err := s.col.InsertOne(ctx, student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("student email: %w", models.ErrDuplicate)
		}
		return nil, fmt.Errorf("insert student: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		student.ID = oid
	}
	return &student, nil
}

// Update applies the non-nil fields of upd and returns the stored student.
func (s *Service) Update(ctx context.Context, id string, upd models.StudentUpdate) (*models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, notFound(id)
	}

	set := updateSet(upd)
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var student models.Student
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("update student %s: %w", id, err)
	}
	return &student, nil
}

func updateSet(upd models.StudentUpdate) bson.M {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Semester != nil {
		set["semester"] = *upd.Semester
	}
	if upd.Course != nil {
		set["course"] = *upd.Course
	}
	if upd.Subjects != nil {
		subjects := *upd.Subjects
		if subjects == nil {
			subjects = []string{}
		}
		set["subjects"] = subjects
	}
	if upd.MinThreshold != nil {
		set["min_threshold"] = *upd.MinThreshold
	}
	return set
}

// ListIDs คืน id ของนิสิตทุกคน (ใช้ตอน backfill รายวัน)
func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode student id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cursor.Err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
