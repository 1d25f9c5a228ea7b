package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"attendance-tracker/src/models"
	"attendance-tracker/src/testutil"
	"attendance-tracker/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// MockStudentStore is a mock implementation of the student store
type MockStudentStore struct {
	mock.Mock
}

func (m *MockStudentStore) result(args mock.Arguments) (*models.Student, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockStudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	return m.result(m.Called(ctx, email))
}

func (m *MockStudentStore) FindByPhone(ctx context.Context, phone string) (*models.Student, error) {
	return m.result(m.Called(ctx, phone))
}

func (m *MockStudentStore) Create(ctx context.Context, student models.Student) (*models.Student, error) {
	return m.result(m.Called(ctx, student))
}

type memOTP struct {
	code      map[string]string
	expiresAt map[string]time.Time
}

func newMemOTP() *memOTP {
	return &memOTP{code: map[string]string{}, expiresAt: map[string]time.Time{}}
}

func (m *memOTP) Replace(_ context.Context, phone, code string, expiresAt time.Time) error {
	m.code[phone] = code
	m.expiresAt[phone] = expiresAt
	return nil
}

func (m *memOTP) Lookup(_ context.Context, phone, code string) (time.Time, bool, error) {
	if c, ok := m.code[phone]; ok && c == code {
		return m.expiresAt[phone], true, nil
	}
	return time.Time{}, false, nil
}

func (m *memOTP) Clear(_ context.Context, phone string) error {
	delete(m.code, phone)
	delete(m.expiresAt, phone)
	return nil
}

func notFound(key string) error {
	return fmt.Errorf("student %s: %w", key, models.ErrNotFound)
}

func newTestService(store *MockStudentStore, otps *memOTP) *Service {
	return NewService(store, otps, Config{TokenTTL: time.Hour, OTPTTL: 5 * time.Minute})
}

func TestAuthFlows(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	suite := testutil.NewSuiteResult("Auth Tests")
	defer suite.PrintSummary()
	ctx := context.Background()

	suite.Run(t, "RequestOTPReplacesCode", func(t *testing.T) {
		otps := newMemOTP()
		svc := newTestService(new(MockStudentStore), otps)

		first, err := svc.RequestOTP(ctx, "0812345678")
		require.NoError(t, err)
		second, err := svc.RequestOTP(ctx, "0812345678")
		require.NoError(t, err)

		assert.Len(t, first, 6)
		assert.Equal(t, second, otps.code["0812345678"])
	})

	suite.Run(t, "VerifyOTPCreatesStudent", func(t *testing.T) {
		otps := newMemOTP()
		store := new(MockStudentStore)
		svc := newTestService(store, otps)
		code, err := svc.RequestOTP(ctx, "0812345678")
		require.NoError(t, err)

		id := primitive.NewObjectID()
		store.On("FindByPhone", ctx, "0812345678").Return(nil, notFound("0812345678"))
		store.On("Create", ctx, mock.MatchedBy(func(s models.Student) bool {
			return s.Name == "Student" && *s.Phone == "0812345678" &&
				s.MinThreshold != nil && *s.MinThreshold == 0.67 &&
				len(s.Subjects) == 0 && s.Role == models.RoleStudent
		})).Return(&models.Student{ID: id, Name: "Student", Role: models.RoleStudent}, nil)

		resp, err := svc.VerifyOTP(ctx, models.OTPVerify{Phone: "0812345678", Code: code})
		require.NoError(t, err)
		assert.Equal(t, id, resp.Student.ID)

		claims, err := utils.ParseJWT(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, id.Hex(), claims.StudentID)
		assert.Empty(t, otps.code, "codes are cleared after verify")
		store.AssertExpectations(t)
	})

	suite.Run(t, "VerifyOTPExistingStudent", func(t *testing.T) {
		otps := newMemOTP()
		store := new(MockStudentStore)
		svc := newTestService(store, otps)
		code, _ := svc.RequestOTP(ctx, "0899999999")

		existing := &models.Student{ID: primitive.NewObjectID(), Name: "Ada", Role: models.RoleStudent}
		store.On("FindByPhone", ctx, "0899999999").Return(existing, nil)

		resp, err := svc.VerifyOTP(ctx, models.OTPVerify{Phone: "0899999999", Code: code})
		require.NoError(t, err)
		assert.Same(t, existing, resp.Student)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	suite.Run(t, "VerifyOTPWrongCode", func(t *testing.T) {
		otps := newMemOTP()
		svc := newTestService(new(MockStudentStore), otps)
		_, _ = svc.RequestOTP(ctx, "0812345678")

		_, err := svc.VerifyOTP(ctx, models.OTPVerify{Phone: "0812345678", Code: "000000"})
		assert.ErrorIs(t, err, ErrInvalidOTP)
	})

	suite.Run(t, "VerifyOTPExpired", func(t *testing.T) {
		otps := newMemOTP()
		svc := newTestService(new(MockStudentStore), otps)
		_ = otps.Replace(ctx, "0812345678", "123456", time.Now().Add(-time.Second))

		_, err := svc.VerifyOTP(ctx, models.OTPVerify{Phone: "0812345678", Code: "123456"})
		assert.ErrorIs(t, err, ErrOTPExpired)
	})

	suite.Run(t, "RegisterEmailRejectsDuplicate", func(t *testing.T) {
		store := new(MockStudentStore)
		svc := newTestService(store, newMemOTP())
		store.On("FindByEmail", ctx, "ada@example.com").Return(&models.Student{}, nil)

		_, err := svc.RegisterEmail(ctx, models.RegisterEmail{Name: "Ada", Email: "ada@example.com", Password: "pw", Course: "CS", Semester: 1})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	suite.Run(t, "RegisterEmailHashesPassword", func(t *testing.T) {
		store := new(MockStudentStore)
		svc := newTestService(store, newMemOTP())
		store.On("FindByEmail", ctx, "ada@example.com").Return(nil, notFound("ada@example.com"))

		var created models.Student
		store.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(models.Student)
		}).Return(&models.Student{ID: primitive.NewObjectID(), Role: models.RoleStudent}, nil)

		resp, err := svc.RegisterEmail(ctx, models.RegisterEmail{Name: "Ada", Email: "ada@example.com", Password: "s3cret", Course: "CS", Semester: 2})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("s3cret")))
		assert.Equal(t, 2, *created.Semester)
	})

	suite.Run(t, "LoginEmail", func(t *testing.T) {
		store := new(MockStudentStore)
		svc := newTestService(store, newMemOTP())
		hash, err := hashPassword("s3cret")
		require.NoError(t, err)
		student := &models.Student{ID: primitive.NewObjectID(), PasswordHash: &hash, Role: models.RoleStudent}
		store.On("FindByEmail", ctx, "ada@example.com").Return(student, nil)
		store.On("FindByEmail", ctx, "nobody@example.com").Return(nil, notFound("nobody@example.com"))

		resp, err := svc.LoginEmail(ctx, models.LoginEmail{Email: "ada@example.com", Password: "s3cret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)

		_, err = svc.LoginEmail(ctx, models.LoginEmail{Email: "ada@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.LoginEmail(ctx, models.LoginEmail{Email: "nobody@example.com", Password: "s3cret"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestOTPEncoding(t *testing.T) {
	exp := time.Unix(1715760000, 0)
	code, got, err := decodeOTP(encodeOTP("123456", exp))
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
	assert.True(t, exp.Equal(got))

	_, _, err = decodeOTP("garbage")
	assert.Error(t, err)
	_, _, err = decodeOTP("123456|soon")
	assert.Error(t, err)
	assert.Equal(t, "otp:0812345678", otpKey("0812345678"))
}
