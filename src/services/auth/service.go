package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance-tracker/src/models"
	"attendance-tracker/src/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidOTP         = errors.New("invalid code")
	ErrOTPExpired         = errors.New("code expired")
)

// StudentStore is the part of students.Service the auth flows use.
type StudentStore interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByPhone(ctx context.Context, phone string) (*models.Student, error)
	Create(ctx context.Context, student models.Student) (*models.Student, error)
}

// OTPStore keeps at most one live code per phone.
type OTPStore interface {
	// Replace drops earlier codes for the phone and stores code until expiresAt.
	Replace(ctx context.Context, phone, code string, expiresAt time.Time) error
	// Lookup returns the expiry of a matching code, ok=false when none matches.
	Lookup(ctx context.Context, phone, code string) (expiresAt time.Time, ok bool, err error)
	Clear(ctx context.Context, phone string) error
}

type Service struct {
	students         StudentStore
	otps             OTPStore
	tokenTTL         time.Duration
	otpTTL           time.Duration
	defaultThreshold float64
	now              func() time.Time
}

type Config struct {
	TokenTTL         time.Duration
	OTPTTL           time.Duration
	DefaultThreshold float64
}

func NewService(students StudentStore, otps OTPStore, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 5 * time.Minute
	}
	if cfg.DefaultThreshold == 0 {
		cfg.DefaultThreshold = models.DefaultMinThreshold
	}
	return &Service{
		students:         students,
		otps:             otps,
		tokenTTL:         cfg.TokenTTL,
		otpTTL:           cfg.OTPTTL,
		defaultThreshold: cfg.DefaultThreshold,
		now:              time.Now,
	}
}

// RequestOTP ออกรหัส OTP ใหม่ให้เบอร์โทร (รหัสเก่าของเบอร์นี้ถูกลบ)
func (s *Service) RequestOTP(ctx context.Context, phone string) (string, error) {
	code, err := utils.GenerateOTPCode()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	if err := s.otps.Replace(ctx, phone, code, s.now().Add(s.otpTTL)); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// VerifyOTP checks the code and signs the student in, registering them on
// first use of the phone number.
func (s *Service) VerifyOTP(ctx context.Context, req models.OTPVerify) (*models.AuthResponse, error) {
	expiresAt, ok, err := s.otps.Lookup(ctx, req.Phone, req.Code)
	if err != nil {
		return nil, fmt.Errorf("lookup otp: %w", err)
	}
	if !ok {
		return nil, ErrInvalidOTP
	}
	if expiresAt.Before(s.now()) {
		return nil, ErrOTPExpired
	}

	student, err := s.students.FindByPhone(ctx, req.Phone)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if student == nil {
		name := "Student"
		if req.Name != nil && *req.Name != "" {
			name = *req.Name
		}
		phone := req.Phone
		doc := models.Student{
			Name:     name,
			Email:    req.Email,
			Phone:    &phone,
			Role:     models.RoleStudent,
			Course:   req.Course,
			Semester: req.Semester,
			Subjects: []string{},
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return nil, err
			}
			doc.PasswordHash = &hash
		}
		doc.MinThreshold = s.threshold()
		if student, err = s.students.Create(ctx, doc); err != nil {
			if errors.Is(err, models.ErrDuplicate) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
	}

	if err := s.otps.Clear(ctx, req.Phone); err != nil {
		return nil, fmt.Errorf("clear otp: %w", err)
	}
	return s.issue(student)
}

// RegisterEmail สมัครสมาชิกด้วยอีเมลและรหัสผ่าน
func (s *Service) RegisterEmail(ctx context.Context, req models.RegisterEmail) (*models.AuthResponse, error) {
	existing, err := s.students.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	email, course, semester := req.Email, req.Course, req.Semester
	student, err := s.students.Create(ctx, models.Student{
		Name:         req.Name,
		Email:        &email,
		Phone:        req.Phone,
		PasswordHash: &hash,
		Role:         models.RoleStudent,
		Course:       &course,
		Semester:     &semester,
		Subjects:     []string{},
		MinThreshold: s.threshold(),
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issue(student)
}

// LoginEmail ตรวจสอบอีเมลและรหัสผ่าน
func (s *Service) LoginEmail(ctx context.Context, req models.LoginEmail) (*models.AuthResponse, error) {
	student, err := s.students.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if student.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(student)
}

func (s *Service) issue(student *models.Student) (*models.AuthResponse, error) {
	token, err := utils.GenerateJWT(student.ID.Hex(), student.Role, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, Student: student}, nil
}

func (s *Service) threshold() *float64 {
	th := s.defaultThreshold
	return &th
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
