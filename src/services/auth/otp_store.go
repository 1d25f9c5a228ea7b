package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"attendance-tracker/src/database"
	"attendance-tracker/src/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// expiredGrace is shared with the Mongo TTL index so both stores answer
// "code expired" for the same window.
const expiredGrace = database.OTPExpiredGrace

// RedisOTPStore เก็บ OTP ใน Redis key otp:<phone> พร้อม TTL
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func otpKey(phone string) string {
	return "otp:" + phone
}

func encodeOTP(code string, expiresAt time.Time) string {
	return code + "|" + strconv.FormatInt(expiresAt.Unix(), 10)
}

func decodeOTP(v string) (string, time.Time, error) {
	code, ts, ok := strings.Cut(v, "|")
	if !ok {
		return "", time.Time{}, fmt.Errorf("malformed otp value")
	}
	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed otp expiry: %w", err)
	}
	return code, time.Unix(sec, 0), nil
}

func (r *RedisOTPStore) Replace(ctx context.Context, phone, code string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt) + expiredGrace
	return r.client.Set(ctx, otpKey(phone), encodeOTP(code, expiresAt), ttl).Err()
}

func (r *RedisOTPStore) Lookup(ctx context.Context, phone, code string) (time.Time, bool, error) {
	v, err := r.client.Get(ctx, otpKey(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	stored, expiresAt, err := decodeOTP(v)
	if err != nil {
		return time.Time{}, false, err
	}
	if stored != code {
		return time.Time{}, false, nil
	}
	return expiresAt, true, nil
}

func (r *RedisOTPStore) Clear(ctx context.Context, phone string) error {
	return r.client.Del(ctx, otpKey(phone)).Err()
}

// MongoOTPStore ใช้ collection otp เมื่อไม่มี Redis
// (TTL index บน expires_at ลบเอกสารหลังหมดอายุไปแล้ว expiredGrace)
type MongoOTPStore struct {
	col *mongo.Collection
}

func NewMongoOTPStore(col *mongo.Collection) *MongoOTPStore {
	return &MongoOTPStore{col: col}
}

func (m *MongoOTPStore) Replace(ctx context.Context, phone, code string, expiresAt time.Time) error {
	if _, err := m.col.DeleteMany(ctx, bson.M{"phone": phone}); err != nil {
		return err
	}
	_, err := m.col.InsertOne(ctx, models.OTP{Phone: phone, Code: code, ExpiresAt: expiresAt})
	return err
}

func (m *MongoOTPStore) Lookup(ctx context.Context, phone, code string) (time.Time, bool, error) {
	var otp models.OTP
	err := m.col.FindOne(ctx, bson.M{"phone": phone, "code": code}).Decode(&otp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return otp.ExpiresAt, true, nil
}

func (m *MongoOTPStore) Clear(ctx context.Context, phone string) error {
	_, err := m.col.DeleteMany(ctx, bson.M{"phone": phone})
	return err
}
