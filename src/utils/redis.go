package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist เก็บ jti ของ token ที่ logout แล้วไว้ใน Redis จนกว่าจะหมดอายุ
// ถ้า client เป็น nil (dev mode ไม่มี Redis) ทุก method จะข้ามการทำงาน
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

// Revoke เพิ่ม token เข้า blacklist
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, expiresIn time.Duration) error {
	if b == nil || b.client == nil {
		log.Println("⚠️ redis client not initialized, skip token blacklist")
		return nil
	}
	if expiresIn <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(jti), "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsRevoked ตรวจสอบว่า token อยู่ใน blacklist หรือไม่
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if b == nil || b.client == nil {
		return false, nil
	}
	_, err := b.client.Get(ctx, blacklistKey(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return true, nil
}
