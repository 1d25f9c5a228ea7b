package database

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisURI    string
)

// InitRedis เชื่อมต่อ Redis ถ้ามีการตั้งค่า REDIS_URI
// ถ้าไม่ตั้งค่า RedisClient จะเป็น nil และระบบจะทำงานแบบไม่มี Redis
func InitRedis(ctx context.Context, uri string) error {
	if uri == "" {
		log.Println("⚠️ REDIS_URI not set. Running without Redis.")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     uri, // เช่น localhost:6379
		Password: "",  // ถ้าไม่มีรหัสผ่าน
		DB:       0,
	})
	if _, err := c.Ping(ctx).Result(); err != nil {
		_ = c.Close()
		return fmt.Errorf("failed to connect Redis: %w", err)
	}

	RedisClient = c
	RedisURI = uri
	log.Println("✅ Redis connected successfully")
	return nil
}
