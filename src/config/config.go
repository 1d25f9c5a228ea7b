package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config ค่าตั้งค่าของระบบที่อ่านจาก ENV ตอนเริ่มต้น
type Config struct {
	MongoURI            string
	MongoDB             string
	AppURI              string
	AllowedOrigins      string
	RedisURI            string
	JWTSecret           string
	JWTTTL              time.Duration
	OTPTTL              time.Duration
	BackfillCron        string
	DefaultMinThreshold float64
	SeedData            bool
}

// Load โหลด .env (ถ้ามี) แล้วอ่านค่าจาก environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}
	return FromEnv()
}

// FromEnv อ่านค่าจาก environment โดยไม่โหลดไฟล์
func FromEnv() (*Config, error) {
	cfg := &Config{
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDB:             getEnv("MONGO_DB", "AttendanceDB"),
		AppURI:              getEnv("APP_URI", "8888"),
		AllowedOrigins:      getEnv("ALLOWED_ORIGINS", "*"),
		RedisURI:            os.Getenv("REDIS_URI"),
		JWTSecret:           getEnv("JWT_SECRET", "your_secret_key"),
		BackfillCron:        getEnv("BACKFILL_CRON", "5 0 * * *"),
		JWTTTL:              24 * time.Hour,
		OTPTTL:              5 * time.Minute,
		DefaultMinThreshold: 0.67,
	}

	if v := os.Getenv("JWT_TTL_HOURS"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h <= 0 {
			return nil, &InvalidValueError{Key: "JWT_TTL_HOURS", Value: v}
		}
		cfg.JWTTTL = time.Duration(h) * time.Hour
	}
	if v := os.Getenv("OTP_TTL_MINUTES"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m <= 0 {
			return nil, &InvalidValueError{Key: "OTP_TTL_MINUTES", Value: v}
		}
		cfg.OTPTTL = time.Duration(m) * time.Minute
	}
	if v := os.Getenv("DEFAULT_MIN_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return nil, &InvalidValueError{Key: "DEFAULT_MIN_THRESHOLD", Value: v}
		}
		cfg.DefaultMinThreshold = f
	}

	if v := os.Getenv("SEED_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &InvalidValueError{Key: "SEED_DATA", Value: v}
		}
		cfg.SeedData = b
	}

	if cfg.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
