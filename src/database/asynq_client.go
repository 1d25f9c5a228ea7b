package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// AsynqClient is nil when Redis is not configured; the admin backfill then
// runs in-process and no nightly job is scheduled.
var AsynqClient *asynq.Client

// InitAsynq ใช้ Redis ตัวเดียวกับ blacklist / OTP (ต้องเรียกหลัง InitRedis)
func InitAsynq() {
	if RedisClient == nil {
		log.Println("⚠️ Redis not available, background backfill disabled")
		return
	}
	AsynqClient = asynq.NewClient(AsynqRedisOpt())
	log.Println("✅ Asynq client ready on", RedisURI)
}

// AsynqRedisOpt copies the connection settings of RedisClient so the queue,
// worker and scheduler all talk to the same instance.
func AsynqRedisOpt() asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: RedisURI}
	if RedisClient != nil {
		o := RedisClient.Options()
		opt.Addr = o.Addr
		opt.Username = o.Username
		opt.Password = o.Password
		opt.DB = o.DB
	}
	return opt
}

// CloseAsynq ปิด client ตอน shutdown
func CloseAsynq() {
	if AsynqClient == nil {
		return
	}
	if err := AsynqClient.Close(); err != nil {
		log.Println("⚠️ close asynq client:", err)
	}
}
