package main

import (
	_ "attendance-tracker/docs"
	"attendance-tracker/src/config"
	"attendance-tracker/src/controllers"
	"attendance-tracker/src/database"
	"attendance-tracker/src/jobs"
	"attendance-tracker/src/routes"
	"attendance-tracker/src/seeder"
	"attendance-tracker/src/services/attendance"
	"attendance-tracker/src/services/auth"
	"attendance-tracker/src/services/calendar"
	"attendance-tracker/src/services/students"
	"attendance-tracker/src/services/subjects"
	"attendance-tracker/src/utils"
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
)

// @title        Attendance Tracker API
// @version      1.0
// @description  Student class attendance tracking against subject schedules, holidays and teacher leave.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx, database.DB); err != nil {
		log.Fatalf("Error creating indexes: %v", err)
	}
	cancel()

	// Redis เป็น optional: ไม่มีก็ทำงานได้ แต่ไม่มี blacklist / queue
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	if err := database.InitRedis(ctx, cfg.RedisURI); err != nil {
		log.Println("⚠️ Warning:", err)
	}
	cancel()
	database.InitAsynq()

	studentSvc := students.NewService(database.StudentCollection)
	subjectSvc := subjects.NewService(database.SubjectCollection)
	calendarSvc := calendar.NewService(database.CalendarCollection, database.TeacherLeaveCollection)
	attendanceSvc := attendance.NewService(
		attendance.NewMongoStore(database.AttendanceCollection),
		calendarSvc,
		studentSvc,
		attendance.WithDefaultThreshold(cfg.DefaultMinThreshold),
	)

	if cfg.SeedData {
		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
		semesterStart := utils.FormatDate(utils.MonthStart(utils.SystemClock().Today()))
		if err := seeder.SeedReferenceData(ctx, subjectSvc, calendarSvc, semesterStart); err != nil {
			log.Println("❌ Seeding failed:", err)
		}
		cancel()
	}

	var otps auth.OTPStore = auth.NewMongoOTPStore(database.OTPCollection)
	if database.RedisClient != nil {
		otps = auth.NewRedisOTPStore(database.RedisClient)
	}
	authSvc := auth.NewService(studentSvc, otps, auth.Config{
		TokenTTL:         cfg.JWTTTL,
		OTPTTL:           cfg.OTPTTL,
		DefaultThreshold: cfg.DefaultMinThreshold,
	})

	blacklist := utils.NewTokenBlacklist(database.RedisClient)
	backfill := jobs.NewBackfillHandler(studentSvc, attendanceSvc, nil)

	// สร้าง app instance
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app, routes.Handlers{
		Attendance: controllers.NewAttendanceController(attendanceSvc),
		Auth:       controllers.NewAuthController(authSvc, blacklist),
		Student:    controllers.NewStudentController(studentSvc),
		Subject:    controllers.NewSubjectController(subjectSvc),
		Calendar:   controllers.NewCalendarController(calendarSvc),
		Health:     controllers.NewHealthController(cfg.MongoDB, database.ListCollections),
		AdminJobs:  controllers.NewAdminJobsController(database.AsynqClient, backfill, nil),
		Blacklist:  blacklist,
	})

	var (
		worker    *asynq.Server
		scheduler *asynq.Scheduler
	)
	if database.AsynqClient != nil {
		worker = jobs.NewServer(database.AsynqRedisOpt())
		if err := worker.Start(jobs.NewServeMux(backfill)); err != nil {
			log.Fatalf("Error starting asynq worker: %v", err)
		}

		scheduler, err = jobs.NewScheduler(database.AsynqRedisOpt(), cfg.BackfillCron)
		if err != nil {
			log.Fatalf("Error creating scheduler: %v", err)
		}
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Error starting scheduler: %v", err)
		}
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down...")
		if scheduler != nil {
			scheduler.Shutdown()
		}
		if worker != nil {
			worker.Shutdown()
		}
		database.CloseAsynq()
		_ = app.Shutdown()
	}()

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + cfg.AppURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppURI))); err != nil {
		log.Fatal(err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Disconnect(ctx); err != nil {
		log.Println("⚠️ Warning:", err)
	}
}
