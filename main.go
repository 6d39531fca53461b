package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"

	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/config"
	"github.com/meinhoongagan/salon-booking/controllers"
	"github.com/meinhoongagan/salon-booking/cron"
	"github.com/meinhoongagan/salon-booking/db"
	"github.com/meinhoongagan/salon-booking/redis"
	"github.com/meinhoongagan/salon-booking/repository"
	"github.com/meinhoongagan/salon-booking/routes"
	"github.com/meinhoongagan/salon-booking/utils"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply database migrations before serving")
	seedAdmin := flag.String("seed-admin", "", "create a super admin with this email (password from SEED_ADMIN_PASSWORD) and exit")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of a password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*hashPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password: ", err)
		}
		fmt.Println(string(hash))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gdb, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if *migrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatal("Failed to run migrations: ", err)
		}
	}
	if *seedAdmin != "" {
		if _, err := db.SeedSuperAdmin(gdb, *seedAdmin, os.Getenv("SEED_ADMIN_PASSWORD")); err != nil {
			log.Fatal("Failed to seed super admin: ", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	uploader, err := utils.NewUploader(cfg.CloudName, cfg.CloudKey, cfg.CloudSecret, cfg.UploadPreset)
	if err != nil {
		log.Fatal("Failed to configure cloudinary: ", err)
	}

	appointments := repository.NewAppointmentRepository(gdb)
	catalog := repository.NewCatalogRepository(gdb)
	admins := repository.NewAdminRepository(gdb)

	loc := utils.LoadLocation(cfg.SalonTZ)
	bookings := booking.NewService(appointments, catalog, redis.NewPendingStore(rdb), booking.Options{
		Location:   loc,
		WindowDays: cfg.WindowDays,
		PendingTTL: time.Duration(cfg.PendingTTL) * time.Minute,
		Notifier:   mailer,
	})

	scheduler, err := cron.StartCronJobs(&cron.Jobs{
		Bookings:      bookings,
		Professionals: catalog,
		Appointments:  appointments,
		Mailer:        mailer,
		Location:      loc,
	}, cfg.AutoCompleteSchedule, cfg.AgendaEmailSchedule)
	if err != nil {
		log.Fatal("Failed to start cron jobs: ", err)
	}
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{AppName: "salon-booking"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Salon booking API")
	})
	routes.Setup(app, routes.Handlers{
		Booking:      controllers.NewBookingHandler(bookings),
		Catalog:      controllers.NewCatalogHandler(catalog, bookings, uploader),
		Admin:        controllers.NewAdminHandler(admins, cfg.JWTSecret),
		Appointments: controllers.NewAppointmentHandler(appointments, bookings),
		Reports:      controllers.NewReportHandler(appointments),
	}, cfg.JWTSecret)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorw("shutdown failed", "error", err)
		}
	}()

	log.Infow("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
