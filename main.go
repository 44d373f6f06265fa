package main

import (
	"context"
	"log"

	"github.com/yamamaalobaid/damascus-tour-guide/config"
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/handler"
	"github.com/yamamaalobaid/damascus-tour-guide/paygate"
	"github.com/yamamaalobaid/damascus-tour-guide/queue"
	"github.com/yamamaalobaid/damascus-tour-guide/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CLIENT_URL", "http://localhost:3000"),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Paygate-Signature",
	}))

	database.ConnectDB()

	rdb := queue.NewRedisClient()
	retry := queue.NewRetryQueue(rdb)
	handler.Init(paygate.NewHTTPClient(), retry, rdb)

	consumer, err := queue.StartConsumer(context.Background(), retry, handler.PaymentRetryHandler())
	if err != nil {
		log.Fatalf("failed to start webhook retry consumer: %v", err)
	}
	defer func() {
		if err := consumer.Shutdown(); err != nil {
			log.Printf("retry consumer shutdown: %v", err)
		}
	}()

	cleanup := handler.StartNotificationCleanup()
	defer cleanup.Stop()

	router.SetupRoutes(app)

	port := config.ConfigOr("PORT", "8080")
	log.Fatal(app.Listen(":" + port))
}
