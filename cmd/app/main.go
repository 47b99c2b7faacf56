package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jgayfer/solidus/cmd"
	httpserver "github.com/jgayfer/solidus/internal/adapters/in/http"
	"github.com/jgayfer/solidus/internal/adapters/out/kafka"
	"github.com/jgayfer/solidus/internal/adapters/out/postgres/orderfacts"
	"github.com/jgayfer/solidus/internal/adapters/out/postgres/shipmentrepo"
	"github.com/jgayfer/solidus/internal/adapters/out/postgres/stockledger"
	"github.com/jgayfer/solidus/internal/jobs"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDB(configs)
	mustMigrate(gormDB)

	notifier, err := kafka.NewNotifier([]string{configs.KafkaHost}, configs.KafkaShippedTopic)
	if err != nil {
		log.Fatalf("Failed to create Kafka notifier: %v", err)
	}
	defer notifier.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, notifier)

	jobManager := jobs.NewJobManager(app.CreateSyncShipmentStatesCommandHandler(), slog.Default())
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:            goDotEnvVariable("REDIS_ADDR"),
		KafkaHost:            goDotEnvVariable("KAFKA_HOST"),
		KafkaShippedTopic:    goDotEnvVariable("KAFKA_SHIPPED_TOPIC"),
		RateServiceURL:       goDotEnvVariable("RATE_SERVICE_URL"),
		RequirePaymentToShip: goDotEnvVariable("REQUIRE_PAYMENT_TO_SHIP") == "true",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.InventoryUnitDTO{},
		&shipmentrepo.ShippingRateDTO{},
		&shipmentrepo.StateChangeDTO{},
		&shipmentrepo.AdjustmentDTO{},
		&stockledger.StockItemDTO{},
		&stockledger.StockMovementDTO{},
		&orderfacts.OrderDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpserver.NewServer(
		app.CreateCreateShipmentCommandHandler(),
		app.CreateReadyShipmentCommandHandler(),
		app.CreateShipShipmentCommandHandler(),
		app.CreateCancelShipmentCommandHandler(),
		app.CreateResumeShipmentCommandHandler(),
		app.CreatePendShipmentCommandHandler(),
		app.CreateFinalizeShipmentCommandHandler(),
		app.CreateDeleteShipmentCommandHandler(),
		app.CreateRefreshShippingRatesCommandHandler(),
		app.CreateSelectShippingRateCommandHandler(),
		app.CreateSelectShippingMethodCommandHandler(),
		app.CreateGetShipmentQueryHandler(),
		app.CreateGetUnshippedShipmentsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
