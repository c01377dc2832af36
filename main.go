package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"shelfsense/catalog"
	"shelfsense/config"
	"shelfsense/handlers"
	"shelfsense/routes"
	"shelfsense/stream"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	config.Load()

	// Product catalog is static reference data, loaded once.
	productCatalog := catalog.Default()

	// Optional Kafka sink: enabled when bootstrap servers are configured.
	var sinks []stream.Sink
	if config.AppConfig.Kafka.BootstrapServers != "" {
		kafkaSink, err := stream.NewKafkaSink(config.AppConfig.Kafka)
		if err != nil {
			log.Fatalf("Unable to create Kafka sink: %v", err)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}

	streamManager := stream.NewManager(productCatalog, sinks...)
	defer streamManager.Stop()

	handlers.Setup(productCatalog, streamManager)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
