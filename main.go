package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	apimod "github.com/jngonzales/E-Commerce/modules/api"
	authmod "github.com/jngonzales/E-Commerce/modules/auth"
	cachemod "github.com/jngonzales/E-Commerce/modules/cache"
	cartmod "github.com/jngonzales/E-Commerce/modules/cart"
	catalogmod "github.com/jngonzales/E-Commerce/modules/catalog"
	ordermod "github.com/jngonzales/E-Commerce/modules/order"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	httpPort := getEnvInt("HTTP_PORT", 3000)
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	cachePrefix := getEnv("CACHE_PREFIX", "store:")
	authDBPath := getEnv("AUTH_DB_PATH", "./auth.db")
	catalogDBPath := getEnv("CATALOG_DB_PATH", "./catalog.db")
	cartDBPath := getEnv("CART_DB_PATH", "./cart.db")
	orderDBPath := getEnv("ORDER_DB_PATH", "./orders.db")

	log.Println("=== Storefront ===")
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Redis: %s", redisAddr)
	log.Printf("Cache TTL: %s", cacheTTL)

	// Create modules
	cacheModule := cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	authModule := authmod.NewModule(authDBPath)
	catalogModule := catalogmod.NewModule(catalogDBPath)
	cartModule := cartmod.NewModule(cartDBPath)
	orderModule := ordermod.NewModule(orderDBPath)
	apiModule := apimod.NewModule(apimod.Config{Port: strconv.Itoa(httpPort)})

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Registration order follows the dependency graph
	app.Register(cacheModule)
	app.Register(authModule)
	app.Register(catalogModule)
	app.Register(cartModule)
	app.Register(orderModule)
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// The cache is wired after start; catalog reads work uncached until
	// this point.
	catalogModule.SetCache(cacheModule.GetCache())

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
