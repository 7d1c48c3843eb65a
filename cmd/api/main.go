package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"rasoipos/internal/auth"
	"rasoipos/internal/catalog"
	"rasoipos/internal/db"
	"rasoipos/internal/middleware"
	"rasoipos/internal/order"
	"rasoipos/internal/pos"
	"rasoipos/internal/receipts"
	"rasoipos/internal/settlement"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"TAX_RATE",
		"CURRENCY_SYMBOL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	taxRate, err := strconv.ParseFloat(os.Getenv("TAX_RATE"), 64)
	if err != nil || taxRate < 0 {
		log.Fatalf("❌ Invalid TAX_RATE: %s", os.Getenv("TAX_RATE"))
	}
	currency := os.Getenv("CURRENCY_SYMBOL")

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── RECEIPT ARCHIVE (OPTIONAL) ─────────────────────────
	var archive settlement.Archiver
	if os.Getenv("ARCHIVE_ENDPOINT") != "" {
		client, err := receipts.NewArchiveClient(context.Background())
		if err != nil {
			log.Fatal("❌ Receipt archive init failed:", err)
		}
		archive = client
	} else {
		log.Println("Receipt archive not configured, skipping")
	}

	// ───────────────────────── AUTH ─────────────────────────
	staffRepo := auth.NewPostgresStaffRepository(pgDB)
	authService := auth.NewService(staffRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	catalogRepo := catalog.NewPostgresRepository(pgDB)
	orderRepo := order.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	catalogService := catalog.NewService(catalogRepo)

	posManager := pos.NewManager(
		catalogService,
		orderRepo,
		archive,
		orderRepo,
		taxRate,
	)

	// ───────────────────────── CATALOG ROUTES ─────────────────────────
	startupSnapshot, err := catalogService.LoadSnapshot(context.Background())
	if err != nil {
		log.Fatal("❌ Catalog load failed:", err)
	}
	catalogHandler := catalog.NewHandler(startupSnapshot)

	catalogGroup := r.Group("/catalog")
	catalogGroup.Use(middleware.AuthMiddleware())
	{
		catalogGroup.GET("", catalogHandler.Get)
	}

	// ───────────────────────── POS ROUTES ─────────────────────────
	posHandler := pos.NewHandler(posManager)

	posGroup := r.Group("/pos")
	posGroup.Use(middleware.AuthMiddleware())
	posHandler.RegisterRoutes(posGroup)

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/staff", authHandler.Register)
	}

	// ───────────────────────── CONFIG (terminal bootstrap) ─────────────────────────
	r.GET("/config", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"tax_rate":        taxRate,
			"currency_symbol": currency,
		})
	})

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 POS API running at http://localhost:8000")
	r.Run(":8000")
}
