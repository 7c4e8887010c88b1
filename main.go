package main

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backend/billpdf"
	"backend/cart"
	"backend/checkout"
	"backend/config"
	"backend/controllers"
	"backend/jobs"
	"backend/middleware"
	"backend/notify"
	"backend/recognize"
	"backend/routes"
	"backend/store"
	"backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	cfg := config.Load()

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", func(c *gin.Context) {
		ip := net.ParseIP(c.ClientIP())
		if ip == nil || !ip.IsLoopback() {
			c.AbortWithStatus(403)
			return
		}
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Cashier-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	ctx := context.Background()
	db, err := store.New(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	if err := db.EnsureSeed(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	}

	renderer := billpdf.NewRenderer("./uploads/bills", cfg.PublicBaseURL)
	sender := notify.NewWhatsAppSender(cfg.SMSGatewayURL, db.SMSLog())
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPUsername)
	recognizer := recognize.NewClient(cfg.RecognitionURL, cfg.RecognitionKey)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret)

	carts := cart.NewManager()
	orch := checkout.New(db, renderer, sender)
	ct := controllers.New(db, carts, orch, recognizer, tokens)

	s := gocron.NewScheduler(time.Local)
	s.Every(1).Day().At("07:30").Do(func() { jobs.LowStockSweep(db, sender) })
	s.Every(1).Day().At("21:30").Do(func() { jobs.DailySalesDigest(db, mailer, cfg.OwnerEmail) })
	s.StartAsync()

	routes.InitializeRoutes(r, ct, tokens, cfg.ScanAPIKey)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
