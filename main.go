package main

import (
	"candideit/config"
	"candideit/controller"
	"candideit/docs"
	"candideit/events"
	"candideit/filestorage"
	"candideit/logging"
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

// @title           Candideit API
// @version         1.0
// @description     Elections with candidates that voters can compare side by side.

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth
func main() {
	t := time.Now()

	cfg := config.Env()
	logging.BootstrapLogger(cfg.LogLevel)
	db, err := config.InitDB(cfg)
	if err != nil {
		logging.Log.Fatalf("Failed to initialize database: %v", err)
	}
	storage, err := filestorage.New(context.Background(), cfg)
	if err != nil {
		logging.Log.Fatalf("Failed to initialize media storage: %v", err)
	}
	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		logging.Log.Fatalf("Failed to initialize event publisher: %v", err)
	}
	defer publisher.Close()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	err = r.SetTrustedProxies(nil)
	if err != nil {
		fmt.Println("Failed to set trusted proxies:", err)
		return
	}
	addLogger(r)
	addMetrics(r)
	addDocs(r)
	setCors(r)
	if cfg.MediaBackend == config.MediaBackendLocal {
		r.Static(cfg.MediaURL, cfg.MediaRoot)
	}
	controller.SetRoutes(r, db, storage, publisher)
	logging.Log.Infof("Server started in %s", time.Since(t))
	err = r.Run(fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		logging.Log.Errorf("Failed to start server: %v", err)
	}
}

func addLogger(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/metrics"},
	}))
}

func addMetrics(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		// route templates keep usernames and slugs out of the label set
		if path := c.FullPath(); path != "" {
			return path
		}
		return "unmatched"
	}
	p.MetricsPath = "/metrics"
	p.Use(r)
}

func addDocs(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func setCors(r *gin.Engine) {
	corsConfigGetOptions := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	corsConfigOtherMethods := cors.Config{
		AllowOrigins: []string{
			"http://localhost",
			"http://localhost:3000",
			"http://localhost:8000",
		},
		AllowMethods:     []string{"POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	getOptions := cors.New(corsConfigGetOptions)
	otherMethods := cors.New(corsConfigOtherMethods)

	r.Use(func(c *gin.Context) {
		method := c.Request.Method
		if method == "OPTIONS" {
			method = c.GetHeader("Access-Control-Request-Method")
		}
		if method == "GET" || method == "OPTIONS" {
			getOptions(c)
		} else {
			otherMethods(c)
		}
		if c.Request.Method == "OPTIONS" && !c.IsAborted() {
			c.AbortWithStatus(204)
		}
	})
}
