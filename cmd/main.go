package main

import (
	"context"
	"database/sql"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/auth"
	"github.com/onerilhan/go-point-api/internal/config"
	"github.com/onerilhan/go-point-api/internal/db"
	"github.com/onerilhan/go-point-api/internal/handlers"
	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/logger"
	"github.com/onerilhan/go-point-api/internal/middleware"
	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/repository"
	"github.com/onerilhan/go-point-api/internal/services"
	"github.com/onerilhan/go-point-api/internal/validator"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Str("storage", cfg.StorageDriver).
		Msg("🚀 Point API başlatıldı")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Depolama katmanı
	userPointRepo, historyRepo, database := setupStorage(cfg)
	if database != nil {
		defer database.Close()
	}

	// Metrikler
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pointObserver, err := services.NewPrometheusPointObserver("point_service", registry)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Puan metrikleri kaydedilemedi")
	}
	httpMetrics, err := middleware.NewHTTPMetrics(middleware.DefaultMetricsConfig(), registry)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ HTTP metrikleri kaydedilemedi")
	}

	// Validator, Service, Handler katmanları
	userValidator := validator.NewUserValidator(userPointRepo)
	pointValidator := validator.NewPointValidator(userPointRepo, cfg.PointMaxAmount)
	log.Info().Int64("max_amount", pointValidator.MaxAmount()).Msg("Tek işlem puan üst sınırı")
	pointService := services.NewPointService(userPointRepo, historyRepo, userValidator, pointValidator, pointObserver)

	seedUsers(pointService, cfg.SeedUsers)

	errorConfig := errors.ForEnv(cfg.AppEnv)
	pointHandler := handlers.NewPointHandler(pointService, errorConfig)

	tokens := auth.NewTokenManager(cfg.JWTSecret, 24*time.Hour)
	if tokens == nil {
		log.Warn().Msg("⚠️ JWT_SECRET boş, /point endpoint'leri kimlik doğrulamasız")
	}

	rateLimitConfig := middleware.DefaultRateLimitConfig()
	rateLimitConfig.RequestsPerMinute = cfg.RateLimitRPM
	rateLimitConfig.Burst = cfg.RateLimitBurst
	rateLimitConfig.ErrorConfig = errorConfig

	router := handlers.NewRouter(pointHandler, handlers.RouterOptions{
		ErrorConfig: errorConfig,
		Tokens:      tokens,
		RateLimiter: middleware.NewRateLimiter(ctx, rateLimitConfig),
		Metrics:     httpMetrics,
		Gatherer:    registry,
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Server'ı goroutine'de başlat
	go func() {
		log.Info().
			Str("addr", serverAddr).
			Msg("🌐 HTTP Server (Gorilla Mux) başlatıldı")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server başlatma hatası")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Aktif istekler (kilit bekleyenler dahil) tamamlanana kadar bekler
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server başarıyla kapatıldı")
	}

	log.Info().Msg("👋 Point API başarıyla kapatıldı")
}

// setupStorage STORAGE_DRIVER'a göre repository'leri kurar.
// Bellek içi depolamada *sql.DB nil döner.
func setupStorage(cfg *config.Config) (interfaces.UserPointRepositoryInterface, interfaces.PointHistoryRepositoryInterface, *sql.DB) {
	if !cfg.UsePostgres() {
		log.Info().Msg("🧠 Bellek içi depolama kullanılıyor")
		return repository.NewUserPointRepository(), repository.NewPointHistoryRepository(), nil
	}

	database, err := db.Connect(cfg.GetDSN(), db.DefaultPoolConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}
	if err := db.EnsureSchema(database); err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı şeması oluşturulamadı")
	}

	return repository.NewPgUserPointRepository(database), repository.NewPgPointHistoryRepository(database), database
}

// seedUsers SEED_USERS'taki kullanıcıları yoksa oluşturur
func seedUsers(pointService *services.PointService, seeds []config.SeedUser) {
	for _, seed := range seeds {
		point, created, err := pointService.SeedUser(seed.UserID, seed.Point)
		if err != nil {
			log.Error().Err(err).Int64("user_id", seed.UserID).Msg("Seed kullanıcı oluşturulamadı")
			continue
		}
		log.Info().
			Int64("user_id", point.ID).
			Int64("point", point.Point).
			Bool("created", created).
			Msg("🌱 Seed kullanıcı hazır")
	}
}
