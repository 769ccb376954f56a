package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"hallpoint/config"
	"hallpoint/internal/pkg/cache"
	"hallpoint/internal/pkg/database"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/middleware"
	"hallpoint/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"hallpoint/internal/api/auth"
	"hallpoint/internal/api/meal"
	"hallpoint/internal/api/mealrequest"
	"hallpoint/internal/api/review"
	"hallpoint/internal/api/router"
	"hallpoint/internal/api/upcoming"
	"hallpoint/internal/api/user"
	"hallpoint/internal/repository/mealrepo"
	"hallpoint/internal/repository/mealrequestrepo"
	"hallpoint/internal/repository/reviewrepo"
	"hallpoint/internal/repository/upcomingrepo"
	"hallpoint/internal/repository/userrepo"
	"hallpoint/internal/service/mealrequestservice"
	"hallpoint/internal/service/mealservice"
	"hallpoint/internal/service/reviewservice"
	"hallpoint/internal/service/sessionservice"
	"hallpoint/internal/service/upcomingservice"
	"hallpoint/internal/service/userservice"
)

// @title HallPoint API
// @version 1.0
// @description API de refeições do refeitório: sessão, usuários, candidatas, catálogo, avaliações e pedidos.
// @BasePath /
func main() {
	// 0. Carregar variáveis de ambiente (.env opcional)
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("❌ %v", err)
	}
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("⚡ Inicializando serviço HallPoint...", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	if cfg.AutoMigrate {
		if err := database.Migrate(db, cfg.MigrationsDir); err != nil {
			log.Fatal("Falha ao aplicar migrações.", err)
		}
		log.Info("Migrações aplicadas.", map[string]interface{}{"dir": cfg.MigrationsDir})
	}

	// B. Cache (Redis)
	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("Falha ao conectar ao Redis.", err)
	}
	defer cacheClient.Close()
	log.Info("Conexão Redis estabelecida.", nil)

	// 3. Injeção de Dependências
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	upcomingRepo := upcomingrepo.NewUpcomingMealRepository(db, cfg.DBTimeout, log)
	mealRepo := mealrepo.NewMealRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	reviewRepo := reviewrepo.NewReviewRepository(db, cfg.DBTimeout, log)
	mealRequestRepo := mealrequestrepo.NewMealRequestRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Tokens (JWT) e revogação
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	var (
		revoker     sessionservice.Revoker
		revocations middleware.RevocationChecker
	)
	if cfg.TokenRevocationEnabled {
		store := token.NewRevocationStore(cacheClient)
		revoker, revocations = store, store
	}
	log.Debug("Serviço de Tokens JWT inicializado.", map[string]interface{}{"revocation": cfg.TokenRevocationEnabled})

	// C. Serviços
	sessionSvc := sessionservice.NewService(tokenSvc, userRepo, revoker, log)
	userSvc := userservice.NewService(userRepo, log)
	upcomingSvc := upcomingservice.NewService(upcomingRepo, log)
	mealSvc := mealservice.NewService(mealRepo, log)
	reviewSvc := reviewservice.NewService(reviewRepo, mealRepo, log)
	mealRequestSvc := mealrequestservice.NewService(mealRequestRepo, log)
	log.Debug("Serviços inicializados.", nil)

	// D. Handlers
	handlers := router.Handlers{
		Auth:        auth.NewHandler(sessionSvc, log, tokenSvc.Expiry(), cfg.IsProduction()),
		User:        user.NewHandler(userSvc, log),
		Upcoming:    upcoming.NewHandler(upcomingSvc, log),
		Meal:        meal.NewHandler(mealSvc, log),
		Review:      review.NewHandler(reviewSvc, log),
		MealRequest: mealrequest.NewHandler(mealRequestSvc, log),
	}

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, router.Options{
		TokenValidator:  tokenSvc,
		Revocations:     revocations,
		Users:           userRepo,
		Cache:           cacheClient,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
		Logger:          log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor HallPoint ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
