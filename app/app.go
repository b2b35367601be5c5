package app

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"memoflow/ai"
	"memoflow/db"
	"memoflow/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	AI     *ai.Client
	Log    *zap.SugaredLogger
	Config Config

	appSess *session.AppSessionStore
}

// Config 从环境变量读取
type Config struct {
	RedisAddr       string
	RedisPwd        string
	WebOrigin       string
	SessionTTL      time.Duration
	AnthropicAPIKey string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := loadConfig()

	logger := newLogger()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	if cfg.AnthropicAPIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY not set, AI endpoints will answer 503")
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router:  r,
		DB:      dbConn,
		RDB:     rdb,
		AI:      ai.NewClient(cfg.AnthropicAPIKey),
		Log:     logger,
		Config:  cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
	return a
}

func (a *App) Close() {
	_ = a.Log.Sync()
	_ = a.RDB.Close()
}

func newLogger() *zap.SugaredLogger {
	var zl *zap.Logger
	var err error
	if os.Getenv("APP_ENV") == "production" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	return zl.Sugar()
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttlSec := get("SESSION_TTL_SECONDS", "86400")
	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(ttlSec + "s"); err == nil {
		ttl = d
	}
	origin := strings.TrimSpace(get("WEB_ORIGIN", "http://localhost:3000"))
	return Config{
		RedisAddr:       get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:        os.Getenv("REDIS_PASSWORD"),
		WebOrigin:       origin,
		SessionTTL:      ttl,
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}
}
