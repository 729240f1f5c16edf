package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-sortgame/catalog"
	"go-sortgame/config"
	"go-sortgame/controller"
	"go-sortgame/game"
	"go-sortgame/logger"
	"go-sortgame/middleware"
	"go-sortgame/repository"
	"go-sortgame/router"
	"go-sortgame/service"
	"go-sortgame/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	cat := catalog.Default()
	if cfg.Game.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.Game.CatalogPath); err != nil {
			zlog.Fatal("load catalog", zap.String("path", cfg.Game.CatalogPath), zap.Error(err))
		}
	}
	defaultDifficulty, err := game.ParseDifficulty(cfg.Game.DefaultDifficulty)
	if err != nil {
		zlog.Fatal("default difficulty", zap.Error(err))
	}

	ctx := context.Background()
	var store repository.SessionStore
	if cfg.Redis.Addr != "" {
		rdb, err := repository.InitRedis(ctx, cfg.Redis)
		if err != nil {
			zlog.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		zlog.Info("redis connected", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
		store = repository.NewRedisStore(rdb, cfg.Session.TTL, cfg.Session.LockTimeout)
	} else {
		mem := repository.NewMemoryStore(cfg.Session.TTL)
		go repository.ScheduleSweep(ctx, mem, time.Minute, zlog)
		zlog.Info("using in-memory session store")
		store = mem
	}

	svc := service.NewGameService(store, cat, zlog, service.Options{
		Secret:            []byte(cfg.Auth.Secret),
		TokenTTL:          cfg.Auth.TokenTTL,
		DefaultDifficulty: defaultDifficulty,
	})

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zlog))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.InitRouter(r, controller.NewGameController(svc), ws.NewHub(svc, zlog), svc)

	zlog.Info("listening", zap.String("addr", cfg.Server.Addr), zap.Int("categories", cat.Len()))
	if err := r.Run(cfg.Server.Addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
