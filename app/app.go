package app

import (
	"context"
	"time"

	"sipinjam/db"
	"sipinjam/notify"
	"sipinjam/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Aliases so handlers read the teacher way.
type Ctx = gin.Context
type H = gin.H

// App aggregates every runtime dependency.
type App struct {
	Router   *gin.Engine
	DB       *gorm.DB
	RDB      *redis.Client
	Log      *zap.SugaredLogger
	Config   Config
	Repo     *db.Repo
	Notifier *notify.Notifier

	appSess *session.AppSessionStore
}

func (a *App) Sessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := LoadConfig()
	lg := NewLogger()

	dbConn, err := db.ConnectDB()
	if err != nil {
		lg.Fatalw("database", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		lg.Fatalw("redis", "error", err)
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router:   r,
		DB:       dbConn,
		RDB:      rdb,
		Log:      lg,
		Config:   cfg,
		Repo:     db.NewRepo(dbConn),
		Notifier: notify.New(rdb, lg),
		appSess:  session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() {
	_ = a.RDB.Close()
	_ = a.Log.Sync()
}
