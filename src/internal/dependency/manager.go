package dependency

import (
	"classbook-svc/src/clients"
	"classbook-svc/src/internal/auth"
	"classbook-svc/src/internal/cache"
	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/security"
	"classbook-svc/src/internal/session"
	"classbook-svc/src/internal/teacher"
	"classbook-svc/src/internal/user"

	"github.com/gin-gonic/gin"
)

type Manager struct {
	Router            *gin.Engine
	Config            *config.Configuration
	Mongodb           *clients.MongoDB
	Redis             *clients.RedisClient
	RabbitMQ          *clients.RabbitMQ
	ActivityClient    *clients.ActivityClient
	CacheService      cache.Service
	TokenCodec        *security.TokenCodec
	UserRepository    user.Repository
	UserService       user.Service
	UserHandler       user.Handler
	TeacherRepository teacher.Repository
	TeacherService    teacher.Service
	TeacherHandler    teacher.Handler
	SessionService    session.Service
	SessionHandler    session.Handler
	AuthHandler       auth.Handler
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {
	cacheService := cache.NewCacheService(redisClient.Client)
	activityClient := clients.NewActivityClient(cfg, rabbitMQ.Channel)
	tokenCodec := security.NewTokenCodec(cfg.Security.JwtKey, cfg.Security.JwtExpirationMs)

	userRepo := user.NewUserRepository(mongodb, cfg.Database.Collections.Users)
	userService := user.NewUserService(userRepo, cfg)
	userHandler := user.NewHandler(cfg, userService, activityClient)

	teacherRepo := teacher.NewTeacherRepository(mongodb, cfg.Database.Collections.Teachers)
	teacherService := teacher.NewTeacherService(teacherRepo, cacheService, cfg)
	teacherHandler := teacher.NewHandler(cfg, teacherService)

	sessionRepo := session.NewSessionRepository(mongodb, cfg.Database.Collections.Sessions)
	sessionService := session.NewSessionService(sessionRepo, userRepo, cacheService, activityClient, cfg)
	sessionHandler := session.NewHandler(cfg, sessionService)

	authHandler := auth.NewHandler(cfg, userService, tokenCodec, activityClient)

	return &Manager{
		Router:            router,
		Config:            cfg,
		Mongodb:           mongodb,
		Redis:             redisClient,
		RabbitMQ:          rabbitMQ,
		ActivityClient:    activityClient,
		CacheService:      cacheService,
		TokenCodec:        tokenCodec,
		UserRepository:    userRepo,
		UserService:       userService,
		UserHandler:       userHandler,
		TeacherRepository: teacherRepo,
		TeacherService:    teacherService,
		TeacherHandler:    teacherHandler,
		SessionService:    sessionService,
		SessionHandler:    sessionHandler,
		AuthHandler:       authHandler,
	}
}
