//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// 工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/luocheng/library/internal/application/book"
	appinstance "github.com/luocheng/library/internal/application/instance"
	applibrarian "github.com/luocheng/library/internal/application/librarian"
	"github.com/luocheng/library/internal/domain/book"
	"github.com/luocheng/library/internal/domain/instance"
	"github.com/luocheng/library/internal/domain/librarian"
	"github.com/luocheng/library/internal/infrastructure/config"
	"github.com/luocheng/library/internal/infrastructure/persistence/mysql"
	"github.com/luocheng/library/internal/infrastructure/persistence/redis"
	"github.com/luocheng/library/internal/interface/http/handler"
	"github.com/luocheng/library/internal/interface/http/middleware"
	"github.com/luocheng/library/pkg/circuitbreaker"
	"github.com/luocheng/library/pkg/jwt"
	"github.com/luocheng/library/pkg/metrics"
	"github.com/luocheng/library/pkg/mq"
	"github.com/luocheng/library/pkg/response"
)

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,      // 图书仓储
	mysql.NewAuthorRepository,    // 作者仓储
	mysql.NewInstanceRepository,  // 副本仓储
	mysql.NewLibrarianRepository, // 馆员仓储
	mysql.NewTxManager,           // 事务管理器
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,      // 图书领域服务
	instance.NewService,  // 副本领域服务
	librarian.NewService, // 馆员领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewGetBookDetailsUseCase,   // 图书详情用例
	appbook.NewListBooksUseCase,        // 图书列表用例
	appbook.NewAddBookUseCase,          // 图书入藏用例
	appinstance.NewAddInstanceUseCase,  // 副本入库用例
	appinstance.NewUpdateStatusUseCase, // 副本状态流转用例
	applibrarian.NewRegisterUseCase,    // 馆员注册用例
	applibrarian.NewLoginUseCase,       // 馆员登录用例
	applibrarian.NewLogoutUseCase,      // 馆员登出用例
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	provideSessionStore,          // Session存储（需要从Redis创建）
	provideDetailCache,           // 详情缓存（配置开关控制）
	provideDetailCacheBreaker,    // 详情缓存熔断器
	providePublisher,             // 事件发布器（配置开关控制）
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,      // 图书处理器
	handler.NewInstanceHandler,  // 副本处理器
	handler.NewLibrarianHandler, // 馆员处理器
)

// provideJWTManager 从配置创建JWT管理器
// config.Config包含多个字段，但jwt.NewManager只需要JWT相关的配置，
// Wire无法自动知道如何从Config提取参数，所以需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideDetailCache 从配置创建详情缓存
// 缓存关闭时返回nil，详情用例按nil值降级为每次回源
func provideDetailCache(cfg *config.Config, client *goredis.Client) *redis.DetailCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	return redis.NewDetailCache(client, cfg.Cache.TTL)
}

// provideDetailCacheBreaker 创建保护详情缓存的熔断器
// 连续5次失败跳闸,30秒后半开放行3个探测请求
func provideDetailCacheBreaker(cfg *config.Config) *circuitbreaker.CircuitBreaker {
	if !cfg.Cache.Enabled {
		return nil
	}
	cb := circuitbreaker.NewCircuitBreaker("detail-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})
	return cb
}

// providePublisher 从配置创建事件发布器
// MQ关闭时返回nil，用例按nil值跳过事件发布
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册需要所有的Handler和Middleware，Wire会自动注入这些依赖
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	instanceHandler *handler.InstanceHandler,
	librarianHandler *handler.LibrarianHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 馆员模块
		librarians := v1.Group("/librarians")
		{
			librarians.POST("/register", librarianHandler.Register)
			librarians.POST("/login", librarianHandler.Login)
			librarians.POST("/logout", authMiddleware.RequireAuth(), librarianHandler.Logout)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBookDetail)
			books.POST("", authMiddleware.RequireAuth(), bookHandler.AddBook)
		}

		// 馆藏副本模块(馆员操作,需要登录)
		instances := v1.Group("/instances")
		instances.Use(authMiddleware.RequireAuth())
		{
			instances.POST("", instanceHandler.AddInstance)
			instances.PUT("/:id/status", instanceHandler.UpdateStatus)
		}
	}

	return r
}

// InitializeApp 初始化整个应用
// wire.Build 的参数是所有的 Provider，
// Wire会在编译期分析依赖关系，生成初始化代码到wire_gen.go
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 仓储层
		repositorySet,

		// 领域层
		domainSet,

		// 应用层
		applicationSet,

		// 中间件层
		middlewareSet,

		// 接口层
		handlerSet,

		// Gin引擎
		provideGinEngine,
	)

	// 返回值是占位符，实际运行时会被wire_gen.go替代
	return nil, nil
}
