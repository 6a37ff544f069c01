package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire版本）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	instanceRepo := mysql.NewInstanceRepository(db)
	librarianRepo := mysql.NewLibrarianRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 详情缓存(可选),缓存读写经熔断器保护
	var detailCache *redis.DetailCache
	var cacheBreaker *circuitbreaker.CircuitBreaker
	if cfg.Cache.Enabled {
		detailCache = redis.NewDetailCache(redisClient, cfg.Cache.TTL)
		cacheBreaker = newDetailCacheBreaker()
		fmt.Printf("  - 详情缓存: 开启(TTL=%s)\n", cfg.Cache.TTL)
	}

	// 事件发布(可选)
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		fmt.Printf("  - 消息队列: 开启(exchange=%s)\n", cfg.MQ.Exchange)
	}

	// 领域层
	bookService := book.NewService(bookRepo, authorRepo)
	instanceService := instance.NewService(instanceRepo)
	librarianService := librarian.NewService(librarianRepo)

	// 应用层
	getBookDetailsUseCase := appbook.NewGetBookDetailsUseCase(bookRepo, instanceRepo, detailCache, cacheBreaker)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	addBookUseCase := appbook.NewAddBookUseCase(bookService, txManager, detailCache, publisher)
	addInstanceUseCase := appinstance.NewAddInstanceUseCase(instanceService, bookRepo, detailCache)
	updateStatusUseCase := appinstance.NewUpdateStatusUseCase(instanceRepo, detailCache, publisher)
	registerUseCase := applibrarian.NewRegisterUseCase(librarianService)
	loginUseCase := applibrarian.NewLoginUseCase(librarianService, jwtManager, sessionStore)
	logoutUseCase := applibrarian.NewLogoutUseCase(sessionStore)

	// 接口层
	bookHandler := handler.NewBookHandler(getBookDetailsUseCase, listBooksUseCase, addBookUseCase)
	instanceHandler := handler.NewInstanceHandler(addInstanceUseCase, updateStatusUseCase)
	librarianHandler := handler.NewLibrarianHandler(registerUseCase, loginUseCase, logoutUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 7. 注册路由
	registerRoutes(r, bookHandler, instanceHandler, librarianHandler, authMiddleware)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   图书详情: GET http://localhost%s/api/v1/books/{id}\n", addr)
	fmt.Printf("   图书列表: GET http://localhost%s/api/v1/books\n", addr)
	fmt.Printf("   图书入藏: POST http://localhost%s/api/v1/books (需要登录)\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// newDetailCacheBreaker 创建保护详情缓存的熔断器
// 连续5次失败跳闸,30秒后半开放行3个探测请求
func newDetailCacheBreaker() *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.NewCircuitBreaker("detail-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器 %s 状态变化: %s -> %s", name, from, to)
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})
	return cb
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	bookHandler *handler.BookHandler,
	instanceHandler *handler.InstanceHandler,
	librarianHandler *handler.LibrarianHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
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
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
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
			// 公开接口,不需要登录
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBookDetail)

			// 入藏需要登录
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
}
