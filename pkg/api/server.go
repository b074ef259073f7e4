package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"StockBoard/pkg/config"
)

// Server API服务器
type Server struct {
	router *gin.Engine
	srv    *http.Server
}

// NewServer 创建新的API服务器
func NewServer(cfg *config.Config) *Server {
	router := gin.New()

	// 设置中间件
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// 跨域全放开，前端单独部署
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	srv := &http.Server{
		Addr:         ":" + cfg.API.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.API.ReadTimeout),
		WriteTimeout: time.Duration(cfg.API.WriteTimeout),
	}

	return &Server{
		router: router,
		srv:    srv,
	}
}

// SetupRoutes 设置路由
func (s *Server) SetupRoutes(handlers *Handlers) {
	// 健康检查
	s.router.GET("/health", handlers.HealthCheck)
	s.router.GET("/ready", handlers.ReadinessCheck)

	// API v1 路由组
	v1 := s.router.Group("/api/v1")
	{
		// 股票接口
		v1.POST("/stocks", handlers.CreateStock)
		v1.PATCH("/stocks/:id", handlers.UpdateStock)
		v1.GET("/stocks/search", handlers.SearchStocks)
		v1.GET("/stocks/symbol/:symbol", handlers.GetStockBySymbol)

		// 持仓接口
		v1.POST("/portfolio/holdings", handlers.AddPortfolioHolding)
		v1.PATCH("/portfolio/holdings/:id", handlers.UpdatePortfolioHolding)
		v1.DELETE("/portfolio/holdings/:id", handlers.DeletePortfolioHolding)
		v1.GET("/portfolio", handlers.GetPortfolio)
		v1.GET("/portfolio/summary", handlers.GetPortfolioSummary)

		// 自选股接口
		v1.POST("/watchlist", handlers.AddWatchlistItem)
		v1.GET("/watchlist", handlers.GetWatchlist)
		v1.PATCH("/watchlist/:id", handlers.UpdateWatchlistItem)
		v1.DELETE("/watchlist/:id", handlers.DeleteWatchlistItem)

		// 历史价格接口
		v1.POST("/prices", handlers.AddHistoricalPrice)
		v1.GET("/prices/:symbol", handlers.GetHistoricalPrices)

		// 任务接口
		v1.POST("/tasks", handlers.CreateTask)
		v1.GET("/tasks", handlers.GetTasks)
		v1.GET("/tasks/:id", handlers.GetTask)
		v1.PATCH("/tasks/:id", handlers.UpdateTask)
		v1.DELETE("/tasks/:id", handlers.DeleteTask)
	}
}

// Router 返回底层路由，测试用
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start 启动服务器
func (s *Server) Start() {
	// 在goroutine中启动服务器
	go func() {
		log.Printf("API服务器启动在 %s\n", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务器失败: %v\n", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 设置超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v\n", err)
	}

	log.Println("服务器已关闭")
}
