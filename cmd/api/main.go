package main

import (
	"log"

	"StockBoard/pkg/api"
	"StockBoard/pkg/config"
	"StockBoard/pkg/database"
	"StockBoard/pkg/messaging"
	"StockBoard/pkg/scheduler"
)

func main() {
	log.Println("启动API服务...")

	// 加载配置
	cfg, err := config.LoadConfig(config.GetDefaultConfigPath())
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 连接数据库并建表
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// NATS可选，没配置就不发事件
	var publisher api.EventPublisher
	if cfg.NATS.URL != "" {
		p, err := messaging.NewPublisher(cfg.NATS.URL)
		if err != nil {
			log.Fatalf("连接NATS失败: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// 定时重估可选
	if cfg.Scheduler.RevalueSpec != "" {
		sched := scheduler.NewScheduler(db)
		if err := sched.Start(cfg.Scheduler.RevalueSpec); err != nil {
			log.Fatalf("启动调度器失败: %v", err)
		}
		defer sched.Stop()
	}

	// 创建并启动服务器
	handlers := api.NewHandlers(db, publisher)
	server := api.NewServer(cfg)
	server.SetupRoutes(handlers)
	server.Start()
}
