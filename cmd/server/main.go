package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/config"
	"github.com/bigface030/fatten-up-plan/internal/handler"
	"github.com/bigface030/fatten-up-plan/internal/infrastructure/cache"
	"github.com/bigface030/fatten-up-plan/internal/infrastructure/database"
	"github.com/bigface030/fatten-up-plan/internal/infrastructure/mq"
	"github.com/bigface030/fatten-up-plan/internal/job"
	"github.com/bigface030/fatten-up-plan/pkg/idgen"

	"github.com/go-redis/redis/v8"
)

func main() {
	// 加载配置
	cfg := config.LoadConfig("config/config.yaml")

	// 初始化 ID 生成器
	idgen.Init(1)

	// 初始化 MySQL
	db := database.InitMySQL(&cfg.MySQL)

	// 加载指令目录（字典 / 标签 / 区间 / 文案）
	cat, err := catalog.Load(&cfg.Static)
	if err != nil {
		log.Fatalf("加载指令目录失败: %v", err)
	}

	// Redis 可选，仅用于频道 ID 缓存
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = cache.InitRedis(&cfg.Redis)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Kafka 可选，配置了 broker 才投递记账事件
	if len(cfg.Kafka.Brokers) > 0 {
		mq.InitKafka(&cfg.Kafka)
		defer mq.CloseKafka()

		outboxSender := job.NewOutboxSender(db, cfg)
		go outboxSender.Start(ctx)
	}

	// 设置路由
	router := handler.SetupRouter(db, redisClient, cfg, cat)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Printf("服务启动，监听端口: %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 取消上下文，停止后台任务
	cancel()

	// 关闭 HTTP 服务（等待最多5秒）
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("服务关闭异常: %v", err)
	}

	log.Println("服务已关闭")
}
