package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"docchat/internal/config"
	"docchat/internal/model"
	mysqlClient "docchat/internal/platform/mysql"
	rabbitmqClient "docchat/internal/platform/rabbitmq"
	redisClient "docchat/internal/platform/redis"
	"docchat/internal/repository"
	"docchat/internal/worker"
)

type App struct {
	Config   *config.Config
	MySQL    *gorm.DB
	Redis    *redis.Client
	MQConn   *amqp.Connection
	QAWorker *worker.QAPersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Document{}, &model.QARecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	qaRepo := repository.NewQARecordRepository(mysqlDB)
	qaWorker := worker.NewQAPersistWorker(mqConn, qaRepo, cfg.RabbitMQ.QAPersistQueue)
	if err := qaWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start qa persist worker failed: %w", err)
	}

	return &App{
		Config:    cfg,
		MySQL:     mysqlDB,
		Redis:     redisCli,
		MQConn:    mqConn,
		QAWorker:  qaWorker,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.QAWorker != nil {
		a.QAWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
