package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"StockBoard/pkg/config"
	"StockBoard/pkg/model"
)

// DB 数据库连接封装，按实体分发访问器
type DB struct {
	db *gorm.DB
}

// New 创建Postgres连接
func New(cfg *config.Config) (*DB, error) {
	dbCfg := cfg.Database.Postgres

	// 构建连接字符串
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.DBName, dbCfg.SSLMode,
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库实例失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	return &DB{db: gdb}, nil
}

// NewWithDialector 使用指定方言创建连接，测试时传入sqlite
func NewWithDialector(dialector gorm.Dialector) (*DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	return &DB{db: gdb}, nil
}

// AutoMigrate 建表
func (d *DB) AutoMigrate() error {
	return d.db.AutoMigrate(
		&model.Stock{},
		&model.PortfolioHolding{},
		&model.WatchlistItem{},
		&model.HistoricalPrice{},
		&model.Task{},
	)
}

// Close 关闭数据库连接
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Stock() *StockDB {
	return &StockDB{db: d.db}
}

func (d *DB) Portfolio() *PortfolioDB {
	return &PortfolioDB{db: d.db}
}

func (d *DB) Watchlist() *WatchlistDB {
	return &WatchlistDB{db: d.db}
}

func (d *DB) Price() *PriceDB {
	return &PriceDB{db: d.db}
}

func (d *DB) Task() *TaskDB {
	return &TaskDB{db: d.db}
}
