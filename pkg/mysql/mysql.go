package mysql

import (
	"fmt"
	"sync"

	"github.com/leyanessantiago/activate-api/config"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

var (
	global   *gorm.DB
	globalMu sync.RWMutex
)

// DB 返回全局 gorm 实例
func DB() *gorm.DB {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// ReplaceGlobal 设置全局 gorm 实例
func ReplaceGlobal(db *gorm.DB) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = db
}

// Build 根据配置创建 gorm 实例
// - TranslateError 打开后唯一键冲突统一返回 gorm.ErrDuplicatedKey，关系边的"创建即占位"依赖它
// - 配置了 Replicas 时通过 dbresolver 读写分离，写操作与显式 Clauses(dbresolver.Write) 走主库
func Build(cfg config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormmysql.Open(cfg.DSN), GormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	if len(cfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
		for _, dsn := range cfg.Replicas {
			replicas = append(replicas, gormmysql.Open(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register dbresolver: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// GormConfig 生产与单测（sqlite）共用的 gorm 配置
func GormConfig(cfg config.MySQLConfig) *gorm.Config {
	return &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   NewGormLogger(cfg.SlowThreshold),
	}
}

// Close 关闭底层连接池
func Close() error {
	db := DB()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
