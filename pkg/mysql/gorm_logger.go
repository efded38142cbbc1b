package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leyanessantiago/activate-api/pkg/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger 把 gorm 日志桥接到 zap：只打印慢查询和真实错误
type GormLogger struct {
	SlowThreshold time.Duration
	level         gormlogger.LogLevel
}

// NewGormLogger 创建 gorm 日志桥接器
func NewGormLogger(slowThreshold time.Duration) *GormLogger {
	return &GormLogger{SlowThreshold: slowThreshold, level: gormlogger.Warn}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		logger.Debug(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		logger.Warn(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		logger.Error(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace 记录单条 SQL
// 查无记录与唯一键冲突属于业务分支，不按错误打印
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey):
		sql, rows := fc()
		logger.Error(ctx, "SQL 执行失败",
			logger.ErrorField("error", err),
			logger.Duration("elapsed", elapsed),
			logger.Int64("rows", rows),
			logger.String("sql", sql),
		)
	case l.SlowThreshold > 0 && elapsed >= l.SlowThreshold:
		sql, rows := fc()
		logger.Warn(ctx, "慢 SQL",
			logger.Duration("elapsed", elapsed),
			logger.Int64("rows", rows),
			logger.String("sql", sql),
		)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Debug(ctx, "SQL",
			logger.Duration("elapsed", elapsed),
			logger.Int64("rows", rows),
			logger.String("sql", sql),
		)
	}
}
