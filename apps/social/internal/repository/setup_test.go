package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/leyanessantiago/activate-api/config"
	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/mysql"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var initLoggerOnce sync.Once

func initTestLogger() {
	initLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
	})
}

// newTestDB 内存 sqlite，单连接保证所有查询落在同一个库上
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	initTestLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), mysql.GormConfig(config.DefaultMySQLConfig()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.AutoMigrate(db))
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func newUser(t *testing.T, db *gorm.DB, role int8) *model.User {
	t.Helper()
	user := &model.User{
		Uuid:              gofakeit.UUID(),
		Name:              gofakeit.FirstName(),
		Avatar:            "user1",
		Role:              role,
		VerificationLevel: model.VerificationInterestsSet,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newEvent(t *testing.T, db *gorm.DB, author string, categoryID int64, date time.Time) *model.Event {
	t.Helper()
	ev := &model.Event{
		Uuid:        gofakeit.UUID(),
		Name:        gofakeit.FirstName() + " night",
		Date:        date,
		Address:     gofakeit.City(),
		Description: gofakeit.City(),
		Image:       gofakeit.UUID() + ".jpg",
		AuthorUuid:  author,
		CategoryId:  categoryID,
	}
	require.NoError(t, db.Create(ev).Error)
	return ev
}
