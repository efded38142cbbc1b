package model

import "gorm.io/gorm"

// Models 需要建表的全部模型
func Models() []any {
	return []any{
		&User{},
		&Relationship{},
		&Follower{},
		&Category{},
		&UserInterest{},
		&Event{},
		&EventFollower{},
		&Activity{},
	}
}

// AutoMigrate 按模型建表/补齐索引（生产环境建议关闭，走 DDL 评审）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
