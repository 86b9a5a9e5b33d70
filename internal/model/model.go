package model

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the table behind key
// AutoMigrate 根据 key 创建或更新对应的数据表
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "BonsaiVersion":
		return db.AutoMigrate(BonsaiVersion{})

	case "IDSequence":
		return db.AutoMigrate(IDSequence{})
	}
	return nil
}

// AutoMigrateAll migrates every ledger table
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"BonsaiVersion", "IDSequence"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
