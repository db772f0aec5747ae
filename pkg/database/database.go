package database

import (
	"encoding/json"
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbc := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.DBName,
		dbc.Charset,
		dbc.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式下默认跳过自动迁移，--migrate 强制执行
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lecture{},
		&model.Assignment{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamResult{},
		&model.ActivationCode{},
		&model.Certificate{},
		&model.ForumMessage{},
		&model.Setting{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 首次启动时写入默认平台配置
	var count int64
	db.Model(&model.Setting{}).Where("`key` = ?", model.SettingKeyConfig).Count(&count)
	if count == 0 {
		value, err := json.Marshal(model.DefaultPlatformSettings())
		if err == nil {
			db.Create(&model.Setting{Key: model.SettingKeyConfig, Value: value})
		}
	}

	return db, nil
}
