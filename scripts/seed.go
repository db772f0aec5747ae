// 初始化脚本：创建管理员账号与每个年级的示例课程
//
// 用法: go run scripts/seed.go
//
// 管理员邮箱/密码通过环境变量 SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD 覆盖。

package main

import (
	"log"
	"os"

	"english_edu_backend/internal/config"
	"english_edu_backend/internal/model"
	"english_edu_backend/pkg/database"
	"english_edu_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg.ForceMigrate = true

	logger.InitLogger(cfg)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var count int64
	db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("密码哈希失败: %v", err)
		}
		admin := model.User{
			FullName: "Platform Admin",
			Email:    email,
			Password: string(hash),
			Role:     model.Admin,
			Grade:    model.GradeThirdSec,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("创建管理员失败: %v", err)
		}
		log.Printf("管理员已创建: %s", email)
	} else {
		log.Printf("管理员已存在: %s", email)
	}

	for _, grade := range model.AllGrades() {
		var existing int64
		db.Model(&model.Course{}).Where("grade = ?", grade).Count(&existing)
		if existing > 0 {
			continue
		}
		course := model.Course{
			Title:       "Welcome to English (" + string(grade) + ")",
			Description: "A free starter course introducing the platform.",
			Grade:       grade,
			IsPaid:      false,
		}
		if err := db.Create(&course).Error; err != nil {
			log.Fatalf("创建示例课程失败: %v", err)
		}
		log.Printf("示例课程已创建: %s", course.Title)
	}

	log.Println("初始化完成")
}
