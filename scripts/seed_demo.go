// 本地开发用的演示数据脚本
//
// 注册一个管理员（第一个注册者自动成为管理员）、一个普通用户，
// 并以管理员身份创建一份示例问卷。重复执行时已存在的邮箱会被跳过。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"errors"
	"log"
	"os"
	"surveyhub_backend/internal/config"
	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/repository"
	"surveyhub_backend/internal/service"
	"surveyhub_backend/internal/util"
	"surveyhub_backend/pkg/database"
	"surveyhub_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	authService := service.NewAuthService(userRepo, &cfg)
	surveyService := service.NewSurveyService(surveyRepo, userRepo, nil)

	seed := func(username, email, password string) {
		_, _, err := authService.Register(username, email, password)
		switch {
		case err == nil:
			log.Printf("已创建用户 %s <%s>", username, email)
		case errors.Is(err, util.ErrEmailRegistered):
			log.Printf("用户 %s 已存在，跳过", email)
		default:
			log.Fatalf("创建用户 %s 失败: %v", email, err)
		}
	}

	seed("管理员", "admin@surveyhub.local", "admin123")
	seed("演示用户", "demo@surveyhub.local", "demo123")

	admin, err := userRepo.FindByEmail("admin@surveyhub.local")
	if err != nil {
		log.Fatalf("查找管理员失败: %v", err)
	}

	existing, err := surveyService.GetMySurveys(admin.ID)
	if err != nil {
		log.Fatalf("查询已有问卷失败: %v", err)
	}
	if len(existing) > 0 {
		log.Println("示例问卷已存在，跳过")
		return
	}

	surveyID, err := surveyService.CreateSurvey(admin.ID, service.CreateSurveyRequest{
		Title:       "平台使用体验调查",
		Description: "帮助我们了解你对问卷平台的使用感受",
		Questions: []service.QuestionInput{
			{Text: "你通过什么渠道了解到本平台？", Type: model.QuestionText},
			{Text: "总体使用体验如何？", Type: model.QuestionSingleChoice, Required: true, Options: []string{"非常满意", "满意", "一般", "不满意"}},
			{Text: "你常用哪些功能？", Type: model.QuestionMultipleChoice, Options: []string{"创建问卷", "回答问卷", "查看统计"}},
		},
	})
	if err != nil {
		log.Fatalf("创建示例问卷失败: %v", err)
	}

	log.Printf("示例问卷已创建: %s", surveyID)
	log.Println("完成！")
}
