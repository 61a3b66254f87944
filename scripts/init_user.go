package main

import (
	"fmt"
	"log"

	"github.com/plannerpad/internal/config"
	"github.com/plannerpad/internal/db"
)

func main() {
	cfg := config.Load()

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	// 检查是否已存在用户
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("用户已存在，无需初始化")
		return
	}

	// 创建默认演示用户
	if err := db.EnsureUser("demo", "demo123"); err != nil {
		log.Fatal("创建用户失败:", err)
	}

	fmt.Println("默认演示用户创建成功")
	fmt.Println("用户名: demo")
	fmt.Println("密码: demo123")
}
