package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/config"
	"github.com/bigface030/fatten-up-plan/internal/infrastructure/database"
	"github.com/bigface030/fatten-up-plan/internal/render"
	"github.com/bigface030/fatten-up-plan/internal/service"
	"github.com/bigface030/fatten-up-plan/pkg/idgen"
)

// 本地记账 REPL，以管理员身份直连数据库执行指令，
// 不经过 HTTP 层，也不投递记账事件。
func main() {
	cfg := config.LoadConfig("config/config.yaml")

	idgen.Init(1)

	db := database.InitMySQL(&cfg.MySQL)

	cat, err := catalog.Load(&cfg.Static)
	if err != nil {
		log.Fatalf("加载指令目录失败: %v", err)
	}

	recordService := service.NewRecordService(db, nil, cfg, cat)
	renderer := render.NewRenderer(cat)

	username := cfg.Business.AdminUsername
	fmt.Printf("记账指令行，当前用户: %s（输入 .version 查看数据库版本，Ctrl+D 退出）\n", username)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if text == ".version" {
			var version string
			if err := db.Raw("SELECT VERSION()").Scan(&version).Error; err != nil {
				fmt.Printf("查询失败: %v\n", err)
			} else {
				fmt.Println(version)
			}
			continue
		}

		reply := recordService.Execute(context.Background(), username, service.Tokenize(text))
		fmt.Println(renderer.Render(reply))
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("读取输入失败: %v", err)
	}
}
