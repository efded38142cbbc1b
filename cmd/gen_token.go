package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/leyanessantiago/activate-api/config"
	"github.com/leyanessantiago/activate-api/pkg/util"
)

// 本地调试用：为指定用户签发访问令牌
// go run ./cmd -user <uuid> [-config config.yaml]
func main() {
	userUUID := flag.String("user", "", "用户 uuid")
	configPath := flag.String("config", "", "配置文件路径（与服务使用同一份，保证密钥一致）")
	flag.Parse()

	if *userUUID == "" {
		fmt.Fprintln(os.Stderr, "缺少 -user 参数")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	util.InitJWT(cfg.JWT)

	token, err := util.GenerateToken(*userUUID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user:  %s\n", *userUUID)
	fmt.Printf("token: %s\n", token)
	fmt.Printf("\ncurl -H 'Authorization: Bearer %s' http://localhost%s/api/v1/me/stats\n", token, cfg.Server.Addr)
}
