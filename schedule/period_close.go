package main

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	logger "github.com/sirupsen/logrus"

	"compcontrol/internal/handlers/business"
	dbconfig "compcontrol/pkg/config"
)

// RunPeriodClose 对所有活跃节点执行对碰奖计算
func RunPeriodClose() error {
	logger.Info("> 开始执行对碰奖结算")

	now := time.Now()
	processed, totalPayout, failed, err := business.ComputeBonusForAllActiveNodes(now)
	if err != nil {
		logger.Errorf("> 结算执行失败: %v", err)
		return err
	}

	logger.Infof("> 结算完成: 处理 %d 个节点, 总支出 %.2f", processed, totalPayout)
	if len(failed) > 0 {
		logger.Warnf("> %d 个节点结算失败: %v", len(failed), failed)
	}
	return nil
}

func main() {
	// 配置日志输出到文件
	os.MkdirAll("logs", 0755)
	file, err := os.OpenFile("logs/period_close.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		logger.SetOutput(file)
	} else {
		logger.Warn("无法打开日志文件，日志将输出到标准输出")
	}

	// 配置日志格式
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(logger.InfoLevel)
	logger.Info("> 开始初始化程序...")

	// 初始化数据库连接
	dbconfig.InitDB()
	logger.Info("> 数据库连接初始化完成")

	// 创建定时任务
	c := cron.New(cron.WithSeconds())

	// 每天 00:00:05 执行一次（周/月计数器在计算事务内按需重置）
	_, err = c.AddFunc("5 0 0 * * *", func() {
		if err := RunPeriodClose(); err != nil {
			logger.Errorf("> 对碰奖结算失败: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("> 添加定时任务失败: %v", err)
	}

	logger.Info("> 定时任务已启动，每天执行一次")

	// 启动定时任务
	c.Start()

	// 保持程序运行
	select {}
}
