package main

import (
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/vrecan/death/v3"
)

const logFilename = "scriptvm.log"

// setLog 配置日志输出：终端彩色文本，文件按大小滚动的 JSON。
func setLog(level string) {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	// logrus 的回调钩子
	rotateFileHook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFilename,
		MaxSize:    50, // 文件最大50M
		MaxBackups: 3,
		MaxAge:     28, // 存储28天
		Level:      logLevel,
		Formatter: &logrus.JSONFormatter{ // 默认为ASCII formatter，转为JSON formatter
			TimestampFormat: "2006-01-02 15:04:05", // 时间戳字符串格式
		},
	})
	if err != nil {
		logrus.Fatalf("初始化文件回调钩子失败: %v", err)
	}

	logrus.SetLevel(logLevel)
	logrus.SetOutput(colorable.NewColorableStdout())
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC822,
	})
	logrus.AddHook(rotateFileHook)
}

// handleSignals 阻塞等待程序终止信号，收到后恢复终端光标并退出。
// 交互执行会清屏重绘，中断时补一个换行避免提示符粘在残留输出上。
func handleSignals() {
	//death 管理应用程序的生命终止
	//syscall.SIGINT ctr+c触发
	//syscall.SIGTERM 当前进程被kill(即收到SIGTERM)
	d := death.NewDeath(syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	d.WaitForDeathWithFunc(func() {
		defer os.Exit(1)
		defer runtime.Goexit()
		os.Stdout.WriteString("\n")
	})
}
