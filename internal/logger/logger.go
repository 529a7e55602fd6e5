// Package logger 把客户端日志落到文件，避免污染 TUI 占用的终端。
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

const (
	defaultDirName = ".doudizhu-arena"
	maxLogSize     = 10 << 20 // 超过后轮转
)

var (
	logFile *os.File
	logPath string
)

// Init 打开日志文件并接管标准 log 输出。
// dir 为空时使用用户主目录下的默认位置。
func Init(dir string) error {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("获取用户主目录失败: %w", err)
		}
		dir = filepath.Join(home, defaultDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建日志目录失败: %w", err)
	}

	logPath = filepath.Join(dir, "client.log")
	if err := rotateIfLarge(dir); err != nil {
		return err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %w", err)
	}
	logFile = f

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Printf("日志已初始化: %s", logPath)
	return nil
}

// rotateIfLarge 文件超限时按时间戳归档，让新日志从空文件开始
func rotateIfLarge(dir string) error {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}

	backup := filepath.Join(dir, "client.log."+time.Now().Format("20060102-150405"))
	if err := os.Rename(logPath, backup); err != nil {
		return fmt.Errorf("轮转日志失败: %w", err)
	}
	return nil
}

// Close 关闭日志文件
func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// Path 返回当前日志文件路径
func Path() string {
	return logPath
}

// Recover 把 panic 连同堆栈写进日志后继续抛出，配合 defer 使用
func Recover() {
	if r := recover(); r != nil {
		log.Printf("[PANIC] %v\n%s", r, debug.Stack())
		panic(r)
	}
}
