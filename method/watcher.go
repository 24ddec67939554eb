package method

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// 新文件落盘后的等待时间，避开浏览器下载中的半成品
const fileSettleDelay = 1 * time.Second

// 停止哨兵文件的轮询间隔
const stopPollInterval = 1 * time.Second

// 会话管理：同一时刻最多一个处理会话（监视或手动批处理）
var (
	sessionMu      sync.Mutex
	sessionRunning bool
	sessionKind    string
)

// acquireSession 占用会话槽位，已有会话在跑时返回错误
func acquireSession(kind string) error {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if sessionRunning {
		return fmt.Errorf("已有%s会话正在运行", sessionKind)
	}
	sessionRunning = true
	sessionKind = kind
	return nil
}

// releaseSession 释放会话槽位
func releaseSession() {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	sessionRunning = false
	sessionKind = ""
}

// SessionRunning 返回当前是否有会话在运行及其类型
func SessionRunning() (bool, string) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	return sessionRunning, sessionKind
}

// RunBatch 手动批处理：扫描已有文件、补做未完成组、收尾，一次做完
func RunBatch(ctx *RunContext) error {
	if err := acquireSession("批处理"); err != nil {
		return err
	}
	defer releaseSession()

	log.Println("########## 手动批处理开始 ##########")

	if err := ctx.InitializeFolders(); err != nil {
		return err
	}
	ctx.ClearStopFlag()

	ProcessExistingFiles(ctx)
	ProcessIncompleteFiles(ctx)
	summary := FinalizeAllProcessing(ctx)

	ctx.ClearStopFlag()
	log.Printf("########## 手动批处理完成: 통합 %d, 원본보관 %d, 리포트보관 %d ##########",
		summary.Consolidated, summary.SourcesArchived, summary.ReportsArchived)
	return nil
}

// StartMonitoring 启动监视会话，阻塞运行直到停止哨兵文件出现
// 启动时先扫描已有文件和未完成组，之后靠fsnotify事件驱动
// 收到停止信号后关闭监视器，再做一次未完成组补做和收尾（每个会话恰好一次收尾）
func StartMonitoring(ctx *RunContext) error {
	if err := acquireSession("监视"); err != nil {
		return err
	}
	defer releaseSession()

	log.Println("########## 폴더 모니터링 시작 ##########")

	if err := ctx.InitializeFolders(); err != nil {
		return err
	}
	ctx.ClearStopFlag()

	// 启动时先把已经躺在目录里的文件处理掉
	ProcessExistingFiles(ctx)
	ProcessIncompleteFiles(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监视器失败: %v", err)
	}
	defer watcher.Close()

	if err := addWatchTargets(ctx, watcher); err != nil {
		return err
	}

	ticker := time.NewTicker(stopPollInterval)
	defer ticker.Stop()

	log.Printf("监视中: %s (停止方法: 创建 %s)", ctx.WatchDir, StopFlagFileName)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("监视器事件通道已关闭")
			}
			handleWatchEvent(ctx, watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("监视器错误通道已关闭")
			}
			log.Printf("监视器错误: %v", err)

		case <-ticker.C:
			if !ctx.StopRequested() {
				continue
			}
			log.Println("检测到停止哨兵文件，监视停止。")
			watcher.Close()

			// 会话收尾：清掉哨兵后补做未完成组并执行唯一一次收尾
			ctx.ClearStopFlag()
			ProcessIncompleteFiles(ctx)
			summary := FinalizeAllProcessing(ctx)
			ctx.ClearStopFlag()

			log.Printf("########## 폴더 모니터링 종료: 통합 %d, 원본보관 %d, 리포트보관 %d ##########",
				summary.Consolidated, summary.SourcesArchived, summary.ReportsArchived)
			return nil
		}
	}
}

// StopMonitoring 请求停止当前监视会话
func StopMonitoring(ctx *RunContext) error {
	running, kind := SessionRunning()
	if !running || kind != "监视" {
		return fmt.Errorf("没有正在运行的监视会话")
	}
	return ctx.RequestStop()
}

// addWatchTargets 注册监视目标：根目录及其下已有的店铺子目录
// fsnotify不递归，店铺目录需要逐个注册，之后新建的目录由事件补登
func addWatchTargets(ctx *RunContext, watcher *fsnotify.Watcher) error {
	if err := watcher.Add(ctx.WatchDir); err != nil {
		return fmt.Errorf("注册监视目录失败 %s: %v", ctx.WatchDir, err)
	}

	entries, err := os.ReadDir(ctx.WatchDir)
	if err != nil {
		return fmt.Errorf("监视目录读取失败: %v", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == ProcessingDirName || name == SourceArchiveDirName || name == ReportArchiveDirName {
			continue
		}
		dir := filepath.Join(ctx.WatchDir, name)
		if err := watcher.Add(dir); err != nil {
			log.Printf("注册店铺目录失败 %s: %v", dir, err)
			continue
		}
		log.Printf("监视店铺目录: %s", name)
	}
	return nil
}

// handleWatchEvent 处理一个文件系统事件
func handleWatchEvent(ctx *RunContext, watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&fsnotify.Create == 0 {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}

	// 新建店铺目录补登监视
	if info.IsDir() {
		name := filepath.Base(event.Name)
		if name == ProcessingDirName || name == SourceArchiveDirName || name == ReportArchiveDirName {
			return
		}
		if filepath.Dir(event.Name) != filepath.Clean(ctx.WatchDir) {
			return
		}
		if err := watcher.Add(event.Name); err != nil {
			log.Printf("注册新店铺目录失败 %s: %v", event.Name, err)
			return
		}
		log.Printf("发现新店铺目录，加入监视: %s", name)
		return
	}

	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".xlsx") || isLockFile(name) {
		return
	}

	log.Printf("检测到新文件: %s", event.Name)
	// 等下载落盘稳定后再动文件
	time.Sleep(fileSettleDelay)
	ProcessFile(ctx, event.Name)
}
