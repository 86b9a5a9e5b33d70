package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	internalApp "github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/task"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// notifier 提醒守护进程，配置变更时整体重建
type notifier struct {
	app     *internalApp.App
	manager *task.Manager
}

func startNotifier() (*notifier, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	m := task.NewManager(a)
	if err := m.RegisterTasks(); err != nil {
		_ = a.Close()
		return nil, err
	}
	m.Start()
	a.Logger().Info("notify started", zap.Time("next", m.Scheduler().Next()))
	return &notifier{app: a, manager: m}, nil
}

func (n *notifier) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := n.manager.Stop(ctx); err != nil {
		n.app.Logger().Error("stop tasks failed", zap.Error(err))
	}
	if err := n.app.Close(); err != nil {
		n.app.Logger().Error("close app failed", zap.Error(err))
	}
	_ = n.app.Logger().Sync()
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Run the reminder daemon that logs trees due for fertilization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := startNotifier()
		if err != nil {
			return err
		}
		configFile := n.app.Config().File
		var mu sync.Mutex

		w := watcher.New()

		// 将 SetMaxEvents 设置为 1，以便在每个监听周期中至多接收 1 个事件
		w.SetMaxEvents(1)

		// 只通知写入事件。
		w.FilterOps(watcher.Write)

		go func() {
			for {
				select {
				case event := <-w.Event:
					mu.Lock()
					n.app.Logger().Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))

					// 重新初始化 notifier，失败时保留当前配置继续运行
					next, err := startNotifier()
					if err != nil {
						n.app.Logger().Error("notify restart err, keeping the running config", zap.Error(err))
					} else {
						n.stop()
						n = next
					}
					mu.Unlock()

				case err := <-w.Error:
					bootstrapLogger.Error("config watcher error", zap.Error(err))
				case <-w.Closed:
					return
				}
			}
		}()

		// 监听配置文件
		if err := w.Add(configFile); err != nil {
			n.app.Logger().Error("config watcher file error", zap.Error(err))
		}

		go func() {
			if err := w.Start(time.Second * 5); err != nil {
				n.app.Logger().Error("config watcher start error", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		w.Close()
		mu.Lock()
		defer mu.Unlock()
		n.app.Logger().Info("Received shutdown signal, stopping notify...")
		n.stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
