package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	internalApp "github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/dao"
	"github.com/haierkeys/bonsai-keeper/internal/service"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
	"github.com/haierkeys/bonsai-keeper/pkg/fileurl"
	"github.com/haierkeys/bonsai-keeper/pkg/logger"

	"go.uber.org/zap"
)

// resolveConfig changes into the run dir and finds, or creates, the config file
// resolveConfig 切换工作目录并查找配置文件，不存在时写出默认配置
func resolveConfig() (string, error) {
	if len(flags.dir) > 0 {
		// 转为绝对路径，notify 重新加载时再次调用不会叠加相对路径
		dir, err := filepath.Abs(flags.dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve the working directory: %w", err)
		}
		flags.dir = dir
		if err := os.Chdir(flags.dir); err != nil {
			return "", fmt.Errorf("failed to change the current working directory: %w", err)
		}
		bootstrapLogger.Debug("working directory changed", zap.String("dir", flags.dir))
	}

	if len(flags.config) > 0 {
		return flags.config, nil
	}

	switch {
	case fileurl.IsExist("config/config-dev.yaml"):
		return "config/config-dev.yaml", nil
	case fileurl.IsExist("config.yaml"):
		return "config.yaml", nil
	case fileurl.IsExist("config/config.yaml"):
		return "config/config.yaml", nil
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	path := "config/config.yaml"
	if err := fileurl.WriteFileAtomic(path, []byte(configDefault), 0644); err != nil {
		return "", fmt.Errorf("config file auto create error: %w", err)
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	return path, nil
}

// newApp loads config, logger and database and builds the App container
// newApp 加载配置、日志和数据库并创建 App 容器
func newApp() (*internalApp.App, error) {
	configPath, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
	if err != nil {
		return nil, code.ErrorConfigLoad.WithCause(err)
	}

	lg, err := logger.NewLogger(appConfig.GetLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}
	lg.Debug("config loaded", zap.String(logger.FieldPath, configRealpath))

	db, err := dao.NewDBEngine(appConfig.GetDatabaseConfig())
	if err != nil {
		return nil, code.ErrorStorageUnavailable.WithCause(err)
	}

	a, err := internalApp.NewApp(appConfig, lg, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	return a, nil
}

// withSession opens a session for the length of fn and closes the app afterwards
// withSession 在 fn 执行期间打开会话，结束后释放资源
func withSession(ctx context.Context, fn func(a *internalApp.App, s *service.Session) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.Logger().Warn("close app failed", zap.Error(err))
		}
		_ = a.Logger().Sync()
	}()

	s := a.NewSession()
	if err := s.Open(ctx); err != nil {
		return err
	}
	return fn(a, s)
}
