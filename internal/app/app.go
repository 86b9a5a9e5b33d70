// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"fmt"

	"github.com/haierkeys/bonsai-keeper/internal/dao"
	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/internal/service"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
	"github.com/haierkeys/bonsai-keeper/pkg/validator"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 参数验证
	Validator *validator.Validator

	// Repository 层
	BonsaiRepo domain.BonsaiRepository
	NoteRepo   domain.NoteRepository

	// Service 层
	Schedule    service.Schedule
	NoteService service.NoteService
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	if err := code.SetGlobalDefaultLang(cfg.App.Lang); err != nil {
		logger.Warn("app.lang", zap.String("lang", cfg.App.Lang), zap.Error(err))
	}

	v, err := validator.New(cfg.App.Lang)
	if err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		Validator: v,
	}

	// 初始化 DAO
	a.Dao = dao.New(db, logger)

	// 初始化 Repository 层
	a.BonsaiRepo = dao.NewBonsaiRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(logger)

	// 初始化 Service 层（依赖注入）
	svcConfig := cfg.GetServiceConfig()
	a.Schedule = service.NewSchedule(svcConfig.Schedule)
	a.NoteService = service.NewNoteService(a.NoteRepo, svcConfig.Notes, logger)

	logger.Debug("App container initialized successfully",
		zap.String("database", cfg.Database.Path),
		zap.String("notes", svcConfig.Notes.Dir))

	return a, nil
}

// NewSession opens a session over the ledger: tables are created and seeded on first use
// NewSession 打开一个会话，首次使用时创建并初始化记录库
func (a *App) NewSession(opts ...service.SessionOption) *service.Session {
	opts = append([]service.SessionOption{service.WithValidator(a.Validator)}, opts...)
	return service.NewSession(a.BonsaiRepo, a.NoteService, a.Schedule, a.logger, opts...)
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Debug("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}
