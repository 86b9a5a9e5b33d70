// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/bonsai-keeper/internal/dao"
	"github.com/haierkeys/bonsai-keeper/internal/service"
	"github.com/haierkeys/bonsai-keeper/pkg/fileurl"
	"github.com/haierkeys/bonsai-keeper/pkg/logger"
	"github.com/haierkeys/bonsai-keeper/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Notes    NotesConfig    `yaml:"notes"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Notify   NotifyConfig   `yaml:"notify"`
	App      AppSettings    `yaml:"app"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，为空时输出到 stderr
	File string `yaml:"file"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/bonsai.sqlite3"`
	// RunMode 运行模式，debug 时输出 SQL
	RunMode string `yaml:"run-mode" default:"release"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"1"`
	// MaxOpenConns 最大打开连接数，SQLite 单写者
	MaxOpenConns int `yaml:"max-open-conns" default:"1"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时）
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
}

// NotesConfig 笔记配置
type NotesConfig struct {
	// Dir 笔记目录，为空时与数据库文件同目录
	Dir string `yaml:"dir"`
}

// ScheduleConfig 养护日期规则
type ScheduleConfig struct {
	// FertilizeIntervalMonths 施肥间隔月数
	FertilizeIntervalMonths int `yaml:"fertilize-interval-months" default:"2"`
	// SeasonStartMonth 生长季开始月份
	SeasonStartMonth int `yaml:"season-start-month" default:"3"`
	// SeasonEndMonth 生长季结束月份
	SeasonEndMonth int `yaml:"season-end-month" default:"9"`
	// RepotCooldownMonths 换盆后禁肥月数
	RepotCooldownMonths int `yaml:"repot-cooldown-months" default:"1"`
	// NewTreeInSeasonDays 生长季内新购盆景首次施肥天数
	NewTreeInSeasonDays int `yaml:"new-tree-in-season-days" default:"7"`
	// NewTreeOffSeasonMonths 生长季外新购盆景首次施肥月数
	NewTreeOffSeasonMonths int `yaml:"new-tree-off-season-months" default:"1"`
}

// NotifyConfig 提醒任务配置
type NotifyConfig struct {
	// Cron 检查时间，五段 cron 表达式
	Cron string `yaml:"cron" default:"0 8 * * *"`
	// StartupRun 启动时立即检查一次
	StartupRun bool `yaml:"startup-run"`
}

// AppSettings 应用设置
type AppSettings struct {
	// Lang 消息语言：en、zh_cn
	Lang string `yaml:"lang" default:"en"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	if err := c.Validate(); err != nil {
		return nil, realpath, err
	}

	return c, realpath, nil
}

// Validate rejects schedule rules that cannot describe a calendar
// Validate 校验日期规则
func (c *AppConfig) Validate() error {
	s := c.Schedule
	if s.SeasonStartMonth < 1 || s.SeasonStartMonth > 12 || s.SeasonEndMonth < 1 || s.SeasonEndMonth > 12 {
		return errors.Errorf("schedule: season months must be between 1 and 12, got %d..%d", s.SeasonStartMonth, s.SeasonEndMonth)
	}
	if s.SeasonStartMonth > s.SeasonEndMonth {
		return errors.Errorf("schedule: season-start-month %d is after season-end-month %d", s.SeasonStartMonth, s.SeasonEndMonth)
	}
	if s.FertilizeIntervalMonths < 1 {
		return errors.New("schedule: fertilize-interval-months must be positive")
	}
	if s.RepotCooldownMonths < 0 || s.NewTreeInSeasonDays < 0 || s.NewTreeOffSeasonMonths < 0 {
		return errors.New("schedule: cooldown and new tree offsets must not be negative")
	}
	return nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := fileurl.WriteFileAtomic(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// NotesDir 笔记目录，未配置时使用数据库所在目录
func (c *AppConfig) NotesDir() string {
	if c.Notes.Dir != "" {
		return c.Notes.Dir
	}
	return filepath.Dir(c.Database.Path)
}

// GetLoggerConfig 获取日志配置
func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Production: c.Log.Production,
	}
}

// GetDatabaseConfig 转换为 dao.DatabaseConfig
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	cfg := dao.DatabaseConfig{
		Path:         c.Database.Path,
		RunMode:      c.Database.RunMode,
		MaxIdleConns: c.Database.MaxIdleConns,
		MaxOpenConns: c.Database.MaxOpenConns,
	}
	if d, err := util.ParseDuration(c.Database.ConnMaxLifetime); err == nil {
		cfg.ConnMaxLifetime = d
	} else {
		cfg.ConnMaxLifetime = 30 * time.Minute
	}
	return cfg
}

// GetServiceConfig 提取 Service 层需要的配置
func (c *AppConfig) GetServiceConfig() service.ServiceConfig {
	return service.ServiceConfig{
		Schedule: service.ScheduleConfig{
			FertilizeIntervalMonths: c.Schedule.FertilizeIntervalMonths,
			SeasonStartMonth:        c.Schedule.SeasonStartMonth,
			SeasonEndMonth:          c.Schedule.SeasonEndMonth,
			RepotCooldownMonths:     c.Schedule.RepotCooldownMonths,
			NewTreeInSeasonDays:     c.Schedule.NewTreeInSeasonDays,
			NewTreeOffSeasonMonths:  c.Schedule.NewTreeOffSeasonMonths,
		},
		Notes: service.NotesConfig{
			Dir: c.NotesDir(),
		},
	}
}
