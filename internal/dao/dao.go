// Package dao 实现数据访问层
package dao

import (
	"context"
	"os"
	"time"

	"github.com/haierkeys/bonsai-keeper/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig is what the engine needs to open the ledger database
// DatabaseConfig 打开记录数据库所需的配置
type DatabaseConfig struct {
	// Path SQLite 数据库文件路径
	Path string
	// RunMode debug 时输出 SQL 日志
	RunMode string
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int
	// ConnMaxLifetime 连接最大生命周期
	ConnMaxLifetime time.Duration
}

// Dao wraps the database handle shared by the repositories
// Dao 封装各仓储共享的数据库连接
type Dao struct {
	Db     *gorm.DB
	logger *zap.Logger
}

// New 创建 Dao 实例
func New(db *gorm.DB, lg *zap.Logger) *Dao {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Dao{Db: db, logger: lg}
}

// DB returns a session bound to ctx
// DB 返回绑定上下文的会话
func (d *Dao) DB(ctx context.Context) *gorm.DB {
	return d.Db.WithContext(ctx)
}

// Logger 获取日志对象
func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// Transaction runs fn in one transaction, committed on success and rolled back otherwise
// Transaction 在一个事务中执行 fn，成功提交，失败回滚
func (d *Dao) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB(ctx).Transaction(fn)
}

// Close 关闭底层连接
func (d *Dao) Close() error {
	sqlDB, err := d.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewDBEngine opens (and creates when missing) the SQLite ledger database
// NewDBEngine 打开 SQLite 记录数据库，不存在时创建
func NewDBEngine(c DatabaseConfig) (*gorm.DB, error) {
	if c.Path == "" {
		return nil, errors.New("database path is empty")
	}
	if !fileurl.IsExist(c.Path) {
		if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "create database directory failed")
		}
	}

	logMode := logger.Silent
	if c.RunMode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(c.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true, // 使用单数表名
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s failed", c.Path)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB failed")
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	if c.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, errors.Wrapf(err, "ping database %s failed", c.Path)
	}

	return db, nil
}
