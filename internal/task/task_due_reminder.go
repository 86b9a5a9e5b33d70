package task

import (
	"context"
	"strings"

	"github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/internal/service"
	"github.com/haierkeys/bonsai-keeper/pkg/logger"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"

	"go.uber.org/zap"
)

// DueReminderTask logs every tree whose fertilization date has been reached
// DueReminderTask 记录所有已到施肥日期的盆景
type DueReminderTask struct {
	app     *app.App
	spec    string
	startup bool
	today   func() timex.Date
}

func init() {
	Register(func(a *app.App) (Task, error) {
		return NewDueReminderTask(a), nil
	})
}

// NewDueReminderTask 创建施肥提醒任务
func NewDueReminderTask(a *app.App) *DueReminderTask {
	cfg := a.Config().Notify
	return &DueReminderTask{
		app:     a,
		spec:    strings.TrimSpace(cfg.Cron),
		startup: cfg.StartupRun,
		today:   timex.Today,
	}
}

// Name 返回任务名称
func (t *DueReminderTask) Name() string {
	return "DueReminder"
}

// Spec 返回 cron 表达式
func (t *DueReminderTask) Spec() string {
	return t.spec
}

// IsStartupRun 是否立即执行一次
func (t *DueReminderTask) IsStartupRun() bool {
	return t.startup
}

// Check loads a fresh session and returns the trees due today
// Check 加载最新记录并返回今天需要施肥的盆景
func (t *DueReminderTask) Check(ctx context.Context) ([]*domain.Bonsai, error) {
	sess := t.app.NewSession(service.WithClock(t.today))
	if err := sess.Open(ctx); err != nil {
		return nil, err
	}
	return sess.Due(), nil
}

// Run 执行提醒任务
func (t *DueReminderTask) Run(ctx context.Context) error {
	lg := t.app.Logger()

	due, err := t.Check(ctx)
	if err != nil {
		return err
	}

	if len(due) == 0 {
		lg.Info("task log",
			zap.String("task", t.Name()),
			zap.String("msg", "nothing to fertilize"))
		return nil
	}

	for _, b := range due {
		lg.Warn("bonsai needs fertilizer",
			zap.String("task", t.Name()),
			zap.Int64(logger.FieldBonsaiID, b.ID),
			zap.String(logger.FieldName, b.Name),
			zap.Stringer(logger.FieldDate, b.NextFertilize))
	}
	lg.Info("task log",
		zap.String("task", t.Name()),
		zap.Int(logger.FieldCount, len(due)))
	return nil
}
