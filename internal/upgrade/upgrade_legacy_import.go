package upgrade

import (
	"context"

	"github.com/haierkeys/bonsai-keeper/internal/model"
	"github.com/haierkeys/bonsai-keeper/pkg/logger"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LegacyImportMigrate replays the rows of the old flat `bonsai` table into the ledger
// LegacyImportMigrate 将旧版 bonsai 表按 rowid 顺序导入记录库
type LegacyImportMigrate struct {
	logger *zap.Logger
}

// Version 返回版本号
func (m *LegacyImportMigrate) Version() string {
	return "0.2.0"
}

// Description 返回描述
func (m *LegacyImportMigrate) Description() string {
	return "Import rows of the legacy bonsai table in rowid order"
}

// Up 执行升级
func (m *LegacyImportMigrate) Up(db *gorm.DB, ctx context.Context) error {
	lg := m.logger
	if lg == nil {
		lg = zap.NewNop()
	}

	if !db.Migrator().HasTable(model.TableNameLegacyBonsai) {
		lg.Debug("LegacyImportMigrate: no legacy table, skipping")
		return nil
	}

	var rows []model.LegacyBonsai
	err := db.Table(model.TableNameLegacyBonsai).
		Select("rowid, treeid, name, next_fertilize, last_pruning, last_repot, last_wiring").
		Order("rowid ASC").
		Find(&rows).Error
	if err != nil {
		return err
	}

	var next int64
	for _, r := range rows {
		v := &model.BonsaiVersion{
			ID:            r.TreeID,
			Name:          r.Name,
			NextFertilize: m.parse(lg, r, "next_fertilize", r.NextFertilize),
			LastPruning:   m.parse(lg, r, "last_pruning", r.LastPruning),
			LastRepot:     m.parse(lg, r, "last_repot", r.LastRepot),
			LastWiring:    m.parse(lg, r, "last_wiring", r.LastWiring),
		}
		if err := db.Create(v).Error; err != nil {
			return err
		}
		if r.TreeID >= next {
			next = r.TreeID + 1
		}
	}

	lg.Info("LegacyImportMigrate: imported legacy rows", zap.Int(logger.FieldCount, len(rows)))
	return ensureSequence(db, next)
}

// parse keeps unreadable legacy dates as unset instead of failing the import
// parse 无法解析的旧日期按未设置处理
func (m *LegacyImportMigrate) parse(lg *zap.Logger, r model.LegacyBonsai, column, raw string) timex.Date {
	d, err := timex.ParseDate(raw)
	if err != nil {
		lg.Warn("LegacyImportMigrate: unreadable date, stored as unset",
			zap.Int64(logger.FieldBonsaiID, r.TreeID),
			zap.String(logger.FieldField, column),
			zap.String(logger.FieldDate, raw),
		)
		return timex.Unset()
	}
	return d
}
