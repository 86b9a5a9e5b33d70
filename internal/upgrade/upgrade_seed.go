package upgrade

import (
	"context"
	"database/sql"

	"github.com/haierkeys/bonsai-keeper/internal/model"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"

	"gorm.io/gorm"
)

// SequenceName is the id_sequence row that hands out tree ids
const SequenceName = "bonsai"

// SeedRow is one tree of the initial collection
type SeedRow struct {
	ID            int64
	Name          string
	NextFertilize string
	LastPruning   string
	LastRepot     string
	LastWiring    string
}

// SeedRows is the collection a fresh ledger starts with
// SeedRows 新建记录库时写入的初始盆景
var SeedRows = []SeedRow{
	{0, "Ficus", "22.03.2023", "29.12.2022", timex.UnsetText, "27.11.2022"},
	{1, "Fukientea", "23.03.2023", "04.02.2023", timex.UnsetText, timex.UnsetText},
	{2, "Chinese Elm", "17.03.2023", timex.UnsetText, "24.09.2022", timex.UnsetText},
	{3, "Chinese Pivet", "17.03.2023", "28.01.2023", timex.UnsetText, timex.UnsetText},
	{4, "Ficus Benj. Starl.", "10.03.2023", timex.UnsetText, timex.UnsetText, timex.UnsetText},
	{5, "Old Ficus", "20.03.2023", timex.UnsetText, timex.UnsetText, timex.UnsetText},
}

// SeedMigrate writes the initial collection into an empty ledger
// SeedMigrate 向空记录库写入初始盆景
type SeedMigrate struct{}

// Version 返回版本号
func (m *SeedMigrate) Version() string {
	return "0.1.0"
}

// Description 返回描述
func (m *SeedMigrate) Description() string {
	return "Seed the ledger with the initial six trees"
}

// Up 执行升级
// A database that already carries the legacy table was seeded by the old
// application, so only the id sequence is created here and 0.2.0 imports the rows.
func (m *SeedMigrate) Up(db *gorm.DB, ctx context.Context) error {
	if db.Migrator().HasTable(model.TableNameLegacyBonsai) {
		return ensureSequence(db, 0)
	}

	var count int64
	if err := db.Model(&model.BonsaiVersion{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ensureSequence(db, 0)
	}

	rows := make([]*model.BonsaiVersion, 0, len(SeedRows))
	var next int64
	for _, s := range SeedRows {
		rows = append(rows, &model.BonsaiVersion{
			ID:            s.ID,
			Name:          s.Name,
			NextFertilize: timex.MustParseDate(s.NextFertilize),
			LastPruning:   timex.MustParseDate(s.LastPruning),
			LastRepot:     timex.MustParseDate(s.LastRepot),
			LastWiring:    timex.MustParseDate(s.LastWiring),
		})
		if s.ID >= next {
			next = s.ID + 1
		}
	}

	// 逐行插入以保证 seq 与种子顺序一致
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			return err
		}
	}
	return ensureSequence(db, next)
}

// ensureSequence creates the id_sequence row or raises it to at least next
// ensureSequence 创建 ID 序列行，或将其提升到不小于 next
func ensureSequence(db *gorm.DB, next int64) error {
	var maxID sql.NullInt64
	if err := db.Model(&model.BonsaiVersion{}).Select("MAX(id)").Row().Scan(&maxID); err != nil {
		return err
	}
	if maxID.Valid && maxID.Int64+1 > next {
		next = maxID.Int64 + 1
	}

	var seq model.IDSequence
	res := db.Where("name = ?", SequenceName).Limit(1).Find(&seq)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return db.Create(&model.IDSequence{Name: SequenceName, Next: next}).Error
	}
	if seq.Next >= next {
		return nil
	}
	return db.Model(&model.IDSequence{}).Where("name = ?", SequenceName).Update("next", next).Error
}
