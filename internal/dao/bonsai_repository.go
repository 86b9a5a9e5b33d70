package dao

import (
	"context"
	"sort"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/internal/model"
	"github.com/haierkeys/bonsai-keeper/internal/upgrade"
	"github.com/haierkeys/bonsai-keeper/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bonsaiRepository 实现 domain.BonsaiRepository 接口
type bonsaiRepository struct {
	dao *Dao
}

// NewBonsaiRepository 创建 BonsaiRepository 实例
func NewBonsaiRepository(dao *Dao) domain.BonsaiRepository {
	return &bonsaiRepository{dao: dao}
}

// 确保 bonsaiRepository 实现了 domain.BonsaiRepository 接口
var _ domain.BonsaiRepository = (*bonsaiRepository)(nil)

// toDomain 将数据库模型转换为领域模型
func (r *bonsaiRepository) toDomain(m *model.BonsaiVersion) *domain.Bonsai {
	if m == nil {
		return nil
	}
	return &domain.Bonsai{
		ID:            m.ID,
		Name:          m.Name,
		NextFertilize: m.NextFertilize,
		LastPruning:   m.LastPruning,
		LastRepot:     m.LastRepot,
		LastWiring:    m.LastWiring,
	}
}

// toModel 将领域模型转换为数据库模型
func (r *bonsaiRepository) toModel(b *domain.Bonsai) *model.BonsaiVersion {
	return &model.BonsaiVersion{
		ID:            b.ID,
		Name:          b.Name,
		NextFertilize: b.NextFertilize,
		LastPruning:   b.LastPruning,
		LastRepot:     b.LastRepot,
		LastWiring:    b.LastWiring,
	}
}

// Initialize 创建数据表并执行升级脚本（含初始数据）
func (r *bonsaiRepository) Initialize(ctx context.Context) error {
	if err := upgrade.NewMigrationManager(r.dao.Db, r.dao.Logger()).Run(ctx); err != nil {
		return errors.Wrap(err, "initialize ledger failed")
	}
	return nil
}

// LoadCurrent 读取全部版本并在内存中按 ID 保留最新版本
func (r *bonsaiRepository) LoadCurrent(ctx context.Context) ([]*domain.Bonsai, error) {
	var rows []*model.BonsaiVersion
	if err := r.dao.DB(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load ledger failed")
	}

	current := Materialize(rows)
	out := make([]*domain.Bonsai, 0, len(current))
	for _, m := range current {
		out = append(out, r.toDomain(m))
	}

	r.dao.Logger().Debug("ledger loaded",
		zap.Int(logger.FieldCount, len(rows)),
		zap.Int("current", len(out)),
		zap.String(logger.FieldMethod, "bonsaiRepository.LoadCurrent"),
	)
	return out, nil
}

// Materialize builds the latest-version index from ledger rows.
// The row with the highest seq wins for each id, whatever order rows arrive in.
// The result is sorted by id.
// Materialize 由记录行构建每个 ID 的最新版本索引，seq 最大者胜出，结果按 ID 排序
func Materialize(rows []*model.BonsaiVersion) []*model.BonsaiVersion {
	latest := make(map[int64]*model.BonsaiVersion, len(rows))
	for _, row := range rows {
		if prev, ok := latest[row.ID]; ok && prev.Seq > row.Seq {
			continue
		}
		latest[row.ID] = row
	}

	out := make([]*model.BonsaiVersion, 0, len(latest))
	for _, row := range latest {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Append 追加一个新版本，并保证 ID 序列不会再次分配该 ID
func (r *bonsaiRepository) Append(ctx context.Context, b *domain.Bonsai) error {
	if b == nil {
		return errors.New("append nil bonsai")
	}
	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(r.toModel(b)).Error; err != nil {
			return err
		}
		return tx.Model(&model.IDSequence{}).
			Where("name = ? AND next <= ?", upgrade.SequenceName, b.ID).
			Update("next", b.ID+1).Error
	})
	if err != nil {
		return errors.Wrapf(err, "append bonsai %d failed", b.ID)
	}

	r.dao.Logger().Debug("ledger append",
		zap.Int64(logger.FieldBonsaiID, b.ID),
		zap.String(logger.FieldName, b.Name),
	)
	return nil
}

// DeleteAllVersions 物理删除该 ID 的全部版本
func (r *bonsaiRepository) DeleteAllVersions(ctx context.Context, id int64) error {
	res := r.dao.DB(ctx).Where("id = ?", id).Delete(&model.BonsaiVersion{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete bonsai %d failed", id)
	}
	r.dao.Logger().Debug("ledger delete",
		zap.Int64(logger.FieldBonsaiID, id),
		zap.Int64(logger.FieldCount, res.RowsAffected),
	)
	return nil
}

// NextID 从 id_sequence 分配一个新的 ID
func (r *bonsaiRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		var seq model.IDSequence
		res := tx.Where("name = ?", upgrade.SequenceName).Limit(1).Find(&seq)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("id sequence missing, ledger not initialized")
		}
		id = seq.Next
		return tx.Model(&model.IDSequence{}).
			Where("name = ?", upgrade.SequenceName).
			Update("next", seq.Next+1).Error
	})
	if err != nil {
		return 0, errors.Wrap(err, "allocate bonsai id failed")
	}
	return id, nil
}

// ListVersions 按插入顺序返回该 ID 的全部版本
func (r *bonsaiRepository) ListVersions(ctx context.Context, id int64) ([]*domain.BonsaiVersion, error) {
	var rows []*model.BonsaiVersion
	if err := r.dao.DB(ctx).Where("id = ?", id).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list versions of bonsai %d failed", id)
	}
	out := make([]*domain.BonsaiVersion, 0, len(rows))
	for _, m := range rows {
		out = append(out, &domain.BonsaiVersion{Seq: m.Seq, Bonsai: *r.toDomain(m)})
	}
	return out, nil
}
