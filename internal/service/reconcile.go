package service

import (
	"context"
	"strconv"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
)

// Reconcile appends one ledger version for every working-set record that differs
// from the baseline record with the same id, or has no baseline record at all.
// Records only present in the baseline are left alone; removal is an explicit delete.
// The first failed append stops the run. The ids appended so far are returned in
// working-set order either way.
//
// Reconcile 将与基线不同（或基线中不存在）的记录逐条追加到记录库；
// 仅存在于基线中的记录不处理；首次追加失败即停止
func Reconcile(ctx context.Context, ws, baseline *WorkingSet, repo domain.BonsaiRepository) ([]int64, error) {
	var changed []int64
	for _, rec := range ws.Records() {
		if base, ok := baseline.Get(rec.ID); ok && rec.SameState(base) {
			continue
		}
		if err := repo.Append(ctx, rec); err != nil {
			return changed, code.ErrorDBWrite.WithDetails("bonsai " + strconv.FormatInt(rec.ID, 10)).WithCause(err)
		}
		changed = append(changed, rec.ID)
	}
	return changed, nil
}
