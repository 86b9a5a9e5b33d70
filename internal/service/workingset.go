package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"

	"github.com/jinzhu/copier"
)

// WorkingSet is the editable in-memory view of the current trees, one record
// per id, ordered by id
// WorkingSet 可编辑的内存盆景集合，每个 ID 一条，按 ID 排序
type WorkingSet struct {
	records []*domain.Bonsai
}

// NewWorkingSet takes ownership of records and orders them by id
// NewWorkingSet 接管 records 并按 ID 排序
func NewWorkingSet(records []*domain.Bonsai) *WorkingSet {
	out := make([]*domain.Bonsai, 0, len(records))
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return &WorkingSet{records: out}
}

// Records returns the records in order; the slice is a copy, the records are not
func (w *WorkingSet) Records() []*domain.Bonsai {
	out := make([]*domain.Bonsai, len(w.records))
	copy(out, w.records)
	return out
}

// Len 记录数
func (w *WorkingSet) Len() int {
	return len(w.records)
}

// At returns the record at position i, or nil when out of range
func (w *WorkingSet) At(i int) *domain.Bonsai {
	if i < 0 || i >= len(w.records) {
		return nil
	}
	return w.records[i]
}

// Index returns the position of id, or -1
// Index 返回 ID 所在位置，不存在时返回 -1
func (w *WorkingSet) Index(id int64) int {
	i := sort.Search(len(w.records), func(i int) bool { return w.records[i].ID >= id })
	if i < len(w.records) && w.records[i].ID == id {
		return i
	}
	return -1
}

// Get 根据 ID 获取记录
func (w *WorkingSet) Get(id int64) (*domain.Bonsai, bool) {
	if i := w.Index(id); i >= 0 {
		return w.records[i], true
	}
	return nil, false
}

// Lookup resolves a numeric id or an exact name (case-insensitive)
// Lookup 按数字 ID 或名称（不区分大小写）查找
func (w *WorkingSet) Lookup(ref string) (*domain.Bonsai, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if b, ok := w.Get(id); ok {
			return b, true
		}
	}
	for _, b := range w.records {
		if strings.EqualFold(b.Name, ref) {
			return b, true
		}
	}
	return nil, false
}

// Add inserts b at its id position; an id already present is rejected
// Add 按 ID 顺序插入，ID 已存在时报错
func (w *WorkingSet) Add(b *domain.Bonsai) error {
	if b == nil {
		return code.ErrorInvalidParams.WithDetails("nil bonsai")
	}
	if w.Index(b.ID) >= 0 {
		return code.ErrorInvalidParams.WithDetails("duplicate id " + strconv.FormatInt(b.ID, 10))
	}
	i := sort.Search(len(w.records), func(i int) bool { return w.records[i].ID > b.ID })
	w.records = append(w.records, nil)
	copy(w.records[i+1:], w.records[i:])
	w.records[i] = b
	return nil
}

// Remove drops id; it reports whether the id was present
// Remove 移除 ID，返回是否存在
func (w *WorkingSet) Remove(id int64) bool {
	i := w.Index(id)
	if i < 0 {
		return false
	}
	w.records = append(w.records[:i], w.records[i+1:]...)
	return true
}

// Set parses raw as a dd.mm.yyyy date ("Not Yet" or empty clears it) and stores
// it under field. Nothing is changed when raw does not parse.
// Set 解析日期字符串并写入字段，解析失败时不修改记录
func (w *WorkingSet) Set(id int64, field domain.Field, raw string) error {
	d, err := timex.ParseDate(raw)
	if err != nil {
		return code.ErrorInvalidDate.WithCause(err)
	}
	return w.SetDate(id, field, d)
}

// SetDate stores an already parsed date under field
func (w *WorkingSet) SetDate(id int64, field domain.Field, d timex.Date) error {
	b, ok := w.Get(id)
	if !ok {
		return code.ErrorBonsaiNotFound.WithDetails(strconv.FormatInt(id, 10))
	}
	if !b.Set(field, d) {
		return code.ErrorInvalidField.WithDetails(field.String())
	}
	return nil
}

// Snapshot returns a deep copy: later edits to either side are not seen by the other
// Snapshot 返回深拷贝，双方后续修改互不影响
func (w *WorkingSet) Snapshot() (*WorkingSet, error) {
	out := make([]*domain.Bonsai, 0, len(w.records))
	for _, r := range w.records {
		c, err := cloneBonsai(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return &WorkingSet{records: out}, nil
}

// cloneBonsai copies one record; timex.Date is an immutable value so a field copy is deep
func cloneBonsai(b *domain.Bonsai) (*domain.Bonsai, error) {
	c := new(domain.Bonsai)
	if err := copier.Copy(c, b); err != nil {
		return nil, code.ErrorServerInternal.WithDetails("copy bonsai").WithCause(err)
	}
	return c, nil
}
