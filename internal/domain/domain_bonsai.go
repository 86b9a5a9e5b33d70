// Package domain 定义领域模型和接口
package domain

import (
	"github.com/haierkeys/bonsai-keeper/pkg/timex"
)

// Bonsai is one version of a tracked tree
// Bonsai 被跟踪盆景的一个版本
type Bonsai struct {
	ID            int64
	Name          string
	NextFertilize timex.Date
	LastPruning   timex.Date
	LastRepot     timex.Date
	LastWiring    timex.Date
	// NotePath is derived from Name and the notes directory, never stored in the ledger
	// NotePath 由名称和笔记目录推导，不写入记录
	NotePath string
}

// Field names one of the four maintenance dates
// Field 标识四个养护日期之一
type Field int

const (
	FieldNextFertilize Field = iota + 1
	FieldLastPruning
	FieldLastRepot
	FieldLastWiring
)

// Fields lists the maintenance dates in display order
var Fields = []Field{FieldNextFertilize, FieldLastPruning, FieldLastRepot, FieldLastWiring}

var fieldNames = map[Field]string{
	FieldNextFertilize: "next_fertilize",
	FieldLastPruning:   "last_pruning",
	FieldLastRepot:     "last_repot",
	FieldLastWiring:    "last_wiring",
}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

// Label is the human label used by the presentation layer
func (f Field) Label() string {
	switch f {
	case FieldNextFertilize:
		return "next fertilize"
	case FieldLastPruning:
		return "last pruning"
	case FieldLastRepot:
		return "last repot"
	case FieldLastWiring:
		return "last wiring"
	}
	return "unknown"
}

// ParseField accepts the column name or its short form (fertilize, pruning, repot, wiring)
// ParseField 接受列名或简写
func ParseField(s string) (Field, bool) {
	switch s {
	case "next_fertilize", "fertilize", "next-fertilize":
		return FieldNextFertilize, true
	case "last_pruning", "pruning", "prune", "last-pruning":
		return FieldLastPruning, true
	case "last_repot", "repot", "last-repot":
		return FieldLastRepot, true
	case "last_wiring", "wiring", "wire", "last-wiring":
		return FieldLastWiring, true
	}
	return 0, false
}

// Get returns the date stored under f
func (b *Bonsai) Get(f Field) timex.Date {
	switch f {
	case FieldNextFertilize:
		return b.NextFertilize
	case FieldLastPruning:
		return b.LastPruning
	case FieldLastRepot:
		return b.LastRepot
	case FieldLastWiring:
		return b.LastWiring
	}
	return timex.Unset()
}

// Set stores d under f; it reports false for an unknown field
// Set 将日期写入对应字段，未知字段返回 false
func (b *Bonsai) Set(f Field, d timex.Date) bool {
	switch f {
	case FieldNextFertilize:
		b.NextFertilize = d
	case FieldLastPruning:
		b.LastPruning = d
	case FieldLastRepot:
		b.LastRepot = d
	case FieldLastWiring:
		b.LastWiring = d
	default:
		return false
	}
	return true
}

// SameState compares every persisted field. NotePath is derived and ignored.
// SameState 逐字段比较持久化字段，忽略推导出的 NotePath
func (b *Bonsai) SameState(o *Bonsai) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.ID == o.ID &&
		b.Name == o.Name &&
		b.NextFertilize.Equal(o.NextFertilize) &&
		b.LastPruning.Equal(o.LastPruning) &&
		b.LastRepot.Equal(o.LastRepot) &&
		b.LastWiring.Equal(o.LastWiring)
}

// ChangedFields lists the maintenance fields that differ from o
// ChangedFields 返回与 o 不同的养护字段
func (b *Bonsai) ChangedFields(o *Bonsai) []Field {
	var out []Field
	for _, f := range Fields {
		if o == nil || !b.Get(f).Equal(o.Get(f)) {
			out = append(out, f)
		}
	}
	return out
}

// Action is a maintenance step the user can mark as done
// Action 用户可以标记完成的养护操作
type Action string

const (
	ActionFertilize Action = "fertilize"
	ActionPrune     Action = "prune"
	ActionRepot     Action = "repot"
	ActionWire      Action = "wire"
)

// Field returns the record field an action writes to
func (a Action) Field() (Field, bool) {
	switch a {
	case ActionFertilize:
		return FieldNextFertilize, true
	case ActionPrune:
		return FieldLastPruning, true
	case ActionRepot:
		return FieldLastRepot, true
	case ActionWire:
		return FieldLastWiring, true
	}
	return 0, false
}

// BonsaiVersion is one ledger row together with its insertion order
// BonsaiVersion 记录中的一行及其插入顺序
type BonsaiVersion struct {
	Seq    int64
	Bonsai Bonsai
}
