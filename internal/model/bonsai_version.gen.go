package model

import (
	"time"

	"github.com/haierkeys/bonsai-keeper/pkg/timex"
)

const TableNameBonsaiVersion = "bonsai_version"

// BonsaiVersion mapped from table <bonsai_version>
type BonsaiVersion struct {
	Seq           int64      `gorm:"column:seq;primaryKey;autoIncrement" json:"seq" form:"seq"`
	ID            int64      `gorm:"column:id;not null;index:idx_bonsai_version_id" json:"id" form:"id"`
	Name          string     `gorm:"column:name;type:text;not null" json:"name" form:"name"`
	NextFertilize timex.Date `gorm:"column:next_fertilize;type:text" json:"nextFertilize" form:"nextFertilize"`
	LastPruning   timex.Date `gorm:"column:last_pruning;type:text" json:"lastPruning" form:"lastPruning"`
	LastRepot     timex.Date `gorm:"column:last_repot;type:text" json:"lastRepot" form:"lastRepot"`
	LastWiring    timex.Date `gorm:"column:last_wiring;type:text" json:"lastWiring" form:"lastWiring"`
	CreatedAt     time.Time  `gorm:"column:created_at;type:datetime;autoCreateTime" json:"createdAt" form:"createdAt"`
}

// TableName BonsaiVersion's table name
func (*BonsaiVersion) TableName() string {
	return TableNameBonsaiVersion
}
