package model

// TableNameLegacyBonsai is the flat table written by the first desktop version of the tracker
const TableNameLegacyBonsai = "bonsai"

// LegacyBonsai is one row of the legacy table; dates are kept as raw text
// LegacyBonsai 旧版数据表的一行，日期保留原始文本
type LegacyBonsai struct {
	RowID         int64  `gorm:"column:rowid"`
	TreeID        int64  `gorm:"column:treeid"`
	Name          string `gorm:"column:name"`
	NextFertilize string `gorm:"column:next_fertilize"`
	LastPruning   string `gorm:"column:last_pruning"`
	LastRepot     string `gorm:"column:last_repot"`
	LastWiring    string `gorm:"column:last_wiring"`
}
