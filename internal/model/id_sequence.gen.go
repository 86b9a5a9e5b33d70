package model

const TableNameIDSequence = "id_sequence"

// IDSequence mapped from table <id_sequence>
// Next holds the next id to hand out; there is a single row with Name "bonsai"
type IDSequence struct {
	Name string `gorm:"column:name;primaryKey;type:text" json:"name" form:"name"`
	Next int64  `gorm:"column:next;not null" json:"next" form:"next"`
}

// TableName IDSequence's table name
func (*IDSequence) TableName() string {
	return TableNameIDSequence
}
