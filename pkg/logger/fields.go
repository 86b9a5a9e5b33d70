package logger

// 统一的日志字段命名常量
// Log field names shared across the project so log lines stay queryable
const (
	// FieldBonsaiID 盆景 ID 字段
	FieldBonsaiID = "bonsaiId"

	// FieldName 盆景名称字段
	FieldName = "name"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldField 养护字段名
	FieldField = "field"

	// FieldPath 文件路径字段
	FieldPath = "path"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldDate 日期字段
	FieldDate = "date"

	// FieldDuration 耗时字段
	FieldDuration = "duration"
)
