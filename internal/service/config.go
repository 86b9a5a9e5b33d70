// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Schedule ScheduleConfig // Scheduling rules // 养护日期规则
	Notes    NotesConfig    // Note store // 笔记存储
}

// ScheduleConfig fertilization calendar rules
// ScheduleConfig 施肥日历规则
type ScheduleConfig struct {
	FertilizeIntervalMonths int // Months between two fertilizations // 两次施肥间隔月数
	SeasonStartMonth        int // First month of the growing season // 生长季开始月份
	SeasonEndMonth          int // Last month of the growing season // 生长季结束月份
	RepotCooldownMonths     int // No fertilizing this many months after a repot // 换盆后的禁肥月数
	NewTreeInSeasonDays     int // First fertilization of a tree bought in season, in days // 生长季内新购盆景首次施肥天数
	NewTreeOffSeasonMonths  int // First fertilization of a tree bought off season, in months // 生长季外新购盆景首次施肥月数
}

// NotesConfig note store configuration
// NotesConfig 笔记存储配置
type NotesConfig struct {
	Dir string // Directory holding one file per tree // 每棵盆景一个文件的目录
}

// DefaultScheduleConfig returns the rules used when nothing is configured
// DefaultScheduleConfig 返回默认的规则
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		FertilizeIntervalMonths: 2,
		SeasonStartMonth:        3,
		SeasonEndMonth:          9,
		RepotCooldownMonths:     1,
		NewTreeInSeasonDays:     7,
		NewTreeOffSeasonMonths:  1,
	}
}
