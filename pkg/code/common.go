package code

var (
	ErrorServerInternal     = NewError(500, lang{en: "Internal error", zh_cn: "内部错误"})
	ErrorInvalidParams      = NewError(400, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorConfigLoad         = NewError(1001, lang{en: "Failed to load configuration", zh_cn: "配置加载失败"})
	ErrorStorageUnavailable = NewError(1002, lang{en: "Bonsai ledger storage is unavailable", zh_cn: "盆景记录存储不可用"})
	ErrorDBQuery            = NewError(1003, lang{en: "Ledger query failed", zh_cn: "记录查询失败"})
	ErrorDBWrite            = NewError(1004, lang{en: "Ledger write failed", zh_cn: "记录写入失败"})

	ErrorBonsaiNotFound   = NewError(2001, lang{en: "Bonsai not found", zh_cn: "盆景不存在"})
	ErrorInvalidDate      = NewError(2002, lang{en: "Invalid date, expected dd.mm.yyyy", zh_cn: "日期格式错误，应为 日.月.年"})
	ErrorInvalidField     = NewError(2003, lang{en: "Unknown maintenance field", zh_cn: "未知的养护字段"})
	ErrorEmptyWorkingSet  = NewError(2004, lang{en: "No bonsai loaded", zh_cn: "没有已加载的盆景"})
	ErrorBonsaiNameExists = NewError(2005, lang{en: "A bonsai with this name already exists", zh_cn: "同名盆景已存在"})

	ErrorNoteRead  = NewError(3001, lang{en: "Failed to read note document", zh_cn: "读取笔记失败"})
	ErrorNoteWrite = NewError(3002, lang{en: "Failed to write note document", zh_cn: "写入笔记失败"})
)
