package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 对外业务码。0 成功；1xx 请求问题；2xx 玩法拒绝；5xx 系统故障。
const (
	OK = 0

	InvalidParam = 100
	Unauthorized = 101

	PitNotFound    = 200
	PitOutOfRange  = 201
	TokenNotInPit  = 202
	InventoryEmpty = 203
	MomentoInvalid = 204
	GameNotFound   = 205

	SystemError      = 500
	WorldUnavailable = 503
	WorldTimeout     = 504
)
