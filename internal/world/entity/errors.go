package entity

import "GeoPits/modules/kit/errx"

type Code = errx.Code

const (
	CodeGameNotFound     Code = "WORLD_GAME_NOT_FOUND"
	CodePitNotFound      Code = "WORLD_PIT_NOT_FOUND"
	CodePitOutOfRange    Code = "WORLD_PIT_OUT_OF_RANGE"
	CodeTokenNotInPit    Code = "WORLD_TOKEN_NOT_IN_PIT"
	CodeInventoryEmpty   Code = "WORLD_INVENTORY_EMPTY"
	CodeMomentoInvalid   Code = "WORLD_MOMENTO_INVALID"
	CodeStoreUnavailable Code = errx.CodeUnavailable
)

var (
	ErrGameNotFound   = errx.NewBiz(CodeGameNotFound, "对局不存在")
	ErrPitNotFound    = errx.NewBiz(CodePitNotFound, "这里没有矿坑")
	ErrPitOutOfRange  = errx.NewBiz(CodePitOutOfRange, "矿坑不在视野内")
	ErrTokenNotInPit  = errx.NewBiz(CodeTokenNotInPit, "矿坑里没有这个代币")
	ErrInventoryEmpty = errx.NewBiz(CodeInventoryEmpty, "背包为空")
	ErrMomentoInvalid = errx.NewBiz(CodeMomentoInvalid, "存档数据不合法")
	// ErrStoreUnavailable 存储层技术错误，仓储实现统一用它包 cause。
	ErrStoreUnavailable = errx.NewSys(CodeStoreUnavailable, "存储不可用")
)
