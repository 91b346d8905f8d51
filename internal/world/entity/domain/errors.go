package domain

import "GeoPits/modules/kit/errx"

type Code = errx.Code

const (
	CodeInvalidDirection Code = "WORLD_INVALID_DIRECTION"
	CodeInvalidCellKey   Code = "WORLD_INVALID_CELL_KEY"
	CodeInvalidLocation  Code = "WORLD_INVALID_LOCATION"
	CodeInvalidTokenID   Code = "WORLD_INVALID_TOKEN_ID"
)

var (
	ErrInvalidDirection = errx.NewBiz(CodeInvalidDirection, "方向不合法")
	ErrInvalidCellKey   = errx.NewBiz(CodeInvalidCellKey, "格子坐标不合法")
	ErrInvalidLocation  = errx.NewBiz(CodeInvalidLocation, "经纬度不合法")
	ErrInvalidTokenID   = errx.NewBiz(CodeInvalidTokenID, "代币编号不合法")
)
