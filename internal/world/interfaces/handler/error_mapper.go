package handler

import (
	"context"
	"errors"

	"GeoPits/internal/shared/transport"
	"GeoPits/internal/world/actor"
	"GeoPits/internal/world/entity"
	"GeoPits/internal/world/entity/domain"
	"GeoPits/modules/kit/errx"
	"GeoPits/modules/kit/logx"
)

var bizCodes = map[errx.Code]int{
	entity.CodeGameNotFound:     transport.GameNotFound,
	entity.CodePitNotFound:      transport.PitNotFound,
	entity.CodePitOutOfRange:    transport.PitOutOfRange,
	entity.CodeTokenNotInPit:    transport.TokenNotInPit,
	entity.CodeInventoryEmpty:   transport.InventoryEmpty,
	entity.CodeMomentoInvalid:   transport.MomentoInvalid,
	domain.CodeInvalidDirection: transport.InvalidParam,
	domain.CodeInvalidCellKey:   transport.InvalidParam,
	domain.CodeInvalidLocation:  transport.InvalidParam,
	domain.CodeInvalidTokenID:   transport.InvalidParam,
	errx.CodeReqParamError:      transport.InvalidParam,
}

func mapTechErrToClientCode(err error) int {
	var re *actor.RuntimeError
	if errors.As(err, &re) {
		return actor.CodeFromError(re)
	}
	if e, ok := errx.AsError(err); ok {
		switch e.Code() {
		case errx.CodeUnavailable:
			return transport.WorldUnavailable
		case errx.CodeTimeout:
			return transport.WorldTimeout
		}
	}
	return transport.SystemError
}

// HandleError 把错误翻译成 (业务码, 提示语)，并写业务/系统错误日志。
func HandleError(ctx context.Context, log logx.Logger, err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}
	if e, ok := errx.AsError(err); ok && e.IsBiz() {
		transport.SetErrorReason(ctx, e.CodeText())
		logx.ReportBiz(ctx, log, logx.NewBizLog(transport.ActionFrom(ctx), e.CodeText(), e.Msg()))
		if code, ok := bizCodes[e.Code()]; ok {
			return code, e.Msg()
		}
		return transport.InvalidParam, e.Msg()
	}

	code := mapTechErrToClientCode(err)
	if e, ok := errx.AsError(err); ok {
		transport.SetErrorReason(ctx, e.CodeText())
	} else {
		transport.SetErrorReason(ctx, "internal")
	}
	logx.ReportSysError(ctx, log, logx.NewSysLog(transport.ActionFrom(ctx), err))
	return code, "系统繁忙，请稍后重试"
}
