package transport

import (
	"context"
	"testing"

	"GeoPits/modules/kit/logx"
	"GeoPits/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLog_默认系统错误(t *testing.T) {
	ctx := NewContext("POST /game/move")
	al := FromContext(ctx)
	if al == nil || al.BizCode != BizCode(SystemError) {
		t.Fatalf("默认业务码应为 SystemError, got=%+v", al)
	}
	if id, ok := tracex.TraceIDFrom(ctx); !ok || id == "" {
		t.Fatalf("应生成 trace id")
	}
}

func TestWriteAccessLog_按业务码分级(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logx.NewZapLogger(zap.New(core))

	ok := NewContext("GET /game")
	SetBizCode(ok, BizCode(OK))
	WriteAccessLog(ok, l)

	rejected := NewContext("POST /game/pits/:i/:j/collect")
	SetBizCode(rejected, BizCode(TokenNotInPit))
	SetErrorReason(rejected, "WORLD_TOKEN_NOT_IN_PIT")
	WriteAccessLog(rejected, l)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("期望 2 条日志, got=%d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("分级不对: %v %v", entries[0].Level, entries[1].Level)
	}
	if entries[1].ContextMap()["error_reason"] != "WORLD_TOKEN_NOT_IN_PIT" {
		t.Fatalf("缺少 error_reason: %v", entries[1].ContextMap())
	}
}

func TestWriteAccessLog_无上下文不输出(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	WriteAccessLog(context.Background(), logx.NewZapLogger(zap.New(core)))
	if logs.Len() != 0 {
		t.Fatalf("没有 AccessLog 时不应输出")
	}
}
