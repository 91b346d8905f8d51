package logx

import (
	"context"
	"errors"
	"testing"

	"GeoPits/modules/kit/errx"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorLog_提取语义与栈(t *testing.T) {
	e := errx.NewSys("STORE_DOWN", "存储不可用").
		WithData("game_id", int64(7)).
		WithCause(errors.New("db down"))

	meta := BuildErrorLog(e)
	if meta.Code != "STORE_DOWN" || meta.Msg == "" {
		t.Fatalf("code/msg 未提取: %+v", meta)
	}
	if meta.Data["game_id"] != int64(7) {
		t.Fatalf("data 未提取: %v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("cause_chain 为空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("栈未提取 origin=%q", meta.Origin)
	}
}

func TestReportAccess_按业务码分级(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	ReportAccess(context.Background(), l, "GET /game", 0)
	ReportAccess(context.Background(), l, "POST /game/move", 100)
	ReportAccess(context.Background(), l, "GET /game/pits", 500)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("期望 3 条日志, got=%d", len(entries))
	}
	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("第 %d 条级别错误: got=%v want=%v", i, e.Level, want[i])
		}
	}
}
