package errx

import (
	"errors"
	"testing"
)

func TestError_Is_只按code比较(t *testing.T) {
	e1 := NewBiz("PIT_X", "x").WithData("k", "v").WithCause(errors.New("cause1"))
	e2 := NewBiz("PIT_X", "y").WithData("k2", "v2")
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true，e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, NewBiz("PIT_Y", "x")) {
		t.Fatalf("不同 code 不应相等")
	}
}

func TestError_业务错误不捕获栈(t *testing.T) {
	cause := errors.New("disk full")
	err := NewBiz("INVENTORY_EMPTY", "背包为空").WithCause(cause)
	if err.Stack() != nil {
		t.Fatalf("业务错误不应带栈")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause 链丢失: %v", err)
	}
	if !err.IsBiz() {
		t.Fatalf("期望 IsBiz()==true")
	}
}

func TestError_系统错误只捕获一次栈(t *testing.T) {
	sys := NewSys("STORE_DOWN", "存储不可用").WithCause(errors.New("io timeout"))
	if len(sys.Stack()) == 0 {
		t.Fatalf("期望系统错误带栈")
	}
	outer := NewSys("WORLD_DOWN", "世界不可用").WithCause(sys)
	if outer.Stack() != nil {
		t.Fatalf("cause 链里已有栈，上层不应重复捕获")
	}
}

func TestError_Data_复制隔离(t *testing.T) {
	m := map[string]any{"cell": "1,2"}
	err := NewBiz("PIT_X", "").WithDataMap(m)
	m["cell"] = "mutated"
	if got := err.Data()["cell"]; got != "1,2" {
		t.Fatalf("data 被外部修改: %v", got)
	}
}

func TestAsError_沿cause链查找(t *testing.T) {
	inner := NewBiz("PIT_NOT_FOUND", "不是矿坑")
	wrapped := errors.Join(errors.New("ctx"), inner)
	got, ok := AsError(wrapped)
	if !ok || got.Code() != "PIT_NOT_FOUND" {
		t.Fatalf("AsError 失败: %v %v", got, ok)
	}
}
