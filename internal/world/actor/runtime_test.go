package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"GeoPits/internal/shared/actor/messages"
	"GeoPits/internal/shared/transport"
	"GeoPits/internal/world/actors"
	"GeoPits/internal/world/entity"
	"GeoPits/internal/world/entity/domain"
	"GeoPits/internal/world/infra/persistence/memory"
)

func testOptions() actors.Options {
	s := entity.DefaultSettings()
	s.Seed = "runtime"
	s.VisibilityRadius = 2
	s.SpawnProbability = 1
	return actors.Options{Settings: s, FlushEvery: 50 * time.Millisecond}
}

func base(id int64) messages.GameBase {
	return messages.GameBase{GameId: id}
}

func TestRuntime_创建移动收集(t *testing.T) {
	repo := memory.NewGameRepository()
	rt := NewRuntime(repo, testOptions(), time.Second)
	defer rt.Shutdown()
	ctx := context.Background()

	reply, err := rt.Ask(ctx, &messages.CreateGame{GameBase: base(1)})
	if err != nil || reply.View == nil || reply.View.Status != "No Tokens Yet" {
		t.Fatalf("create reply=%+v err=%v", reply, err)
	}
	start := reply.View.Cell

	reply, err = rt.Ask(ctx, &messages.Move{GameBase: base(1), Direction: "north"})
	if err != nil || reply.View.Cell.I != start.I+1 {
		t.Fatalf("move reply=%+v err=%v", reply, err)
	}

	if _, err := rt.Ask(ctx, &messages.Move{GameBase: base(1), Direction: "up"}); !errors.Is(err, domain.ErrInvalidDirection) {
		t.Fatalf("期望 ErrInvalidDirection, got=%v", err)
	}

	reply, err = rt.Ask(ctx, &messages.ListPits{GameBase: base(1)})
	if err != nil || len(reply.Pits) != 16 {
		t.Fatalf("pits reply=%+v err=%v", reply, err)
	}
	pit := reply.Pits[0]
	reply, err = rt.Ask(ctx, &messages.Collect{GameBase: base(1), I: pit.Cell.I, J: pit.Cell.J, Token: pit.Tokens[0]})
	if err != nil || reply.Token != pit.Tokens[0] || len(reply.View.Inventory) != 1 {
		t.Fatalf("collect reply=%+v err=%v", reply, err)
	}

	_, err = rt.Ask(ctx, &messages.Collect{GameBase: base(1), I: pit.Cell.I, J: pit.Cell.J, Token: pit.Tokens[0]})
	if !errors.Is(err, entity.ErrTokenNotInPit) {
		t.Fatalf("重复收集期望 ErrTokenNotInPit, got=%v", err)
	}

	reply, err = rt.Ask(ctx, &messages.Deposit{GameBase: base(1), I: pit.Cell.I, J: pit.Cell.J})
	if err != nil || len(reply.View.Inventory) != 0 {
		t.Fatalf("deposit reply=%+v err=%v", reply, err)
	}
}

func TestRuntime_不存在的对局(t *testing.T) {
	rt := NewRuntime(memory.NewGameRepository(), testOptions(), time.Second)
	defer rt.Shutdown()

	_, err := rt.Ask(context.Background(), &messages.GetView{GameBase: base(404)})
	if !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("期望 ErrGameNotFound, got=%v", err)
	}
	// 失败的 actor 退出后再次请求仍然是同样的结果
	_, err = rt.Ask(context.Background(), &messages.GetView{GameBase: base(404)})
	if !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("期望 ErrGameNotFound, got=%v", err)
	}
}

func TestRuntime_Shutdown落库后可恢复(t *testing.T) {
	repo := memory.NewGameRepository()
	ctx := context.Background()

	rt := NewRuntime(repo, testOptions(), time.Second)
	if _, err := rt.Ask(ctx, &messages.CreateGame{GameBase: base(7)}); err != nil {
		t.Fatal(err)
	}
	reply, err := rt.Ask(ctx, &messages.Locate{GameBase: base(7), Lat: 12.5, Lng: -3.25})
	if err != nil {
		t.Fatal(err)
	}
	want := reply.View
	rt.Shutdown()

	rt2 := NewRuntime(repo, testOptions(), time.Second)
	defer rt2.Shutdown()
	reply, err = rt2.Ask(ctx, &messages.GetView{GameBase: base(7)})
	if err != nil {
		t.Fatalf("重启后加载失败: %v", err)
	}
	if reply.View.Lat != want.Lat || reply.View.Lng != want.Lng {
		t.Fatalf("位置没有恢复: got=%+v want=%+v", reply.View, want)
	}
}

func TestRuntime_Momento导出导入与清档(t *testing.T) {
	rt := NewRuntime(memory.NewGameRepository(), testOptions(), time.Second)
	defer rt.Shutdown()
	ctx := context.Background()

	if _, err := rt.Ask(ctx, &messages.CreateGame{GameBase: base(3)}); err != nil {
		t.Fatal(err)
	}
	reply, err := rt.Ask(ctx, &messages.ExportMomento{GameBase: base(3)})
	if err != nil || len(reply.Momento) == 0 {
		t.Fatalf("export reply=%+v err=%v", reply, err)
	}
	saved := reply.Momento

	if _, err := rt.Ask(ctx, &messages.Reset{GameBase: base(3)}); err != nil {
		t.Fatal(err)
	}
	reply, err = rt.Ask(ctx, &messages.ImportMomento{GameBase: base(3), Momento: saved})
	if err != nil || reply.View.Lat == 0 {
		t.Fatalf("import 后应回到存档位置: reply=%+v err=%v", reply, err)
	}

	if _, err := rt.Ask(ctx, &messages.ImportMomento{GameBase: base(3), Momento: []byte("{")}); !errors.Is(err, entity.ErrMomentoInvalid) {
		t.Fatalf("期望 ErrMomentoInvalid, got=%v", err)
	}

	reply, err = rt.Ask(ctx, &messages.Wipe{GameBase: base(3)})
	if err != nil || reply.View.Status != "No Tokens Yet" {
		t.Fatalf("wipe reply=%+v err=%v", reply, err)
	}
}

func TestRuntime_重复创建(t *testing.T) {
	rt := NewRuntime(memory.NewGameRepository(), testOptions(), time.Second)
	defer rt.Shutdown()
	ctx := context.Background()
	if _, err := rt.Ask(ctx, &messages.CreateGame{GameBase: base(5)}); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Ask(ctx, &messages.CreateGame{GameBase: base(5)}); err == nil {
		t.Fatalf("同一个 id 不能创建两次")
	}
}

func TestCodeFromError(t *testing.T) {
	if CodeFromError(nil) != transport.OK {
		t.Fatalf("nil 应为 OK")
	}
	if CodeFromError(&RuntimeError{Code: transport.WorldTimeout}) != transport.WorldTimeout {
		t.Fatalf("应透出 RuntimeError.Code")
	}
	if CodeFromError(errors.New("x")) != transport.SystemError {
		t.Fatalf("未知错误应为 SystemError")
	}
}

func TestRuntime_Ask_nil请求(t *testing.T) {
	rt := NewRuntime(memory.NewGameRepository(), testOptions(), time.Second)
	defer rt.Shutdown()
	_, err := rt.Ask(context.Background(), nil)
	if CodeFromError(err) != transport.InvalidParam {
		t.Fatalf("got=%v", err)
	}
}

func TestRuntime_Ask超时可热更新(t *testing.T) {
	rt := NewRuntime(memory.NewGameRepository(), testOptions(), time.Second)
	defer rt.Shutdown()

	if got := rt.timeoutFromContext(context.Background()); got != time.Second {
		t.Fatalf("初始超时 got=%v", got)
	}
	rt.SetAskTimeout(5 * time.Second)
	if got := rt.timeoutFromContext(context.Background()); got != 5*time.Second {
		t.Fatalf("热更新后 got=%v", got)
	}
	rt.SetAskTimeout(0)
	if rt.AskTimeout() != 5*time.Second {
		t.Fatalf("非法值应忽略, got=%v", rt.AskTimeout())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if got := rt.timeoutFromContext(ctx); got > 100*time.Millisecond {
		t.Fatalf("ctx deadline 更短时应取 deadline, got=%v", got)
	}
}

func TestRuntime_删档(t *testing.T) {
	repo := memory.NewGameRepository()
	rt := NewRuntime(repo, testOptions(), time.Second)
	defer rt.Shutdown()
	ctx := context.Background()

	if _, err := rt.Ask(ctx, &messages.CreateGame{GameBase: base(11)}); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Ask(ctx, &messages.Move{GameBase: base(11), Direction: "north"}); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Ask(ctx, &messages.DeleteGame{GameBase: base(11)}); err != nil {
		t.Fatalf("delete err=%v", err)
	}
	if _, err := repo.Load(ctx, 11); !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("仓储里应已删除, got=%v", err)
	}
	if _, err := rt.Ask(ctx, &messages.GetView{GameBase: base(11)}); !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("删档后期望 ErrGameNotFound, got=%v", err)
	}
	if _, err := rt.Ask(ctx, &messages.DeleteGame{GameBase: base(11)}); !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("重复删档期望 ErrGameNotFound, got=%v", err)
	}
}

func TestRuntime_走出地球返回参数错误(t *testing.T) {
	rt := NewRuntime(memory.NewGameRepository(), testOptions(), time.Second)
	defer rt.Shutdown()
	ctx := context.Background()

	if _, err := rt.Ask(ctx, &messages.CreateGame{GameBase: base(12)}); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Ask(ctx, &messages.Locate{GameBase: base(12), Lat: 89.99995, Lng: 0}); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Ask(ctx, &messages.Move{GameBase: base(12), Direction: "north"}); !errors.Is(err, domain.ErrInvalidLocation) {
		t.Fatalf("期望 ErrInvalidLocation, got=%v", err)
	}
}
