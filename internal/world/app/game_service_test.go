package app

import (
	"context"
	"errors"
	"testing"

	"GeoPits/internal/shared/actor/messages"
	"GeoPits/internal/world/entity"
)

type fakeRuntime struct {
	got   []messages.GameMessage
	reply *messages.GameReply
	err   error
}

func (f *fakeRuntime) Ask(ctx context.Context, msg messages.GameMessage) (*messages.GameReply, error) {
	f.got = append(f.got, msg)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

type fakeNotifier struct {
	names   []string
	gids    []int64
	unbound []int64
}

func (f *fakeNotifier) UnbindGame(gid int64) {
	f.unbound = append(f.unbound, gid)
}

func (f *fakeNotifier) Broadcast(gid int64, name string, data any) int {
	f.names = append(f.names, name)
	f.gids = append(f.gids, gid)
	return 1
}

func newTestService(rt *fakeRuntime, n *fakeNotifier) *GameService {
	return NewGameService(rt, n,
		func() (int64, error) { return 99, nil },
		func(gid int64) (string, error) { return "tok", nil },
	)
}

func TestGameService_Create(t *testing.T) {
	rt := &fakeRuntime{reply: &messages.GameReply{View: &messages.GameView{GameId: 99}}}
	s := newTestService(rt, &fakeNotifier{})

	res, err := s.Create(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Token != "tok" || res.View.GameId != 99 {
		t.Fatalf("got=%+v", res)
	}
	if c, ok := rt.got[0].(*messages.CreateGame); !ok || c.GameID() != 99 {
		t.Fatalf("应发送 CreateGame(99), got=%#v", rt.got[0])
	}
}

func TestGameService_变更后广播(t *testing.T) {
	rt := &fakeRuntime{reply: &messages.GameReply{View: &messages.GameView{GameId: 5}}}
	n := &fakeNotifier{}
	s := newTestService(rt, n)
	ctx := context.Background()

	_, _ = s.Move(ctx, 5, "north")
	_, _ = s.Collect(ctx, 5, 1, 2, "1:2#0")
	_, _ = s.View(ctx, 5)
	_, _ = s.Pits(ctx, 5)

	if len(n.names) != 2 || n.names[0] != PushGameChanged || n.gids[1] != 5 {
		t.Fatalf("只有变更才广播: %v %v", n.names, n.gids)
	}
	mv, ok := rt.got[0].(*messages.Move)
	if !ok || mv.Direction != "north" || mv.GameID() != 5 {
		t.Fatalf("got=%#v", rt.got[0])
	}
}

func TestGameService_失败不广播(t *testing.T) {
	rt := &fakeRuntime{err: entity.ErrPitOutOfRange}
	n := &fakeNotifier{}
	s := newTestService(rt, n)

	if _, err := s.Deposit(context.Background(), 1, 0, 0); !errors.Is(err, entity.ErrPitOutOfRange) {
		t.Fatalf("got=%v", err)
	}
	if len(n.names) != 0 {
		t.Fatalf("失败时不应广播")
	}
}

func TestGameService_Delete广播后解绑(t *testing.T) {
	rt := &fakeRuntime{reply: &messages.GameReply{}}
	n := &fakeNotifier{}
	s := newTestService(rt, n)

	if err := s.Delete(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if d, ok := rt.got[0].(*messages.DeleteGame); !ok || d.GameID() != 7 {
		t.Fatalf("应发送 DeleteGame(7), got=%#v", rt.got[0])
	}
	if len(n.names) != 1 || n.names[0] != PushGameDeleted || len(n.unbound) != 1 || n.unbound[0] != 7 {
		t.Fatalf("names=%v unbound=%v", n.names, n.unbound)
	}

	rt.err = entity.ErrGameNotFound
	n2 := &fakeNotifier{}
	if err := newTestService(rt, n2).Delete(context.Background(), 8); !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("got=%v", err)
	}
	if len(n2.names) != 0 || len(n2.unbound) != 0 {
		t.Fatalf("失败时不应广播或解绑")
	}
}
