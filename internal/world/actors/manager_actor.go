package actors

import (
	"GeoPits/internal/shared/actor/messages"
	"GeoPits/internal/world/app/port"
	"GeoPits/internal/world/entity"

	"github.com/asynkron/protoactor-go/actor"
)

// ManagerActor 按 GameID 懒创建 GameActor 并转发请求，自己不碰实体。
type ManagerActor struct {
	repo       port.GameRepository
	opts       Options
	gameActors map[entity.GameID]*actor.PID
}

func NewManagerActor(repo port.GameRepository, opts Options) *ManagerActor {
	return &ManagerActor{
		repo:       repo,
		opts:       opts,
		gameActors: make(map[entity.GameID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Terminated:
		m.forget(msg.Who)
	case *gameReleased:
		m.forget(msg.pid)
	case *messages.CreateGame:
		if msg == nil {
			ctx.Respond(fail(errNilRequest))
			return
		}
		id := entity.GameID(msg.GameID())
		if _, ok := m.gameActors[id]; ok {
			ctx.Respond(fail(errGameExists.WithData("gameId", int64(id))))
			return
		}
		ctx.Forward(m.spawn(ctx, id, true))
	case messages.GameMessage:
		if msg == nil {
			ctx.Respond(fail(errNilRequest))
			return
		}
		ctx.Forward(m.getOrSpawn(ctx, entity.GameID(msg.GameID())))
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, id entity.GameID) *actor.PID {
	if pid, ok := m.gameActors[id]; ok && pid != nil {
		return pid
	}
	return m.spawn(ctx, id, false)
}

func (m *ManagerActor) spawn(ctx actor.Context, id entity.GameID, create bool) *actor.PID {
	// 只有第一次实例化是新建，supervisor 重启后的实例都从仓储加载
	fresh := create
	props := actor.PropsFromProducer(func() actor.Actor {
		a := NewGameActor(id, fresh, m.repo, m.opts)
		fresh = false
		return a
	})
	pid := ctx.Spawn(props)
	ctx.Watch(pid)
	m.gameActors[id] = pid
	return pid
}

func (m *ManagerActor) forget(who *actor.PID) {
	if who == nil {
		return
	}
	for id, pid := range m.gameActors {
		if pid.Id == who.Id && pid.Address == who.Address {
			delete(m.gameActors, id)
			return
		}
	}
}

func (m *ManagerActor) GameCount() int {
	return len(m.gameActors)
}
