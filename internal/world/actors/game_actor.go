package actors

import (
	"context"
	"time"

	"GeoPits/internal/shared/actor/messages"
	"GeoPits/internal/world/app/port"
	"GeoPits/internal/world/dc"
	"GeoPits/internal/world/entity"

	"github.com/asynkron/protoactor-go/actor"
)

type State int

const (
	None State = iota
	Init
	Online
	Failed
	Offline
	Stopping
)

const closeTimeout = 3 * time.Second

// Options 是所有 GameActor 共用的参数。
type Options struct {
	Settings   entity.Settings
	FlushEvery time.Duration
}

// GameActor 独占一局：Game 实体只在这个 actor 的消息循环里读写。
type GameActor struct {
	state      State
	gameID     entity.GameID
	create     bool
	dc         *dc.GameDC
	entity     *entity.Game
	dispatcher *Dispatcher
	flushStop  chan struct{}
	loadErr    error
	released   bool
}

type flushTick struct{}

// gameReleased 通知 manager 这一局的 actor 要退出了。
type gameReleased struct {
	id  entity.GameID
	pid *actor.PID
}

func (flushTick) NotInfluenceReceiveTimeout() {}

// NewGameActor create 为 true 时新开一局，否则从仓储加载。
func NewGameActor(gameID entity.GameID, create bool, repo port.GameRepository, opts Options) *GameActor {
	return &GameActor{
		state:      None,
		gameID:     gameID,
		create:     create,
		dc:         dc.NewGameDC(repo, opts.Settings, opts.FlushEvery),
		dispatcher: NewDispatcher(),
	}
}

func (p *GameActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopFlushLoop()
		p.closeDC(ctx)
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopFlushLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		// 重启后新实例从仓储加载，先把内存里的改动写完
		p.stopFlushLoop()
		p.closeDC(ctx)
		p.state = Init
		return
	case flushTick:
		if p.state != Online {
			return
		}
		if err := p.dc.Flush(context.TODO()); err != nil {
			ctx.Logger().Error("game periodic flush failed", "game_id", int64(p.gameID), "err", err)
		}
		return
	case messages.GameMessage:
		if msg == nil {
			ctx.Respond(fail(errNilRequest))
			return
		}

		switch p.state {
		case Online:
			p.dispatcher.Dispatch(ctx, p, msg)
		case Failed:
			// 已经排队的请求都拿到同一个错误
			p.release(ctx)
			ctx.Respond(fail(p.loadErr))
		default:
			ctx.Respond(fail(errGameOffline))
		}
	default:
		return
	}
}

func (p *GameActor) init(ctx actor.Context) {
	if p.create {
		p.entity = p.dc.Create(p.gameID)
		if err := p.dc.Flush(context.TODO()); err != nil {
			ctx.Logger().Error("game initial flush failed", "game_id", int64(p.gameID), "err", err)
		}
	} else {
		e, err := p.dc.Load(context.TODO(), p.gameID)
		if err != nil {
			p.state = Failed
			p.loadErr = err
			return
		}
		p.entity = e
	}
	p.state = Online
	p.startFlushLoop(ctx)
}

// release 先让 manager 忘掉自己再退出，之后的新请求会起一个新 actor 重新加载。
func (p *GameActor) release(ctx actor.Context) {
	if p.released {
		return
	}
	p.released = true
	ctx.Send(ctx.Parent(), &gameReleased{id: p.gameID, pid: ctx.Self()})
	ctx.Poison(ctx.Self())
}

// retire 让 actor 不再处理玩法请求，排队中的请求都拿到 err，然后退出。
func (p *GameActor) retire(ctx actor.Context, err error) {
	p.stopFlushLoop()
	p.state = Failed
	p.loadErr = err
	p.release(ctx)
}

func (p *GameActor) closeDC(ctx actor.Context) {
	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := p.dc.Close(closeCtx); err != nil {
		ctx.Logger().Error("game dc close failed", "game_id", int64(p.gameID), "err", err)
	}
}

func (p *GameActor) GameID() entity.GameID {
	return p.gameID
}

func (p *GameActor) Entity() *entity.Game {
	return p.entity
}

func (p *GameActor) DC() *dc.GameDC {
	return p.dc
}

func (p *GameActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *GameActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}
