package app

import (
	"context"

	"GeoPits/internal/shared/actor/messages"
)

// GameRuntime 是 actor 运行时的入口（actor.Runtime 实现）。
type GameRuntime interface {
	Ask(ctx context.Context, msg messages.GameMessage) (*messages.GameReply, error)
}

// Notifier 把变更推给该局的在线连接，删档后解绑（session.Manager 实现）。
type Notifier interface {
	Broadcast(gid int64, name string, data any) int
	UnbindGame(gid int64)
}

// IDGenerator 生成新对局 id。
type IDGenerator func() (int64, error)

// TokenIssuer 给对局签发访问 token。
type TokenIssuer func(gid int64) (string, error)
