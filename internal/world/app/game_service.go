package app

import (
	"context"
	"strconv"

	"GeoPits/internal/shared/actor/messages"
	"GeoPits/modules/kit/errx"
)

const (
	// PushGameChanged 是每次变更后推给客户端的消息名。
	PushGameChanged = "game.changed"
	// PushGameDeleted 删档后推一次，随后连接与该局解绑。
	PushGameDeleted = "game.deleted"
)

type CreateResult struct {
	Token string             `json:"token"`
	View  *messages.GameView `json:"view"`
}

type PitsResult struct {
	View *messages.GameView `json:"view"`
	Pits []messages.PitView `json:"pits"`
}

type TokenResult struct {
	Token string             `json:"token"`
	View  *messages.GameView `json:"view"`
}

// GameService 把接口层的调用翻译成 actor 消息，变更成功后广播新视图。
type GameService struct {
	runtime  GameRuntime
	notifier Notifier
	nextID   IDGenerator
	issue    TokenIssuer
}

func NewGameService(rt GameRuntime, n Notifier, nextID IDGenerator, issue TokenIssuer) *GameService {
	return &GameService{
		runtime:  rt,
		notifier: n,
		nextID:   nextID,
		issue:    issue,
	}
}

func (s *GameService) Create(ctx context.Context) (*CreateResult, error) {
	id, err := s.nextID()
	if err != nil {
		return nil, errx.ErrInternal.WithCause(err)
	}
	reply, err := s.runtime.Ask(ctx, &messages.CreateGame{GameBase: base(id)})
	if err != nil {
		return nil, err
	}
	token, err := s.issue(id)
	if err != nil {
		return nil, errx.ErrInternal.WithCause(err)
	}
	return &CreateResult{Token: token, View: reply.View}, nil
}

func (s *GameService) View(ctx context.Context, gid int64) (*messages.GameView, error) {
	reply, err := s.runtime.Ask(ctx, &messages.GetView{GameBase: base(gid)})
	if err != nil {
		return nil, err
	}
	return reply.View, nil
}

func (s *GameService) Move(ctx context.Context, gid int64, direction string) (*messages.GameView, error) {
	return s.mutate(ctx, gid, &messages.Move{GameBase: base(gid), Direction: direction})
}

func (s *GameService) Locate(ctx context.Context, gid int64, lat, lng float64) (*messages.GameView, error) {
	return s.mutate(ctx, gid, &messages.Locate{GameBase: base(gid), Lat: lat, Lng: lng})
}

func (s *GameService) Reset(ctx context.Context, gid int64) (*messages.GameView, error) {
	return s.mutate(ctx, gid, &messages.Reset{GameBase: base(gid)})
}

func (s *GameService) Wipe(ctx context.Context, gid int64) (*messages.GameView, error) {
	return s.mutate(ctx, gid, &messages.Wipe{GameBase: base(gid)})
}

func (s *GameService) ImportMomento(ctx context.Context, gid int64, raw []byte) (*messages.GameView, error) {
	return s.mutate(ctx, gid, &messages.ImportMomento{GameBase: base(gid), Momento: raw})
}

func (s *GameService) ExportMomento(ctx context.Context, gid int64) ([]byte, error) {
	reply, err := s.runtime.Ask(ctx, &messages.ExportMomento{GameBase: base(gid)})
	if err != nil {
		return nil, err
	}
	return reply.Momento, nil
}

func (s *GameService) Pits(ctx context.Context, gid int64) (*PitsResult, error) {
	reply, err := s.runtime.Ask(ctx, &messages.ListPits{GameBase: base(gid)})
	if err != nil {
		return nil, err
	}
	return &PitsResult{View: reply.View, Pits: reply.Pits}, nil
}

func (s *GameService) Collect(ctx context.Context, gid int64, i, j int, token string) (*TokenResult, error) {
	reply, err := s.runtime.Ask(ctx, &messages.Collect{GameBase: base(gid), I: i, J: j, Token: token})
	if err != nil {
		return nil, err
	}
	s.notify(gid, reply.View)
	return &TokenResult{Token: reply.Token, View: reply.View}, nil
}

func (s *GameService) Deposit(ctx context.Context, gid int64, i, j int) (*TokenResult, error) {
	reply, err := s.runtime.Ask(ctx, &messages.Deposit{GameBase: base(gid), I: i, J: j})
	if err != nil {
		return nil, err
	}
	s.notify(gid, reply.View)
	return &TokenResult{Token: reply.Token, View: reply.View}, nil
}

// Delete 删档。成功后在线连接收到 game.deleted 并与该局解绑，token 之后只会拿到对局不存在。
func (s *GameService) Delete(ctx context.Context, gid int64) error {
	if _, err := s.runtime.Ask(ctx, &messages.DeleteGame{GameBase: base(gid)}); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.Broadcast(gid, PushGameDeleted, map[string]string{"game_id": strconv.FormatInt(gid, 10)})
		s.notifier.UnbindGame(gid)
	}
	return nil
}

func (s *GameService) mutate(ctx context.Context, gid int64, msg messages.GameMessage) (*messages.GameView, error) {
	reply, err := s.runtime.Ask(ctx, msg)
	if err != nil {
		return nil, err
	}
	s.notify(gid, reply.View)
	return reply.View, nil
}

func (s *GameService) notify(gid int64, view *messages.GameView) {
	if s.notifier == nil || view == nil {
		return
	}
	s.notifier.Broadcast(gid, PushGameChanged, view)
}

func base(gid int64) messages.GameBase {
	return messages.GameBase{GameId: gid}
}
