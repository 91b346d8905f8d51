package actors

import (
	"context"

	"GeoPits/internal/shared/actor/messages"
	"GeoPits/internal/world/entity"
	"GeoPits/internal/world/entity/domain"

	"github.com/asynkron/protoactor-go/actor"
)

type GameHandler struct{}

var GH = &GameHandler{}

func (h *GameHandler) HandleCreateGame(ctx actor.Context, p *GameActor, req *messages.CreateGame) {
	ctx.Respond(viewReply(p.entity))
}

func (h *GameHandler) HandleGetView(ctx actor.Context, p *GameActor, req *messages.GetView) {
	ctx.Respond(viewReply(p.entity))
}

func (h *GameHandler) HandleMove(ctx actor.Context, p *GameActor, req *messages.Move) {
	dir, err := domain.ParseDirection(req.Direction)
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	if err := p.entity.Move(dir); err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(viewReply(p.entity))
}

func (h *GameHandler) HandleLocate(ctx actor.Context, p *GameActor, req *messages.Locate) {
	if err := p.entity.Locate(entity.LatLng{Lat: req.Lat, Lng: req.Lng}); err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(viewReply(p.entity))
}

func (h *GameHandler) HandleReset(ctx actor.Context, p *GameActor, req *messages.Reset) {
	p.entity.Reset()
	ctx.Respond(viewReply(p.entity))
}

func (h *GameHandler) HandleListPits(ctx actor.Context, p *GameActor, req *messages.ListPits) {
	pits := p.entity.Pits()
	reply := viewReply(p.entity)
	reply.Pits = toPitViews(pits)
	ctx.Respond(reply)
}

func (h *GameHandler) HandleCollect(ctx actor.Context, p *GameActor, req *messages.Collect) {
	t, err := p.entity.Collect(entity.Cell{I: req.I, J: req.J}, req.Token)
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	reply := viewReply(p.entity)
	reply.Token = t.ID()
	ctx.Respond(reply)
}

func (h *GameHandler) HandleDeposit(ctx actor.Context, p *GameActor, req *messages.Deposit) {
	t, err := p.entity.Deposit(entity.Cell{I: req.I, J: req.J})
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	reply := viewReply(p.entity)
	reply.Token = t.ID()
	ctx.Respond(reply)
}

func (h *GameHandler) HandleExportMomento(ctx actor.Context, p *GameActor, req *messages.ExportMomento) {
	raw, err := p.entity.MarshalMomento()
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(&messages.GameReply{Momento: raw})
}

func (h *GameHandler) HandleImportMomento(ctx actor.Context, p *GameActor, req *messages.ImportMomento) {
	if err := p.entity.LoadMomento(req.Momento); err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(viewReply(p.entity))
}

func (h *GameHandler) HandleWipe(ctx actor.Context, p *GameActor, req *messages.Wipe) {
	p.entity.Wipe()
	ctx.Respond(viewReply(p.entity))
}

// HandleDeleteGame 删档失败时记录还在，actor 同样退出，下次请求从仓储重新加载。
func (h *GameHandler) HandleDeleteGame(ctx actor.Context, p *GameActor, req *messages.DeleteGame) {
	delCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	err := p.dc.Delete(delCtx)
	cancel()
	if err != nil {
		ctx.Logger().Error("game delete failed", "game_id", int64(p.gameID), "err", err)
		p.retire(ctx, err)
		ctx.Respond(fail(err))
		return
	}
	p.retire(ctx, entity.ErrGameNotFound)
	ctx.Respond(&messages.GameReply{})
}

func viewReply(g *entity.Game) *messages.GameReply {
	v := toGameView(g.View())
	return &messages.GameReply{View: &v}
}

func fail(err error) *messages.GameReply {
	return &messages.GameReply{Err: err}
}

func toGameView(v entity.GameView) messages.GameView {
	inv := make([]string, 0, len(v.Inventory))
	for _, t := range v.Inventory {
		inv = append(inv, t.ID())
	}
	return messages.GameView{
		GameId:         int64(v.GameID),
		Lat:            v.Position.Lat,
		Lng:            v.Position.Lng,
		Cell:           messages.Cell{I: v.Cell.I, J: v.Cell.J},
		Status:         v.Status,
		Inventory:      inv,
		GeneratedCells: v.GeneratedCells,
	}
}

func toPitViews(pits []entity.PitView) []messages.PitView {
	out := make([]messages.PitView, 0, len(pits))
	for _, pit := range pits {
		tokens := make([]string, 0, len(pit.Tokens))
		for _, t := range pit.Tokens {
			tokens = append(tokens, t.ID())
		}
		out = append(out, messages.PitView{
			Cell: messages.Cell{I: pit.Cell.I, J: pit.Cell.J},
			Key:  pit.Cell.Key(),
			Bounds: messages.Bounds{
				South: pit.Bounds.SouthWest.Lat,
				West:  pit.Bounds.SouthWest.Lng,
				North: pit.Bounds.NorthEast.Lat,
				East:  pit.Bounds.NorthEast.Lng,
			},
			Tokens: tokens,
		})
	}
	return out
}
