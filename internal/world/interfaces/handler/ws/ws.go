package ws

import (
	"context"
	"net/http"

	"GeoPits/internal/shared/session"
	"GeoPits/internal/shared/transport"
	"GeoPits/internal/shared/transport/http/middleware"
	"GeoPits/internal/shared/transport/ws"
	"GeoPits/internal/world/app"
	"GeoPits/internal/world/interfaces/handler"
	"GeoPits/modules/kit/logx"
)

type WsHandler struct {
	service *app.GameService
	session session.Manager
	log     logx.Logger
}

func NewWsHandler(s *app.GameService, sess session.Manager, log logx.Logger) *WsHandler {
	return &WsHandler{service: s, session: sess, log: log}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("game")
	g.Handle("view", h.view)
	g.Handle("move", h.move)
	g.Handle("locate", h.locate)
	g.Handle("reset", h.reset)
	g.Handle("pits", h.pits)
	g.Handle("collect", h.collect)
	g.Handle("deposit", h.deposit)
}

// OnConnect 把新连接绑到 token 里的对局上；没有对局的连接直接断开。
func (h *WsHandler) OnConnect(r *http.Request, conn ws.WSConn) {
	gid, ok := middleware.GameIDFromContext(r.Context())
	if !ok {
		conn.Close()
		return
	}
	h.session.Bind(gid, conn)
}

type moveReq struct {
	Direction string `json:"direction"`
}

// 指针字段：缺省和 0 要区分开，和 HTTP 的 binding:"required" 一致
type locateReq struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type pitReq struct {
	I     *int   `json:"i"`
	J     *int   `json:"j"`
	Token string `json:"token"`
}

func (h *WsHandler) view(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	gid, ok := h.gameID(req, resp)
	if !ok {
		return
	}
	view, err := h.service.View(ctx, gid)
	h.respond(ctx, resp, view, err)
}

func (h *WsHandler) move(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	gid, ok := h.gameID(req, resp)
	if !ok {
		return
	}
	var in moveReq
	if err := ws.Bind(req, &in); err != nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	view, err := h.service.Move(ctx, gid, in.Direction)
	h.respond(ctx, resp, view, err)
}

func (h *WsHandler) locate(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	gid, ok := h.gameID(req, resp)
	if !ok {
		return
	}
	var in locateReq
	if err := ws.Bind(req, &in); err != nil || in.Lat == nil || in.Lng == nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	view, err := h.service.Locate(ctx, gid, *in.Lat, *in.Lng)
	h.respond(ctx, resp, view, err)
}

func (h *WsHandler) reset(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	gid, ok := h.gameID(req, resp)
	if !ok {
		return
	}
	view, err := h.service.Reset(ctx, gid)
	h.respond(ctx, resp, view, err)
}

func (h *WsHandler) pits(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	gid, ok := h.gameID(req, resp)
	if !ok {
		return
	}
	res, err := h.service.Pits(ctx, gid)
	h.respond(ctx, resp, res, err)
}

func (h *WsHandler) collect(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	gid, ok := h.gameID(req, resp)
	if !ok {
		return
	}
	var in pitReq
	if err := ws.Bind(req, &in); err != nil || in.I == nil || in.J == nil || in.Token == "" {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.service.Collect(ctx, gid, *in.I, *in.J, in.Token)
	h.respond(ctx, resp, res, err)
}

func (h *WsHandler) deposit(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	gid, ok := h.gameID(req, resp)
	if !ok {
		return
	}
	var in pitReq
	if err := ws.Bind(req, &in); err != nil || in.I == nil || in.J == nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.service.Deposit(ctx, gid, *in.I, *in.J)
	h.respond(ctx, resp, res, err)
}

func (h *WsHandler) gameID(req *ws.WsMsgReq, resp *ws.WsMsgResp) (int64, bool) {
	if req == nil || req.Conn == nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return 0, false
	}
	gid, ok := h.session.GetGameID(req.Conn)
	if !ok {
		h.fail(resp, transport.Unauthorized, "session 无效")
		return 0, false
	}
	return gid, true
}

func (h *WsHandler) respond(ctx context.Context, resp *ws.WsMsgResp, data any, err error) {
	if err != nil {
		h.error(ctx, resp, err)
		return
	}
	h.ok(resp, data)
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, err error) {
	code, msg := handler.HandleError(ctx, h.log, err)
	h.fail(resp, code, msg)
}
