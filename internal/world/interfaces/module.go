package interfaces

import (
	"GeoPits/internal/shared/session"
	transporthttp "GeoPits/internal/shared/transport/http"
	"GeoPits/internal/shared/transport/ws"
	"GeoPits/internal/world/app"
	httphandler "GeoPits/internal/world/interfaces/handler/http"
	wshandler "GeoPits/internal/world/interfaces/handler/ws"
	"GeoPits/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// Module 把对局的 HTTP 和 WS 接口组装在一起，ws 入口挂在 GET /game/ws。
type Module struct {
	wsHandler   *wshandler.WsHandler
	httpHandler *httphandler.HttpHandler
	router      *ws.Router
}

func New(s *app.GameService, sess session.Manager, log logx.Logger) *Module {
	m := &Module{
		wsHandler: wshandler.NewWsHandler(s, sess, log),
		router:    ws.NewRouter(log),
	}
	m.router.Register(m)
	m.httpHandler = httphandler.NewHttpHandler(s, ws.NewServer(m.router, log, m.wsHandler.OnConnect), log)
	return m
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
