package ws

import (
	"net/http"

	"GeoPits/modules/kit/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ConnectHook 在升级成功、开始读写之前调用，用来把连接绑到对局上。
type ConnectHook func(r *http.Request, conn WSConn)

type Server struct {
	router    *Router
	log       logx.Logger
	onConnect ConnectHook
	upgrader  websocket.Upgrader
}

func NewServer(r *Router, l logx.Logger, onConnect ConnectHook) *Server {
	return &Server{
		router:    r,
		log:       l,
		onConnect: onConnect,
		upgrader: websocket.Upgrader{
			// 允许所有CORS跨域请求
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	s.log.Info("websocket upgrade success", zap.String("addr", wsConn.RemoteAddr().String()))

	wsServer := NewWsServer(wsConn, s.log)
	wsServer.Router(s.router)
	if s.onConnect != nil {
		s.onConnect(req, wsServer)
	}
	wsServer.Run()
}
