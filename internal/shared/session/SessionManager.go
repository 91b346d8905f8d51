package session

import (
	"sync"

	"GeoPits/internal/shared/transport/ws"
)

// Manager 维护对局 id 与 ws 连接的关系。同一局可以同时开多个连接（多个标签页），
// 推送时逐个发。
type Manager interface {
	Bind(gid int64, conn ws.WSConn)
	UnbindConn(conn ws.WSConn)
	UnbindGame(gid int64)
	Conns(gid int64) []ws.WSConn
	GetGameID(conn ws.WSConn) (int64, bool)
	Broadcast(gid int64, name string, data any) int
}

type SessMgr struct {
	sync.RWMutex
	gid2conns map[int64]map[ws.WSConn]struct{}
	conn2gid  map[ws.WSConn]int64
	watched   map[ws.WSConn]struct{}
}

func NewSessMgr() Manager {
	return &SessMgr{
		gid2conns: make(map[int64]map[ws.WSConn]struct{}),
		conn2gid:  make(map[ws.WSConn]int64),
		watched:   make(map[ws.WSConn]struct{}),
	}
}

func (s *SessMgr) Bind(gid int64, conn ws.WSConn) {
	if conn == nil {
		return
	}
	s.Lock()
	defer s.Unlock()

	// 为每条连接只启动一次 watcher：连接关闭后自动解绑，避免 conn2gid 逐步膨胀
	if _, ok := s.watched[conn]; !ok {
		s.watched[conn] = struct{}{}
		go s.watchConnDone(conn)
	}

	if old, ok := s.conn2gid[conn]; ok && old != gid {
		s.removeLocked(old, conn)
	}
	conns := s.gid2conns[gid]
	if conns == nil {
		conns = make(map[ws.WSConn]struct{})
		s.gid2conns[gid] = conns
	}
	conns[conn] = struct{}{}
	s.conn2gid[conn] = gid
	conn.SetProperty(ws.ConnKeyGameID, gid)
}

func (s *SessMgr) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	s.UnbindConn(conn)
}

func (s *SessMgr) UnbindConn(conn ws.WSConn) {
	s.Lock()
	defer s.Unlock()
	delete(s.watched, conn)
	gid, ok := s.conn2gid[conn]
	if !ok {
		return
	}
	delete(s.conn2gid, conn)
	s.removeLocked(gid, conn)
}

func (s *SessMgr) removeLocked(gid int64, conn ws.WSConn) {
	conns := s.gid2conns[gid]
	delete(conns, conn)
	if len(conns) == 0 {
		delete(s.gid2conns, gid)
	}
}

func (s *SessMgr) UnbindGame(gid int64) {
	s.Lock()
	defer s.Unlock()
	for conn := range s.gid2conns[gid] {
		delete(s.conn2gid, conn)
	}
	delete(s.gid2conns, gid)
}

func (s *SessMgr) Conns(gid int64) []ws.WSConn {
	s.RLock()
	defer s.RUnlock()
	out := make([]ws.WSConn, 0, len(s.gid2conns[gid]))
	for conn := range s.gid2conns[gid] {
		out = append(out, conn)
	}
	return out
}

func (s *SessMgr) GetGameID(conn ws.WSConn) (int64, bool) {
	s.RLock()
	defer s.RUnlock()
	gid, ok := s.conn2gid[conn]
	return gid, ok
}

// Broadcast 推给该局的所有连接，返回推送条数。
func (s *SessMgr) Broadcast(gid int64, name string, data any) int {
	conns := s.Conns(gid)
	for _, conn := range conns {
		conn.Push(name, data)
	}
	return len(conns)
}
