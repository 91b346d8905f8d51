package messages

// GameMessage 是发往某一局 GameActor 的请求，ManagerActor 按 GameID 路由。
type GameMessage interface {
	GameID() int64
}

type GameBase struct {
	GameId int64
}

func (g GameBase) GameID() int64 {
	return g.GameId
}

// CreateGame 用给定 id 新开一局（id 由调用方用 snowflake 生成）。
type CreateGame struct {
	GameBase
}

type GetView struct {
	GameBase
}

type Move struct {
	GameBase
	Direction string
}

type Locate struct {
	GameBase
	Lat, Lng float64
}

type Reset struct {
	GameBase
}

type ListPits struct {
	GameBase
}

type Collect struct {
	GameBase
	I, J  int
	Token string
}

type Deposit struct {
	GameBase
	I, J int
}

type ExportMomento struct {
	GameBase
}

type ImportMomento struct {
	GameBase
	Momento []byte
}

// Wipe 清档：棋盘、背包全部丢弃，玩家回到起点。
type Wipe struct {
	GameBase
}

// DeleteGame 删档：仓储里的记录删掉，actor 退出，之后这局就不存在了。
type DeleteGame struct {
	GameBase
}

// GameReply 是所有请求的统一应答。Err 是玩法拒绝或存储错误（errx），由接口层映射成业务码。
type GameReply struct {
	View    *GameView
	Pits    []PitView
	Token   string
	Momento []byte
	Err     error
}
