package actor

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"GeoPits/internal/shared/actor/messages"
	"GeoPits/internal/shared/transport"
	"GeoPits/internal/world/actors"
	"GeoPits/internal/world/app/port"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	// 配置热更新会改它
	timeout atomic.Int64
}

func NewRuntime(repo port.GameRepository, opts actors.Options, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	// manager 只做路由，每局的活都在各自的 GameActor 里
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(repo, opts)
	})
	manager := root.Spawn(managerProps)

	r := &Runtime{
		system:  system,
		root:    root,
		manager: manager,
	}
	r.timeout.Store(int64(askTimeout))
	return r
}

// SetAskTimeout 调整默认 Ask 超时，<=0 忽略。
func (r *Runtime) SetAskTimeout(d time.Duration) {
	if r == nil || d <= 0 {
		return
	}
	r.timeout.Store(int64(d))
}

func (r *Runtime) AskTimeout() time.Duration {
	if r == nil {
		return defaultAskTimeout
	}
	if d := time.Duration(r.timeout.Load()); d > 0 {
		return d
	}
	return defaultAskTimeout
}

// Shutdown 停掉 manager（连带所有 GameActor，各自 flush 完再退出）。
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		// StopFuture 自带 10s 超时
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// Ask 把请求发给对应的 GameActor 并等待应答。玩法拒绝原样返回（errx），
// actor 层面的失败包成 RuntimeError。
func (r *Runtime) Ask(ctx context.Context, msg messages.GameMessage) (*messages.GameReply, error) {
	if msg == nil {
		return nil, &RuntimeError{
			Code:    transport.InvalidParam,
			Message: "game request 不能为空",
		}
	}

	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return nil, err
	}

	reply, ok := res.(*messages.GameReply)
	if !ok || reply == nil {
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 返回类型非法",
		}
	}
	if reply.Err != nil {
		return reply, reply.Err
	}
	return reply, nil
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if pid == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor pid 为空"}
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		code := transport.WorldUnavailable
		if errors.Is(err, protoactor.ErrTimeout) {
			code = transport.WorldTimeout
		}
		return nil, &RuntimeError{
			Code:    code,
			Message: "actor 请求失败",
			Cause:   err,
		}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	timeout := r.AskTimeout()
	if ctx == nil {
		return timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < timeout {
		return remain
	}
	return timeout
}

func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
