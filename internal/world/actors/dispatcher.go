package actors

import (
	"reflect"

	"GeoPits/internal/shared/actor/messages"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, GH.HandleCreateGame)
	register(d, GH.HandleGetView)
	register(d, GH.HandleMove)
	register(d, GH.HandleLocate)
	register(d, GH.HandleReset)
	register(d, GH.HandleListPits)
	register(d, GH.HandleCollect)
	register(d, GH.HandleDeposit)
	register(d, GH.HandleExportMomento)
	register(d, GH.HandleImportMomento)
	register(d, GH.HandleWipe)
	register(d, GH.HandleDeleteGame)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *GameActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Has(req any) bool {
	_, ok := d.handlers[reflect.TypeOf(req)]
	return ok
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *GameActor, req messages.GameMessage) {
	if req == nil {
		ctx.Respond(fail(errNilRequest))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(fail(errNoHandler.WithData("type", bodyType.String())))
		return
	}

	if bodyType != handler.reqType {
		ctx.Respond(fail(errNoHandler.WithData("type", bodyType.String())))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
