package dto

// Response 是所有 HTTP 接口的统一外层：{"code","msg","data"}。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func Success(code int, data any) Response {
	return Response{Code: code, Msg: "ok", Data: data}
}

func Error(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}

type MoveReq struct {
	Direction string `json:"direction" binding:"required"`
}

type LocateReq struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

type CollectReq struct {
	Token string `json:"token" binding:"required"`
}

// PitURI 是 /game/pits/:i/:j 的路径参数。
type PitURI struct {
	I *int `uri:"i" binding:"required"`
	J *int `uri:"j" binding:"required"`
}
