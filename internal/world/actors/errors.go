package actors

import "GeoPits/modules/kit/errx"

var (
	errNilRequest  = errx.ErrReqParamERR.WithData("reason", "nil request")
	errNoHandler   = errx.ErrReqParamERR.WithData("reason", "no handler for request")
	errGameOffline = errx.ErrUnavailable.WithData("reason", "game not online")
	errGameExists  = errx.ErrReqParamERR.WithData("reason", "game already exists")
)
