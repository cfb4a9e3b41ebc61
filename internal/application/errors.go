package application

import "errors"

var ErrNoData = errors.New("no data")
var ErrNotReady = errors.New("not ready")
var ErrBadRequest = errors.New("bad request")
