package config

import "errors"

// Report settings errors
var (
	ErrUnknownColorMode = errors.New("unknown color mode, expected one of auto, always, never")
	ErrUnknownStrategy  = errors.New("unknown path search strategy, expected bfs or dfs")
)
