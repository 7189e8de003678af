package procgen

import "errors"

var (
	ErrTileDataMissing = errors.New("procgen: tile data not loaded")
	ErrNoChunks        = errors.New("procgen: no streamed chunk to anchor on")
	ErrInvalidTileSize = errors.New("procgen: tile size must be positive")
)
