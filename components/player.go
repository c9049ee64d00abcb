package components

import (
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Coins      int
	Score      int
	Checkpoint bool // A checkpoint has been reached this run
	RespawnX   int
	RespawnY   int
	Respawn    bool // Set by contact callbacks, consumed by UpdatePlayer
}

var Player = donburi.NewComponentType[PlayerData]()
