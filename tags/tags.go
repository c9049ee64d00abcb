package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Enemy      = donburi.NewTag().SetName("Enemy")
	Coin       = donburi.NewTag().SetName("Coin")
	Checkpoint = donburi.NewTag().SetName("Checkpoint")
)
