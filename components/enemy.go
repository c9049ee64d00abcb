package components

import (
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	ID          int // Spawn order, stable across save and load
	PatrolLeft  int
	PatrolRight int
	Speed       float64
	Alive       bool
}

var Enemy = donburi.NewComponentType[EnemyData]()
