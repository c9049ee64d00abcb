package components

import (
	"image"

	"github.com/yohamta/donburi"
)

type CoinData struct {
	ID        int         // Spawn order, stable across save and load
	Tile      bool        // Placed as a map tile rather than an object
	Cell      image.Point // Map cell of a tile coin
	Collected bool
}

var Coin = donburi.NewComponentType[CoinData]()
