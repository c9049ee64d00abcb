package config

type AnimationDef struct {
	First int
	Last  int
	Step  int
	Speed float32
}

// SpriteSheet describes a character sheet: one row per state, fixed frame size
type SpriteSheet struct {
	Path        string
	FrameWidth  int
	FrameHeight int
	Rows        map[StateID]int
}

// CharacterAnimations maps a character key (e.g., "player")
// to its specific set of animation definitions.
var CharacterAnimations = map[string]map[StateID]AnimationDef{
	"player": {
		Idle:    {First: 0, Last: 3, Step: 1, Speed: 8},
		Running: {First: 0, Last: 5, Step: 1, Speed: 5},
		Jump:    {First: 0, Last: 1, Step: 1, Speed: 10},
		Fall:    {First: 0, Last: 1, Step: 1, Speed: 10},
	},
	"enemy": {
		Running: {First: 0, Last: 3, Step: 1, Speed: 6},
		Dead:    {First: 0, Last: 0, Step: 1, Speed: 0},
	},
}

var CharacterSheets = map[string]SpriteSheet{
	"player": {
		Path:        "sprites/player.png",
		FrameWidth:  64,
		FrameHeight: 64,
		Rows:        map[StateID]int{Idle: 0, Running: 1, Jump: 2, Fall: 3},
	},
	"enemy": {
		Path:        "sprites/enemy.png",
		FrameWidth:  64,
		FrameHeight: 64,
		Rows:        map[StateID]int{Running: 0, Dead: 1},
	},
}
