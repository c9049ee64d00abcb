package config

import "github.com/yohamta/donburi/ecs"

// Default is the ECS layer every gameplay entity is created on
const Default ecs.LayerID = 0

// StateID names what a character is doing, which picks its animation
type StateID int

const (
	StateNone StateID = iota
	Idle
	Running
	Jump
	Fall
	Dead
)

func (s StateID) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Jump:
		return "jump"
	case Fall:
		return "fall"
	case Dead:
		return "dead"
	}
	return "none"
}
