package combat

import "errors"

type Event struct {
	T       float64        `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EvSpawn    = "Spawn"
	EvHit      = "Hit"
	EvBaseHit  = "BaseHit"
	EvKill     = "Kill"
	EvUpgrade  = "Upgrade"
	EvGameOver = "GameOver"
	EvLogLine  = "LogLine"
)

type Side int

const (
	Player Side = iota
	Enemy
)

func (s Side) String() string {
	if s == Enemy {
		return "enemy"
	}
	return "player"
}

func (s Side) Opponent() Side {
	if s == Enemy {
		return Player
	}
	return Enemy
}

func ParseSide(s string) (Side, error) {
	switch s {
	case "player", "":
		return Player, nil
	case "enemy", "cpu":
		return Enemy, nil
	}
	return Player, errors.New("unknown side " + s)
}

type Status int

const (
	Ongoing Status = iota
	PlayerDefeated
	EnemyDefeated
)

func (s Status) String() string {
	switch s {
	case PlayerDefeated:
		return "playerDefeated"
	case EnemyDefeated:
		return "enemyDefeated"
	}
	return "ongoing"
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Entity is the read-only view a renderer or another unit may take of any
// object on the lane.
type Entity interface {
	ID() string
	Pos() Vec2
	Width() float64
	Height() float64
	Health() int
	MaxHealth() int
	IsEnemy() bool
}

var (
	ErrInvalidUpgrade   = errors.New("attribute already at max level")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnknownArchetype = errors.New("unknown unit archetype")
	ErrGameOver         = errors.New("match already decided")
	ErrLaneFull         = errors.New("no room left in lane")
)
