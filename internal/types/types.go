// internal/types/types.go
package types

// UnitID — уникальный идентификатор юнита в рамках одного боя.
// Нулевое значение означает "нет юнита".
type UnitID int

// Side — сторона боя.
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Opposite возвращает противоположную сторону.
func (s Side) Opposite() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// UnitType — тип юнита: наземный или воздушный.
type UnitType string

const (
	UnitGround UnitType = "ground"
	UnitAir    UnitType = "air"
)
