// internal/event/types.go
package event

import "go-battle-arena/internal/types"

const (
	BattleStarted   EventType = "BattleStarted"   // Бой начался
	BattleEnded     EventType = "BattleEnded"     // Бой завершён, исход зафиксирован
	UnitDeployed    EventType = "UnitDeployed"    // Юнит выставлен на арену
	UnitDestroyed   EventType = "UnitDestroyed"   // Юнит уничтожен
	CellDestroyed   EventType = "CellDestroyed"   // Структурная ячейка разрушена
	ProjectileFired EventType = "ProjectileFired" // Произведён выстрел
	ProjectileHit   EventType = "ProjectileHit"   // Снаряд попал в ячейку
	BaseDamaged     EventType = "BaseDamaged"     // База получила урон
)

// UnitPayload сопровождает события жизненного цикла юнита.
type UnitPayload struct {
	UnitID   types.UnitID
	Side     types.Side
	Template string
	Reason   string // для UnitDestroyed: "structure", "crash", "control-lost"
}

// CellPayload сопровождает CellDestroyed.
type CellPayload struct {
	UnitID types.UnitID
	CellID int
}

// HitPayload сопровождает ProjectileHit.
type HitPayload struct {
	Source   types.UnitID
	Target   types.UnitID
	CellID   int
	Damage   float64
	Intended bool // попадание пришлось в цель, по которой стреляли
}

// FirePayload сопровождает ProjectileFired.
type FirePayload struct {
	Source types.UnitID
	Slot   int
	Class  string
}

// BasePayload сопровождает BaseDamaged.
type BasePayload struct {
	Side   types.Side // сторона, чья база получила урон
	Damage float64
	HP     float64
}

// OutcomePayload сопровождает BattleEnded.
type OutcomePayload struct {
	Victory bool
	Reason  string
}
