// internal/ai/decision.go
package ai

import (
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/types"
)

// FireRequest — запрос на выстрел одного слота по точке прицеливания.
type FireRequest struct {
	Slot   int
	AimX   float64
	AimY   float64
	Target types.UnitID
}

// CombatDecision — итог одного тика принятия решений: вектор движения,
// направление носа и ноль или больше запросов на выстрел. Решение чистое:
// применяет его оркестратор боя, контроллер состояние мира не трогает.
type CombatDecision struct {
	MoveX, MoveY float64
	Facing       int // 0 — не менять
	Fire         []FireRequest
}

// DecisionInput — всё, что контроллер видит за тик. DesiredRange и функции
// досягаемости прокидываются оркестратором, чтобы обёртки-контроллеры могли
// их подменять, не зная внутренностей систем.
type DecisionInput struct {
	Unit  *component.Unit
	State *component.BattleState
	DT    float64

	DesiredRange float64
	BaseTargetX  float64
	BaseTargetY  float64

	CanShootAtAngle      func(slot int, aimX, aimY float64) bool
	EffectiveWeaponRange func(slot int) float64
}

// Controller — сменная стратегия стороны. Реализации обязаны быть
// детерминированными при фиксированном PRNG боя.
type Controller interface {
	Decide(in DecisionInput) CombatDecision
}

// ShotPlan — лучший найденный план выстрела за тик.
type ShotPlan struct {
	Slot   int
	AimX   float64
	AimY   float64
	Target types.UnitID
	Score  float64
}

// Blackboard — рабочая доска одного тика дерева. Живёт один тик.
type Blackboard struct {
	In       DecisionInput
	Target   *component.Unit // nil — целимся в базу
	Decision CombatDecision
	Plan     *ShotPlan
	Block    component.BlockReason
	Path     []string
}
