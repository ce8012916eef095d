// internal/component/battle_state.go
package component

import (
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/types"
)

// Outcome — исход боя. nil, пока бой идёт; после установки состояние
// замораживается и дальнейшие Update становятся no-op.
type Outcome struct {
	Victory bool
	Reason  string
}

// EnemyEconomy — экономика появления юнитов противника: газ, потолок армии
// и таймер. Параметры выводятся из сложности узла при старте боя.
type EnemyEconomy struct {
	Gas        float64
	GasRate    float64
	ArmyCap    int
	SpawnTimer float64
	Spawns     []defs.SpawnEntry
}

// BattleState — единственный изменяемый агрегат симуляции. Все мутации
// происходят синхронно внутри Update/Start/DeployUnit; порядок юнитов и
// снарядов в срезах стабилен, что и даёт воспроизводимость при общем сиде.
type BattleState struct {
	Started bool
	Time    float64
	Ticks   int

	Units       []*Unit
	Projectiles []*Projectile
	Debris      []*DebrisParticle
	Flashes     []*HitFlash

	PlayerBase *Base
	EnemyBase  *Base

	PlayerGas float64
	Economy   EnemyEconomy

	Outcome *Outcome
}

// UnitByID возвращает юнита по ID или nil.
func (s *BattleState) UnitByID(id types.UnitID) *Unit {
	for _, u := range s.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// BaseFor возвращает базу указанной стороны.
func (s *BattleState) BaseFor(side types.Side) *Base {
	if side == types.SidePlayer {
		return s.PlayerBase
	}
	return s.EnemyBase
}

// AliveCount возвращает число живых юнитов стороны.
func (s *BattleState) AliveCount(side types.Side) int {
	n := 0
	for _, u := range s.Units {
		if u.Alive && u.Side == side {
			n++
		}
	}
	return n
}

// HasArmedDefender сообщает, остался ли у стороны живой юнит с живым
// оружейным модулем. Пока такой есть — база стороны неуязвима.
func (s *BattleState) HasArmedDefender(side types.Side) bool {
	for _, u := range s.Units {
		if !u.Alive || u.Side != side {
			continue
		}
		if u.HasOperationalWeapons() {
			return true
		}
	}
	return false
}
