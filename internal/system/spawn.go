// internal/system/spawn.go
package system

import (
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/event"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// SpawnFunc собирает юнита из шаблона и ставит его на арену. Инъектируется
// оркестратором боя: сама фабрика живёт уровнем выше, иначе возник бы цикл
// импортов система↔приложение.
type SpawnFunc func(templateID string, side types.Side) *component.Unit

// SpawnSystem ведёт экономику противника: накопление газа, таймер волны,
// потолок армии и взвешенный выбор шаблона.
type SpawnSystem struct {
	rng        *utils.PRNGService
	dispatcher *event.Dispatcher
	spawn      SpawnFunc
}

func NewSpawnSystem(rng *utils.PRNGService, dispatcher *event.Dispatcher, spawn SpawnFunc) *SpawnSystem {
	return &SpawnSystem{rng: rng, dispatcher: dispatcher, spawn: spawn}
}

func (s *SpawnSystem) Update(state *component.BattleState, dt float64) {
	eco := &state.Economy
	eco.Gas = utils.Clamp(eco.Gas+eco.GasRate*dt, 0, config.EnemyGasCap)

	eco.SpawnTimer -= dt
	if eco.SpawnTimer > 0 {
		return
	}
	eco.SpawnTimer = config.EnemySpawnPeriod

	if state.AliveCount(types.SideEnemy) >= eco.ArmyCap {
		return
	}
	if len(eco.Spawns) == 0 {
		return
	}

	id := s.rng.ChooseWeighted(eco.Spawns)
	tmpl, ok := defs.TemplateDefs[id]
	if !ok || eco.Gas < tmpl.GasCost {
		return
	}
	u := s.spawn(id, types.SideEnemy)
	if u == nil {
		return
	}
	eco.Gas -= tmpl.GasCost

	s.dispatcher.Dispatch(event.Event{Type: event.UnitDeployed, Data: event.UnitPayload{
		UnitID:   u.ID,
		Side:     u.Side,
		Template: u.Template,
	}})
}
