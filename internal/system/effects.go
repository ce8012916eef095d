// internal/system/effects.go
package system

import (
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/utils"
)

// EffectSystem обновляет визуальные эффекты: осколки и вспышки.
// На исход боя не влияет, но разброс идёт через общий PRNG, поэтому
// система живёт в общем тике, а не в рендере.
type EffectSystem struct{}

func NewEffectSystem() *EffectSystem {
	return &EffectSystem{}
}

func (s *EffectSystem) Update(state *component.BattleState, dt float64) {
	aliveDebris := state.Debris[:0]
	for _, d := range state.Debris {
		d.TTL -= dt
		if d.TTL <= 0 {
			continue
		}
		d.VY += config.Gravity * dt
		d.X += d.VX * dt
		d.Y += d.VY * dt
		if d.Y > config.GroundY {
			d.Y = config.GroundY
			d.VY = 0
			d.VX *= 0.6
		}
		aliveDebris = append(aliveDebris, d)
	}
	state.Debris = aliveDebris

	aliveFlashes := state.Flashes[:0]
	for _, f := range state.Flashes {
		f.TTL -= dt
		if f.TTL > 0 {
			aliveFlashes = append(aliveFlashes, f)
		}
	}
	state.Flashes = aliveFlashes
}

// ScatterDebris рассыпает n осколков из точки со случайными скоростями.
func ScatterDebris(state *component.BattleState, rng *utils.PRNGService, x, y float64, n int) {
	for i := 0; i < n; i++ {
		state.Debris = append(state.Debris, &component.DebrisParticle{
			X:   x,
			Y:   y,
			VX:  rng.Range(-config.DebrisScatter, config.DebrisScatter),
			VY:  rng.Range(-config.DebrisScatter*1.4, -config.DebrisScatter*0.3),
			TTL: config.DebrisTTL,
		})
	}
}
