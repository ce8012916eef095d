// internal/system/mobility.go
package system

import (
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/event"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// MobilitySystem агрегирует двигатели в характеристики подвижности и
// интегрирует движение. Агрегация пересчитывается каждый тик: двигатели
// умирают вместе с ячейками, и подвижность должна падать сразу.
type MobilitySystem struct {
	rng        *utils.PRNGService
	dispatcher *event.Dispatcher
}

func NewMobilitySystem(rng *utils.PRNGService, dispatcher *event.Dispatcher) *MobilitySystem {
	return &MobilitySystem{rng: rng, dispatcher: dispatcher}
}

// Refresh пересчитывает Mobility всех живых юнитов.
func (s *MobilitySystem) Refresh(state *component.BattleState) {
	for _, u := range state.Units {
		if u.Alive {
			s.refreshUnit(u)
		}
	}
}

func (s *MobilitySystem) refreshUnit(u *component.Unit) {
	mass := 0.0
	for _, c := range u.Cells {
		if c.Destroyed {
			continue
		}
		if mat, ok := defs.MaterialDefs[c.Material]; ok {
			mass += mat.Mass
		}
	}
	power := 0.0
	capWeighted := 0.0
	for _, a := range u.Attachments {
		if !a.Alive {
			continue
		}
		part, ok := defs.PartDefs[a.Part]
		if !ok {
			continue
		}
		mass += part.Mass
		if part.Engine != nil {
			power += part.Engine.Power
			// Потолок скорости взвешивается мощностью: сильный двигатель
			// определяет профиль, слабый лишь подправляет.
			capWeighted += part.Engine.Power * part.Engine.SpeedCap
		}
	}
	if mass < 1 {
		mass = 1
	}

	m := &u.Mobility
	m.Mass = mass
	m.Power = power

	if power <= 0 {
		m.RawSpeed = 0
		m.MaxSpeed = 0
		m.Accel = 0
		m.TurnDrag = config.TurnDragMin
		s.checkAirLift(u)
		return
	}

	speedCap := capWeighted / power
	m.RawSpeed = power / mass * config.SpeedScale
	m.MaxSpeed = utils.Clamp(m.RawSpeed, 0, speedCap)
	m.Accel = utils.Clamp(config.AccelFactor*m.RawSpeed, 0, config.AccelSpeedCapFactor*m.MaxSpeed)

	ratio := 0.0
	if m.MaxSpeed > 0 {
		ratio = utils.Clamp(u.Speed()/m.MaxSpeed, 0, 1)
	}
	m.TurnDrag = utils.Lerp(config.TurnDragMin, config.TurnDragMax, ratio)

	s.checkAirLift(u)
}

// checkAirLift переводит воздушный юнит в падение, если подъёмной скорости
// больше нет. Состояние падения необратимо.
func (s *MobilitySystem) checkAirLift(u *component.Unit) {
	if u.Type != types.UnitAir || u.Drop != nil {
		return
	}
	if u.Mobility.MaxSpeed >= config.AirLiftSpeedThreshold {
		return
	}
	u.Drop = &component.AirDrop{
		LandingY: s.rng.Range(config.GroundY-24, config.GroundY),
	}
}

// Apply применяет решение о движении к юниту: демпфирование, разгон,
// ограничение скорости и интеграция позиции. moveX/moveY ∈ [-1,1].
func (s *MobilitySystem) Apply(u *component.Unit, moveX, moveY, dt float64) {
	if u.Drop != nil {
		return // падение интегрируется в UpdateDrop
	}
	m := &u.Mobility

	// Демпфирование и разгон считаются на тик: при покадровом множителе
	// TurnDrag крейсерская скорость выходит на MaxSpeed, а не на долю от него.
	u.VX = u.VX*m.TurnDrag + moveX*m.Accel
	if u.Type == types.UnitAir {
		u.VY = u.VY*m.TurnDrag + moveY*m.Accel
	} else {
		u.VY = 0
	}

	if sp := u.Speed(); sp > m.MaxSpeed && sp > 0 {
		k := m.MaxSpeed / sp
		u.VX *= k
		u.VY *= k
	}

	u.X = utils.Clamp(u.X+u.VX*dt, config.CellSize, config.ArenaWidth-config.CellSize)
	if u.Type == types.UnitAir {
		u.Y = utils.Clamp(u.Y+u.VY*dt, config.AirMinY, config.AirMaxY)
	} else {
		u.Y = config.GroundY
	}
}

// UpdateDrop интегрирует свободное падение сбитых воздушных юнитов.
// Касание земли — гибель независимо от остатка структуры.
func (s *MobilitySystem) UpdateDrop(state *component.BattleState, dt float64) {
	for _, u := range state.Units {
		if !u.Alive || u.Drop == nil {
			continue
		}
		u.VY += config.AirDropGravity * dt
		u.X += u.VX * dt
		u.Y += u.VY * dt
		if u.Y >= u.Drop.LandingY {
			u.Y = u.Drop.LandingY
			ScatterDebris(state, s.rng, u.X, u.Y, config.DebrisPerCell*u.AliveCellCount())
			KillUnit(u, "crash", s.dispatcher)
		}
	}
}
