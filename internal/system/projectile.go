// internal/system/projectile.go
package system

import (
	"math"

	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/event"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// ProjectileSystem интегрирует полёт снарядов, проверяет коллизии свип-тестом
// по отрезку прошлый-тик→текущий-тик и раздаёт урон. Юниты и ячейки
// обходятся в порядке срезов — никакой зависимости от порядка map.
type ProjectileSystem struct {
	rng        *utils.PRNGService
	dispatcher *event.Dispatcher
}

func NewProjectileSystem(rng *utils.PRNGService, dispatcher *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{rng: rng, dispatcher: dispatcher}
}

func (s *ProjectileSystem) Update(state *component.BattleState, dt float64) {
	for _, p := range state.Projectiles {
		if p.Dead {
			continue
		}
		s.integrate(state, p, dt)
		s.collide(state, p)
		if !p.Dead {
			s.checkExpiry(state, p)
		}
	}

	// Уплотнение с сохранением порядка.
	alive := state.Projectiles[:0]
	for _, p := range state.Projectiles {
		if !p.Dead {
			alive = append(alive, p)
		}
	}
	state.Projectiles = alive
}

func (s *ProjectileSystem) integrate(state *component.BattleState, p *component.Projectile, dt float64) {
	p.PrevX, p.PrevY = p.X, p.Y

	if p.TurnRate > 0 {
		s.steer(state, p, dt)
	}

	p.VY += p.Gravity * dt
	p.X += p.VX * dt
	p.Y += p.VY * dt
	// Дистанция считается по горизонтали: Range оружия — горизонтальная
	// досягаемость, падение под гравитацией её не расходует.
	p.Traveled += math.Abs(p.X - p.PrevX)
	p.TTL -= dt
}

// checkExpiry гасит снаряд по итогам тика: время жизни, дальность, земля,
// границы арены. Вызывается после коллизий: нижний ряд ячеек наземного юнита
// стоит центром прямо на GroundY, и настильный выстрел обязан сперва дойти
// до ячеек, а не умереть о землю перед целью.
func (s *ProjectileSystem) checkExpiry(state *component.BattleState, p *component.Projectile) {
	if p.TTL <= 0 {
		if p.Blast != nil && p.Blast.Fuse == defs.FuseTimed {
			s.detonate(state, p, p.X, p.Y, 0)
		} else {
			s.expire(state, p)
		}
		return
	}
	if p.Traveled >= p.MaxDistance {
		s.expire(state, p)
		return
	}
	// Землёй считается уровень ниже подошвы нижнего ряда ячеек.
	if p.Y >= config.GroundY+config.CellSize/2 {
		// Удар о землю: фугас с контактным взрывателем детонирует.
		if p.Blast != nil && p.Blast.Fuse == defs.FuseImpact {
			s.detonate(state, p, p.X, config.GroundY, 0)
		} else {
			s.expire(state, p)
		}
		return
	}
	if p.X < 0 || p.X > config.ArenaWidth || p.Y < -60 {
		s.expire(state, p)
	}
}

// steer доворачивает самонаводящийся снаряд к цели с ограниченной угловой
// скоростью. Цель липкая: пока исходная жива, перенацеливания нет; после её
// гибели выбирается ближайший к точке прицеливания живой противник.
func (s *ProjectileSystem) steer(state *component.BattleState, p *component.Projectile, dt float64) {
	var tx, ty float64
	t := state.UnitByID(p.Target)
	if t == nil || !t.Alive {
		t = nil
		best := math.MaxFloat64
		for _, u := range state.Units {
			if !u.Alive || u.Side == p.Side {
				continue
			}
			if d := utils.Dist(p.AimX, p.AimY, u.X, u.Y); d < best {
				best = d
				t = u
			}
		}
		if t != nil {
			p.Target = t.ID
		}
	}
	if t == nil {
		return
	}
	tx, ty = t.X, t.Y

	speed := p.Speed()
	if speed <= 0 {
		return
	}
	cur := math.Atan2(p.VY, p.VX)
	delta := utils.Clamp(utils.NormalizeAngle(math.Atan2(ty-p.Y, tx-p.X)-cur), -p.TurnRate*dt, p.TurnRate*dt)
	cur += delta
	p.VX = math.Cos(cur) * speed
	p.VY = math.Sin(cur) * speed
}

func (s *ProjectileSystem) collide(state *component.BattleState, p *component.Projectile) {
	for _, u := range state.Units {
		if !u.Alive || u.Side == p.Side {
			continue
		}
		// Воздушная цель поражается только в узкой вертикальной полосе
		// вокруг её центра.
		if u.Type == types.UnitAir && math.Abs(p.Y-u.Y) > config.AirHitToleranceY {
			continue
		}
		if p.HasPierced(u.ID) {
			continue
		}
		cell := s.hitCell(u, p)
		if cell == nil {
			continue
		}

		if p.Target != 0 && u.ID == p.Target {
			p.HitIntended = true
		}
		destroyed := ApplyHitToUnit(u, cell.ID, p.Damage, s.dispatcher)
		s.dispatcher.Dispatch(event.Event{Type: event.ProjectileHit, Data: event.HitPayload{
			Source:   p.Source,
			Target:   u.ID,
			CellID:   cell.ID,
			Damage:   p.Damage,
			Intended: p.Target != 0 && u.ID == p.Target,
		}})
		state.Flashes = append(state.Flashes, &component.HitFlash{
			X: p.X, Y: p.Y, Radius: 6, TTL: config.HitFlashTTL,
		})
		if destroyed {
			ScatterDebris(state, s.rng, p.X, p.Y, config.DebrisPerCell)
		}

		if p.Blast != nil && p.Blast.Fuse == defs.FuseImpact {
			s.detonate(state, p, p.X, p.Y, u.ID)
			return
		}
		if u.Type == types.UnitAir && p.PierceAir {
			p.Pierced = append(p.Pierced, u.ID)
			continue // прошивает воздушную цель, летит дальше
		}
		p.Dead = true
		return
	}

	// База поражается, только когда у стороны не осталось вооружённых
	// защитников.
	for _, side := range []types.Side{types.SidePlayer, types.SideEnemy} {
		if side == p.Side {
			continue
		}
		base := state.BaseFor(side)
		if base == nil || !base.Contains(p.X, p.Y) || state.HasArmedDefender(side) {
			continue
		}
		base.HP = math.Max(0, base.HP-p.Damage)
		s.dispatcher.Dispatch(event.Event{Type: event.BaseDamaged, Data: event.BasePayload{
			Side:   side,
			Damage: p.Damage,
			HP:     base.HP,
		}})
		state.Flashes = append(state.Flashes, &component.HitFlash{
			X: p.X, Y: p.Y, Radius: 10, TTL: config.HitFlashTTL,
		})
		p.Dead = true
		return
	}
}

// hitCell возвращает первую живую ячейку юнита, которую пересёк отрезок
// движения снаряда за тик, или nil.
func (s *ProjectileSystem) hitCell(u *component.Unit, p *component.Projectile) *component.StructureCell {
	for _, c := range u.Cells {
		if c.Destroyed {
			continue
		}
		minX, minY, maxX, maxY := u.CellRect(c)
		if p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY {
			return c
		}
		if segmentIntersectsRect(p.PrevX, p.PrevY, p.X, p.Y, minX, minY, maxX, maxY) {
			return c
		}
	}
	return nil
}

// segmentIntersectsRect — свип-тест отрезка против AABB методом slab.
// Быстрые снаряды не должны проскакивать ячейку между тиками.
func segmentIntersectsRect(x1, y1, x2, y2, minX, minY, maxX, maxY float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	tMin, tMax := 0.0, 1.0

	for _, axis := range [2][3]float64{{dx, x1, 0}, {dy, y1, 1}} {
		d, origin := axis[0], axis[1]
		lo, hi := minX, maxX
		if axis[2] == 1 {
			lo, hi = minY, maxY
		}
		if math.Abs(d) < 1e-9 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}
		t1 := (lo - origin) / d
		t2 := (hi - origin) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// detonate раздаёт урон взрыва по ближайшей живой ячейке каждого противника
// в радиусе. Юнит прямого попадания исключается: он уже получил контактный
// урон, двойного не полагается.
func (s *ProjectileSystem) detonate(state *component.BattleState, p *component.Projectile, cx, cy float64, directHit types.UnitID) {
	radius := p.Blast.Radius
	for _, u := range state.Units {
		if !u.Alive || u.Side == p.Side || (directHit != 0 && u.ID == directHit) {
			continue
		}
		var nearest *component.StructureCell
		nearestDist := math.MaxFloat64
		for _, c := range u.Cells {
			if c.Destroyed {
				continue
			}
			wx, wy := u.CellWorldPos(c)
			if d := utils.Dist(cx, cy, wx, wy); d < nearestDist {
				nearestDist = d
				nearest = c
			}
		}
		if nearest == nil || nearestDist > radius {
			continue
		}
		dmg := p.Damage * math.Pow(1-nearestDist/radius, p.Blast.FalloffPower)
		if dmg <= 0 {
			continue
		}
		if p.Target != 0 && u.ID == p.Target {
			p.HitIntended = true
		}
		ApplyHitToUnit(u, nearest.ID, dmg, s.dispatcher)
		s.dispatcher.Dispatch(event.Event{Type: event.ProjectileHit, Data: event.HitPayload{
			Source:   p.Source,
			Target:   u.ID,
			CellID:   nearest.ID,
			Damage:   dmg,
			Intended: p.Target != 0 && u.ID == p.Target,
		}})
	}

	state.Flashes = append(state.Flashes, &component.HitFlash{
		X: cx, Y: cy, Radius: radius, TTL: config.HitFlashTTL * 2,
	})
	ScatterDebris(state, s.rng, cx, cy, config.DebrisPerCell*2)

	if !p.HitIntended {
		s.missFeedback(state, p)
	}
	p.Dead = true
}

// expire гасит снаряд без детонации и скармливает стрелку обратную связь
// по промаху.
func (s *ProjectileSystem) expire(state *component.BattleState, p *component.Projectile) {
	if !p.HitIntended {
		s.missFeedback(state, p)
	}
	p.Dead = true
}

// missFeedback подталкивает вертикальную поправку прицела стрелка в сторону,
// противоположную наблюдаемому промаху. Шаг фиксированный, накопление
// ограничено симметричным пределом.
func (s *ProjectileSystem) missFeedback(state *component.BattleState, p *component.Projectile) {
	if p.Target == 0 {
		return
	}
	shooter := state.UnitByID(p.Source)
	if shooter == nil || !shooter.Alive {
		return
	}
	missY := p.Y - p.AimY
	bias := shooter.AI.AimBiasY - utils.Sign(missY)*config.AimBiasStep
	shooter.AI.AimBiasY = utils.Clamp(bias, -config.AimBiasLimit, config.AimBiasLimit)
}
