// internal/ai/combat_tree.go
package ai

import (
	"math"
	"strings"

	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/system"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// TreeController — базовый контроллер: фиксированное дерево поведения над
// доской. Одно дерево обслуживает всех юнитов стороны, состояние между
// тиками живёт только в AIScratch юнита.
type TreeController struct {
	root *Node
}

func NewTreeController() *TreeController {
	return &TreeController{root: buildCombatTree()}
}

func (c *TreeController) Decide(in DecisionInput) CombatDecision {
	bb := &Blackboard{In: in}
	Tick(c.root, bb)
	in.Unit.AI.DecisionPath = strings.Join(bb.Path, ">")
	in.Unit.AI.Block = bb.Block
	return bb.Decision
}

func buildCombatTree() *Node {
	return Sequence("combat",
		Action("choose-target", chooseTarget),
		Action("plan-movement", planMovement),
		Selector("weapons",
			Sequence("attack",
				Condition("has-weapons", func(bb *Blackboard) bool {
					return bb.In.Unit.HasOperationalWeapons()
				}),
				Action("evaluate-weapons", evaluateBestWeaponPlan),
				Condition("has-shot-plan", func(bb *Blackboard) bool {
					return bb.Plan != nil
				}),
			),
			Action("reposition", repositionForBlockedShot),
		),
	)
}

// chooseTarget выбирает цель тика: лучший живой противник либо база. Точка
// атаки по базе берётся у самой земли, чтобы наземные стволы до неё
// доставали. Всегда успешен.
func chooseTarget(bb *Blackboard) Status {
	u := bb.In.Unit
	bb.Target = system.SelectBestTarget(u, bb.In.State)
	if bb.Target != nil {
		u.AI.TargetID = bb.Target.ID
		u.AI.AttackX = bb.Target.X
		u.AI.AttackY = bb.Target.Y
	} else {
		u.AI.TargetID = 0
		u.AI.AttackX = bb.In.BaseTargetX
		u.AI.AttackY = bb.In.BaseTargetY
	}

	if u.AI.AttackX >= u.X {
		bb.Decision.Facing = 1
	} else {
		bb.Decision.Facing = -1
	}
	return Success
}

// planMovement строит вектор движения к полосе желаемой дистанции.
// Повреждённый юнит отступает; воздушный держит эшелон над целью и
// уворачивается от ближайшего снаряда.
func planMovement(bb *Blackboard) Status {
	u := bb.In.Unit
	integrity := system.StructureIntegrity(u)
	dist := utils.Dist(u.X, u.Y, u.AI.AttackX, u.AI.AttackY)
	toward := utils.Sign(u.AI.AttackX - u.X)
	desired := bb.In.DesiredRange

	switch {
	case integrity < config.EvadeIntegrityThreshold:
		bb.Decision.MoveX = -toward
	case dist > desired:
		bb.Decision.MoveX = toward
	case dist < desired*0.6:
		bb.Decision.MoveX = -toward
	}

	if u.Type == types.UnitAir {
		wantY := utils.Clamp(u.AI.AttackY-120, config.AirMinY, config.AirMaxY)
		if integrity < config.EvadeIntegrityThreshold {
			wantY = config.AirMinY // подбитый тянет вверх, подальше от стволов
		}
		if math.Abs(wantY-u.Y) > 10 {
			bb.Decision.MoveY = utils.Sign(wantY - u.Y)
		}
		if p := nearestThreat(bb); p != nil {
			bb.Decision.MoveY = utils.Sign(u.Y - p.Y)
		}
	}
	return Success
}

// nearestThreat возвращает вражеский снаряд в опасной близости или nil.
func nearestThreat(bb *Blackboard) *component.Projectile {
	u := bb.In.Unit
	var best *component.Projectile
	bestDist := 70.0
	for _, p := range bb.In.State.Projectiles {
		if p.Dead || p.Side == u.Side {
			continue
		}
		if d := utils.Dist(u.X, u.Y, p.X, p.Y); d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// evaluateBestWeaponPlan перебирает готовые к выстрелу слоты и выбирает
// лучший план по оценке: урон ×1.2, бонус выравнивания дистанции,
// бонус упреждения (полный за сошедшееся решение, уменьшенный за прямую
// наводку) и штраф за стрельбу у края конуса. Недосягаемые слоты копят
// причину блокировки для узла перестроения.
func evaluateBestWeaponPlan(bb *Blackboard) Status {
	u := bb.In.Unit
	ax, ay := u.AI.AttackX, u.AI.AttackY
	var tvx, tvy float64
	if bb.Target != nil {
		tvx, tvy = bb.Target.VX, bb.Target.VY
	}

	outOfRange := 0
	angleLocked := 0

	for i := range u.Slots {
		if !u.Slots[i].AutoFire {
			continue // слот отдан под ручное управление
		}
		w, ok := u.SlotWeapon(i)
		if !ok || !system.CanFire(u, i) {
			continue
		}

		// Наземный против наземного: цель вне вертикального допуска
		// считается недосягаемой ещё до проверки дальности.
		targetAir := bb.Target != nil && bb.Target.Type == types.UnitAir
		if u.Type == types.UnitGround && !targetAir &&
			math.Abs(ay-u.Y) > config.GroundFireBlockToleranceY {
			outOfRange++
			continue
		}

		er := bb.In.EffectiveWeaponRange(i)
		dist := utils.Dist(u.X, u.Y, ax, ay)
		if dist > er {
			outOfRange++
			continue
		}

		mx, my := u.MuzzleWorldPos(i)
		speed := w.MuzzleSpeed
		gravity := config.Gravity
		if w.Delivery == defs.DeliveryBomb {
			speed *= config.BombSpeedFactor
			gravity *= config.BombGravityFactor
		}
		sol := system.SolveIntercept(mx, my, ax, ay, tvx, tvy, speed, gravity)

		aimX, aimY := ax, ay
		leadBonus := config.LeadBonusFallback
		if sol.Solved {
			aimX, aimY = sol.AimX, sol.AimY
			leadBonus = config.LeadBonusSolved
		}
		aimY += u.AI.AimBiasY

		if !bb.In.CanShootAtAngle(i, aimX, aimY) {
			angleLocked++
			continue
		}

		score := w.Damage*config.WeaponScoreDamageWeight + leadBonus + rangeAlignmentBonus(dist, er)
		if coneEdge(u, i, w, aimX, aimY) {
			score -= config.ConeAnglePenalty
		}

		if bb.Plan == nil || score > bb.Plan.Score {
			bb.Plan = &ShotPlan{Slot: i, AimX: aimX, AimY: aimY, Target: u.AI.TargetID, Score: score}
		}
	}

	if bb.Plan != nil {
		bb.Decision.Fire = append(bb.Decision.Fire, FireRequest{
			Slot:   bb.Plan.Slot,
			AimX:   bb.Plan.AimX,
			AimY:   bb.Plan.AimY,
			Target: bb.Plan.Target,
		})
		bb.Block = component.BlockNone
		return Success
	}

	switch {
	case angleLocked > 0:
		bb.Block = component.BlockAngleLocked
	case outOfRange > 0:
		bb.Block = component.BlockOutOfRange
	}
	return Success
}

// rangeAlignmentBonus поощряет дистанцию около 0.8 эффективной дальности:
// достаточно близко для точности, достаточно далеко для безопасности.
func rangeAlignmentBonus(dist, effRange float64) float64 {
	if effRange <= 0 {
		return 0
	}
	ratio := dist / effRange
	return utils.Clamp(config.RangeAlignmentBonusMax*(1-math.Abs(ratio-0.8)/0.8), 0, config.RangeAlignmentBonusMax)
}

// coneEdge сообщает, что направление выстрела лежит у края конуса слота —
// такой выстрел легко сорвётся при манёвре цели.
func coneEdge(u *component.Unit, slotIdx int, w *defs.WeaponStats, aimX, aimY float64) bool {
	mx, my := u.MuzzleWorldPos(slotIdx)
	delta := utils.NormalizeAngle(math.Atan2(aimY-my, aimX-mx) - u.WeaponFacingAngle(slotIdx))
	half := w.ShootAngleDeg * math.Pi / 180
	return half > 0 && math.Abs(delta) > 0.75*half
}

// repositionForBlockedShot двигает юнита так, чтобы на следующих тиках план
// появился: при блоке по углу — доворот и смена эшелона, иначе — сближение.
func repositionForBlockedShot(bb *Blackboard) Status {
	u := bb.In.Unit
	if system.StructureIntegrity(u) < config.EvadeIntegrityThreshold {
		return Success // отступление важнее перестроения под выстрел
	}
	toward := utils.Sign(u.AI.AttackX - u.X)

	if bb.Block == component.BlockAngleLocked {
		if toward > 0 {
			bb.Decision.Facing = 1
		} else if toward < 0 {
			bb.Decision.Facing = -1
		}
		bb.Decision.MoveX = 0.4 * toward
		if u.Type == types.UnitAir {
			bb.Decision.MoveY = utils.Sign(u.AI.AttackY - u.Y)
		}
		return Success
	}

	bb.Decision.MoveX = toward
	return Success
}
