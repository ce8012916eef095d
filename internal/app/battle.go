// internal/app/battle.go
package app

import (
	"github.com/rs/zerolog"

	"go-battle-arena/internal/ai"
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/event"
	"go-battle-arena/internal/system"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// NodeConfig — параметры узла кампании, с которыми стартует бой.
type NodeConfig struct {
	Difficulty int
	BaseHP     float64 // 0 — значение по умолчанию
}

// Battle — оркестратор одного боя: владеет состоянием, системами и
// контроллерами сторон, задаёт порядок тика. Весь Update однопоточный;
// воспроизводимость обеспечивают общий PRNG и стабильный порядок срезов.
type Battle struct {
	State      *component.BattleState
	Rng        *utils.PRNGService
	Dispatcher *event.Dispatcher

	log  zerolog.Logger
	seed int64
	node NodeConfig

	structure   *system.StructureSystem
	mobility    *system.MobilitySystem
	loaders     *system.LoaderSystem
	weapons     *system.WeaponSystem
	projectiles *system.ProjectileSystem
	effects     *system.EffectSystem
	spawner     *system.SpawnSystem

	controllers map[types.Side]ai.Controller

	controlled types.UnitID // юнит под ручным управлением, 0 — нет
	aimX, aimY float64
	firing     bool

	nextUnitID types.UnitID
	dt         float64
}

// NewBattle создаёт бой с заданным сидом. Сид 0 означает интерактивный
// режим: генератор сядет на текущее время.
func NewBattle(seed int64, logger zerolog.Logger) *Battle {
	b := &Battle{
		State:      &component.BattleState{},
		Rng:        utils.NewPRNGService(seed),
		Dispatcher: event.NewDispatcher(),
		log:        logger,
		seed:       seed,
	}
	b.structure = system.NewStructureSystem(b.Dispatcher)
	b.mobility = system.NewMobilitySystem(b.Rng, b.Dispatcher)
	b.loaders = system.NewLoaderSystem()
	b.weapons = system.NewWeaponSystem(b.Rng, b.Dispatcher)
	b.projectiles = system.NewProjectileSystem(b.Rng, b.Dispatcher)
	b.effects = system.NewEffectSystem()
	b.spawner = system.NewSpawnSystem(b.Rng, b.Dispatcher, b.spawnUnit)

	b.controllers = map[types.Side]ai.Controller{
		types.SidePlayer: ai.NewTreeController(),
		types.SideEnemy:  ai.NewTreeController(),
	}
	return b
}

// SetController подменяет стратегию стороны. Вызывать до Start.
func (b *Battle) SetController(side types.Side, c ai.Controller) {
	b.controllers[side] = c
}

// Start сбрасывает состояние и разворачивает арену под конфигурацию узла.
// Повторный Start пересаживает генератор на исходный сид, так что два
// прогона одного боя совпадают тик в тик.
func (b *Battle) Start(node NodeConfig) {
	b.Rng.Reseed(b.seed)
	b.node = node
	b.controlled = 0
	b.firing = false
	b.nextUnitID = 0

	diff := defs.DifficultyOrDefault(node.Difficulty)
	baseHP := config.BaseMaxHP
	if node.BaseHP > 0 {
		baseHP = node.BaseHP
	}

	st := b.State
	*st = component.BattleState{
		PlayerBase: &component.Base{
			Side: types.SidePlayer,
			X:    config.PlayerBaseX, Y: config.GroundY - config.BaseHeight,
			W: config.BaseWidth, H: config.BaseHeight,
			HP: baseHP, MaxHP: baseHP,
		},
		EnemyBase: &component.Base{
			Side: types.SideEnemy,
			X:    config.EnemyBaseX, Y: config.GroundY - config.BaseHeight,
			W: config.BaseWidth, H: config.BaseHeight,
			HP: baseHP, MaxHP: baseHP,
		},
		PlayerGas: config.PlayerStartGas,
		Economy: component.EnemyEconomy{
			Gas:        diff.StartGas,
			GasRate:    diff.GasRate,
			ArmyCap:    diff.ArmyCap,
			SpawnTimer: config.EnemySpawnPeriod,
			Spawns:     diff.Spawns,
		},
	}

	// Стартовые юниты: по разведчику с каждой стороны, чтобы бой начинался
	// с контакта, а не с пустой арены.
	b.spawnUnit("T_SCOUT", types.SidePlayer)
	b.spawnUnit("T_SCOUT", types.SideEnemy)

	st.Started = true
	b.Dispatcher.Dispatch(event.Event{Type: event.BattleStarted})
	b.log.Info().
		Int64("seed", b.Rng.Seed()).
		Int("difficulty", node.Difficulty).
		Float64("base_hp", baseHP).
		Msg("battle started")
}

// Update продвигает симуляцию на dt. После фиксации исхода — no-op:
// состояние заморожено для экрана результатов.
func (b *Battle) Update(dt float64, intent InputIntent) {
	st := b.State
	if !st.Started || st.Outcome != nil {
		return
	}
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	b.dt = dt
	st.Ticks++
	st.Time += dt

	b.spawner.Update(st, dt)
	b.mobility.Refresh(st)

	for _, u := range st.Units {
		if !u.Alive || u.Drop != nil {
			continue
		}
		var d ai.CombatDecision
		if u.ID == b.controlled {
			d = b.manualDecision(u, intent)
		} else {
			d = b.controllers[u.Side].Decide(b.decisionInput(u))
		}
		if d.Facing != 0 {
			u.Facing = d.Facing
		}
		b.mobility.Apply(u, d.MoveX, d.MoveY, dt)
		for _, fr := range d.Fire {
			b.weapons.FireSlot(st, u, fr.Slot, fr.AimX, fr.AimY, fr.Target)
		}
	}
	b.mobility.UpdateDrop(st, dt)

	b.weapons.Update(st, dt)
	b.loaders.Update(st, dt)
	b.projectiles.Update(st, dt)
	b.structure.Update(st, dt)
	b.effects.Update(st, dt)

	b.pruneDead()
	b.checkOutcome()
}

// decisionInput связывает юнита с функциями досягаемости систем, не
// раскрывая контроллеру сами системы.
func (b *Battle) decisionInput(u *component.Unit) ai.DecisionInput {
	enemyBase := b.State.BaseFor(u.Side.Opposite())
	return ai.DecisionInput{
		Unit:         u,
		State:        b.State,
		DT:           b.dt,
		DesiredRange: config.DefaultDesiredRange,
		BaseTargetX:  enemyBase.CenterX(),
		BaseTargetY:  config.GroundY - 24, // точка у земли, досягаемая наземными стволами
		CanShootAtAngle: func(slot int, aimX, aimY float64) bool {
			return system.CanShootAtAngle(u, slot, aimX, aimY)
		},
		EffectiveWeaponRange: func(slot int) float64 {
			return system.EffectiveWeaponRange(u, slot)
		},
	}
}

// manualDecision строит решение юнита под ручным управлением из намерения
// игрока и состояния указателя.
func (b *Battle) manualDecision(u *component.Unit, intent InputIntent) ai.CombatDecision {
	d := ai.CombatDecision{
		MoveX: utils.Clamp(intent.MoveX, -1, 1),
		MoveY: utils.Clamp(intent.MoveY, -1, 1),
	}
	if intent.SelectSlot >= 0 && intent.SelectSlot < len(u.Slots) {
		u.SelectedSlot = intent.SelectSlot
	}
	if b.aimX >= u.X {
		d.Facing = 1
	} else {
		d.Facing = -1
	}
	if b.firing {
		if u.SelectedSlot >= 0 && u.SelectedSlot < len(u.Slots) {
			d.Fire = append(d.Fire, ai.FireRequest{Slot: u.SelectedSlot, AimX: b.aimX, AimY: b.aimY})
		} else {
			for i := range u.Slots {
				if system.CanFire(u, i) {
					d.Fire = append(d.Fire, ai.FireRequest{Slot: i, AimX: b.aimX, AimY: b.aimY})
				}
			}
		}
	}
	return d
}

// spawnUnit собирает юнита из шаблона и ставит его в зону появления стороны.
// Возвращает nil при некорректном шаблоне.
func (b *Battle) spawnUnit(templateID string, side types.Side) *component.Unit {
	b.nextUnitID++
	u := NewUnitFromTemplate(b.nextUnitID, side, templateID)
	if u == nil {
		b.nextUnitID--
		b.log.Warn().Str("template", templateID).Msg("malformed unit template rejected")
		return nil
	}

	x := config.PlayerSpawnX
	if side == types.SideEnemy {
		x = config.EnemySpawnX
	}
	// Лёгкий сдвиг, чтобы одновременные появления не складывались в одну точку.
	u.X = x + b.Rng.Range(-24, 24)
	if u.Type == types.UnitAir {
		u.Y = b.Rng.Range(config.AirMinY+60, config.AirMaxY-120)
	} else {
		u.Y = config.GroundY
	}
	b.State.Units = append(b.State.Units, u)
	return u
}

// DeployUnit выставляет юнита игрока. При charge списывается газ шаблона;
// отказ — при неизвестном шаблоне, переполненной армии или нехватке газа.
func (b *Battle) DeployUnit(templateID string, charge bool) bool {
	st := b.State
	if !st.Started || st.Outcome != nil {
		return false
	}
	tmpl, ok := defs.TemplateDefs[templateID]
	if !ok {
		return false
	}
	if st.AliveCount(types.SidePlayer) >= config.PlayerArmyCap {
		b.log.Debug().Str("template", templateID).Msg("deploy rejected: army cap")
		return false
	}
	if charge {
		if st.PlayerGas < tmpl.GasCost {
			b.log.Debug().Str("template", templateID).Msg("deploy rejected: not enough gas")
			return false
		}
		st.PlayerGas -= tmpl.GasCost
	}
	u := b.spawnUnit(templateID, types.SidePlayer)
	if u == nil {
		if charge {
			st.PlayerGas += tmpl.GasCost
		}
		return false
	}
	b.Dispatcher.Dispatch(event.Event{Type: event.UnitDeployed, Data: event.UnitPayload{
		UnitID:   u.ID,
		Side:     u.Side,
		Template: u.Template,
	}})
	return true
}

// ForceEnd принудительно фиксирует исход (выход из боя, таймаут прогона).
func (b *Battle) ForceEnd(victory bool, reason string) {
	b.finish(victory, reason)
}

// SetControlByClick берёт под ручное управление юнита игрока в точке клика.
// Клик мимо снимает управление.
func (b *Battle) SetControlByClick(x, y float64) {
	b.controlled = 0
	for _, u := range b.State.Units {
		if !u.Alive || u.Side != types.SidePlayer {
			continue
		}
		for _, c := range u.Cells {
			if c.Destroyed {
				continue
			}
			minX, minY, maxX, maxY := u.CellRect(c)
			if x >= minX && x <= maxX && y >= minY && y <= maxY {
				b.controlled = u.ID
				return
			}
		}
	}
}

// SetAim обновляет точку прицеливания ручного управления.
func (b *Battle) SetAim(x, y float64) {
	b.aimX, b.aimY = x, y
}

// SetFire включает или выключает огонь ручного управления.
func (b *Battle) SetFire(down bool) {
	b.firing = down
}

// ControlledUnit возвращает юнита под ручным управлением или nil.
func (b *Battle) ControlledUnit() *component.Unit {
	if b.controlled == 0 {
		return nil
	}
	u := b.State.UnitByID(b.controlled)
	if u == nil || !u.Alive {
		return nil
	}
	return u
}

// GetState отдаёт состояние для чтения рендером и записью. Мутировать его
// снаружи тика нельзя.
func (b *Battle) GetState() *component.BattleState {
	return b.State
}

// pruneDead убирает мёртвых юнитов, сохраняя порядок живых.
func (b *Battle) pruneDead() {
	st := b.State
	alive := st.Units[:0]
	for _, u := range st.Units {
		if u.Alive {
			alive = append(alive, u)
		} else if u.ID == b.controlled {
			b.controlled = 0
		}
	}
	st.Units = alive
}

// checkOutcome фиксирует исход по прочности баз.
func (b *Battle) checkOutcome() {
	st := b.State
	if st.Outcome != nil {
		return
	}
	switch {
	case st.PlayerBase.HP <= 0:
		b.finish(false, "player-base-destroyed")
	case st.EnemyBase.HP <= 0:
		b.finish(true, "enemy-base-destroyed")
	}
}

func (b *Battle) finish(victory bool, reason string) {
	st := b.State
	if !st.Started || st.Outcome != nil {
		return
	}
	st.Outcome = &component.Outcome{Victory: victory, Reason: reason}
	b.Dispatcher.Dispatch(event.Event{Type: event.BattleEnded, Data: event.OutcomePayload{
		Victory: victory,
		Reason:  reason,
	}})
	b.log.Info().
		Bool("victory", victory).
		Str("reason", reason).
		Int("ticks", st.Ticks).
		Float64("duration", st.Time).
		Msg("battle ended")
}
