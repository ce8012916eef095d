// internal/system/weapon.go
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

// WeaponSystem тикает таймеры перезарядки и порождает снаряды.
type WeaponSystem struct {
	rng        *utils.PRNGService
	dispatcher *event.Dispatcher
	nextID     int
}

func NewWeaponSystem(rng *utils.PRNGService, dispatcher *event.Dispatcher) *WeaponSystem {
	return &WeaponSystem{rng: rng, dispatcher: dispatcher}
}

// Update уменьшает таймеры перезарядки живых слотов.
func (s *WeaponSystem) Update(state *component.BattleState, dt float64) {
	for _, u := range state.Units {
		if !u.Alive {
			continue
		}
		for _, slot := range u.Slots {
			if slot.FireTimer > 0 {
				slot.FireTimer -= dt
			}
		}
	}
}

// CanFire сообщает, готов ли слот к выстрелу прямо сейчас: таймер истёк и,
// для классов с внешней перезарядкой, есть подготовленный заряд.
func CanFire(u *component.Unit, slotIdx int) bool {
	w, ok := u.SlotWeapon(slotIdx)
	if !ok {
		return false
	}
	slot := u.Slots[slotIdx]
	if slot.FireTimer > 0 {
		return false
	}
	if w.Class.RequiresLoader() && slot.ReadyCharge <= 0 {
		return false
	}
	return true
}

// CanShootAtAngle проверяет, лежит ли направление на точку прицеливания
// внутри конуса стрельбы слота.
func CanShootAtAngle(u *component.Unit, slotIdx int, aimX, aimY float64) bool {
	w, ok := u.SlotWeapon(slotIdx)
	if !ok {
		return false
	}
	mx, my := u.MuzzleWorldPos(slotIdx)
	bearing := math.Atan2(aimY-my, aimX-mx)
	delta := utils.NormalizeAngle(bearing - u.WeaponFacingAngle(slotIdx))
	return math.Abs(delta) <= w.ShootAngleDeg*math.Pi/180
}

// EffectiveWeaponRange — дальность слота для планировщика ИИ: номинал с
// глобальным множителем плюс бонус за высоту для воздушных юнитов.
func EffectiveWeaponRange(u *component.Unit, slotIdx int) float64 {
	w, ok := u.SlotWeapon(slotIdx)
	if !ok {
		return 0
	}
	r := w.Range * config.EffectiveRangeMultiplier
	if u.Type == types.UnitAir {
		r += config.AirAltitudeRangeBonus
	}
	return r
}

// FireSlot производит выстрел слота по точке прицеливания. Направление
// сначала зажимается конусом стрельбы, потом к нему добавляется случайный
// разброс — порядок важен: разброс может вывести снаряд за конус, это
// легально. Возвращает false, если слот не готов.
func (s *WeaponSystem) FireSlot(state *component.BattleState, u *component.Unit, slotIdx int, aimX, aimY float64, target types.UnitID) bool {
	w, ok := u.SlotWeapon(slotIdx)
	if !ok {
		return false
	}
	slot := u.Slots[slotIdx]
	if slot.FireTimer > 0 {
		return false
	}
	if w.Class.RequiresLoader() {
		if slot.ReadyCharge <= 0 {
			return false
		}
		slot.ReadyCharge--
		slot.FireTimer = BurstIntervalFor(u, w.Class, w.Cooldown)
	} else {
		slot.FireTimer = w.Cooldown
	}

	mx, my := u.MuzzleWorldPos(slotIdx)
	facing := u.WeaponFacingAngle(slotIdx)
	half := w.ShootAngleDeg * math.Pi / 180
	delta := utils.Clamp(utils.NormalizeAngle(math.Atan2(aimY-my, aimX-mx)-facing), -half, half)
	spread := (s.rng.Float64()*2 - 1) * w.SpreadDeg * math.Pi / 180
	angle := facing + delta + spread

	speed := w.MuzzleSpeed
	gravity := config.Gravity
	if w.Delivery == defs.DeliveryBomb {
		speed *= config.BombSpeedFactor
		gravity *= config.BombGravityFactor
	}

	ttl := math.Max(config.ProjectileMinTTL, w.Range/math.Max(config.ProjectileTTLSpeedFloor, speed))
	if w.Blast != nil && w.Blast.Fuse == defs.FuseTimed && w.Blast.FuseTime > 0 {
		ttl = w.Blast.FuseTime
	}
	turnRate := 0.0
	if w.Homing != nil {
		turnRate = w.Homing.TurnRateDeg * math.Pi / 180
	}

	s.nextID++
	p := &component.Projectile{
		ID:          s.nextID,
		Side:        u.Side,
		Source:      u.ID,
		Target:      target,
		AimX:        aimX,
		AimY:        aimY,
		X:           mx,
		Y:           my,
		PrevX:       mx,
		PrevY:       my,
		VX:          math.Cos(angle) * speed,
		VY:          math.Sin(angle) * speed,
		Gravity:     gravity,
		Damage:      w.Damage,
		Class:       w.Class,
		MaxDistance: w.Range,
		TTL:         ttl,
		Blast:       w.Blast,
		TurnRate:    turnRate,
		PierceAir:   w.PierceAir,
	}
	state.Projectiles = append(state.Projectiles, p)

	s.dispatcher.Dispatch(event.Event{Type: event.ProjectileFired, Data: event.FirePayload{
		Source: u.ID,
		Slot:   slotIdx,
		Class:  string(w.Class),
	}})
	return true
}
