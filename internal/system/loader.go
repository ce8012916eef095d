// internal/system/loader.go
package system

import (
	"math"

	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
)

// LoaderSystem гоняет машину состояний загрузчиков: простой → загрузка →
// подача заряда. Один загрузчик обслуживает максимум один слот; один слот —
// максимум один загрузчик одновременно.
type LoaderSystem struct{}

func NewLoaderSystem() *LoaderSystem {
	return &LoaderSystem{}
}

func (s *LoaderSystem) Update(state *component.BattleState, dt float64) {
	for _, u := range state.Units {
		if u.Alive {
			s.updateUnit(u, dt)
		}
	}
}

func (s *LoaderSystem) updateUnit(u *component.Unit, dt float64) {
	for _, l := range u.Loaders {
		stats, ok := u.LoaderStatsFor(l)
		if !ok {
			// Загрузчик уничтожен — цикл обрывается, прогресс теряется.
			l.TargetSlot = -1
			l.Remaining = 0
			continue
		}

		// Простаивающий загрузчик берёт цель в начале тика: свежевыбранная
		// загрузка расходует уже и этот тик.
		if l.TargetSlot < 0 {
			s.pickTarget(u, l, stats)
		}

		if l.TargetSlot >= 0 {
			if !s.stillLoadable(u, l.TargetSlot) {
				l.TargetSlot = -1
				l.Remaining = 0
			} else {
				l.Remaining -= dt
				if l.Remaining <= 0 {
					slot := u.Slots[l.TargetSlot]
					if slot.ReadyCharge < SlotCapacity(u, l.TargetSlot) {
						slot.ReadyCharge++
					}
					l.TargetSlot = -1
					l.Remaining = 0
				}
			}
		}
	}
}

// stillLoadable проверяет, что цель загрузки всё ещё имеет смысл: оружие
// живо и запас зарядов не полон.
func (s *LoaderSystem) stillLoadable(u *component.Unit, slotIdx int) bool {
	w, ok := u.SlotWeapon(slotIdx)
	if !ok || !w.Class.RequiresLoader() {
		return false
	}
	return u.Slots[slotIdx].ReadyCharge < SlotCapacity(u, slotIdx)
}

// pickTarget выбирает слот для простаивающего загрузчика. Приоритет —
// выбранный игроком слот, затем слоты в порядке объявления.
func (s *LoaderSystem) pickTarget(u *component.Unit, l *component.LoaderState, stats *defs.LoaderStats) {
	order := make([]int, 0, len(u.Slots)+1)
	if u.SelectedSlot >= 0 && u.SelectedSlot < len(u.Slots) {
		order = append(order, u.SelectedSlot)
	}
	for i := range u.Slots {
		if i != u.SelectedSlot {
			order = append(order, i)
		}
	}

	for _, idx := range order {
		w, ok := u.SlotWeapon(idx)
		if !ok || !w.Class.RequiresLoader() || !stats.Supports(w.Class) {
			continue
		}
		if u.Slots[idx].ReadyCharge >= SlotCapacity(u, idx) {
			continue
		}
		if servicedByOther(u, l, idx) {
			continue
		}
		factor := config.SlowLoadFactor
		if stats.FastOperation {
			factor = config.FastLoadFactor
		}
		l.TargetSlot = idx
		l.Remaining = math.Max(stats.MinLoadTime, w.Cooldown*stats.LoadMult*factor)
		return
	}
}

func servicedByOther(u *component.Unit, self *component.LoaderState, slotIdx int) bool {
	for _, l := range u.Loaders {
		if l != self && l.TargetSlot == slotIdx {
			return true
		}
	}
	return false
}

// SlotCapacity — максимум подготовленных зарядов слота: 1 плюс сумма
// StoreCapacity по всем живым совместимым загрузчикам. Без совместимого
// загрузчика оружие с внешней перезарядкой стрелять не может вовсе.
func SlotCapacity(u *component.Unit, slotIdx int) int {
	w, ok := u.SlotWeapon(slotIdx)
	if !ok || !w.Class.RequiresLoader() {
		return 0
	}
	capacity := 0
	compatible := false
	for _, l := range u.Loaders {
		stats, ok := u.LoaderStatsFor(l)
		if !ok || !stats.Supports(w.Class) {
			continue
		}
		compatible = true
		capacity += stats.StoreCapacity
	}
	if !compatible {
		return 0
	}
	return capacity + 1
}

// BurstIntervalFor — пауза между выстрелами оружия с внешней перезарядкой:
// минимальный BurstInterval среди живых совместимых загрузчиков. fallback
// используется, когда совместимых загрузчиков не осталось.
func BurstIntervalFor(u *component.Unit, class defs.WeaponClass, fallback float64) float64 {
	best := math.MaxFloat64
	for _, l := range u.Loaders {
		stats, ok := u.LoaderStatsFor(l)
		if ok && stats.Supports(class) && stats.BurstInterval < best {
			best = stats.BurstInterval
		}
	}
	if best == math.MaxFloat64 {
		return fallback
	}
	return best
}
