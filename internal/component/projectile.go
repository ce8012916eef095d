// internal/component/projectile.go
package component

import (
	"math"

	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/types"
)

// Projectile представляет летящий снаряд — независимый симулируемый объект.
// Жизнь ограничена TTL и максимальной дистанцией; снаряд умирает при
// детонации, истечении времени или выходе за границы арены.
type Projectile struct {
	ID     int
	Side   types.Side
	Source types.UnitID
	Target types.UnitID // намеченная цель, 0 — стрельба по точке/базе

	AimX, AimY float64 // точка прицеливания на момент выстрела

	X, Y         float64
	PrevX, PrevY float64 // позиция прошлого тика для свип-теста коллизий
	VX, VY       float64
	Gravity      float64

	Damage      float64
	Class       defs.WeaponClass
	MaxDistance float64
	Traveled    float64
	TTL         float64

	Blast     *defs.BlastStats
	TurnRate  float64 // рад/с; 0 — без самонаведения
	PierceAir bool    // может простреливать сквозь воздушные цели
	Pierced   []types.UnitID

	HitIntended bool // снаряд попал в намеченную цель (обратная связь ИИ)
	Dead        bool
}

// HasPierced сообщает, прошивал ли снаряд уже этот юнит. Прошитая цель
// второй раз урона не получает, сколько бы тиков отрезок ни шёл через неё.
func (p *Projectile) HasPierced(id types.UnitID) bool {
	for _, pid := range p.Pierced {
		if pid == id {
			return true
		}
	}
	return false
}

// Speed возвращает модуль текущей скорости снаряда.
func (p *Projectile) Speed() float64 {
	return math.Sqrt(p.VX*p.VX + p.VY*p.VY)
}
