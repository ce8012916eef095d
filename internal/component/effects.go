// internal/component/effects.go
package component

// DebrisParticle — осколок, разлетающийся при разрушении ячейки или взрыве.
// Чисто визуальный объект; разброс идёт через общий PRNG боя, чтобы
// реплеи оставались детерминированными.
type DebrisParticle struct {
	X, Y   float64
	VX, VY float64
	TTL    float64
}

// HitFlash — короткая вспышка в точке попадания или детонации.
type HitFlash struct {
	X, Y   float64
	Radius float64
	TTL    float64
}
