// internal/component/base.go
package component

import "go-battle-arena/internal/types"

// Base — база стороны: прямоугольник с запасом прочности. Урон по базе
// проходит только когда у защищающейся стороны не осталось вооружённых
// юнитов (см. ProjectileSystem).
type Base struct {
	Side       types.Side
	X, Y, W, H float64
	HP, MaxHP  float64
}

// Contains проверяет попадание точки в прямоугольник базы.
func (b *Base) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// CenterX возвращает X центра базы.
func (b *Base) CenterX() float64 { return b.X + b.W/2 }

// CenterY возвращает Y центра базы.
func (b *Base) CenterY() float64 { return b.Y + b.H/2 }
