// internal/system/ballistics.go
package system

import (
	"math"

	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/utils"
)

// SelectBestTarget выбирает противника с минимальной стоимостью:
// дистанция + 0.7×|Δвысоты| + штраф за медленные цели (им проще уйти от
// приоритета — добыча для других). nil, если живых противников нет;
// вызывающий в этом случае целится в базу.
func SelectBestTarget(u *component.Unit, state *component.BattleState) *component.Unit {
	var best *component.Unit
	bestScore := math.MaxFloat64
	for _, e := range state.Units {
		if !e.Alive || e.Side == u.Side {
			continue
		}
		score := utils.Dist(u.X, u.Y, e.X, e.Y) +
			config.TargetAltitudeWeight*math.Abs(e.Y-u.Y) +
			math.Max(0, config.TargetClosingSpeedRef-e.Speed())*config.TargetClosingPenaltyScale
		if score < bestScore {
			bestScore = score
			best = e
		}
	}
	return best
}

// Solution — результат баллистического решения: угол, время упреждения и
// скомпенсированная точка прицеливания.
type Solution struct {
	Angle    float64
	LeadTime float64
	AimX     float64
	AimY     float64
	Solved   bool
}

// SolveIntercept ищет упреждение итеративным уточнением: время полёта
// оценивается по текущей дистанции, точка встречи экстраполируется по
// скорости цели, и так до сходимости (обычно 2-3 итерации). Падение под
// гравитацией компенсируется подъёмом точки прицеливания на 0.5·g·t².
// Решение с временем полёта за разумным горизонтом бракуется.
func SolveIntercept(sx, sy, tx, ty, tvx, tvy, muzzleSpeed, gravity float64) Solution {
	if muzzleSpeed <= 0 {
		return Solution{}
	}
	t := utils.Dist(sx, sy, tx, ty) / muzzleSpeed
	for i := 0; i < 6; i++ {
		px := tx + tvx*t
		py := ty + tvy*t
		nt := utils.Dist(sx, sy, px, py) / muzzleSpeed
		if math.Abs(nt-t) < 0.01 {
			t = nt
			break
		}
		t = nt
	}
	if math.IsNaN(t) || t <= 0 || t > config.MaxLeadTime {
		return Solution{}
	}

	aimX := tx + tvx*t
	aimY := ty + tvy*t - 0.5*gravity*t*t
	return Solution{
		Angle:    math.Atan2(aimY-sy, aimX-sx),
		LeadTime: t,
		AimX:     aimX,
		AimY:     aimY,
		Solved:   true,
	}
}
