// internal/ai/controllers.go
package ai

import (
	"math"

	"go-battle-arena/internal/config"
	"go-battle-arena/internal/system"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// RangeBiasController — обёртка над базовым контроллером: масштабирует
// желаемую дистанцию и принудительно уводит юнита при падении целостности
// ниже собственного порога. Простейший способ получить "осторожный" или
// "агрессивный" характер стороны без нового дерева.
type RangeBiasController struct {
	Inner          Controller
	RangeFactor    float64
	EvadeThreshold float64
}

func NewRangeBiasController(inner Controller, rangeFactor, evadeThreshold float64) *RangeBiasController {
	return &RangeBiasController{Inner: inner, RangeFactor: rangeFactor, EvadeThreshold: evadeThreshold}
}

func (c *RangeBiasController) Decide(in DecisionInput) CombatDecision {
	if c.RangeFactor > 0 {
		in.DesiredRange *= c.RangeFactor
	}
	d := c.Inner.Decide(in)

	u := in.Unit
	if c.EvadeThreshold > 0 && system.StructureIntegrity(u) < c.EvadeThreshold {
		d.MoveX = -utils.Sign(u.AI.AttackX - u.X)
		if u.Type == types.UnitAir {
			d.MoveY = -1
		}
	}
	return d
}

// featureCount — размер вектора признаков линейной модели.
const featureCount = 5

// LinearController — линейная модель поверх базового дерева: по вектору
// признаков юнита считает фактор дистанции и вероятность уклонения.
// Вероятность сэмплируется через общий PRNG боя, так что реплеи с тем же
// сидом воспроизводятся точно. Веса подбираются снаружи, в пакетных прогонах.
type LinearController struct {
	Inner Controller
	Rng   *utils.PRNGService

	RangeWeights [featureCount]float64
	RangeBias    float64
	EvadeWeights [featureCount]float64
	EvadeBias    float64
}

func NewLinearController(inner Controller, rng *utils.PRNGService) *LinearController {
	return &LinearController{Inner: inner, Rng: rng}
}

func (c *LinearController) Decide(in DecisionInput) CombatDecision {
	f := extractFeatures(in)

	rangeFactor := utils.Clamp(1+0.5*math.Tanh(dot(c.RangeWeights, f)+c.RangeBias), 0.5, 1.6)
	in.DesiredRange *= rangeFactor
	d := c.Inner.Decide(in)

	evadeProb := sigmoid(dot(c.EvadeWeights, f) + c.EvadeBias)
	if c.Rng != nil && c.Rng.Float64() < evadeProb {
		u := in.Unit
		d.MoveX = -utils.Sign(u.AI.AttackX - u.X)
		if u.Type == types.UnitAir {
			d.MoveY = -1
		}
	}
	return d
}

// extractFeatures собирает вектор признаков: целостность структуры,
// нормированная дистанция до своей базы, нормированная скорость, готовность
// хотя бы одного слота к выстрелу и признак воздушного юнита.
func extractFeatures(in DecisionInput) [featureCount]float64 {
	u := in.Unit
	var f [featureCount]float64

	f[0] = system.StructureIntegrity(u)

	own := in.State.BaseFor(u.Side)
	if own != nil {
		f[1] = utils.Clamp(utils.Dist(u.X, u.Y, own.CenterX(), own.CenterY())/config.ArenaWidth, 0, 1)
	}

	if max := u.Mobility.MaxSpeed; max > 0 {
		f[2] = utils.Clamp(u.Speed()/max, 0, 1)
	}

	for i := range u.Slots {
		if system.CanFire(u, i) {
			f[3] = 1
			break
		}
	}

	if u.Type == types.UnitAir {
		f[4] = 1
	}
	return f
}

func dot(w [featureCount]float64, f [featureCount]float64) float64 {
	sum := 0.0
	for i := range w {
		sum += w[i] * f[i]
	}
	return sum
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
