// internal/ai/combat_tree_test.go
package ai

import (
	"strings"
	"testing"

	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/system"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// buildUnit собирает линейного наземного юнита на n ячеек: ядро на ячейке 0,
// двигатель на 1, автопушка на 2.
func buildUnit(id types.UnitID, side types.Side, x float64, n int) *component.Unit {
	facing := 1
	if side == types.SideEnemy {
		facing = -1
	}
	u := &component.Unit{
		ID:           id,
		Side:         side,
		Type:         types.UnitGround,
		Template:     "TEST",
		X:            x,
		Y:            config.GroundY,
		Facing:       facing,
		Alive:        true,
		Control:      0,
		SelectedSlot: -1,
	}
	for i := 0; i < n; i++ {
		u.Cells = append(u.Cells, &component.StructureCell{ID: i, X: i, Y: 0, Material: "MAT_LIGHT"})
	}
	u.Attachments = []*component.Attachment{
		{ID: 0, Part: "CTRL_CORE", Cell: 0, Alive: true},
		{ID: 1, Part: "ENGINE_SMALL", Cell: 1, Alive: true},
		{ID: 2, Part: "GUN_LIGHT", Cell: 2, Alive: true},
	}
	u.Slots = []*component.WeaponSlot{{Attachment: 2, AutoFire: true}}
	return u
}

func buildState(units ...*component.Unit) *component.BattleState {
	return &component.BattleState{
		Started: true,
		Units:   units,
		PlayerBase: &component.Base{
			Side: types.SidePlayer,
			X:    config.PlayerBaseX, Y: config.GroundY - config.BaseHeight,
			W: config.BaseWidth, H: config.BaseHeight,
			HP: config.BaseMaxHP, MaxHP: config.BaseMaxHP,
		},
		EnemyBase: &component.Base{
			Side: types.SideEnemy,
			X:    config.EnemyBaseX, Y: config.GroundY - config.BaseHeight,
			W: config.BaseWidth, H: config.BaseHeight,
			HP: config.BaseMaxHP, MaxHP: config.BaseMaxHP,
		},
	}
}

func buildInput(u *component.Unit, st *component.BattleState) DecisionInput {
	base := st.BaseFor(u.Side.Opposite())
	return DecisionInput{
		Unit:         u,
		State:        st,
		DT:           1.0 / 60,
		DesiredRange: config.DefaultDesiredRange,
		BaseTargetX:  base.CenterX(),
		BaseTargetY:  config.GroundY - 24,
		CanShootAtAngle: func(slot int, aimX, aimY float64) bool {
			return system.CanShootAtAngle(u, slot, aimX, aimY)
		},
		EffectiveWeaponRange: func(slot int) float64 {
			return system.EffectiveWeaponRange(u, slot)
		},
	}
}

func TestTreeFiresAtEnemyInRange(t *testing.T) {
	u := buildUnit(1, types.SidePlayer, 300, 3)
	enemy := buildUnit(2, types.SideEnemy, 480, 3)
	st := buildState(u, enemy)

	d := NewTreeController().Decide(buildInput(u, st))

	if len(d.Fire) != 1 {
		t.Fatalf("fire requests = %d, want 1", len(d.Fire))
	}
	if d.Fire[0].Target != enemy.ID {
		t.Fatalf("fire target = %d, want %d", d.Fire[0].Target, enemy.ID)
	}
	if d.Facing != 1 {
		t.Fatalf("facing = %d, want 1", d.Facing)
	}
	if !strings.Contains(u.AI.DecisionPath, "evaluate-weapons") {
		t.Fatalf("decision path missing weapon evaluation: %s", u.AI.DecisionPath)
	}
	if u.AI.Block != component.BlockNone {
		t.Fatalf("block reason set on a successful plan: %q", u.AI.Block)
	}
}

func TestTreeReportsOutOfRangeAndCloses(t *testing.T) {
	u := buildUnit(1, types.SidePlayer, 100, 3)
	enemy := buildUnit(2, types.SideEnemy, 1000, 3)
	st := buildState(u, enemy)

	d := NewTreeController().Decide(buildInput(u, st))

	if len(d.Fire) != 0 {
		t.Fatalf("fired beyond effective range")
	}
	if u.AI.Block != component.BlockOutOfRange {
		t.Fatalf("block = %q, want out-of-range", u.AI.Block)
	}
	if d.MoveX <= 0 {
		t.Fatalf("unit is not closing the range: moveX=%v", d.MoveX)
	}
	if !strings.Contains(u.AI.DecisionPath, "reposition") {
		t.Fatalf("decision path missing reposition: %s", u.AI.DecisionPath)
	}
}

func TestTreeRetreatsInsideDesiredBand(t *testing.T) {
	u := buildUnit(1, types.SidePlayer, 300, 3)
	enemy := buildUnit(2, types.SideEnemy, 350, 3)
	st := buildState(u, enemy)

	d := NewTreeController().Decide(buildInput(u, st))

	// Дистанция 50 — глубоко внутри полосы: отходим, продолжая стрелять.
	if d.MoveX >= 0 {
		t.Fatalf("unit is not backing off: moveX=%v", d.MoveX)
	}
	if len(d.Fire) != 1 {
		t.Fatalf("unit stopped firing while backing off")
	}
}

func TestTreeEvadesWhenBadlyDamaged(t *testing.T) {
	u := buildUnit(1, types.SidePlayer, 300, 5)
	enemy := buildUnit(2, types.SideEnemy, 480, 3)
	st := buildState(u, enemy)

	// Целостность 1/5 < 0.24; оружие и двигатель потеряны вместе с ячейками.
	for _, id := range []int{1, 2, 3, 4} {
		u.Cells[id].Destroyed = true
	}
	u.Attachments[1].Alive = false
	u.Attachments[2].Alive = false

	d := NewTreeController().Decide(buildInput(u, st))

	if d.MoveX >= 0 {
		t.Fatalf("damaged unit is not retreating: moveX=%v", d.MoveX)
	}
	if len(d.Fire) != 0 {
		t.Fatalf("weaponless unit produced fire requests")
	}
}

func TestRangeBiasControllerShrinksBand(t *testing.T) {
	u := buildUnit(1, types.SidePlayer, 300, 3)
	enemy := buildUnit(2, types.SideEnemy, 520, 3)
	st := buildState(u, enemy)

	// Базовое дерево в полосе [168, 280] стоит на месте.
	base := NewTreeController().Decide(buildInput(u, st))
	if base.MoveX != 0 {
		t.Fatalf("baseline moved inside the band: moveX=%v", base.MoveX)
	}

	// Половинная полоса — юнит сближается.
	biased := NewRangeBiasController(NewTreeController(), 0.5, 0).Decide(buildInput(u, st))
	if biased.MoveX <= 0 {
		t.Fatalf("range-biased unit is not closing: moveX=%v", biased.MoveX)
	}
}

func TestRangeBiasControllerForcesEvade(t *testing.T) {
	u := buildUnit(1, types.SidePlayer, 300, 5)
	u.Cells[4].Destroyed = true // целостность 0.8 < порога 0.9
	enemy := buildUnit(2, types.SideEnemy, 480, 3)
	st := buildState(u, enemy)

	d := NewRangeBiasController(NewTreeController(), 1.0, 0.9).Decide(buildInput(u, st))
	if d.MoveX >= 0 {
		t.Fatalf("cautious controller did not force a retreat: moveX=%v", d.MoveX)
	}
}

func TestLinearControllerEvadeSaturation(t *testing.T) {
	rng := utils.NewPRNGService(11)

	always := NewLinearController(NewTreeController(), rng)
	always.EvadeBias = 10 // сигмоида ≈ 1
	never := NewLinearController(NewTreeController(), rng)
	never.EvadeBias = -10 // сигмоида ≈ 0

	u := buildUnit(1, types.SidePlayer, 300, 3)
	enemy := buildUnit(2, types.SideEnemy, 480, 3)
	st := buildState(u, enemy)

	if d := always.Decide(buildInput(u, st)); d.MoveX >= 0 {
		t.Fatalf("saturated evade did not retreat: moveX=%v", d.MoveX)
	}
	if d := never.Decide(buildInput(u, st)); d.MoveX < 0 {
		t.Fatalf("suppressed evade still retreated: moveX=%v", d.MoveX)
	}
}
