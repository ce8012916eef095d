// internal/system/scenario_test.go
package system

import (
	"testing"

	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// Дуэль двух одинаковых линейных юнитов: у того, кто стреляет первым,
// преимущество должно быть решающим. Пушка стоит на носовой ячейке, ядро
// в середине: первое попадание снимает орудие, второе — ядро.
func registerDuelDefs(t *testing.T) {
	t.Helper()
	defs.MaterialDefs["MAT_DUEL"] = defs.MaterialDefinition{
		ID: "MAT_DUEL", Name: "Duel plate",
		Mass: 1.0, Armor: 4, BreakThreshold: 30, Recovery: 1.0,
	}
	defs.PartDefs["GUN_DUEL"] = defs.PartDefinition{
		ID: "GUN_DUEL", Name: "Duel gun", Kind: defs.PartWeapon, Mass: 1.0,
		Weapon: &defs.WeaponStats{
			Class:         defs.ClassGun,
			Damage:        40,
			Cooldown:      1.0,
			Range:         90,
			MuzzleSpeed:   300,
			SpreadDeg:     0,
			ShootAngleDeg: 45,
			Delivery:      defs.DeliveryDirect,
		},
	}
	t.Cleanup(func() {
		delete(defs.MaterialDefs, "MAT_DUEL")
		delete(defs.PartDefs, "GUN_DUEL")
	})
}

func buildDuelUnit(id types.UnitID, side types.Side, x float64) *component.Unit {
	facing := 1
	if side == types.SideEnemy {
		facing = -1
	}
	u := &component.Unit{
		ID: id, Side: side, Type: types.UnitGround, Template: "TEST_DUEL",
		X: x, Y: config.GroundY, Facing: facing, Alive: true,
		Control: 0, SelectedSlot: -1,
	}
	for i := 0; i < 3; i++ {
		u.Cells = append(u.Cells, &component.StructureCell{ID: i, X: i, Y: 0, Material: "MAT_DUEL"})
	}
	u.Attachments = []*component.Attachment{
		{ID: 0, Part: "CTRL_CORE", Cell: 1, Alive: true},
		{ID: 1, Part: "GUN_DUEL", Cell: 2, Alive: true},
	}
	u.Slots = []*component.WeaponSlot{{Attachment: 1, AutoFire: true}}
	return u
}

func TestDuelFirstShooterWins(t *testing.T) {
	registerDuelDefs(t)

	a := buildDuelUnit(1, types.SidePlayer, 300)
	b := buildDuelUnit(2, types.SideEnemy, 390) // дистанция 90 = дальности пушки
	b.Slots[0].FireTimer = 0.5                  // противник стреляет вторым
	st := newTestState(a, b)

	rng := utils.NewPRNGService(1)
	weapons := NewWeaponSystem(rng, nil)
	projectiles := NewProjectileSystem(rng, nil)

	dt := config.TickStep
	shotsA, shotsB := 0, 0
	for tick := 0; tick < 60*5 && b.Alive; tick++ {
		if a.Alive && b.Alive && CanFire(a, 0) {
			if weapons.FireSlot(st, a, 0, b.X, b.Y-4, b.ID) {
				shotsA++
			}
		}
		if b.Alive && a.Alive && CanFire(b, 0) {
			if weapons.FireSlot(st, b, 0, a.X, a.Y-4, a.ID) {
				shotsB++
			}
		}
		weapons.Update(st, dt)
		projectiles.Update(st, dt)
	}

	if b.Alive {
		t.Fatalf("defender survived the duel")
	}
	if shotsA > 3 {
		t.Fatalf("first shooter needed %d shots, want at most 3", shotsA)
	}
	// Первое попадание снимает носовую ячейку с орудием до того, как у
	// противника истечёт стартовая задержка.
	if shotsB != 0 {
		t.Fatalf("defender managed to return fire %d times", shotsB)
	}
	if !a.Alive || strainSum(a) > 0 {
		t.Fatalf("first shooter took damage in a duel it controls")
	}
}
