// internal/system/weapon_test.go
package system

import (
	"math"
	"testing"

	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

func TestHeavyWeaponNeedsCharge(t *testing.T) {
	u := buildLoaderUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := NewWeaponSystem(utils.NewPRNGService(1), nil)

	if CanFire(u, 0) {
		t.Fatalf("heavy weapon ready without a charge")
	}
	if sys.FireSlot(st, u, 0, 600, u.Y, 0) {
		t.Fatalf("heavy weapon fired without a charge")
	}

	u.Slots[0].ReadyCharge = 1
	if !sys.FireSlot(st, u, 0, 600, u.Y, 0) {
		t.Fatalf("heavy weapon refused to fire with a charge")
	}
	if u.Slots[0].ReadyCharge != 0 {
		t.Fatalf("charge not consumed: %d", u.Slots[0].ReadyCharge)
	}
	// Пауза очереди берётся у загрузчика (LOADER_STD: 0.35), не у оружия.
	if math.Abs(u.Slots[0].FireTimer-0.35) > 1e-9 {
		t.Fatalf("fire timer = %v, want burst interval 0.35", u.Slots[0].FireTimer)
	}
}

func TestGunCooldownGate(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := NewWeaponSystem(utils.NewPRNGService(1), nil)

	if !sys.FireSlot(st, u, 0, 600, u.Y, 0) {
		t.Fatalf("ready gun refused to fire")
	}
	if sys.FireSlot(st, u, 0, 600, u.Y, 0) {
		t.Fatalf("gun fired during cooldown")
	}
	// GUN_LIGHT: перезарядка 0.5 c.
	for i := 0; i < 31; i++ {
		sys.Update(st, 1.0/60)
	}
	if !sys.FireSlot(st, u, 0, 600, u.Y, 0) {
		t.Fatalf("gun still locked after cooldown elapsed")
	}
}

func TestProjectileTTLFormula(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := NewWeaponSystem(utils.NewPRNGService(1), nil)

	sys.FireSlot(st, u, 0, 600, u.Y, 0)
	p := st.Projectiles[0]

	// GUN_LIGHT: 240/340 < 2 c → нижняя граница 2 c.
	if p.TTL != 2.0 {
		t.Fatalf("ttl = %v, want 2.0", p.TTL)
	}
	if p.MaxDistance != 240 {
		t.Fatalf("max distance = %v, want weapon range 240", p.MaxDistance)
	}
}

func TestBombDeliveryFactors(t *testing.T) {
	u := buildLoaderUnit(1, types.SidePlayer, 300)
	u.Attachments[2].Part = "BOMB_LAUNCHER"
	u.Slots[0].ReadyCharge = 1

	st := newTestState(u)
	sys := NewWeaponSystem(utils.NewPRNGService(1), nil)
	if !sys.FireSlot(st, u, 0, 600, u.Y, 0) {
		t.Fatalf("bomb launcher refused to fire")
	}
	p := st.Projectiles[0]

	// BOMB_LAUNCHER: 260 × 0.5 скорость, 320 × 1.35 гравитация.
	if math.Abs(p.Speed()-130) > 1e-6 {
		t.Fatalf("bomb speed = %v, want 130", p.Speed())
	}
	if math.Abs(p.Gravity-432) > 1e-9 {
		t.Fatalf("bomb gravity = %v, want 432", p.Gravity)
	}
}

func TestFireConeClampsBackwardAim(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := NewWeaponSystem(utils.NewPRNGService(1), nil)

	// Прицел строго назад; конус GUN_LIGHT ±28° плюс разброс ±2.5° не дают
	// снаряду улететь в тыл.
	if !sys.FireSlot(st, u, 0, u.X-200, u.Y, 0) {
		t.Fatalf("gun refused to fire")
	}
	p := st.Projectiles[0]
	if p.VX <= 0 {
		t.Fatalf("projectile flew backwards: vx=%v", p.VX)
	}
}

func TestTimedFuseOverridesTTL(t *testing.T) {
	u := buildLoaderUnit(1, types.SidePlayer, 300)
	u.Attachments[2].Part = "MORTAR"
	u.Slots[0].ReadyCharge = 1

	st := newTestState(u)
	sys := NewWeaponSystem(utils.NewPRNGService(1), nil)
	sys.FireSlot(st, u, 0, 600, u.Y-100, 0)

	if got := st.Projectiles[0].TTL; got != 2.4 {
		t.Fatalf("timed fuse ttl = %v, want 2.4", got)
	}
}

func TestEffectiveRangeAirBonus(t *testing.T) {
	ground := buildGunUnit(1, types.SidePlayer, 300)
	air := buildGunUnit(2, types.SidePlayer, 300)
	air.Type = types.UnitAir

	gr := EffectiveWeaponRange(ground, 0)
	ar := EffectiveWeaponRange(air, 0)
	if math.Abs(gr-240*1.12) > 1e-9 {
		t.Fatalf("ground effective range = %v", gr)
	}
	if math.Abs(ar-(240*1.12+60)) > 1e-9 {
		t.Fatalf("air effective range = %v", ar)
	}
}

func TestCanShootAtAngleRespectsRotation(t *testing.T) {
	u := buildLoaderUnit(1, types.SidePlayer, 300)
	u.Attachments[2].Part = "MORTAR"
	u.Attachments[2].Rotation = 1 // ствол вверх

	mx, my := u.MuzzleWorldPos(0)
	if !CanShootAtAngle(u, 0, mx+30, my-300) {
		t.Fatalf("upward mortar cannot shoot a high target")
	}
	if CanShootAtAngle(u, 0, mx+300, my) {
		t.Fatalf("upward mortar shoots level targets: cone should forbid it")
	}
}
