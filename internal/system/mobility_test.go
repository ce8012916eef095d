// internal/system/mobility_test.go
package system

import (
	"math"
	"testing"

	"go-battle-arena/internal/config"
	"go-battle-arena/internal/event"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

func newMobilitySystem(d *event.Dispatcher) *MobilitySystem {
	return NewMobilitySystem(utils.NewPRNGService(1), d)
}

func TestEngineAggregation(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := newMobilitySystem(nil)
	sys.Refresh(st)

	// Масса: 3 ячейки MAT_STANDARD (4.8) + ядро 1.2 + двигатель 1.4 +
	// пушка 1.2 = 8.6. ENGINE_SMALL: 40 л.с., потолок 120.
	wantMass := 8.6
	if math.Abs(u.Mobility.Mass-wantMass) > 1e-9 {
		t.Fatalf("mass = %v, want %v", u.Mobility.Mass, wantMass)
	}
	wantRaw := 40.0 / wantMass * config.SpeedScale
	if math.Abs(u.Mobility.RawSpeed-wantRaw) > 1e-9 {
		t.Fatalf("raw speed = %v, want %v", u.Mobility.RawSpeed, wantRaw)
	}
	if u.Mobility.MaxSpeed > 120 {
		t.Fatalf("max speed %v exceeds engine cap", u.Mobility.MaxSpeed)
	}
}

func TestDeadEngineStopsUnit(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := newMobilitySystem(nil)

	u.Attachments[1].Alive = false
	sys.Refresh(st)

	if u.Mobility.MaxSpeed != 0 || u.Mobility.Accel != 0 {
		t.Fatalf("unit without engines still mobile: max=%v accel=%v",
			u.Mobility.MaxSpeed, u.Mobility.Accel)
	}

	x := u.X
	sys.Apply(u, 1, 0, 1.0/60)
	sys.Apply(u, 1, 0, 1.0/60)
	if u.X != x {
		t.Fatalf("engineless unit moved: %v -> %v", x, u.X)
	}
}

func TestGroundUnitStaysOnGround(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := newMobilitySystem(nil)
	sys.Refresh(st)

	sys.Apply(u, 1, -1, 1.0/60) // вертикальная компонента игнорируется
	if u.Y != config.GroundY {
		t.Fatalf("ground unit left the ground: y=%v", u.Y)
	}
	if u.VX <= 0 {
		t.Fatalf("unit did not accelerate: vx=%v", u.VX)
	}
}

func TestAirUnitWithoutLiftCrashes(t *testing.T) {
	u := buildAirUnit(1, types.SidePlayer, 400, 200)
	st := newTestState(u)

	capture := &eventCapture{}
	d := event.NewDispatcher()
	d.Subscribe(event.UnitDestroyed, capture)
	sys := newMobilitySystem(d)

	sys.Refresh(st)
	if u.Drop == nil {
		t.Fatalf("air unit without engines did not enter the drop state")
	}

	for i := 0; i < 60*5 && u.Alive; i++ {
		sys.UpdateDrop(st, 1.0/60)
	}
	if u.Alive {
		t.Fatalf("dropping unit never crashed")
	}
	payload := capture.events[0].Data.(event.UnitPayload)
	if payload.Reason != "crash" {
		t.Fatalf("destroy reason = %q, want crash", payload.Reason)
	}
	if u.Y < config.GroundY-24-1e-9 || u.Y > config.GroundY+1e-9 {
		t.Fatalf("crash landing outside the ground band: y=%v", u.Y)
	}
}

func TestFullThrottleReachesMaxSpeed(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := newMobilitySystem(nil)

	// Две секунды полного газа: крейсерская скорость обязана выйти на
	// MaxSpeed, а не застрять на доле от него из-за демпфирования.
	for i := 0; i < 60*2; i++ {
		sys.Refresh(st)
		sys.Apply(u, 1, 0, 1.0/60)
	}
	if u.Speed() < 0.95*u.Mobility.MaxSpeed {
		t.Fatalf("cruise speed %v never approached max %v", u.Speed(), u.Mobility.MaxSpeed)
	}
}

func TestSpeedClampedToMax(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	st := newTestState(u)
	sys := newMobilitySystem(nil)
	sys.Refresh(st)

	for i := 0; i < 60*5; i++ {
		sys.Refresh(st)
		sys.Apply(u, 1, 0, 1.0/60)
	}
	if u.Speed() > u.Mobility.MaxSpeed+1e-9 {
		t.Fatalf("speed %v exceeds max %v", u.Speed(), u.Mobility.MaxSpeed)
	}
}
