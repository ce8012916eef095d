// internal/system/structure_test.go
package system

import (
	"math"
	"testing"

	"go-battle-arena/internal/event"
	"go-battle-arena/internal/types"
)

func TestArmorSoaksDamageNonlinearly(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)

	// MAT_STANDARD: броня 10. eff = 20²/(20+10) = 13.33.
	destroyed := ApplyHitToUnit(u, 2, 20, nil)
	if destroyed {
		t.Fatalf("cell destroyed by a single soft hit")
	}
	want := 400.0 / 30.0
	if got := u.Cells[2].Strain; math.Abs(got-want) > 1e-9 {
		t.Fatalf("strain = %v, want %v", got, want)
	}
}

func TestCellBreaksAtThreshold(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)

	// eff(40) = 1600/50 = 32; порог MAT_STANDARD = 100 → четвёртое попадание ломает.
	for i := 0; i < 3; i++ {
		if ApplyHitToUnit(u, 2, 40, nil) {
			t.Fatalf("cell destroyed after %d hits", i+1)
		}
	}
	if !ApplyHitToUnit(u, 2, 40, nil) {
		t.Fatalf("cell survived the breaking hit")
	}
	if !u.Cells[2].Destroyed {
		t.Fatalf("cell not marked destroyed")
	}
	if u.Attachments[2].Alive {
		t.Fatalf("attachment on a destroyed cell is still alive")
	}
	if !u.Alive {
		t.Fatalf("unit died from losing a non-control cell")
	}
}

func TestConnectivityCascade(t *testing.T) {
	// Ядро на ячейке 0; разрушение средней ячейки отсекает хвост.
	u := buildGunUnit(1, types.SidePlayer, 300)
	u.Attachments[0].Cell = 0
	u.Control = 0

	capture := &eventCapture{}
	d := event.NewDispatcher()
	d.Subscribe(event.CellDestroyed, capture)

	DestroyCell(u, 1, d)

	if !u.Cells[1].Destroyed || !u.Cells[2].Destroyed {
		t.Fatalf("orphaned tail cell survived the cascade")
	}
	if u.Cells[0].Destroyed {
		t.Fatalf("control cell destroyed by the cascade")
	}
	if !u.Alive {
		t.Fatalf("unit died while control cell is intact")
	}
	if u.HasOperationalWeapons() {
		t.Fatalf("weapon on an orphaned cell still operational")
	}
	if got := capture.count(event.CellDestroyed); got != 2 {
		t.Fatalf("CellDestroyed events = %d, want 2", got)
	}
}

func TestControlLossKillsUnit(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)

	capture := &eventCapture{}
	d := event.NewDispatcher()
	d.Subscribe(event.UnitDestroyed, capture)

	DestroyCell(u, 1, d) // ядро стоит на ячейке 1

	if u.Alive {
		t.Fatalf("unit survived losing its control core")
	}
	if got := capture.count(event.UnitDestroyed); got != 1 {
		t.Fatalf("UnitDestroyed events = %d, want 1", got)
	}
	payload := capture.events[len(capture.events)-1].Data.(event.UnitPayload)
	if payload.Reason != "control-lost" {
		t.Fatalf("destroy reason = %q, want control-lost", payload.Reason)
	}
}

func TestDestroyCellIdempotent(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	DestroyCell(u, 2, nil)
	before := u.AliveCellCount()
	DestroyCell(u, 2, nil)
	if got := u.AliveCellCount(); got != before {
		t.Fatalf("repeated DestroyCell changed alive cells: %d -> %d", before, got)
	}
}

func TestStrainRecoversOnlyOnAliveCells(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	u.Cells[0].Strain = 10
	DestroyCell(u, 2, nil)
	u.Cells[2].Strain = 10 // вручную, поверх обнуления при разрушении

	st := newTestState(u)
	sys := NewStructureSystem(nil)
	sys.Update(st, 1.0)

	// MAT_STANDARD восстанавливает 3 ед/с.
	if got := u.Cells[0].Strain; math.Abs(got-7) > 1e-9 {
		t.Fatalf("alive cell strain = %v, want 7", got)
	}
	if got := u.Cells[2].Strain; got != 10 {
		t.Fatalf("destroyed cell strain changed: %v", got)
	}
}

func TestStructureIntegrity(t *testing.T) {
	u := buildGunUnit(1, types.SidePlayer, 300)
	if got := StructureIntegrity(u); got != 1 {
		t.Fatalf("integrity of intact unit = %v", got)
	}
	DestroyCell(u, 2, nil)
	if got := StructureIntegrity(u); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Fatalf("integrity = %v, want 2/3", got)
	}
}
