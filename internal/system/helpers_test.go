// internal/system/helpers_test.go
package system

import (
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/event"
	"go-battle-arena/internal/types"
)

// buildGunUnit собирает наземного юнита: [двигатель][ядро][автопушка]
// на стандартных плитах. Ячейка i стоит на координате сетки (i, 0).
func buildGunUnit(id types.UnitID, side types.Side, x float64) *component.Unit {
	facing := 1
	if side == types.SideEnemy {
		facing = -1
	}
	u := &component.Unit{
		ID:           id,
		Side:         side,
		Type:         types.UnitGround,
		Template:     "TEST_GUN",
		X:            x,
		Y:            config.GroundY,
		Facing:       facing,
		Alive:        true,
		Control:      0,
		SelectedSlot: -1,
	}
	for i := 0; i < 3; i++ {
		u.Cells = append(u.Cells, &component.StructureCell{ID: i, X: i, Y: 0, Material: "MAT_STANDARD"})
	}
	u.Attachments = []*component.Attachment{
		{ID: 0, Part: "CTRL_CORE", Cell: 1, Alive: true},
		{ID: 1, Part: "ENGINE_SMALL", Cell: 0, Alive: true},
		{ID: 2, Part: "GUN_LIGHT", Cell: 2, Alive: true},
	}
	u.Slots = []*component.WeaponSlot{{Attachment: 2, AutoFire: true}}
	return u
}

// buildLoaderUnit собирает юнита с тяжёлой пушкой и загрузчиком.
func buildLoaderUnit(id types.UnitID, side types.Side, x float64) *component.Unit {
	facing := 1
	if side == types.SideEnemy {
		facing = -1
	}
	u := &component.Unit{
		ID:           id,
		Side:         side,
		Type:         types.UnitGround,
		Template:     "TEST_LOADER",
		X:            x,
		Y:            config.GroundY,
		Facing:       facing,
		Alive:        true,
		Control:      0,
		SelectedSlot: -1,
	}
	for i := 0; i < 4; i++ {
		u.Cells = append(u.Cells, &component.StructureCell{ID: i, X: i, Y: 0, Material: "MAT_STANDARD"})
	}
	u.Attachments = []*component.Attachment{
		{ID: 0, Part: "CTRL_CORE", Cell: 0, Alive: true},
		{ID: 1, Part: "LOADER_STD", Cell: 1, Alive: true},
		{ID: 2, Part: "GUN_HEAVY", Cell: 2, Alive: true},
		{ID: 3, Part: "ENGINE_LARGE", Cell: 3, Alive: true},
	}
	u.Slots = []*component.WeaponSlot{{Attachment: 2, AutoFire: true}}
	u.Loaders = []*component.LoaderState{{Attachment: 1, TargetSlot: -1}}
	return u
}

// buildAirUnit собирает воздушного юнита без двигателей — кандидата на
// принудительное падение.
func buildAirUnit(id types.UnitID, side types.Side, x, y float64) *component.Unit {
	u := &component.Unit{
		ID:           id,
		Side:         side,
		Type:         types.UnitAir,
		Template:     "TEST_AIR",
		X:            x,
		Y:            y,
		Facing:       1,
		Alive:        true,
		Control:      0,
		SelectedSlot: -1,
	}
	u.Cells = append(u.Cells, &component.StructureCell{ID: 0, X: 0, Y: 0, Material: "MAT_LIGHT"})
	u.Attachments = []*component.Attachment{
		{ID: 0, Part: "CTRL_CORE", Cell: 0, Alive: true},
	}
	return u
}

func newTestState(units ...*component.Unit) *component.BattleState {
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

// eventCapture копит все полученные события.
type eventCapture struct {
	events []event.Event
}

func (c *eventCapture) OnEvent(e event.Event) {
	c.events = append(c.events, e)
}

func (c *eventCapture) count(t event.EventType) int {
	n := 0
	for _, e := range c.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
