// internal/defs/templates.go
package defs

import "go-battle-arena/internal/types"

// TemplateDefs is the library of all deployable unit templates, mapped by ID.
// Координаты ячеек: x растёт к носу юнита, y — вверх от опоры.
var TemplateDefs = map[string]TemplateDefinition{
	// Лёгкий разведчик: линейный корпус из трёх ячеек.
	"T_SCOUT": {
		ID:      "T_SCOUT",
		Name:    "Scout",
		Type:    types.UnitGround,
		GasCost: 20,
		Cells: []TemplateCell{
			{X: 0, Y: 0, Material: "MAT_LIGHT"},
			{X: 1, Y: 0, Material: "MAT_LIGHT"},
			{X: 2, Y: 0, Material: "MAT_LIGHT"},
		},
		Attachments: []TemplateAttachment{
			{Part: "CTRL_CORE", X: 1, Y: 0},
			{Part: "ENGINE_SMALL", X: 0, Y: 0},
			{Part: "GUN_LIGHT", X: 2, Y: 0},
		},
	},

	// Танк: корпус 3×2 из тяжёлых плит, пушка требует загрузчик.
	"T_TANK": {
		ID:      "T_TANK",
		Name:    "Tank",
		Type:    types.UnitGround,
		GasCost: 45,
		Cells: []TemplateCell{
			{X: 0, Y: 0, Material: "MAT_HEAVY"},
			{X: 1, Y: 0, Material: "MAT_HEAVY"},
			{X: 2, Y: 0, Material: "MAT_HEAVY"},
			{X: 0, Y: 1, Material: "MAT_STANDARD"},
			{X: 1, Y: 1, Material: "MAT_STANDARD"},
			{X: 2, Y: 1, Material: "MAT_STANDARD"},
		},
		Attachments: []TemplateAttachment{
			{Part: "CTRL_CORE", X: 1, Y: 0},
			{Part: "ENGINE_LARGE", X: 0, Y: 0},
			{Part: "LOADER_STD", X: 0, Y: 1},
			{Part: "GUN_HEAVY", X: 2, Y: 1},
			{Part: "FUEL_TANK", X: 2, Y: 0},
		},
	},

	// Самоходный миномёт: фугасы по навесной траектории.
	"T_ARTILLERY": {
		ID:      "T_ARTILLERY",
		Name:    "Artillery",
		Type:    types.UnitGround,
		GasCost: 50,
		Cells: []TemplateCell{
			{X: 0, Y: 0, Material: "MAT_STANDARD"},
			{X: 1, Y: 0, Material: "MAT_STANDARD"},
			{X: 2, Y: 0, Material: "MAT_FRAME"},
			{X: 3, Y: 0, Material: "MAT_STANDARD"},
		},
		Attachments: []TemplateAttachment{
			{Part: "CTRL_CORE", X: 0, Y: 0},
			{Part: "ENGINE_SMALL", X: 1, Y: 0},
			{Part: "LOADER_STD", X: 3, Y: 0},
			{Part: "MORTAR", X: 3, Y: 0, Rotation: 1},
		},
	},

	// Ракетная платформа: самонаводящиеся ракеты с автозагрузчиком.
	"T_MISSILE_PLATFORM": {
		ID:      "T_MISSILE_PLATFORM",
		Name:    "Missile platform",
		Type:    types.UnitGround,
		GasCost: 60,
		Cells: []TemplateCell{
			{X: 0, Y: 0, Material: "MAT_STANDARD"},
			{X: 1, Y: 0, Material: "MAT_STANDARD"},
			{X: 1, Y: 1, Material: "MAT_LIGHT"},
			{X: 0, Y: 1, Material: "MAT_LIGHT"},
		},
		Attachments: []TemplateAttachment{
			{Part: "CTRL_CORE", X: 0, Y: 0},
			{Part: "ENGINE_SMALL", X: 1, Y: 0},
			{Part: "LOADER_AUTO", X: 0, Y: 1},
			{Part: "MISSILE_POD", X: 1, Y: 1, Rotation: 1},
		},
	},

	// Перехватчик: воздушный, зенитка с прострелом воздушных целей.
	"T_INTERCEPTOR": {
		ID:      "T_INTERCEPTOR",
		Name:    "Interceptor",
		Type:    types.UnitAir,
		GasCost: 40,
		Cells: []TemplateCell{
			{X: 0, Y: 0, Material: "MAT_LIGHT"},
			{X: 1, Y: 0, Material: "MAT_LIGHT"},
			{X: 2, Y: 0, Material: "MAT_LIGHT"},
		},
		Attachments: []TemplateAttachment{
			{Part: "CTRL_CORE", X: 1, Y: 0},
			{Part: "ENGINE_LIFT", X: 0, Y: 0},
			{Part: "GUN_AA", X: 2, Y: 0},
		},
	},

	// Бомбардировщик: два подъёмных двигателя, сброс бомб.
	"T_BOMBER": {
		ID:      "T_BOMBER",
		Name:    "Bomber",
		Type:    types.UnitAir,
		GasCost: 55,
		Cells: []TemplateCell{
			{X: 0, Y: 0, Material: "MAT_LIGHT"},
			{X: 1, Y: 0, Material: "MAT_STANDARD"},
			{X: 2, Y: 0, Material: "MAT_STANDARD"},
			{X: 3, Y: 0, Material: "MAT_LIGHT"},
		},
		Attachments: []TemplateAttachment{
			{Part: "CTRL_CORE", X: 1, Y: 0},
			{Part: "ENGINE_LIFT", X: 0, Y: 0},
			{Part: "ENGINE_LIFT", X: 3, Y: 0},
			{Part: "BOMB_LAUNCHER", X: 2, Y: 0, Rotation: 3},
		},
	},
}
