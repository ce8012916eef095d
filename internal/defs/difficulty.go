// internal/defs/difficulty.go
package defs

// DifficultyDefs определяет экономику противника по уровню сложности узла.
// Ключ карты — сложность из конфигурации узла кампании.
var DifficultyDefs = map[int]DifficultyDefinition{
	1: {
		GasRate:  3.0,
		ArmyCap:  3,
		StartGas: 30,
		Spawns: []SpawnEntry{
			{TemplateID: "T_SCOUT", Weight: 6},
			{TemplateID: "T_TANK", Weight: 2},
		},
	},
	2: {
		GasRate:  4.5,
		ArmyCap:  4,
		StartGas: 50,
		Spawns: []SpawnEntry{
			{TemplateID: "T_SCOUT", Weight: 4},
			{TemplateID: "T_TANK", Weight: 3},
			{TemplateID: "T_ARTILLERY", Weight: 2},
			{TemplateID: "T_INTERCEPTOR", Weight: 1},
		},
	},
	3: {
		GasRate:  6.5,
		ArmyCap:  6,
		StartGas: 80,
		Spawns: []SpawnEntry{
			{TemplateID: "T_SCOUT", Weight: 2},
			{TemplateID: "T_TANK", Weight: 4},
			{TemplateID: "T_ARTILLERY", Weight: 2},
			{TemplateID: "T_MISSILE_PLATFORM", Weight: 2},
			{TemplateID: "T_INTERCEPTOR", Weight: 2},
			{TemplateID: "T_BOMBER", Weight: 1},
		},
	},
}

// DifficultyOrDefault возвращает определение сложности, сваливаясь на
// первый уровень при неизвестном значении.
func DifficultyOrDefault(level int) DifficultyDefinition {
	if def, ok := DifficultyDefs[level]; ok {
		return def
	}
	return DifficultyDefs[1]
}
