// internal/defs/materials.go
package defs

// MaterialDefs is the library of all armor materials, mapped by their ID.
// Может быть переопределена из JSON через LoadMaterialDefinitions.
var MaterialDefs = map[string]MaterialDefinition{
	"MAT_LIGHT": {
		ID:             "MAT_LIGHT",
		Name:           "Light alloy",
		Mass:           1.0,
		Armor:          4,
		BreakThreshold: 60,
		Recovery:       2.0,
	},
	"MAT_STANDARD": {
		ID:             "MAT_STANDARD",
		Name:           "Standard plate",
		Mass:           1.6,
		Armor:          10,
		BreakThreshold: 100,
		Recovery:       3.0,
	},
	"MAT_HEAVY": {
		ID:             "MAT_HEAVY",
		Name:           "Heavy plate",
		Mass:           2.6,
		Armor:          22,
		BreakThreshold: 160,
		Recovery:       4.0,
	},
	"MAT_FRAME": {
		// Каркас: лёгкий, почти без брони, быстро ломается. Используется
		// как соединительный мостик — его разрушение отсекает секции.
		ID:             "MAT_FRAME",
		Name:           "Truss frame",
		Mass:           0.6,
		Armor:          1,
		BreakThreshold: 40,
		Recovery:       1.0,
	},
}
