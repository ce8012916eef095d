// internal/app/intents.go
package app

// InputIntent — намерение игрока на один тик для юнита под ручным
// управлением. Прицел и огонь — состояние указателя, они живут на Battle
// (SetAim/SetFire); здесь только то, что имеет смысл на каждый тик.
type InputIntent struct {
	MoveX, MoveY float64
	SelectSlot   int // индекс оружейного слота, -1 — не менять
}

// NoIntent — пустое намерение для безголовых прогонов.
func NoIntent() InputIntent {
	return InputIntent{SelectSlot: -1}
}
