// internal/record/models.go
package record

import "time"

// BattleRecord — итоговая строка одного боя.
type BattleRecord struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Seed       int64
	Difficulty int
	Ticks      int
	Duration   float64
	Victory    bool
	Reason     string

	PlayerBaseHP float64
	EnemyBaseHP  float64
	PlayerUnits  int
	EnemyUnits   int
}

// BattleEvent — одно событие симуляции, привязанное к бою и тику.
// Detail хранит небольшой свободный хвост (шаблон, причина, урон),
// достаточно строки: аналитика идёт простыми запросами.
type BattleEvent struct {
	ID       uint `gorm:"primarykey"`
	BattleID uint `gorm:"index"`

	Tick   int
	Type   string `gorm:"index"`
	Side   string
	UnitID int
	Detail string
}
