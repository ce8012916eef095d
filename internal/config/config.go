// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 700

	// TickStep — фиксированный шаг симуляции (секунды).
	TickStep     = 1.0 / 60.0
	MaxDeltaTime = 0.06

	// Геометрия арены. Ось Y направлена вниз (экранные координаты).
	ArenaWidth  = 1200.0
	ArenaHeight = 700.0
	GroundY     = 600.0
	AirMinY     = 80.0
	AirMaxY     = 520.0

	// CellSize — размер одной структурной ячейки в пикселях.
	CellSize = 12.0

	Gravity        = 320.0 // ускорение снарядов, пикс/с²
	AirDropGravity = 540.0 // свободное падение сбитого воздушного юнита

	// Мобильность.
	SpeedScale            = 16.0 // перевод power/mass в пикс/с
	AccelFactor           = 0.92 // ускорение как доля "сырой" скорости
	AccelSpeedCapFactor   = 1.6  // ускорение не превышает 1.6 × maxSpeed
	TurnDragMin           = 0.80 // демпфирование на нулевой скорости
	TurnDragMax           = 0.94 // демпфирование на полной скорости
	AirLiftSpeedThreshold = 26.0 // ниже этой скорости воздушный юнит падает

	// Загрузчики.
	FastLoadFactor = 0.82
	SlowLoadFactor = 1.08

	// Снаряды.
	ProjectileMinTTL        = 2.0
	ProjectileTTLSpeedFloor = 120.0
	BombSpeedFactor         = 0.5
	BombGravityFactor       = 1.35

	// Вертикальные допуски. Два независимых параметра: первый используется
	// ИИ при проверке "выстрел заблокирован", второй — реальной коллизией
	// снаряда с воздушной целью. Не объединять, баланс настраивается порознь.
	GroundFireBlockToleranceY = 46.0
	AirHitToleranceY          = 30.0

	// Выбор цели.
	TargetAltitudeWeight      = 0.7
	TargetClosingSpeedRef     = 40.0
	TargetClosingPenaltyScale = 0.2

	// Оценка плана стрельбы.
	WeaponScoreDamageWeight = 1.2
	RangeAlignmentBonusMax  = 25.0
	LeadBonusSolved         = 18.0
	LeadBonusFallback       = 9.3
	ConeAnglePenalty        = 7.0
	MaxLeadTime             = 6.0

	// Эффективная дальность: глобальный множитель плюс бонус за высоту.
	EffectiveRangeMultiplier = 1.12
	AirAltitudeRangeBonus    = 60.0

	// Поведение ИИ.
	DefaultDesiredRange     = 280.0
	EvadeIntegrityThreshold = 0.24
	AimBiasStep             = 6.0
	AimBiasLimit            = 42.0

	// Базы.
	BaseMaxHP   = 1000.0
	BaseWidth   = 60.0
	BaseHeight  = 140.0
	PlayerBaseX = 30.0
	EnemyBaseX  = ArenaWidth - 30.0 - BaseWidth

	// Зоны появления юнитов.
	PlayerSpawnX = 140.0
	EnemySpawnX  = ArenaWidth - 140.0

	// Экономика противника (масштабируется сложностью узла при старте).
	EnemyBaseGasRate = 3.0
	EnemyBaseArmyCap = 4
	EnemyStartGas    = 40.0
	EnemyGasCap      = 260.0
	EnemySpawnPeriod = 2.5
	PlayerStartGas   = 120.0
	PlayerArmyCap    = 8

	// Эффекты.
	DebrisTTL     = 0.9
	DebrisPerCell = 4
	DebrisScatter = 90.0
	HitFlashTTL   = 0.22
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	GroundColor      = color.RGBA{46, 52, 64, 255}
	PlayerColor      = color.RGBA{80, 170, 255, 255}
	EnemyColor       = color.RGBA{235, 90, 80, 255}
	BaseColor        = color.RGBA{50, 205, 50, 255}
	BaseDamagedColor = color.RGBA{205, 92, 50, 255}
	ProjectileColor  = color.RGBA{255, 230, 120, 255}
	TrackingColor    = color.RGBA{180, 120, 255, 255}
	DebrisColor      = color.RGBA{160, 160, 160, 255}
	FlashColor       = color.RGBA{255, 255, 255, 200}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	CellStrokeColor  = color.RGBA{255, 255, 255, 60}
)
