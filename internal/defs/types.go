// internal/defs/types.go
package defs

import "go-battle-arena/internal/types"

// WeaponClass defines the ammunition class of a weapon.
type WeaponClass string

const (
	ClassGun       WeaponClass = "GUN"       // обычная пушка, без загрузчика
	ClassHeavy     WeaponClass = "HEAVY"     // тяжёлый снаряд, требует загрузчик
	ClassExplosive WeaponClass = "EXPLOSIVE" // фугас, требует загрузчик
	ClassTracking  WeaponClass = "TRACKING"  // самонаводящийся, требует загрузчик
)

// RequiresLoader reports whether the class needs a dedicated loader to fire.
func (c WeaponClass) RequiresLoader() bool {
	switch c {
	case ClassHeavy, ClassExplosive, ClassTracking:
		return true
	}
	return false
}

// DeliveryMode defines how a projectile leaves the muzzle.
type DeliveryMode string

const (
	DeliveryDirect DeliveryMode = "DIRECT"
	DeliveryBomb   DeliveryMode = "BOMB" // половинная скорость, гравитация ×1.35
)

// FuseMode defines when an explosive round detonates.
type FuseMode string

const (
	FuseImpact FuseMode = "IMPACT"
	FuseTimed  FuseMode = "TIMED"
)

// PartKind defines the functional category of an attachment part.
type PartKind string

const (
	PartWeapon  PartKind = "WEAPON"
	PartEngine  PartKind = "ENGINE"
	PartLoader  PartKind = "LOADER"
	PartControl PartKind = "CONTROL"
	PartFuel    PartKind = "FUEL"
)

// MaterialDefinition holds the static data for one armor material.
type MaterialDefinition struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Mass float64 `json:"mass"`
	// Armor нелинейно гасит входящий урон, см. ApplyHitToUnit.
	Armor float64 `json:"armor"`
	// BreakThreshold — накопленная деформация, при которой ячейка разрушается.
	BreakThreshold float64 `json:"break_threshold"`
	// Recovery — пассивное восстановление деформации, ед/с. Разрушенные
	// ячейки не восстанавливаются никогда.
	Recovery float64 `json:"recovery"`
}

// BlastStats describes the explosive payload of a weapon.
type BlastStats struct {
	Radius       float64  `json:"radius"`
	FalloffPower float64  `json:"falloff_power"`
	Fuse         FuseMode `json:"fuse"`
	FuseTime     float64  `json:"fuse_time,omitempty"`
}

// HomingStats describes tracking-round steering.
type HomingStats struct {
	TurnRateDeg float64 `json:"turn_rate_deg"`
}

// WeaponStats contains parameters related to a weapon part.
type WeaponStats struct {
	Class         WeaponClass  `json:"class"`
	Damage        float64      `json:"damage"`
	Cooldown      float64      `json:"cooldown"` // секунды между выстрелами
	Range         float64      `json:"range"`
	MuzzleSpeed   float64      `json:"muzzle_speed"`
	SpreadDeg     float64      `json:"spread_deg"`
	ShootAngleDeg float64      `json:"shoot_angle_deg"` // полуугол конуса стрельбы
	Delivery      DeliveryMode `json:"delivery"`
	PierceAir     bool         `json:"pierce_air,omitempty"`
	Blast         *BlastStats  `json:"blast,omitempty"`
	Homing        *HomingStats `json:"homing,omitempty"`
}

// EngineStats contains parameters related to an engine part.
type EngineStats struct {
	Power    float64 `json:"power"`
	SpeedCap float64 `json:"speed_cap"`
}

// LoaderStats contains parameters related to a loader part.
type LoaderStats struct {
	Classes       []WeaponClass `json:"classes"`
	MinLoadTime   float64       `json:"min_load_time"`
	LoadMult      float64       `json:"load_mult"`
	BurstInterval float64       `json:"burst_interval"` // минимальный интервал очереди
	FastOperation bool          `json:"fast_operation"`
	StoreCapacity int           `json:"store_capacity"`
}

// Supports reports whether the loader can service the given weapon class.
func (l *LoaderStats) Supports(c WeaponClass) bool {
	for _, cl := range l.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// PartDefinition holds all the static data for a specific attachment part.
// Exactly one of Weapon/Engine/Loader is set for the matching kind.
type PartDefinition struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Kind   PartKind     `json:"kind"`
	Mass   float64      `json:"mass"`
	Weapon *WeaponStats `json:"weapon,omitempty"`
	Engine *EngineStats `json:"engine,omitempty"`
	Loader *LoaderStats `json:"loader,omitempty"`
}

// TemplateCell — одна ячейка структуры в шаблоне юнита.
type TemplateCell struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Material string `json:"material"`
}

// TemplateAttachment — модуль, закреплённый на ячейке шаблона.
type TemplateAttachment struct {
	Part     string `json:"part"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Rotation int    `json:"rotation"` // 0–3 четверти оборота
}

// TemplateDefinition holds all the static data for a deployable unit template.
type TemplateDefinition struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Type        types.UnitType       `json:"type"`
	GasCost     float64              `json:"gas_cost"`
	Cells       []TemplateCell       `json:"cells"`
	Attachments []TemplateAttachment `json:"attachments"`
}

// SpawnEntry — элемент взвешенной таблицы появления юнитов противника.
type SpawnEntry struct {
	TemplateID string `json:"template_id"`
	Weight     int    `json:"weight"`
}

// DifficultyDefinition описывает экономику противника для одного уровня
// сложности узла кампании.
type DifficultyDefinition struct {
	GasRate  float64      `json:"gas_rate"`
	ArmyCap  int          `json:"army_cap"`
	StartGas float64      `json:"start_gas"`
	Spawns   []SpawnEntry `json:"spawns"`
}
