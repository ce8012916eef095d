// internal/defs/parts.go
package defs

// PartDefs is the library of all attachment parts, mapped by their ID.
// Может быть переопределена из JSON через LoadPartDefinitions.
var PartDefs = map[string]PartDefinition{
	"CTRL_CORE": {
		ID:   "CTRL_CORE",
		Name: "Control core",
		Kind: PartControl,
		Mass: 1.2,
	},
	"FUEL_TANK": {
		ID:   "FUEL_TANK",
		Name: "Fuel tank",
		Kind: PartFuel,
		Mass: 1.0,
	},

	"ENGINE_SMALL": {
		ID:     "ENGINE_SMALL",
		Name:   "Light engine",
		Kind:   PartEngine,
		Mass:   1.4,
		Engine: &EngineStats{Power: 40, SpeedCap: 120},
	},
	"ENGINE_LARGE": {
		ID:     "ENGINE_LARGE",
		Name:   "Heavy engine",
		Kind:   PartEngine,
		Mass:   2.8,
		Engine: &EngineStats{Power: 90, SpeedCap: 160},
	},
	"ENGINE_LIFT": {
		ID:     "ENGINE_LIFT",
		Name:   "Lift engine",
		Kind:   PartEngine,
		Mass:   2.0,
		Engine: &EngineStats{Power: 70, SpeedCap: 140},
	},

	"GUN_LIGHT": {
		ID:   "GUN_LIGHT",
		Name: "Autogun",
		Kind: PartWeapon,
		Mass: 1.2,
		Weapon: &WeaponStats{
			Class:         ClassGun,
			Damage:        12,
			Cooldown:      0.5,
			Range:         240,
			MuzzleSpeed:   340,
			SpreadDeg:     2.5,
			ShootAngleDeg: 28,
			Delivery:      DeliveryDirect,
		},
	},
	"GUN_AA": {
		ID:   "GUN_AA",
		Name: "Flak gun",
		Kind: PartWeapon,
		Mass: 1.5,
		Weapon: &WeaponStats{
			Class:         ClassGun,
			Damage:        9,
			Cooldown:      0.35,
			Range:         300,
			MuzzleSpeed:   400,
			SpreadDeg:     3.5,
			ShootAngleDeg: 55,
			Delivery:      DeliveryDirect,
			// Наземный стрелок может простреливать сквозь воздушные цели.
			PierceAir: true,
		},
	},
	"GUN_HEAVY": {
		ID:   "GUN_HEAVY",
		Name: "Heavy cannon",
		Kind: PartWeapon,
		Mass: 3.2,
		Weapon: &WeaponStats{
			Class:         ClassHeavy,
			Damage:        40,
			Cooldown:      2.2,
			Range:         320,
			MuzzleSpeed:   300,
			SpreadDeg:     1.5,
			ShootAngleDeg: 18,
			Delivery:      DeliveryDirect,
		},
	},
	"BOMB_LAUNCHER": {
		ID:   "BOMB_LAUNCHER",
		Name: "Bomb launcher",
		Kind: PartWeapon,
		Mass: 2.6,
		Weapon: &WeaponStats{
			Class:         ClassExplosive,
			Damage:        34,
			Cooldown:      3.0,
			Range:         260,
			MuzzleSpeed:   260,
			SpreadDeg:     4.0,
			ShootAngleDeg: 40,
			Delivery:      DeliveryBomb,
			Blast: &BlastStats{
				Radius:       70,
				FalloffPower: 1.6,
				Fuse:         FuseImpact,
			},
		},
	},
	"MORTAR": {
		ID:   "MORTAR",
		Name: "Mortar",
		Kind: PartWeapon,
		Mass: 2.2,
		Weapon: &WeaponStats{
			Class:         ClassExplosive,
			Damage:        28,
			Cooldown:      2.6,
			Range:         300,
			MuzzleSpeed:   240,
			SpreadDeg:     5.0,
			ShootAngleDeg: 50,
			Delivery:      DeliveryDirect,
			Blast: &BlastStats{
				Radius:       56,
				FalloffPower: 1.3,
				Fuse:         FuseTimed,
				FuseTime:     2.4,
			},
		},
	},
	"MISSILE_POD": {
		ID:   "MISSILE_POD",
		Name: "Missile pod",
		Kind: PartWeapon,
		Mass: 2.4,
		Weapon: &WeaponStats{
			Class:         ClassTracking,
			Damage:        26,
			Cooldown:      2.6,
			Range:         360,
			MuzzleSpeed:   220,
			SpreadDeg:     6.0,
			ShootAngleDeg: 60,
			Delivery:      DeliveryDirect,
			Homing:        &HomingStats{TurnRateDeg: 120},
			Blast: &BlastStats{
				Radius:       40,
				FalloffPower: 1.8,
				Fuse:         FuseImpact,
			},
		},
	},

	"LOADER_STD": {
		ID:   "LOADER_STD",
		Name: "Shell loader",
		Kind: PartLoader,
		Mass: 1.8,
		Loader: &LoaderStats{
			Classes:       []WeaponClass{ClassHeavy, ClassExplosive},
			MinLoadTime:   0.8,
			LoadMult:      1.0,
			BurstInterval: 0.35,
			StoreCapacity: 1,
		},
	},
	"LOADER_AUTO": {
		ID:   "LOADER_AUTO",
		Name: "Autoloader",
		Kind: PartLoader,
		Mass: 2.0,
		Loader: &LoaderStats{
			Classes:       []WeaponClass{ClassTracking},
			MinLoadTime:   0.5,
			LoadMult:      0.8,
			BurstInterval: 0.25,
			FastOperation: true,
			StoreCapacity: 2,
		},
	},
}
