// internal/component/unit.go
package component

import (
	"math"

	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/types"
)

// StructureCell — одна разрушаемая ячейка брони в сетке юнита.
// Ячейки адресуются целочисленными координатами сетки; деформация (Strain)
// копится от попаданий и никогда не превышает порога разрушения материала,
// не разрушив ячейку.
type StructureCell struct {
	ID        int
	X, Y      int
	Material  string
	Strain    float64
	Destroyed bool
}

// Attachment — функциональный модуль (оружие/двигатель/загрузчик/ядро),
// закреплённый на одной ячейке. Перекрёстные ссылки — по малым целым ID,
// а не по указателям.
type Attachment struct {
	ID       int
	Part     string
	Cell     int // ID несущей ячейки
	Rotation int // 0–3 четверти оборота от направления носа
	Alive    bool
}

// WeaponSlot — производное представление оружейного модуля: таймер
// перезарядки, авто-огонь и заряды, подготовленные загрузчиками.
type WeaponSlot struct {
	Attachment  int
	FireTimer   float64
	AutoFire    bool
	ReadyCharge int
}

// LoaderState связывает загрузчик максимум с одним оружейным слотом.
// TargetSlot = -1 означает простой.
type LoaderState struct {
	Attachment int
	TargetSlot int
	Remaining  float64
}

// Mobility — агрегированные на тик характеристики подвижности.
type Mobility struct {
	Mass     float64
	Power    float64
	RawSpeed float64 // power/mass × SpeedScale до ограничений
	MaxSpeed float64
	Accel    float64
	TurnDrag float64
}

// AirDrop — состояние принудительного падения воздушного юнита,
// потерявшего подъёмную силу. При достижении LandingY юнит разбивается
// независимо от остатка структуры.
type AirDrop struct {
	LandingY float64
}

// BlockReason — причина, по которой ИИ не нашёл план выстрела в этом тике.
type BlockReason string

const (
	BlockNone        BlockReason = ""
	BlockOutOfRange  BlockReason = "out-of-range"
	BlockAngleLocked BlockReason = "angle-locked"
)

// AIScratch — диагностические и накопительные поля ИИ на юните.
type AIScratch struct {
	AimBiasY     float64 // накопленная вертикальная поправка прицела
	TargetID     types.UnitID
	AttackX      float64
	AttackY      float64
	DecisionPath string // трасса узлов дерева за последний тик
	Block        BlockReason
}

// Unit — боевая единица, собранная из ячеек и модулей.
type Unit struct {
	ID       types.UnitID
	Side     types.Side
	Type     types.UnitType
	Template string

	X, Y   float64
	VX, VY float64
	Facing int // +1 — нос вправо, -1 — влево
	Alive  bool

	Cells       []*StructureCell
	Attachments []*Attachment
	Control     int // ID модуля-ядра управления

	Slots        []*WeaponSlot
	Loaders      []*LoaderState
	SelectedSlot int // выбранный игроком слот, -1 — нет

	Mobility Mobility
	Drop     *AirDrop
	AI       AIScratch
}

// CellByID возвращает ячейку по ID или nil.
func (u *Unit) CellByID(id int) *StructureCell {
	if id < 0 || id >= len(u.Cells) {
		return nil
	}
	return u.Cells[id]
}

// CellAt возвращает живую ячейку по координатам сетки или nil.
func (u *Unit) CellAt(x, y int) *StructureCell {
	for _, c := range u.Cells {
		if !c.Destroyed && c.X == x && c.Y == y {
			return c
		}
	}
	return nil
}

// AttachmentByID возвращает модуль по ID или nil.
func (u *Unit) AttachmentByID(id int) *Attachment {
	if id < 0 || id >= len(u.Attachments) {
		return nil
	}
	return u.Attachments[id]
}

// ControlAttachment возвращает модуль ядра управления.
func (u *Unit) ControlAttachment() *Attachment {
	return u.AttachmentByID(u.Control)
}

// AttachmentOnCell возвращает живой модуль, закреплённый на ячейке, или nil.
func (u *Unit) AttachmentOnCell(cellID int) *Attachment {
	for _, a := range u.Attachments {
		if a.Alive && a.Cell == cellID {
			return a
		}
	}
	return nil
}

// AliveCellCount возвращает количество неразрушенных ячеек.
func (u *Unit) AliveCellCount() int {
	n := 0
	for _, c := range u.Cells {
		if !c.Destroyed {
			n++
		}
	}
	return n
}

// CellWorldPos возвращает центр ячейки в мировых координатах с учётом
// направления носа.
func (u *Unit) CellWorldPos(c *StructureCell) (float64, float64) {
	return u.X + float64(c.X)*config.CellSize*float64(u.Facing),
		u.Y - float64(c.Y)*config.CellSize
}

// CellRect возвращает прямоугольник ячейки в экранных координатах.
func (u *Unit) CellRect(c *StructureCell) (minX, minY, maxX, maxY float64) {
	cx, cy := u.CellWorldPos(c)
	half := config.CellSize / 2
	return cx - half, cy - half, cx + half, cy + half
}

// Speed возвращает модуль текущей скорости.
func (u *Unit) Speed() float64 {
	return math.Sqrt(u.VX*u.VX + u.VY*u.VY)
}

// SlotWeapon разрешает оружейный слот в статы оружия из каталога частей.
// Возвращает false, если модуль мёртв или ссылка битая (защитный пропуск).
func (u *Unit) SlotWeapon(slotIdx int) (*defs.WeaponStats, bool) {
	if slotIdx < 0 || slotIdx >= len(u.Slots) {
		return nil, false
	}
	att := u.AttachmentByID(u.Slots[slotIdx].Attachment)
	if att == nil || !att.Alive {
		return nil, false
	}
	part, ok := defs.PartDefs[att.Part]
	if !ok || part.Weapon == nil {
		return nil, false
	}
	return part.Weapon, true
}

// LoaderStatsFor разрешает состояние загрузчика в статы из каталога частей.
func (u *Unit) LoaderStatsFor(l *LoaderState) (*defs.LoaderStats, bool) {
	att := u.AttachmentByID(l.Attachment)
	if att == nil || !att.Alive {
		return nil, false
	}
	part, ok := defs.PartDefs[att.Part]
	if !ok || part.Loader == nil {
		return nil, false
	}
	return part.Loader, true
}

// MuzzleWorldPos возвращает позицию среза ствола слота: центр несущей ячейки.
func (u *Unit) MuzzleWorldPos(slotIdx int) (float64, float64) {
	if slotIdx < 0 || slotIdx >= len(u.Slots) {
		return u.X, u.Y
	}
	att := u.AttachmentByID(u.Slots[slotIdx].Attachment)
	if att == nil {
		return u.X, u.Y
	}
	cell := u.CellByID(att.Cell)
	if cell == nil {
		return u.X, u.Y
	}
	return u.CellWorldPos(cell)
}

// WeaponFacingAngle возвращает мировое направление ствола слота с учётом
// направления носа и четвертьоборотного поворота модуля. Ось Y экранная
// (вниз), поэтому "вверх" — отрицательный угол.
func (u *Unit) WeaponFacingAngle(slotIdx int) float64 {
	rot := 0
	if slotIdx >= 0 && slotIdx < len(u.Slots) {
		if att := u.AttachmentByID(u.Slots[slotIdx].Attachment); att != nil {
			rot = att.Rotation & 3
		}
	}
	var angle float64
	switch rot {
	case 1:
		angle = -math.Pi / 2
	case 2:
		angle = math.Pi
	case 3:
		angle = math.Pi / 2
	}
	if u.Facing < 0 {
		// Зеркалим по горизонтали: вперёд становится назад, верх/низ на месте.
		angle = math.Pi - angle
		if angle > math.Pi {
			angle -= 2 * math.Pi
		}
	}
	return angle
}

// HasOperationalWeapons сообщает, остался ли хоть один живой оружейный слот.
func (u *Unit) HasOperationalWeapons() bool {
	for i := range u.Slots {
		if _, ok := u.SlotWeapon(i); ok {
			return true
		}
	}
	return false
}
