// internal/system/structure.go
package system

import (
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/event"
)

// StructureIntegrity возвращает долю живых ячеек ∈ [0,1]. Используется ИИ
// как прокси здоровья: отдельного пула хитпоинтов у юнита нет.
func StructureIntegrity(u *component.Unit) float64 {
	if len(u.Cells) == 0 {
		return 0
	}
	return float64(u.AliveCellCount()) / float64(len(u.Cells))
}

// ApplyHitToUnit наносит урон конкретной ячейке. Броня материала гасит
// эффективный урон нелинейно: eff = dmg² / (dmg + armor). Накопленная
// деформация сверх порога разрушает ячейку (с каскадом связности).
// Возвращает true, если ячейка была разрушена этим попаданием.
func ApplyHitToUnit(u *component.Unit, cellID int, damage float64, d *event.Dispatcher) bool {
	cell := u.CellByID(cellID)
	if cell == nil || cell.Destroyed || damage <= 0 {
		// Битая ссылка или мёртвая ячейка — защитный пропуск, не ошибка.
		return false
	}
	mat, ok := defs.MaterialDefs[cell.Material]
	if !ok {
		return false
	}

	eff := damage
	if mat.Armor > 0 {
		eff = damage * damage / (damage + mat.Armor)
	}
	cell.Strain += eff

	if cell.Strain >= mat.BreakThreshold {
		cell.Strain = mat.BreakThreshold
		DestroyCell(u, cellID, d)
		return true
	}
	return false
}

// DestroyCell помечает ячейку разрушенной (идемпотентно), отцепляет
// закреплённый на ней модуль и прогоняет BFS-достижимость от ячейки ядра
// управления по живым ячейкам (4-соседство по целочисленным координатам).
// Все недостижимые живые ячейки разрушаются до неподвижной точки. Потеря
// связности и есть смерть: отдельной машины состояний у юнита нет.
func DestroyCell(u *component.Unit, cellID int, d *event.Dispatcher) {
	cell := u.CellByID(cellID)
	if cell == nil || cell.Destroyed {
		return
	}
	destroyCellOnly(u, cell, d)

	ctrl := u.ControlAttachment()
	if ctrl == nil || !ctrl.Alive {
		KillUnit(u, "control-lost", d)
		return
	}
	ctrlCell := u.CellByID(ctrl.Cell)
	if ctrlCell == nil || ctrlCell.Destroyed {
		KillUnit(u, "control-lost", d)
		return
	}

	// Карта координата→ячейка строится на каждый скан: ячейки разрушаются
	// редко относительно тиков, постоянная структура смежности не окупается.
	coords := make(map[[2]int]*component.StructureCell, len(u.Cells))
	for _, c := range u.Cells {
		if !c.Destroyed {
			coords[[2]int{c.X, c.Y}] = c
		}
	}

	visited := make(map[int]bool, len(u.Cells))
	queue := []*component.StructureCell{ctrlCell}
	visited[ctrlCell.ID] = true
	head := 0
	for head < len(queue) {
		cur := queue[head]
		head++
		for _, off := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next, ok := coords[[2]int{cur.X + off[0], cur.Y + off[1]}]
			if ok && !visited[next.ID] {
				visited[next.ID] = true
				queue = append(queue, next)
			}
		}
	}

	for _, c := range u.Cells {
		if !c.Destroyed && !visited[c.ID] {
			destroyCellOnly(u, c, d)
		}
	}

	if u.AliveCellCount() == 0 {
		KillUnit(u, "structure", d)
	}
}

// destroyCellOnly — разрушение одной ячейки без каскада: флаг, отцепка
// модуля, событие.
func destroyCellOnly(u *component.Unit, cell *component.StructureCell, d *event.Dispatcher) {
	cell.Destroyed = true
	cell.Strain = 0
	for _, a := range u.Attachments {
		if a.Alive && a.Cell == cell.ID {
			a.Alive = false
		}
	}
	d.Dispatch(event.Event{Type: event.CellDestroyed, Data: event.CellPayload{
		UnitID: u.ID,
		CellID: cell.ID,
	}})
}

// KillUnit помечает юнита мёртвым и публикует событие. Повторные вызовы
// безвредны.
func KillUnit(u *component.Unit, reason string, d *event.Dispatcher) {
	if !u.Alive {
		return
	}
	u.Alive = false
	d.Dispatch(event.Event{Type: event.UnitDestroyed, Data: event.UnitPayload{
		UnitID:   u.ID,
		Side:     u.Side,
		Template: u.Template,
		Reason:   reason,
	}})
}

// StructureSystem отвечает за пассивное восстановление деформации живых
// ячеек. Разрушенные ячейки не восстанавливаются никогда.
type StructureSystem struct {
	dispatcher *event.Dispatcher
}

func NewStructureSystem(dispatcher *event.Dispatcher) *StructureSystem {
	return &StructureSystem{dispatcher: dispatcher}
}

func (s *StructureSystem) Update(state *component.BattleState, dt float64) {
	for _, u := range state.Units {
		if !u.Alive {
			continue
		}
		for _, c := range u.Cells {
			if c.Destroyed || c.Strain <= 0 {
				continue
			}
			mat, ok := defs.MaterialDefs[c.Material]
			if !ok {
				continue
			}
			c.Strain -= mat.Recovery * dt
			if c.Strain < 0 {
				c.Strain = 0
			}
		}
	}
}
