// internal/app/factory.go
package app

import (
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/types"
)

// NewUnitFromTemplate собирает юнита из шаблона каталога. Возвращает nil
// при некорректном шаблоне: пустая сетка, дубль координат, битая ссылка на
// материал/часть/несущую ячейку, несвязная структура или не ровно одно
// ядро управления. Позицию на арене выставляет вызывающий.
func NewUnitFromTemplate(id types.UnitID, side types.Side, templateID string) *component.Unit {
	tmpl, ok := defs.TemplateDefs[templateID]
	if !ok || len(tmpl.Cells) == 0 {
		return nil
	}

	facing := 1
	if side == types.SideEnemy {
		facing = -1
	}
	u := &component.Unit{
		ID:           id,
		Side:         side,
		Type:         tmpl.Type,
		Template:     tmpl.ID,
		Facing:       facing,
		Alive:        true,
		Control:      -1,
		SelectedSlot: -1,
	}

	seen := make(map[[2]int]bool, len(tmpl.Cells))
	for i, tc := range tmpl.Cells {
		if _, ok := defs.MaterialDefs[tc.Material]; !ok {
			return nil
		}
		key := [2]int{tc.X, tc.Y}
		if seen[key] {
			return nil
		}
		seen[key] = true
		u.Cells = append(u.Cells, &component.StructureCell{
			ID:       i,
			X:        tc.X,
			Y:        tc.Y,
			Material: tc.Material,
		})
	}
	if !cellsConnected(u.Cells) {
		return nil
	}

	controls := 0
	for i, ta := range tmpl.Attachments {
		part, ok := defs.PartDefs[ta.Part]
		if !ok {
			return nil
		}
		anchor := u.CellAt(ta.X, ta.Y)
		if anchor == nil {
			return nil
		}
		u.Attachments = append(u.Attachments, &component.Attachment{
			ID:       i,
			Part:     ta.Part,
			Cell:     anchor.ID,
			Rotation: ta.Rotation & 3,
			Alive:    true,
		})
		switch part.Kind {
		case defs.PartControl:
			controls++
			u.Control = i
		case defs.PartWeapon:
			u.Slots = append(u.Slots, &component.WeaponSlot{Attachment: i, AutoFire: true})
		case defs.PartLoader:
			u.Loaders = append(u.Loaders, &component.LoaderState{Attachment: i, TargetSlot: -1})
		}
	}
	if controls != 1 {
		return nil
	}
	return u
}

// cellsConnected проверяет связность сетки по 4-соседству от первой ячейки.
func cellsConnected(cells []*component.StructureCell) bool {
	if len(cells) == 0 {
		return false
	}
	coords := make(map[[2]int]int, len(cells))
	for _, c := range cells {
		coords[[2]int{c.X, c.Y}] = c.ID
	}
	visited := make(map[int]bool, len(cells))
	queue := []*component.StructureCell{cells[0]}
	visited[cells[0].ID] = true
	head := 0
	for head < len(queue) {
		cur := queue[head]
		head++
		for _, off := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			if id, ok := coords[[2]int{cur.X + off[0], cur.Y + off[1]}]; ok && !visited[id] {
				visited[id] = true
				queue = append(queue, cells[id])
			}
		}
	}
	return len(visited) == len(cells)
}
