// internal/record/recorder.go
package record

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-battle-arena/internal/component"
	"go-battle-arena/internal/event"
	"go-battle-arena/internal/types"
)

// Recorder пишет события и исходы боёв в SQLite для последующего анализа
// пакетных прогонов. Подписывается на диспетчер боя; события копятся в
// памяти и сбрасываются одной транзакцией по завершении боя.
type Recorder struct {
	db    *gorm.DB
	log   zerolog.Logger
	state *component.BattleState

	pending []BattleEvent
}

// Open открывает (или создаёт) базу записи. Путь ":memory:" даёт
// одноразовую базу в памяти — удобно в тестах.
func Open(path string, log zerolog.Logger) (*Recorder, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open record db %q: %w", path, err)
	}
	if err := db.AutoMigrate(&BattleRecord{}, &BattleEvent{}); err != nil {
		return nil, fmt.Errorf("migrate record db: %w", err)
	}
	return &Recorder{db: db, log: log}, nil
}

// Attach подписывает рекордер на события боя. Состояние нужно для номера
// тика в момент события.
func (r *Recorder) Attach(d *event.Dispatcher, state *component.BattleState) {
	r.state = state
	r.pending = r.pending[:0]
	for _, t := range []event.EventType{
		event.UnitDeployed,
		event.UnitDestroyed,
		event.CellDestroyed,
		event.BaseDamaged,
		event.BattleEnded,
	} {
		d.Subscribe(t, r)
	}
}

// OnEvent реализует event.Listener.
func (r *Recorder) OnEvent(e event.Event) {
	be := BattleEvent{Type: string(e.Type)}
	if r.state != nil {
		be.Tick = r.state.Ticks
	}
	switch data := e.Data.(type) {
	case event.UnitPayload:
		be.Side = string(data.Side)
		be.UnitID = int(data.UnitID)
		be.Detail = data.Template
		if data.Reason != "" {
			be.Detail = data.Template + ":" + data.Reason
		}
	case event.CellPayload:
		be.UnitID = int(data.UnitID)
		be.Detail = fmt.Sprintf("cell=%d", data.CellID)
	case event.BasePayload:
		be.Side = string(data.Side)
		be.Detail = fmt.Sprintf("damage=%.1f hp=%.1f", data.Damage, data.HP)
	case event.OutcomePayload:
		be.Detail = data.Reason
	}
	r.pending = append(r.pending, be)
}

// FinishBattle сохраняет итог боя и накопленные события одной транзакцией.
func (r *Recorder) FinishBattle(seed int64, difficulty int, state *component.BattleState) error {
	rec := BattleRecord{
		Seed:       seed,
		Difficulty: difficulty,
		Ticks:      state.Ticks,
		Duration:   state.Time,
	}
	if state.Outcome != nil {
		rec.Victory = state.Outcome.Victory
		rec.Reason = state.Outcome.Reason
	}
	if state.PlayerBase != nil {
		rec.PlayerBaseHP = state.PlayerBase.HP
	}
	if state.EnemyBase != nil {
		rec.EnemyBaseHP = state.EnemyBase.HP
	}
	rec.PlayerUnits = state.AliveCount(types.SidePlayer)
	rec.EnemyUnits = state.AliveCount(types.SideEnemy)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if len(r.pending) == 0 {
			return nil
		}
		for i := range r.pending {
			r.pending[i].BattleID = rec.ID
		}
		return tx.CreateInBatches(r.pending, 200).Error
	})
	if err != nil {
		return fmt.Errorf("flush battle record: %w", err)
	}
	r.log.Debug().
		Uint("battle_id", rec.ID).
		Int("events", len(r.pending)).
		Msg("battle recorded")
	r.pending = r.pending[:0]
	return nil
}

// Close закрывает соединение с базой.
func (r *Recorder) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
