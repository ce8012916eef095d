// internal/record/recorder_test.go
package record

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-battle-arena/internal/component"
	"go-battle-arena/internal/event"
	"go-battle-arena/internal/types"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	r, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRecorderPersistsBattleSummary(t *testing.T) {
	r := newTestRecorder(t)

	state := &component.BattleState{
		Ticks:      1234,
		Time:       20.57,
		Outcome:    &component.Outcome{Victory: true, Reason: "enemy-base-destroyed"},
		PlayerBase: &component.Base{HP: 800, MaxHP: 1000},
		EnemyBase:  &component.Base{HP: 0, MaxHP: 1000},
	}
	require.NoError(t, r.FinishBattle(42, 2, state))

	var rec BattleRecord
	require.NoError(t, r.db.First(&rec).Error)
	assert.Equal(t, int64(42), rec.Seed)
	assert.Equal(t, 2, rec.Difficulty)
	assert.Equal(t, 1234, rec.Ticks)
	assert.True(t, rec.Victory)
	assert.Equal(t, "enemy-base-destroyed", rec.Reason)
	assert.Equal(t, 800.0, rec.PlayerBaseHP)
}

func TestRecorderCollectsEventsFromDispatcher(t *testing.T) {
	r := newTestRecorder(t)

	d := event.NewDispatcher()
	state := &component.BattleState{
		PlayerBase: &component.Base{HP: 1000, MaxHP: 1000},
		EnemyBase:  &component.Base{HP: 1000, MaxHP: 1000},
	}
	r.Attach(d, state)

	state.Ticks = 10
	d.Dispatch(event.Event{Type: event.UnitDeployed, Data: event.UnitPayload{
		UnitID: 1, Side: types.SidePlayer, Template: "T_SCOUT",
	}})
	state.Ticks = 250
	d.Dispatch(event.Event{Type: event.UnitDestroyed, Data: event.UnitPayload{
		UnitID: 1, Side: types.SidePlayer, Template: "T_SCOUT", Reason: "structure",
	}})
	// Выстрелы не записываются: их тысячи за бой, аналитике они не нужны.
	d.Dispatch(event.Event{Type: event.ProjectileFired, Data: event.FirePayload{Source: 1}})

	state.Outcome = &component.Outcome{Victory: false, Reason: "player-base-destroyed"}
	require.NoError(t, r.FinishBattle(7, 1, state))

	var events []BattleEvent
	require.NoError(t, r.db.Order("id").Find(&events).Error)
	require.Len(t, events, 2)

	assert.Equal(t, string(event.UnitDeployed), events[0].Type)
	assert.Equal(t, 10, events[0].Tick)
	assert.Equal(t, "T_SCOUT", events[0].Detail)

	assert.Equal(t, string(event.UnitDestroyed), events[1].Type)
	assert.Equal(t, 250, events[1].Tick)
	assert.Equal(t, "T_SCOUT:structure", events[1].Detail)

	var rec BattleRecord
	require.NoError(t, r.db.First(&rec).Error)
	assert.Equal(t, rec.ID, events[0].BattleID)
	assert.Equal(t, rec.ID, events[1].BattleID)
}

func TestRecorderResetsBetweenBattles(t *testing.T) {
	r := newTestRecorder(t)

	d := event.NewDispatcher()
	state := &component.BattleState{
		PlayerBase: &component.Base{HP: 1000, MaxHP: 1000},
		EnemyBase:  &component.Base{HP: 1000, MaxHP: 1000},
	}
	r.Attach(d, state)
	d.Dispatch(event.Event{Type: event.UnitDeployed, Data: event.UnitPayload{UnitID: 1}})
	require.NoError(t, r.FinishBattle(1, 1, state))

	// Повторная подписка нового боя не должна тащить события прошлого.
	r.Attach(d, state)
	require.NoError(t, r.FinishBattle(2, 1, state))

	var count int64
	require.NoError(t, r.db.Model(&BattleEvent{}).Where("battle_id = ?", 2).Count(&count).Error)
	assert.Zero(t, count)
}
