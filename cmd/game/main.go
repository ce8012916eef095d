// cmd/game/main.go
//
// Интерактивный клиент на Ebitengine: рендер арены, ручное управление
// юнитом по клику и выставление юнитов с клавиатуры. Вся симуляция живёт в
// internal/app — клиент только транслирует ввод и рисует состояние.
package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"go-battle-arena/internal/app"
	"go-battle-arena/internal/component"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/types"
	"go-battle-arena/internal/utils"
)

// deployKeys — раскладка цифровых клавиш на шаблоны юнитов.
var deployKeys = []struct {
	key      ebiten.Key
	template string
}{
	{ebiten.Key1, "T_SCOUT"},
	{ebiten.Key2, "T_TANK"},
	{ebiten.Key3, "T_ARTILLERY"},
	{ebiten.Key4, "T_MISSILE_PLATFORM"},
	{ebiten.Key5, "T_INTERCEPTOR"},
	{ebiten.Key6, "T_BOMBER"},
}

type Game struct {
	battle *app.Battle
	node   app.NodeConfig

	paused bool
	fast   bool
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.battle.Start(g.node)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fast = !g.fast
	}

	cx, cy := ebiten.CursorPosition()
	g.battle.SetAim(float64(cx), float64(cy))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.battle.SetControlByClick(float64(cx), float64(cy))
	}
	g.battle.SetFire(ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) ||
		ebiten.IsKeyPressed(ebiten.KeySpace))

	for _, dk := range deployKeys {
		if inpututil.IsKeyJustPressed(dk.key) {
			g.battle.DeployUnit(dk.template, true)
		}
	}

	intent := app.NoIntent()
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		intent.MoveX = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		intent.MoveX = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		intent.MoveY = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		intent.MoveY = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if u := g.battle.ControlledUnit(); u != nil && len(u.Slots) > 0 {
			intent.SelectSlot = (u.SelectedSlot + 1) % len(u.Slots)
		}
	}

	if g.paused {
		return nil
	}
	steps := 1
	if g.fast {
		steps = 3
	}
	for i := 0; i < steps; i++ {
		g.battle.Update(config.TickStep, intent)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	vector.DrawFilledRect(screen,
		0, float32(config.GroundY),
		float32(config.ArenaWidth), float32(config.ArenaHeight-config.GroundY),
		config.GroundColor, false)

	st := g.battle.GetState()
	g.drawBase(screen, st.PlayerBase)
	g.drawBase(screen, st.EnemyBase)

	controlled := g.battle.ControlledUnit()
	for _, u := range st.Units {
		g.drawUnit(screen, u, u == controlled)
	}

	for _, p := range st.Projectiles {
		c := config.ProjectileColor
		if p.TurnRate > 0 {
			c = config.TrackingColor
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 2.5, c, false)
	}
	for _, d := range st.Debris {
		vector.DrawFilledRect(screen, float32(d.X), float32(d.Y), 2, 2, config.DebrisColor, false)
	}
	for _, f := range st.Flashes {
		alpha := uint8(utils.Clamp(f.TTL/config.HitFlashTTL, 0, 1) * 200)
		c := config.FlashColor
		c.A = alpha
		vector.DrawFilledCircle(screen, float32(f.X), float32(f.Y), float32(f.Radius), c, false)
	}

	g.drawHUD(screen, st, controlled)
}

func (g *Game) drawBase(screen *ebiten.Image, b *component.Base) {
	ratio := 0.0
	if b.MaxHP > 0 {
		ratio = b.HP / b.MaxHP
	}
	c := config.BaseColor
	if ratio < 0.5 {
		c = config.BaseDamagedColor
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
	// Полоса прочности над базой.
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y-10), float32(b.W*ratio), 4, config.TextLightColor, false)
}

func (g *Game) drawUnit(screen *ebiten.Image, u *component.Unit, controlled bool) {
	side := config.PlayerColor
	if u.Side == types.SideEnemy {
		side = config.EnemyColor
	}
	for _, c := range u.Cells {
		if c.Destroyed {
			continue
		}
		minX, minY, maxX, maxY := u.CellRect(c)
		col := side
		if mat, ok := defs.MaterialDefs[c.Material]; ok && mat.BreakThreshold > 0 {
			// Затемнение по деформации: подбитая ячейка заметно тускнеет.
			k := 1 - 0.6*utils.Clamp(c.Strain/mat.BreakThreshold, 0, 1)
			col = color.RGBA{
				R: uint8(float64(side.R) * k),
				G: uint8(float64(side.G) * k),
				B: uint8(float64(side.B) * k),
				A: side.A,
			}
		}
		vector.DrawFilledRect(screen, float32(minX), float32(minY),
			float32(maxX-minX), float32(maxY-minY), col, false)
		vector.StrokeRect(screen, float32(minX), float32(minY),
			float32(maxX-minX), float32(maxY-minY), 1, config.CellStrokeColor, false)
	}
	if controlled {
		vector.StrokeCircle(screen, float32(u.X), float32(u.Y),
			float32(config.CellSize)*2.2, 1.5, config.TextLightColor, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, st *component.BattleState, controlled *component.Unit) {
	face := basicfont.Face7x13
	line := func(y int, s string) {
		text.Draw(screen, s, face, 10, y, config.TextLightColor)
	}

	line(20, fmt.Sprintf("gas %.0f | units %d/%d vs %d/%d | t=%.1fs",
		st.PlayerGas,
		st.AliveCount(types.SidePlayer), config.PlayerArmyCap,
		st.AliveCount(types.SideEnemy), st.Economy.ArmyCap,
		st.Time))
	line(36, "1-6 deploy | LMB select | RMB/space fire | WASD move | tab slot | P pause | F speed | R restart")

	if controlled != nil {
		line(52, fmt.Sprintf("unit #%d %s slot=%d charge=%v",
			controlled.ID, controlled.Template, controlled.SelectedSlot, slotCharges(controlled)))
	} else if len(st.Units) > 0 {
		u := st.Units[0]
		trace := u.AI.DecisionPath
		if u.AI.Block != component.BlockNone {
			trace += " [" + string(u.AI.Block) + "]"
		}
		line(52, fmt.Sprintf("#%d %s: %s", u.ID, u.Template, trace))
	}

	if st.Outcome != nil {
		msg := "DEFEAT: " + st.Outcome.Reason
		if st.Outcome.Victory {
			msg = "VICTORY: " + st.Outcome.Reason
		}
		text.Draw(screen, msg+"  (R to restart)", face,
			int(config.ArenaWidth/2)-120, int(config.ArenaHeight/2), config.TextLightColor)
	}
	if g.paused {
		line(68, "PAUSED")
	}
}

func slotCharges(u *component.Unit) []int {
	charges := make([]int, len(u.Slots))
	for i, s := range u.Slots {
		charges[i] = s.ReadyCharge
	}
	return charges
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	// Сид 0 — интерактивный режим, каждый запуск свой.
	battle := app.NewBattle(0, logger)
	node := app.NodeConfig{Difficulty: 2}
	battle.Start(node)

	g := &Game{battle: battle, node: node}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Battle Arena")
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game loop")
	}
}
