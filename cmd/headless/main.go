// cmd/headless/main.go
//
// Безголовый пакетный прогон: N боёв с последовательными сидами, запись
// исходов и событий в SQLite. Используется для баланса и подбора весов
// линейных контроллеров.
package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"go-battle-arena/internal/ai"
	"go-battle-arena/internal/app"
	"go-battle-arena/internal/config"
	"go-battle-arena/internal/defs"
	"go-battle-arena/internal/record"
	"go-battle-arena/internal/types"
)

func main() {
	configPath := flag.String("config", "", "путь к файлу конфигурации (yaml)")
	flag.Parse()

	v := viper.New()
	v.SetDefault("seed", int64(42))
	v.SetDefault("battles", 10)
	v.SetDefault("difficulty", 2)
	v.SetDefault("base_hp", 0.0)
	v.SetDefault("max_ticks", 60*60*5) // пять минут боя
	v.SetDefault("controller.player", "tree")
	v.SetDefault("controller.enemy", "tree")
	v.SetDefault("defs_dir", "")
	v.SetDefault("record_path", "arena.db")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			boot := zerolog.New(os.Stderr)
			boot.Fatal().Err(err).Msg("read config")
		}
	}

	level, err := zerolog.ParseLevel(v.GetString("log_level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	if dir := v.GetString("defs_dir"); dir != "" {
		if err := loadDefs(dir); err != nil {
			logger.Fatal().Err(err).Msg("load definition overrides")
		}
	}
	if err := defs.ValidateLibraries(); err != nil {
		logger.Fatal().Err(err).Msg("definition libraries inconsistent")
	}

	recorder, err := record.Open(v.GetString("record_path"), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open recorder")
	}
	defer recorder.Close()

	seed := v.GetInt64("seed")
	battles := v.GetInt("battles")
	node := app.NodeConfig{
		Difficulty: v.GetInt("difficulty"),
		BaseHP:     v.GetFloat64("base_hp"),
	}
	maxTicks := v.GetInt("max_ticks")

	victories := 0
	for i := 0; i < battles; i++ {
		battleSeed := seed + int64(i)
		b := app.NewBattle(battleSeed, logger.With().Int64("seed", battleSeed).Logger())
		b.SetController(types.SidePlayer, buildController(v.GetString("controller.player"), b))
		b.SetController(types.SideEnemy, buildController(v.GetString("controller.enemy"), b))
		recorder.Attach(b.Dispatcher, b.State)

		b.Start(node)
		for t := 0; t < maxTicks && b.State.Outcome == nil; t++ {
			b.Update(config.TickStep, app.NoIntent())
		}
		if b.State.Outcome == nil {
			b.ForceEnd(false, "timeout")
		}
		if b.State.Outcome.Victory {
			victories++
		}
		if err := recorder.FinishBattle(battleSeed, node.Difficulty, b.State); err != nil {
			logger.Error().Err(err).Msg("record battle")
		}
	}

	logger.Info().
		Int("battles", battles).
		Int("victories", victories).
		Float64("win_rate", float64(victories)/float64(battles)).
		Msg("batch finished")
}

// buildController собирает контроллер стороны по имени из конфигурации.
func buildController(name string, b *app.Battle) ai.Controller {
	tree := ai.NewTreeController()
	switch name {
	case "rangebias":
		return ai.NewRangeBiasController(tree, 1.25, 0.35)
	case "linear":
		lc := ai.NewLinearController(tree, b.Rng)
		// Стартовые веса: повреждённый держит дистанцию и чаще уклоняется.
		lc.RangeWeights = [5]float64{-0.8, 0, 0, 0.3, 0.2}
		lc.EvadeWeights = [5]float64{-2.4, 0.5, 0, -0.6, 0.4}
		lc.EvadeBias = -1.2
		return lc
	default:
		return tree
	}
}

// loadDefs подтягивает JSON-переопределения каталогов из каталога.
func loadDefs(dir string) error {
	if err := defs.LoadMaterialDefinitions(dir + "/materials.json"); err != nil {
		return err
	}
	if err := defs.LoadPartDefinitions(dir + "/parts.json"); err != nil {
		return err
	}
	return defs.LoadTemplateDefinitions(dir + "/templates.json")
}
