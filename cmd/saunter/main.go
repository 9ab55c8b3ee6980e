package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/saunter/saunter/internal/command"
	"github.com/saunter/saunter/internal/config"
	"github.com/saunter/saunter/internal/game"
	"github.com/saunter/saunter/internal/persist"
	"github.com/saunter/saunter/internal/scripting"
	"github.com/saunter/saunter/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config.
	cfgPath := "saunter.toml"
	if p := os.Getenv("SAUNTER_CONFIG"); p != "" {
		cfgPath = p
	}
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger.
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load and build the world.
	def, err := persist.LoadWorldDef(cfg.Game.WorldFile)
	if err != nil {
		return fmt.Errorf("world definition: %w", err)
	}
	seed := cfg.Random.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, err := persist.Build(def, seed)
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	log.Info("world loaded",
		zap.String("title", w.Game.Title),
		zap.Int("rooms", len(w.Rooms)),
		zap.Int("items", len(w.Items)),
		zap.Int("npcs", len(w.Npcs)),
		zap.Int("triggers", len(w.Triggers)),
		zap.Int64("seed", seed),
	)

	// 4. Assemble the engine, with optional Lua hooks.
	v := view.New()
	eng := game.New(w, v, log, cfg)
	if cfg.Game.ScriptsDir != "" {
		scripts, err := scripting.NewEngine(cfg.Game.ScriptsDir, eng, log)
		if err != nil {
			return fmt.Errorf("script engine: %w", err)
		}
		if scripts != nil {
			defer scripts.Close()
			eng.Scripts = scripts
			log.Info("script hooks enabled", zap.String("dir", cfg.Game.ScriptsDir))
		}
	}

	// 5. REPL.
	renderer := &view.Renderer{Width: cfg.Display.Width}
	out := bufio.NewWriter(os.Stdout)
	printFrame := func(f view.Frame) {
		out.WriteString(renderer.Render(f))
		out.WriteString("\n")
		out.Flush()
	}

	printFrame(eng.Start())
	scanner := bufio.NewScanner(os.Stdin)
	for !eng.Done() {
		fmt.Fprint(out, "> ")
		out.Flush()
		if !scanner.Scan() {
			break
		}
		cmd := command.Parse(scanner.Text())
		printFrame(eng.RunTurn(cmd))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	// Death ends the run with its own summary frame.
	if eng.Done() && !eng.Quit() {
		eng.View.Push(eng.QuitSummary())
		printFrame(eng.View.Flush())
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	} else {
		// Player-facing text owns stdout; logs stay on stderr.
		zapCfg.OutputPaths = []string{"stderr"}
	}
	return zapCfg.Build()
}
