package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hoshinonyaruko/jungle-snake/config"
	"github.com/hoshinonyaruko/jungle-snake/memimg"
	"github.com/hoshinonyaruko/jungle-snake/render"
	"github.com/hoshinonyaruko/jungle-snake/session"
	"github.com/hoshinonyaruko/jungle-snake/snake"
	"github.com/hoshinonyaruko/jungle-snake/sound"
	"github.com/hoshinonyaruko/jungle-snake/sqlite"
	"github.com/hoshinonyaruko/jungle-snake/structs"
	"github.com/hoshinonyaruko/jungle-snake/tui"
)

const (
	configPath = "./config.json"
	logPath    = "./jungle-snake.log"
)

func main() {
	// 终端被游戏画面占用，日志写到文件
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %s", logPath, err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	// 初始化配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	EnsureFoldersExist(cfg.Sprites, cfg.Output)

	store, err := sqlite.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open high score database: %s", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 载入精灵图到内存并热更新
	sprites := memimg.NewCache(cfg.Blocksize)
	if err := sprites.LoadDir(cfg.Sprites); err != nil {
		log.Printf("Loading sprites from %s: %s", cfg.Sprites, err)
	}
	go func() {
		if err := sprites.Watch(ctx, cfg.Sprites); err != nil {
			log.Printf("Sprite watcher stopped: %s", err)
		}
	}()

	grid, err := snake.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		log.Fatalf("Invalid grid: %s", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := snake.NewEngine(grid, nil, rand.New(rand.NewSource(seed)))
	controller := session.New(engine, store, cfg.HighScoreKey)

	// 没有声卡时照常运行
	player := sound.NewPlayer(cfg.Sound)
	if err := player.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v", err)
	}
	defer player.Cleanup()
	controller.AddListener(player)

	board := render.NewBoard(sprites, cfg.Blocksize)
	controller.OnGameOver(func(snap structs.Snapshot, sb structs.Scoreboard) {
		fileName := filepath.Join(config.GetConfigValue("output").(string), "final.png")
		if err := board.SavePNG(snap, fileName); err != nil {
			log.Printf("Saving final board: %s", err)
			return
		}
		log.Printf("Game over: score %d level %d high score %d, board saved to %s", sb.FinalScore, sb.FinalLevel, sb.HighScore, fileName)
	})

	screen, err := tui.Open()
	if err != nil {
		log.Fatalf("Failed to open terminal: %s", err)
	}
	defer screen.Fini()
	controller.AddRenderer(screen)
	controller.SetPresenter(screen)

	go func() {
		err := config.Watch(ctx, configPath, func(c config.AppConfig) {
			player.SetEnabled(c.Sound)
			sprites.SetBlockSize(c.Blocksize)
			board.SetBlockSize(c.Blocksize)
			if g, err := snake.NewGrid(c.Width, c.Height); err == nil {
				controller.Resize(g)
			}
		})
		if err != nil {
			log.Printf("Config watcher stopped: %s", err)
		}
	}()

	if err := controller.Run(ctx, screen.Keys()); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Game loop stopped: %s", err)
	}
}

// EnsureFoldersExist 检查并创建必需的文件夹
func EnsureFoldersExist(folders ...string) {
	for _, folder := range folders {
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			// 文件夹不存在，尝试创建它
			if err := os.MkdirAll(folder, 0755); err != nil {
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		}
	}
}
