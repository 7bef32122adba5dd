package config

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads filePath whenever it is written and hands the new values to
// onChange. Invalid files are logged and the previous configuration stays
// current. Blocks until ctx is done.
//
// The game applies width, height, blocksize and sound from a reload. Grid
// size waits for the next game; database, sprites, output, seed and
// highscore_key are read once at startup.
func Watch(ctx context.Context, filePath string, onChange func(AppConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// watch the directory: editors often save by renaming over the file
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		return err
	}
	target := filepath.Clean(filePath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(filePath)
			if err != nil {
				log.Printf("config reload rejected: %v", err)
				continue
			}
			log.Printf("config reloaded from %s", filePath)
			if onChange != nil {
				onChange(*cfg)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("config watcher error:", err)
		}
	}
}
