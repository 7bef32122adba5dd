package memimg

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func writeSprite(t *testing.T, path string, size int) {
	t.Helper()
	img := imaging.New(size, size, color.NRGBA{R: 200, G: 80, B: 20, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

func TestLoadDirScalesSprites(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, filepath.Join(dir, "tree.png"), 64)
	writeSprite(t, filepath.Join(dir, "food.jpg"), 48)
	writeSprite(t, filepath.Join(dir, "background.png"), 100)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewCache(20)
	if err := c.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("loaded %d sprites, want 3", c.Len())
	}

	for _, name := range []string{SpriteTree, SpriteFood} {
		img, ok := c.Get(name)
		if !ok {
			t.Fatalf("%s missing", name)
		}
		if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
			t.Errorf("%s is %dx%d, want 20x20", name, b.Dx(), b.Dy())
		}
	}
	bg, ok := c.Get(SpriteBackground)
	if !ok || bg.Bounds().Dx() != 100 {
		t.Errorf("background should keep its size, got %v", bg)
	}
}

func TestLoadDirMissing(t *testing.T) {
	c := NewCache(20)
	if err := c.LoadDir(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("LoadDir on missing dir: %v", err)
	}
	if _, ok := c.Get(SpriteHead); ok {
		t.Error("unexpected sprite")
	}
}

func TestWatchPicksUpNewSprites(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(16)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx, dir) }()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if img, ok := c.Get(SpriteStone); ok {
			if img.Bounds().Dx() != 16 {
				t.Errorf("stone is %d wide, want 16", img.Bounds().Dx())
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch: %v", err)
			}
			return
		}
		select {
		case <-ticker.C:
			writeSprite(t, filepath.Join(dir, "stone.png"), 32)
		case <-ctx.Done():
			t.Fatal("sprite never reloaded")
		}
	}
}

func TestLoadDirSkipsBrokenSprite(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, filepath.Join(dir, "head.png"), 32)
	if err := os.WriteFile(filepath.Join(dir, "body.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	writeSprite(t, filepath.Join(dir, "tree.png"), 32)

	c := NewCache(16)
	if err := c.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if _, ok := c.Get(SpriteBody); ok {
		t.Error("broken sprite loaded")
	}
	for _, name := range []string{SpriteHead, SpriteTree} {
		if _, ok := c.Get(name); !ok {
			t.Errorf("%s missing after a broken neighbour", name)
		}
	}
}

func TestSetBlockSizeRescales(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, filepath.Join(dir, "food.png"), 64)
	writeSprite(t, filepath.Join(dir, "background.png"), 100)

	c := NewCache(10)
	if err := c.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	c.SetBlockSize(24)

	if c.BlockSize() != 24 {
		t.Errorf("BlockSize() = %d, want 24", c.BlockSize())
	}
	food, ok := c.Get(SpriteFood)
	if !ok {
		t.Fatal("food missing after rescale")
	}
	if b := food.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Errorf("food is %dx%d, want 24x24", b.Dx(), b.Dy())
	}
	if bg, _ := c.Get(SpriteBackground); bg == nil || bg.Bounds().Dx() != 100 {
		t.Errorf("background should keep its size, got %v", bg)
	}
}
