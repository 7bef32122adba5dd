package memimg

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

// 精灵图名称，对应目录中的文件名（不含扩展名）
const (
	SpriteHead       = "head"
	SpriteBody       = "body"
	SpriteFood       = "food"
	SpriteTree       = "tree"
	SpriteStone      = "stone"
	SpriteBackground = "background"
)

// backgroundBlur 背景图的模糊程度
const backgroundBlur = 3.5

// Cache 内存中的精灵图，按格子大小预先缩放
type Cache struct {
	mu        sync.RWMutex
	images    map[string]image.Image
	sources   map[string]string
	blockSize int
}

func NewCache(blockSize int) *Cache {
	return &Cache{
		images:    make(map[string]image.Image),
		sources:   make(map[string]string),
		blockSize: blockSize,
	}
}

// LoadDir 载入目录中的所有图片，不存在的目录视为空
// 读不了的图片记录日志后跳过，不影响其他图片
func (c *Cache) LoadDir(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isImage(path) {
			return nil
		}
		if err := c.Load(path); err != nil {
			log.Printf("sprite %s skipped: %v", path, err)
		}
		return nil
	})
}

// Load 读取单个图片，缩放后放进缓存
func (c *Cache) Load(path string) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[spriteName(path)] = c.scale(path, img)
	c.sources[spriteName(path)] = path
	return nil
}

func (c *Cache) scale(path string, img image.Image) image.Image {
	if spriteName(path) == SpriteBackground {
		return imaging.Blur(img, backgroundBlur)
	}
	return imaging.Resize(img, c.blockSize, c.blockSize, imaging.Lanczos)
}

// SetBlockSize 修改格子大小，已载入的图片从源文件重新缩放
func (c *Cache) SetBlockSize(blockSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if blockSize == c.blockSize {
		return
	}
	c.blockSize = blockSize
	for name, path := range c.sources {
		img, err := LoadImage(path)
		if err != nil {
			log.Printf("sprite %s not rescaled: %v", path, err)
			delete(c.images, name)
			continue
		}
		c.images[name] = c.scale(path, img)
	}
}

func (c *Cache) BlockSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blockSize
}

func (c *Cache) Get(name string) (image.Image, bool) {
	c.mu.RLock()
	img, exists := c.images[name]
	c.mu.RUnlock()
	return img, exists
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Watch 检测目录变化并热更新到内存，直到 ctx 结束
func (c *Cache) Watch(ctx context.Context, directory string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(directory); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isImage(event.Name) {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := c.Load(event.Name); err != nil {
					// 文件可能还没写完，等下一次写事件
					log.Printf("sprite %s not loaded: %v", event.Name, err)
				}
			}
			if event.Op&fsnotify.Remove == fsnotify.Remove {
				c.mu.Lock()
				delete(c.images, spriteName(event.Name))
				delete(c.sources, spriteName(event.Name))
				c.mu.Unlock()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("sprite watcher error:", err)
		}
	}
}

func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func spriteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
