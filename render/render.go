// Package render 用 gg 把快照画成图片
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/hoshinonyaruko/jungle-snake/memimg"
	"github.com/hoshinonyaruko/jungle-snake/structs"
)

// 没有精灵图时使用的颜色
var (
	ColorBackground = color.NRGBA{R: 0x1a, G: 0x3a, B: 0x1a, A: 0xff}
	ColorGrid       = color.NRGBA{R: 107, G: 157, B: 58, A: 26}
	ColorHead       = color.NRGBA{R: 0x2d, G: 0x50, B: 0x16, A: 0xff}
	ColorBody       = color.NRGBA{R: 0x4a, G: 0x7c, B: 0x2c, A: 0xff}
	ColorEye        = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	ColorFood       = color.NRGBA{R: 0xff, G: 0x8c, B: 0x42, A: 0xff}
	ColorTree       = color.NRGBA{R: 0x3e, G: 0x6b, B: 0x1f, A: 0xff}
	ColorTrunk      = color.NRGBA{R: 0x5c, G: 0x40, B: 0x33, A: 0xff}
	ColorStone      = color.NRGBA{R: 0x80, G: 0x80, B: 0x7a, A: 0xff}
)

// Board 把快照画成图片，只读取快照，不修改
type Board struct {
	sprites *memimg.Cache

	mu        sync.RWMutex
	blockSize int
}

// NewBoard 创建画板，sprites 为 nil 时全部使用默认颜色
func NewBoard(sprites *memimg.Cache, blockSize int) *Board {
	return &Board{sprites: sprites, blockSize: blockSize}
}

// SetBlockSize 修改格子像素大小，下一次 Draw 生效
func (b *Board) SetBlockSize(blockSize int) {
	b.mu.Lock()
	b.blockSize = blockSize
	b.mu.Unlock()
}

func (b *Board) BlockSize() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.blockSize
}

func (b *Board) sprite(name string) (image.Image, bool) {
	if b.sprites == nil {
		return nil, false
	}
	return b.sprites.Get(name)
}

// Draw 渲染整个地图
func (b *Board) Draw(snap structs.Snapshot) image.Image {
	// 一次绘制内格子大小不变
	f := frame{Board: b, blockSize: b.BlockSize()}
	width := snap.Width * f.blockSize
	height := snap.Height * f.blockSize
	dc := gg.NewContext(width, height)

	f.drawBackground(dc, width, height)
	f.drawGrid(dc, width, height)

	for _, obs := range snap.Obstacles {
		f.drawObstacle(dc, obs)
	}
	f.drawFood(dc, snap.Food)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		f.drawSegment(dc, snap.Snake[i], i == 0, snap.Direction)
	}
	return dc.Image()
}

type frame struct {
	*Board
	blockSize int
}

// SavePNG 渲染并保存为 png
func (b *Board) SavePNG(snap structs.Snapshot, fileName string) error {
	if err := os.MkdirAll(filepath.Dir(fileName), os.ModePerm); err != nil {
		return err
	}
	if err := gg.SavePNG(fileName, b.Draw(snap)); err != nil {
		return fmt.Errorf("save %s: %w", fileName, err)
	}
	return nil
}

func (f frame) drawBackground(dc *gg.Context, width, height int) {
	bg, found := f.sprite(memimg.SpriteBackground)
	if !found {
		dc.SetColor(ColorBackground)
		dc.Clear()
		return
	}
	dc.DrawImage(imaging.Fill(bg, width, height, imaging.Center, imaging.Lanczos), 0, 0)
}

func (f frame) drawGrid(dc *gg.Context, width, height int) {
	dc.SetColor(ColorGrid)
	dc.SetLineWidth(0.5)
	for x := 0; x <= width; x += f.blockSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += f.blockSize {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

func (f frame) center(p structs.Position) (float64, float64, float64) {
	size := float64(f.blockSize)
	return float64(p.X)*size + size/2, float64(p.Y)*size + size/2, size/2 - 1
}

func (f frame) drawSprite(dc *gg.Context, name string, p structs.Position) bool {
	img, found := f.sprite(name)
	if !found {
		return false
	}
	dc.DrawImage(img, p.X*f.blockSize, p.Y*f.blockSize)
	return true
}

func (f frame) drawObstacle(dc *gg.Context, obs structs.Obstacle) {
	name := memimg.SpriteTree
	if obs.Kind == structs.Stone {
		name = memimg.SpriteStone
	}
	if f.drawSprite(dc, name, obs.Position) {
		return
	}

	cx, cy, r := f.center(obs.Position)
	if obs.Kind == structs.Stone {
		dc.SetColor(ColorStone)
		dc.DrawEllipse(cx, cy+r/6, r, r*0.8)
		dc.Fill()
		return
	}
	dc.SetColor(ColorTrunk)
	dc.DrawRectangle(cx-r/4, cy, r/2, r)
	dc.Fill()
	dc.SetColor(ColorTree)
	dc.DrawCircle(cx, cy-r/6, r*0.8)
	dc.Fill()
}

func (f frame) drawFood(dc *gg.Context, p structs.Position) {
	if f.drawSprite(dc, memimg.SpriteFood, p) {
		return
	}
	cx, cy, r := f.center(p)
	dc.SetColor(ColorFood)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()
}

func (f frame) drawSegment(dc *gg.Context, p structs.Position, head bool, dir structs.Direction) {
	name := memimg.SpriteBody
	if head {
		name = memimg.SpriteHead
	}
	if f.drawSprite(dc, name, p) {
		return
	}

	cx, cy, r := f.center(p)
	if !head {
		dc.SetColor(ColorBody)
		dc.DrawCircle(cx, cy, r)
		dc.Fill()
		return
	}
	dc.SetColor(ColorHead)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	// 眼睛朝向移动方向，放在蛇头的前半部分
	angle := math.Atan2(float64(dir.Y), float64(dir.X))
	for _, side := range []float64{-1, 1} {
		a := angle + side*math.Pi/4
		ex := cx + math.Cos(a)*r*0.55
		ey := cy + math.Sin(a)*r*0.55
		dc.SetColor(ColorEye)
		dc.DrawCircle(ex, ey, r*0.2)
		dc.Fill()
	}
}
