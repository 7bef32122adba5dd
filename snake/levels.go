package snake

import (
	"time"

	"github.com/hoshinonyaruko/jungle-snake/structs"
)

// Levels 等级表，按 MinScore 从小到大排列
var Levels = []structs.LevelRule{
	{MinScore: 0, TickInterval: 150 * time.Millisecond, Obstacles: 0, Name: "Jungle Newbie"},
	{MinScore: 50, TickInterval: 120 * time.Millisecond, Obstacles: 3, Name: "Snake Apprentice"},
	{MinScore: 100, TickInterval: 100 * time.Millisecond, Obstacles: 6, Name: "Jungle Hunter"},
	{MinScore: 200, TickInterval: 80 * time.Millisecond, Obstacles: 10, Name: "Apex Predator"},
	{MinScore: 300, TickInterval: 60 * time.Millisecond, Obstacles: 15, Name: "Jungle Legend"},
}

// LevelNumber 返回分数能达到的最高等级编号（从1开始），都达不到时返回1
func LevelNumber(levels []structs.LevelRule, score int) int {
	for i := len(levels) - 1; i >= 0; i-- {
		if score >= levels[i].MinScore {
			return i + 1
		}
	}
	return 1
}

// CurrentLevel 返回分数对应的等级规则，都达不到时返回第一条
func CurrentLevel(levels []structs.LevelRule, score int) structs.LevelRule {
	return levels[LevelNumber(levels, score)-1]
}
