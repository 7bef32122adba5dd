package snake

import "github.com/hoshinonyaruko/jungle-snake/structs"

// Steer 缓存玩家的下一个方向，两次刷新之间只保留最后一次有效输入。
// 竖直方向只在水平移动时接受，水平方向只在竖直移动时接受，
// 判断基于当前生效的方向而不是缓存的方向。
func (e *Engine) Steer(dir structs.Direction) bool {
	s := e.session
	if s == nil || !s.Running || dir.IsZero() {
		return false
	}

	switch {
	case dir.X == 0 && s.Direction.Y == 0:
		s.Pending = dir
		return true
	case dir.Y == 0 && s.Direction.X == 0:
		s.Pending = dir
		return true
	}
	return false
}

// HandleInput 把输入转换成方向，非方向输入忽略
func (e *Engine) HandleInput(in structs.Input) bool {
	dir, ok := in.Direction()
	if !ok {
		return false
	}
	return e.Steer(dir)
}
