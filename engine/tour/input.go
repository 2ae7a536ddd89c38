package tour

import (
	"context"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// InputSource is the subset of a window the viewer listens to. Passing nil to a setter
// removes the callback.
type InputSource interface {
	SetMouseDownCallback(callback func(x, y float64))
	SetMouseUpCallback(callback func(x, y float64))
	SetMouseMoveCallback(callback func(x, y float64))
	SetMouseLeaveCallback(callback func())
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetResizeCallback(callback func(width, height int))
}

func (v *viewer) Attach(src InputSource) {
	if src == nil {
		return
	}
	if v.detach != nil {
		v.detach()
	}

	src.SetMouseDownCallback(func(x, y float64) { v.PointerDown(x, y) })
	src.SetMouseUpCallback(func(float64, float64) { v.PointerUp() })
	src.SetMouseMoveCallback(func(x, y float64) { v.PointerMove(x, y) })
	src.SetMouseLeaveCallback(v.PointerLeave)
	// Wheel notches away from the user zoom in, matching a negative browser deltaY.
	src.SetScrollCallback(func(notches float32) { v.Wheel(-float64(notches) * v.wheelNotch) })
	src.SetKeyDownCallback(func(keyCode uint32) { v.HandleKey(keyCode) })
	src.SetResizeCallback(v.Resize)

	v.detach = func() {
		src.SetMouseDownCallback(nil)
		src.SetMouseUpCallback(nil)
		src.SetMouseMoveCallback(nil)
		src.SetMouseLeaveCallback(nil)
		src.SetScrollCallback(nil)
		src.SetKeyDownCallback(nil)
		src.SetResizeCallback(nil)
	}
}

func (v *viewer) HandleKey(keyCode uint32) bool {
	if idx, ok := common.SceneKey(keyCode); ok {
		return v.SwitchSceneIndex(idx)
	}

	switch keyCode {
	case common.KeyR:
		v.ResetView()
	case common.KeyEqual, common.KeyKPAdd:
		v.ZoomIn()
	case common.KeyMinus, common.KeyKPSubtract:
		v.ZoomOut()
	case common.KeyF:
		v.ToggleFullscreen()
	case common.KeyLeft:
		v.CarouselPrev()
	case common.KeyRight:
		v.CarouselNext()
	case common.KeyI:
		v.ToggleInfo()
	case common.KeyC:
		v.ToggleCarousel()
	case common.KeyM:
		v.ToggleFloorplan()
	case common.KeyH:
		v.ToggleHotspots()
	case common.KeyS:
		v.Share(context.Background())
	case common.KeyEsc:
		return v.Close()
	default:
		return false
	}
	return true
}
