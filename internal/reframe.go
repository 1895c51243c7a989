package internal

import (
	"fmt"
	"math"
)

// Frame is a width × height pair in pixels
type Frame struct {
	Width  int
	Height int
}

// ReframePlan scales the source and cuts a centered target-sized window out of it
type ReframePlan struct {
	ScaleWidth  int
	ScaleHeight int
	CropWidth   int
	CropHeight  int
	CropX       int
	CropY       int
}

// PlanReframe scales src to the target height and centers a crop window of the
// target size. Sources that would end up narrower than the target are scaled to
// the target width instead so the window is always filled.
func PlanReframe(src, target Frame) (ReframePlan, error) {
	if src.Width <= 0 || src.Height <= 0 {
		return ReframePlan{}, fmt.Errorf("invalid source frame %dx%d", src.Width, src.Height)
	}
	if target.Width <= 0 || target.Height <= 0 {
		return ReframePlan{}, fmt.Errorf("invalid target frame %dx%d", target.Width, target.Height)
	}

	scaleW := evenCeil(float64(src.Width) * float64(target.Height) / float64(src.Height))
	scaleH := target.Height
	if scaleW < target.Width {
		scaleW = target.Width
		scaleH = evenCeil(float64(src.Height) * float64(target.Width) / float64(src.Width))
		if scaleH < target.Height {
			scaleH = target.Height
		}
	}

	return ReframePlan{
		ScaleWidth:  scaleW,
		ScaleHeight: scaleH,
		CropWidth:   target.Width,
		CropHeight:  target.Height,
		CropX:       (scaleW - target.Width) / 2,
		CropY:       (scaleH - target.Height) / 2,
	}, nil
}

// Filter renders the plan as an ffmpeg filter chain
func (p ReframePlan) Filter() string {
	return fmt.Sprintf("scale=%d:%d,crop=%d:%d:%d:%d,setsar=1",
		p.ScaleWidth, p.ScaleHeight, p.CropWidth, p.CropHeight, p.CropX, p.CropY)
}

// evenCeil rounds v to the nearest integer and bumps odd results up by one;
// libx264 requires even dimensions
func evenCeil(v float64) int {
	n := int(math.Round(v))
	if n%2 != 0 {
		n++
	}
	return n
}
