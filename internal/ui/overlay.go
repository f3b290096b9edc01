//go:build ebiten

package ui

import (
	"image/color"

	"mad-wfc/internal/core"
	"mad-wfc/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	EntropyMask() []float32
	ContradictionMask() []float32
}

// Overlay draws the solver's uncertainty and contradiction masks on top of
// the output. Keys 1 and 2 toggle them.
type Overlay struct {
	sim         core.Sim
	scale       int
	showEntropy bool
	showBroken  bool
	maskImg     *ebiten.Image
	maskBuf     []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, showBroken: true}
}

// Update handles the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showEntropy = !o.showEntropy
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showBroken = !o.showBroken
	}
}

// Draw renders the enabled masks onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(maskProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	if o.showEntropy {
		o.drawMask(screen, provider.EntropyMask(), color.RGBA{R: 64, G: 164, B: 223})
	}
	if o.showBroken {
		o.drawMask(screen, provider.ContradictionMask(), color.RGBA{R: 255, G: 60, B: 40})
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	if len(mask)*4 != len(o.maskBuf) {
		return
	}
	render.FillMaskRGBA(o.maskBuf, mask, tint)
	o.maskImg.WritePixels(o.maskBuf)
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
