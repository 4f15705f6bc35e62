package render

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kamstrup/intmap"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/status"
	"github.com/lixenwraith/broadside/vmath"
)

// sprite is the scene's copy of one attached entity
type sprite struct {
	kind      core.Kind
	visual    core.Visual
	transform component.Transform
}

// layer orders drawing; later layers paint over earlier ones
func (s sprite) layer() int {
	switch s.kind {
	case core.KindExplosion:
		return 0
	case core.KindTreasure:
		return 1
	case core.KindBullet:
		return 2
	case core.KindEnemy:
		return 3
	default:
		return 4
	}
}

// Renderer is the terminal scene, camera and HUD
// Thread-Safety: the tick goroutine writes through the engine interfaces,
// the render goroutine reads in Draw; mu guards all state
type Renderer struct {
	mu      sync.Mutex
	screen  tcell.Screen
	sprites *intmap.Map[core.Entity, sprite]
	view    view
	hud     engine.Snapshot
	metrics *status.Registry // nil hides the debug line
	frames  int64
}

// NewRenderer creates a renderer on an initialized screen
// metrics may be nil
func NewRenderer(screen tcell.Screen, preset core.CameraView, metrics *status.Registry) *Renderer {
	return &Renderer{
		screen:  screen,
		sprites: intmap.New[core.Entity, sprite](64),
		view:    view{scale: presetScale(preset), preset: preset},
		metrics: metrics,
	}
}

// Attach implements engine.Scene
func (r *Renderer) Attach(id core.Entity, kind core.Kind, v core.Visual, t component.Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sprites.Put(id, sprite{kind: kind, visual: v, transform: t})
}

// Detach implements engine.Scene
func (r *Renderer) Detach(id core.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sprites.Del(id)
}

// Update implements engine.Scene, unknown ids are ignored
func (r *Renderer) Update(id core.Entity, t component.Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sprites.Get(id); ok {
		s.transform = t
		r.sprites.Put(id, s)
	}
}

// Follow implements engine.Camera
func (r *Renderer) Follow(target vmath.Vec3F) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view.center = target
}

// SetPreset implements engine.Camera
func (r *Renderer) SetPreset(v core.CameraView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view.preset = v
	r.view.scale = presetScale(v)
}

// ZoomTowards implements engine.Camera
func (r *Renderer) ZoomTowards(point vmath.Vec3F) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view.zoomOut(point)
}

// HUDUpdate stores the latest snapshot; see HUD for the engine.HUD adapter
func (r *Renderer) HUDUpdate(s engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hud = s
}

// HUD returns the renderer's engine.HUD face
// Scene and HUD both name their method Update, so the HUD lives on an adapter
func (r *Renderer) HUD() engine.HUD {
	return hudAdapter{r}
}

type hudAdapter struct{ r *Renderer }

func (h hudAdapter) Update(s engine.Snapshot) { h.r.HUDUpdate(s) }

// Sprites returns the number of attached entities
func (r *Renderer) Sprites() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sprites.Len()
}

// Scale returns the current world units per column
func (r *Renderer) Scale() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view.scale
}

// Sync repaints the whole terminal, used after resize
func (r *Renderer) Sync() {
	r.screen.Sync()
}

// Draw renders one frame
func (r *Renderer) Draw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := r.screen.Size()
	r.screen.Clear()
	if w <= 0 || h <= 2 {
		r.screen.Show()
		return
	}

	// Row 0 is the HUD, the last row is the debug line when metrics are set
	top, bottom := 1, h
	if r.metrics != nil {
		bottom = h - 1
	}
	viewH := bottom - top

	sea := tcell.StyleDefault.Background(RgbSea)
	r.drawSea(top, w, viewH, sea)
	r.drawSprites(top, w, viewH, sea)
	r.drawHUD(w)
	if r.hud.GameOver {
		r.drawBanner(top, w, viewH, sea)
	}
	if r.metrics != nil {
		r.drawMetrics(h-1, w)
	}

	r.screen.Show()
	r.frames++
}

// drawSea fills the viewport and scatters ripples anchored in world space
func (r *Renderer) drawSea(top, w, h int, style tcell.Style) {
	ripple := style.Foreground(RgbSeaRipple)
	cellZ := r.view.scale * parameter.CameraCellAspect
	for row := 0; row < h; row++ {
		wz := r.view.center.Z + float64(h/2-row)*cellZ
		for col := 0; col < w; col++ {
			wx := r.view.center.X + float64(col-w/2)*r.view.scale
			ch := ' '
			st := style
			// Ripples every 24 world units so motion is visible against the water
			if int(math.Floor(wx/24))%3 == 0 && int(math.Floor(wz/24))%4 == 0 &&
				math.Mod(math.Abs(wx), 24) < r.view.scale && math.Mod(math.Abs(wz), 24) < cellZ {
				ch = '~'
				st = ripple
			}
			r.screen.SetContent(col, top+row, ch, nil, st)
		}
	}
}

func (r *Renderer) drawSprites(top, w, h int, sea tcell.Style) {
	list := make([]sprite, 0, r.sprites.Len())
	r.sprites.ForEach(func(_ core.Entity, s sprite) bool {
		list = append(list, s)
		return true
	})
	slices.SortStableFunc(list, func(a, b sprite) int { return a.layer() - b.layer() })

	for _, s := range list {
		col, row := r.view.project(s.transform.Position, w, h)
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		glyph := s.visual.Glyph
		if glyph == 0 {
			glyph = '?'
		}
		r.screen.SetContent(col, top+row, glyph, nil, sea.Foreground(colorOf(s.visual.Color)))

		if s.kind == core.KindPlayer {
			r.drawHeading(s.transform, top, w, h, sea)
		}
	}
}

// drawHeading marks the cell ahead of the player's nose
func (r *Renderer) drawHeading(t component.Transform, top, w, h int, sea tcell.Style) {
	nose := vmath.WrapYaw(t.Yaw + math.Pi)
	ahead := vmath.Translate(t.Position, nose, 2*r.view.scale*parameter.CameraCellAspect)
	col, row := r.view.project(ahead, w, h)
	if col < 0 || col >= w || row < 0 || row >= h {
		return
	}
	r.screen.SetContent(col, top+row, '·', nil, sea.Foreground(RgbHeading))
}

// hudLine formats the status strip text
func hudLine(s engine.Snapshot, view core.CameraView) string {
	elapsed := s.Elapsed.Truncate(time.Second)
	return fmt.Sprintf(" Treasure %d │ Sunk %d │ Hull %d │ %s │ %s ",
		s.TreasureCollected, s.ShipsDestroyed, s.Health, formatElapsed(elapsed), view)
}

func formatElapsed(d time.Duration) string {
	m := int(d / time.Minute)
	sec := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d", m, sec)
}

func (r *Renderer) drawHUD(w int) {
	bar := tcell.StyleDefault.Background(RgbHUDBar).Foreground(RgbHUD)
	for col := 0; col < w; col++ {
		r.screen.SetContent(col, 0, ' ', nil, bar)
	}
	if r.hud.Health <= parameter.ShipInitialHealth/4 {
		bar = bar.Foreground(RgbHealthLow)
	}
	drawText(r.screen, 0, 0, w, hudLine(r.hud, r.view.preset), bar)
}

func (r *Renderer) drawBanner(top, w, h int, sea tcell.Style) {
	style := sea.Foreground(RgbGameOver).Bold(true)
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("%d treasure, %d ships sunk", r.hud.TreasureCollected, r.hud.ShipsDestroyed),
	}
	for i, line := range lines {
		x := (w - runewidth.StringWidth(line)) / 2
		drawText(r.screen, max(x, 0), top+h/2-1+i, w, line, style)
	}
}

// drawMetrics prints the status registry as sorted key=value pairs
func (r *Renderer) drawMetrics(row, w int) {
	snap := r.metrics.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	fmt.Fprintf(&sb, " frames=%d", r.frames)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%d", k, snap[k])
	}
	drawText(r.screen, 0, row, w, sb.String(), tcell.StyleDefault.Foreground(RgbDebug))
}

// drawText writes s from column x, clipped at width w; wide runes take two cells
func drawText(screen tcell.Screen, x, y, w int, s string, style tcell.Style) {
	s = runewidth.Truncate(s, w-x, "…")
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		screen.SetContent(x, y, ch, nil, style)
		x += cw
	}
}
