package engine

import (
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/event"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/status"
	"github.com/lixenwraith/broadside/vmath"
)

// World is the typed entity registry
// One optional player slot, capped enemy and chest collections, unbounded explosions
// Every mutation happens on the tick goroutine; loader callbacks only touch handles and the queue
type World struct {
	nextEntityID core.Entity

	Player     *component.PlayerShip
	Enemies    *Collection[*component.EnemyShip]
	Chests     *Collection[*component.TreasureChest]
	Explosions *Collection[*component.Explosion]

	// Orphans are bullets whose owning ship was destroyed
	// They keep flying and despawn against the owner's last position
	Orphans []*component.Bullet

	Queue  *event.EventQueue
	Status *status.Registry

	loader AssetLoader
	scene  Scene
	logger *zap.Logger

	statResolved  *atomic.Int64
	statCancelled *atomic.Int64
}

// NewWorld creates an empty registry bound to its collaborators
func NewWorld(loader AssetLoader, scene Scene, reg *status.Registry, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &World{
		nextEntityID:  1,
		Enemies:       NewCollection[*component.EnemyShip](parameter.MaxEnemyShips),
		Chests:        NewCollection[*component.TreasureChest](parameter.MaxTreasureChests),
		Explosions:    NewCollection[*component.Explosion](0),
		Queue:         event.NewEventQueue(),
		Status:        reg,
		loader:        loader,
		scene:         scene,
		logger:        logger.Named("world"),
		statResolved:  reg.Ints.Get("lifecycle.resolved"),
		statCancelled: reg.Ints.Get("lifecycle.cancelled"),
	}
}

// create reserves an id and starts asynchronous asset resolution
// The handle is returned in Loading; completion only flips the handle and queues an event
func (w *World) create(kind core.Kind) *core.Handle {
	id := w.nextEntityID
	w.nextEntityID++

	h := core.NewHandle(id, kind)
	queue := w.Queue
	w.loader.Load(kind, func(v core.Visual, err error) {
		if err != nil {
			if h.Destroy() == core.Loading {
				queue.Push(event.GameEvent{
					Type:    event.EventAssetFailed,
					Payload: &event.AssetFailedPayload{Handle: h, Err: err},
				})
			}
			return
		}
		if h.Resolve(v) {
			queue.Push(event.GameEvent{Type: event.EventEntityResolved, Payload: h})
		}
	})
	return h
}

// SpawnPlayer fills the player slot; returns the existing ship if occupied
func (w *World) SpawnPlayer(pos vmath.Vec3F, yaw float64) *component.PlayerShip {
	if w.Player != nil && w.Player.State() != core.Destroyed {
		return w.Player
	}
	p := &component.PlayerShip{
		Ship: component.Ship{
			Transform: component.Transform{Position: pos, Yaw: yaw},
			Health:    parameter.ShipInitialHealth,
			Speed:     parameter.PlayerSpeed,
		},
	}
	p.Handle = w.create(core.KindPlayer)
	w.Player = p
	return p
}

// SpawnEnemy registers an enemy ship if the cap allows
// The cap is checked before an id or asset load is committed
func (w *World) SpawnEnemy(pos vmath.Vec3F) (*component.EnemyShip, bool) {
	if w.Enemies.Full() {
		return nil, false
	}
	e := &component.EnemyShip{
		Ship: component.Ship{
			Transform: component.Transform{Position: pos},
			Health:    parameter.ShipInitialHealth,
			Speed:     parameter.EnemySpeed,
		},
	}
	e.Handle = w.create(core.KindEnemy)
	w.Enemies.Add(e)
	return e, true
}

// SpawnTreasure registers a chest if the cap allows
func (w *World) SpawnTreasure(pos vmath.Vec3F) (*component.TreasureChest, bool) {
	if w.Chests.Full() {
		return nil, false
	}
	c := &component.TreasureChest{Transform: component.Transform{Position: pos}}
	c.Handle = w.create(core.KindTreasure)
	w.Chests.Add(c)
	return c, true
}

// SpawnExplosion registers an explosion effect
func (w *World) SpawnExplosion(pos vmath.Vec3F, scale float64) *component.Explosion {
	x := &component.Explosion{
		Transform: component.Transform{Position: pos},
		Scale:     scale,
	}
	x.Handle = w.create(core.KindExplosion)
	w.Explosions.Add(x)
	return x
}

// SpawnBullet creates a bullet owned by ship at the ship's position
// Player bullets travel opposite the model's local +Z, i.e. out of the nose
func (w *World) SpawnBullet(owner *component.Ship, playerOwned bool) *component.Bullet {
	yaw := owner.Yaw
	if playerOwned {
		yaw = vmath.WrapYaw(yaw + math.Pi)
	}
	b := &component.Bullet{
		Transform:   component.Transform{Position: owner.Position, Yaw: yaw},
		Owner:       owner,
		PlayerOwned: playerOwned,
		Speed:       parameter.BulletSpeed,
	}
	b.Handle = w.create(core.KindBullet)
	owner.AddBullet(b)
	return b
}

// Destroy moves a handle to Destroyed and detaches its visual
// Idempotent; returns true only for the call that performed the transition
func (w *World) Destroy(h *core.Handle) bool {
	if h == nil {
		return false
	}
	prev := h.Destroy()
	if h.Attached() {
		w.scene.Detach(h.ID())
		h.SetAttached(false)
	}
	if prev == core.Loading {
		w.statCancelled.Add(1)
	}
	return prev != core.Destroyed
}

// Attach hands an Active, not yet attached entity to the scene
func (w *World) Attach(h *core.Handle, t component.Transform) bool {
	if !h.IsActive() || h.Attached() {
		return false
	}
	v, ok := h.Visual()
	if !ok {
		return false
	}
	w.scene.Attach(h.ID(), h.Kind(), v, t)
	h.SetAttached(true)
	w.statResolved.Add(1)
	return true
}

// SyncScene pushes the transform of every attached entity and attaches
// any Active entity whose resolution event never reached the tick
func (w *World) SyncScene() {
	sync := func(h *core.Handle, t component.Transform) {
		switch {
		case h.Attached():
			w.scene.Update(h.ID(), t)
		case h.IsActive():
			w.Attach(h, t)
		}
	}
	if p := w.Player; p != nil {
		sync(p.Handle, p.Transform)
		for _, b := range p.Bullets {
			sync(b.Handle, b.Transform)
		}
	}
	for _, e := range w.Enemies.All() {
		sync(e.Handle, e.Transform)
		for _, b := range e.Bullets {
			sync(b.Handle, b.Transform)
		}
	}
	for _, b := range w.Orphans {
		sync(b.Handle, b.Transform)
	}
	for _, c := range w.Chests.All() {
		sync(c.Handle, c.Transform)
	}
	for _, x := range w.Explosions.All() {
		sync(x.Handle, x.Transform)
	}
}

// Lookup finds the transform of a registered entity, used to attach on resolution
func (w *World) Lookup(id core.Entity) (component.Transform, bool) {
	if p := w.Player; p != nil {
		if p.ID() == id {
			return p.Transform, true
		}
		if t, ok := findBullet(p.Bullets, id); ok {
			return t, true
		}
	}
	if e, ok := w.Enemies.Get(id); ok {
		return e.Transform, true
	}
	for _, e := range w.Enemies.All() {
		if t, ok := findBullet(e.Bullets, id); ok {
			return t, true
		}
	}
	if t, ok := findBullet(w.Orphans, id); ok {
		return t, true
	}
	if c, ok := w.Chests.Get(id); ok {
		return c.Transform, true
	}
	if x, ok := w.Explosions.Get(id); ok {
		return x.Transform, true
	}
	return component.Transform{}, false
}

func findBullet(bullets []*component.Bullet, id core.Entity) (component.Transform, bool) {
	for _, b := range bullets {
		if b.ID() == id {
			return b.Transform, true
		}
	}
	return component.Transform{}, false
}

// OrphanBullets moves a destroyed ship's bullets to the orphan list
func (w *World) OrphanBullets(s *component.Ship) {
	if len(s.Bullets) == 0 {
		return
	}
	w.Orphans = append(w.Orphans, s.Bullets...)
	s.Bullets = nil
}

// PruneDestroyed drops registry members whose handle reached Destroyed by any path
// Covers asset failures and cancellations observed outside combat
func (w *World) PruneDestroyed() {
	alive := func(h *core.Handle) bool { return h.State() != core.Destroyed }

	for _, e := range w.Enemies.Retain(func(e *component.EnemyShip) bool { return alive(e.Handle) }) {
		w.Destroy(e.Handle)
		w.OrphanBullets(&e.Ship)
	}
	for _, c := range w.Chests.Retain(func(c *component.TreasureChest) bool { return alive(c.Handle) }) {
		w.Destroy(c.Handle)
	}
	for _, x := range w.Explosions.Retain(func(x *component.Explosion) bool { return alive(x.Handle) }) {
		w.Destroy(x.Handle)
	}
	if p := w.Player; p != nil {
		for _, b := range p.RetainBullets(func(b *component.Bullet) bool { return alive(b.Handle) }) {
			w.Destroy(b.Handle)
		}
	}
	for _, e := range w.Enemies.All() {
		for _, b := range e.RetainBullets(func(b *component.Bullet) bool { return alive(b.Handle) }) {
			w.Destroy(b.Handle)
		}
	}
	w.RetainOrphans(func(b *component.Bullet) bool { return alive(b.Handle) })
}

// RetainOrphans filters the orphan list, destroying dropped bullets
func (w *World) RetainOrphans(keep func(*component.Bullet) bool) int {
	kept := w.Orphans[:0]
	dropped := 0
	for _, b := range w.Orphans {
		if keep(b) {
			kept = append(kept, b)
			continue
		}
		w.Destroy(b.Handle)
		dropped++
	}
	for i := len(kept); i < len(w.Orphans); i++ {
		w.Orphans[i] = nil
	}
	w.Orphans = kept
	return dropped
}

// EntityCount returns the number of registered entities including bullets
func (w *World) EntityCount() int {
	n := w.Enemies.Len() + w.Chests.Len() + w.Explosions.Len() + len(w.Orphans)
	if p := w.Player; p != nil {
		n += 1 + len(p.Bullets)
	}
	for _, e := range w.Enemies.All() {
		n += len(e.Bullets)
	}
	return n
}
