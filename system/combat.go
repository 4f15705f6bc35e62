package system

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
)

// CombatSystem applies damage, scores and destruction for the tick's contacts
// Entities are destroyed as hits resolve; registry removal is deferred to one sweep after the batch
type CombatSystem struct {
	world     *engine.World
	state     *engine.GameState
	collision *CollisionSystem
	audio     engine.Audio
	logger    *zap.Logger

	// consumed holds ids spent earlier in the current batch
	consumed map[core.Entity]struct{}

	// Telemetry
	statTicks   *atomic.Int64
	statHits    *atomic.Int64
	statKills   *atomic.Int64
	statPickups *atomic.Int64

	enabled bool
}

func NewCombatSystem(world *engine.World, state *engine.GameState, collision *CollisionSystem, audio engine.Audio, logger *zap.Logger) *CombatSystem {
	if audio == nil {
		audio = engine.NopAudio{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CombatSystem{
		world:     world,
		state:     state,
		collision: collision,
		audio:     audio,
		logger:    logger.Named("combat"),
		consumed:  make(map[core.Entity]struct{}),
	}

	s.statTicks = world.Status.Ints.Get("engine.ticks")
	s.statHits = world.Status.Ints.Get("combat.hits")
	s.statKills = world.Status.Ints.Get("combat.kills")
	s.statPickups = world.Status.Ints.Get("combat.pickups")

	s.Init()
	return s
}

func (s *CombatSystem) Init() {
	clear(s.consumed)
	s.statHits.Store(0)
	s.statKills.Store(0)
	s.statPickups.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *CombatSystem) Name() string {
	return "combat"
}

func (s *CombatSystem) Priority() int {
	return parameter.PriorityCombat
}

func (s *CombatSystem) Update() {
	if !s.enabled || s.state.IsOver() {
		return
	}
	s.Resolve(s.collision.Hits())
}

func (s *CombatSystem) spent(id core.Entity) bool {
	_, ok := s.consumed[id]
	return ok
}

func (s *CombatSystem) consume(id core.Entity) {
	s.consumed[id] = struct{}{}
}

// Resolve applies hits in order and returns true if the batch ended the session
// Hits after the GameOver transition are ignored
func (s *CombatSystem) Resolve(hits []Hit) bool {
	if len(hits) == 0 {
		return false
	}
	clear(s.consumed)
	gameOver := false

	for _, h := range hits {
		if s.state.IsOver() {
			break
		}
		switch h.Kind {
		case HitPlayerBulletEnemy:
			s.bulletHitsEnemy(h)
		case HitEnemyBulletPlayer:
			gameOver = s.bulletHitsPlayer(h) || gameOver
		case HitPlayerTreasure:
			s.collectTreasure(h)
		}
	}

	s.world.PruneDestroyed()
	return gameOver
}

func explosionScale(dead bool) float64 {
	if dead {
		return parameter.ExplosionScaleKill
	}
	return parameter.ExplosionScaleHit
}

func (s *CombatSystem) bulletHitsEnemy(h Hit) {
	b, e := h.Bullet, h.Enemy
	if s.spent(b.ID()) || s.spent(e.ID()) || !b.IsActive() || !e.IsActive() {
		return
	}
	s.statHits.Add(1)

	health := e.TakeDamage(parameter.DamagePlayerBullet)
	dead := e.Dead()
	s.world.SpawnExplosion(e.Position, explosionScale(dead))
	s.audio.PlayOneShot(core.EffectExplosion)

	s.consume(b.ID())
	s.world.Destroy(b.Handle)

	if !dead {
		s.logger.Debug("enemy hit",
			zap.Uint64("entity", uint64(e.ID())),
			zap.Int("health", health))
		return
	}

	s.consume(e.ID())
	s.world.Destroy(e.Handle)
	if p := s.world.Player; p != nil {
		p.ShipsDestroyed++
	}
	s.statKills.Add(1)
	s.logger.Debug("enemy destroyed", zap.Uint64("entity", uint64(e.ID())))
}

func (s *CombatSystem) bulletHitsPlayer(h Hit) bool {
	b, p := h.Bullet, s.world.Player
	if p == nil || s.spent(b.ID()) || !b.IsActive() || !p.IsActive() {
		return false
	}
	s.statHits.Add(1)

	health := p.TakeDamage(parameter.DamageEnemyBullet)
	dead := p.Dead()
	s.world.SpawnExplosion(p.Position, explosionScale(dead))
	s.audio.PlayOneShot(core.EffectExplosion)

	s.consume(b.ID())
	s.world.Destroy(b.Handle)

	if !dead {
		s.logger.Debug("player hit", zap.Int("health", health))
		return false
	}

	tick := uint64(s.statTicks.Load())
	if !s.state.EnterGameOver(p.Position, tick) {
		return false
	}
	s.world.Destroy(p.Handle)
	s.audio.Stop()
	s.audio.PlayOneShot(core.EffectGameOver)
	s.logger.Info("game over",
		zap.Uint64("tick", tick),
		zap.Int("treasure", p.TreasureCollected),
		zap.Int("kills", p.ShipsDestroyed))
	return true
}

func (s *CombatSystem) collectTreasure(h Hit) {
	c, p := h.Chest, s.world.Player
	if p == nil || s.spent(c.ID()) || !c.IsActive() || !p.IsActive() {
		return
	}
	s.consume(c.ID())
	p.TreasureCollected++
	s.world.Destroy(c.Handle)
	s.audio.PlayOneShot(core.EffectTreasure)
	s.statPickups.Add(1)
	s.logger.Debug("treasure collected",
		zap.Uint64("entity", uint64(c.ID())),
		zap.Int("total", p.TreasureCollected))
}
