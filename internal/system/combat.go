package system

import (
	"log/slog"

	"ten-second-towers/internal/component"
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/event"
	"ten-second-towers/internal/types"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/tilemap"
)

// CombatSystem applies tower intents (turning, shooting, assisting) and
// the melee intents of enemies (attacks, theft, explosions).
type CombatSystem struct {
	ecs        *entity.ECS
	field      *tilemap.Field
	dispatcher *event.Dispatcher
	logger     *slog.Logger
	lib        func() *defs.Library

	attackTimers map[types.EntityID]float64
}

// NewCombatSystem creates the system. lib returns the current definitions
// and may change between ticks after a reload.
func NewCombatSystem(ecs *entity.ECS, field *tilemap.Field, dispatcher *event.Dispatcher, lib func() *defs.Library, logger *slog.Logger) *CombatSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &CombatSystem{
		ecs:          ecs,
		field:        field,
		dispatcher:   dispatcher,
		logger:       logger,
		lib:          lib,
		attackTimers: make(map[types.EntityID]float64),
	}
}

func (s *CombatSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.TowerBrains) {
		s.applyTower(id, s.ecs.TowerBrains[id], deltaTime)
	}
	for _, id := range entity.SortedIDs(s.ecs.EnemyBrains) {
		s.applyEnemy(id, s.ecs.EnemyBrains[id], deltaTime)
	}
	for id := range s.attackTimers {
		if _, alive := s.ecs.Enemies[id]; !alive {
			delete(s.attackTimers, id)
		}
	}
}

func (s *CombatSystem) applyTower(id types.EntityID, brain *component.TowerBrain, deltaTime float64) {
	intent := brain.Intent
	if turret, ok := s.ecs.Turrets[id]; ok {
		if !intent.FaceTowards.IsZero() {
			turret.TargetAngle = intent.FaceTowards.Angle()
		}
		if intent.AttackEnemy != 0 {
			turret.TargetID = intent.AttackEnemy
		}
		step := turret.TurnSpeed * deltaTime
		if step > 1 {
			step = 1
		}
		turret.Angle = utils.LerpAngle(turret.Angle, turret.TargetAngle, step)
	}

	cd := s.ecs.Cooldowns[id]
	if intent.FireNow && cd.UseAmmo() {
		s.spawnBullet(id, intent.Fire.Bullet, intent.Fire.Velocity, intent.Fire.Lifetime)
		s.ecs.Towers[id].ShotsFired++
	}

	if intent.Assist != 0 {
		target, ok := s.ecs.Cooldowns[intent.Assist]
		if ok && target.CanGainAmmo() && cd.UseAmmo() {
			target.GainAmmo(1)
		}
	}
}

func (s *CombatSystem) spawnBullet(owner types.EntityID, bulletID string, velocity utils.Vec2, lifetime float64) {
	def, ok := s.lib().Bullets[bulletID]
	if !ok {
		s.logger.Warn("tower fired unknown bullet", "tower", owner, "bullet", bulletID)
		return
	}
	from := s.ecs.Positions[owner]
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: from.X, Y: from.Y}
	s.ecs.Projectiles[id] = &component.Projectile{
		BulletID:  bulletID,
		Owner:     owner,
		Velocity:  velocity,
		Remaining: lifetime,
		Damage:    def.Damage,
		HitRadius: def.HitRadius,
		Color:     def.Visuals.Color,
	}
	s.ecs.Renderables[id] = &component.Renderable{
		Color:  def.Visuals.Color,
		Radius: float32(config.BulletRadius * bulletScale(def)),
	}
}

func bulletScale(def defs.BulletDefinition) float64 {
	if def.Visuals.RadiusFactor > 0 {
		return def.Visuals.RadiusFactor
	}
	return 1
}

func (s *CombatSystem) applyEnemy(id types.EntityID, brain *component.EnemyBrain, deltaTime float64) {
	intent := brain.Intent
	enemy := s.ecs.Enemies[id]
	def, ok := s.lib().Enemies[enemy.DefID]
	if !ok {
		return
	}

	if intent.ExplodeNow {
		s.explode(id, enemy, def)
		return
	}

	if intent.AttackTower == 0 {
		delete(s.attackTimers, id)
		return
	}
	if _, isTower := s.ecs.Towers[intent.AttackTower]; !isTower {
		return
	}
	s.attackTimers[id] -= deltaTime
	if s.attackTimers[id] > 0 {
		return
	}
	s.attackTimers[id] += config.AttackInterval

	if def.StealsAmmo {
		if cd, ok := s.ecs.Cooldowns[intent.AttackTower]; ok && cd.HasAmmo() {
			cd.Ammo--
			s.ecs.Healths[id].Heal(1)
			s.logger.Debug("ammo stolen", "enemy", id, "tower", intent.AttackTower)
		}
	}
	if def.AttackDamage > 0 {
		s.damageTower(intent.AttackTower, def.AttackDamage)
	}
}

// explode damages every neighboring tower and kills the enemy without
// loot.
func (s *CombatSystem) explode(id types.EntityID, enemy *component.Enemy, def defs.EnemyDefinition) {
	for _, d := range []tilemap.Location{{X: -1}, {Y: -1}, {X: 1}, {Y: 1}} {
		n := enemy.Tile.Add(d)
		if !s.field.InBounds(n) {
			continue
		}
		if owner, ok := s.field.Owner(n); ok {
			s.damageTower(types.EntityID(owner), def.ExplodeDamage)
		}
	}
	s.logger.Debug("enemy exploded", "enemy", id, "tile", enemy.Tile)
	s.ecs.Remove(id)
	delete(s.attackTimers, id)
}

func (s *CombatSystem) damageTower(id types.EntityID, damage int) {
	health, ok := s.ecs.Healths[id]
	tower, isTower := s.ecs.Towers[id]
	if !ok || !isTower || !health.Damage(damage) {
		return
	}
	s.field.Vacate(tower.Tile)
	s.ecs.Remove(id)
	s.logger.Info("tower destroyed", "tower", id, "type", tower.DefID, "tile", tower.Tile)
	s.dispatcher.Dispatch(event.Event{
		Type: event.TowerDestroyed,
		Data: event.TowerData{ID: id, DefID: tower.DefID, Tile: tower.Tile},
	})
}

// OnEvent refills tower ammo when a wave ends.
func (s *CombatSystem) OnEvent(e event.Event) {
	if e.Type != event.WaveEnded {
		return
	}
	for _, cd := range s.ecs.Cooldowns {
		cd.Refresh()
	}
}
