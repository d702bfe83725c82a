package system

import (
	"log/slog"

	"ten-second-towers/internal/ai"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/metrics"
	"ten-second-towers/internal/types"
	"ten-second-towers/pkg/bt"
	"ten-second-towers/pkg/tilemap"
)

const (
	weightedCache = "weighted"
	flatCache     = "flat"
)

// ThinkSystem assembles one read-only view per agent and ticks its tree.
// Path cache writes happen here, before any tree runs on the view.
type ThinkSystem struct {
	ecs      *entity.ECS
	field    *tilemap.Field
	weighted *tilemap.PathCache
	flat     *tilemap.PathCache
	metrics  *metrics.Recorder
	logger   *slog.Logger

	// Audit, when set, records every tree tick. It is cleared per agent.
	Audit *bt.Audit
}

func NewThinkSystem(ecs *entity.ECS, field *tilemap.Field, staleWindow float64, rec *metrics.Recorder, logger *slog.Logger) *ThinkSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThinkSystem{
		ecs:      ecs,
		field:    field,
		weighted: tilemap.NewPathCache(staleWindow),
		flat:     tilemap.NewPathCache(staleWindow),
		metrics:  rec,
		logger:   logger,
	}
}

// Caches returns the weighted and the flat path cache.
func (s *ThinkSystem) Caches() (weighted, flat *tilemap.PathCache) {
	return s.weighted, s.flat
}

// Update runs every enemy tree, then every tower tree, in ascending id
// order. Intents are left in the brains for the apply systems.
func (s *ThinkSystem) Update(deltaTime float64) {
	now := s.ecs.GameTime
	s.weighted.Prune(now)
	s.flat.Prune(now)

	for _, id := range entity.SortedIDs(s.ecs.EnemyBrains) {
		view := s.EnemyView(id)
		s.Audit.Clear()
		state, intent := s.ecs.ThinkEnemy(id, view, s.Audit)
		s.metrics.RecordTree("enemy", state)
		s.logger.Debug("enemy decided",
			"id", id, "type", view.Type, "tile", view.Tile, "state", state,
			"move", intent.MoveTowards, "attack", intent.AttackTower, "explode", intent.ExplodeNow)
	}

	enemies := s.enemyRefs()
	for _, id := range entity.SortedIDs(s.ecs.TowerBrains) {
		if cd, ok := s.ecs.Cooldowns[id]; ok {
			cd.PassTime(deltaTime)
		}
		view := s.TowerView(id, deltaTime, enemies)
		s.Audit.Clear()
		state, intent := s.ecs.ThinkTower(id, view, s.Audit)
		s.metrics.RecordTree("tower", state)
		s.logger.Debug("tower decided",
			"id", id, "type", view.Type, "state", state,
			"fire", intent.FireNow, "target", intent.AttackEnemy, "assist", intent.Assist)
	}
}

// EnemyView builds the snapshot for enemy id on the current tick.
func (s *ThinkSystem) EnemyView(id types.EntityID) *ai.EnemyView {
	enemy := s.ecs.Enemies[id]
	pos := s.ecs.Positions[id]
	health := s.ecs.Healths[id]
	view := &ai.EnemyView{
		Agent:            id,
		Tick:             s.ecs.Tick,
		Now:              s.ecs.GameTime,
		Geometry:         s.field.Geometry(),
		Position:         pos.Vec(),
		Tile:             enemy.Tile,
		Type:             enemy.DefID,
		Health:           health.Value,
		MaxHealth:        health.Max,
		DistanceFromGoal: s.field.EstimateDistanceToGoal(enemy.Tile),
		NeighborTowers:   s.towersAround(enemy.Tile),
	}
	if bag, ok := s.shortestPaths(enemy.Tile, enemy.FlatPaths); ok {
		view.ShortestPaths = &bag
	}
	return view
}

// TowerView builds the snapshot for tower id on the current tick.
func (s *ThinkSystem) TowerView(id types.EntityID, deltaTime float64, enemies []ai.EnemyRef) *ai.TowerView {
	tower := s.ecs.Towers[id]
	cd := s.ecs.Cooldowns[id]
	health := s.ecs.Healths[id]
	return &ai.TowerView{
		Agent:          id,
		Tick:           s.ecs.Tick,
		Now:            s.ecs.GameTime,
		DeltaSeconds:   deltaTime,
		Position:       s.ecs.Positions[id].Vec(),
		Tile:           tower.Tile,
		Type:           tower.DefID,
		Health:         health.Value,
		MaxHealth:      health.Max,
		TimeSinceShot:  cd.TimeSinceShot,
		Ammo:           cd.Ammo,
		HasAmmo:        cd.HasAmmo(),
		ShotsFired:     tower.ShotsFired,
		Enemies:        enemies,
		NeighborTowers: s.towersAround(tower.Tile),
	}
}

func (s *ThinkSystem) shortestPaths(origin tilemap.Location, flat bool) (tilemap.PathBag, bool) {
	if !s.field.InBounds(origin) {
		return tilemap.PathBag{}, false
	}
	cache, name, neighbors := s.weighted, weightedCache, tilemap.NeighborFunc(s.field.Neighbors)
	if flat {
		cache, name, neighbors = s.flat, flatCache, s.field.FlatNeighbors
	}
	bag, outcome := cache.Lookup(origin, s.ecs.GameTime, func(o tilemap.Location) (tilemap.PathBag, bool) {
		return tilemap.ShortestPaths(s.field, o, neighbors)
	})
	s.metrics.RecordPathLookup(name, outcome)
	if outcome == tilemap.Unreachable {
		s.logger.Debug("goal unreachable", "cache", name, "origin", origin)
		return tilemap.PathBag{}, false
	}
	return bag, true
}

// towersAround lists the towers on the four tiles next to loc, in
// neighbor order.
func (s *ThinkSystem) towersAround(loc tilemap.Location) []ai.TowerRef {
	var refs []ai.TowerRef
	for _, d := range []tilemap.Location{{X: -1}, {Y: -1}, {X: 1}, {Y: 1}} {
		n := loc.Add(d)
		if !s.field.InBounds(n) {
			continue
		}
		owner, ok := s.field.Owner(n)
		if !ok {
			continue
		}
		id := types.EntityID(owner)
		tower, ok := s.ecs.Towers[id]
		if !ok {
			continue
		}
		refs = append(refs, ai.TowerRef{
			ID:       id,
			Type:     tower.DefID,
			Tile:     tower.Tile,
			Position: s.ecs.Positions[id].Vec(),
		})
	}
	return refs
}

// enemyRefs lists live enemies in id order with the velocity they
// committed to on the previous tick.
func (s *ThinkSystem) enemyRefs() []ai.EnemyRef {
	ids := entity.SortedIDs(s.ecs.Enemies)
	refs := make([]ai.EnemyRef, 0, len(ids))
	for _, id := range ids {
		if h, ok := s.ecs.Healths[id]; ok && !h.Alive() {
			continue
		}
		ref := ai.EnemyRef{
			ID:       id,
			Type:     s.ecs.Enemies[id].DefID,
			Position: s.ecs.Positions[id].Vec(),
		}
		if v, ok := s.ecs.Velocities[id]; ok {
			ref.Velocity = v.Vector()
		}
		refs = append(refs, ref)
	}
	return refs
}
