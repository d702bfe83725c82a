package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadShotStationaryTarget(t *testing.T) {
	shooter := Vec2{0, 0}
	target := Vec2{30, 40}

	dir, tt, ok := LeadShot(shooter, target, Vec2{}, 10)
	require.True(t, ok)
	assert.InDelta(t, 5.0, tt, 1e-9) // distance 50 / speed 10
	assert.InDelta(t, 0.6, dir.X, 1e-9)
	assert.InDelta(t, 0.8, dir.Y, 1e-9)
}

func TestLeadShotRecedingTooFast(t *testing.T) {
	_, _, ok := LeadShot(Vec2{0, 0}, Vec2{100, 0}, Vec2{20, 0}, 10)
	assert.False(t, ok)
}

func TestLeadShotInterceptsMovingTarget(t *testing.T) {
	shooter := Vec2{0, 0}
	target := Vec2{100, 0}
	vel := Vec2{0, 30}
	speed := 50.0

	dir, tt, ok := LeadShot(shooter, target, vel, speed)
	require.True(t, ok)
	assert.InDelta(t, 1.0, dir.Length(), 1e-9)

	bullet := shooter.Add(dir.Scale(speed * tt))
	enemy := target.Add(vel.Scale(tt))
	assert.InDelta(t, 0, bullet.DistanceSquared(enemy), 1e-6)
}

func TestLeadShotSameSpeed(t *testing.T) {
	// approaching head-on at projectile speed: linear case
	dir, tt, ok := LeadShot(Vec2{0, 0}, Vec2{100, 0}, Vec2{-10, 0}, 10)
	require.True(t, ok)
	assert.InDelta(t, 5.0, tt, 1e-9)
	assert.InDelta(t, 1.0, dir.X, 1e-9)

	_, _, ok = LeadShot(Vec2{0, 0}, Vec2{100, 0}, Vec2{10, 0}, 10)
	assert.False(t, ok, "same speed moving away")
}

func TestLeadShotDegenerate(t *testing.T) {
	_, _, ok := LeadShot(Vec2{5, 5}, Vec2{5, 5}, Vec2{}, 10)
	assert.False(t, ok, "target on shooter")
	_, _, ok = LeadShot(Vec2{}, Vec2{1, 0}, Vec2{}, 0)
	assert.False(t, ok, "zero speed")
}

func TestVec2(t *testing.T) {
	v := Vec2{3, 4}
	assert.Equal(t, 5.0, v.Length())
	assert.Equal(t, Vec2{0.6, 0.8}, v.Normalize())
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	assert.InDelta(t, math.Pi/2, Vec2{0, 1}.Angle(), 1e-12)
	assert.Equal(t, 25.0, Vec2{}.DistanceSquared(v))
}

func TestAngles(t *testing.T) {
	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi, math.Abs(LerpAngle(3, -3, 0.5)), 0.2)
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
}

func TestChooseWeighted(t *testing.T) {
	prng := NewPRNGService(42)
	assert.Equal(t, int64(42), prng.Seed())
	assert.Equal(t, -1, prng.ChooseWeighted(nil))
	assert.Equal(t, 0, prng.ChooseWeighted([]int{0, 0}))

	counts := make([]int, 3)
	for range 1000 {
		counts[prng.ChooseWeighted([]int{1, 0, 3})]++
	}
	assert.Zero(t, counts[1])
	assert.Greater(t, counts[2], counts[0])
}

func TestPRNGDeterministic(t *testing.T) {
	a, b := NewPRNGService(7), NewPRNGService(7)
	for range 10 {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}
