// internal/utils/math.go
package utils

import "math"

// Vec2 is a point or direction in world pixels.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2                { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2                { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2           { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(o Vec2) float64             { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSquared() float64         { return v.Dot(v) }
func (v Vec2) Length() float64                { return math.Hypot(v.X, v.Y) }
func (v Vec2) IsZero() bool                   { return v.X == 0 && v.Y == 0 }
func (v Vec2) DistanceSquared(o Vec2) float64 { return v.Sub(o).LengthSquared() }

// Normalize returns the unit vector along v, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle is the direction of v in radians, in [-π, π].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

const epsilon = 1e-9

// LeadShot finds the direction a projectile launched from shooter at speed
// must take to meet a target moving at constant velocity. It solves
// |d + v·t| = s·t for the smallest positive t, where d is the target offset.
// ok is false when no positive solution exists or the target sits on the
// shooter.
func LeadShot(shooter, target, velocity Vec2, speed float64) (dir Vec2, t float64, ok bool) {
	d := target.Sub(shooter)
	c := d.LengthSquared()
	if c == 0 || speed <= 0 {
		return Vec2{}, 0, false
	}
	a := velocity.LengthSquared() - speed*speed
	b := 2 * d.Dot(velocity)

	if math.Abs(a) < epsilon {
		// target as fast as the projectile: b·t + c = 0
		if b >= 0 {
			return Vec2{}, 0, false
		}
		t = -c / b
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return Vec2{}, 0, false
		}
		sq := math.Sqrt(disc)
		t1 := (-b - sq) / (2 * a)
		t2 := (-b + sq) / (2 * a)
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		switch {
		case t1 > 0:
			t = t1
		case t2 > 0:
			t = t2
		default:
			return Vec2{}, 0, false
		}
	}
	aim := d.Add(velocity.Scale(t))
	return aim.Normalize(), t, true
}

// Lerp is linear interpolation.
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// LerpAngle interpolates between two angles along the shorter arc.
func LerpAngle(from, to, t float64) float64 {
	from = NormalizeAngle(from)
	to = NormalizeAngle(to)
	diff := to - from
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return NormalizeAngle(from + diff*t)
}

// NormalizeAngle maps angle into [-π, π].
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
