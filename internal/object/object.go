// Package object defines the game entities and the capability interfaces the
// engine drives them through.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/input"
	"github.com/tomz197/stellarclash/internal/physics"
)

// offScreenMargin is how far past the screen edge an entity may travel before it is culled.
const offScreenMargin = 50.0

// Input is an alias for the input package's Input type.
type Input = input.Input

// Screen is the fixed play field size in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the play field.
func (s Screen) Center() physics.Vector2 {
	return physics.Vec(s.Width/2, s.Height/2)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta  time.Duration
	Input  Input
	Screen Screen

	// Target is the player's position.
	Target physics.Vector2

	// Rand is the session's random source; it must not be nil.
	Rand *rand.Rand
}

// DT returns the frame delta in seconds.
func (ctx UpdateContext) DT() float64 {
	return ctx.Delta.Seconds()
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
	Offset  physics.Vector2 // screen shake
	Time    float64         // seconds since the engine started, for pulses and blinks
}

// Point converts a world position into a surface point, applying the shake offset.
func (ctx DrawContext) Point(p physics.Vector2) draw.Point {
	return draw.Point{X: p.X + ctx.Offset.X, Y: p.Y + ctx.Offset.Y}
}

// Collider is anything with a collision circle.
type Collider interface {
	Position() physics.Vector2
	CollisionRadius() float64
}

// Object is a drawable and updatable game entity.
type Object interface {
	Collider

	// Update advances the object. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw renders the object onto ctx.Surface.
	Draw(ctx DrawContext)

	// IsAlive reports whether the object is still part of the game.
	IsAlive() bool
}

// Releasable is implemented by objects holding pooled resources.
type Releasable interface {
	Release()
}

// ReleaseObject releases an object's pooled resources if it has any.
func ReleaseObject(obj any) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Entity is the state shared by every colliding object.
type Entity struct {
	Pos       physics.Vector2
	Vel       physics.Vector2
	Radius    float64
	Health    int
	MaxHealth int
	Alive     bool
}

// Position returns the entity centre.
func (e *Entity) Position() physics.Vector2 {
	return e.Pos
}

// CollisionRadius returns the collision circle radius.
func (e *Entity) CollisionRadius() float64 {
	return e.Radius
}

// IsAlive reports whether the entity is still live.
func (e *Entity) IsAlive() bool {
	return e.Alive
}

// MarkDestroyed flags the entity for removal at the next sweep.
func (e *Entity) MarkDestroyed() {
	e.Alive = false
}

// CheckCollision reports whether the entity overlaps other.
func (e *Entity) CheckCollision(other Collider) bool {
	return CheckCollision(e, other)
}

// IsOffScreen reports whether the entity has left the play field by more than margin.
func (e *Entity) IsOffScreen(s Screen, margin float64) bool {
	return e.Pos.X < -margin || e.Pos.X > s.Width+margin ||
		e.Pos.Y < -margin || e.Pos.Y > s.Height+margin
}

// CheckCollision reports whether the circles of a and b overlap.
// Circles that exactly touch do not collide.
func CheckCollision(a, b Collider) bool {
	return physics.CirclesOverlap(a.Position(), a.CollisionRadius(), b.Position(), b.CollisionRadius())
}

// Sweep removes dead objects from s in place, releasing their pooled
// resources. Order of the survivors is kept.
func Sweep[T Object](s []T) []T {
	kept := s[:0]
	for _, obj := range s {
		if obj.IsAlive() {
			kept = append(kept, obj)
		} else {
			ReleaseObject(obj)
		}
	}
	clear(s[len(kept):])
	return kept
}

// ShouldRenderBlink returns true if an object with remaining protection time
// should be rendered this frame. Always true once remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
