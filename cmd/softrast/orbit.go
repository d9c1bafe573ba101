package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Orbit limits.
const (
	minDistance   = 1.0
	maxDistance   = 20.0
	maxOrbitPitch = 85 * math.Pi / 180
)

// springAxis eases a value toward its target with a critically damped spring.
type springAxis struct {
	Value  float64
	Target float64
	vel    float64
	spring harmonica.Spring
}

func newSpringAxis(fps int, v float64) springAxis {
	return springAxis{
		Value:  v,
		Target: v,
		// Frequency 6.0 settles in a few frames without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (a *springAxis) update() {
	a.Value, a.vel = a.spring.Update(a.Value, a.vel, a.Target)
}

// snap jumps to v with no motion.
func (a *springAxis) snap(v float64) {
	a.Value, a.Target, a.vel = v, v, 0
}

// settled reports whether the axis is at rest on its target.
func (a *springAxis) settled() bool {
	return math.Abs(a.Value-a.Target) < 1e-4 && math.Abs(a.vel) < 1e-4
}

// orbit is the viewer's camera rig: yaw and pitch around the model center
// and the distance from it, each spring-damped.
type orbit struct {
	Yaw, Pitch, Distance springAxis
	home                 shot
}

func newOrbit(fps int, home shot) *orbit {
	o := &orbit{home: home}
	o.Yaw = newSpringAxis(fps, 0)
	o.Pitch = newSpringAxis(fps, 0)
	o.Distance = newSpringAxis(fps, 0)
	o.reset()
	return o
}

// reset snaps back to the home placement.
func (o *orbit) reset() {
	o.Yaw.snap(o.home.Yaw * math.Pi / 180)
	o.Pitch.snap(o.home.Pitch * math.Pi / 180)
	o.Distance.snap(o.home.Distance)
}

// turn moves the yaw and pitch targets by the given radians.
func (o *orbit) turn(dYaw, dPitch float64) {
	o.Yaw.Target += dYaw
	o.Pitch.Target = math.Max(-maxOrbitPitch, math.Min(maxOrbitPitch, o.Pitch.Target+dPitch))
}

// zoom moves the distance target, positive toward the model.
func (o *orbit) zoom(d float64) {
	o.Distance.Target = math.Max(minDistance, math.Min(maxDistance, o.Distance.Target-d))
}

func (o *orbit) update() {
	o.Yaw.update()
	o.Pitch.update()
	o.Distance.update()
}

func (o *orbit) settled() bool {
	return o.Yaw.settled() && o.Pitch.settled() && o.Distance.settled()
}
