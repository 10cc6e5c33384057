// Package repulse animates page elements away from the pointer.
//
// Every tracked [Element] carries a [State] (offset and velocity). On each
// pointer movement the [Animator] pushes nearby elements away from the cursor
// and pulls every element back toward its rest position with a damped spring:
//
//	f     = (1 - d/Radius) * Strength      (only when d < Radius)
//	v    += f * (cos a, sin a)             a = atan2(center - cursor)
//	v     = v*Damping - offset*Spring
//	offset += v
//
// The result is written to the element as a CSS-style translate transform.
//
// # Hosts
//
// The animator never talks to a real browser. It consumes a [Document] (the
// element query and scroll position) and a [Scheduler] (animation frames),
// so the same code runs in the terminal live view and in headless replays.
//
// # Lifetime
//
// Physics state is keyed by element identity through weak pointers: dropping
// an element from the document lets it be collected together with its state.
package repulse
