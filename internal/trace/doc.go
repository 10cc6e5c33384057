// Package trace records and replays pointer/scroll event streams.
//
// A trace is an ordered list of [Event]s. [Runner] feeds them to a
// [repulse.Animator] one at a time, flushing pending animation frames after
// each event, which is how a browser interleaves input and rendering:
//
//	page, _ := scene.New(scene.Default(960, 640))
//	r := trace.NewRunner(page, repulse.DefaultProfiles())
//	result, err := r.Run(ctx, trace.Demo(page.Viewport()))
//
// Traces are stored as CSV with a "time,kind,x,y" header. Move events carry
// viewport coordinates; scroll events carry the absolute scroll offset.
package trace
