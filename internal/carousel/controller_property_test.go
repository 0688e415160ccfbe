package carousel

import (
	"fmt"
	"testing"

	"github.com/jonboulle/clockwork"
	"pgregory.net/rapid"
)

func clipSequenceGen(minLen, maxLen int) *rapid.Generator[ClipSequence] {
	return rapid.Custom(func(t *rapid.T) ClipSequence {
		n := rapid.IntRange(minLen, maxLen).Draw(t, "len")
		clips := make(ClipSequence, n)
		for i := range clips {
			clips[i] = fmt.Sprintf("clip-%d.mp4", i)
		}
		return clips
	})
}

// TestPropertyIndexStaysInBounds drives a controller with a random mix of
// host calls and surface events and checks it against a simple model.
func TestPropertyIndexStaysInBounds(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		clips := clipSequenceGen(1, 12).Draw(t, "clips")
		surface := newFakeSurface()
		c := NewController(surface, Options{Clock: clockwork.NewFakeClock()})
		defer c.Deactivate()

		c.Activate(clips)
		wantIndex, wantLoads := 0, 1

		steps := rapid.IntRange(0, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				c.OnSurfaceEnded()
				wantIndex = (wantIndex + 1) % len(clips)
				wantLoads++
			case 1:
				c.OnTimerFire()
				wantIndex = (wantIndex + 1) % len(clips)
				wantLoads++
			case 2:
				idx := rapid.IntRange(-3, len(clips)+3).Draw(t, "index")
				c.JumpTo(idx)
				if idx >= 0 && idx < len(clips) {
					wantIndex = idx
					wantLoads++
				}
			case 3:
				c.OnSurfaceReady()
			}

			st := c.State()
			if st.ActiveIndex < 0 || st.ActiveIndex >= len(clips) {
				t.Fatalf("index %d out of bounds for %d clips", st.ActiveIndex, len(clips))
			}
			if st.ActiveIndex != wantIndex {
				t.Fatalf("index = %d, want %d", st.ActiveIndex, wantIndex)
			}
			if st.Clip != clips[wantIndex] {
				t.Fatalf("clip = %q, want %q", st.Clip, clips[wantIndex])
			}
			if got := surface.loadCount(); got != wantLoads {
				t.Fatalf("loads = %d, want %d", got, wantLoads)
			}
			if surface.lastLoad() != clips[wantIndex] {
				t.Fatalf("surface shows %q, controller at %q", surface.lastLoad(), clips[wantIndex])
			}
		}
	})
}

// TestPropertyWrapAfterN verifies that N natural advances return to index 0.
func TestPropertyWrapAfterN(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		clips := clipSequenceGen(1, 50).Draw(t, "clips")
		start := rapid.IntRange(0, len(clips)-1).Draw(t, "start")

		c := NewController(newFakeSurface(), Options{Clock: clockwork.NewFakeClock()})
		defer c.Deactivate()
		c.Activate(clips)
		c.JumpTo(start)

		for i := 0; i < len(clips); i++ {
			c.OnSurfaceEnded()
		}
		if got := c.State().ActiveIndex; got != start {
			t.Fatalf("after %d advances index = %d, want %d", len(clips), got, start)
		}
	})
}

// TestPropertyNoAdvanceAfterDeactivate checks that nothing moves once the
// host has torn the controller down.
func TestPropertyNoAdvanceAfterDeactivate(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		clips := clipSequenceGen(0, 8).Draw(t, "clips")
		surface := newFakeSurface()
		c := NewController(surface, Options{Clock: clockwork.NewFakeClock()})
		c.Activate(clips)
		c.OnSurfaceReady()
		c.Deactivate()

		before := c.State()
		loads := surface.loadCount()
		for i := rapid.IntRange(0, 10).Draw(t, "fires"); i > 0; i-- {
			c.OnTimerFire()
			c.OnSurfaceEnded()
		}
		if c.State() != before {
			t.Fatalf("state changed after deactivate: %+v -> %+v", before, c.State())
		}
		if surface.loadCount() != loads {
			t.Fatalf("surface loaded after deactivate")
		}
	})
}
