package piano

import "github.com/gordonklaus/piano/maths"

// fade is a linear attack over in seconds and a linear release over the
// final out seconds of a sound lasting total seconds.
type fade struct {
	in, out, total float32
}

func newFade(cfg Config, duration float32) fade {
	return fade{in: cfg.FadeIn, out: cfg.FadeOut, total: duration + cfg.FadeOut}
}

func (f fade) level(t float32) float32 {
	x := maths.Min(maths.Min(t/f.in, (f.total-t)/f.out), 1)
	return maths.Max(x, 0)
}
