package piano

// knots reconstructs a control curve from values computed every period
// samples, interpolating linearly in between. The value at the next knot is
// fetched as soon as the current one is reached, so both ends of the
// current interval are always known.
type knots struct {
	eval       func(t float32) float32
	period     int
	sampleRate float32

	k, i      int
	cur, next float32
}

func newKnots(eval func(t float32) float32, period int, sampleRate float32) *knots {
	k := &knots{eval: eval, period: period, sampleRate: sampleRate}
	k.cur = eval(0)
	k.next = eval(k.time(1))
	return k
}

// time returns the onset of knot k in seconds.
func (k *knots) time(n int) float32 {
	return float32(n*k.period) / k.sampleRate
}

func (k *knots) Sing() float32 {
	x := k.cur + (k.next-k.cur)*float32(k.i)/float32(k.period)
	k.i++
	if k.i == k.period {
		k.i = 0
		k.k++
		k.cur = k.next
		k.next = k.eval(k.time(k.k + 1))
	}
	return x
}
