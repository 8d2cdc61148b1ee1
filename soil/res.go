package soil

// res simple bucket reservoir [mm]
type res struct {
	sto float64
	cap float64
}

// overflow adds p to storage and returns what could not be held: positive
// excess above capacity, negative deficit below empty.
func (r *res) overflow(p float64) float64 {
	r.sto += p
	if r.sto < 0. {
		d := r.sto
		r.sto = 0.
		return d
	} else if r.sto > r.cap {
		d := r.sto - r.cap
		r.sto = r.cap
		return d
	}
	return 0.
}

func (r *res) saturation() float64 {
	if r.cap <= 0. {
		return 0.
	}
	return r.sto / r.cap
}
