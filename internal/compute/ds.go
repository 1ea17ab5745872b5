package compute

// ds is a double-single value hi+lo with |lo| <= ulp(hi)/2. Every
// intermediate is converted to float32 explicitly so the compiler cannot
// fuse a multiply and add and skip a rounding the algorithms depend on.
type ds struct{ hi, lo float32 }

const splitter = 4097 // 2^12 + 1

func twoSum(a, b float32) (float32, float32) {
	s := float32(a + b)
	bb := float32(s - a)
	e := float32(float32(a-float32(s-bb)) + float32(b-bb))
	return s, e
}

func quickTwoSum(a, b float32) (float32, float32) {
	s := float32(a + b)
	e := float32(b - float32(s-a))
	return s, e
}

func split32(a float32) (float32, float32) {
	t := float32(splitter * a)
	hi := float32(t - float32(t-a))
	return hi, float32(a - hi)
}

func twoProd(a, b float32) (float32, float32) {
	p := float32(a * b)
	ah, al := split32(a)
	bh, bl := split32(b)
	e := float32(float32(float32(float32(ah*bh)-p)+float32(ah*bl)) + float32(al*bh))
	e = float32(e + float32(al*bl))
	return p, e
}

func (a ds) add(b ds) ds {
	s, e := twoSum(a.hi, b.hi)
	e = float32(e + float32(a.lo+b.lo))
	hi, lo := quickTwoSum(s, e)
	return ds{hi, lo}
}

func (a ds) neg() ds { return ds{-a.hi, -a.lo} }

func (a ds) sub(b ds) ds { return a.add(b.neg()) }

func (a ds) mul(b ds) ds {
	p, e := twoProd(a.hi, b.hi)
	e = float32(e + float32(float32(a.hi*b.lo)+float32(a.lo*b.hi)))
	hi, lo := quickTwoSum(p, e)
	return ds{hi, lo}
}

func (a ds) abs() ds {
	if a.hi < 0 {
		return a.neg()
	}
	return a
}

func (a ds) float64() float64 { return float64(a.hi) + float64(a.lo) }
