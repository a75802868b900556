package campaign

// OptimizeDailySpend finds the smallest daily spend whose blended hire
// rate meets targetHiresPerDay, by binary search over the planner's own
// Apply + HiresPerDay path (the allocation model is a pure function of
// its inputs, so repeated probes at the same spend agree). The planner's
// spend is restored before returning. ok is false when even the full cap
// cannot reach the target.
func OptimizeDailySpend(p *Planner, targetHiresPerDay float64) (spend float64, ok bool) {
	original := p.Inputs().DailySpend
	defer func() {
		restore := original
		p.Apply(Patch{DailySpend: &restore})
	}()

	hi := p.MaxDailySpendCap()
	probe := func(s float64) float64 {
		p.Apply(Patch{DailySpend: &s})
		return p.HiresPerDay()
	}

	if targetHiresPerDay <= 0 {
		return 0, true
	}
	if probe(hi) < targetHiresPerDay {
		return hi, false
	}

	lo := 0.0
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		if probe(mid) >= targetHiresPerDay {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, true
}
