package strategy

// PriorityClass is the priority pool a soft constraint's penalty count
// draws from (§4.5).
type PriorityClass int

const (
	Critical PriorityClass = iota
	High
	Medium
	Low
)

// PluginPriorityClass assigns each soft plugin to a priority pool. The
// three plugins grounded directly on original source modules sit in
// the top two pools; preference-only and cosmetic plugins sit lower.
// This mapping is a judgment call documented in DESIGN.md: the source
// strategy module names CRITICAL/HIGH/MEDIUM/LOW pools but does not
// enumerate which soft plugin belongs to which.
func PluginPriorityClass(name string) PriorityClass {
	switch name {
	case "soft.avoid_teacher_gaps", "soft.prefer_morning_difficult":
		return Critical
	case "soft.subject_spread":
		return High
	case "soft.balance_teacher_load", "soft.minimize_room_changes", "soft.distribute_difficult_subjects":
		return Medium
	default:
		return Low
	}
}

// ProblemSize is the declared complexity bucket §4.5's budget
// allocation varies by.
type ProblemSize int

const (
	Small ProblemSize = iota
	Medium
	Large
)

// ClassifySize buckets a problem by request count: <100 small, 100-399
// medium, >=400 large.
func ClassifySize(numRequests int) ProblemSize {
	switch {
	case numRequests < 100:
		return Small
	case numRequests < 400:
		return Medium
	default:
		return Large
	}
}

var poolPercent = map[ProblemSize]map[PriorityClass]float64{
	Small:  {Critical: 0.50, High: 0.30, Medium: 0.15, Low: 0.05},
	Medium: {Critical: 0.60, High: 0.25, Medium: 0.10, Low: 0.05},
	Large:  {Critical: 0.70, High: 0.25, Medium: 0.05, Low: 0.00},
}

// TotalBudget returns the total penalty-boolean budget for a solve
// attempt: max(floor, numRequests * budgetPerRequest), where floor is
// 100/500/1000 for Fast/Balanced/Thorough respectively.
func TotalBudget(name Name, numRequests, budgetPerRequest int) int {
	floor := 100
	switch name {
	case Balanced:
		floor = 500
	case Thorough:
		floor = 1000
	}
	total := numRequests * budgetPerRequest
	if total < floor {
		return floor
	}
	return total
}

// Budget is the per-priority-pool allocation of the total budget.
type Budget struct {
	Size   ProblemSize
	Total  int
	Pools  map[PriorityClass]int
	spent  map[PriorityClass]int
	dropped map[PriorityClass]int
}

// NewBudget allocates total across priority pools per size's
// percentage table.
func NewBudget(size ProblemSize, total int) *Budget {
	pools := make(map[PriorityClass]int, 4)
	for class, pct := range poolPercent[size] {
		pools[class] = int(float64(total)*pct + 0.5)
	}
	return &Budget{
		Size:    size,
		Total:   total,
		Pools:   pools,
		spent:   make(map[PriorityClass]int),
		dropped: make(map[PriorityClass]int),
	}
}

// Charge requests count penalty booleans from class's pool, returning
// how many were actually admitted (<=count) and how many were dropped
// past the cap (§4.5: "its penalties are silently dropped past the
// cap; the plugin must report this in its usage stats").
func (b *Budget) Charge(class PriorityClass, count int) (admitted, dropped int) {
	remaining := b.Pools[class] - b.spent[class]
	if remaining < 0 {
		remaining = 0
	}
	admitted = count
	if admitted > remaining {
		admitted = remaining
	}
	dropped = count - admitted
	b.spent[class] += admitted
	b.dropped[class] += dropped
	return admitted, dropped
}

// Usage reports, per pool, how many penalties were admitted vs dropped
// so far — the "usage stats" §4.5 requires plugins to surface.
func (b *Budget) Usage() (spent, droppedTotal map[PriorityClass]int) {
	return b.spent, b.dropped
}
