package shaderpixel

import (
	"sort"
	"sync"
)

// MarchLogCache counts march outcomes per program. Only filled when Debug is set.
type MarchLogCache struct {
	mu     sync.Mutex
	counts map[string]*[3]int64 // program -> [hit, miss, exhausted]
}

var marchLog = &MarchLogCache{
	counts: make(map[string]*[3]int64),
}

func recordMarch(program string, status MarchStatus) {
	if !Debug {
		return
	}
	marchLog.mu.Lock()
	defer marchLog.mu.Unlock()
	c, ok := marchLog.counts[program]
	if !ok {
		c = &[3]int64{}
		marchLog.counts[program] = c
	}
	if int(status) < len(c) {
		c[status]++
	}
}

// MarchStats returns a copy of the counters, indexed by MarchStatus.
func MarchStats() map[string][3]int64 {
	marchLog.mu.Lock()
	defer marchLog.mu.Unlock()
	out := make(map[string][3]int64, len(marchLog.counts))
	for k, v := range marchLog.counts {
		out[k] = *v
	}
	return out
}

func resetMarchStats() {
	marchLog.mu.Lock()
	marchLog.counts = make(map[string]*[3]int64)
	marchLog.mu.Unlock()
}

func marchStats() {
	stats := MarchStats()
	names := make([]string, 0, len(stats))
	for k := range stats {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v := stats[k]
		Logger().Debug("march stats", "program", k, Hit.String(), v[Hit], Miss.String(), v[Miss], Exhausted.String(), v[Exhausted])
	}
}
