package collection

import "slices"

// tagStore maintains, per tag name, the set of positions bearing that tag
// plus the tag's configuration. Membership is keyed by position, so the
// engine remaps every set on structural mutations via shiftAfterRemove and
// remapAfterMove.
type tagStore struct {
	sets    map[string]map[int]struct{}
	configs map[string]TagConfig
}

func newTagStore(configs map[string]TagConfig) *tagStore {
	ts := &tagStore{
		sets:    make(map[string]map[int]struct{}),
		configs: make(map[string]TagConfig),
	}
	for name, cfg := range configs {
		ts.configure(name, cfg)
	}
	return ts
}

func (ts *tagStore) configured(name string) bool {
	_, ok := ts.configs[name]
	return ok
}

// ensure auto-initializes an unconfigured tag with unbounded cardinality.
func (ts *tagStore) ensure(name string) {
	if !ts.configured(name) {
		ts.configs[name] = TagConfig{}
	}
	if ts.sets[name] == nil {
		ts.sets[name] = make(map[int]struct{})
	}
}

// configure registers or updates a tag's configuration and enforces the
// (possibly reduced) cardinality on the existing membership.
func (ts *tagStore) configure(name string, cfg TagConfig) {
	ts.configs[name] = cfg
	if ts.sets[name] == nil {
		ts.sets[name] = make(map[int]struct{})
	}
	ts.enforce(name)
}

// delete removes both the membership set and the configuration.
func (ts *tagStore) delete(name string) bool {
	_, hadSet := ts.sets[name]
	_, hadCfg := ts.configs[name]
	delete(ts.sets, name)
	delete(ts.configs, name)
	return hadSet || hadCfg
}

// apply adds pos to the tag's set and enforces cardinality. It reports
// whether pos is a member afterwards and was not before; adding a position
// that is immediately evicted by the cardinality limit reports false.
func (ts *tagStore) apply(name string, pos int) bool {
	set := ts.sets[name]
	if set == nil {
		return false
	}
	if _, ok := set[pos]; ok {
		return false
	}
	set[pos] = struct{}{}
	ts.enforce(name)
	_, ok := set[pos]
	return ok
}

func (ts *tagStore) remove(name string, pos int) bool {
	set := ts.sets[name]
	if set == nil {
		return false
	}
	if _, ok := set[pos]; !ok {
		return false
	}
	delete(set, pos)
	return true
}

func (ts *tagStore) has(name string, pos int) bool {
	_, ok := ts.sets[name][pos]
	return ok
}

// positions returns the tag's members in ascending position order.
func (ts *tagStore) positions(name string) []int {
	set := ts.sets[name]
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

func (ts *tagStore) names() []string {
	out := make([]string, 0, len(ts.configs))
	for name := range ts.configs {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// enforce evicts members, highest positions first, until the set fits the
// configured cardinality.
func (ts *tagStore) enforce(name string) {
	cfg := ts.configs[name]
	if cfg.Cardinality <= 0 {
		return
	}
	set := ts.sets[name]
	for len(set) > cfg.Cardinality {
		highest := -1
		for p := range set {
			if p > highest {
				highest = p
			}
		}
		delete(set, highest)
	}
}

// shiftAfterRemove drops removed from every set and slides higher positions
// down by one.
func (ts *tagStore) shiftAfterRemove(removed int) {
	for name, set := range ts.sets {
		next := make(map[int]struct{}, len(set))
		for p := range set {
			switch {
			case p == removed:
				// dropped
			case p > removed:
				next[p-1] = struct{}{}
			default:
				next[p] = struct{}{}
			}
		}
		ts.sets[name] = next
	}
}

// remapAfterMove keeps every set pointing at the same logical items after
// the item at from has been reinserted at to.
func (ts *tagStore) remapAfterMove(from, to int) {
	for name, set := range ts.sets {
		_, wasMember := set[from]
		next := make(map[int]struct{}, len(set))
		for p := range set {
			switch {
			case p == from:
				// reinserted below
			case from < to && from < p && p <= to:
				next[p-1] = struct{}{}
			case to < from && to <= p && p < from:
				next[p+1] = struct{}{}
			default:
				next[p] = struct{}{}
			}
		}
		if wasMember {
			next[to] = struct{}{}
		}
		ts.sets[name] = next
	}
}

// clearMembership empties every set but keeps all configurations.
func (ts *tagStore) clearMembership() {
	for name := range ts.sets {
		ts.sets[name] = make(map[int]struct{})
	}
}
