package recommend

import "github.com/marcus/persona-map/internal/types"

// acceptor accumulates unique locations up to a target count. Uniqueness is
// by normalized name AND normalized address; a collision on either drops
// the candidate. Candidates are accepted in response order.
type acceptor struct {
	target    int
	accepted  []types.Location
	seenNames map[string]bool
	seenAddrs map[string]bool
}

func newAcceptor(target int) *acceptor {
	return &acceptor{
		target:    target,
		accepted:  make([]types.Location, 0, target),
		seenNames: make(map[string]bool),
		seenAddrs: make(map[string]bool),
	}
}

// add accepts a candidate unless it collides with an already-accepted one
// or the set is full. Returns true if the candidate was accepted.
func (a *acceptor) add(loc types.Location) bool {
	if a.full() {
		return false
	}
	name := types.NormalizeKey(loc.Name)
	addr := types.NormalizeKey(loc.Address)
	if name == "" || addr == "" {
		return false
	}
	if a.seenNames[name] || a.seenAddrs[addr] {
		return false
	}
	a.seenNames[name] = true
	a.seenAddrs[addr] = true
	a.accepted = append(a.accepted, loc)
	return true
}

func (a *acceptor) full() bool {
	return len(a.accepted) >= a.target
}

func (a *acceptor) shortfall() int {
	return a.target - len(a.accepted)
}

// excludeNames lists the accepted names for corrective-round prompts.
func (a *acceptor) excludeNames() []string {
	names := make([]string, 0, len(a.accepted))
	for _, loc := range a.accepted {
		names = append(names, loc.Name)
	}
	return names
}
