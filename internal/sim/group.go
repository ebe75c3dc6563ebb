package sim

const tombstone AgentID = -1

// Group is an ordered set of agent IDs. Add and Remove are O(1) amortized;
// removal leaves a tombstone that is compacted away once holes dominate, so
// enumeration order stays the insertion order and is reproducible.
type Group struct {
	ids   []AgentID
	index map[AgentID]int
	holes int
}

func NewGroup(capacity int) *Group {
	return &Group{
		ids:   make([]AgentID, 0, capacity),
		index: make(map[AgentID]int, capacity),
	}
}

// Add inserts id; it reports false if id was already a member.
func (g *Group) Add(id AgentID) bool {
	if _, ok := g.index[id]; ok {
		return false
	}
	g.index[id] = len(g.ids)
	g.ids = append(g.ids, id)
	return true
}

// Remove deletes id; it reports false if id was not a member.
func (g *Group) Remove(id AgentID) bool {
	i, ok := g.index[id]
	if !ok {
		return false
	}
	delete(g.index, id)
	g.ids[i] = tombstone
	g.holes++
	if g.holes > len(g.ids)/2 {
		g.compact()
	}
	return true
}

// RemoveAll deletes a batch of ids.
func (g *Group) RemoveAll(ids []AgentID) {
	for _, id := range ids {
		g.Remove(id)
	}
}

func (g *Group) Contains(id AgentID) bool {
	_, ok := g.index[id]
	return ok
}

func (g *Group) Count() int { return len(g.index) }

// IDs appends the members to dst in enumeration order and returns it. The
// result is a snapshot; mutating the group afterwards does not affect it.
func (g *Group) IDs(dst []AgentID) []AgentID {
	for _, id := range g.ids {
		if id != tombstone {
			dst = append(dst, id)
		}
	}
	return dst
}

func (g *Group) compact() {
	kept := g.ids[:0]
	for _, id := range g.ids {
		if id == tombstone {
			continue
		}
		g.index[id] = len(kept)
		kept = append(kept, id)
	}
	g.ids = kept
	g.holes = 0
}

// Counts is the size of every state group.
type Counts struct {
	Susceptible int
	Infected    int
	Recovered   int
	Dead        int
}

func (c Counts) Total() int {
	return c.Susceptible + c.Infected + c.Recovered + c.Dead
}

// Of returns the count for state s.
func (c Counts) Of(s HealthState) int {
	switch s {
	case Susceptible:
		return c.Susceptible
	case Infected:
		return c.Infected
	case Recovered:
		return c.Recovered
	case Dead:
		return c.Dead
	}
	return 0
}

// Groups holds the four disjoint state groups.
type Groups struct {
	byState [numStates]*Group
}

func NewGroups(capacity int) *Groups {
	gs := &Groups{}
	for i := range gs.byState {
		gs.byState[i] = NewGroup(capacity)
	}
	return gs
}

func (gs *Groups) Of(s HealthState) *Group { return gs.byState[s] }

// Move transfers a batch of ids from one group to another: one batch removal
// followed by one batch insertion.
func (gs *Groups) Move(ids []AgentID, from, to HealthState) {
	if len(ids) == 0 {
		return
	}
	gs.byState[from].RemoveAll(ids)
	dst := gs.byState[to]
	for _, id := range ids {
		dst.Add(id)
	}
}

func (gs *Groups) Counts() Counts {
	return Counts{
		Susceptible: gs.byState[Susceptible].Count(),
		Infected:    gs.byState[Infected].Count(),
		Recovered:   gs.byState[Recovered].Count(),
		Dead:        gs.byState[Dead].Count(),
	}
}
