// Package gamedata holds the read-only content tables the engine consults:
// locations, items, enemies, quests, spells and shouts. The engine never
// mutates these; they are passed into every call as a lookup reference.
package gamedata

type Location struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Safe      bool   `json:"safe"`
	HasShop   bool   `json:"hasShop"`
	HasInn    bool   `json:"hasInn"`
	HasShrine bool   `json:"hasShrine"`
}

type Item struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
	Value   int64   `json:"value"`
	Healing bool    `json:"healing"`
	Weapon  bool    `json:"weapon"`
	Damage  int     `json:"damage,omitempty"`
}

type Enemy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type Quest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LocationID string `json:"locationId"`
	Reward     int64  `json:"reward"`
}

type Spell struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type Shout struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tables is an immutable set of content lookup tables.
type Tables struct {
	locations map[string]Location
	items     map[string]Item
	enemies   map[string]Enemy
	quests    map[string]Quest
	spells    map[string]Spell
	shouts    map[string]Shout
}

// New builds a Tables set from content slices. Later entries with a
// duplicate ID replace earlier ones.
func New(locations []Location, items []Item, enemies []Enemy, quests []Quest, spells []Spell, shouts []Shout) *Tables {
	t := &Tables{
		locations: make(map[string]Location, len(locations)),
		items:     make(map[string]Item, len(items)),
		enemies:   make(map[string]Enemy, len(enemies)),
		quests:    make(map[string]Quest, len(quests)),
		spells:    make(map[string]Spell, len(spells)),
		shouts:    make(map[string]Shout, len(shouts)),
	}
	for _, l := range locations {
		t.locations[l.ID] = l
	}
	for _, i := range items {
		t.items[i.ID] = i
	}
	for _, e := range enemies {
		t.enemies[e.ID] = e
	}
	for _, q := range quests {
		t.quests[q.ID] = q
	}
	for _, s := range spells {
		t.spells[s.ID] = s
	}
	for _, s := range shouts {
		t.shouts[s.ID] = s
	}
	return t
}

func (t *Tables) Location(id string) (Location, bool) {
	l, ok := t.locations[id]
	return l, ok
}

func (t *Tables) Item(id string) (Item, bool) {
	i, ok := t.items[id]
	return i, ok
}

func (t *Tables) Enemy(id string) (Enemy, bool) {
	e, ok := t.enemies[id]
	return e, ok
}

func (t *Tables) Quest(id string) (Quest, bool) {
	q, ok := t.quests[id]
	return q, ok
}

func (t *Tables) Spell(id string) (Spell, bool) {
	s, ok := t.spells[id]
	return s, ok
}

func (t *Tables) Shout(id string) (Shout, bool) {
	s, ok := t.shouts[id]
	return s, ok
}

// Quests returns all quest entries. Order is not defined.
func (t *Tables) Quests() []Quest {
	out := make([]Quest, 0, len(t.quests))
	for _, q := range t.quests {
		out = append(out, q)
	}
	return out
}
