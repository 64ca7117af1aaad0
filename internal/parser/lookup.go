package parser

import (
	"fmt"

	"github.com/ribtools/ribscrape/internal/model"
)

// Tables holds the four id→name mappings for one match. Built once from the
// payload's content section and the match's player list, read-only after.
type Tables struct {
	Igns    map[int]string
	Agents  map[int]string
	Weapons map[int]string
	Regions map[int]string
}

// BuildTables builds the lookup tables for one match.
func BuildTables(content model.Content, match *model.Match) *Tables {
	t := &Tables{
		Igns:    make(map[int]string, len(match.Players)),
		Agents:  named(content.Agents),
		Weapons: named(content.Weapons),
		Regions: named(content.Regions),
	}
	for _, p := range match.Players {
		t.Igns[p.Player.ID] = p.Player.Ign
	}
	return t
}

func named(entities []model.NamedEntity) map[int]string {
	m := make(map[int]string, len(entities))
	for _, e := range entities {
		m[e.ID] = e.Name
	}
	return m
}

// NumPlayers is the expected number of stat records per round window.
// Never below 1, so window arithmetic cannot divide by zero.
func (t *Tables) NumPlayers() int {
	if len(t.Igns) < 1 {
		return 1
	}
	return len(t.Igns)
}

// Ign resolves a player id to their in-game name.
func (t *Tables) Ign(id int) (string, error) {
	return resolve(t.Igns, id, "player")
}

// Agent resolves an agent id to its name.
func (t *Tables) Agent(id int) (string, error) {
	return resolve(t.Agents, id, "agent")
}

// Weapon resolves a weapon id to its name.
func (t *Tables) Weapon(id int) (string, error) {
	return resolve(t.Weapons, id, "weapon")
}

// Region resolves a region id to its name.
func (t *Tables) Region(id int) (string, error) {
	return resolve(t.Regions, id, "region")
}

func resolve(table map[int]string, id int, kind string) (string, error) {
	name, ok := table[id]
	if !ok {
		return "", fmt.Errorf("%w: %s id %d", model.ErrLookupMiss, kind, id)
	}
	return name, nil
}
