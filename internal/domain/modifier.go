package domain

// GroupType is the choice cardinality of a modifier group. The values are
// the wire names the feed consumers expect.
type GroupType string

const (
	GroupTypeSingleRequired GroupType = "one_one"       // exactly one option
	GroupTypeMultiUnbounded GroupType = "all_unlimited" // zero or more options
)

type ModifierGroup struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Type      GroupType   `json:"type"`
	Min       int         `json:"min"`
	Max       int         `json:"max"`
	Modifiers []*Modifier `json:"modifiers"`
}

type Modifier struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Group int    `json:"group"`
}

// NewModifierGroup applies the policy constants for each group type:
// single_required pins min/max to 1/1, multi_unbounded to 0/3.
func NewModifierGroup(id int, name string, groupType GroupType) *ModifierGroup {
	g := &ModifierGroup{
		ID:   id,
		Name: name,
		Type: groupType,
	}
	if groupType == GroupTypeSingleRequired {
		g.Min, g.Max = 1, 1
	} else {
		g.Min, g.Max = 0, 3
	}
	return g
}
