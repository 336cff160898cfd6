package domain

// Yoga is a named planetary combination found in a chart.
type Yoga struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Bodies      []Body `json:"bodies" yaml:"bodies"`
}

// YogaCondition describes how a yoga rule is evaluated.
type YogaCondition string

// Supported rule conditions.
const (
	// YogaSameHouse requires every listed body in one house.
	YogaSameHouse YogaCondition = "same_house"

	// YogaKendraFromMoon requires the first listed body in the 1st, 4th,
	// 7th or 10th sign counted from the Moon.
	YogaKendraFromMoon YogaCondition = "kendra_from_moon"

	// YogaMoonUnflanked requires the 2nd and 12th signs from the Moon to be
	// empty of every planet except the Sun and the nodes.
	YogaMoonUnflanked YogaCondition = "moon_unflanked"
)

// YogaRule is a deterministic yoga definition.
type YogaRule struct {
	Name        string
	Description string
	Bodies      []Body
	Condition   YogaCondition
}

// DefaultYogaRules returns the built-in rule set.
func DefaultYogaRules() []YogaRule {
	return []YogaRule{
		{
			Name:        "Budha-Aditya",
			Description: "Sun and Mercury share a house",
			Bodies:      []Body{Sun, Mercury},
			Condition:   YogaSameHouse,
		},
		{
			Name:        "Gaja Kesari",
			Description: "Jupiter in a kendra from the Moon",
			Bodies:      []Body{Jupiter},
			Condition:   YogaKendraFromMoon,
		},
		{
			Name:        "Chandra-Mangala",
			Description: "Moon and Mars share a house",
			Bodies:      []Body{Moon, Mars},
			Condition:   YogaSameHouse,
		},
		{
			Name:        "Guru-Chandala",
			Description: "Jupiter and Rahu share a house",
			Bodies:      []Body{Jupiter, Rahu},
			Condition:   YogaSameHouse,
		},
		{
			Name:        "Kemadruma",
			Description: "No planet in the 2nd or 12th from the Moon",
			Bodies:      []Body{Moon},
			Condition:   YogaMoonUnflanked,
		},
	}
}
