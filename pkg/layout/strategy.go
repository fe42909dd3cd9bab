package layout

// Layout algorithms.
const (
	AlgorithmLayered    = "layered"
	AlgorithmConstraint = "constraint"
	AlgorithmForce      = "force"
)

// Layout directions: the axis along which ranks advance.
const (
	DirectionTB = "TB" // top to bottom
	DirectionLR = "LR" // left to right
	DirectionBT = "BT" // bottom to top
	DirectionRL = "RL" // right to left
)

// Default spacing parameters, in user units.
const (
	DefaultRankSep = 90.0
	DefaultNodeSep = 40.0
	DefaultColumns = 2
)

// Strategy selects the layout algorithm and its spacing parameters.
// It is supplied by an external framework-detection collaborator and is
// consumed as-is: any combination of values must produce a valid layout.
// The zero value is usable; Normalized fills in defaults.
type Strategy struct {
	// Algorithm selects the per-group layout family: layered, constraint,
	// or force. Unknown values fall back to layered.
	Algorithm string `json:"algorithm,omitempty" bson:"algorithm,omitempty" toml:"algorithm"`

	// Direction is the rank axis: TB, LR, BT, or RL.
	Direction string `json:"direction,omitempty" bson:"direction,omitempty" toml:"direction"`

	// RankSep is the gap between consecutive ranks; NodeSep the gap between
	// entities within a rank.
	RankSep float64 `json:"ranksep,omitempty" bson:"ranksep,omitempty" toml:"ranksep"`
	NodeSep float64 `json:"nodesep,omitempty" bson:"nodesep,omitempty" toml:"nodesep"`

	// Columns is the declaration grid width per caller.
	Columns int `json:"columns,omitempty" bson:"columns,omitempty" toml:"columns"`

	// Seed drives the force algorithm's RNG. Zero means time-seeded, so
	// repeated unseeded runs produce different (still valid) layouts.
	Seed uint64 `json:"seed,omitempty" bson:"seed,omitempty" toml:"seed"`

	// EdgeType is a rendering hint passed through to the output untouched.
	EdgeType string `json:"edge_type,omitempty" bson:"edge_type,omitempty" toml:"edge_type"`

	// Description is free-form collaborator text, also pass-through.
	Description string `json:"description,omitempty" bson:"description,omitempty" toml:"description"`
}

// Normalized returns a copy with defaults applied: unknown or empty
// algorithm and direction values fall back to layered/TB, and non-positive
// spacing parameters take the package defaults. Dispatch on the result is
// total; there is no strategy value that fails a layout.
func (s Strategy) Normalized() Strategy {
	switch s.Algorithm {
	case AlgorithmLayered, AlgorithmConstraint, AlgorithmForce:
	case "constraint-layered":
		s.Algorithm = AlgorithmConstraint
	case "force-directed":
		s.Algorithm = AlgorithmForce
	default:
		s.Algorithm = AlgorithmLayered
	}

	switch s.Direction {
	case DirectionTB, DirectionLR, DirectionBT, DirectionRL:
	default:
		s.Direction = DirectionTB
	}

	if s.RankSep <= 0 {
		s.RankSep = DefaultRankSep
	}
	if s.NodeSep <= 0 {
		s.NodeSep = DefaultNodeSep
	}
	if s.Columns <= 0 {
		s.Columns = DefaultColumns
	}
	return s
}

// horizontal reports whether ranks advance along the x axis.
func (s Strategy) horizontal() bool {
	return s.Direction == DirectionLR || s.Direction == DirectionRL
}

// reversed reports whether ranks advance against the axis direction.
func (s Strategy) reversed() bool {
	return s.Direction == DirectionBT || s.Direction == DirectionRL
}

// DefaultStrategy returns the engine's total default: layered, top-to-bottom,
// package spacing constants.
func DefaultStrategy() Strategy {
	return Strategy{}.Normalized()
}
