package geom

// CellKind classifies a board cell within a building's footprint.
type CellKind uint8

const (
	Input CellKind = iota
	Output
	Inert
)

func (k CellKind) String() string {
	switch k {
	case Input:
		return "Input"
	case Output:
		return "Output"
	case Inert:
		return "Inert"
	default:
		return "Unknown"
	}
}

// FootprintCell is one (offset, kind) entry of a building's stamp, relative
// to the building's anchor.
type FootprintCell struct {
	Offset Pos
	Kind   CellKind
}

// AdjacencyPair is one (probe-offset, own-offset) entry checked after a
// stamp is placed: the probe cell, if occupied, is tested for a legal
// connection against the corresponding own cell.
type AdjacencyPair struct {
	Probe Pos
	Own   Pos
}

func fc(x, y int8, k CellKind) FootprintCell { return FootprintCell{Offset: P(x, y), Kind: k} }
func ap(ax, ay, bx, by int8) AdjacencyPair {
	return AdjacencyPair{Probe: P(ax, ay), Own: P(bx, by)}
}

// MineCells holds the 2x2-inert-core + 1-input + 1-output stamp for each
// of the four rotation indices. The rotation index is purely an array
// index shared consistently by placement and connection search; it is not
// tied to a compass label.
var MineCells = [4][]FootprintCell{
	{
		fc(0, 0, Inert), fc(1, 0, Inert),
		fc(-1, 1, Input), fc(0, 1, Inert), fc(1, 1, Inert), fc(2, 1, Output),
	},
	{
		fc(0, -1, Input),
		fc(0, 0, Inert), fc(1, 0, Inert),
		fc(0, 1, Inert), fc(1, 1, Inert),
		fc(0, 2, Output),
	},
	{
		fc(-1, 0, Output),
		fc(0, 0, Inert), fc(1, 0, Inert),
		fc(0, 1, Inert), fc(1, 1, Inert),
		fc(2, 0, Input),
	},
	{
		fc(1, -1, Output),
		fc(0, 0, Inert), fc(1, 0, Inert),
		fc(0, 1, Inert), fc(1, 1, Inert),
		fc(1, 2, Input),
	},
}

// AdjacentMineCells mirrors MineCells with the perimeter adjacency checks.
var AdjacentMineCells = [4][]AdjacencyPair{
	{
		ap(-1, 0, -1, 1), ap(2, 0, 2, 1),
		ap(-2, 1, -1, 1), ap(3, 1, 2, 1),
		ap(-1, 2, -1, 1), ap(2, 2, 2, 1),
	},
	{
		ap(0, -2, 0, -1), ap(-1, -1, 0, -1), ap(1, -1, 0, -1),
		ap(-1, 2, 0, 2), ap(1, 2, 0, 2), ap(0, 3, 0, 2),
	},
	{
		ap(-1, -1, -1, 0), ap(2, -1, 2, 0),
		ap(-2, 0, -1, 0), ap(3, 0, 2, 0),
		ap(-1, 1, -1, 0), ap(2, 1, 2, 0),
	},
	{
		ap(1, -2, 1, -1), ap(0, -1, 1, -1), ap(2, -1, 1, -1),
		ap(0, 2, 1, 2), ap(2, 2, 1, 2), ap(1, 3, 1, 2),
	},
}

// SmallConveyorCells is the 3-cell straight-segment stamp.
var SmallConveyorCells = [4][]FootprintCell{
	{fc(-1, 0, Input), fc(0, 0, Inert), fc(1, 0, Output)},
	{fc(0, -1, Input), fc(0, 0, Inert), fc(0, 1, Output)},
	{fc(-1, 0, Output), fc(0, 0, Inert), fc(1, 0, Input)},
	{fc(0, -1, Output), fc(0, 0, Inert), fc(0, 1, Input)},
}

// AdjacentSmallConveyorCells mirrors SmallConveyorCells.
var AdjacentSmallConveyorCells = [4][]AdjacencyPair{
	{
		ap(-1, -1, -1, 0), ap(1, -1, 1, 0),
		ap(-2, 0, -1, 0), ap(2, 0, 1, 0),
		ap(-1, 1, -1, 0), ap(1, 1, 1, 0),
	},
	{
		ap(0, -2, 0, -1), ap(-1, -1, 0, -1), ap(1, -1, 0, -1),
		ap(-1, 1, 0, 1), ap(1, 1, 0, 1), ap(0, 2, 0, 1),
	},
	{
		ap(-1, -1, -1, 0), ap(1, -1, 1, 0),
		ap(-2, 0, -1, 0), ap(2, 0, 1, 0),
		ap(-1, 1, -1, 0), ap(1, 1, 1, 0),
	},
	{
		ap(0, -2, 0, -1), ap(-1, -1, 0, -1), ap(1, -1, 0, -1),
		ap(-1, 1, 0, 1), ap(1, 1, 0, 1), ap(0, 2, 0, 1),
	},
}

// BigConveyorCells is the 4-cell straight-segment stamp.
var BigConveyorCells = [4][]FootprintCell{
	{fc(-1, 0, Input), fc(0, 0, Inert), fc(1, 0, Inert), fc(2, 0, Output)},
	{fc(0, -1, Input), fc(0, 0, Inert), fc(0, 1, Inert), fc(0, 2, Output)},
	{fc(-1, 0, Output), fc(0, 0, Inert), fc(1, 0, Inert), fc(2, 0, Input)},
	{fc(0, -1, Output), fc(0, 0, Inert), fc(0, 1, Inert), fc(0, 2, Input)},
}

// AdjacentBigConveyorCells mirrors BigConveyorCells.
var AdjacentBigConveyorCells = [4][]AdjacencyPair{
	{
		ap(-1, -1, -1, 0), ap(2, -1, 2, 0),
		ap(-2, 0, -1, 0), ap(3, 0, 2, 0),
		ap(-1, 1, -1, 0), ap(2, 1, 2, 0),
	},
	{
		ap(0, -2, 0, -1), ap(-1, -1, 0, -1), ap(1, -1, 0, -1),
		ap(-1, 2, 0, 2), ap(1, 2, 0, 2), ap(0, 3, 0, 2),
	},
	{
		ap(-1, -1, -1, 0), ap(2, -1, 2, 0),
		ap(-2, 0, -1, 0), ap(3, 0, 2, 0),
		ap(-1, 1, -1, 0), ap(2, 1, 2, 0),
	},
	{
		ap(0, -2, 0, -1), ap(-1, -1, 0, -1), ap(1, -1, 0, -1),
		ap(-1, 2, 0, 2), ap(1, 2, 0, 2), ap(0, 3, 0, 2),
	},
}

// CombinerCells is the 3-input/1-output stamp.
var CombinerCells = [4][]FootprintCell{
	{
		fc(-1, -1, Input), fc(-1, 0, Input), fc(-1, 1, Input),
		fc(0, -1, Inert), fc(0, 0, Inert), fc(0, 1, Inert),
		fc(1, 0, Output),
	},
	{
		fc(-1, -1, Input), fc(0, -1, Input), fc(1, -1, Input),
		fc(-1, 0, Inert), fc(0, 0, Inert), fc(1, 0, Inert),
		fc(0, 1, Output),
	},
	{
		fc(-1, 0, Output),
		fc(0, -1, Inert), fc(0, 0, Inert), fc(0, 1, Inert),
		fc(1, -1, Input), fc(1, 0, Input), fc(1, 1, Input),
	},
	{
		fc(0, -1, Output),
		fc(-1, 0, Inert), fc(0, 0, Inert), fc(1, 0, Inert),
		fc(-1, 1, Input), fc(0, 1, Input), fc(1, 1, Input),
	},
}

// AdjacentCombinerCells mirrors CombinerCells.
var AdjacentCombinerCells = [4][]AdjacencyPair{
	{
		ap(-1, -2, -1, -1), ap(-2, -1, -1, -1), ap(-2, 0, -1, 0), ap(-2, 1, -1, 1), ap(-1, 2, -1, 1),
		ap(1, -1, 1, 0), ap(2, 0, 1, 0), ap(1, 1, 1, 0),
	},
	{
		ap(-2, -1, -1, -1), ap(-1, -2, -1, -1), ap(0, -2, 0, -1), ap(1, -2, 1, -1), ap(2, -1, 1, -1),
		ap(-1, 1, 0, 1), ap(1, 1, 0, 1), ap(0, 2, 0, 1),
	},
	{
		ap(-1, -1, -1, 0), ap(-2, 0, -1, 0), ap(-1, 1, -1, 0),
		ap(1, -2, 1, -1), ap(2, -1, 1, -1), ap(2, 0, 1, 0), ap(2, 1, 1, 1), ap(1, 2, 1, 1),
	},
	{
		ap(0, -2, 0, -1), ap(-1, -1, 0, -1), ap(1, -1, 0, -1),
		ap(-2, 1, -1, 1), ap(-1, 2, -1, 1), ap(0, 2, 0, 1), ap(1, 2, 1, 1), ap(2, 1, 1, 1),
	},
}

// MineOutputEndOffset holds, per rotation, the mine's output-end offset from its
// anchor — the cell the connection search continues routing from.
var MineOutputEndOffset = [4]Pos{P(2, 1), P(0, 2), P(-1, 0), P(1, -1)}
