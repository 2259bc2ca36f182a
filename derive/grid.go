package derive

import (
	"sort"

	"github.com/gridcall/api/f1data"
)

// normalizeGrid returns a copy of the race rows with usable grid positions:
//
//   - rows missing a grid position are backfilled from the driver's
//     qualifying position;
//   - pit-lane starters (grid 0, a provider convention) are reassigned
//     positions after the last occupied grid slot, ordered by driver number,
//     so the grid-to-finish delta is not computed against an impossible P0.
func normalizeGrid(race, quali []f1data.SessionRow) []f1data.SessionRow {
	rows := make([]f1data.SessionRow, len(race))
	copy(rows, race)

	qualiPos := map[string]int{}
	for _, q := range quali {
		if q.Classified() {
			qualiPos[q.Driver] = *q.Position
		}
	}

	for i := range rows {
		if rows[i].GridPosition == nil {
			if p, ok := qualiPos[rows[i].Driver]; ok {
				pos := p
				rows[i].GridPosition = &pos
			}
		}
	}

	maxGrid := 0
	var pitStarters []int // indexes into rows
	for i := range rows {
		if rows[i].GridPosition == nil {
			continue
		}
		if g := *rows[i].GridPosition; g == 0 {
			pitStarters = append(pitStarters, i)
		} else if g > maxGrid {
			maxGrid = g
		}
	}
	if maxGrid == 0 {
		// No real grid slots at all; nothing sensible to reassign against.
		return rows
	}

	sort.SliceStable(pitStarters, func(a, b int) bool {
		return rows[pitStarters[a]].DriverNumber < rows[pitStarters[b]].DriverNumber
	})
	for n, i := range pitStarters {
		pos := maxGrid + n + 1
		rows[i].GridPosition = &pos
	}

	return rows
}
