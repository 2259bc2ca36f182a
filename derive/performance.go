package derive

import (
	"sort"

	"github.com/gridcall/api/f1data"
)

// defaultTeamRank is assumed for teams absent from the standings (mid-field).
const defaultTeamRank = 5

// PerformanceScore is one driver's composite weekend score and its breakdown.
// Total is always the sum of the four sub-scores.
type PerformanceScore struct {
	Driver   string
	Team     string
	TeamRank int

	Quali     float64
	Race      float64
	Positions float64
	Teammate  float64
	Total     float64
}

// performanceScores computes a composite score for every classified driver,
// returned ranked best-first. Race rows must already have normalized grids.
func performanceScores(race, quali []f1data.SessionRow, standings []f1data.ConstructorStanding) []PerformanceScore {
	teamRank := map[string]int{}
	for _, s := range standings {
		teamRank[s.Team] = s.Rank
	}

	qualiPos := map[string]int{}
	for _, q := range quali {
		if q.Classified() {
			qualiPos[q.Driver] = *q.Position
		}
	}

	qualiBattles := qualiBattles(quali)
	raceBattles := raceBattles(race)

	var scores []PerformanceScore
	for _, row := range race {
		if !row.Classified() {
			continue
		}
		finish := *row.Position

		rank, ok := teamRank[row.Team]
		if !ok {
			rank = defaultTeamRank
		}

		s := PerformanceScore{Driver: row.Driver, Team: row.Team, TeamRank: rank}

		// Qualifying: non-linear base favoring Q3 positions, plus an
		// expectation adjustment against the team's championship rank.
		if qp, ok := qualiPos[row.Driver]; ok {
			var base float64
			if qp <= 10 {
				base = 45 - float64(qp-1)*2.5
			} else {
				base = 20 - float64(qp-10)*1.8
			}
			s.Quali = base + expectationBonus(rank, qp)
		}

		// Race finish: linear base, same expectation adjustment.
		s.Race = (21-float64(finish))*2.5 + expectationBonus(rank, finish)

		// Positions gained: asymmetric reward/penalty.
		if row.GridPosition != nil {
			gained := float64(*row.GridPosition - finish)
			if gained > 0 {
				s.Positions = gained * 3.5
			} else {
				s.Positions = gained * 2.5
			}
		}

		if b, ok := qualiBattles[row.Driver]; ok {
			if b.quicker == row.Driver {
				s.Teammate += 3.0
			} else {
				s.Teammate -= 3.0
			}
		}
		if b, ok := raceBattles[row.Driver]; ok {
			if b.ahead == row.Driver {
				s.Teammate += 5.0
				if b.aheadGained != nil && b.behindGained != nil {
					s.Teammate += float64(*b.aheadGained - *b.behindGained)
				}
			} else {
				s.Teammate -= 5.0
			}
		}

		s.Total = s.Quali + s.Race + s.Positions + s.Teammate
		scores = append(scores, s)
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Total > scores[j].Total })
	return scores
}

// expectationBonus rewards beating the position a team's championship rank
// implies and penalizes falling short, weighted up for weaker teams.
func expectationBonus(teamRank, position int) float64 {
	expected := float64(teamRank * 2)
	delta := expected - float64(position)
	multiplier := 1.0 + float64(teamRank-1)*0.0667
	return delta * multiplier
}

type qualiBattle struct {
	quicker, slower string
}

type raceBattle struct {
	ahead, behind             string
	aheadGained, behindGained *int
}

// qualiBattles pairs teammates from qualifying, keyed by driver. Only teams
// with exactly two classified qualifiers produce a battle.
func qualiBattles(quali []f1data.SessionRow) map[string]qualiBattle {
	battles := map[string]qualiBattle{}
	for _, pair := range teammatePairs(quali) {
		a, b := pair[0], pair[1]
		if !a.Classified() || !b.Classified() {
			continue
		}
		if *b.Position < *a.Position {
			a, b = b, a
		}
		battle := qualiBattle{quicker: a.Driver, slower: b.Driver}
		battles[a.Driver] = battle
		battles[b.Driver] = battle
	}
	return battles
}

// raceBattles pairs teammates from the race, keyed by driver. An unclassified
// driver always ranks behind a classified one; two unclassified teammates
// keep their row order.
func raceBattles(race []f1data.SessionRow) map[string]raceBattle {
	battles := map[string]raceBattle{}
	for _, pair := range teammatePairs(race) {
		ahead, behind := pair[0], pair[1]
		if finishRank(behind) < finishRank(ahead) {
			ahead, behind = behind, ahead
		}
		battle := raceBattle{
			ahead:        ahead.Driver,
			behind:       behind.Driver,
			aheadGained:  positionsGained(ahead),
			behindGained: positionsGained(behind),
		}
		battles[ahead.Driver] = battle
		battles[behind.Driver] = battle
	}
	return battles
}

// teammatePairs groups session rows by team and returns the teams fielding
// exactly two competitors, in first-appearance order.
func teammatePairs(rows []f1data.SessionRow) [][2]f1data.SessionRow {
	byTeam := map[string][]f1data.SessionRow{}
	var teamOrder []string
	for _, row := range rows {
		if _, seen := byTeam[row.Team]; !seen {
			teamOrder = append(teamOrder, row.Team)
		}
		byTeam[row.Team] = append(byTeam[row.Team], row)
	}

	var pairs [][2]f1data.SessionRow
	for _, team := range teamOrder {
		members := byTeam[team]
		if len(members) == 2 {
			pairs = append(pairs, [2]f1data.SessionRow{members[0], members[1]})
		}
	}
	return pairs
}

func finishRank(row f1data.SessionRow) int {
	if row.Position == nil {
		return int(^uint(0) >> 1) // unclassified sorts last
	}
	return *row.Position
}

func positionsGained(row f1data.SessionRow) *int {
	if row.Position == nil || row.GridPosition == nil {
		return nil
	}
	g := *row.GridPosition - *row.Position
	return &g
}
