package derive

import "sort"

const cohortSize = 5

// driverCohorts splits ranked scores into the breakout (top 5, best first)
// and bust (bottom 5, worst first) cohorts. Below ten classified drivers the
// ranking is too thin to call anyone a surprise, so both cohorts are empty.
func driverCohorts(ranked []PerformanceScore) (breakout, bust []string) {
	if len(ranked) < cohortMinDrivers {
		return nil, nil
	}

	for i := 0; i < cohortSize; i++ {
		breakout = append(breakout, ranked[i].Driver)
	}
	for i := len(ranked) - 1; i >= len(ranked)-cohortSize; i-- {
		bust = append(bust, ranked[i].Driver)
	}
	return breakout, bust
}

// teamCohorts ranks teams by the mean total score of their drivers and
// returns the top three and bottom three. Follows the same minimum-driver
// threshold as the driver cohorts.
func teamCohorts(ranked []PerformanceScore) (breakout, bust []string) {
	if len(ranked) < cohortMinDrivers {
		return nil, nil
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, s := range ranked {
		sums[s.Team] += s.Total
		counts[s.Team]++
	}

	type teamMean struct {
		team string
		mean float64
	}
	means := make([]teamMean, 0, len(sums))
	for team, sum := range sums {
		means = append(means, teamMean{team: team, mean: sum / float64(counts[team])})
	}
	sort.Slice(means, func(i, j int) bool {
		if means[i].mean != means[j].mean {
			return means[i].mean > means[j].mean
		}
		return means[i].team < means[j].team
	})

	n := len(means)
	top := cohortTeams
	if top > n {
		top = n
	}
	for i := 0; i < top; i++ {
		breakout = append(breakout, means[i].team)
	}
	for i := n - top; i < n; i++ {
		bust = append(bust, means[i].team)
	}
	return breakout, bust
}

const cohortTeams = 3
