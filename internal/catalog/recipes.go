package catalog

import (
	"cricdash/domain/chart"
	"cricdash/internal/config"
)

const topN = 10

// Builtin returns the dashboard's chart recipes for every dataset. Player
// Info has no charts; it is shown as a table only.
func Builtin() ([]chart.Spec, []chart.DistributionSpec) {
	var specs []chart.Spec
	specs = append(specs, matchSummary()...)
	specs = append(specs, completeBatting()...)
	specs = append(specs, completeBowling()...)
	specs = append(specs, battingPerMatch()...)
	specs = append(specs, bowlingPerMatch()...)
	return specs, distributions()
}

func topSum(dataset, id, title, groupBy, metric, xLabel, yLabel string) chart.Spec {
	return chart.Spec{
		ID:          id,
		Title:       title,
		Dataset:     dataset,
		Kind:        chart.KindBarH,
		GroupBy:     groupBy,
		Metric:      metric,
		Aggregation: chart.AggSum,
		Sort:        chart.SortDesc,
		Limit:       topN,
		XLabel:      xLabel,
		YLabel:      yLabel,
	}
}

// mean turns a recipe into a per-player average. Rate columns are blank
// where the rate is undefined (no runs, never dismissed, no wickets); those
// rows are left out of the average.
func mean(spec chart.Spec) chart.Spec {
	spec.Aggregation = chart.AggMean
	spec.SkipMissingValues = true
	return spec
}

func matchSummary() []chart.Spec {
	ds := config.MatchSummary
	return []chart.Spec{
		{
			ID: "most-wins", Title: "Most Wins by Teams", Dataset: ds, Kind: chart.KindBar,
			GroupBy: "Winners", Aggregation: chart.AggCount, Sort: chart.SortDesc, Limit: 20,
			SkipMissingGroups: true,
			XLabel:            "Teams", YLabel: "Number of Wins",
			Description: "Matches won per team. Abandoned and no-result matches have no winner and are left out.",
		},
		{
			ID: "toss-decisions", Title: "Toss Decisions - Bat vs Bowl", Dataset: ds, Kind: chart.KindPie,
			GroupBy: "Toss Decision", Metric: "Toss Winning", Aggregation: chart.AggCount, Sort: chart.SortDesc, Limit: topN,
			SkipMissingGroups: true,
			Description:       "Share of toss winners choosing to **bat** or **bowl** first.",
		},
		{
			ID: "player-of-the-match", Title: "Most Player of the Match Awards", Dataset: ds, Kind: chart.KindBarH,
			GroupBy: "Player Of The Match", Aggregation: chart.AggCount, Sort: chart.SortDesc, Limit: topN,
			SkipMissingGroups: true,
			XLabel:            "Number of Awards", YLabel: "Players",
		},
	}
}

func completeBatting() []chart.Spec {
	ds := config.CompleteBattingSummary

	strikeRate := topSum(ds, "best-strike-rates", "Best Strike Rates (Min 100 Runs)", "batsmanName", "batting_sr", "Strike Rate", "Batsmen")
	strikeRate = mean(strikeRate)
	strikeRate.Threshold = &chart.Threshold{Column: "total_runs", Min: 100, Exclusive: true}
	strikeRate.Description = "Tournament strike rate of batsmen with more than 100 runs."

	boundaries := topSum(ds, "most-boundaries", "Most Boundaries Hit", "batsmanName", "total_boundaries", "Total Boundaries (4s + 6s)", "Batsmen")
	boundaries.Derived = &chart.DerivedMetric{Name: "total_boundaries", Columns: []string{"4s", "6s"}}

	average := topSum(ds, "best-batting-averages", "Best Batting Averages (Min 5 Innings)", "batsmanName", "batting_avg", "Batting Average", "Batsmen")
	average = mean(average)
	average.Threshold = &chart.Threshold{Column: "total_bat_innings", Min: 5}

	boundaryShare := topSum(ds, "boundary-share", "% of Runs Scored via Boundaries", "batsmanName", "runs % by boundary", "Boundary %", "Batsmen")
	boundaryShare = mean(boundaryShare)
	boundaryShare.Threshold = &chart.Threshold{Column: "total_runs", Min: 0, Exclusive: true}

	return []chart.Spec{
		topSum(ds, "top-run-scorers", "Top 10 Run Scorers", "batsmanName", "total_runs", "Total Runs", "Batsmen"),
		strikeRate,
		boundaries,
		average,
		boundaryShare,
	}
}

func completeBowling() []chart.Spec {
	ds := config.CompleteBowlingSummary
	minInnings := &chart.Threshold{Column: "total_bowl_innings", Min: 5}

	economy := topSum(ds, "best-economy", "Best Economy Rates (Min 5 Innings)", "bowlerName", "bowling_ecn", "Economy Rate", "Bowlers")
	economy = mean(economy)
	economy.Sort = chart.SortAsc
	economy.Threshold = minInnings

	strikeRate := topSum(ds, "best-bowling-strike-rates", "Best Bowling Strike Rates (Min 5 Innings)", "bowlerName", "bowling_sr", "Bowling Strike Rate", "Bowlers")
	strikeRate = mean(strikeRate)
	strikeRate.Sort = chart.SortAsc
	strikeRate.Threshold = minInnings
	strikeRate.Description = "Balls bowled per wicket. Lower is better."

	extras := topSum(ds, "most-extras", "Most Extras Conceded", "bowlerName", "total_extras", "Total Extras (Wides + No Balls)", "Bowlers")
	extras.Derived = &chart.DerivedMetric{Name: "total_extras", Columns: []string{"wides", "noBalls"}}

	return []chart.Spec{
		topSum(ds, "top-wicket-takers", "Top 10 Wicket-Takers", "bowlerName", "total_wickets", "Total Wickets", "Bowlers"),
		economy,
		strikeRate,
		topSum(ds, "most-dot-balls", "Most Dot Balls Bowled", "bowlerName", "dotBalls", "Total Dot Balls", "Bowlers"),
		topSum(ds, "most-runs-conceded", "Most Runs Conceded", "bowlerName", "runsConceded", "Total Runs Conceded", "Bowlers"),
		extras,
	}
}

func battingPerMatch() []chart.Spec {
	ds := config.BattingSummary

	strikeRate := topSum(ds, "highest-strike-rates", "Highest Strike Rates (Min 50 Balls Faced)", "batsmanName", "SR", "Strike Rate", "Batsmen")
	strikeRate = mean(strikeRate)
	strikeRate.Threshold = &chart.Threshold{Column: "balls", Min: 50}
	strikeRate.Description = "Mean strike rate over innings of at least 50 balls."

	return []chart.Spec{
		topSum(ds, "top-run-scorers", "Top 10 Run Scorers", "batsmanName", "runs", "Total Runs", "Batsmen"),
		strikeRate,
		topSum(ds, "most-sixes", "Most Sixes Hit", "batsmanName", "6s", "Total Sixes", "Batsmen"),
		topSum(ds, "most-fours", "Most Fours Hit", "batsmanName", "4s", "Total Fours", "Batsmen"),
		topSum(ds, "most-balls-faced", "Most Balls Faced", "batsmanName", "balls", "Total Balls Faced", "Batsmen"),
		{
			ID: "dismissals", Title: "Out vs. Not Out Ratio", Dataset: ds, Kind: chart.KindPie,
			GroupBy: "out/not_out", Aggregation: chart.AggCount, Sort: chart.SortDesc, Limit: topN,
			SkipMissingGroups: true,
		},
	}
}

func bowlingPerMatch() []chart.Spec {
	ds := config.BowlingSummary

	// Distinct from total_extras of the complete bowling summary.
	extras := topSum(ds, "most-extras", "Most Extras Given", "bowlerName", "Extras", "Total Extras (Wides + No-Balls)", "Bowlers")
	extras.Derived = &chart.DerivedMetric{Name: "Extras", Columns: []string{"wides", "noBalls"}}

	return []chart.Spec{
		topSum(ds, "top-wicket-takers", "Top 10 Wicket-Takers", "bowlerName", "wickets", "Total Wickets", "Bowlers"),
		topSum(ds, "most-dot-balls", "Most Dot Balls Bowled", "bowlerName", "dotBalls", "Total Dot Balls", "Bowlers"),
		topSum(ds, "most-runs-conceded", "Most Runs Conceded", "bowlerName", "runsConceded", "Total Runs Conceded", "Bowlers"),
		topSum(ds, "most-maidens", "Most Maidens Bowled", "bowlerName", "maiden", "Total Maidens", "Bowlers"),
		extras,
	}
}

func distributions() []chart.DistributionSpec {
	return []chart.DistributionSpec{
		{
			ID: "winning-margins", Title: "Distribution of Winning Margins", Dataset: config.MatchSummary,
			Metric: "Winning Margin", Bins: 10,
			Series: []chart.SeriesFilter{
				{Name: "Wins by Runs", Filter: chart.Equals("Won by", "Runs")},
				{Name: "Wins by Wickets", Filter: chart.Equals("Won by", "Wickets")},
			},
			XLabel: "Winning Margin", YLabel: "Number of Matches",
		},
	}
}
