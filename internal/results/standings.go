package results

import "sort"

// Standing is one leaderboard entry: a player and their cumulative winnings.
type Standing struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
}

// Standings turns the cross-session totals into a leaderboard sorted by
// cumulative winnings, highest first. Ties are ordered by player id so the
// output is stable. Players without a single defined result do not appear.
func (c *Calculator) Standings() []Standing {
	totals := c.TotalWinningsByPlayer()

	standings := make([]Standing, 0, len(totals))
	for playerID, total := range totals {
		standings = append(standings, Standing{
			PlayerID: playerID,
			Name:     c.playerName(playerID),
			Total:    total,
		})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Total != standings[j].Total {
			return standings[i].Total > standings[j].Total
		}
		return standings[i].PlayerID < standings[j].PlayerID
	})
	return standings
}
