package results

import (
	"github.com/mkrogh/pokernight/internal/ledger"
)

// TotalBuyInsByPlayerAndSession sums the embedded buy-in amounts of every
// result record into a sessionID → playerID → total mapping. Pairs without a
// record are absent from the mapping, not zero. The returned map is shared
// between callers and must not be mutated.
func (c *Calculator) TotalBuyInsByPlayerAndSession() map[string]map[string]float64 {
	c.buyInsOnce.Do(func() {
		totals := make(map[string]map[string]float64)
		for i := range c.snap.Results {
			r := &c.snap.Results[i]
			if totals[r.SessionID] == nil {
				totals[r.SessionID] = make(map[string]float64)
			}
			sum := 0.0
			for _, amount := range r.BuyIns {
				sum += amount
			}
			totals[r.SessionID][r.PlayerID] += sum
		}
		c.buyIns = totals
	})
	return c.buyIns
}

// TotalBuyInsForPlayerInSession returns the aggregated buy-in total for one
// pair, defaulting to 0 when no record exists.
func (c *Calculator) TotalBuyInsForPlayerInSession(sessionID, playerID string) float64 {
	return c.TotalBuyInsByPlayerAndSession()[sessionID][playerID]
}

// CalculatedResultForPlayer derives the net profit/loss for a (session,
// player) pair. An explicit result value, including 0, takes absolute
// precedence over the cash-out. Without one, the figure is cash-out minus the
// buy-in total. ok is false when no record exists or neither field is set;
// such entries are excluded from every aggregation downstream.
func (c *Calculator) CalculatedResultForPlayer(sessionID, playerID string) (float64, bool) {
	result := c.findResult(sessionID, playerID)
	if result == nil {
		return 0, false
	}
	if result.Result != nil {
		return *result.Result, true
	}
	if result.CashOut == nil {
		return 0, false
	}
	return *result.CashOut - c.TotalBuyInsForPlayerInSession(sessionID, playerID), true
}

// LargestWinnerForSession returns the player with the strictly greatest
// positive derived result. Ties are broken arbitrarily (first in record
// order). ok is false when the session has no positive result.
func (c *Calculator) LargestWinnerForSession(sessionID string) (string, bool) {
	var winnerID string
	var winnerAmount float64
	found := false

	for i := range c.snap.Results {
		r := &c.snap.Results[i]
		if r.SessionID != sessionID {
			continue
		}
		amount, ok := c.CalculatedResultForPlayer(sessionID, r.PlayerID)
		if !ok {
			continue
		}
		if amount > 0 && (!found || amount > winnerAmount) {
			winnerAmount = amount
			winnerID = r.PlayerID
			found = true
		}
	}
	return winnerID, found
}

// LargestLoserForSession is the mirror of LargestWinnerForSession: the player
// with the strictly smallest negative derived result.
func (c *Calculator) LargestLoserForSession(sessionID string) (string, bool) {
	var loserID string
	var loserAmount float64
	found := false

	for i := range c.snap.Results {
		r := &c.snap.Results[i]
		if r.SessionID != sessionID {
			continue
		}
		amount, ok := c.CalculatedResultForPlayer(sessionID, r.PlayerID)
		if !ok {
			continue
		}
		if amount < 0 && (!found || amount < loserAmount) {
			loserAmount = amount
			loserID = r.PlayerID
			found = true
		}
	}
	return loserID, found
}

// SessionRows assembles one display row per session, in session collection
// order. Each row carries an ordered, deduplicated subset of up to three
// player entries: largest winner, then the "ME" player, then largest loser,
// with absent roles skipped. Sessions without result records still yield a
// row with an empty player list.
func (c *Calculator) SessionRows() []SessionRow {
	c.rowsOnce.Do(func() {
		meID := ""
		for _, p := range c.snap.Players {
			if p.Description == ledger.DescriptionMe {
				meID = p.ID
				break
			}
		}

		rows := make([]SessionRow, 0, len(c.snap.Sessions))
		for _, session := range c.snap.Sessions {
			row := SessionRow{
				ID:       session.ID,
				Date:     session.Date,
				Location: session.Location,
				Game:     session.Game,
				Stakes:   session.Stakes,
				Players:  []PlayerRow{},
			}

			all := make(map[string]PlayerRow)
			for i := range c.snap.Results {
				r := &c.snap.Results[i]
				if r.SessionID != session.ID {
					continue
				}
				amount, _ := c.CalculatedResultForPlayer(session.ID, r.PlayerID)
				all[r.PlayerID] = PlayerRow{
					ID:     r.PlayerID,
					Name:   c.playerName(r.PlayerID),
					Amount: amount,
				}
			}

			appendRole := func(playerID string) {
				entry, ok := all[playerID]
				if !ok {
					return
				}
				for _, existing := range row.Players {
					if existing.ID == playerID {
						return
					}
				}
				row.Players = append(row.Players, entry)
			}

			if winnerID, ok := c.LargestWinnerForSession(session.ID); ok {
				appendRole(winnerID)
			}
			if meID != "" {
				appendRole(meID)
			}
			if loserID, ok := c.LargestLoserForSession(session.ID); ok {
				appendRole(loserID)
			}

			rows = append(rows, row)
		}
		c.rows = rows
	})
	return c.rows
}

// TotalWinningsByPlayer sums each player's defined derived results across all
// sessions, iterating sessions then records in collection order. Players whose
// every derived result is undefined are absent from the mapping. The returned
// map is shared between callers and must not be mutated.
func (c *Calculator) TotalWinningsByPlayer() map[string]float64 {
	c.winningsOnce.Do(func() {
		totals := make(map[string]float64)
		for _, session := range c.snap.Sessions {
			for i := range c.snap.Results {
				r := &c.snap.Results[i]
				if r.SessionID != session.ID {
					continue
				}
				amount, ok := c.CalculatedResultForPlayer(session.ID, r.PlayerID)
				if !ok {
					continue
				}
				totals[r.PlayerID] += amount
			}
		}
		c.winnings = totals
	})
	return c.winnings
}

func (c *Calculator) findResult(sessionID, playerID string) *ledger.Result {
	for i := range c.snap.Results {
		r := &c.snap.Results[i]
		if r.SessionID == sessionID && r.PlayerID == playerID {
			return r
		}
	}
	return nil
}

func (c *Calculator) playerName(playerID string) string {
	for _, p := range c.snap.Players {
		if p.ID == playerID {
			return p.Name
		}
	}
	return "Unknown"
}
