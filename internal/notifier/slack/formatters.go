package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/results"
	"github.com/slack-go/slack"
)

// formatSessionSummary creates the Slack message for a settled session using Block Kit.
func (s *Notifier) formatSessionSummary(session ledger.Session, rows []results.PlayerRow) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🃏 Session settled! 🃏", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details
	detailsText := fmt.Sprintf("%s %s (%s)", session.Game, session.Stakes, formatSessionDate(session.Date))
	if session.Location != "" {
		detailsText = fmt.Sprintf("%s at %s", detailsText, session.Location)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	// Winner / me / loser lines
	var lines []string
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("• %s: %s", row.Name, formatAmount(row.Amount)))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	} else {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No results reported.", true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message to display the winnings leaderboard.
func (s *Notifier) formatStandings(standings []results.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Winnings Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No results yet. Go play some poker!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, standing := range standings {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s: %s", rank, medal, standing.Name, formatAmount(standing.Total))
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerWinnings creates a Slack message for a single player's cumulative result.
func (s *Notifier) formatPlayerWinnings(standing *results.Standing, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🃏 Winnings for %s", standing.Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	bodyText := fmt.Sprintf("Cumulative result: %s", formatAmount(standing.Total))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", bodyText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates the fallback message for an unknown player query.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	blocks := make([]slack.Block, 0)
	text := fmt.Sprintf("No results found for player '%s'.", query)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	return slack.NewBlockMessage(blocks...)
}

// formatAmount renders a signed amount, keeping the plus sign for winners.
func formatAmount(amount float64) string {
	if amount > 0 {
		return fmt.Sprintf("+%.2f", amount)
	}
	return fmt.Sprintf("%.2f", amount)
}

func formatSessionDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday 02 Jan")
}
