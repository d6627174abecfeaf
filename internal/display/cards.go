package display

import (
	"fmt"

	"github.com/tapjackhq/tapjack/internal/deck"
)

// cardCellWidth is the rendered width of one card including its leading
// space
const cardCellWidth = 14

// cardRows is the height of the card art
const cardRows = 10

// cardCell renders one row of one card. Face-down cards show the hatched
// back with its vertical UNLV column instead of rank and pips.
func cardCell(row int, c deck.Card, faceDown bool) string {
	if faceDown {
		switch row {
		case 0, 9:
			return " +-----------+"
		case 1, 8:
			return " |###########|"
		case 2, 7:
			return " |####   ####|"
		case 3:
			return " |#### U ####|"
		case 4:
			return " |#### N ####|"
		case 5:
			return " |#### L ####|"
		case 6:
			return " |#### V ####|"
		}
	}

	switch row {
	case 0, 9:
		return " +-----------+"
	case 1:
		return fmt.Sprintf(" | %s         |", c.Rank)
	case 2, 7:
		return " |           |"
	case 3:
		switch c.Suit {
		case deck.Hearts:
			return " |    _ _    |"
		case deck.Diamonds:
			return " |     ^     |"
		case deck.Clubs:
			return " |     _     |"
		case deck.Spades:
			return " |     .     |"
		}
	case 4:
		switch c.Suit {
		case deck.Hearts:
			return " |   ( V )   |"
		case deck.Diamonds:
			return ` |    / \    |`
		case deck.Clubs:
			return " |    (&)    |"
		case deck.Spades:
			return ` |    /&\    |`
		}
	case 5:
		switch c.Suit {
		case deck.Hearts, deck.Diamonds:
			return ` |    \ /    |`
		case deck.Clubs, deck.Spades:
			return " |   (&&&)   |"
		}
	case 6:
		switch c.Suit {
		case deck.Hearts, deck.Diamonds:
			return " |     V     |"
		case deck.Clubs, deck.Spades:
			return " |     ^     |"
		}
	case 8:
		return fmt.Sprintf(" |         %s |", c.Rank)
	}
	return " |   ERROR   |"
}
