package simulate

import (
	"errors"
	"fmt"

	"github.com/okian/combine/internal/domain/model"
)

// ErrSquadOrder is returned when the squad ranking breaks its ordering.
var ErrSquadOrder = errors.New("squad ranking out of order")

// VerifySquad checks that entries are sorted by total, then greens, then
// athlete id, and that ranks are dense with ties sharing a rank.
func VerifySquad(squad []model.SquadEntry) error {
	for i := range squad {
		cur := squad[i]
		if i == 0 {
			if cur.Rank != 1 {
				return fmt.Errorf("%w: first rank is %d", ErrSquadOrder, cur.Rank)
			}
			continue
		}
		prev := squad[i-1]
		tied := cur.Total == prev.Total && cur.Greens == prev.Greens
		switch {
		case cur.Total > prev.Total,
			cur.Total == prev.Total && cur.Greens > prev.Greens,
			tied && cur.AthleteID < prev.AthleteID:
			return fmt.Errorf("%w: %s ahead of %s", ErrSquadOrder, prev.AthleteID, cur.AthleteID)
		case tied && cur.Rank != prev.Rank:
			return fmt.Errorf("%w: tie at %d split into ranks %d and %d", ErrSquadOrder, i, prev.Rank, cur.Rank)
		case !tied && cur.Rank != prev.Rank+1:
			return fmt.Errorf("%w: rank %d follows %d", ErrSquadOrder, cur.Rank, prev.Rank)
		}
	}
	return nil
}
