package frameworks

import (
	"fmt"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/declaration"
)

// LotStatus is one line of progress shown against a lot.
type LotStatus struct {
	Title string
	Hint  string
	Quiet bool
}

type LotStatusInput struct {
	HasOneServiceLimit  bool
	DraftsCount         int
	CompleteDraftsCount int
	DeclarationStatus   string
	FrameworkStatus     string
	Unit                string
	UnitPlural          string
}

// StatusesForLot describes a supplier's progress on one lot.
func StatusesForLot(in LotStatusInput) []LotStatus {
	if in.DraftsCount == 0 && in.CompleteDraftsCount == 0 {
		return nil
	}
	open := in.FrameworkStatus == apiclient.FrameworkOpen
	declarationComplete := in.DeclarationStatus == declaration.StatusComplete

	if in.HasOneServiceLimit {
		return []LotStatus{oneServiceLotStatus(in, open, declarationComplete)}
	}

	if in.CompleteDraftsCount == 0 {
		if open {
			return []LotStatus{{Title: fmt.Sprintf("%d draft %s", in.DraftsCount, plural(in.DraftsCount, in.Unit, in.UnitPlural)), Quiet: true}}
		}
		return []LotStatus{{Title: fmt.Sprintf("No %s were submitted", in.UnitPlural), Quiet: true}}
	}

	complete := fmt.Sprintf("%d %s", in.CompleteDraftsCount, plural(in.CompleteDraftsCount, in.Unit, in.UnitPlural))
	var statuses []LotStatus
	switch {
	case open && declarationComplete:
		statuses = append(statuses, LotStatus{
			Title: complete + " will be submitted",
			Hint:  "You can edit them until the deadline",
		})
	case open:
		statuses = append(statuses, LotStatus{
			Title: complete + " marked as complete",
			Hint:  "Finish your declaration to submit them",
		})
	case declarationComplete:
		statuses = append(statuses, LotStatus{Title: complete + " submitted"})
	default:
		statuses = append(statuses, LotStatus{
			Title: complete + " not submitted",
			Hint:  "You did not make the supplier declaration",
			Quiet: true,
		})
	}
	if open && in.DraftsCount > 0 {
		statuses = append(statuses, LotStatus{
			Title: fmt.Sprintf("%d draft %s", in.DraftsCount, plural(in.DraftsCount, in.Unit, in.UnitPlural)),
			Quiet: true,
		})
	}
	return statuses
}

func oneServiceLotStatus(in LotStatusInput, open, declarationComplete bool) LotStatus {
	if in.CompleteDraftsCount > 0 {
		switch {
		case open && declarationComplete:
			return LotStatus{Title: "This will be submitted", Hint: "You can edit it until the deadline"}
		case open:
			return LotStatus{Title: "Marked as complete", Hint: "Finish your declaration to submit it"}
		case declarationComplete:
			return LotStatus{Title: "Submitted"}
		default:
			return LotStatus{Title: "Not submitted", Hint: "You did not make the supplier declaration", Quiet: true}
		}
	}
	if open {
		return LotStatus{Title: "Started but not complete", Quiet: true}
	}
	return LotStatus{Title: "Not completed", Quiet: true}
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
