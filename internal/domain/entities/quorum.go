package entities

import "github.com/shopspring/decimal"

// Quorum is the derived presence of a meeting
type Quorum struct {
	PresentShares decimal.Decimal `json:"present_shares"`
	TotalShares   decimal.Decimal `json:"total_shares"`
	Ratio         decimal.Decimal `json:"ratio"`
	Present       int             `json:"present"`
	Represented   int             `json:"represented"`
	Absent        int             `json:"absent"`
}

// ComputeQuorum sums present and represented shares over all participants.
// The ratio is zero when there are no shares.
func ComputeQuorum(participants []MeetingParticipant) Quorum {
	q := Quorum{PresentShares: decimal.Zero, TotalShares: decimal.Zero, Ratio: decimal.Zero}
	for _, p := range participants {
		q.TotalShares = q.TotalShares.Add(p.Shares)
		switch p.AttendanceStatus {
		case AttendancePresent:
			q.Present++
		case AttendanceRepresented:
			q.Represented++
		default:
			q.Absent++
		}
		if p.AttendanceStatus.CountsTowardsQuorum() {
			q.PresentShares = q.PresentShares.Add(p.Shares)
		}
	}
	if q.TotalShares.IsPositive() {
		q.Ratio = q.PresentShares.DivRound(q.TotalShares, 6)
	}
	return q
}
