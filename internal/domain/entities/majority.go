package entities

import (
	"github.com/shopspring/decimal"
)

var (
	simpleThreshold    = decimal.RequireFromString("0.5")
	qualifiedThreshold = decimal.RequireFromString("0.75")
)

// WeightedVote is a vote carrying the shares of its participant
type WeightedVote struct {
	Choice VoteChoice
	Shares decimal.Decimal
}

// Tally aggregates votes per choice
type Tally struct {
	VotesYes      int
	VotesNo       int
	VotesAbstain  int
	YesShares     decimal.Decimal
	NoShares      decimal.Decimal
	AbstainShares decimal.Decimal
}

// TotalShares is the share sum of everyone who voted, abstentions included
func (t Tally) TotalShares() decimal.Decimal {
	return t.YesShares.Add(t.NoShares).Add(t.AbstainShares)
}

// TallyVotes sums counts and shares per choice
func TallyVotes(votes []WeightedVote) (Tally, error) {
	t := Tally{YesShares: decimal.Zero, NoShares: decimal.Zero, AbstainShares: decimal.Zero}
	for _, v := range votes {
		switch v.Choice {
		case VoteYes:
			t.VotesYes++
			t.YesShares = t.YesShares.Add(v.Shares)
		case VoteNo:
			t.VotesNo++
			t.NoShares = t.NoShares.Add(v.Shares)
		case VoteAbstain:
			t.VotesAbstain++
			t.AbstainShares = t.AbstainShares.Add(v.Shares)
		default:
			return Tally{}, ErrInvalidVoteChoice
		}
	}
	return t, nil
}

// Threshold returns the fraction of total shares that yes-shares must exceed
func Threshold(m MajorityType) (decimal.Decimal, error) {
	switch m {
	case MajoritySimple:
		return simpleThreshold, nil
	case MajorityQualified:
		return qualifiedThreshold, nil
	}
	return decimal.Zero, ErrInvalidMajorityType
}

// Decide applies the majority rule. Acceptance is strictly greater than the
// threshold; a tally without votes is rejected. Postponed is never produced here.
func Decide(t Tally, m MajorityType) (ResolutionResult, error) {
	threshold, err := Threshold(m)
	if err != nil {
		return "", err
	}
	if t.YesShares.GreaterThan(t.TotalShares().Mul(threshold)) {
		return ResultAccepted, nil
	}
	return ResultRejected, nil
}
