package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func shares(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		majority MajorityType
		yes      string
		no       string
		abstain  string
		want     ResolutionResult
	}{
		{name: "simple above half", majority: MajoritySimple, yes: "51", no: "49", abstain: "0", want: ResultAccepted},
		{name: "simple exactly half", majority: MajoritySimple, yes: "50", no: "50", abstain: "0", want: ResultRejected},
		{name: "simple abstain counts in total", majority: MajoritySimple, yes: "40", no: "30", abstain: "30", want: ResultRejected},
		{name: "qualified exactly three quarters", majority: MajorityQualified, yes: "75", no: "25", abstain: "0", want: ResultRejected},
		{name: "qualified above three quarters", majority: MajorityQualified, yes: "76", no: "24", abstain: "0", want: ResultAccepted},
		{name: "fractional shares", majority: MajoritySimple, yes: "50.0001", no: "49.9999", abstain: "0", want: ResultAccepted},
		{name: "no votes", majority: MajoritySimple, yes: "0", no: "0", abstain: "0", want: ResultRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := Tally{YesShares: shares(tt.yes), NoShares: shares(tt.no), AbstainShares: shares(tt.abstain)}
			got, err := Decide(tally, tt.majority)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecide_UnknownMajority(t *testing.T) {
	if _, err := Decide(Tally{}, MajorityType("unanimous")); err != ErrInvalidMajorityType {
		t.Fatalf("expected ErrInvalidMajorityType, got %v", err)
	}
}

func TestTallyVotes(t *testing.T) {
	tally, err := TallyVotes([]WeightedVote{
		{Choice: VoteYes, Shares: shares("10.5")},
		{Choice: VoteYes, Shares: shares("20")},
		{Choice: VoteNo, Shares: shares("30")},
		{Choice: VoteAbstain, Shares: shares("39.5")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tally.VotesYes != 2 || tally.VotesNo != 1 || tally.VotesAbstain != 1 {
		t.Fatalf("unexpected counts %+v", tally)
	}
	if tally.YesShares.String() != "30.5" {
		t.Fatalf("unexpected yes shares %s", tally.YesShares)
	}
	if !tally.TotalShares().Equal(shares("100")) {
		t.Fatalf("unexpected total %s", tally.TotalShares())
	}

	if _, err := TallyVotes([]WeightedVote{{Choice: "maybe", Shares: shares("1")}}); err != ErrInvalidVoteChoice {
		t.Fatalf("expected ErrInvalidVoteChoice, got %v", err)
	}
}
