package entities

import (
	"testing"
	"time"
)

func TestFirstUnmetStep(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name         string
		leaders      *time.Time
		participants *time.Time
		requested    ConductStep
		want         ConductStep
	}{
		{name: "leaders always reachable", requested: ConductStepLeaders, want: ConductStepLeaders},
		{name: "participants without leaders", requested: ConductStepParticipants, want: ConductStepLeaders},
		{name: "agenda without anything", requested: ConductStepAgendaItems, want: ConductStepLeaders},
		{name: "agenda without participants", leaders: &now, requested: ConductStepAgendaItems, want: ConductStepParticipants},
		{name: "agenda with both", leaders: &now, participants: &now, requested: ConductStepAgendaItems, want: ConductStepAgendaItems},
		{name: "summary with both", leaders: &now, participants: &now, requested: ConductStepSummary, want: ConductStepSummary},
		{name: "participants only set", participants: &now, requested: ConductStepAgendaItems, want: ConductStepLeaders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Meeting{Status: MeetingStatusInProgress, LeadersConfirmedAt: tt.leaders, ParticipantsConfirmedAt: tt.participants}
			if got := m.FirstUnmetStep(tt.requested); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestConductState(t *testing.T) {
	now := time.Now()
	m := &Meeting{Status: MeetingStatusInProgress}
	if got := m.ConductState(false); got != ConductStateNotStarted {
		t.Fatalf("expected not_started, got %s", got)
	}

	m.LeadersConfirmedAt = &now
	if got := m.ConductState(false); got != ConductStateLeadersConfirmed {
		t.Fatalf("expected leaders_confirmed, got %s", got)
	}

	m.ParticipantsConfirmedAt = &now
	if got := m.ConductState(false); got != ConductStateParticipantsConfirmed {
		t.Fatalf("expected participants_confirmed, got %s", got)
	}
	if got := m.ConductState(true); got != ConductStateAgendaDone {
		t.Fatalf("expected agenda_done, got %s", got)
	}

	m.Status = MeetingStatusCompleted
	if got := m.ConductState(true); got != ConductStateCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
}

func TestConductState_Transitions(t *testing.T) {
	tests := []struct {
		from ConductState
		to   ConductState
		want bool
	}{
		{ConductStateNotStarted, ConductStateLeadersConfirmed, true},
		{ConductStateNotStarted, ConductStateParticipantsConfirmed, false},
		{ConductStateNotStarted, ConductStateCompleted, false},
		{ConductStateLeadersConfirmed, ConductStateLeadersConfirmed, true},
		{ConductStateLeadersConfirmed, ConductStateParticipantsConfirmed, true},
		{ConductStateLeadersConfirmed, ConductStateCompleted, false},
		{ConductStateParticipantsConfirmed, ConductStateParticipantsConfirmed, true},
		{ConductStateParticipantsConfirmed, ConductStateCompleted, true},
		{ConductStateAgendaDone, ConductStateLeadersConfirmed, true},
		{ConductStateAgendaDone, ConductStateCompleted, true},
		{ConductStateCompleted, ConductStateLeadersConfirmed, false},
		{ConductStateCompleted, ConductStateParticipantsConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestMeetingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from MeetingStatus
		to   MeetingStatus
		want bool
	}{
		{MeetingStatusPlanned, MeetingStatusInProgress, true},
		{MeetingStatusPlanned, MeetingStatusCompleted, false},
		{MeetingStatusInProgress, MeetingStatusInProgress, false},
		{MeetingStatusInProgress, MeetingStatusCompleted, true},
		{MeetingStatusCompleted, MeetingStatusInProgress, false},
		{MeetingStatusCompleted, MeetingStatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestParseConductStep(t *testing.T) {
	step, ok := ParseConductStep("agenda-items")
	if !ok || step != ConductStepAgendaItems {
		t.Fatalf("unexpected step %v %v", step, ok)
	}
	if _, ok := ParseConductStep("voting"); ok {
		t.Fatalf("unknown step must not parse")
	}
}
