package entities

// ConductState is the persisted-progress view of a meeting's conduct workflow.
// It is derived from the meeting status and the two gate timestamps.
type ConductState string

const (
	ConductStateNotStarted            ConductState = "not_started"
	ConductStateLeadersConfirmed      ConductState = "leaders_confirmed"
	ConductStateParticipantsConfirmed ConductState = "participants_confirmed"
	ConductStateAgendaDone            ConductState = "agenda_done"
	ConductStateCompleted             ConductState = "completed"
)

var conductTransitions = map[ConductState][]ConductState{
	ConductStateNotStarted:            {ConductStateLeadersConfirmed},
	ConductStateLeadersConfirmed:      {ConductStateLeadersConfirmed, ConductStateParticipantsConfirmed},
	ConductStateParticipantsConfirmed: {ConductStateLeadersConfirmed, ConductStateParticipantsConfirmed, ConductStateAgendaDone, ConductStateCompleted},
	ConductStateAgendaDone:            {ConductStateLeadersConfirmed, ConductStateParticipantsConfirmed, ConductStateCompleted},
	ConductStateCompleted:             {ConductStateCompleted},
}

// CanTransitionTo reports whether moving from s to next is a valid conduct transition.
// Re-entering a confirmed state stands for resubmitting it; the gate
// timestamp is kept.
func (s ConductState) CanTransitionTo(next ConductState) bool {
	for _, allowed := range conductTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ConductStep is a navigation step of the conduct UI, in strict order
type ConductStep int

const (
	ConductStepLeaders ConductStep = iota + 1
	ConductStepParticipants
	ConductStepAgendaItems
	ConductStepSummary
)

var conductStepNames = map[ConductStep]string{
	ConductStepLeaders:      "leaders",
	ConductStepParticipants: "participants",
	ConductStepAgendaItems:  "agenda-items",
	ConductStepSummary:      "summary",
}

// String returns the URL segment of the step
func (s ConductStep) String() string {
	return conductStepNames[s]
}

// ParseConductStep parses a URL segment into a step
func ParseConductStep(value string) (ConductStep, bool) {
	for step, name := range conductStepNames {
		if name == value {
			return step, true
		}
	}
	return 0, false
}

// ConductState derives the tagged state. agendaDone tells whether every
// agenda item has been completed.
func (m *Meeting) ConductState(agendaDone bool) ConductState {
	switch {
	case m.IsCompleted():
		return ConductStateCompleted
	case m.LeadersConfirmedAt == nil:
		return ConductStateNotStarted
	case m.ParticipantsConfirmedAt == nil:
		return ConductStateLeadersConfirmed
	case agendaDone:
		return ConductStateAgendaDone
	default:
		return ConductStateParticipantsConfirmed
	}
}

// FirstUnmetStep returns the step that must be shown for a request of step
// requested: the first step whose gate is not passed, checked leaders first.
func (m *Meeting) FirstUnmetStep(requested ConductStep) ConductStep {
	if requested > ConductStepLeaders && m.LeadersConfirmedAt == nil {
		return ConductStepLeaders
	}
	if requested > ConductStepParticipants && m.ParticipantsConfirmedAt == nil {
		return ConductStepParticipants
	}
	return requested
}
