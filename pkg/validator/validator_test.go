package validator

import "testing"

type ballot struct {
	ParticipantID string `json:"participant_id" validate:"required,uuid"`
	Choice        string `json:"choice" validate:"required,oneof=yes no abstain"`
}

type batch struct {
	Votes []ballot `json:"votes" validate:"dive"`
}

func TestValidate_ReportsJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&batch{Votes: []ballot{
		{ParticipantID: "0b5b8f1e-3f5a-4a55-9d89-1f4f3bb4b1a1", Choice: "yes"},
		{ParticipantID: "nope", Choice: "maybe"},
	}})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	fields := FieldErrors(err)
	if fields["votes[1].choice"] != "oneof" {
		t.Fatalf("expected oneof on choice, got %v", fields)
	}
	if fields["votes[1].participant_id"] != "uuid" {
		t.Fatalf("expected uuid on participant_id, got %v", fields)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", fields)
	}
}
