package presenter

import (
	"encoding/json"

	conductDTO "github.com/johnquangdev/weg-assembly/internal/adapter/dto/conduct"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/conduct"
)

// ToStateResponse converts the conduct overview
func ToStateResponse(s *conduct.StateOverview) *conductDTO.StateResponse {
	return &conductDTO.StateResponse{
		State:                   string(s.State),
		Status:                  string(s.Status),
		NextStep:                s.NextStep,
		LeadersConfirmedAt:      s.LeadersConfirmedAt,
		ParticipantsConfirmedAt: s.ParticipantsConfirmedAt,
		CompletedAt:             s.CompletedAt,
	}
}

// ToLeaderListResponse converts meeting leaders
func ToLeaderListResponse(leaders []*entities.MeetingLeader) []*conductDTO.LeaderResponse {
	out := make([]*conductDTO.LeaderResponse, len(leaders))
	for i, l := range leaders {
		out[i] = &conductDTO.LeaderResponse{
			ID:       l.ID.String(),
			Name:     l.Name,
			Role:     string(l.Role),
			Position: l.Position,
		}
	}
	return out
}

// ToParticipantResponse converts a participant. The representative is only
// exposed for represented participants.
func ToParticipantResponse(p *entities.MeetingParticipant) *conductDTO.ParticipantResponse {
	return &conductDTO.ParticipantResponse{
		ID:               p.ID.String(),
		OwnerID:          p.OwnerID.String(),
		UnitID:           p.UnitID.String(),
		OwnerName:        p.OwnerName,
		UnitIdentifier:   p.UnitIdentifier,
		Shares:           p.Shares.String(),
		AttendanceStatus: string(p.AttendanceStatus),
		RepresentedBy:    p.EffectiveRepresentative(),
	}
}

// ToParticipantListResponse converts participants
func ToParticipantListResponse(participants []*entities.MeetingParticipant) []*conductDTO.ParticipantResponse {
	out := make([]*conductDTO.ParticipantResponse, len(participants))
	for i, p := range participants {
		out[i] = ToParticipantResponse(p)
	}
	return out
}

// ToQuorumResponse converts a quorum
func ToQuorumResponse(q *entities.Quorum) *conductDTO.QuorumResponse {
	return &conductDTO.QuorumResponse{
		PresentShares: q.PresentShares.String(),
		TotalShares:   q.TotalShares.String(),
		Ratio:         q.Ratio.String(),
		Present:       q.Present,
		Represented:   q.Represented,
		Absent:        q.Absent,
	}
}

// ToResolutionResponse converts a resolution
func ToResolutionResponse(r *entities.Resolution) *conductDTO.ResolutionResponse {
	if r == nil {
		return nil
	}

	response := &conductDTO.ResolutionResponse{
		ID:            r.ID.String(),
		AgendaItemID:  r.AgendaItemID.String(),
		MajorityType:  string(r.MajorityType),
		VotesYes:      r.VotesYes,
		VotesNo:       r.VotesNo,
		VotesAbstain:  r.VotesAbstain,
		YesShares:     r.YesShares,
		NoShares:      r.NoShares,
		AbstainShares: r.AbstainShares,
		CalculatedAt:  r.CalculatedAt,
	}
	if r.Result != nil {
		result := string(*r.Result)
		response.Result = &result
	}
	return response
}

// ToResolutionListResponse converts resolutions
func ToResolutionListResponse(resolutions []*entities.Resolution) []*conductDTO.ResolutionResponse {
	out := make([]*conductDTO.ResolutionResponse, len(resolutions))
	for i, r := range resolutions {
		out[i] = ToResolutionResponse(r)
	}
	return out
}

// ToCalculationListResponse converts audit rows
func ToCalculationListResponse(calcs []*entities.ResolutionCalculation) []*conductDTO.CalculationResponse {
	out := make([]*conductDTO.CalculationResponse, len(calcs))
	for i, c := range calcs {
		var breakdown interface{}
		if len(c.Breakdown) > 0 {
			_ = json.Unmarshal(c.Breakdown, &breakdown)
		}
		out[i] = &conductDTO.CalculationResponse{
			ID:            c.ID.String(),
			MajorityType:  string(c.MajorityType),
			YesShares:     c.YesShares,
			NoShares:      c.NoShares,
			AbstainShares: c.AbstainShares,
			TotalShares:   c.TotalShares,
			Result:        string(c.Result),
			Breakdown:     breakdown,
			CalculatedBy:  c.CalculatedBy.String(),
			CreatedAt:     c.CreatedAt,
		}
	}
	return out
}

// ToVoteListResponse converts votes joined with participants
func ToVoteListResponse(votes []*entities.VoteWithParticipant) []*conductDTO.VoteResponse {
	out := make([]*conductDTO.VoteResponse, len(votes))
	for i, v := range votes {
		out[i] = &conductDTO.VoteResponse{
			ID:             v.ID.String(),
			ParticipantID:  v.ParticipantID.String(),
			OwnerName:      v.OwnerName,
			UnitIdentifier: v.UnitIdentifier,
			Shares:         v.Shares.String(),
			Choice:         string(v.Choice),
		}
	}
	return out
}

// ToProtocolResponse converts the protocol read model
func ToProtocolResponse(p *conduct.Protocol) *conductDTO.ProtocolResponse {
	items := make([]*conductDTO.ProtocolItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = &conductDTO.ProtocolItemResponse{
			AgendaItem: ToAgendaItemResponse(item.AgendaItem),
			Resolution: ToResolutionResponse(item.Resolution),
			Completed:  item.Completed,
			Voted:      item.Voted,
		}
	}

	return &conductDTO.ProtocolResponse{
		Meeting:      ToMeetingResponse(p.Meeting),
		Leaders:      ToLeaderListResponse(p.Leaders),
		Participants: ToParticipantListResponse(p.Participants),
		Quorum:       ToQuorumResponse(&p.Quorum),
		Items:        items,
		AllCompleted: p.AllCompleted,
	}
}
