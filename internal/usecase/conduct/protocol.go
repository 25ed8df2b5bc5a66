package conduct

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

// Protocol is the read model of the summary step and the archived document
type Protocol struct {
	Meeting      *entities.Meeting              `json:"meeting"`
	Leaders      []*entities.MeetingLeader      `json:"leaders"`
	Participants []*entities.MeetingParticipant `json:"participants"`
	Quorum       entities.Quorum                `json:"quorum"`
	Items        []ProtocolItem                 `json:"items"`
	AllCompleted bool                           `json:"all_completed"`
}

// ProtocolItem is an agenda item with its resolution, if any
type ProtocolItem struct {
	AgendaItem *entities.AgendaItem `json:"agenda_item"`
	Resolution *entities.Resolution `json:"resolution,omitempty"`
	// Completed means a resolution row exists
	Completed bool `json:"completed"`
	// Voted means the resolution has a result
	Voted bool `json:"voted"`
}

func protocolKey(h *access.MeetingHandle) string {
	return "protocol:" + h.MeetingID().String()
}

func protocolObjectName(h *access.MeetingHandle) string {
	return fmt.Sprintf("protocols/%s/%s.json", h.OrganizationID, h.MeetingID())
}

// Protocol builds the summary. Completed meetings are served from the cache when present.
func (s *ConductService) Protocol(ctx context.Context, h *access.MeetingHandle) (*Protocol, error) {
	if h.Meeting.IsCompleted() && s.cache != nil {
		body, ok, err := s.cache.Get(ctx, protocolKey(h))
		if err != nil {
			s.log(ctx, h).Warn("failed to read protocol cache", zap.Error(err))
		}
		if ok {
			var cached Protocol
			if err := json.Unmarshal(body, &cached); err == nil {
				return &cached, nil
			}
			// unreadable entry, rebuilt below
			if err := s.cache.Delete(ctx, protocolKey(h)); err != nil {
				s.log(ctx, h).Warn("failed to evict protocol cache", zap.Error(err))
			}
		}
	}

	protocol, err := s.buildProtocol(ctx, h)
	if err != nil {
		return nil, err
	}

	if h.Meeting.IsCompleted() {
		if body, err := json.Marshal(protocol); err == nil {
			s.cacheProtocol(ctx, h, body)
		}
	}
	return protocol, nil
}

func (s *ConductService) buildProtocol(ctx context.Context, h *access.MeetingHandle) (*Protocol, error) {
	meeting, err := s.reloadMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, err
	}
	leaders, err := s.leaders.ListByMeeting(ctx, meeting.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaders: %w", err)
	}
	participants, err := s.participants.ListByMeeting(ctx, meeting.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	items, err := s.agendaItems.ListByMeeting(ctx, meeting.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda items: %w", err)
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	resolutions, err := s.resolutions.FindByAgendaItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	byItem := make(map[uuid.UUID]*entities.Resolution, len(resolutions))
	for _, r := range resolutions {
		byItem[r.AgendaItemID] = r
	}

	protocol := &Protocol{
		Meeting:      meeting,
		Leaders:      leaders,
		Participants: participants,
		Quorum:       entities.ComputeQuorum(derefParticipants(participants)),
		Items:        make([]ProtocolItem, len(items)),
		AllCompleted: true,
	}
	for i, item := range items {
		resolution := byItem[item.ID]
		protocol.Items[i] = ProtocolItem{
			AgendaItem: item,
			Resolution: resolution,
			Completed:  resolution != nil,
			Voted:      resolution != nil && resolution.IsVoted(),
		}
		if resolution == nil {
			protocol.AllCompleted = false
		}
	}
	return protocol, nil
}

func (s *ConductService) cacheProtocol(ctx context.Context, h *access.MeetingHandle, body []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, protocolKey(h), body, s.cacheTTL); err != nil {
		s.log(ctx, h).Warn("failed to cache protocol", zap.Error(err))
	}
}

// ProtocolDownloadURL returns a presigned URL of the archived protocol
func (s *ConductService) ProtocolDownloadURL(ctx context.Context, h *access.MeetingHandle) (string, error) {
	if !h.Meeting.IsCompleted() || s.archive == nil {
		return "", usecaseErrors.ErrProtocolNotArchived
	}
	url, err := s.archive.PresignedURL(ctx, protocolObjectName(h))
	if err != nil {
		return "", fmt.Errorf("%w: presign protocol: %v", usecaseErrors.ErrStorageFailed, err)
	}
	return url, nil
}
