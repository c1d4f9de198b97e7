package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cpnboard/internal/rpc"
	"github.com/mmynk/cpnboard/internal/storage"
	"github.com/mmynk/cpnboard/internal/tracker"
)

// TrackerService implements the Connect TrackerService.
type TrackerService struct {
	tracker *tracker.Service
	users   profiles
}

var _ rpc.TrackerServiceHandler = (*TrackerService)(nil)

// NewTrackerService creates a TrackerService.
func NewTrackerService(store storage.UserStore, tr *tracker.Service) *TrackerService {
	return &TrackerService{tracker: tr, users: profiles{store: store}}
}

// CreateEntity adds a tracked entity for the caller.
func (s *TrackerService) CreateEntity(ctx context.Context, req *connect.Request[rpc.CreateEntityRequest]) (*connect.Response[rpc.CreateEntityResponse], error) {
	slog.Info("CreateEntity request received", "name", req.Msg.Name)

	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	entity, err := s.tracker.CreateEntity(ctx, user.ID, tracker.EntityInput{
		Name:            req.Msg.Name,
		Age:             req.Msg.Age,
		Nationality:     req.Msg.Nationality,
		Ethnicity:       req.Msg.Ethnicity,
		HairColor:       req.Msg.HairColor,
		LocationCity:    req.Msg.LocationCity,
		LocationCountry: req.Msg.LocationCountry,
		Rating:          req.Msg.Rating,
	})
	if err != nil {
		return nil, toConnectError("CreateEntity", err)
	}
	return connect.NewResponse(&rpc.CreateEntityResponse{Entity: toRPCEntity(entity)}), nil
}

// ListEntities lists the caller's entities.
func (s *TrackerService) ListEntities(ctx context.Context, req *connect.Request[rpc.ListEntitiesRequest]) (*connect.Response[rpc.ListEntitiesResponse], error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	entities, err := s.tracker.ListEntities(ctx, user.ID)
	if err != nil {
		return nil, toConnectError("ListEntities", err)
	}

	resp := &rpc.ListEntitiesResponse{Entities: make([]rpc.Entity, len(entities))}
	for i, e := range entities {
		resp.Entities[i] = toRPCEntity(e)
	}
	return connect.NewResponse(resp), nil
}

// SetEntityActive deactivates or reactivates one of the caller's entities.
func (s *TrackerService) SetEntityActive(ctx context.Context, req *connect.Request[rpc.SetEntityActiveRequest]) (*connect.Response[rpc.SetEntityActiveResponse], error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.tracker.SetEntityActive(ctx, user.ID, req.Msg.EntityID, req.Msg.Active); err != nil {
		return nil, toConnectError("SetEntityActive", err)
	}
	return connect.NewResponse(&rpc.SetEntityActiveResponse{}), nil
}

// DeleteEntity deletes one of the caller's entities with its entries.
func (s *TrackerService) DeleteEntity(ctx context.Context, req *connect.Request[rpc.DeleteEntityRequest]) (*connect.Response[rpc.DeleteEntityResponse], error) {
	slog.Info("DeleteEntity request received", "entity_id", req.Msg.EntityID)

	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.tracker.DeleteEntity(ctx, user.ID, req.Msg.EntityID); err != nil {
		return nil, toConnectError("DeleteEntity", err)
	}
	return connect.NewResponse(&rpc.DeleteEntityResponse{}), nil
}

// AddEntry logs an encounter.
func (s *TrackerService) AddEntry(ctx context.Context, req *connect.Request[rpc.AddEntryRequest]) (*connect.Response[rpc.AddEntryResponse], error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.tracker.AddEntry(ctx, user.ID, tracker.EntryInput{
		EntityID:        req.Msg.EntityID,
		Date:            req.Msg.Date,
		AmountSpent:     req.Msg.AmountSpent,
		DurationMinutes: req.Msg.DurationMinutes,
		UnitsCount:      req.Msg.UnitsCount,
	})
	if err != nil {
		return nil, toConnectError("AddEntry", err)
	}
	return connect.NewResponse(&rpc.AddEntryResponse{Entry: toRPCEntry(entry)}), nil
}

// ListEntries lists an entity's entries.
func (s *TrackerService) ListEntries(ctx context.Context, req *connect.Request[rpc.ListEntriesRequest]) (*connect.Response[rpc.ListEntriesResponse], error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.tracker.ListEntries(ctx, user.ID, req.Msg.EntityID)
	if err != nil {
		return nil, toConnectError("ListEntries", err)
	}

	resp := &rpc.ListEntriesResponse{Entries: make([]rpc.Entry, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = toRPCEntry(e)
	}
	return connect.NewResponse(resp), nil
}
