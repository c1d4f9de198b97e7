package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cpnboard/internal/calculator"
	"github.com/mmynk/cpnboard/internal/leaderboard"
	"github.com/mmynk/cpnboard/internal/middleware"
	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/rpc"
	"github.com/mmynk/cpnboard/internal/storage"
)

// LeaderboardService implements the Connect LeaderboardService.
type LeaderboardService struct {
	board *leaderboard.Service
	stats *leaderboard.Aggregator
	users profiles
}

var _ rpc.LeaderboardServiceHandler = (*LeaderboardService)(nil)

// NewLeaderboardService creates a LeaderboardService.
func NewLeaderboardService(store storage.UserStore, board *leaderboard.Service, stats *leaderboard.Aggregator) *LeaderboardService {
	return &LeaderboardService{
		board: board,
		stats: stats,
		users: profiles{store: store},
	}
}

// member loads the caller and checks they may see groupID.
func (s *LeaderboardService) member(ctx context.Context, groupID string) (*models.User, error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireLeaderboards(user); err != nil {
		return nil, err
	}
	if !s.board.IsMember(ctx, groupID, user.ID) {
		return nil, connect.NewError(connect.CodeNotFound, leaderboard.ErrNotMember)
	}
	return user, nil
}

// CreateGroup creates a group with the caller as owner and first member.
func (s *LeaderboardService) CreateGroup(ctx context.Context, req *connect.Request[rpc.CreateGroupRequest]) (*connect.Response[rpc.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "name", req.Msg.Name)

	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireLeaderboards(user); err != nil {
		return nil, err
	}

	group, err := s.board.CreateGroup(ctx, req.Msg.Name, user.ID)
	if err != nil {
		return nil, toConnectError("CreateGroup", err)
	}

	return connect.NewResponse(&rpc.CreateGroupResponse{Group: toRPCGroup(group)}), nil
}

// ListMyGroups lists the caller's groups, most recently joined first.
func (s *LeaderboardService) ListMyGroups(ctx context.Context, req *connect.Request[rpc.ListMyGroupsRequest]) (*connect.Response[rpc.ListMyGroupsResponse], error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireLeaderboards(user); err != nil {
		return nil, err
	}

	groups, err := s.board.UserGroups(ctx, user.ID)
	if err != nil {
		return nil, toConnectError("ListMyGroups", err)
	}

	resp := &rpc.ListMyGroupsResponse{Groups: make([]rpc.Group, len(groups))}
	for i, g := range groups {
		resp.Groups[i] = toRPCGroup(g)
	}
	return connect.NewResponse(resp), nil
}

// GetGroup returns a group the caller belongs to.
func (s *LeaderboardService) GetGroup(ctx context.Context, req *connect.Request[rpc.GetGroupRequest]) (*connect.Response[rpc.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	user, err := s.member(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	group, err := s.board.GroupByID(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError("GetGroup", err)
	}

	return connect.NewResponse(&rpc.GetGroupResponse{
		Group:   toRPCGroup(group),
		IsOwner: group.CreatedBy == user.ID,
	}), nil
}

// RenameGroup renames a group. Only its creator may do so.
func (s *LeaderboardService) RenameGroup(ctx context.Context, req *connect.Request[rpc.RenameGroupRequest]) (*connect.Response[rpc.RenameGroupResponse], error) {
	slog.Info("RenameGroup request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireLeaderboards(user); err != nil {
		return nil, err
	}

	group, err := s.board.RenameGroup(ctx, req.Msg.GroupID, req.Msg.Name, user.ID)
	if err != nil {
		return nil, toConnectError("RenameGroup", err)
	}
	return connect.NewResponse(&rpc.RenameGroupResponse{Group: toRPCGroup(group)}), nil
}

// DeleteGroup deletes a group and its memberships. Only its creator may do so.
// It stays available on the free tier so a downgraded owner can clean up.
func (s *LeaderboardService) DeleteGroup(ctx context.Context, req *connect.Request[rpc.DeleteGroupRequest]) (*connect.Response[rpc.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.board.DeleteGroup(ctx, req.Msg.GroupID, user.ID); err != nil {
		return nil, toConnectError("DeleteGroup", err)
	}

	return connect.NewResponse(&rpc.DeleteGroupResponse{}), nil
}

// PreviewInvite shows what an invite link leads to. Anonymous callers are allowed.
func (s *LeaderboardService) PreviewInvite(ctx context.Context, req *connect.Request[rpc.PreviewInviteRequest]) (*connect.Response[rpc.PreviewInviteResponse], error) {
	preview, err := s.board.PreviewInvite(ctx, req.Msg.Token)
	if err != nil {
		return nil, toConnectError("PreviewInvite", err)
	}

	resp := &rpc.PreviewInviteResponse{
		GroupID:      preview.GroupID,
		GroupName:    preview.GroupName,
		CreatorEmail: preview.CreatorEmail,
		MemberCount:  preview.MemberCount,
	}
	if userID := middleware.GetUserID(ctx); userID != "" {
		resp.AlreadyMember = s.board.IsMember(ctx, preview.GroupID, userID)
	}
	return connect.NewResponse(resp), nil
}

// JoinGroup redeems an invite token for the caller.
func (s *LeaderboardService) JoinGroup(ctx context.Context, req *connect.Request[rpc.JoinGroupRequest]) (*connect.Response[rpc.JoinGroupResponse], error) {
	slog.Info("JoinGroup request received", "display_alias", req.Msg.DisplayAlias)

	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireLeaderboards(user); err != nil {
		return nil, err
	}

	member, err := s.board.JoinGroup(ctx, req.Msg.Token, user.ID, req.Msg.DisplayAlias)
	if err != nil {
		return nil, toConnectError("JoinGroup", err)
	}

	return connect.NewResponse(&rpc.JoinGroupResponse{Member: toRPCMember(member)}), nil
}

// LeaveGroup removes the caller from a group. Leaving a group one is not in succeeds.
func (s *LeaderboardService) LeaveGroup(ctx context.Context, req *connect.Request[rpc.LeaveGroupRequest]) (*connect.Response[rpc.LeaveGroupResponse], error) {
	slog.Info("LeaveGroup request received", "group_id", req.Msg.GroupID)

	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.board.LeaveGroup(ctx, req.Msg.GroupID, user.ID); err != nil {
		return nil, toConnectError("LeaveGroup", err)
	}
	return connect.NewResponse(&rpc.LeaveGroupResponse{}), nil
}

// UpdateAlias changes the caller's alias in a group.
func (s *LeaderboardService) UpdateAlias(ctx context.Context, req *connect.Request[rpc.UpdateAliasRequest]) (*connect.Response[rpc.UpdateAliasResponse], error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireLeaderboards(user); err != nil {
		return nil, err
	}

	member, err := s.board.UpdateDisplayAlias(ctx, req.Msg.GroupID, user.ID, req.Msg.DisplayAlias)
	if err != nil {
		return nil, toConnectError("UpdateAlias", err)
	}
	return connect.NewResponse(&rpc.UpdateAliasResponse{Member: toRPCMember(member)}), nil
}

// ListMembers lists a group's members in join order.
func (s *LeaderboardService) ListMembers(ctx context.Context, req *connect.Request[rpc.ListMembersRequest]) (*connect.Response[rpc.ListMembersResponse], error) {
	if _, err := s.member(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	members, err := s.board.ListMembers(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError("ListMembers", err)
	}

	resp := &rpc.ListMembersResponse{Members: make([]rpc.Member, len(members))}
	for i, m := range members {
		resp.Members[i] = toRPCMember(m)
	}
	return connect.NewResponse(resp), nil
}

// GetRankings computes the group leaderboard. A listing failure or timeout yields an empty list.
func (s *LeaderboardService) GetRankings(ctx context.Context, req *connect.Request[rpc.GetRankingsRequest]) (*connect.Response[rpc.GetRankingsResponse], error) {
	slog.Info("GetRankings request received", "group_id", req.Msg.GroupID)

	if _, err := s.member(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	rankings := s.board.GroupRankings(ctx, req.Msg.GroupID)

	resp := &rpc.GetRankingsResponse{Rankings: make([]rpc.Ranking, len(rankings))}
	for i, r := range rankings {
		resp.Rankings[i] = toRPCRanking(r)
	}

	slog.Info("GetRankings successful", "group_id", req.Msg.GroupID, "count", len(rankings))
	return connect.NewResponse(resp), nil
}

// GetMyStats returns the caller's own stats. Failures yield zero stats.
func (s *LeaderboardService) GetMyStats(ctx context.Context, req *connect.Request[rpc.GetMyStatsRequest]) (*connect.Response[rpc.GetMyStatsResponse], error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	stats := s.stats.UserStats(ctx, user.ID)
	minutes := float64(stats.TotalTimeMinutes)
	return connect.NewResponse(&rpc.GetMyStatsResponse{
		Stats:        toRPCStats(stats),
		TimePerUnit:  calculator.TimePerUnit(minutes, stats.TotalUnits),
		CostPerHour:  calculator.CostPerHour(stats.TotalSpent, minutes),
		UnitsPerHour: calculator.UnitsPerHour(stats.TotalUnits, minutes),
	}), nil
}
