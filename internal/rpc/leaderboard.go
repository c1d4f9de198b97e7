package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// LeaderboardServiceHandler is implemented by the server side of LeaderboardService.
// LeaderboardService handles groups, memberships and rankings.
type LeaderboardServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	ListMyGroups(context.Context, *connect.Request[ListMyGroupsRequest]) (*connect.Response[ListMyGroupsResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	RenameGroup(context.Context, *connect.Request[RenameGroupRequest]) (*connect.Response[RenameGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	PreviewInvite(context.Context, *connect.Request[PreviewInviteRequest]) (*connect.Response[PreviewInviteResponse], error)
	JoinGroup(context.Context, *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error)
	LeaveGroup(context.Context, *connect.Request[LeaveGroupRequest]) (*connect.Response[LeaveGroupResponse], error)
	UpdateAlias(context.Context, *connect.Request[UpdateAliasRequest]) (*connect.Response[UpdateAliasResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	GetRankings(context.Context, *connect.Request[GetRankingsRequest]) (*connect.Response[GetRankingsResponse], error)
	GetMyStats(context.Context, *connect.Request[GetMyStatsRequest]) (*connect.Response[GetMyStatsResponse], error)
}

// NewLeaderboardServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
// opts apply to every procedure.
func NewLeaderboardServiceHandler(svc LeaderboardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LeaderboardServiceCreateGroupProcedure, connect.NewUnaryHandler(LeaderboardServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(LeaderboardServiceListMyGroupsProcedure, connect.NewUnaryHandler(LeaderboardServiceListMyGroupsProcedure, svc.ListMyGroups, opts...))
	mux.Handle(LeaderboardServiceGetGroupProcedure, connect.NewUnaryHandler(LeaderboardServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(LeaderboardServiceRenameGroupProcedure, connect.NewUnaryHandler(LeaderboardServiceRenameGroupProcedure, svc.RenameGroup, opts...))
	mux.Handle(LeaderboardServiceDeleteGroupProcedure, connect.NewUnaryHandler(LeaderboardServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	mux.Handle(LeaderboardServicePreviewInviteProcedure, connect.NewUnaryHandler(LeaderboardServicePreviewInviteProcedure, svc.PreviewInvite, opts...))
	mux.Handle(LeaderboardServiceJoinGroupProcedure, connect.NewUnaryHandler(LeaderboardServiceJoinGroupProcedure, svc.JoinGroup, opts...))
	mux.Handle(LeaderboardServiceLeaveGroupProcedure, connect.NewUnaryHandler(LeaderboardServiceLeaveGroupProcedure, svc.LeaveGroup, opts...))
	mux.Handle(LeaderboardServiceUpdateAliasProcedure, connect.NewUnaryHandler(LeaderboardServiceUpdateAliasProcedure, svc.UpdateAlias, opts...))
	mux.Handle(LeaderboardServiceListMembersProcedure, connect.NewUnaryHandler(LeaderboardServiceListMembersProcedure, svc.ListMembers, opts...))
	mux.Handle(LeaderboardServiceGetRankingsProcedure, connect.NewUnaryHandler(LeaderboardServiceGetRankingsProcedure, svc.GetRankings, opts...))
	mux.Handle(LeaderboardServiceGetMyStatsProcedure, connect.NewUnaryHandler(LeaderboardServiceGetMyStatsProcedure, svc.GetMyStats, opts...))
	return "/" + LeaderboardServiceName + "/", mux
}

// LeaderboardServiceClient is a typed client for LeaderboardService.
type LeaderboardServiceClient struct {
	createGroup   *connect.Client[CreateGroupRequest, CreateGroupResponse]
	listMyGroups  *connect.Client[ListMyGroupsRequest, ListMyGroupsResponse]
	getGroup      *connect.Client[GetGroupRequest, GetGroupResponse]
	renameGroup   *connect.Client[RenameGroupRequest, RenameGroupResponse]
	deleteGroup   *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	previewInvite *connect.Client[PreviewInviteRequest, PreviewInviteResponse]
	joinGroup     *connect.Client[JoinGroupRequest, JoinGroupResponse]
	leaveGroup    *connect.Client[LeaveGroupRequest, LeaveGroupResponse]
	updateAlias   *connect.Client[UpdateAliasRequest, UpdateAliasResponse]
	listMembers   *connect.Client[ListMembersRequest, ListMembersResponse]
	getRankings   *connect.Client[GetRankingsRequest, GetRankingsResponse]
	getMyStats    *connect.Client[GetMyStatsRequest, GetMyStatsResponse]
}

// NewLeaderboardServiceClient creates a client for the service hosted at baseURL.
func NewLeaderboardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LeaderboardServiceClient {
	opts = clientOptions(opts)
	return &LeaderboardServiceClient{
		createGroup:   connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+LeaderboardServiceCreateGroupProcedure, opts...),
		listMyGroups:  connect.NewClient[ListMyGroupsRequest, ListMyGroupsResponse](httpClient, baseURL+LeaderboardServiceListMyGroupsProcedure, opts...),
		getGroup:      connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+LeaderboardServiceGetGroupProcedure, opts...),
		renameGroup:   connect.NewClient[RenameGroupRequest, RenameGroupResponse](httpClient, baseURL+LeaderboardServiceRenameGroupProcedure, opts...),
		deleteGroup:   connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+LeaderboardServiceDeleteGroupProcedure, opts...),
		previewInvite: connect.NewClient[PreviewInviteRequest, PreviewInviteResponse](httpClient, baseURL+LeaderboardServicePreviewInviteProcedure, opts...),
		joinGroup:     connect.NewClient[JoinGroupRequest, JoinGroupResponse](httpClient, baseURL+LeaderboardServiceJoinGroupProcedure, opts...),
		leaveGroup:    connect.NewClient[LeaveGroupRequest, LeaveGroupResponse](httpClient, baseURL+LeaderboardServiceLeaveGroupProcedure, opts...),
		updateAlias:   connect.NewClient[UpdateAliasRequest, UpdateAliasResponse](httpClient, baseURL+LeaderboardServiceUpdateAliasProcedure, opts...),
		listMembers:   connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+LeaderboardServiceListMembersProcedure, opts...),
		getRankings:   connect.NewClient[GetRankingsRequest, GetRankingsResponse](httpClient, baseURL+LeaderboardServiceGetRankingsProcedure, opts...),
		getMyStats:    connect.NewClient[GetMyStatsRequest, GetMyStatsResponse](httpClient, baseURL+LeaderboardServiceGetMyStatsProcedure, opts...),
	}
}

func (c *LeaderboardServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) ListMyGroups(ctx context.Context, req *connect.Request[ListMyGroupsRequest]) (*connect.Response[ListMyGroupsResponse], error) {
	return c.listMyGroups.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) RenameGroup(ctx context.Context, req *connect.Request[RenameGroupRequest]) (*connect.Response[RenameGroupResponse], error) {
	return c.renameGroup.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) PreviewInvite(ctx context.Context, req *connect.Request[PreviewInviteRequest]) (*connect.Response[PreviewInviteResponse], error) {
	return c.previewInvite.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) LeaveGroup(ctx context.Context, req *connect.Request[LeaveGroupRequest]) (*connect.Response[LeaveGroupResponse], error) {
	return c.leaveGroup.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) UpdateAlias(ctx context.Context, req *connect.Request[UpdateAliasRequest]) (*connect.Response[UpdateAliasResponse], error) {
	return c.updateAlias.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) GetRankings(ctx context.Context, req *connect.Request[GetRankingsRequest]) (*connect.Response[GetRankingsResponse], error) {
	return c.getRankings.CallUnary(ctx, req)
}

func (c *LeaderboardServiceClient) GetMyStats(ctx context.Context, req *connect.Request[GetMyStatsRequest]) (*connect.Response[GetMyStatsResponse], error) {
	return c.getMyStats.CallUnary(ctx, req)
}
