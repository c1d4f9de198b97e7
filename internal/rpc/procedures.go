package rpc

const (
	LeaderboardServiceName = "cpnboard.v1.LeaderboardService"
	TrackerServiceName     = "cpnboard.v1.TrackerService"
	AccountServiceName     = "cpnboard.v1.AccountService"
)

const (
	LeaderboardServiceCreateGroupProcedure   = "/cpnboard.v1.LeaderboardService/CreateGroup"
	LeaderboardServiceListMyGroupsProcedure  = "/cpnboard.v1.LeaderboardService/ListMyGroups"
	LeaderboardServiceGetGroupProcedure      = "/cpnboard.v1.LeaderboardService/GetGroup"
	LeaderboardServiceRenameGroupProcedure   = "/cpnboard.v1.LeaderboardService/RenameGroup"
	LeaderboardServiceDeleteGroupProcedure   = "/cpnboard.v1.LeaderboardService/DeleteGroup"
	LeaderboardServicePreviewInviteProcedure = "/cpnboard.v1.LeaderboardService/PreviewInvite"
	LeaderboardServiceJoinGroupProcedure     = "/cpnboard.v1.LeaderboardService/JoinGroup"
	LeaderboardServiceLeaveGroupProcedure    = "/cpnboard.v1.LeaderboardService/LeaveGroup"
	LeaderboardServiceUpdateAliasProcedure   = "/cpnboard.v1.LeaderboardService/UpdateAlias"
	LeaderboardServiceListMembersProcedure   = "/cpnboard.v1.LeaderboardService/ListMembers"
	LeaderboardServiceGetRankingsProcedure   = "/cpnboard.v1.LeaderboardService/GetRankings"
	LeaderboardServiceGetMyStatsProcedure    = "/cpnboard.v1.LeaderboardService/GetMyStats"
)

const (
	TrackerServiceCreateEntityProcedure    = "/cpnboard.v1.TrackerService/CreateEntity"
	TrackerServiceListEntitiesProcedure    = "/cpnboard.v1.TrackerService/ListEntities"
	TrackerServiceSetEntityActiveProcedure = "/cpnboard.v1.TrackerService/SetEntityActive"
	TrackerServiceDeleteEntityProcedure    = "/cpnboard.v1.TrackerService/DeleteEntity"
	TrackerServiceAddEntryProcedure        = "/cpnboard.v1.TrackerService/AddEntry"
	TrackerServiceListEntriesProcedure     = "/cpnboard.v1.TrackerService/ListEntries"
)

const (
	AccountServiceGetEntitlementsProcedure   = "/cpnboard.v1.AccountService/GetEntitlements"
	AccountServiceApplySubscriptionProcedure = "/cpnboard.v1.AccountService/ApplySubscription"
)

// BillingSecretHeader carries the shared secret for ApplySubscription.
const BillingSecretHeader = "X-Billing-Secret"
