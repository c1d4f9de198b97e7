package rpc

type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedBy   string `json:"created_by"`
	InviteToken string `json:"invite_token"`
	MemberCount int    `json:"member_count"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

type Member struct {
	ID           string `json:"id"`
	GroupID      string `json:"group_id"`
	UserID       string `json:"user_id"`
	DisplayAlias string `json:"display_alias"`
	JoinedAt     int64  `json:"joined_at"`
}

type UserStats struct {
	TotalSpent       float64 `json:"total_spent"`
	TotalUnits       int     `json:"total_units"`
	CostPerUnit      float64 `json:"cost_per_unit"`
	TotalTimeMinutes int     `json:"total_time_minutes"`
	TotalEntities    int     `json:"total_entities"`
	EfficiencyScore  float64 `json:"efficiency_score"`
}

type Ranking struct {
	Rank   int       `json:"rank"`
	Member Member    `json:"member"`
	Stats  UserStats `json:"stats"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type ListMyGroupsRequest struct{}

type ListMyGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group   Group `json:"group"`
	IsOwner bool  `json:"is_owner"`
}

type RenameGroupRequest struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
}

type RenameGroupResponse struct {
	Group Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type PreviewInviteRequest struct {
	Token string `json:"token"`
}

type PreviewInviteResponse struct {
	GroupID      string `json:"group_id"`
	GroupName    string `json:"group_name"`
	CreatorEmail string `json:"creator_email"`
	MemberCount  int    `json:"member_count"`
	// AlreadyMember is set only for authenticated callers.
	AlreadyMember bool `json:"already_member"`
}

type JoinGroupRequest struct {
	Token        string `json:"token"`
	DisplayAlias string `json:"display_alias"`
}

type JoinGroupResponse struct {
	Member Member `json:"member"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"group_id"`
}

type LeaveGroupResponse struct{}

type UpdateAliasRequest struct {
	GroupID      string `json:"group_id"`
	DisplayAlias string `json:"display_alias"`
}

type UpdateAliasResponse struct {
	Member Member `json:"member"`
}

type ListMembersRequest struct {
	GroupID string `json:"group_id"`
}

type ListMembersResponse struct {
	Members []Member `json:"members"`
}

type GetRankingsRequest struct {
	GroupID string `json:"group_id"`
}

type GetRankingsResponse struct {
	Rankings []Ranking `json:"rankings"`
}

type GetMyStatsRequest struct{}

// GetMyStatsResponse adds the dashboard rates to the leaderboard stats.
type GetMyStatsResponse struct {
	Stats        UserStats `json:"stats"`
	TimePerUnit  float64   `json:"time_per_unit"`
	CostPerHour  float64   `json:"cost_per_hour"`
	UnitsPerHour float64   `json:"units_per_hour"`
}

type Entity struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Nationality     string  `json:"nationality,omitempty"`
	Ethnicity       string  `json:"ethnicity,omitempty"`
	HairColor       string  `json:"hair_color,omitempty"`
	LocationCity    string  `json:"location_city,omitempty"`
	LocationCountry string  `json:"location_country,omitempty"`
	Rating          float64 `json:"rating"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       int64   `json:"created_at"`
}

type Entry struct {
	ID              string  `json:"id"`
	EntityID        string  `json:"entity_id"`
	Date            string  `json:"date"`
	AmountSpent     float64 `json:"amount_spent"`
	DurationMinutes int     `json:"duration_minutes"`
	UnitsCount      int     `json:"units_count"`
	CreatedAt       int64   `json:"created_at"`
}

type CreateEntityRequest struct {
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Nationality     string  `json:"nationality,omitempty"`
	Ethnicity       string  `json:"ethnicity,omitempty"`
	HairColor       string  `json:"hair_color,omitempty"`
	LocationCity    string  `json:"location_city,omitempty"`
	LocationCountry string  `json:"location_country,omitempty"`
	Rating          float64 `json:"rating"`
}

type CreateEntityResponse struct {
	Entity Entity `json:"entity"`
}

type ListEntitiesRequest struct{}

type ListEntitiesResponse struct {
	Entities []Entity `json:"entities"`
}

type SetEntityActiveRequest struct {
	EntityID string `json:"entity_id"`
	Active   bool   `json:"active"`
}

type SetEntityActiveResponse struct{}

type DeleteEntityRequest struct {
	EntityID string `json:"entity_id"`
}

type DeleteEntityResponse struct{}

type AddEntryRequest struct {
	EntityID        string  `json:"entity_id"`
	Date            string  `json:"date"`
	AmountSpent     float64 `json:"amount_spent"`
	DurationMinutes int     `json:"duration_minutes"`
	UnitsCount      int     `json:"units_count"`
}

type AddEntryResponse struct {
	Entry Entry `json:"entry"`
}

type ListEntriesRequest struct {
	EntityID string `json:"entity_id"`
}

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

type GetEntitlementsRequest struct{}

type GetEntitlementsResponse struct {
	Tier   string          `json:"tier"`
	Status string          `json:"status"`
	Locked map[string]bool `json:"locked"`
	// ActiveEntityLimit is 0 when unlimited.
	ActiveEntityLimit int `json:"active_entity_limit"`
}

// ApplySubscriptionRequest is sent by the billing webhook worker. When Tier
// is empty it is derived from Status.
type ApplySubscriptionRequest struct {
	UserID               string `json:"user_id"`
	Tier                 string `json:"tier,omitempty"`
	Status               string `json:"status"`
	StripeCustomerID     string `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string `json:"stripe_subscription_id,omitempty"`
}

type ApplySubscriptionResponse struct {
	Tier   string `json:"tier"`
	Status string `json:"status"`
}
