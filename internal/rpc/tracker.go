package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// TrackerServiceHandler is implemented by the server side of TrackerService.
// TrackerService handles tracked entities and their entries.
type TrackerServiceHandler interface {
	CreateEntity(context.Context, *connect.Request[CreateEntityRequest]) (*connect.Response[CreateEntityResponse], error)
	ListEntities(context.Context, *connect.Request[ListEntitiesRequest]) (*connect.Response[ListEntitiesResponse], error)
	SetEntityActive(context.Context, *connect.Request[SetEntityActiveRequest]) (*connect.Response[SetEntityActiveResponse], error)
	DeleteEntity(context.Context, *connect.Request[DeleteEntityRequest]) (*connect.Response[DeleteEntityResponse], error)
	AddEntry(context.Context, *connect.Request[AddEntryRequest]) (*connect.Response[AddEntryResponse], error)
	ListEntries(context.Context, *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error)
}

// NewTrackerServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
// opts apply to every procedure.
func NewTrackerServiceHandler(svc TrackerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(TrackerServiceCreateEntityProcedure, connect.NewUnaryHandler(TrackerServiceCreateEntityProcedure, svc.CreateEntity, opts...))
	mux.Handle(TrackerServiceListEntitiesProcedure, connect.NewUnaryHandler(TrackerServiceListEntitiesProcedure, svc.ListEntities, opts...))
	mux.Handle(TrackerServiceSetEntityActiveProcedure, connect.NewUnaryHandler(TrackerServiceSetEntityActiveProcedure, svc.SetEntityActive, opts...))
	mux.Handle(TrackerServiceDeleteEntityProcedure, connect.NewUnaryHandler(TrackerServiceDeleteEntityProcedure, svc.DeleteEntity, opts...))
	mux.Handle(TrackerServiceAddEntryProcedure, connect.NewUnaryHandler(TrackerServiceAddEntryProcedure, svc.AddEntry, opts...))
	mux.Handle(TrackerServiceListEntriesProcedure, connect.NewUnaryHandler(TrackerServiceListEntriesProcedure, svc.ListEntries, opts...))
	return "/" + TrackerServiceName + "/", mux
}

// TrackerServiceClient is a typed client for TrackerService.
type TrackerServiceClient struct {
	createEntity    *connect.Client[CreateEntityRequest, CreateEntityResponse]
	listEntities    *connect.Client[ListEntitiesRequest, ListEntitiesResponse]
	setEntityActive *connect.Client[SetEntityActiveRequest, SetEntityActiveResponse]
	deleteEntity    *connect.Client[DeleteEntityRequest, DeleteEntityResponse]
	addEntry        *connect.Client[AddEntryRequest, AddEntryResponse]
	listEntries     *connect.Client[ListEntriesRequest, ListEntriesResponse]
}

// NewTrackerServiceClient creates a client for the service hosted at baseURL.
func NewTrackerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TrackerServiceClient {
	opts = clientOptions(opts)
	return &TrackerServiceClient{
		createEntity:    connect.NewClient[CreateEntityRequest, CreateEntityResponse](httpClient, baseURL+TrackerServiceCreateEntityProcedure, opts...),
		listEntities:    connect.NewClient[ListEntitiesRequest, ListEntitiesResponse](httpClient, baseURL+TrackerServiceListEntitiesProcedure, opts...),
		setEntityActive: connect.NewClient[SetEntityActiveRequest, SetEntityActiveResponse](httpClient, baseURL+TrackerServiceSetEntityActiveProcedure, opts...),
		deleteEntity:    connect.NewClient[DeleteEntityRequest, DeleteEntityResponse](httpClient, baseURL+TrackerServiceDeleteEntityProcedure, opts...),
		addEntry:        connect.NewClient[AddEntryRequest, AddEntryResponse](httpClient, baseURL+TrackerServiceAddEntryProcedure, opts...),
		listEntries:     connect.NewClient[ListEntriesRequest, ListEntriesResponse](httpClient, baseURL+TrackerServiceListEntriesProcedure, opts...),
	}
}

func (c *TrackerServiceClient) CreateEntity(ctx context.Context, req *connect.Request[CreateEntityRequest]) (*connect.Response[CreateEntityResponse], error) {
	return c.createEntity.CallUnary(ctx, req)
}

func (c *TrackerServiceClient) ListEntities(ctx context.Context, req *connect.Request[ListEntitiesRequest]) (*connect.Response[ListEntitiesResponse], error) {
	return c.listEntities.CallUnary(ctx, req)
}

func (c *TrackerServiceClient) SetEntityActive(ctx context.Context, req *connect.Request[SetEntityActiveRequest]) (*connect.Response[SetEntityActiveResponse], error) {
	return c.setEntityActive.CallUnary(ctx, req)
}

func (c *TrackerServiceClient) DeleteEntity(ctx context.Context, req *connect.Request[DeleteEntityRequest]) (*connect.Response[DeleteEntityResponse], error) {
	return c.deleteEntity.CallUnary(ctx, req)
}

func (c *TrackerServiceClient) AddEntry(ctx context.Context, req *connect.Request[AddEntryRequest]) (*connect.Response[AddEntryResponse], error) {
	return c.addEntry.CallUnary(ctx, req)
}

func (c *TrackerServiceClient) ListEntries(ctx context.Context, req *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}
