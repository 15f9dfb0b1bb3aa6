package copilotsdk

import (
	"context"
	"net/http"
	"strconv"
)

// ListClients returns every client with its services.
func (c *SDKClient) ListClients(ctx context.Context) ([]Client, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodGet, "/clients", nil)
	if err != nil {
		return nil, err
	}

	var clients []Client
	if err := decodeJSON(resp, &clients, http.StatusOK); err != nil {
		return nil, err
	}
	return clients, nil
}

// CreateClient adds a client with no services.
func (c *SDKClient) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodPost, "/clients", req)
	if err != nil {
		return nil, err
	}

	var client Client
	if err := decodeJSON(resp, &client, http.StatusOK); err != nil {
		return nil, err
	}
	return &client, nil
}

// ListServices returns the services of one client. An unknown client is an
// *APIError with status 404.
func (c *SDKClient) ListServices(ctx context.Context, clientID int64) ([]Service, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodGet, servicesPath(clientID), nil)
	if err != nil {
		return nil, err
	}

	var services []Service
	if err := decodeJSON(resp, &services, http.StatusOK); err != nil {
		return nil, err
	}
	return services, nil
}

// AddService appends a service to a client.
func (c *SDKClient) AddService(ctx context.Context, clientID int64, req AddServiceRequest) (*Service, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodPost, servicesPath(clientID), req)
	if err != nil {
		return nil, err
	}

	var svc Service
	if err := decodeJSON(resp, &svc, http.StatusOK); err != nil {
		return nil, err
	}
	return &svc, nil
}

func servicesPath(clientID int64) string {
	return "/clients/" + strconv.FormatInt(clientID, 10) + "/services"
}
