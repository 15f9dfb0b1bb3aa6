package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/copilot/internal/copilot/service"
	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
)

// ClientsHandler handles the client and service record endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleList handles GET /clients
//
//	@Summary		List clients
//	@Description	Returns every client in insertion order, each with its services.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		copilotsdk.Client			"Clients"
//	@Failure		401	{object}	copilotsdk.ErrorResponse	"message"
//	@Failure		500	{object}	copilotsdk.ErrorResponse	"message"
//	@Router			/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clients, err := h.ClientService.ListClients(ctx)
	if err != nil {
		log.Error("failed to list clients", "error", err)
		writeInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clients)
}

// HandleCreate handles POST /clients
//
//	@Summary		Create client
//	@Description	Adds a client with no services.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		copilotsdk.CreateClientRequest	true	"Client name and GSTIN"
//	@Success		200		{object}	copilotsdk.Client				"The new client"
//	@Failure		400		{object}	copilotsdk.ErrorResponse		"message"
//	@Failure		401		{object}	copilotsdk.ErrorResponse		"message"
//	@Failure		500		{object}	copilotsdk.ErrorResponse		"message"
//	@Router			/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req copilotsdk.CreateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, copilotsdk.ErrorResponse{Message: "Invalid JSON in request body"})
		return
	}

	client, err := h.ClientService.CreateClient(ctx, req.Name, req.GSTIN)
	if err != nil {
		log.Error("failed to create client", "error", err)
		writeInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, client)
}

// HandleListServices handles GET /clients/{clientId}/services
//
//	@Summary		List services of a client
//	@Tags			Services
//	@Produce		json
//	@Security		BearerAuth
//	@Param			clientId	path		int							true	"Client id"
//	@Success		200			{array}		copilotsdk.Service			"Services, possibly empty"
//	@Failure		401			{object}	copilotsdk.ErrorResponse	"message"
//	@Failure		404			{object}	copilotsdk.ErrorResponse	"message"
//	@Failure		500			{object}	copilotsdk.ErrorResponse	"message"
//	@Router			/clients/{clientId}/services [get].
func (h *ClientsHandler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clientID, ok := parseClientID(r)
	if !ok {
		writeClientNotFound(w)
		return
	}

	services, err := h.ClientService.ListServices(ctx, clientID)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, services)
	case errors.Is(err, service.ErrClientNotFound):
		writeClientNotFound(w)
	default:
		log.Error("failed to list services", "error", err, "client_id", clientID)
		writeInternalError(w)
	}
}

// HandleAddService handles POST /clients/{clientId}/services
//
//	@Summary		Add service to a client
//	@Description	Appends a service to the client and leaves every other client untouched.
//	@Tags			Services
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			clientId	path		int								true	"Client id"
//	@Param			request		body		copilotsdk.AddServiceRequest	true	"Service details"
//	@Success		200			{object}	copilotsdk.Service				"The new service"
//	@Failure		400			{object}	copilotsdk.ErrorResponse		"message"
//	@Failure		401			{object}	copilotsdk.ErrorResponse		"message"
//	@Failure		404			{object}	copilotsdk.ErrorResponse		"message"
//	@Failure		500			{object}	copilotsdk.ErrorResponse		"message"
//	@Router			/clients/{clientId}/services [post].
func (h *ClientsHandler) HandleAddService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clientID, ok := parseClientID(r)
	if !ok {
		writeClientNotFound(w)
		return
	}

	var req copilotsdk.AddServiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, copilotsdk.ErrorResponse{Message: "Invalid JSON in request body"})
		return
	}

	svc, err := h.ClientService.AddService(ctx, clientID, req.Name, req.Status, req.Description)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, svc)
	case errors.Is(err, service.ErrClientNotFound):
		writeClientNotFound(w)
	default:
		log.Error("failed to add service", "error", err, "client_id", clientID)
		writeInternalError(w)
	}
}

// parseClientID reads the {clientId} segment. Anything that is not an
// integer cannot name a stored client.
func parseClientID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("clientId"), 10, 64)
	return id, err == nil
}

func writeClientNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, copilotsdk.ErrorResponse{Message: "Client not found"})
}
