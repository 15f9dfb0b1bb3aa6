package http

import (
	"net/http"

	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
	"github.com/aussiebroadwan/copilot/pkg/jwtx"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the Ed25519 public keys that verify access tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	copilotsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, copilotsdk.JWKSResponse(keys.PublicJWKS()))
	}
}
