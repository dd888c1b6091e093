package httpapi

import (
	"net/http"

	"leadgen-engine/internal/secrets"
)

// SecretsHandler stores API keys in the OS keyring so they survive
// restarts without living in the environment. Env vars still win at
// startup.
type SecretsHandler struct{}

func (h SecretsHandler) SetMapsKey(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, secrets.AccountMapsKey)
}

func (h SecretsHandler) SetOpenAIKey(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, secrets.AccountOpenAIKey)
}

func (h SecretsHandler) set(w http.ResponseWriter, r *http.Request, account string) {
	var req setSecretRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}
	if err := secrets.Set(account, req.Key); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_error", "failed to store key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
