package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// AccountHandler handles sign-up, log-in, log-out and the current user.
type AccountHandler struct {
	accounts ports.AccountService
	cookie   SessionCookie
}

// NewAccountHandler creates an AccountHandler. cookie names the session
// cookie the handler sets and clears.
func NewAccountHandler(accounts ports.AccountService, cookie SessionCookie) *AccountHandler {
	return &AccountHandler{accounts: accounts, cookie: cookie}
}

// SignUp handles POST /api/v1/signup.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	res, err := h.accounts.SignUp(r.Context(), req.Credentials())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	h.cookie.Set(w, res.Session.ID)
	writeJSON(w, http.StatusCreated, dto.ToAuthResponse(res))
}

// LogIn handles POST /api/v1/login.
func (h *AccountHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	res, err := h.accounts.LogIn(r.Context(), req.Credentials())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	h.cookie.Set(w, res.Session.ID)
	writeJSON(w, http.StatusOK, dto.ToAuthResponse(res))
}

// LogOut handles POST /api/v1/logout. It always succeeds: a request without
// a session is already signed out.
func (h *AccountHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	redirect := h.accounts.LogOut(r.Context(), h.cookie.Read(r))

	h.cookie.Clear(w)
	writeJSON(w, http.StatusOK, dto.RedirectResponse{Redirect: redirect})
}

// Me handles GET /api/v1/me. The user is null when signed out.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := h.cookie.Read(r)
	if id == "" {
		writeJSON(w, http.StatusOK, dto.MeResponse{})
		return
	}

	u, err := h.accounts.CurrentUser(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MeResponse{User: dto.ToUserResponse(u)})
}
