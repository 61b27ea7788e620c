package handler

import (
	"net/http"
	"strconv"

	"tagarena/internal/cache"
	"tagarena/internal/game"
)

// ShopHandler handles shop catalog and leaderboard endpoints
type ShopHandler struct {
	leaderboard cache.LeaderboardCache
}

// NewShopHandler creates a new shop handler
func NewShopHandler(leaderboard cache.LeaderboardCache) *ShopHandler {
	return &ShopHandler{leaderboard: leaderboard}
}

// Items handles GET /v1/shop/items
func (h *ShopHandler) Items(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": game.Catalog()})
}

// Leaderboard handles GET /v1/leaderboard
func (h *ShopHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.leaderboard.GetTop(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}
