package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dondigital/storefront/internal/models"
)

func TestCreateAffiliatorValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{"robux_earned": 10})
	assertStatus(t, w, http.StatusBadRequest)

	w = env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{"username": "   ", "robux_earned": 10})
	assertStatus(t, w, http.StatusBadRequest)

	w = env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{"username": "kai"})
	assertStatus(t, w, http.StatusBadRequest)

	w = env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{"username": "kai", "robux_earned": -5})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestRegisterEarningsAccumulates(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{"username": "kai", "robux_earned": 100})
	assertStatus(t, w, http.StatusCreated)

	w = env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{"username": "kai", "robux_earned": 50})
	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Data models.Affiliator `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if resp.Data.RobuxEarned != 150 {
		t.Errorf("Expected accumulated robux_earned 150, got %v", resp.Data.RobuxEarned)
	}
	if resp.Data.TotalRobuxEarned != 150 {
		t.Errorf("Expected accumulated total_robux_earned 150, got %v", resp.Data.TotalRobuxEarned)
	}
}

func TestSetEarningsOverwrites(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{"username": "kai", "robux_earned": 100})
	assertStatus(t, w, http.StatusCreated)

	w = env.do(t, http.MethodPut, "/api/v1/affiliators", map[string]any{"username": "kai", "robux_earned": 30})
	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Data models.Affiliator `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if resp.Data.RobuxEarned != 30 {
		t.Errorf("PUT must overwrite, not add: expected 30, got %v", resp.Data.RobuxEarned)
	}
}

func TestSetEarningsUnknownUsername(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/affiliators", map[string]any{"username": "ghost", "robux_earned": 30})
	assertStatus(t, w, http.StatusNotFound)
}

func TestCreateWithReferral(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{
		"username": "maria", "robux_earned": 0, "create_referral": true,
	})
	assertStatus(t, w, http.StatusCreated)

	var resp struct {
		Data struct {
			Username     string  `json:"username"`
			ReferralCode *string `json:"referral_code"`
			ReferralLink string  `json:"referral_link"`
		} `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if resp.Data.ReferralCode == nil || *resp.Data.ReferralCode == "" {
		t.Fatal("Expected a generated referral code")
	}
	if !strings.HasPrefix(*resp.Data.ReferralCode, "MARI-") {
		t.Errorf("Expected username-derived code prefix, got %s", *resp.Data.ReferralCode)
	}
	if !strings.Contains(resp.Data.ReferralLink, "?ref="+*resp.Data.ReferralCode) {
		t.Errorf("Referral link %s does not embed the code", resp.Data.ReferralLink)
	}

	// Same username again must be rejected, not upserted.
	w = env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{
		"username": "maria", "robux_earned": 0, "create_referral": true,
	})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestSetActiveToggle(t *testing.T) {
	env := newTestEnv(t)
	env.seedAffiliator(t, "maria", "MARI-ABC123", true)

	w := env.do(t, http.MethodPut, "/api/v1/affiliators", map[string]any{"username": "maria", "set_active": false})
	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Data models.Affiliator `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if resp.Data.IsActive {
		t.Error("Expected affiliator to be deactivated")
	}

	// set_active takes precedence; earnings must be untouched even though
	// robux_earned is absent.
	w = env.do(t, http.MethodPut, "/api/v1/affiliators", map[string]any{"username": "maria", "set_active": true})
	assertStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &resp)
	if !resp.Data.IsActive {
		t.Error("Expected affiliator to be reactivated")
	}
}

func TestDeleteAffiliator(t *testing.T) {
	env := newTestEnv(t)
	env.seedAffiliator(t, "maria", "", true)

	w := env.do(t, http.MethodDelete, "/api/v1/affiliators", nil)
	assertStatus(t, w, http.StatusBadRequest)

	w = env.do(t, http.MethodDelete, "/api/v1/affiliators?username=maria", nil)
	assertStatus(t, w, http.StatusOK)

	// Deleting again is a silent no-op success.
	w = env.do(t, http.MethodDelete, "/api/v1/affiliators?username=maria", nil)
	assertStatus(t, w, http.StatusOK)
}

func TestListAffiliatorsLegacyOrder(t *testing.T) {
	env := newTestEnv(t)

	for _, seed := range []struct {
		username string
		earned   float64
	}{{"low", 10}, {"high", 500}, {"mid", 100}} {
		w := env.do(t, http.MethodPost, "/api/v1/affiliators", map[string]any{
			"username": seed.username, "robux_earned": seed.earned,
		})
		assertStatus(t, w, http.StatusCreated)
	}

	w := env.do(t, http.MethodGet, "/api/v1/affiliators", nil)
	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Data []models.Affiliator `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Data) != 3 {
		t.Fatalf("Expected 3 affiliators, got %d", len(resp.Data))
	}
	if resp.Data[0].Username != "high" || resp.Data[2].Username != "low" {
		t.Errorf("Expected earnings-descending order, got %s..%s", resp.Data[0].Username, resp.Data[2].Username)
	}
}

func TestLeaderboardView(t *testing.T) {
	env := newTestEnv(t)

	a := env.seedAffiliator(t, "maria", "MARI-AAA111", true)
	env.db.Model(a).Updates(map[string]any{
		"total_robux_earned": 200.0, "total_clicks": 40, "total_conversions": 10,
	})
	b := env.seedAffiliator(t, "kai", "KAI-BBB222", true)
	env.db.Model(b).Updates(map[string]any{
		"total_robux_earned": 900.0, "total_clicks": 10, "total_conversions": 1,
	})
	// Legacy rows without a code never appear on the leaderboard.
	env.seedAffiliator(t, "legacy", "", true)

	w := env.do(t, http.MethodGet, "/api/v1/affiliators?view=leaderboard", nil)
	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Data []models.LeaderboardEntry `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Data) != 2 {
		t.Fatalf("Expected 2 leaderboard rows, got %d", len(resp.Data))
	}
	if resp.Data[0].Username != "kai" {
		t.Errorf("Expected earnings-descending leaderboard, got %s first", resp.Data[0].Username)
	}
	if resp.Data[1].ConversionRate != 25.0 {
		t.Errorf("Expected conversion rate 25.0 for 10/40, got %v", resp.Data[1].ConversionRate)
	}

	w = env.do(t, http.MethodGet, "/api/v1/affiliators?view=leaderboard&limit=1", nil)
	assertStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &resp)
	if len(resp.Data) != 1 {
		t.Errorf("Expected limit=1 to cap the leaderboard, got %d rows", len(resp.Data))
	}
}
