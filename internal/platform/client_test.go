package platform_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backoffice/internal/config"
	"backoffice/internal/platform"
	"backoffice/internal/schema"
	appErr "backoffice/pkg/errors"
	"backoffice/pkg/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *platform.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return platform.NewClient(config.PlatformConfig{BaseURL: srv.URL, Token: "secret"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func platformError(t *testing.T, err error) *platform.Error {
	t.Helper()
	var perr *platform.Error
	require.True(t, errors.As(err, &perr), "expected *platform.Error, got %T", err)
	return perr
}

func TestListCashbackUnwrapsEnvelope(t *testing.T) {
	var gotQuery, gotAuth, gotRequestID string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cashback/list", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(requestid.Header)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"rows": []map[string]any{
					{"id": "cb-1", "name": "Weekly", "type": 1, "status": 1},
				},
				"pagination": map[string]any{"totalPages": 3, "currentPage": 2},
			},
		})
	})

	ctx := requestid.WithContext(context.Background(), "req-42")
	page, err := client.ListCashback(ctx, platform.ListParams{Page: 2, Limit: 10, Filter: "active"})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Weekly", page.Rows[0].Name)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.CurrentPage)

	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "limit=10")
	assert.Contains(t, gotQuery, "filter=active")
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "req-42", gotRequestID)
}

func TestFetchAcceptsBarePayload(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cashback/cb-9", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": "cb-9", "name": "Daily"})
	})

	cfg, err := client.GetCashback(context.Background(), "cb-9")
	require.NoError(t, err)
	assert.Equal(t, "cb-9", cfg.ID)
	assert.Equal(t, "Daily", cfg.Name)
}

func TestServerErrorUsesErrorField(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Name already taken"})
	})

	_, err := client.CreateCashback(context.Background(), schema.CashbackConfig{Name: "x"})
	perr := platformError(t, err)
	assert.Equal(t, platform.KindServer, perr.Kind)
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Equal(t, "Name already taken", perr.Message)
}

func TestServerErrorFallsBackToMessageField(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "database unavailable"})
	})

	_, err := client.ListTiers(context.Background(), platform.ListParams{})
	perr := platformError(t, err)
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)
	assert.Equal(t, "database unavailable", perr.Message)
}

func TestServerErrorPlainBodyUsesFallback(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := client.DeleteWagerRace(context.Background(), "wr-1")
	perr := platformError(t, err)
	assert.Equal(t, platform.KindServer, perr.Kind)
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
	assert.Equal(t, "Failed to delete wager race", perr.Message)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := platform.NewClient(config.PlatformConfig{BaseURL: srv.URL})
	srv.Close()

	_, err := client.ListBonuses(context.Background(), platform.ListParams{})
	perr := platformError(t, err)
	assert.Equal(t, platform.KindNetwork, perr.Kind)
	assert.Equal(t, 0, perr.StatusCode)
	assert.NotEmpty(t, perr.Message)
}

func TestMutationSuccessFalseIsAnError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/bonus/b-1", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Bonus is locked"})
	})

	_, err := client.UpdateBonus(context.Background(), "b-1", schema.Bonus{})
	perr := platformError(t, err)
	assert.Equal(t, platform.KindServer, perr.Kind)
	assert.Equal(t, http.StatusOK, perr.StatusCode)
	assert.Equal(t, "Bonus is locked", perr.Message)
}

func TestMutationSuccess(t *testing.T) {
	var body map[string]any
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wager-race/update/wr-7", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Updated"})
	})

	res, err := client.UpdateWagerRace(context.Background(), "wr-7", schema.WagerRace{Title: "Summer"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Updated", res.Message)
	assert.Equal(t, "Summer", body["title"])
}

func TestMutationEmptyBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tier/delete/t-1", r.URL.Path)
		assert.Equal(t, "lv-2", r.URL.Query().Get("levelId"))
		w.WriteHeader(http.StatusNoContent)
	})

	res, err := client.DeleteTier(context.Background(), "t-1", "lv-2")
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestUploadBonusBanner(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "banner.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(data))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"url": "https://cdn.test/banner.png"}})
	})

	res, err := client.UploadBonusBanner(context.Background(), "banner.png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/banner.png", res.URL)
}

func TestUpdateTierImageSendsTierID(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "t-3", r.FormValue("tierId"))
		_, _, err := r.FormFile("image")
		require.NoError(t, err)
		writeJSON(w, http.StatusOK, map[string]any{"url": "https://cdn.test/t-3.png"})
	})

	res, err := client.UpdateTierImage(context.Background(), "t-3", "t.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/t-3.png", res.URL)
}

func TestGetWagerRaceDetail(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wager-race/get/wr-1", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"wagerRace": map[string]any{"id": "wr-1", "title": "Weekly race"},
				"participants": map[string]any{
					"rows": []map[string]any{
						{"userId": "u1", "totalWagered": 1000, "username": "alice"},
						{"userId": "u2", "totalWagered": 500, "username": "bob"},
					},
					"pagination": map[string]any{"totalPages": 1, "currentPage": 1},
				},
				"tiers": []map[string]any{{"id": "gold", "name": "Gold"}},
			},
		})
	})

	detail, err := client.GetWagerRace(context.Background(), "wr-1", platform.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "Weekly race", detail.Race.Title)
	require.Len(t, detail.Participants.Rows, 2)
	assert.Equal(t, 1000.0, detail.Participants.Rows[0].TotalWagered)
	require.Len(t, detail.Tiers, 1)
}

func TestGetWagerRaceRejectsBadParticipant(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"wagerRace": map[string]any{"id": "wr-1"},
			"participants": map[string]any{
				"rows": []map[string]any{{"userId": "u1", "totalWagered": -5}},
			},
		})
	})

	_, err := client.GetWagerRace(context.Background(), "wr-1", platform.ListParams{})
	perr := platformError(t, err)
	assert.Equal(t, platform.KindUnknown, perr.Kind)
	assert.Contains(t, perr.Message, "totalWagered")
}

func TestListAssetsRejectsMalformedAmount(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"symbol": "BTC", "availableAmount": "abc", "totalAmount": "1", "blockedAmount": "0", "allocatedAmount": "0", "exchangeRate": "60000"},
		})
	})

	_, err := client.ListAssets(context.Background())
	perr := platformError(t, err)
	assert.Contains(t, perr.Message, "BTC")
}

func TestGetReferralStats(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"clicks": 200, "registrations": 50, "depositors": 10},
		})
	})

	stats, err := client.GetReferralStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(50), stats.Registrations)
}

func TestEmptyIDNeverLeavesTheClient(t *testing.T) {
	called := false
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.DeleteCashback(context.Background(), " ")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErr.ErrInvalidID)
	assert.False(t, called)
}

func TestListAssetsAcceptsExponentRates(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"symbol": "SHIB", "availableAmount": "1e6", "totalAmount": "1e6", "blockedAmount": "0", "allocatedAmount": "0", "exchangeRate": "1e-5"},
		})
	})

	assets, err := client.ListAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "1e-5", assets[0].ExchangeRate)
}
