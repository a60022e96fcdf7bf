package server

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/loader"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/optimizer"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/royale"
)

//go:embed index.html
var indexHTML []byte

// planRequest is the body for /api/plan and /api/compare. The player
// document has the same shape as the offline file, so pasted data with
// missing rarities resolves through the catalog.
type planRequest struct {
	Player   json.RawMessage  `json:"player"`
	Settings *models.Settings `json:"settings"`
}

type planResponse struct {
	SnapshotDate string          `json:"snapshot_date"`
	Settings     models.Settings `json:"settings"`
	Plan         *optimizer.Plan `json:"plan"`
}

type compareResponse struct {
	SnapshotDate string                   `json:"snapshot_date"`
	Best         models.Regime            `json:"best"`
	Results      []optimizer.RegimeResult `json:"results"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"snapshot_date":  s.economy.SnapshotDate(),
		"catalog_size":   s.catalog.Size(),
		"catalog_source": s.catalog.Source(),
		"live_lookups":   s.client != nil,
	})
}

func (s *Server) handlePlan(c *gin.Context) {
	body, req, ok := s.readPlanRequest(c)
	if !ok {
		return
	}

	key := cacheKey("plan", s.economy.SnapshotDate(), body)
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.(planResponse); ok {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	player, settings, ok := s.resolvePlanRequest(c, req)
	if !ok {
		return
	}

	plan, err := optimizer.New(s.economy, settings).Plan(player)
	if err != nil {
		s.renderPlayerError(c, err)
		return
	}

	resp := planResponse{
		SnapshotDate: s.economy.SnapshotDate(),
		Settings:     settings,
		Plan:         plan,
	}
	s.cache.Add(key, resp)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCompare(c *gin.Context) {
	body, req, ok := s.readPlanRequest(c)
	if !ok {
		return
	}

	key := cacheKey("compare", s.economy.SnapshotDate(), body)
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.(compareResponse); ok {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	player, settings, ok := s.resolvePlanRequest(c, req)
	if !ok {
		return
	}

	results, err := optimizer.CompareRegimes(s.economy, player, settings)
	if err != nil {
		s.renderPlayerError(c, err)
		return
	}

	resp := compareResponse{
		SnapshotDate: s.economy.SnapshotDate(),
		Best:         optimizer.RankByXP(results)[0].Regime,
		Results:      results,
	}
	s.cache.Add(key, resp)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePlayer(c *gin.Context) {
	if s.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "live player lookups are disabled: no API token configured",
		})
		return
	}

	gold, ok := queryInt(c, "gold")
	if !ok {
		return
	}
	gems, ok := queryInt(c, "gems")
	if !ok {
		return
	}

	snap, err := s.client.FetchPlayer(c.Request.Context(), c.Param("tag"))
	if err != nil {
		var apiErr *royale.APIError
		if errors.As(err, &apiErr) {
			// Pass the upstream verdict through so a wrong tag stays a 404
			// and a bad token stays a 403.
			c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	player, err := loader.FromRoyaleSnapshot(snap, gold, gems, s.economy)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"player": player,
		"name":   snap.Name,
		"tag":    snap.Tag,
	})
}

// readPlanRequest pulls the raw body (kept for the cache key) and decodes
// the envelope. A false return means the response is already written.
func (s *Server) readPlanRequest(c *gin.Context) ([]byte, planRequest, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, planRequest{}, false
	}
	var req planRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return nil, planRequest{}, false
	}
	if len(req.Player) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing player document"})
		return nil, planRequest{}, false
	}
	return body, req, true
}

// resolvePlanRequest turns the envelope into validated player data and
// settled settings. A false return means the response is already written.
func (s *Server) resolvePlanRequest(c *gin.Context, req planRequest) (*models.PlayerData, models.Settings, bool) {
	player, err := loader.FromBytes(req.Player, s.catalog)
	if err != nil {
		s.renderPlayerError(c, err)
		return nil, models.Settings{}, false
	}
	settings := models.DefaultSettings()
	if req.Settings != nil {
		settings = req.Settings.Normalize()
	}
	return player, settings, true
}

// renderPlayerError maps domain errors onto statuses: bad documents are
// 400, documents that parse but fail validation are 422.
func (s *Server) renderPlayerError(c *gin.Context, err error) {
	var unknown *models.UnknownCardError
	if errors.As(err, &unknown) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       unknown.Error(),
			"suggestions": unknown.Suggestions,
		})
		return
	}
	var invalid *models.InvalidInventoryError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": invalid.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.DefaultQuery(name, "0")
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("query parameter %q must be a non-negative integer", name),
		})
		return 0, false
	}
	return v, true
}

func cacheKey(endpoint, snapshotDate string, body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf("%s:%s:%s", endpoint, snapshotDate, hex.EncodeToString(sum[:]))
}
