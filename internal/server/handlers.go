package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ValueSentinel/internal/model"
)

// valuationRequest is the POST /api/valuation body.
type valuationRequest struct {
	Symbol            string  `json:"symbol"`
	Market            string  `json:"market"`
	Method            string  `json:"method"`
	GrowthRatePercent float64 `json:"marketGrowthRatePercent"`
	PrimaryKey        string  `json:"primaryKey"`
	SecondaryKey      string  `json:"secondaryKey"`
}

// batchRequest is the POST /api/valuation/batch body. Markets carries either
// one entry applied to every symbol or one entry per symbol.
type batchRequest struct {
	Symbols           []string `json:"symbols"`
	Markets           []string `json:"markets"`
	GrowthRatePercent float64  `json:"marketGrowthRatePercent"`
	PrimaryKey        string   `json:"primaryKey"`
	SecondaryKey      string   `json:"secondaryKey"`
}

type batchResponse struct {
	RequestID   string                   `json:"requestId"`
	Count       int                      `json:"count"`
	ProcessedAt string                   `json:"processedAt"`
	Results     []*model.ValuationResult `json:"results"`
}

// errorResponse is the body for rejected requests.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

func (s *Server) handleValuation(c *gin.Context) {
	var body valuationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	req, err := s.buildRequest(body.Symbol, body.Market, body.Method, body.GrowthRatePercent, body.PrimaryKey, body.SecondaryKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	result := s.svc.Valuate(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleBatch(c *gin.Context) {
	var body batchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}
	if len(body.Symbols) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: "symbols is required",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if len(body.Markets) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: "markets is required",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if len(body.Markets) != 1 && len(body.Markets) != len(body.Symbols) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "markets mismatch",
			Message: fmt.Sprintf("markets must have 1 entry or %d, got %d", len(body.Symbols), len(body.Markets)),
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Validate every entry before starting any upstream work.
	reqs := make([]*model.ValuationRequest, len(body.Symbols))
	for i, sym := range body.Symbols {
		market := body.Markets[0]
		if len(body.Markets) > 1 {
			market = body.Markets[i]
		}
		req, err := s.buildRequest(sym, market, "", body.GrowthRatePercent, body.PrimaryKey, body.SecondaryKey)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error:   "invalid request",
				Message: fmt.Sprintf("entry %d: %v", i, err),
				Code:    http.StatusBadRequest,
			})
			return
		}
		reqs[i] = req
	}

	ctx := c.Request.Context()
	workers := s.cfg.Valuation.BatchWorkers
	if workers < 1 {
		workers = 1
	}

	results := make([]*model.ValuationResult, len(reqs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req *model.ValuationRequest) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = s.svc.Valuate(ctx, req)
		}(i, req)
	}
	wg.Wait()

	resp := batchResponse{
		RequestID:   uuid.NewString(),
		Count:       len(results),
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		Results:     results,
	}
	log.Printf("[INFO] batch %s: processed %d symbols", resp.RequestID, resp.Count)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "valuesentinel",
		"version": Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "valuesentinel",
		"description": "PEG-based fair value estimates for US and HK listed equities",
		"endpoints": gin.H{
			"POST /api/valuation":       "value a single symbol",
			"POST /api/valuation/batch": "value a list of symbols",
			"GET /health":               "service health",
		},
	})
}

// buildRequest validates boundary input and fills config-level defaults.
func (s *Server) buildRequest(symbol, market, method string, growth float64, primaryKey, secondaryKey string) (*model.ValuationRequest, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	m, err := model.ParseMarket(market)
	if err != nil {
		return nil, err
	}
	meth, err := model.ParseMethod(method)
	if err != nil {
		return nil, err
	}
	if growth == 0 {
		growth = s.cfg.Valuation.MarketGrowthRatePercent
	}
	if growth <= 0 {
		return nil, fmt.Errorf("marketGrowthRatePercent must be positive, got %v", growth)
	}
	if primaryKey == "" {
		primaryKey = s.cfg.Providers.Primary.APIKey
	}
	if primaryKey == "" {
		return nil, fmt.Errorf("no primary provider API key configured; set FINNHUB_API_KEY or pass primaryKey")
	}
	if secondaryKey == "" {
		secondaryKey = s.cfg.Providers.Secondary.APIKey
	}

	return &model.ValuationRequest{
		Symbol:            symbol,
		Market:            m,
		Method:            meth,
		GrowthRatePercent: growth,
		PrimaryKey:        primaryKey,
		SecondaryKey:      secondaryKey,
	}, nil
}
