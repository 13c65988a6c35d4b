package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/models"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/jobs/status", s.handleJobStatus)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)
	mux.HandleFunc("/debug/memstats", s.handleMemstats)

	// Record kinds
	a := s.app
	registerKindRoutes(mux, "asset-profiles", a.AssetProfiles, a.RunnerFor("asset_profile"), s.logger)
	registerKindRoutes(mux, "balance-sheets", a.BalanceSheets, a.RunnerFor("balance_sheet"), s.logger)
	registerKindRoutes(mux, "cash-flows", a.CashFlows, a.RunnerFor("cash_flow"), s.logger)
	registerKindRoutes(mux, "income-statements", a.IncomeStatements, a.RunnerFor("income_statement"), s.logger)
	registerKindRoutes(mux, "earnings", a.Earnings, a.RunnerFor("earnings"), s.logger)
	registerKindRoutes(mux, "key-statistics", a.KeyStatistics, a.RunnerFor("key_statistics"), s.logger)
	registerKindRoutes(mux, "calendar-events", a.CalendarEvents, a.RunnerFor("calendar_events"), s.logger)
	registerKindRoutes(mux, "stocks", a.StockData, a.RunnerFor("stock_data"), s.logger)
	registerKindRoutes(mux, "market-data", a.MarketData, a.RunnerFor("market_data"), s.logger)
	registerKindRoutes(mux, "institution-ownership", a.InstitutionOwnership, a.RunnerFor("institution_ownership"), s.logger)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":       s.app.Config.Environment,
		"uptime":            uptime.String(),
		"started_at":        s.app.StartupTime,
		"storage_address":   s.app.Config.Storage.Address,
		"storage_namespace": s.app.Config.Storage.Namespace,
		"storage_database":  s.app.Config.Storage.Database,
		"cache_path":        s.app.Config.Cache.Path,
		"logging_level":     s.app.Config.Logging.Level,
		"refresh_enabled":   s.app.Config.Refresh.Enabled,
		"fmp_configured":    s.app.Config.Clients.FMP.APIKey != "",
	})
}

// handleJobStatus reports every refresh runner's schedule and last run.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	statuses := make([]*models.RefreshStatus, 0, len(s.app.Runners))
	for _, runner := range s.app.Runners {
		statuses = append(statuses, runner.Status())
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"enabled": s.app.Config.Refresh.Enabled,
		"jobs":    statuses,
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

func (s *Server) handleMemstats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"heap_alloc_bytes": m.HeapAlloc,
		"heap_inuse_bytes": m.HeapInuse,
		"heap_idle_bytes":  m.HeapIdle,
		"sys_bytes":        m.Sys,
		"num_gc":           m.NumGC,
		"heap_alloc_mb":    float64(m.HeapAlloc) / 1024 / 1024,
		"heap_inuse_mb":    float64(m.HeapInuse) / 1024 / 1024,
		"heap_idle_mb":     float64(m.HeapIdle) / 1024 / 1024,
		"sys_mb":           float64(m.Sys) / 1024 / 1024,
	})
}
