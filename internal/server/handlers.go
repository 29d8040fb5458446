package server

import (
	"encoding/json"
	"net/http"

	"github.com/invopop/jsonschema"
	"go.uber.org/zap"

	"github.com/alphabeam/screenline/internal/scanner"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// ScanRequest is the POST /api/scan payload. Filters use the same shape the
// scanning core consumes; operator strings are parsed into the enumerated
// type before anything runs.
type ScanRequest struct {
	Scanner string             `json:"scanner" jsonschema:"required,description=Registered scanner name"`
	Market  string             `json:"market,omitempty" jsonschema:"description=Candidate universe country code (default us)"`
	Params  map[string]any     `json:"params,omitempty" jsonschema:"description=Scanner parameter overrides"`
	Filters []types.FilterSpec `json:"filters,omitempty" jsonschema:"description=Filter list for the generic screener"`
}

// scannerInfo is one entry of the GET /api/scanners response.
type scannerInfo struct {
	Name   string            `json:"name"`
	Params []types.ParamSpec `json:"params"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (s *Server) handleListScanners(w http.ResponseWriter, r *http.Request) {
	names := s.registry.List()

	infos := make([]scannerInfo, 0, len(names))

	for _, name := range names {
		sc, err := s.registry.Get(name, nil)
		if err != nil {
			continue
		}

		infos = append(infos, scannerInfo{Name: name, Params: sc.Params()})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"scanners": infos})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid request body", err))
		return
	}

	if req.Scanner == "" {
		s.writeError(w, errors.New(errors.ErrCodeMissingParameter, "scanner name is required"))
		return
	}

	for i, f := range req.Filters {
		op, err := types.ParseOperator(string(f.Op))
		if err != nil {
			s.writeError(w, err)
			return
		}

		req.Filters[i].Op = op
	}

	params := types.Params(req.Params)
	if params == nil {
		params = types.Params{}
	}

	if req.Market != "" {
		params["market"] = req.Market
	}

	if len(req.Filters) > 0 {
		params["filters"] = req.Filters
	}

	sc, err := s.registry.Get(req.Scanner, params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	table, err := s.orch.RunScan(r.Context(), sc, scanner.ScanOptions{Params: params})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, table)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	reflector := new(jsonschema.Reflector)
	reflector.DoNotReference = true

	schema := reflector.Reflect(&ScanRequest{})

	s.writeJSON(w, http.StatusOK, schema)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("response encode failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	s.writeJSON(w, httpStatus(code), errorResponse{
		Error: err.Error(),
		Code:  int(code),
	})
}

// httpStatus maps error code ranges onto HTTP statuses: validation failures
// are the client's fault, missing resources are 404, store trouble is 503.
func httpStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeScannerNotFound, errors.ErrCodeDataNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStoreUnavailable, errors.ErrCodeQueryFailed:
		return http.StatusServiceUnavailable
	}

	if code >= 100 && code < 200 {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
