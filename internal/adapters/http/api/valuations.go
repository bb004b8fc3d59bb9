package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/prospect/internal/app"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/types"
)

const defaultMaxBody = 1 << 20

// ValuationHandler handles valuation requests.
type ValuationHandler struct {
	deps    Dependencies
	maxBody int64
}

// NewValuationHandler creates a new valuation handler.
func NewValuationHandler(deps Dependencies) *ValuationHandler {
	return &ValuationHandler{deps: deps, maxBody: defaultMaxBody}
}

// HandleGetValuation handles GET /v1/valuations?rank=&position=&model=.
func (h *ValuationHandler) HandleGetValuation(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_valuation"

	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("rank"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, service.KindInvalidInput, fmt.Errorf("%s: %w: missing rank", op, ErrBadRequest))
		return
	}
	rank, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.KindInvalidInput, fmt.Errorf("%s: %w: rank %q is not an integer", op, ErrBadRequest, raw))
		return
	}

	req := types.ValuationRequest{Rank: rank, Position: q.Get("position"), Model: q.Get("model")}
	res, err := h.deps.Compute(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandlePostValuation handles POST /v1/valuations.
func (h *ValuationHandler) HandlePostValuation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_valuation"

	var req types.ValuationRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	res, err := h.deps.Compute(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type batchRequest struct {
	Items []types.ValuationRequest `json:"items"`
}

type batchResult struct {
	Index  int                    `json:"index"`
	Result *model.ValuationResult `json:"result,omitempty"`
	Error  *errorResponse         `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchResult `json:"results"`
	Failed  int           `json:"failed"`
}

// HandlePostBatch handles POST /v1/valuations/batch. Item failures are
// reported per item; the response is 200 unless the batch itself is invalid.
func (h *ValuationHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"

	var req batchRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	items, err := h.deps.ComputeBatch(r.Context(), req.Items)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	resp := batchResponse{Results: make([]batchResult, len(items))}
	for i, it := range items {
		resp.Results[i] = batchResult{Index: i, Result: it.Result}
		if it.Err != nil {
			_, code := statusFor(it.Err)
			resp.Results[i].Error = &errorResponse{Code: code, Message: it.Err.Error()}
			resp.Failed++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ValuationHandler) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, h.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}
