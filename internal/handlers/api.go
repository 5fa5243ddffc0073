package handlers

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/catalog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// InventoryResponse is the body of GET /api/inventory
type InventoryResponse struct {
	Products []catalog.Product `json:"products"`
	Cart     []int             `json:"cart"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// InventoryAPIHandler serves the inventory as JSON. The page script uses it
// to decide whether to show the error banner.
type InventoryAPIHandler struct {
	sessions *Sessions
	logger   *zap.Logger
}

// NewInventoryAPIHandler creates a new inventory API handler
func NewInventoryAPIHandler(sessions *Sessions, logger *zap.Logger) *InventoryAPIHandler {
	return &InventoryAPIHandler{sessions: sessions, logger: logger}
}

func (h *InventoryAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := h.sessions.Current(r); !ok {
		sendErrorResponse(w, "You must be logged in", http.StatusUnauthorized)
		return
	}

	cart := cartFrom(r)
	ids := make([]int, 0, cart.Len())
	for _, p := range cart.Items() {
		ids = append(ids, p.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(InventoryResponse{Products: catalog.Products(), Cart: ids}); err != nil {
		h.logger.Error("failed to encode inventory", zap.Error(err))
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
