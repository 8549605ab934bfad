package controller

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"vendor-collective/app/middleware"
	"vendor-collective/logging"
	"vendor-collective/models"
	"vendor-collective/repository"
	"vendor-collective/utils"
)

// WalletController handles HTTP requests for wallet balance and top-ups
type WalletController struct {
	repository repository.ProfileRepositoryInterface
}

// NewWalletController creates a new WalletController
func NewWalletController(repo repository.ProfileRepositoryInterface) *WalletController {
	return &WalletController{
		repository: repo,
	}
}

// Balance handles GET /wallet/me
func (c *WalletController) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := c.repository.GetBalance(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.WalletBalanceResponse{
		Balance:        balance,
		BalanceDisplay: utils.FormatINR(balance),
	})
}

// TopUp handles POST /wallet/me/topup. There is no real payment gateway;
// the "payment" always succeeds and the wallet is credited immediately.
func (c *WalletController) TopUp(w http.ResponseWriter, r *http.Request) {
	logging.L.Infof("📥 TopUp: Received %s request to %s", r.Method, r.URL.Path)

	var req models.WalletTopUpRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeBadRequest(w, "amount must be greater than 0")
		return
	}

	balance, err := c.repository.Credit(r.Context(), middleware.UserID(r.Context()), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	paymentID := fmt.Sprintf("mock_pay_%s", uuid.New())
	logging.L.Infof("💰 TopUp: %s credited via %s", utils.FormatINR(req.Amount), paymentID)
	writeJSON(w, http.StatusOK, models.WalletTopUpResponse{
		PaymentID:      paymentID,
		Credited:       req.Amount,
		Balance:        balance,
		BalanceDisplay: utils.FormatINR(balance),
	})
}
