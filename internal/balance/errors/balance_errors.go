package balanceerrors

import (
	"fmt"
	"net/http"

	"go-elms/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"no leave balance found for this leave type",
		http.StatusNotFound,
	)
	ErrNegativeBalanceValue = apperror.New(
		apperror.CodeInvalidInput,
		"balance value must not be negative",
		http.StatusBadRequest,
	)
)

// NewInsufficientBalance membawa saldo saat ini agar caller bisa menampilkannya.
func NewInsufficientBalance(current float64) *apperror.AppError {
	return apperror.New(
		apperror.CodeInsufficientBalance,
		fmt.Sprintf("insufficient leave balance, current balance: %g", current),
		http.StatusConflict,
	)
}
