package restaurant

import (
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

// RefPrefix is the booking-reference prefix for restaurant sales.
const RefPrefix = "RS"

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "restaurant sale not found")
	ErrEmptyTable    = apperror.New(http.StatusBadRequest, "table number cannot be empty")
	ErrBadCovers     = apperror.New(http.StatusBadRequest, "covers must be positive")
	ErrBadAmount     = apperror.New(http.StatusBadRequest, "amount must be positive")
	ErrNotOpen       = apperror.New(http.StatusBadRequest, "sale is not open")
	ErrNotCancelled  = apperror.New(http.StatusBadRequest, "only cancelled sales can be reactivated")
	ErrUnpaidBill    = apperror.New(http.StatusConflict, "bill must be fully paid before settling")
	ErrTerminalState = apperror.New(http.StatusConflict, "cannot delete a settled sale")
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusSettled   Status = "settled"
	StatusCancelled Status = "cancelled"
)

// Sale is a restaurant bill. There is no capacity resource behind it; sales
// exist for payment tracking and revenue reporting.
type Sale struct {
	ID            string // UUID
	Ref           string // e.g. RS-482913-7
	TableNumber   string
	Covers        int
	SaleDate      time.Time // calendar date, midnight UTC
	Status        Status
	AmountCents   int64
	PaidCents     int64
	PaymentStatus payment.Status
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Filter struct {
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
	SortOrder string
}
