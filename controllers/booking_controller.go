// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"rent-backend/middleware"
	"rent-backend/services"
	"rent-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingPayload struct {
	Property uint    `json:"property" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Guests   int     `json:"guests" binding:"required"`
	FromDate string  `json:"fromDate" binding:"required"`
	ToDate   string  `json:"toDate" binding:"required"`
}

type CheckoutPayload struct {
	Amount             int64    `json:"amount" binding:"required"`
	Currency           string   `json:"currency"`
	PaymentMethodTypes []string `json:"paymentMethodTypes"`
	PropertyName       string   `json:"propertyName"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	Bookings   *services.BookingService
	Properties *services.PropertyService
	Payments   *services.PaymentService
}

func NewBookingController(bookings *services.BookingService, properties *services.PropertyService, payments *services.PaymentService) *BookingController {
	return &BookingController{Bookings: bookings, Properties: properties, Payments: payments}
}

func parseBookingDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Create handles POST /api/v1/rent/user/booking/new.
func (ctl *BookingController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
		return
	}

	from, okFrom := parseBookingDate(payload.FromDate)
	to, okTo := parseBookingDate(payload.ToDate)
	if !okFrom || !okTo {
		utils.JSONFail(c, http.StatusBadRequest, "fromDate and toDate must be ISO-8601 dates")
		return
	}

	booking, property, err := ctl.Bookings.Create(services.CreateBookingInput{
		PropertyID: payload.Property,
		UserID:     user.ID,
		Guests:     payload.Guests,
		Price:      payload.Price,
		FromDate:   from,
		ToDate:     to,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// the appended summary changes availability search results
	ctl.Properties.InvalidateCache()

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"booking":         booking,
		"updatedProperty": property,
	})
}

// ListMine handles GET /api/v1/rent/user/booking.
func (ctl *BookingController) ListMine(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	bookings, err := ctl.Bookings.ListByUser(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": bookings})
}

// Details handles GET /api/v1/rent/user/booking/:bookingId.
func (ctl *BookingController) Details(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctl.Bookings.GetByID(uint(id), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": booking})
}

// Checkout handles POST /api/v1/rent/user/checkout-session.
func (ctl *BookingController) Checkout(c *gin.Context) {
	var payload CheckoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
		return
	}

	clientSecret, err := ctl.Payments.CreateCheckoutIntent(services.CheckoutInput{
		Amount:             payload.Amount,
		Currency:           payload.Currency,
		PaymentMethodTypes: payload.PaymentMethodTypes,
		PropertyName:       payload.PropertyName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}
