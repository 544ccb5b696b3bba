package controllers

import (
	"net/http"
	"strconv"

	"rent-backend/middleware"
	"rent-backend/models"
	"rent-backend/services"
	"rent-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreatePropertyPayload struct {
	PropertyName string                 `json:"propertyName" binding:"required"`
	Description  string                 `json:"description" binding:"required"`
	ExtraInfo    string                 `json:"extraInfo"`
	PropertyType string                 `json:"propertyType"`
	RoomType     string                 `json:"roomType"`
	MaximumGuest int                    `json:"maximumGuest" binding:"required"`
	Price        float64                `json:"price" binding:"required"`
	Amenities    []models.Amenity       `json:"amenities"`
	Images       []models.PropertyImage `json:"images"`
	Address      models.Address         `json:"address"`
	CheckInTime  string                 `json:"checkInTime"`
	CheckOutTime string                 `json:"checkOutTime"`
}

type PropertyController struct {
	Properties *services.PropertyService
}

func NewPropertyController(properties *services.PropertyService) *PropertyController {
	return &PropertyController{Properties: properties}
}

// List handles GET /api/v1/rent/listing with filter/search/paginate params.
func (ctl *PropertyController) List(c *gin.Context) {
	res, err := ctl.Properties.List(c.Request.URL.Query())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"no_of_responses": res.Filtered,
		"all_properties":  res.Total,
		"data":            res.Properties,
	})
}

// Get resolves a listing by numeric id, or by slug when the path segment is
// not a number.
func (ctl *PropertyController) Get(c *gin.Context) {
	ref := c.Param("id")

	var property *models.Property
	var err error
	if id, parseErr := strconv.ParseUint(ref, 10, 64); parseErr == nil {
		property, err = ctl.Properties.GetByID(uint(id))
	} else {
		property, err = ctl.Properties.GetBySlug(ref)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, property)
}

func (ctl *PropertyController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload CreatePropertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
		return
	}

	property := models.Property{
		PropertyName: payload.PropertyName,
		Description:  payload.Description,
		ExtraInfo:    payload.ExtraInfo,
		PropertyType: payload.PropertyType,
		RoomType:     payload.RoomType,
		MaximumGuest: payload.MaximumGuest,
		Price:        payload.Price,
		Address:      payload.Address,
		CheckInTime:  payload.CheckInTime,
		CheckOutTime: payload.CheckOutTime,
	}
	if err := property.SetAmenities(payload.Amenities); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid amenities payload")
		return
	}
	if err := property.SetImages(payload.Images); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid images payload")
		return
	}

	if err := ctl.Properties.Create(&property, user.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"data": property})
}

// MyAccommodation sits behind OptionalUser so the frontend can call it
// eagerly; without a session it reads as unauthorized.
func (ctl *PropertyController) MyAccommodation(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONFail(c, http.StatusUnauthorized, "please login first")
		return
	}

	props, err := ctl.Properties.ListByOwner(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(props),
		"data":    props,
	})
}

func (ctl *PropertyController) UsersProperties(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	props, err := ctl.Properties.ListByOwner(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"data_length": len(props),
		"data":        props,
	})
}
