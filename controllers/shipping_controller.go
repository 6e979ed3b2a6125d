package controllers

import (
	"net/http"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/services"

	"github.com/gin-gonic/gin"
)

type ShippingController struct {
	Shipping services.ShippingService
}

func NewShippingController(shipping services.ShippingService) *ShippingController {
	return &ShippingController{Shipping: shipping}
}

// OptionsByCity handles GET /api/shipping/options-by-city?city=<name>.
// A city with no registered carriers returns an empty options array, not an
// error.
func (sc *ShippingController) OptionsByCity(c *gin.Context) {
	city := c.Query("city")

	options, err := sc.Shipping.OptionsByCity(c.Request.Context(), city)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}
