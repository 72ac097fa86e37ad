package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
	"github.com/noah-isme/shelter-adoption-api/internal/middleware"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	return claims
}

func intQuery(c *gin.Context, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return value
}

// adoptionQueryFromContext reads status (comma separated), vetReviewStatus, dogId, page and pageSize.
func adoptionQueryFromContext(c *gin.Context) dto.AdoptionQuery {
	query := dto.AdoptionQuery{
		VetReview: models.VetReviewStatus(strings.ToLower(strings.TrimSpace(c.Query("vetReviewStatus")))),
		DogID:     strings.TrimSpace(c.Query("dogId")),
		Page:      intQuery(c, "page"),
		PageSize:  intQuery(c, "pageSize"),
	}
	if rawStatus := c.Query("status"); rawStatus != "" {
		for _, part := range strings.Split(rawStatus, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			query.Status = append(query.Status, models.AdoptionStatus(part))
		}
	}
	return query
}
