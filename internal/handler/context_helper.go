package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/middleware"
	"github.com/noah-isme/campus-ops-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// approverFromClaims maps the authenticated user onto an approver identity.
// The second return is false when the role has no place in the approval flow.
func approverFromClaims(claims *models.JWTClaims) (models.ApproverIdentity, bool) {
	if claims == nil {
		return models.ApproverIdentity{}, false
	}
	role, ok := claims.Role.ApproverRole()
	if !ok {
		return models.ApproverIdentity{}, false
	}
	return models.ApproverIdentity{
		ID:         claims.UserID,
		Email:      claims.Email,
		Role:       role,
		Department: claims.Department,
	}, true
}

func scopeFromRequest(req dto.ApproverQueueRequest) models.ClassScope {
	scope := models.ClassScope{
		Year:       req.Year,
		Semester:   req.Semester,
		Division:   req.Division,
		Subject:    req.Subject,
		YearLabel:  req.YearLabel,
		Department: req.Department,
	}
	if req.Month >= 1 && req.Month <= 12 {
		scope.Month = time.Month(req.Month)
	}
	if scope.Month == 0 {
		now := time.Now().UTC()
		scope.Month = now.Month()
		if scope.YearLabel == 0 {
			scope.YearLabel = now.Year()
		}
	}
	if scope.YearLabel == 0 {
		scope.YearLabel = time.Now().UTC().Year()
	}
	return scope
}
