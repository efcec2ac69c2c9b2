package context

import (
	"strconv"

	"github.com/gin-gonic/gin"
	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
)

// Keys set by the JWT middleware
const (
	MemberIDKey    = "member_id"
	MemberEmailKey = "member_email"
)

// GetMemberID parses the authenticated member id stored by the JWT middleware.
func GetMemberID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.GetString(MemberIDKey), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

func GetMemberEmail(c *gin.Context) string {
	return c.GetString(MemberEmailKey)
}

// RequireMemberID returns the authenticated member id, or aborts with 401
// and returns false when the route was reached without authentication.
func RequireMemberID(c *gin.Context) (uint32, bool) {
	memberID, ok := GetMemberID(c)
	if !ok {
		logger.FromContext(c.Request.Context()).Error("[API] context에 회원 ID가 존재하지 않습니다.")
		c.AbortWithStatusJSON(sharedError.Unauthorized.Status, sharedError.Unauthorized)
		return 0, false
	}
	return memberID, true
}
