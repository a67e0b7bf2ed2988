package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/middleware"
)

// CurrentUser extracts authenticated user from context.
func CurrentUser(c *gin.Context) *model.User {
	return middleware.CurrentUser(c)
}

// pathID parses positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainErrors.FieldErrors{name: name + " must be a positive integer"}
	}
	return id, nil
}

// optionalShopID reads shop filter. Empty and "undefined" values mean no filter.
func optionalShopID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "undefined" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domainErrors.FieldErrors{"shop_id": "shop_id must be a positive integer"}
	}
	return &id, nil
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
