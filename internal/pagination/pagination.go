// Package pagination handles the optional page/page_size query parameters
// accepted by list endpoints.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TotalCountHeader carries the unpaginated row count on list responses.
const TotalCountHeader = "X-Total-Count"

// PageRequest holds pagination parameters parsed from query strings. The
// zero value means "no pagination": every matching row is returned.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in page 1 when only page_size was provided, and a page
// size when only page was provided.
func (p *PageRequest) Defaults() {
	if p.PageSize > 0 && p.Page == 0 {
		p.Page = 1
	}
	if p.Page > 0 && p.PageSize == 0 {
		p.PageSize = 20
	}
}

// Enabled reports whether the request asked for a page.
func (p PageRequest) Enabled() bool {
	return p.Page > 0 && p.PageSize > 0
}

// Offset returns the SQL OFFSET for the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given
// page request, or leaves the query untouched when pagination is off.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !req.Enabled() {
			return db
		}
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

// SetTotal writes the total count header.
func SetTotal(c *gin.Context, total int64) {
	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
}
