package problem

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Problem is the uniform error body returned by every endpoint:
// {title, detail, status, type}, optionally one sub-message per underlying
// reason, and a stack trace outside production.
type Problem struct {
	Title   string   `json:"title"`
	Detail  string   `json:"detail"`
	Status  int      `json:"status"`
	Type    string   `json:"type"`
	Details []string `json:"details,omitempty"`
	Trace   string   `json:"trace,omitempty"`
}

// Abort writes the problem as JSON with its status code and stops the
// handler chain. includeTrace must stay false in production.
func (p Problem) Abort(c *gin.Context, includeTrace bool) {
	if includeTrace {
		p.Trace = string(debug.Stack())
	}
	c.AbortWithStatusJSON(p.Status, p)
}
