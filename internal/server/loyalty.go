package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetCustomerTierInfo(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.loyaltySvc.GetCustomerTierInfo(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// RecalculateTiers runs the batch recomputation on demand; the scheduler
// runs the same operation periodically.
func (s *Server) RecalculateTiers(c *gin.Context) {
	resp, err := s.loyaltySvc.RecalculateAllTiers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
