package daemon

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clipscout/internal/api"
)

func (s *apiServer) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.daemon.Status(c.Request.Context()))
}

func (s *apiServer) handleList(c *gin.Context) {
	resp, err := s.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *apiServer) handleCreate(c *gin.Context) {
	var req api.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid json", Kind: "validation"})
		return
	}
	created, err := s.service.Submit(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *apiServer) handleGet(c *gin.Context) {
	item, err := s.service.Describe(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *apiServer) handleUpdate(c *gin.Context) {
	var req api.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid json", Kind: "validation"})
		return
	}
	updated, err := s.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *apiServer) handleDelete(c *gin.Context) {
	if err := s.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *apiServer) handleBatchDelete(c *gin.Context) {
	var req api.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ids required", Kind: "validation"})
		return
	}
	c.JSON(http.StatusOK, s.service.DeleteMany(c.Request.Context(), req.IDs))
}

func (s *apiServer) handleStats(c *gin.Context) {
	stats, err := s.service.Stats(c.Request.Context(), c.Query("tz"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
