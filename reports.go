package main

import (
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/servicedesk_backend/models"
	"github.com/gin-gonic/gin"
)

const queryDateLayout = "2006-01-02"

func reportFilterFromQuery(c *gin.Context) (models.ReportFilter, bool) {
	filter := models.ReportFilter{Search: c.Query("search")}

	if v := c.Query("fromDate"); v != "" {
		t, err := time.Parse(queryDateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate must be YYYY-MM-DD"})
			return filter, false
		}
		filter.FromDate = &t
	}
	if v := c.Query("toDate"); v != "" {
		t, err := time.Parse(queryDateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "toDate must be YYYY-MM-DD"})
			return filter, false
		}
		filter.ToDate = &t
	}
	return filter, true
}

func listReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := reportFilterFromQuery(c)
		if !ok {
			return
		}
		results, err := models.GetReportsAll(c.Request.Context(), filter)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		report, err := models.GetReport(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func createReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewReport
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		report, err := models.CreateReport(c.Request.Context(), &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, report)
	}
}

func updateReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.UpdateReportInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		report, err := models.UpdateReport(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func deleteReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		deleted, err := models.DeleteReport(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
