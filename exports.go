package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/servicedesk_backend/config"
	"bitbucket.org/mmdatafocus/servicedesk_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeWorkbook(c *gin.Context, f *excelize.File, base string) {
	filename := fmt.Sprintf("%s_%s.xlsx", base, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(c.Writer); err != nil {
		config.LogError(config.GetLogger(), "exports.go", "writeWorkbook", base, nil, err)
	}
}

func exportTicketsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "export.tickets")
		defer span.End()

		tickets, err := models.GetTicketsAll(ctx, ticketFilterFromQuery(c))
		if err != nil {
			respondStoreError(c, err)
			return
		}
		f, err := models.BuildTicketWorkbook(tickets)
		if err != nil {
			if errors.Is(err, models.ErrNoExportData) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
			return
		}
		writeWorkbook(c, f, "tickets")
	}
}

func exportReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "export.reports")
		defer span.End()

		filter, ok := reportFilterFromQuery(c)
		if !ok {
			return
		}
		reports, err := models.GetReportsAll(ctx, filter)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		f, err := models.BuildReportWorkbook(reports)
		if err != nil {
			if errors.Is(err, models.ErrNoExportData) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
			return
		}
		writeWorkbook(c, f, "reports")
	}
}
