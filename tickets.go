package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/servicedesk_backend/models"
	"github.com/gin-gonic/gin"
)

func ticketFilterFromQuery(c *gin.Context) models.TicketFilter {
	return models.TicketFilter{
		Search:      c.Query("search"),
		Status:      c.Query("status"),
		ProjectType: c.Query("projectType"),
	}
}

func listTicketsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetTicketsAll(c.Request.Context(), ticketFilterFromQuery(c))
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getTicketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		ticket, err := models.GetTicket(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}

func createTicketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTicket
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		ticket, err := models.CreateTicket(c.Request.Context(), &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, ticket)
	}
}

func updateTicketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.UpdateTicketInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		ticket, err := models.UpdateTicket(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}

func deleteTicketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		deleted, err := models.DeleteTicket(c.Request.Context(), id)
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
