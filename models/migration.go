package models

import (
	"log"

	"bitbucket.org/mmdatafocus/servicedesk_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Ticket{}, &TicketNumberSeries{},
		&Report{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
