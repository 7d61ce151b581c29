package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/servicedesk_backend/config"
	"bitbucket.org/mmdatafocus/servicedesk_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TicketStatusOpen       = "Open"
	TicketStatusInProgress = "In Progress"
	TicketStatusCompleted  = "Completed"
	TicketStatusClosed     = "Closed"
)

// Ticket is a complaint/service record tracked from intake to resolution,
// payment and feedback. TicketNumber is assigned at creation and never
// changes afterwards.
type Ticket struct {
	ID              int             `gorm:"primary_key" json:"id"`
	TicketNumber    string          `gorm:"size:20;uniqueIndex;not null" json:"ticket_number"`
	Date            *time.Time      `json:"date"`
	ProjectType     string          `gorm:"size:100" json:"project_type"`
	ReceivedBy      string          `gorm:"size:100" json:"received_by"`
	SiteName        string          `gorm:"size:255" json:"site_name"`
	ContactPerson   string          `gorm:"size:100" json:"contact_person"`
	Mobile          string          `gorm:"size:20" json:"mobile"`
	Address         string          `json:"address"`
	Issue           string          `json:"issue"`
	RemarkDetails   string          `json:"remark_details"`
	AttendedBy      string          `gorm:"size:100" json:"attended_by"`
	AttendedDate    *time.Time      `json:"attended_date"`
	Status          string          `gorm:"size:20;not null;default:'Open'" json:"status"`
	ClosingDate     *time.Time      `json:"closing_date"`
	PaidStatus      string          `gorm:"size:20" json:"paid_status"`
	AmountReceived  decimal.Decimal `gorm:"type:decimal(20,4)" json:"amount_received"`
	Feedback        string          `json:"feedback"`
	FeedbackDate    *time.Time      `json:"feedback_date"`
	FeedbackTakenBy string          `gorm:"size:100" json:"feedback_taken_by"`
	FinalRemark     string          `json:"final_remark"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTicket struct {
	Date            *time.Time       `json:"date" binding:"required"`
	ProjectType     string           `json:"project_type"`
	ReceivedBy      string           `json:"received_by"`
	SiteName        string           `json:"site_name" binding:"required"`
	ContactPerson   string           `json:"contact_person"`
	Mobile          string           `json:"mobile"`
	Address         string           `json:"address"`
	Issue           string           `json:"issue"`
	RemarkDetails   string           `json:"remark_details"`
	AttendedBy      string           `json:"attended_by"`
	AttendedDate    *time.Time       `json:"attended_date"`
	Status          string           `json:"status" binding:"omitempty,oneof=Open 'In Progress' Completed Closed"`
	ClosingDate     *time.Time       `json:"closing_date"`
	PaidStatus      string           `json:"paid_status"`
	AmountReceived  *decimal.Decimal `json:"amount_received"`
	Feedback        string           `json:"feedback"`
	FeedbackDate    *time.Time       `json:"feedback_date"`
	FeedbackTakenBy string           `json:"feedback_taken_by"`
	FinalRemark     string           `json:"final_remark"`
}

// UpdateTicketInput is a partial update: nil fields are left untouched,
// non-nil fields are written as sent. The ticket number is immutable and
// therefore absent here.
type UpdateTicketInput struct {
	Date            *time.Time       `json:"date"`
	ProjectType     *string          `json:"project_type"`
	ReceivedBy      *string          `json:"received_by"`
	SiteName        *string          `json:"site_name"`
	ContactPerson   *string          `json:"contact_person"`
	Mobile          *string          `json:"mobile"`
	Address         *string          `json:"address"`
	Issue           *string          `json:"issue"`
	RemarkDetails   *string          `json:"remark_details"`
	AttendedBy      *string          `json:"attended_by"`
	AttendedDate    *time.Time       `json:"attended_date"`
	Status          *string          `json:"status" binding:"omitempty,oneof=Open 'In Progress' Completed Closed"`
	ClosingDate     *time.Time       `json:"closing_date"`
	PaidStatus      *string          `json:"paid_status"`
	AmountReceived  *decimal.Decimal `json:"amount_received"`
	Feedback        *string          `json:"feedback"`
	FeedbackDate    *time.Time       `json:"feedback_date"`
	FeedbackTakenBy *string          `json:"feedback_taken_by"`
	FinalRemark     *string          `json:"final_remark"`
}

func (input *UpdateTicketInput) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if input.Date != nil {
		updates["date"] = input.Date
	}
	if input.ProjectType != nil {
		updates["project_type"] = *input.ProjectType
	}
	if input.ReceivedBy != nil {
		updates["received_by"] = *input.ReceivedBy
	}
	if input.SiteName != nil {
		updates["site_name"] = *input.SiteName
	}
	if input.ContactPerson != nil {
		updates["contact_person"] = *input.ContactPerson
	}
	if input.Mobile != nil {
		updates["mobile"] = *input.Mobile
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Issue != nil {
		updates["issue"] = *input.Issue
	}
	if input.RemarkDetails != nil {
		updates["remark_details"] = *input.RemarkDetails
	}
	if input.AttendedBy != nil {
		updates["attended_by"] = *input.AttendedBy
	}
	if input.AttendedDate != nil {
		updates["attended_date"] = input.AttendedDate
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.ClosingDate != nil {
		updates["closing_date"] = input.ClosingDate
	}
	if input.PaidStatus != nil {
		updates["paid_status"] = *input.PaidStatus
	}
	if input.AmountReceived != nil {
		updates["amount_received"] = *input.AmountReceived
	}
	if input.Feedback != nil {
		updates["feedback"] = *input.Feedback
	}
	if input.FeedbackDate != nil {
		updates["feedback_date"] = input.FeedbackDate
	}
	if input.FeedbackTakenBy != nil {
		updates["feedback_taken_by"] = *input.FeedbackTakenBy
	}
	if input.FinalRemark != nil {
		updates["final_remark"] = *input.FinalRemark
	}
	return updates
}

func CreateTicket(ctx context.Context, input *NewTicket) (*Ticket, error) {
	db := config.GetDB()
	logger := config.GetLogger()

	status := input.Status
	if status == "" {
		status = TicketStatusOpen
	}

	ticket := Ticket{
		Date:            input.Date,
		ProjectType:     input.ProjectType,
		ReceivedBy:      input.ReceivedBy,
		SiteName:        input.SiteName,
		ContactPerson:   input.ContactPerson,
		Mobile:          input.Mobile,
		Address:         input.Address,
		Issue:           input.Issue,
		RemarkDetails:   input.RemarkDetails,
		AttendedBy:      input.AttendedBy,
		AttendedDate:    input.AttendedDate,
		Status:          status,
		ClosingDate:     input.ClosingDate,
		PaidStatus:      input.PaidStatus,
		AmountReceived:  utils.DereferencePtr(input.AmountReceived),
		Feedback:        input.Feedback,
		FeedbackDate:    input.FeedbackDate,
		FeedbackTakenBy: input.FeedbackTakenBy,
		FinalRemark:     input.FinalRemark,
	}

	year := time.Now().Year()

	// Redis lock is a best-effort optimization. Correctness must not depend
	// on Redis: the series row is locked FOR UPDATE inside the transaction.
	if redisLock := config.GetRedisLock(); redisLock != nil {
		lock, err := redisLock.Obtain(ctx, fmt.Sprintf("lock:ticket-number:%d", year), 10*time.Second, nil)
		if err == nil {
			defer lock.Release(ctx)
		}
	}

	var txErr error
	for attempt := 0; attempt < 2; attempt++ {
		txErr = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := nextTicketNumber(ctx, tx, year)
			if err != nil {
				return err
			}
			ticket.TicketNumber = number
			return tx.Create(&ticket).Error
		})
		if txErr == nil {
			break
		}
		// One retry: the first create of a year can lose the race on the
		// series insert, and the unique ticket_number index backstops the
		// counter itself.
		ticket.ID = 0
	}
	if txErr != nil {
		config.LogError(logger, "ticket.go", "CreateTicket", "create transaction", input, txErr)
		return nil, errors.New("failed to create ticket")
	}
	return &ticket, nil
}

func GetTicket(ctx context.Context, id int) (*Ticket, error) {
	db := config.GetDB()
	var result Ticket

	err := db.WithContext(ctx).First(&result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		config.LogError(config.GetLogger(), "ticket.go", "GetTicket", "query", id, err)
		return nil, errors.New("failed to get ticket")
	}
	return &result, nil
}

func GetTicketsAll(ctx context.Context, filter TicketFilter) ([]*Ticket, error) {
	db := config.GetDB()
	var results []*Ticket

	err := db.WithContext(ctx).Scopes(filter.Scope()).
		Order("date DESC, id DESC").Find(&results).Error
	if err != nil {
		config.LogError(config.GetLogger(), "ticket.go", "GetTicketsAll", "query", filter, err)
		return nil, errors.New("failed to list tickets")
	}
	return results, nil
}

func UpdateTicket(ctx context.Context, id int, input *UpdateTicketInput) (*Ticket, error) {
	db := config.GetDB()

	var ticket Ticket
	err := db.WithContext(ctx).First(&ticket, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		config.LogError(config.GetLogger(), "ticket.go", "UpdateTicket", "fetch", id, err)
		return nil, errors.New("failed to update ticket")
	}

	updates := input.updates()
	if len(updates) == 0 {
		return &ticket, nil
	}

	if err := db.WithContext(ctx).Model(&ticket).Updates(updates).Error; err != nil {
		config.LogError(config.GetLogger(), "ticket.go", "UpdateTicket", "updates", updates, err)
		return nil, errors.New("failed to update ticket")
	}
	if err := db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		config.LogError(config.GetLogger(), "ticket.go", "UpdateTicket", "reload", id, err)
		return nil, errors.New("failed to update ticket")
	}
	return &ticket, nil
}

// DeleteTicket reports whether a row was actually removed; deleting an
// unknown id is not an error.
func DeleteTicket(ctx context.Context, id int) (bool, error) {
	db := config.GetDB()

	result := db.WithContext(ctx).Delete(&Ticket{}, id)
	if result.Error != nil {
		config.LogError(config.GetLogger(), "ticket.go", "DeleteTicket", "delete", id, result.Error)
		return false, errors.New("failed to delete ticket")
	}
	return result.RowsAffected > 0, nil
}
