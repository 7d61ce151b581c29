package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/servicedesk_backend/config"
	"bitbucket.org/mmdatafocus/servicedesk_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Report is a daily staff activity record: sites visited, odometer readings
// and reimbursement. TotalKm is stored exactly as sent; the client derives
// it from the odometer readings and the server performs no recomputation.
type Report struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Date           *time.Time      `json:"date"`
	KmIn           int             `json:"km_in"`
	KmOut          int             `json:"km_out"`
	Site1          string          `gorm:"size:255" json:"site1"`
	ServiceReport1 string          `gorm:"size:10" json:"service_report1"`
	Site2          string          `gorm:"size:255" json:"site2"`
	ServiceReport2 string          `gorm:"size:10" json:"service_report2"`
	Site3          string          `gorm:"size:255" json:"site3"`
	Site4          string          `gorm:"size:255" json:"site4"`
	ServiceReport3 string          `gorm:"size:10" json:"service_report3"`
	TransportMode  string          `gorm:"size:50" json:"transport_mode"`
	TotalKm        int             `json:"total_km"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,4)" json:"amount"`
	PaidOn         *time.Time      `json:"paid_on"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewReport struct {
	Name           string           `json:"name" binding:"required"`
	Date           *time.Time       `json:"date" binding:"required"`
	KmIn           int              `json:"km_in"`
	KmOut          int              `json:"km_out"`
	Site1          string           `json:"site1"`
	ServiceReport1 string           `json:"service_report1" binding:"omitempty,oneof=yes no partial"`
	Site2          string           `json:"site2"`
	ServiceReport2 string           `json:"service_report2" binding:"omitempty,oneof=yes no partial"`
	Site3          string           `json:"site3"`
	Site4          string           `json:"site4"`
	ServiceReport3 string           `json:"service_report3" binding:"omitempty,oneof=yes no partial"`
	TransportMode  string           `json:"transport_mode"`
	TotalKm        int              `json:"total_km"`
	Amount         *decimal.Decimal `json:"amount"`
	PaidOn         *time.Time       `json:"paid_on"`
}

// UpdateReportInput is a partial update: nil fields are left untouched.
type UpdateReportInput struct {
	Name           *string          `json:"name"`
	Date           *time.Time       `json:"date"`
	KmIn           *int             `json:"km_in"`
	KmOut          *int             `json:"km_out"`
	Site1          *string          `json:"site1"`
	ServiceReport1 *string          `json:"service_report1" binding:"omitempty,oneof=yes no partial"`
	Site2          *string          `json:"site2"`
	ServiceReport2 *string          `json:"service_report2" binding:"omitempty,oneof=yes no partial"`
	Site3          *string          `json:"site3"`
	Site4          *string          `json:"site4"`
	ServiceReport3 *string          `json:"service_report3" binding:"omitempty,oneof=yes no partial"`
	TransportMode  *string          `json:"transport_mode"`
	TotalKm        *int             `json:"total_km"`
	Amount         *decimal.Decimal `json:"amount"`
	PaidOn         *time.Time       `json:"paid_on"`
}

func (input *UpdateReportInput) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Date != nil {
		updates["date"] = input.Date
	}
	if input.KmIn != nil {
		updates["km_in"] = *input.KmIn
	}
	if input.KmOut != nil {
		updates["km_out"] = *input.KmOut
	}
	if input.Site1 != nil {
		updates["site1"] = *input.Site1
	}
	if input.ServiceReport1 != nil {
		updates["service_report1"] = *input.ServiceReport1
	}
	if input.Site2 != nil {
		updates["site2"] = *input.Site2
	}
	if input.ServiceReport2 != nil {
		updates["service_report2"] = *input.ServiceReport2
	}
	if input.Site3 != nil {
		updates["site3"] = *input.Site3
	}
	if input.Site4 != nil {
		updates["site4"] = *input.Site4
	}
	if input.ServiceReport3 != nil {
		updates["service_report3"] = *input.ServiceReport3
	}
	if input.TransportMode != nil {
		updates["transport_mode"] = *input.TransportMode
	}
	if input.TotalKm != nil {
		updates["total_km"] = *input.TotalKm
	}
	if input.Amount != nil {
		updates["amount"] = *input.Amount
	}
	if input.PaidOn != nil {
		updates["paid_on"] = input.PaidOn
	}
	return updates
}

func CreateReport(ctx context.Context, input *NewReport) (*Report, error) {
	db := config.GetDB()

	report := Report{
		Name:           input.Name,
		Date:           input.Date,
		KmIn:           input.KmIn,
		KmOut:          input.KmOut,
		Site1:          input.Site1,
		ServiceReport1: input.ServiceReport1,
		Site2:          input.Site2,
		ServiceReport2: input.ServiceReport2,
		Site3:          input.Site3,
		Site4:          input.Site4,
		ServiceReport3: input.ServiceReport3,
		TransportMode:  input.TransportMode,
		TotalKm:        input.TotalKm,
		Amount:         utils.DereferencePtr(input.Amount),
		PaidOn:         input.PaidOn,
	}

	if err := db.WithContext(ctx).Create(&report).Error; err != nil {
		config.LogError(config.GetLogger(), "report.go", "CreateReport", "create", input, err)
		return nil, errors.New("failed to create report")
	}
	return &report, nil
}

func GetReport(ctx context.Context, id int) (*Report, error) {
	db := config.GetDB()
	var result Report

	err := db.WithContext(ctx).First(&result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		config.LogError(config.GetLogger(), "report.go", "GetReport", "query", id, err)
		return nil, errors.New("failed to get report")
	}
	return &result, nil
}

func GetReportsAll(ctx context.Context, filter ReportFilter) ([]*Report, error) {
	db := config.GetDB()
	var results []*Report

	err := db.WithContext(ctx).Scopes(filter.Scope()).
		Order("date DESC, id DESC").Find(&results).Error
	if err != nil {
		config.LogError(config.GetLogger(), "report.go", "GetReportsAll", "query", filter, err)
		return nil, errors.New("failed to list reports")
	}
	return results, nil
}

func UpdateReport(ctx context.Context, id int, input *UpdateReportInput) (*Report, error) {
	db := config.GetDB()

	var report Report
	err := db.WithContext(ctx).First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		config.LogError(config.GetLogger(), "report.go", "UpdateReport", "fetch", id, err)
		return nil, errors.New("failed to update report")
	}

	updates := input.updates()
	if len(updates) == 0 {
		return &report, nil
	}

	if err := db.WithContext(ctx).Model(&report).Updates(updates).Error; err != nil {
		config.LogError(config.GetLogger(), "report.go", "UpdateReport", "updates", updates, err)
		return nil, errors.New("failed to update report")
	}
	if err := db.WithContext(ctx).First(&report, id).Error; err != nil {
		config.LogError(config.GetLogger(), "report.go", "UpdateReport", "reload", id, err)
		return nil, errors.New("failed to update report")
	}
	return &report, nil
}

// DeleteReport reports whether a row was actually removed; deleting an
// unknown id is not an error.
func DeleteReport(ctx context.Context, id int) (bool, error) {
	db := config.GetDB()

	result := db.WithContext(ctx).Delete(&Report{}, id)
	if result.Error != nil {
		config.LogError(config.GetLogger(), "report.go", "DeleteReport", "delete", id, result.Error)
		return false, errors.New("failed to delete report")
	}
	return result.RowsAffected > 0, nil
}
