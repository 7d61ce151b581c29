package models

import (
	"time"

	"gorm.io/gorm"
)

// FilterCondition is one AND-ed constraint of a list query, kept as plain
// data so filters can be built and inspected without a database handle.
type FilterCondition struct {
	Query string
	Args  []interface{}
}

func applyConditions(conds []FilterCondition) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, cond := range conds {
			db = db.Where(cond.Query, cond.Args...)
		}
		return db
	}
}

// TicketFilter narrows GetTicketsAll. Empty fields add no constraint.
type TicketFilter struct {
	Search      string
	Status      string
	ProjectType string
}

// Conditions expands the filter into AND-ed conditions. The free-text search
// is a single condition matching ticket number, site name or contact person
// as a substring (MySQL LIKE under the default ci collation).
func (f TicketFilter) Conditions() []FilterCondition {
	conds := make([]FilterCondition, 0, 3)
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conds = append(conds, FilterCondition{
			Query: "(ticket_number LIKE ? OR site_name LIKE ? OR contact_person LIKE ?)",
			Args:  []interface{}{pattern, pattern, pattern},
		})
	}
	if f.Status != "" {
		conds = append(conds, FilterCondition{Query: "status = ?", Args: []interface{}{f.Status}})
	}
	if f.ProjectType != "" {
		conds = append(conds, FilterCondition{Query: "project_type = ?", Args: []interface{}{f.ProjectType}})
	}
	return conds
}

func (f TicketFilter) Scope() func(*gorm.DB) *gorm.DB {
	return applyConditions(f.Conditions())
}

// ReportFilter narrows GetReportsAll. Empty fields add no constraint; the
// date bounds are inclusive and either may be nil.
type ReportFilter struct {
	Search   string
	FromDate *time.Time
	ToDate   *time.Time
}

func (f ReportFilter) Conditions() []FilterCondition {
	conds := make([]FilterCondition, 0, 3)
	if f.Search != "" {
		conds = append(conds, FilterCondition{
			Query: "name LIKE ?",
			Args:  []interface{}{"%" + f.Search + "%"},
		})
	}
	if f.FromDate != nil {
		conds = append(conds, FilterCondition{Query: "date >= ?", Args: []interface{}{*f.FromDate}})
	}
	if f.ToDate != nil {
		// Inclusive of the whole to-day regardless of the stored time of day.
		conds = append(conds, FilterCondition{Query: "date < ?", Args: []interface{}{f.ToDate.AddDate(0, 0, 1)}})
	}
	return conds
}

func (f ReportFilter) Scope() func(*gorm.DB) *gorm.DB {
	return applyConditions(f.Conditions())
}
