package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/employee"
)

// EmployeeRepository implements the employee.Repository interface using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

// applyFilters renders the predicate. Column names come from the query
// builder's whitelists, never from the request, so interpolating them into
// the condition text is safe; values are always bound.
func applyFilters(tx *gorm.DB, filters []employee.FilterSpec) *gorm.DB {
	for _, f := range filters {
		tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value)
	}
	return tx
}

// List returns one page plus the total count of the same predicate.
func (r *EmployeeRepository) List(ctx context.Context, query *employee.ListQuery) ([]employee.Employee, int64, error) {
	var total int64
	err := applyFilters(r.db.WithContext(ctx).Model(&employee.Employee{}), query.Filters).
		Count(&total).Error
	if err != nil {
		return nil, 0, internal.NewInternalError("failed to count employees", err)
	}

	var rows []employee.Employee
	err = applyFilters(r.db.WithContext(ctx).Model(&employee.Employee{}), query.Filters).
		Order(strings.Join(query.OrderClauses(), ", ")).
		Offset(query.Skip).
		Limit(query.Take).
		Find(&rows).Error
	if err != nil {
		return nil, 0, internal.NewInternalError("failed to list employees", err)
	}

	return rows, total, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	if err := r.db.WithContext(ctx).Create(emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrEmployeeExists
		}
		return internal.NewInternalError("failed to create employee", err)
	}
	return nil
}

// Update replaces every column of the row. Save with a full struct writes
// zero values too, which is what a full-record PUT wants.
func (r *EmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	result := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", emp.ID).
		Select("*").
		Omit("id").
		Updates(emp)
	if result.Error != nil {
		return internal.NewInternalError("failed to update employee", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&employee.Employee{})
	if result.Error != nil {
		return internal.NewInternalError("failed to delete employee", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

type statsAggRow struct {
	GroupValue    string
	Count         int64
	AvgIncome     float64
	AvgAge        float64
	AvgTenure     float64
	AvgEngagement float64
	AvgWorkload   float64
}

// Stats groups the whole table by the given column and averages the numeric
// metrics per bucket. groupColumn is whitelisted by the caller.
func (r *EmployeeRepository) Stats(ctx context.Context, groupColumn string) ([]employee.StatsRow, error) {
	selects := fmt.Sprintf(
		"%s AS group_value, "+
			"COUNT(id) AS count, "+
			"COALESCE(AVG(monthly_income), 0) AS avg_income, "+
			"COALESCE(AVG(age), 0) AS avg_age, "+
			"COALESCE(AVG(years_at_company), 0) AS avg_tenure, "+
			"COALESCE(AVG(engagement_score), 0) AS avg_engagement, "+
			"COALESCE(AVG(workload_pressure_index), 0) AS avg_workload",
		groupColumn)

	var aggs []statsAggRow
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Select(selects).
		Group(groupColumn).
		Order(groupColumn + " ASC").
		Scan(&aggs).Error
	if err != nil {
		return nil, internal.NewInternalError("failed to aggregate employees", err)
	}

	rows := make([]employee.StatsRow, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, employee.StatsRow{
			Group:         a.GroupValue,
			Count:         a.Count,
			AverageSalary: int(math.Round(a.AvgIncome)),
			AverageAge:    int(math.Round(a.AvgAge)),
			AverageTenure: round1(a.AvgTenure),
			AvgEngagement: round1(a.AvgEngagement),
			AvgWorkload:   round1(a.AvgWorkload),
		})
	}
	return rows, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
