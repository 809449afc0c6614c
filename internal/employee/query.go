package employee

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/hrsuite/hr-management/internal"
)

const (
	defaultTake = 10
	maxTake     = 100
)

// Op is a comparison operator in a filter predicate.
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// FilterSpec is one column predicate. The query layer renders it as
// "column op ?" with Value bound as the argument; nothing user-supplied ever
// reaches the SQL text.
type FilterSpec struct {
	Column string
	Op     Op
	Value  interface{}
}

// ListQuery is a fully validated list request: a conjunction of filters, a
// pagination window and an ordering.
type ListQuery struct {
	Filters  []FilterSpec
	Skip     int
	Take     int
	SortBy   string // column name, empty means unsorted beyond the id tiebreak
	SortDesc bool
}

// OrderClauses returns the ORDER BY terms. The trailing id ascending term is
// always present so pages stay disjoint when the sort column has duplicates.
func (q *ListQuery) OrderClauses() []string {
	clauses := make([]string, 0, 2)
	if q.SortBy != "" {
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		clauses = append(clauses, q.SortBy+" "+dir)
	}
	return append(clauses, "id ASC")
}

type enumFilter struct {
	column string
	valid  func(string) bool
}

// enumFilters maps query parameter names to columns with their value sets.
// gender has no fixed set and matches exactly as given.
var enumFilters = map[string]enumFilter{
	"attrition":                {"attrition", func(s string) bool { return Attrition(s).IsValid() }},
	"businessTravel":           {"business_travel", func(s string) bool { return BusinessTravel(s).IsValid() }},
	"department":               {"department", func(s string) bool { return Department(s).IsValid() }},
	"education":                {"education", func(s string) bool { return EducationLevel(s).IsValid() }},
	"educationField":           {"education_field", func(s string) bool { return EducationField(s).IsValid() }},
	"jobRole":                  {"job_role", func(s string) bool { return JobRole(s).IsValid() }},
	"maritalStatus":            {"marital_status", func(s string) bool { return MaritalStatus(s).IsValid() }},
	"overTime":                 {"over_time", func(s string) bool { return Overtime(s).IsValid() }},
	"attritionRiskClass":       {"attrition_risk_class", func(s string) bool { return AttritionRiskClass(s).IsValid() }},
	"gender":                   {"gender", func(string) bool { return true }},
	"environmentSatisfaction":  {"environment_satisfaction", func(s string) bool { return SatisfactionRating(s).IsValid() }},
	"jobInvolvement":           {"job_involvement", func(s string) bool { return SatisfactionRating(s).IsValid() }},
	"jobSatisfaction":          {"job_satisfaction", func(s string) bool { return SatisfactionRating(s).IsValid() }},
	"performanceRating":        {"performance_rating", func(s string) bool { return PerformanceRating(s).IsValid() }},
	"relationshipSatisfaction": {"relationship_satisfaction", func(s string) bool { return SatisfactionRating(s).IsValid() }},
	"workLifeBalance":          {"work_life_balance", func(s string) bool { return SatisfactionRating(s).IsValid() }},
}

type rangeField struct {
	column string
	float  bool
}

// rangeFields maps the capitalized stem of min<Stem>/max<Stem> parameter
// pairs to columns.
var rangeFields = map[string]rangeField{
	"Age":                      {"age", false},
	"JobLevel":                 {"job_level", false},
	"MonthlyIncome":            {"monthly_income", false},
	"PercentSalaryHike":        {"percent_salary_hike", false},
	"TotalWorkingYears":        {"total_working_years", false},
	"NumCompaniesWorked":       {"num_companies_worked", false},
	"YearsAtCompany":           {"years_at_company", false},
	"YearsInCurrentRole":       {"years_in_current_role", false},
	"YearsSinceLastPromotion":  {"years_since_last_promotion", false},
	"YearsWithCurrManager":     {"years_with_curr_manager", false},
	"TrainingTimesLastYear":    {"training_times_last_year", false},
	"TrainingHoursLastYear":    {"training_hours_last_year", false},
	"TrainingHoursLast6Months": {"training_hours_last6_months", false},
	"TrainingGapScore":         {"training_gap_score", false},
	"DistanceFromHome":         {"distance_from_home", false},
	"AbsenceDaysLastMonth":     {"absence_days_last_month", false},
	"AbsenceDaysLast3Months":   {"absence_days_last3_months", false},
	"AbsenceRatio":             {"absence_ratio", true},
	"LateArrivalsLastMonth":    {"late_arrivals_last_month", false},
	"OvertimeHoursLastMonth":   {"overtime_hours_last_month", true},
	"WorkloadPressureIndex":    {"workload_pressure_index", false},
	"EngagementScore":          {"engagement_score", false},
	"ManagerFeedbackScore":     {"manager_feedback_score", false},
	"RoleStabilityRatio":       {"role_stability_ratio", true},
}

// sortColumns whitelists sortBy values. Keys are the API field names, values
// the database columns; anything else is rejected rather than passed through.
var sortColumns = map[string]string{
	"id":                       "id",
	"age":                      "age",
	"gender":                   "gender",
	"attrition":                "attrition",
	"maritalStatus":            "marital_status",
	"distanceFromHome":         "distance_from_home",
	"monthlyIncome":            "monthly_income",
	"percentSalaryHike":        "percent_salary_hike",
	"jobLevel":                 "job_level",
	"jobRole":                  "job_role",
	"businessTravel":           "business_travel",
	"department":               "department",
	"education":                "education",
	"educationField":           "education_field",
	"numCompaniesWorked":       "num_companies_worked",
	"totalWorkingYears":        "total_working_years",
	"trainingTimesLastYear":    "training_times_last_year",
	"trainingHoursLastYear":    "training_hours_last_year",
	"trainingHoursLast6Months": "training_hours_last6_months",
	"trainingGapScore":         "training_gap_score",
	"yearsAtCompany":           "years_at_company",
	"yearsInCurrentRole":       "years_in_current_role",
	"yearsSinceLastPromotion":  "years_since_last_promotion",
	"yearsWithCurrManager":     "years_with_curr_manager",
	"environmentSatisfaction":  "environment_satisfaction",
	"jobInvolvement":           "job_involvement",
	"jobSatisfaction":          "job_satisfaction",
	"performanceRating":        "performance_rating",
	"relationshipSatisfaction": "relationship_satisfaction",
	"workLifeBalance":          "work_life_balance",
	"overTime":                 "over_time",
	"absenceDaysLastMonth":     "absence_days_last_month",
	"absenceDaysLast3Months":   "absence_days_last3_months",
	"absenceRatio":             "absence_ratio",
	"lateArrivalsLastMonth":    "late_arrivals_last_month",
	"overtimeHoursLastMonth":   "overtime_hours_last_month",
	"workloadPressureIndex":    "workload_pressure_index",
	"engagementScore":          "engagement_score",
	"managerFeedbackScore":     "manager_feedback_score",
	"roleStabilityRatio":       "role_stability_ratio",
	"attritionRiskClass":       "attrition_risk_class",
}

// ParseListQuery validates raw query parameters into a ListQuery. Unknown
// parameters are ignored; known parameters with bad values are rejected.
func ParseListQuery(values url.Values) (*ListQuery, error) {
	q := &ListQuery{
		Skip: 0,
		Take: defaultTake,
	}

	if raw := values.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, internal.NewValidationFieldError("skip",
				"skip must be a non-negative integer", internal.ErrCodeValidationFailed)
		}
		q.Skip = n
	}

	if raw := values.Get("take"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxTake {
			return nil, internal.NewValidationFieldError("take",
				fmt.Sprintf("take must be an integer between 1 and %d", maxTake),
				internal.ErrCodeValidationFailed)
		}
		q.Take = n
	}

	if raw := values.Get("sortBy"); raw != "" {
		column, ok := sortColumns[raw]
		if !ok {
			return nil, internal.NewValidationFieldError("sortBy",
				fmt.Sprintf("cannot sort by %q", raw), internal.ErrCodeInvalidSortField)
		}
		q.SortBy = column
	}

	switch order := values.Get("sortOrder"); order {
	case "", "asc":
	case "desc":
		q.SortDesc = true
	default:
		return nil, internal.NewValidationFieldError("sortOrder",
			"sortOrder must be asc or desc", internal.ErrCodeValidationFailed)
	}

	for param, spec := range enumFilters {
		raw := values.Get(param)
		if raw == "" {
			continue
		}
		if !spec.valid(raw) {
			return nil, internal.NewValidationFieldError(param,
				fmt.Sprintf("invalid value for %s: %q", param, raw),
				internal.ErrCodeInvalidEnumValue)
		}
		q.Filters = append(q.Filters, FilterSpec{Column: spec.column, Op: OpEq, Value: raw})
	}

	for stem, spec := range rangeFields {
		if err := q.appendRange(values, "min"+stem, spec, OpGte); err != nil {
			return nil, err
		}
		if err := q.appendRange(values, "max"+stem, spec, OpLte); err != nil {
			return nil, err
		}
	}

	return q, nil
}

func (q *ListQuery) appendRange(values url.Values, param string, spec rangeField, op Op) error {
	raw := values.Get(param)
	if raw == "" {
		return nil
	}

	if spec.float {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return internal.NewValidationFieldError(param,
				fmt.Sprintf("%s must be a number", param), internal.ErrCodeValidationFailed)
		}
		q.Filters = append(q.Filters, FilterSpec{Column: spec.column, Op: op, Value: v})
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return internal.NewValidationFieldError(param,
			fmt.Sprintf("%s must be an integer", param), internal.ErrCodeValidationFailed)
	}
	q.Filters = append(q.Filters, FilterSpec{Column: spec.column, Op: op, Value: v})
	return nil
}

// statsGroupColumns whitelists the groupBy parameter for the aggregation
// endpoint.
var statsGroupColumns = map[string]string{
	"department":         "department",
	"jobRole":            "job_role",
	"educationField":     "education_field",
	"attritionRiskClass": "attrition_risk_class",
}

// ParseGroupBy resolves the stats grouping field to its column, rejecting
// anything outside the whitelist.
func ParseGroupBy(raw string) (string, error) {
	if raw == "" {
		return "", internal.NewValidationFieldError("groupBy",
			"groupBy is required", internal.ErrCodeInvalidGroupBy)
	}
	column, ok := statsGroupColumns[raw]
	if !ok {
		keys := make([]string, 0, len(statsGroupColumns))
		for k := range statsGroupColumns {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", internal.NewValidationFieldError("groupBy",
			fmt.Sprintf("cannot group by %q, allowed fields: %s", raw, strings.Join(keys, ", ")),
			internal.ErrCodeInvalidGroupBy)
	}
	return column, nil
}
