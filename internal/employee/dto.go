package employee

import (
	"fmt"

	"github.com/hrsuite/hr-management/internal"
)

// EmployeeAttributes is the writable surface of an employee record, shared by
// create and update requests. Every field is required.
type EmployeeAttributes struct {
	Attrition     Attrition     `json:"attrition"`
	Age           int           `json:"age"`
	Gender        string        `json:"gender"`
	MaritalStatus MaritalStatus `json:"maritalStatus"`

	DistanceFromHome  int `json:"distanceFromHome"`
	MonthlyIncome     int `json:"monthlyIncome"`
	PercentSalaryHike int `json:"percentSalaryHike"`

	JobLevel       int            `json:"jobLevel"`
	JobRole        JobRole        `json:"jobRole"`
	BusinessTravel BusinessTravel `json:"businessTravel"`
	Department     Department     `json:"department"`
	Education      EducationLevel `json:"education"`
	EducationField EducationField `json:"educationField"`

	NumCompaniesWorked       int `json:"numCompaniesWorked"`
	TotalWorkingYears        int `json:"totalWorkingYears"`
	TrainingTimesLastYear    int `json:"trainingTimesLastYear"`
	TrainingHoursLastYear    int `json:"trainingHoursLastYear"`
	TrainingHoursLast6Months int `json:"trainingHoursLast6Months"`
	TrainingGapScore         int `json:"trainingGapScore"`

	YearsAtCompany          int `json:"yearsAtCompany"`
	YearsInCurrentRole      int `json:"yearsInCurrentRole"`
	YearsSinceLastPromotion int `json:"yearsSinceLastPromotion"`
	YearsWithCurrManager    int `json:"yearsWithCurrManager"`

	EnvironmentSatisfaction  SatisfactionRating `json:"environmentSatisfaction"`
	JobInvolvement           SatisfactionRating `json:"jobInvolvement"`
	JobSatisfaction          SatisfactionRating `json:"jobSatisfaction"`
	PerformanceRating        PerformanceRating  `json:"performanceRating"`
	RelationshipSatisfaction SatisfactionRating `json:"relationshipSatisfaction"`
	WorkLifeBalance          SatisfactionRating `json:"workLifeBalance"`
	Overtime                 Overtime           `json:"overTime"`

	AbsenceDaysLastMonth   int     `json:"absenceDaysLastMonth"`
	AbsenceDaysLast3Months int     `json:"absenceDaysLast3Months"`
	AbsenceRatio           float64 `json:"absenceRatio"`
	LateArrivalsLastMonth  int     `json:"lateArrivalsLastMonth"`
	OvertimeHoursLastMonth float64 `json:"overtimeHoursLastMonth"`

	WorkloadPressureIndex int     `json:"workloadPressureIndex"`
	EngagementScore       int     `json:"engagementScore"`
	ManagerFeedbackScore  int     `json:"managerFeedbackScore"`
	RoleStabilityRatio    float64 `json:"roleStabilityRatio"`

	AttritionRiskClass AttritionRiskClass `json:"attritionRiskClass"`
}

// Validate rejects any categorical value outside its fixed set and a handful
// of structurally impossible numbers. No invariant couples fields to each
// other.
func (a *EmployeeAttributes) Validate() *internal.AppError {
	checks := []struct {
		field string
		ok    bool
	}{
		{"attrition", a.Attrition.IsValid()},
		{"maritalStatus", a.MaritalStatus.IsValid()},
		{"jobRole", a.JobRole.IsValid()},
		{"businessTravel", a.BusinessTravel.IsValid()},
		{"department", a.Department.IsValid()},
		{"education", a.Education.IsValid()},
		{"educationField", a.EducationField.IsValid()},
		{"environmentSatisfaction", a.EnvironmentSatisfaction.IsValid()},
		{"jobInvolvement", a.JobInvolvement.IsValid()},
		{"jobSatisfaction", a.JobSatisfaction.IsValid()},
		{"performanceRating", a.PerformanceRating.IsValid()},
		{"relationshipSatisfaction", a.RelationshipSatisfaction.IsValid()},
		{"workLifeBalance", a.WorkLifeBalance.IsValid()},
		{"overTime", a.Overtime.IsValid()},
		{"attritionRiskClass", a.AttritionRiskClass.IsValid()},
	}
	for _, c := range checks {
		if !c.ok {
			return internal.NewValidationFieldError(c.field,
				fmt.Sprintf("invalid value for %s", c.field),
				internal.ErrCodeInvalidEnumValue)
		}
	}

	if a.Gender == "" {
		return internal.NewValidationFieldError("gender", "gender is required",
			internal.ErrCodeValidationFailed)
	}
	if a.Age <= 0 {
		return internal.NewValidationFieldError("age", "age must be positive",
			internal.ErrCodeValidationFailed)
	}

	return nil
}

func (a *EmployeeAttributes) toEmployee(id string) *Employee {
	return &Employee{
		ID:                       id,
		Attrition:                a.Attrition,
		Age:                      a.Age,
		Gender:                   a.Gender,
		MaritalStatus:            a.MaritalStatus,
		DistanceFromHome:         a.DistanceFromHome,
		MonthlyIncome:            a.MonthlyIncome,
		PercentSalaryHike:        a.PercentSalaryHike,
		JobLevel:                 a.JobLevel,
		JobRole:                  a.JobRole,
		BusinessTravel:           a.BusinessTravel,
		Department:               a.Department,
		Education:                a.Education,
		EducationField:           a.EducationField,
		NumCompaniesWorked:       a.NumCompaniesWorked,
		TotalWorkingYears:        a.TotalWorkingYears,
		TrainingTimesLastYear:    a.TrainingTimesLastYear,
		TrainingHoursLastYear:    a.TrainingHoursLastYear,
		TrainingHoursLast6Months: a.TrainingHoursLast6Months,
		TrainingGapScore:         a.TrainingGapScore,
		YearsAtCompany:           a.YearsAtCompany,
		YearsInCurrentRole:       a.YearsInCurrentRole,
		YearsSinceLastPromotion:  a.YearsSinceLastPromotion,
		YearsWithCurrManager:     a.YearsWithCurrManager,
		EnvironmentSatisfaction:  a.EnvironmentSatisfaction,
		JobInvolvement:           a.JobInvolvement,
		JobSatisfaction:          a.JobSatisfaction,
		PerformanceRating:        a.PerformanceRating,
		RelationshipSatisfaction: a.RelationshipSatisfaction,
		WorkLifeBalance:          a.WorkLifeBalance,
		Overtime:                 a.Overtime,
		AbsenceDaysLastMonth:     a.AbsenceDaysLastMonth,
		AbsenceDaysLast3Months:   a.AbsenceDaysLast3Months,
		AbsenceRatio:             a.AbsenceRatio,
		LateArrivalsLastMonth:    a.LateArrivalsLastMonth,
		OvertimeHoursLastMonth:   a.OvertimeHoursLastMonth,
		WorkloadPressureIndex:    a.WorkloadPressureIndex,
		EngagementScore:          a.EngagementScore,
		ManagerFeedbackScore:     a.ManagerFeedbackScore,
		RoleStabilityRatio:       a.RoleStabilityRatio,
		AttritionRiskClass:       a.AttritionRiskClass,
	}
}

// CreateEmployeeDTO carries a full record without an id; the server assigns
// one.
type CreateEmployeeDTO struct {
	EmployeeAttributes
}

// UpdateEmployeeDTO is a full-record replacement; the id travels in the body.
type UpdateEmployeeDTO struct {
	ID string `json:"id"`
	EmployeeAttributes
}

func (d *UpdateEmployeeDTO) Validate() *internal.AppError {
	if d.ID == "" {
		return internal.NewValidationFieldError("id", "id is required",
			internal.ErrCodeValidationFailed)
	}
	return d.EmployeeAttributes.Validate()
}

// ListMeta echoes the pagination window alongside the total match count.
type ListMeta struct {
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Take  int   `json:"take"`
}

type ListResponse struct {
	Data []Employee `json:"data"`
	Meta ListMeta   `json:"meta"`
}

// StatsRow is one aggregation bucket. Salary and age are rounded to whole
// numbers; the remaining averages keep one decimal.
type StatsRow struct {
	Group         string  `json:"group"`
	Count         int64   `json:"count"`
	AverageSalary int     `json:"averageSalary"`
	AverageAge    int     `json:"averageAge"`
	AverageTenure float64 `json:"averageTenure"`
	AvgEngagement float64 `json:"avgEngagement"`
	AvgWorkload   float64 `json:"avgWorkload"`
}
