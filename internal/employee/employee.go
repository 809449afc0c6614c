package employee

// Categorical fields are stored as their human-readable values, which are
// also the values the API accepts and returns. Each type knows its own set.

type Attrition string

const (
	AttritionYes Attrition = "Yes"
	AttritionNo  Attrition = "No"
)

type BusinessTravel string

const (
	BusinessTravelNone       BusinessTravel = "Non-Travel"
	BusinessTravelRarely     BusinessTravel = "Travel_Rarely"
	BusinessTravelFrequently BusinessTravel = "Travel_Frequently"
)

type Department string

const (
	DepartmentSales          Department = "Sales"
	DepartmentHumanResources Department = "Human Resources"
	DepartmentResearchDev    Department = "Research & Development"
)

type EducationLevel string

const (
	EducationBelowCollege EducationLevel = "Below College"
	EducationCollege      EducationLevel = "College"
	EducationBachelor     EducationLevel = "Bachelor"
	EducationMaster       EducationLevel = "Master"
	EducationDoctor       EducationLevel = "Doctor"
)

type EducationField string

const (
	EducationFieldLifeSciences    EducationField = "Life Sciences"
	EducationFieldMedical         EducationField = "Medical"
	EducationFieldMarketing       EducationField = "Marketing"
	EducationFieldTechnicalDegree EducationField = "Technical Degree"
	EducationFieldHumanResources  EducationField = "Human Resources"
	EducationFieldOther           EducationField = "Other"
)

type JobRole string

const (
	JobRoleSalesExecutive    JobRole = "Sales Executive"
	JobRoleManager           JobRole = "Manager"
	JobRoleResearchScientist JobRole = "Research Scientist"
	JobRoleLabTechnician     JobRole = "Laboratory Technician"
	JobRoleManufacturingDir  JobRole = "Manufacturing Director"
	JobRoleHealthcareRep     JobRole = "Healthcare Representative"
	JobRoleSalesRep          JobRole = "Sales Representative"
	JobRoleResearchDirector  JobRole = "Research Director"
	JobRoleHumanResources    JobRole = "Human Resources"
)

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "Single"
	MaritalMarried  MaritalStatus = "Married"
	MaritalDivorced MaritalStatus = "Divorced"
)

type Overtime string

const (
	OvertimeYes Overtime = "Yes"
	OvertimeNo  Overtime = "No"
)

// SatisfactionRating covers the four-step surveys (environment satisfaction,
// job involvement, job satisfaction, relationship satisfaction, work-life
// balance).
type SatisfactionRating string

const (
	SatisfactionLow      SatisfactionRating = "Low"
	SatisfactionMedium   SatisfactionRating = "Medium"
	SatisfactionHigh     SatisfactionRating = "High"
	SatisfactionVeryHigh SatisfactionRating = "Very High"
)

type PerformanceRating string

const (
	PerformanceLow         PerformanceRating = "Low"
	PerformanceGood        PerformanceRating = "Good"
	PerformanceExcellent   PerformanceRating = "Excellent"
	PerformanceOutstanding PerformanceRating = "Outstanding"
)

type AttritionRiskClass string

const (
	RiskLow    AttritionRiskClass = "Low"
	RiskMedium AttritionRiskClass = "Medium"
	RiskHigh   AttritionRiskClass = "High"
)

var (
	attritionValues      = []string{"Yes", "No"}
	businessTravelValues = []string{"Non-Travel", "Travel_Rarely", "Travel_Frequently"}
	departmentValues     = []string{"Sales", "Human Resources", "Research & Development"}
	educationValues      = []string{"Below College", "College", "Bachelor", "Master", "Doctor"}
	educationFieldValues = []string{"Life Sciences", "Medical", "Marketing", "Technical Degree", "Human Resources", "Other"}
	jobRoleValues        = []string{
		"Sales Executive", "Manager", "Research Scientist", "Laboratory Technician",
		"Manufacturing Director", "Healthcare Representative", "Sales Representative",
		"Research Director", "Human Resources",
	}
	maritalStatusValues = []string{"Single", "Married", "Divorced"}
	overtimeValues      = []string{"Yes", "No"}
	satisfactionValues  = []string{"Low", "Medium", "High", "Very High"}
	performanceValues   = []string{"Low", "Good", "Excellent", "Outstanding"}
	riskClassValues     = []string{"Low", "Medium", "High"}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (v Attrition) IsValid() bool          { return contains(attritionValues, string(v)) }
func (v BusinessTravel) IsValid() bool     { return contains(businessTravelValues, string(v)) }
func (v Department) IsValid() bool         { return contains(departmentValues, string(v)) }
func (v EducationLevel) IsValid() bool     { return contains(educationValues, string(v)) }
func (v EducationField) IsValid() bool     { return contains(educationFieldValues, string(v)) }
func (v JobRole) IsValid() bool            { return contains(jobRoleValues, string(v)) }
func (v MaritalStatus) IsValid() bool      { return contains(maritalStatusValues, string(v)) }
func (v Overtime) IsValid() bool           { return contains(overtimeValues, string(v)) }
func (v SatisfactionRating) IsValid() bool { return contains(satisfactionValues, string(v)) }
func (v PerformanceRating) IsValid() bool  { return contains(performanceValues, string(v)) }
func (v AttritionRiskClass) IsValid() bool { return contains(riskClassValues, string(v)) }

// Employee is a flat record with no relations to other entities.
type Employee struct {
	ID string `json:"id" gorm:"primaryKey;column:id"`

	Attrition     Attrition     `json:"attrition" gorm:"column:attrition"`
	Age           int           `json:"age" gorm:"column:age"`
	Gender        string        `json:"gender" gorm:"column:gender"`
	MaritalStatus MaritalStatus `json:"maritalStatus" gorm:"column:marital_status"`

	DistanceFromHome  int `json:"distanceFromHome" gorm:"column:distance_from_home"`
	MonthlyIncome     int `json:"monthlyIncome" gorm:"column:monthly_income"`
	PercentSalaryHike int `json:"percentSalaryHike" gorm:"column:percent_salary_hike"`

	JobLevel       int            `json:"jobLevel" gorm:"column:job_level"`
	JobRole        JobRole        `json:"jobRole" gorm:"column:job_role"`
	BusinessTravel BusinessTravel `json:"businessTravel" gorm:"column:business_travel"`
	Department     Department     `json:"department" gorm:"column:department"`
	Education      EducationLevel `json:"education" gorm:"column:education"`
	EducationField EducationField `json:"educationField" gorm:"column:education_field"`

	NumCompaniesWorked       int `json:"numCompaniesWorked" gorm:"column:num_companies_worked"`
	TotalWorkingYears        int `json:"totalWorkingYears" gorm:"column:total_working_years"`
	TrainingTimesLastYear    int `json:"trainingTimesLastYear" gorm:"column:training_times_last_year"`
	TrainingHoursLastYear    int `json:"trainingHoursLastYear" gorm:"column:training_hours_last_year"`
	TrainingHoursLast6Months int `json:"trainingHoursLast6Months" gorm:"column:training_hours_last6_months"`
	TrainingGapScore         int `json:"trainingGapScore" gorm:"column:training_gap_score"`

	YearsAtCompany          int `json:"yearsAtCompany" gorm:"column:years_at_company"`
	YearsInCurrentRole      int `json:"yearsInCurrentRole" gorm:"column:years_in_current_role"`
	YearsSinceLastPromotion int `json:"yearsSinceLastPromotion" gorm:"column:years_since_last_promotion"`
	YearsWithCurrManager    int `json:"yearsWithCurrManager" gorm:"column:years_with_curr_manager"`

	EnvironmentSatisfaction  SatisfactionRating `json:"environmentSatisfaction" gorm:"column:environment_satisfaction"`
	JobInvolvement           SatisfactionRating `json:"jobInvolvement" gorm:"column:job_involvement"`
	JobSatisfaction          SatisfactionRating `json:"jobSatisfaction" gorm:"column:job_satisfaction"`
	PerformanceRating        PerformanceRating  `json:"performanceRating" gorm:"column:performance_rating"`
	RelationshipSatisfaction SatisfactionRating `json:"relationshipSatisfaction" gorm:"column:relationship_satisfaction"`
	WorkLifeBalance          SatisfactionRating `json:"workLifeBalance" gorm:"column:work_life_balance"`
	Overtime                 Overtime           `json:"overTime" gorm:"column:over_time"`

	AbsenceDaysLastMonth   int     `json:"absenceDaysLastMonth" gorm:"column:absence_days_last_month"`
	AbsenceDaysLast3Months int     `json:"absenceDaysLast3Months" gorm:"column:absence_days_last3_months"`
	AbsenceRatio           float64 `json:"absenceRatio" gorm:"column:absence_ratio"`
	LateArrivalsLastMonth  int     `json:"lateArrivalsLastMonth" gorm:"column:late_arrivals_last_month"`
	OvertimeHoursLastMonth float64 `json:"overtimeHoursLastMonth" gorm:"column:overtime_hours_last_month"`

	WorkloadPressureIndex int     `json:"workloadPressureIndex" gorm:"column:workload_pressure_index"`
	EngagementScore       int     `json:"engagementScore" gorm:"column:engagement_score"`
	ManagerFeedbackScore  int     `json:"managerFeedbackScore" gorm:"column:manager_feedback_score"`
	RoleStabilityRatio    float64 `json:"roleStabilityRatio" gorm:"column:role_stability_ratio"`

	AttritionRiskClass AttritionRiskClass `json:"attritionRiskClass" gorm:"column:attrition_risk_class"`
}

func (Employee) TableName() string {
	return "employees"
}
