package cmd

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hrsuite/hr-management/internal/employee"
	"github.com/hrsuite/hr-management/internal/user"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
	seedEmployeesCSV  string
	clearData         bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a bootstrap admin and optional employee data",
	Long:  `Creates the first SUPER_ADMIN account and, when --employees-csv is given, imports the HR analytics dataset.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		seedSuperAdmin(gormDB, cfg.Security.BCryptCost)

		if seedEmployeesCSV != "" {
			seedEmployees(gormDB, seedEmployeesCSV)
		}
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "admin@localhost", "email of the bootstrap super admin")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "changeme", "password of the bootstrap super admin")
	seedCmd.Flags().StringVar(&seedEmployeesCSV, "employees-csv", "", "path to an HR analytics CSV to import")
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing employee data before seeding")
}

// seedSuperAdmin inserts the first SUPER_ADMIN, already verified so it can
// sign in without an email round trip. Idempotent on email.
func seedSuperAdmin(db *gorm.DB, cost int) {
	var count int64
	if err := db.Model(&user.User{}).Where("email = ?", seedAdminEmail).Count(&count).Error; err != nil {
		log.Fatalf("failed to check for existing admin: %v", err)
	}
	if count > 0 {
		fmt.Println("super admin already exists:", seedAdminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), cost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := user.User{
		ID:            uuid.NewString(),
		Name:          "Super Admin",
		Email:         seedAdminEmail,
		PasswordHash:  string(hash),
		Role:          user.RoleSuperAdmin,
		ApprovalState: user.ApprovalVerified,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to insert super admin: %v", err)
	}

	fmt.Println("seeded super admin:", seedAdminEmail)
}

// seedEmployees imports the HR analytics dataset. The CSV carries the survey
// ratings as 1-4 codes and education as a 1-5 code; everything else already
// uses the stored string values.
func seedEmployees(db *gorm.DB, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	if len(records) < 2 {
		log.Fatalf("%s holds no data rows", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}

	if clearData {
		if err := db.Exec("DELETE FROM employees").Error; err != nil {
			log.Fatalf("failed to clear employees: %v", err)
		}
		fmt.Println("cleared existing employee data")
	}

	employees := make([]employee.Employee, 0, len(records)-1)
	for i, row := range records[1:] {
		emp, err := employeeFromRow(col, row, i+2)
		if err != nil {
			log.Fatalf("failed to parse %s: %v", path, err)
		}
		employees = append(employees, emp)
	}

	if err := db.CreateInBatches(employees, 200).Error; err != nil {
		log.Fatalf("failed to insert employees: %v", err)
	}

	fmt.Printf("imported %d employee records\n", len(employees))
}

// employeeFromRow maps one CSV record onto an employee. rowNum is the 1-based
// line number, used in error messages; a header name absent from col or a row
// too short for a referenced column fails the import rather than reading the
// wrong cell.
func employeeFromRow(col map[string]int, row []string, rowNum int) (employee.Employee, error) {
	var parseErr error
	get := func(name string) string {
		if parseErr != nil {
			return ""
		}
		idx, ok := col[name]
		if !ok {
			parseErr = fmt.Errorf("missing column %q", name)
			return ""
		}
		if idx >= len(row) {
			parseErr = fmt.Errorf("row %d has no value for column %q", rowNum, name)
			return ""
		}
		return row[idx]
	}
	atoi := func(name string) int {
		v, _ := strconv.Atoi(get(name))
		return v
	}
	atof := func(name string) float64 {
		v, _ := strconv.ParseFloat(get(name), 64)
		return v
	}

	emp := employee.Employee{
		ID:                       uuid.NewString(),
		Attrition:                employee.Attrition(get("attrition")),
		Age:                      atoi("age"),
		Gender:                   get("gender"),
		MaritalStatus:            employee.MaritalStatus(get("marital_status")),
		DistanceFromHome:         atoi("distance_from_home"),
		MonthlyIncome:            atoi("monthly_income"),
		PercentSalaryHike:        atoi("percent_salary_hike"),
		JobLevel:                 atoi("job_level"),
		JobRole:                  employee.JobRole(get("job_role")),
		BusinessTravel:           employee.BusinessTravel(get("business_travel")),
		Department:               employee.Department(get("department")),
		Education:                educationFromCode(atoi("education")),
		EducationField:           employee.EducationField(get("education_field")),
		NumCompaniesWorked:       atoi("num_companies_worked"),
		TotalWorkingYears:        atoi("total_working_years"),
		TrainingTimesLastYear:    atoi("training_times_last_year"),
		TrainingHoursLastYear:    atoi("training_hours_last_year"),
		TrainingHoursLast6Months: atoi("training_hours_last_6_months"),
		TrainingGapScore:         atoi("training_gap_score"),
		YearsAtCompany:           atoi("years_at_company"),
		YearsInCurrentRole:       atoi("years_in_current_role"),
		YearsSinceLastPromotion:  atoi("years_since_last_promotion"),
		YearsWithCurrManager:     atoi("years_with_curr_manager"),
		EnvironmentSatisfaction:  satisfactionFromCode(atoi("environment_satisfaction")),
		JobInvolvement:           satisfactionFromCode(atoi("job_involvement")),
		JobSatisfaction:          satisfactionFromCode(atoi("job_satisfaction")),
		PerformanceRating:        performanceFromCode(atoi("performance_rating")),
		RelationshipSatisfaction: satisfactionFromCode(atoi("relationship_satisfaction")),
		WorkLifeBalance:          satisfactionFromCode(atoi("work_life_balance")),
		Overtime:                 employee.Overtime(get("over_time")),
		AbsenceDaysLastMonth:     atoi("absence_days_last_month"),
		AbsenceDaysLast3Months:   atoi("absence_days_last_3_months"),
		AbsenceRatio:             atof("absence_ratio"),
		LateArrivalsLastMonth:    atoi("late_arrivals_last_month"),
		OvertimeHoursLastMonth:   atof("overtime_hours_last_month"),
		WorkloadPressureIndex:    atoi("workload_pressure_index"),
		EngagementScore:          atoi("engagement_score"),
		ManagerFeedbackScore:     atoi("manager_feedback_score"),
		RoleStabilityRatio:       atof("role_stability_ratio"),
		AttritionRiskClass:       employee.AttritionRiskClass(get("attrition_risk_class")),
	}
	if parseErr != nil {
		return employee.Employee{}, parseErr
	}
	return emp, nil
}

func satisfactionFromCode(code int) employee.SatisfactionRating {
	switch code {
	case 1:
		return employee.SatisfactionLow
	case 2:
		return employee.SatisfactionMedium
	case 3:
		return employee.SatisfactionHigh
	case 4:
		return employee.SatisfactionVeryHigh
	default:
		return employee.SatisfactionMedium
	}
}

func performanceFromCode(code int) employee.PerformanceRating {
	switch code {
	case 1:
		return employee.PerformanceLow
	case 2:
		return employee.PerformanceGood
	case 3:
		return employee.PerformanceExcellent
	case 4:
		return employee.PerformanceOutstanding
	default:
		return employee.PerformanceExcellent
	}
}

func educationFromCode(code int) employee.EducationLevel {
	switch code {
	case 1:
		return employee.EducationBelowCollege
	case 2:
		return employee.EducationCollege
	case 3:
		return employee.EducationBachelor
	case 4:
		return employee.EducationMaster
	case 5:
		return employee.EducationDoctor
	default:
		return employee.EducationBachelor
	}
}
