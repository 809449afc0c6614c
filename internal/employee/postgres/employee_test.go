package postgres

import (
	"context"
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/employee"
)

func TestEmployeePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Repository Suite")
}

var _ = Describe("EmployeeRepository", func() {
	var (
		db   *gorm.DB
		repo employee.Repository
		ctx  context.Context
	)

	newEmployee := func(id string) *employee.Employee {
		return &employee.Employee{
			ID:                 id,
			Attrition:          employee.AttritionNo,
			Age:                30,
			Gender:             "Male",
			MaritalStatus:      employee.MaritalSingle,
			MonthlyIncome:      5000,
			JobLevel:           2,
			JobRole:            employee.JobRoleLabTechnician,
			BusinessTravel:     employee.BusinessTravelRarely,
			Department:         employee.DepartmentResearchDev,
			Education:          employee.EducationBachelor,
			EducationField:     employee.EducationFieldMedical,
			Overtime:           employee.OvertimeNo,
			YearsAtCompany:     5,
			EngagementScore:    70,
			AttritionRiskClass: employee.RiskLow,
		}
	}

	create := func(id string, mutate func(*employee.Employee)) {
		e := newEmployee(id)
		if mutate != nil {
			mutate(e)
		}
		Expect(repo.Create(ctx, e)).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&employee.Employee{})).To(Succeed())

		repo = NewEmployeeRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("List", func() {
		It("counts all matches while returning only the requested page", func() {
			for i := 0; i < 15; i++ {
				create(fmt.Sprintf("e%02d", i), nil)
			}

			rows, total, err := repo.List(ctx, &employee.ListQuery{Skip: 0, Take: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(15)))
			Expect(rows).To(HaveLen(10))
		})

		It("keeps pages disjoint when the sort column has duplicates", func() {
			// every row shares the same age so only the id tiebreak
			// separates the pages
			for i := 0; i < 6; i++ {
				create(fmt.Sprintf("e%02d", i), nil)
			}
			query := func(skip int) *employee.ListQuery {
				return &employee.ListQuery{Skip: skip, Take: 3, SortBy: "age"}
			}

			first, _, err := repo.List(ctx, query(0))
			Expect(err).NotTo(HaveOccurred())
			second, _, err := repo.List(ctx, query(3))
			Expect(err).NotTo(HaveOccurred())

			seen := map[string]bool{}
			for _, e := range append(first, second...) {
				Expect(seen[e.ID]).To(BeFalse())
				seen[e.ID] = true
			}
			Expect(seen).To(HaveLen(6))
		})

		It("sorts descending when asked", func() {
			create("e1", func(e *employee.Employee) { e.MonthlyIncome = 3000 })
			create("e2", func(e *employee.Employee) { e.MonthlyIncome = 9000 })
			create("e3", func(e *employee.Employee) { e.MonthlyIncome = 6000 })

			rows, _, err := repo.List(ctx, &employee.ListQuery{
				Take: 10, SortBy: "monthly_income", SortDesc: true,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].ID).To(Equal("e2"))
			Expect(rows[1].ID).To(Equal("e3"))
			Expect(rows[2].ID).To(Equal("e1"))
		})

		It("applies equality filters", func() {
			create("e1", func(e *employee.Employee) { e.Department = employee.DepartmentSales })
			create("e2", nil)

			rows, total, err := repo.List(ctx, &employee.ListQuery{
				Take: 10,
				Filters: []employee.FilterSpec{
					{Column: "department", Op: employee.OpEq, Value: "Sales"},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(rows[0].ID).To(Equal("e1"))
		})

		It("treats range bounds as inclusive", func() {
			create("e1", func(e *employee.Employee) { e.Age = 29 })
			create("e2", func(e *employee.Employee) { e.Age = 30 })
			create("e3", func(e *employee.Employee) { e.Age = 40 })
			create("e4", func(e *employee.Employee) { e.Age = 41 })

			rows, total, err := repo.List(ctx, &employee.ListQuery{
				Take: 10,
				Filters: []employee.FilterSpec{
					{Column: "age", Op: employee.OpGte, Value: 30},
					{Column: "age", Op: employee.OpLte, Value: 40},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect([]string{rows[0].ID, rows[1].ID}).To(ConsistOf("e2", "e3"))
		})
	})

	Describe("Create", func() {
		It("maps a duplicate id to the conflict error", func() {
			create("e1", nil)

			err := repo.Create(ctx, newEmployee("e1"))

			Expect(err).To(Equal(internal.ErrEmployeeExists))
		})
	})

	Describe("Update", func() {
		It("overwrites every column including zero values", func() {
			create("e1", func(e *employee.Employee) {
				e.MonthlyIncome = 5000
				e.EngagementScore = 70
			})

			replacement := newEmployee("e1")
			replacement.MonthlyIncome = 8000
			replacement.EngagementScore = 0
			Expect(repo.Update(ctx, replacement)).To(Succeed())

			var got employee.Employee
			Expect(db.First(&got, "id = ?", "e1").Error).To(Succeed())
			Expect(got.MonthlyIncome).To(Equal(8000))
			Expect(got.EngagementScore).To(Equal(0))
		})

		It("reports not-found for an unknown id", func() {
			err := repo.Update(ctx, newEmployee("ghost"))
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			create("e1", nil)

			Expect(repo.Delete(ctx, "e1")).To(Succeed())

			_, total, err := repo.List(ctx, &employee.ListQuery{Take: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
		})

		It("reports not-found for an unknown id", func() {
			Expect(repo.Delete(ctx, "ghost")).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Stats", func() {
		BeforeEach(func() {
			create("e1", func(e *employee.Employee) {
				e.Department = employee.DepartmentSales
				e.MonthlyIncome = 5000
				e.Age = 30
				e.YearsAtCompany = 5
				e.EngagementScore = 70
				e.WorkloadPressureIndex = 50
			})
			create("e2", func(e *employee.Employee) {
				e.Department = employee.DepartmentSales
				e.MonthlyIncome = 6001
				e.Age = 35
				e.YearsAtCompany = 2
				e.EngagementScore = 75
				e.WorkloadPressureIndex = 55
			})
			create("e3", func(e *employee.Employee) {
				e.Department = employee.DepartmentHumanResources
				e.MonthlyIncome = 4000
				e.Age = 41
				e.YearsAtCompany = 10
				e.EngagementScore = 80
				e.WorkloadPressureIndex = 60
			})
		})

		It("returns one bucket per distinct value, ordered by the group", func() {
			rows, err := repo.Stats(ctx, "department")

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Group).To(Equal("Human Resources"))
			Expect(rows[1].Group).To(Equal("Sales"))
			Expect(rows[1].Count).To(Equal(int64(2)))
		})

		It("rounds salary and age to whole numbers and the rest to one decimal", func() {
			rows, err := repo.Stats(ctx, "department")
			Expect(err).NotTo(HaveOccurred())

			sales := rows[1]
			// avg income 5500.5 and avg age 32.5 round to whole numbers
			Expect(sales.AverageSalary).To(Equal(5501))
			Expect(sales.AverageAge).To(Equal(33))
			Expect(sales.AverageTenure).To(Equal(3.5))
			Expect(sales.AvgEngagement).To(Equal(72.5))
			Expect(sales.AvgWorkload).To(Equal(52.5))
		})

		It("returns no rows for an empty table", func() {
			Expect(db.Exec("DELETE FROM employees").Error).To(Succeed())

			rows, err := repo.Stats(ctx, "department")

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})
})
