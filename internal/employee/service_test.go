package employee

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrsuite/hr-management/internal"
)

type mockRepository struct {
	employees map[string]*Employee
	lastQuery *ListQuery
	statsRows []StatsRow
	err       error
}

func newMockRepository() *mockRepository {
	return &mockRepository{employees: map[string]*Employee{}}
}

func (m *mockRepository) setError(err error) { m.err = err }

func (m *mockRepository) List(_ context.Context, query *ListQuery) ([]Employee, int64, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []Employee
	for _, e := range m.employees {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Create(_ context.Context, emp *Employee) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.employees[emp.ID]; ok {
		return internal.ErrEmployeeExists
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockRepository) Update(_ context.Context, emp *Employee) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.employees[emp.ID]; !ok {
		return internal.ErrEmployeeNotFound
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.employees[id]; !ok {
		return internal.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *mockRepository) Stats(_ context.Context, _ string) ([]StatsRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.statsRows, nil
}

// validAttributes returns a record that passes every enum check.
func validAttributes() EmployeeAttributes {
	return EmployeeAttributes{
		Attrition:                AttritionNo,
		Age:                      34,
		Gender:                   "Female",
		MaritalStatus:            MaritalMarried,
		DistanceFromHome:         12,
		MonthlyIncome:            5200,
		PercentSalaryHike:        14,
		JobLevel:                 2,
		JobRole:                  JobRoleResearchScientist,
		BusinessTravel:           BusinessTravelRarely,
		Department:               DepartmentResearchDev,
		Education:                EducationBachelor,
		EducationField:           EducationFieldLifeSciences,
		NumCompaniesWorked:       2,
		TotalWorkingYears:        10,
		TrainingTimesLastYear:    3,
		TrainingHoursLastYear:    40,
		TrainingHoursLast6Months: 16,
		TrainingGapScore:         1,
		YearsAtCompany:           6,
		YearsInCurrentRole:       3,
		YearsSinceLastPromotion:  1,
		YearsWithCurrManager:     3,
		EnvironmentSatisfaction:  SatisfactionHigh,
		JobInvolvement:           SatisfactionMedium,
		JobSatisfaction:          SatisfactionVeryHigh,
		PerformanceRating:        PerformanceExcellent,
		RelationshipSatisfaction: SatisfactionHigh,
		WorkLifeBalance:          SatisfactionMedium,
		Overtime:                 OvertimeNo,
		AbsenceDaysLastMonth:     1,
		AbsenceDaysLast3Months:   2,
		AbsenceRatio:             0.02,
		LateArrivalsLastMonth:    0,
		OvertimeHoursLastMonth:   4.5,
		WorkloadPressureIndex:    55,
		EngagementScore:          78,
		ManagerFeedbackScore:     82,
		RoleStabilityRatio:       0.5,
		AttritionRiskClass:       RiskLow,
	}
}

var _ = Describe("EmployeeService", func() {
	var (
		repo    *mockRepository
		service *Service
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockRepository()
		service = NewService(repo, slog.Default())
	})

	Describe("List", func() {
		It("wraps the page with its pagination meta", func() {
			repo.employees["e1"] = &Employee{ID: "e1"}
			query := &ListQuery{Skip: 0, Take: 10}

			resp, err := service.List(ctx, query)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Data).To(HaveLen(1))
			Expect(resp.Meta.Total).To(Equal(int64(1)))
			Expect(resp.Meta.Take).To(Equal(10))
			Expect(repo.lastQuery).To(BeIdenticalTo(query))
		})

		It("returns an empty data slice rather than null", func() {
			resp, err := service.List(ctx, &ListQuery{Take: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Data).NotTo(BeNil())
			Expect(resp.Data).To(BeEmpty())
		})
	})

	Describe("Create", func() {
		It("assigns an id and persists the record", func() {
			emp, err := service.Create(ctx, CreateEmployeeDTO{EmployeeAttributes: validAttributes()})

			Expect(err).NotTo(HaveOccurred())
			Expect(emp.ID).NotTo(BeEmpty())
			Expect(repo.employees).To(HaveKey(emp.ID))
		})

		It("rejects an enum value outside its set before hitting the repository", func() {
			attrs := validAttributes()
			attrs.Department = Department("Engineering")

			_, err := service.Create(ctx, CreateEmployeeDTO{EmployeeAttributes: attrs})

			Expect(err).To(HaveOccurred())
			Expect(fieldCode(err)).To(Equal(internal.ErrCodeInvalidEnumValue))
			Expect(repo.employees).To(BeEmpty())
		})

		It("requires gender and a positive age", func() {
			attrs := validAttributes()
			attrs.Gender = ""
			_, err := service.Create(ctx, CreateEmployeeDTO{EmployeeAttributes: attrs})
			Expect(err).To(HaveOccurred())

			attrs = validAttributes()
			attrs.Age = 0
			_, err = service.Create(ctx, CreateEmployeeDTO{EmployeeAttributes: attrs})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("replaces the record under the id from the body", func() {
			attrs := validAttributes()
			repo.employees["e1"] = attrs.toEmployee("e1")

			updated := validAttributes()
			updated.MonthlyIncome = 9000
			emp, err := service.Update(ctx, UpdateEmployeeDTO{ID: "e1", EmployeeAttributes: updated})

			Expect(err).NotTo(HaveOccurred())
			Expect(emp.MonthlyIncome).To(Equal(9000))
			Expect(repo.employees["e1"].MonthlyIncome).To(Equal(9000))
		})

		It("requires the id", func() {
			_, err := service.Update(ctx, UpdateEmployeeDTO{EmployeeAttributes: validAttributes()})
			Expect(err).To(HaveOccurred())
		})

		It("propagates not-found for an unknown id", func() {
			_, err := service.Update(ctx, UpdateEmployeeDTO{ID: "ghost", EmployeeAttributes: validAttributes()})
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the record", func() {
			repo.employees["e1"] = &Employee{ID: "e1"}

			Expect(service.Delete(ctx, "e1")).To(Succeed())
			Expect(repo.employees).To(BeEmpty())
		})

		It("propagates not-found", func() {
			Expect(service.Delete(ctx, "ghost")).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Stats", func() {
		It("validates the grouping field before querying", func() {
			_, err := service.Stats(ctx, "gender")

			Expect(err).To(HaveOccurred())
			Expect(fieldCode(err)).To(Equal(internal.ErrCodeInvalidGroupBy))
		})

		It("returns the aggregation buckets", func() {
			repo.statsRows = []StatsRow{
				{Group: "Sales", Count: 12, AverageSalary: 5100, AverageAge: 37, AverageTenure: 4.2},
			}

			rows, err := service.Stats(ctx, "department")

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Group).To(Equal("Sales"))
		})

		It("returns an empty slice on an empty table", func() {
			rows, err := service.Stats(ctx, "department")

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).NotTo(BeNil())
			Expect(rows).To(BeEmpty())
		})
	})
})
