package postgres

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/user"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Repository Suite")
}

var _ = Describe("UserRepository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
		ctx  context.Context
	)

	createUser := func(id, name, email string) {
		Expect(db.Create(&user.User{
			ID:           id,
			Name:         name,
			Email:        email,
			PasswordHash: "hash",
			Role:         user.RoleAdmin,
		}).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&user.User{})).To(Succeed())

		repo = NewUserRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("FindAll", func() {
		It("returns every user", func() {
			createUser("u1", "Alice", "alice@example.com")
			createUser("u2", "Bob", "bob@example.com")

			users, err := repo.FindAll(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})

		It("returns an empty slice on an empty table", func() {
			users, err := repo.FindAll(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			createUser("u1", "Alice Smith", "alice@example.com")
			createUser("u2", "Bob Jones", "bob@corp.example.com")
		})

		It("matches substrings case-insensitively across name and email", func() {
			byName, err := repo.Search(ctx, "ALICE")
			Expect(err).NotTo(HaveOccurred())
			Expect(byName).To(HaveLen(1))
			Expect(byName[0].ID).To(Equal("u1"))

			byEmail, err := repo.Search(ctx, "corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(byEmail).To(HaveLen(1))
			Expect(byEmail[0].ID).To(Equal("u2"))
		})

		It("matches by id", func() {
			users, err := repo.Search(ctx, "u2")
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))
			Expect(users[0].Name).To(Equal("Bob Jones"))
		})

		It("returns nothing for a term no field contains", func() {
			users, err := repo.Search(ctx, "zzz")
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})
	})

	Describe("Create", func() {
		It("assigns an id when none is set", func() {
			u := &user.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: user.RoleAdmin}

			Expect(repo.Create(ctx, u)).To(Succeed())
			Expect(u.ID).NotTo(BeEmpty())
		})

		It("maps a duplicate email to the conflict error", func() {
			createUser("u1", "Alice", "alice@example.com")

			err := repo.Create(ctx, &user.User{Name: "Clone", Email: "alice@example.com", PasswordHash: "hash"})

			Expect(err).To(Equal(internal.ErrUserExists))
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			createUser("u1", "Alice", "alice@example.com")

			Expect(repo.Delete(ctx, "u1")).To(Succeed())

			users, err := repo.FindAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})

		It("reports not-found for a missing row", func() {
			err := repo.Delete(ctx, "ghost")
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})
})
