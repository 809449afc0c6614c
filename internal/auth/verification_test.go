package auth

import (
	"context"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/user"
)

var _ = Describe("CodeManager", func() {
	var (
		store   *mockUserStore
		mailer  *mockMailer
		manager *CodeManager
		ctx     context.Context
		clock   time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newMockUserStore()
		mailer = &mockMailer{}
		manager = NewCodeManager(store, mailer, slog.Default())
		clock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		manager.now = func() time.Time { return clock }
		store.add(&user.User{ID: "u1", Email: "alice@example.com"})
	})

	Describe("IssueCode", func() {
		It("emails a 5-digit code and stores it with a 10 minute expiry", func() {
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())

			u := store.users["u1"]
			Expect(mailer.sentTo).To(ConsistOf("alice@example.com"))
			Expect(*u.VerificationCode).To(BeNumerically(">=", 10000))
			Expect(*u.VerificationCode).To(BeNumerically("<=", 99999))
			Expect(*u.VerificationCodeExpiresAt).To(Equal(clock.Add(10 * time.Minute)))
		})

		It("covers the full code range at the boundaries", func() {
			manager.randInt = func(n int) int { return 0 }
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())
			Expect(*store.users["u1"].VerificationCode).To(Equal(10000))

			clock = clock.Add(2 * time.Minute)
			manager.randInt = func(n int) int { return n - 1 }
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())
			Expect(*store.users["u1"].VerificationCode).To(Equal(99999))
		})

		It("refuses a resend inside the one minute cooldown", func() {
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())

			clock = clock.Add(30 * time.Second)
			err := manager.IssueCode(ctx, "u1")

			Expect(err).To(Equal(internal.ErrResendCooldown))
			Expect(mailer.sentTo).To(HaveLen(1))
		})

		It("allows a resend once the cooldown has passed", func() {
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())

			clock = clock.Add(61 * time.Second)
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())
			Expect(mailer.sentTo).To(HaveLen(2))
		})

		It("does not persist a code when the email cannot be sent", func() {
			mailer.fail = true

			err := manager.IssueCode(ctx, "u1")

			Expect(err).To(HaveOccurred())
			Expect(store.users["u1"].VerificationCode).To(BeNil())
		})

		It("hides whether the user exists", func() {
			err := manager.IssueCode(ctx, "ghost")
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})

	Describe("ConsumeCode", func() {
		It("accepts the stored code before expiry", func() {
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())
			u := store.users["u1"]

			clock = clock.Add(9 * time.Minute)
			Expect(manager.ConsumeCode(u, *u.VerificationCode)).To(Succeed())
		})

		It("rejects the right code once expired", func() {
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())
			u := store.users["u1"]

			clock = clock.Add(11 * time.Minute)
			err := manager.ConsumeCode(u, *u.VerificationCode)

			Expect(err).To(Equal(internal.ErrCodeMismatch))
		})

		It("rejects a wrong code with the same error as an expired one", func() {
			Expect(manager.IssueCode(ctx, "u1")).To(Succeed())
			u := store.users["u1"]

			err := manager.ConsumeCode(u, *u.VerificationCode+1)

			Expect(err).To(Equal(internal.ErrCodeMismatch))
		})

		It("fails when no code was ever issued", func() {
			u := store.users["u1"]
			err := manager.ConsumeCode(u, 12345)
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})
})
