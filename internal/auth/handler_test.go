package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/transport"
	"github.com/hrsuite/hr-management/internal/user"
)

var _ = Describe("AuthHandler", func() {
	var (
		store   *mockUserStore
		handler *Handler
	)

	addVerifiedUser := func(id, email, password string, role user.Role) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		store.add(&user.User{
			ID:            id,
			Name:          "Test User",
			Email:         email,
			PasswordHash:  string(hash),
			Role:          role,
			ApprovalState: user.ApprovalVerified,
		})
	}

	signIn := func(email, password string) Tokens {
		body, err := json.Marshal(SignInDTO{Email: email, Password: password})
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignIn(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var tokens Tokens
		Expect(json.Unmarshal(rec.Body.Bytes(), &tokens)).To(Succeed())
		return tokens
	}

	BeforeEach(func() {
		store = newMockUserStore()
		logger := slog.Default()
		service := NewService(store, NewJWTTokenGenerator(testSecurityConfig()),
			NewCodeManager(store, &mockMailer{}, logger), bcrypt.MinCost, logger)
		handler = NewHandler(transport.NewBaseHandler(logger), service)
	})

	Describe("SignIn endpoint", func() {
		It("returns the token pair for valid credentials", func() {
			addVerifiedUser("u1", "alice@example.com", "secret123", user.RoleAdmin)

			tokens := signIn("alice@example.com", "secret123")

			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("answers 401 for a wrong password", func() {
			addVerifiedUser("u1", "alice@example.com", "secret123", user.RoleAdmin)
			body, _ := json.Marshal(SignInDTO{Email: "alice@example.com", Password: "wrong"})
			req := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.SignIn(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("answers 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewReader([]byte("{")))
			rec := httptest.NewRecorder()

			handler.SignIn(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("AccessTokenMiddleware", func() {
		var (
			captured *internal.Identity
			next     http.Handler
		)

		BeforeEach(func() {
			captured = nil
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if id, ok := internal.IdentityFromContext(r.Context()); ok {
					captured = &id
				}
				w.WriteHeader(http.StatusOK)
			})
		})

		It("attaches the caller identity for a valid token", func() {
			addVerifiedUser("u1", "alice@example.com", "secret123", user.RoleSuperAdmin)
			tokens := signIn("alice@example.com", "secret123")

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
			rec := httptest.NewRecorder()

			handler.AccessTokenMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(captured).NotTo(BeNil())
			Expect(captured.UserID).To(Equal("u1"))
			Expect(captured.Role).To(Equal(string(user.RoleSuperAdmin)))
		})

		It("answers 401 when the header is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			rec := httptest.NewRecorder()

			handler.AccessTokenMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(captured).To(BeNil())
		})

		It("rejects a refresh token used on the access gate", func() {
			addVerifiedUser("u1", "alice@example.com", "secret123", user.RoleAdmin)
			tokens := signIn("alice@example.com", "secret123")

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
			rec := httptest.NewRecorder()

			handler.AccessTokenMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("RequireRoles", func() {
		var next http.Handler

		request := func(identity *internal.Identity, gate func(http.Handler) http.Handler) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if identity != nil {
				req = req.WithContext(internal.ContextWithIdentity(context.Background(), *identity))
			}
			rec := httptest.NewRecorder()
			gate(next).ServeHTTP(rec, req)
			return rec
		}

		BeforeEach(func() {
			next = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})

		It("answers 401 when no identity reached the gate", func() {
			rec := request(nil, handler.RequireRoles(user.RoleSuperAdmin))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("answers 403 for a role below the requirement", func() {
			rec := request(&internal.Identity{UserID: "u1", Role: string(user.RoleAdmin)},
				handler.RequireRoles(user.RoleSuperAdmin))
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("admits a role at the requirement", func() {
			rec := request(&internal.Identity{UserID: "u1", Role: string(user.RoleSuperAdmin)},
				handler.RequireRoles(user.RoleSuperAdmin))
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("uses the weakest declared role as the bar", func() {
			rec := request(&internal.Identity{UserID: "u1", Role: string(user.RoleAdmin)},
				handler.RequireRoles(user.RoleAdmin, user.RoleSuperAdmin))
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("rejects an unknown role value", func() {
			rec := request(&internal.Identity{UserID: "u1", Role: "WIZARD"},
				handler.RequireRoles(user.RoleAdmin))
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})
	})
})
