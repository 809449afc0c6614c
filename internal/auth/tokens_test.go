package auth

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrsuite/hr-management/internal"
)

var _ = Describe("JWTTokenGenerator", func() {
	var generator *JWTTokenGenerator

	BeforeEach(func() {
		generator = NewJWTTokenGenerator(testSecurityConfig())
	})

	Describe("GenerateTokenPair", func() {
		It("mints distinct access and refresh tokens", func() {
			tokens, err := generator.GenerateTokenPair("u1", "alice@example.com", "ADMIN")

			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
			Expect(tokens.AccessToken).NotTo(Equal(tokens.RefreshToken))
		})

		It("never repeats a token for the same payload", func() {
			first, err := generator.GenerateTokenPair("u1", "alice@example.com", "ADMIN")
			Expect(err).NotTo(HaveOccurred())
			second, err := generator.GenerateTokenPair("u1", "alice@example.com", "ADMIN")
			Expect(err).NotTo(HaveOccurred())

			Expect(second.AccessToken).NotTo(Equal(first.AccessToken))
			Expect(second.RefreshToken).NotTo(Equal(first.RefreshToken))
		})
	})

	Describe("Validate", func() {
		It("round-trips the identity claims through both tokens", func() {
			tokens, err := generator.GenerateTokenPair("u1", "alice@example.com", "SUPER_ADMIN")
			Expect(err).NotTo(HaveOccurred())

			accessClaims, err := generator.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(accessClaims.Subject).To(Equal("u1"))
			Expect(accessClaims.Email).To(Equal("alice@example.com"))
			Expect(accessClaims.Role).To(Equal("SUPER_ADMIN"))

			refreshClaims, err := generator.ValidateRefreshToken(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(refreshClaims.Subject).To(Equal("u1"))
		})

		It("rejects an access token presented as a refresh token and vice versa", func() {
			tokens, err := generator.GenerateTokenPair("u1", "alice@example.com", "ADMIN")
			Expect(err).NotTo(HaveOccurred())

			_, err = generator.ValidateRefreshToken(tokens.AccessToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))

			_, err = generator.ValidateAccessToken(tokens.RefreshToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("rejects a token signed with a different secret", func() {
			other := testSecurityConfig()
			other.AccessTokenSecret = "some-other-secret"
			foreign := NewJWTTokenGenerator(other)
			tokens, err := foreign.GenerateTokenPair("u1", "alice@example.com", "ADMIN")
			Expect(err).NotTo(HaveOccurred())

			_, err = generator.ValidateAccessToken(tokens.AccessToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("rejects garbage", func() {
			_, err := generator.ValidateAccessToken("not-a-jwt")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("reports an expired token as expired rather than invalid", func() {
			generator.AccessTokenTTL = -1 * time.Minute
			tokens, err := generator.GenerateTokenPair("u1", "alice@example.com", "ADMIN")
			Expect(err).NotTo(HaveOccurred())

			_, err = generator.ValidateAccessToken(tokens.AccessToken)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})
	})
})
