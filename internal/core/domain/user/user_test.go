package user

import (
	c "accountd/internal/core/domain/common"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var NOW = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestFormatDisplayID(t *testing.T) {
	assert.Equal(t, "I-10000", FormatDisplayID(ID(10000)))
	assert.Equal(t, "I-10001", FormatDisplayID(ID(10001)))
}

func TestHasActiveResetToken(t *testing.T) {
	cases := []struct {
		id        string
		token     c.Optional[ResetToken]
		expiresAt c.Optional[time.Time]
		at        time.Time
		expected  bool
	}{
		{
			id:       "no token",
			at:       NOW,
			expected: false,
		},
		{
			id:        "token valid before expiry",
			token:     c.NewOptional(ResetToken("test-token"), true),
			expiresAt: c.NewOptional(NOW.Add(time.Hour), true),
			at:        NOW,
			expected:  true,
		},
		{
			id:        "token invalid at expiry",
			token:     c.NewOptional(ResetToken("test-token"), true),
			expiresAt: c.NewOptional(NOW, true),
			at:        NOW,
			expected:  false,
		},
		{
			id:        "token invalid after expiry",
			token:     c.NewOptional(ResetToken("test-token"), true),
			expiresAt: c.NewOptional(NOW.Add(-time.Nanosecond), true),
			at:        NOW,
			expected:  false,
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			u := User{
				ID:                  ID(10000),
				Email:               c.NewEmail("test@test.test"),
				PasswordHash:        PasswordHash("test-hash"),
				ResetToken:          testcase.token,
				ResetTokenExpiresAt: testcase.expiresAt,
			}
			assert.Equal(t, testcase.expected, u.HasActiveResetToken(testcase.at))
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		id      string
		user    User
		isValid bool
	}{
		{
			id: "valid without token",
			user: User{
				ID:           ID(10000),
				Email:        c.NewEmail("test@test.test"),
				PasswordHash: PasswordHash("test-hash"),
			},
			isValid: true,
		},
		{
			id: "valid with token",
			user: User{
				ID:                  ID(10000),
				Email:               c.NewEmail("test@test.test"),
				PasswordHash:        PasswordHash("test-hash"),
				ResetToken:          c.NewOptional(ResetToken("test-token"), true),
				ResetTokenExpiresAt: c.NewOptional(NOW, true),
			},
			isValid: true,
		},
		{
			id: "email not set",
			user: User{
				ID:           ID(10000),
				PasswordHash: PasswordHash("test-hash"),
			},
			isValid: false,
		},
		{
			id: "password hash not set",
			user: User{
				ID:    ID(10000),
				Email: c.NewEmail("test@test.test"),
			},
			isValid: false,
		},
		{
			id: "token without expiry",
			user: User{
				ID:           ID(10000),
				Email:        c.NewEmail("test@test.test"),
				PasswordHash: PasswordHash("test-hash"),
				ResetToken:   c.NewOptional(ResetToken("test-token"), true),
			},
			isValid: false,
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			err := testcase.user.Validate()
			if testcase.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSecretsAreMasked(t *testing.T) {
	assert.Equal(t, "***", PasswordHash("test-hash").String())
	assert.Equal(t, "***", RawPassword("test-password").String())
	assert.Equal(t, "***", ResetToken("test-token").String())
}
