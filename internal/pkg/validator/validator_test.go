package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.True(t, IsValidUUID("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.False(t, IsValidUUID("0188d0f2-7b8c-7b4a-8a2b"))
	assert.False(t, IsValidUUID("g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"09171234567", "0917-123-4567", "+639171234567", "639171234567"}
	invalid := []string{"0917123456", "08171234567", "+63917123456a", "", "12345"}
	for _, p := range valid {
		assert.True(t, IsValidPhoneNumber(p), p)
	}
	for _, p := range invalid {
		assert.False(t, IsValidPhoneNumber(p), p)
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "07:00", "13:45", "23:59"}
	invalid := []string{"24:00", "12:60", "7:00", "0700", "", "ab:cd", "99:99"}
	for _, s := range valid {
		assert.True(t, IsValidClock(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidClock(s), s)
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("EMP-0001"))
	assert.True(t, IsValidEmployeeCode("A1B2C3D4"))
	assert.False(t, IsValidEmployeeCode("emp-1"))
	assert.False(t, IsValidEmployeeCode("AB"))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("name", "is required")
	errs.Add("amount", "must be positive")

	assert.Error(t, errs.Err())
	assert.Equal(t, "name: is required; amount: must be positive", errs.Error())
	assert.Equal(t, map[string]string{"name": "is required", "amount": "must be positive"}, errs.ToMap())
}
