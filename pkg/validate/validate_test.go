package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type customerForm struct {
	CustomerName string `json:"customer_name" validate:"required,min=2,max=100"`
	Email        string `json:"email"         validate:"required,email"`
	Phone        string `json:"phone"         validate:"required,phone"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(&customerForm{
		CustomerName: "Asha Rao",
		Email:        "asha@example.com",
		Phone:        "+1 (555) 010-2030",
	})
	assert.Empty(t, errs)
}

func TestStructRequired(t *testing.T) {
	errs := Struct(&customerForm{})

	assert.Len(t, errs, 3)
	assert.Contains(t, errs["customer_name"], "required")
	assert.Contains(t, errs["email"], "required")
	assert.Contains(t, errs["phone"], "required")
}

func TestStructEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"asha@example.com", true},
		{"asha@shop.co.in", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		errs := Struct(&customerForm{CustomerName: "A B", Email: tt.email, Phone: "5550102030"})
		if tt.valid {
			assert.NotContains(t, errs, "email", "email %q should be valid", tt.email)
		} else {
			assert.Contains(t, errs, "email", "email %q should be invalid", tt.email)
		}
	}
}

func TestStructPhone(t *testing.T) {
	errs := Struct(&customerForm{CustomerName: "A B", Email: "a@b.co", Phone: "call me"})
	assert.Contains(t, errs, "phone")
}

func TestNullableSkipsRules(t *testing.T) {
	type form struct {
		Note string `json:"note" validate:"nullable,min=5"`
	}
	assert.Empty(t, Struct(&form{}))
	assert.NotEmpty(t, Struct(&form{Note: "hey"}))
}

func TestNumericBounds(t *testing.T) {
	type form struct {
		Quantity int `json:"quantity" validate:"gte=0,lte=10"`
	}
	assert.Empty(t, Struct(&form{Quantity: 5}))
	assert.Contains(t, Struct(&form{Quantity: 11}), "quantity")
	assert.Contains(t, Struct(&form{Quantity: -1}), "quantity")
}
