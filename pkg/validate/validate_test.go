package validate_test

import (
	"testing"

	"github.com/kalakaksh/backend/pkg/validate"
)

type artisanInput struct {
	Name      string `json:"name"       validate:"required,min=2,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"required,phone"`
	CraftType string `json:"craft_type" validate:"required"`
	Location  string `json:"location"   validate:"required"`
	Bio       string `json:"bio"        validate:"nullable,max=2000"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(artisanInput{
		Name:      "Meera Devi",
		Email:     "meera@example.com",
		Phone:     "9876543210",
		CraftType: "Pottery",
		Location:  "Jaipur, Rajasthan",
		Bio:       "", // nullable, allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(artisanInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestPhoneRule(t *testing.T) {
	valid := []string{
		"9876543210",
		"6123456789",
		"919876543210",
		"+91 98765 43210",
		"98765-43210",
	}
	for _, p := range valid {
		if !validate.Phone(p) {
			t.Errorf("expected %q to be a valid phone", p)
		}
	}

	invalid := []string{
		"",
		"12345",
		"1234567890",  // starts with 1
		"5876543210",  // starts with 5
		"98765432101", // 11 digits
		"929876543210", // wrong country code
		"abcdefghij",
	}
	for _, p := range invalid {
		if validate.Phone(p) {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gte=0,lte=1000000"`
	}
	if errs := validate.Struct(in{Price: -5}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 2500}); validate.HasErrors(errs) {
		t.Errorf("expected price 2500 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=active,inactive,out_of_stock"`
	}
	if errs := validate.Struct(in{Status: "archived"}); !validate.HasErrors(errs) {
		t.Error("expected invalid status to fail")
	}
	if errs := validate.Struct(in{Status: "out_of_stock"}); validate.HasErrors(errs) {
		t.Errorf("expected out_of_stock to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,phone"`
	}
	// Empty string is nullable, should pass even though it's not a phone.
	if errs := validate.Struct(in{Phone: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Phone: "12345"}); !validate.HasErrors(errs) {
		t.Error("expected invalid phone to fail")
	}
}

func TestInRuleFollowedByAnother(t *testing.T) {
	type in struct {
		Category string `json:"category" validate:"required,in=textiles,pottery,jewelry,max=50"`
	}
	if errs := validate.Struct(in{Category: "pottery"}); validate.HasErrors(errs) {
		t.Errorf("expected pottery to pass: %v", errs)
	}
	if errs := validate.Struct(in{Category: "woodwork"}); !validate.HasErrors(errs) {
		t.Error("expected woodwork to fail the in rule")
	}
}

func TestFirstErrorPerField(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{})
	if errs["email"] != "The email field is required." {
		t.Errorf("expected required message first, got %q", errs["email"])
	}
}
