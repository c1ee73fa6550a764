package validation

import (
	"regexp"
	"strings"
)

// Field names used as keys in validation error maps
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldAddress  = "address"
	FieldCity     = "city"
	FieldDistrict = "district"
	FieldPincode  = "pincode"
)

var (
	nameRe    = regexp.MustCompile(`^[a-zA-Z\s.]+$`)
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe  = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRe = regexp.MustCompile(`^[1-9]\d{5}$`)
)

// Errors maps field names to human-readable validation messages.
// A field key is present iff the field is invalid.
type Errors map[string]string

// Valid reports whether the map contains no errors
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Name validates a person or recipient name
func Name(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Name is required"
	}
	if len(v) < 2 {
		return "Name must be at least 2 characters"
	}
	if !nameRe.MatchString(v) {
		return "Name may contain only letters, spaces and dots"
	}
	return ""
}

// Email validates an email address shape
func Email(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Email is required"
	}
	if !emailRe.MatchString(v) {
		return "Enter a valid email address"
	}
	return ""
}

// Phone validates a 10-digit Indian mobile number
func Phone(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Phone number is required"
	}
	if !mobileRe.MatchString(v) {
		return "Enter a valid 10-digit mobile number"
	}
	return ""
}

// Address validates a street address line
func Address(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Address is required"
	}
	if len(v) < 10 {
		return "Address must be at least 10 characters"
	}
	return ""
}

// City validates a city name
func City(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "City is required"
	}
	if len(v) < 2 {
		return "Enter a valid city"
	}
	return ""
}

// District validates a district name
func District(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "District is required"
	}
	if len(v) < 2 {
		return "Enter a valid district"
	}
	return ""
}

// Pincode validates a 6-digit Indian postal code
func Pincode(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Pincode is required"
	}
	if !pincodeRe.MatchString(v) {
		return "Enter a valid 6-digit pincode"
	}
	return ""
}

// validators maps field names to their validator functions
var validators = map[string]func(string) string{
	FieldName:     Name,
	FieldEmail:    Email,
	FieldPhone:    Phone,
	FieldAddress:  Address,
	FieldCity:     City,
	FieldDistrict: District,
	FieldPincode:  Pincode,
}

// Field validates a single field value and returns an updated copy of
// the error map: the field's key is present iff the value is invalid.
// The input map is not mutated.
func Field(field, value string, errs Errors) Errors {
	out := make(Errors, len(errs)+1)
	for k, v := range errs {
		out[k] = v
	}
	validate, ok := validators[field]
	if !ok {
		return out
	}
	if msg := validate(value); msg != "" {
		out[field] = msg
	} else {
		delete(out, field)
	}
	return out
}

// ShippingForm holds the fields collected on the shipping step
type ShippingForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Pincode  string `json:"pincode"`
}

// Validate runs every field validator, including on empty values, so
// all missing-field errors surface at once.
func (f ShippingForm) Validate() Errors {
	errs := Errors{}
	errs = Field(FieldName, f.Name, errs)
	errs = Field(FieldEmail, f.Email, errs)
	errs = Field(FieldPhone, f.Phone, errs)
	errs = Field(FieldAddress, f.Address, errs)
	errs = Field(FieldCity, f.City, errs)
	errs = Field(FieldDistrict, f.District, errs)
	errs = Field(FieldPincode, f.Pincode, errs)
	return errs
}
