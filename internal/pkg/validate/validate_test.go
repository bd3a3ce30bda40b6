package validate

import (
	"testing"

	"agencyhub-service/internal/domain/agency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() agency.DetailsInput {
	return agency.DetailsInput{
		Name:         "Acme Agency",
		CompanyEmail: "hello@acme.test",
		CompanyPhone: "0712345678",
		WhiteLabel:   true,
		Address:      "12 Long Street",
		City:         "Nairobi",
		State:        "Nairobi",
		Zip:          "00100",
		Country:      "KE",
		AgencyLogo:   "uploads/logo.png",
	}
}

func TestStruct_ValidDetails(t *testing.T) {
	input := validDetails()
	assert.Nil(t, Struct(&input))
}

func TestStruct_ShortName(t *testing.T) {
	input := validDetails()
	input.Name = "A"

	errs := Struct(&input)
	require.Len(t, errs, 1)
	assert.True(t, errs.HasField("name"))
	assert.Contains(t, errs[0].Message, "at least 2")
}

func TestStruct_InvalidEmail(t *testing.T) {
	input := validDetails()
	input.CompanyEmail = "not-an-email"

	errs := Struct(&input)
	require.Len(t, errs, 1)
	assert.True(t, errs.HasField("company_email"))
}

func TestStruct_CollectsAllFieldErrors(t *testing.T) {
	input := agency.DetailsInput{}

	errs := Struct(&input)
	require.NotNil(t, errs)

	// Every required field is reported in one pass, not just the first.
	for _, field := range []string{
		"name", "company_email", "company_phone", "address",
		"city", "state", "zip", "country", "agency_logo",
	} {
		assert.True(t, errs.HasField(field), "expected error for %s", field)
	}
}

func TestStruct_FieldLengthBounds(t *testing.T) {
	input := validDetails()
	input.CompanyPhone = "123456789" // 9 chars, needs 10
	input.Address = "x st"           // 4 chars, needs 5
	input.Zip = "1234"               // 4 chars, needs 5

	errs := Struct(&input)
	assert.True(t, errs.HasField("company_phone"))
	assert.True(t, errs.HasField("address"))
	assert.True(t, errs.HasField("zip"))
	assert.False(t, errs.HasField("name"))
}

func TestFieldErrors_Error(t *testing.T) {
	errs := FieldErrors{
		{Field: "name", Message: "too short"},
		{Field: "zip", Message: "too short"},
	}
	assert.Equal(t, "name: too short; zip: too short", errs.Error())
}
