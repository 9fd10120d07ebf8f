package models

// Gender values accepted for a passenger
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid reports whether the gender is one of the accepted values.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// PassengerDetail holds the details captured for one seat. Passengers are
// index-aligned with the seat selection order.
type PassengerDetail struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"min=1,max=120"`
	Gender Gender `json:"gender" validate:"required,oneof=male female other"`
}

// ContactInfo holds the booking contact for ticket delivery.
type ContactInfo struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}
