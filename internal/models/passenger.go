package models

// PassengerRecord is one traveller's details, created empty per required
// seat and filled field by field. Order is aligned with the seat selection.
type PassengerRecord struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
}

// Complete reports whether every mandatory field is filled.
func (p PassengerRecord) Complete() bool {
	return p.FirstName != "" && p.LastName != "" && p.DateOfBirth != "" &&
		p.Gender != "" && p.Email != ""
}
