package sim

import (
	"fmt"

	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

// PatientID is the position of a patient in the run's patient list.
// Arrival k always consumes patient k.
type PatientID int

// Attributes is the set of optional flags a patient record may carry.
type Attributes uint8

const (
	AttrSmoker Attributes = 1 << iota
	AttrPregnant
	AttrAllergic
)

// Has reports whether every flag in a is set.
func (s Attributes) Has(a Attributes) bool {
	return s&a == a
}

// Patient is a read-only record supplied by the caller.
type Patient struct {
	ID          string
	Name        string
	Age         int
	Profession  string
	Description string
	District    string
	Religion    string
	Attributes  Attributes
}

// DisplayName is the name shown in the consultation log.
func (p Patient) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.ID != "" {
		return fmt.Sprintf("Patient %s", p.ID)
	}
	return "Unknown patient"
}

// Profile extracts the fields the classifier inspects.
func (p Patient) Profile() clinic.Profile {
	return clinic.Profile{
		Age:         p.Age,
		Description: p.Description,
		Religion:    p.Religion,
		Smoker:      p.Attributes.Has(AttrSmoker),
	}
}
