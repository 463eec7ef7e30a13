package clinic

import (
	"fmt"
	"strings"
)

// Specialty labels both a doctor and the treatment a patient requires.
type Specialty string

const (
	// General is the fallback specialty: a general doctor can see any patient,
	// and patients whose condition maps to no specialist wait in its queue.
	General          Specialty = "general"
	Cardiology       Specialty = "cardiology"
	Dermatology      Specialty = "dermatology"
	Neurology        Specialty = "neurology"
	Orthopedics      Specialty = "orthopedics"
	Pediatrics       Specialty = "pediatrics"
	Psychiatry       Specialty = "psychiatry"
	Pulmonology      Specialty = "pulmonology"
	Gastroenterology Specialty = "gastroenterology"
	Endocrinology    Specialty = "endocrinology"
	Ophthalmology    Specialty = "ophthalmology"
)

// specialistOrder is the fixed scan order used when a freed doctor looks
// for work outside its own queue. General is absent; its queue is always
// consulted last.
var specialistOrder = []Specialty{
	Cardiology,
	Dermatology,
	Neurology,
	Orthopedics,
	Pediatrics,
	Psychiatry,
	Pulmonology,
	Gastroenterology,
	Endocrinology,
	Ophthalmology,
}

// aliases accepts the Portuguese tags found in clinic datasets.
var aliases = map[string]Specialty{
	"geral":             General,
	"medicina geral":    General,
	"cardiologia":       Cardiology,
	"dermatologia":      Dermatology,
	"neurologia":        Neurology,
	"ortopedia":         Orthopedics,
	"pediatria":         Pediatrics,
	"psiquiatria":       Psychiatry,
	"pneumologia":       Pulmonology,
	"gastroenterologia": Gastroenterology,
	"endocrinologia":    Endocrinology,
	"oftalmologia":      Ophthalmology,
}

// Specialists returns the non-general specialties in their fixed scan order.
// The returned slice is a copy.
func Specialists() []Specialty {
	out := make([]Specialty, len(specialistOrder))
	copy(out, specialistOrder)
	return out
}

// ParseSpecialty resolves a tag (case-insensitive, English or Portuguese).
// The empty string resolves to General.
func ParseSpecialty(s string) (Specialty, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if tag == "" || tag == string(General) {
		return General, nil
	}
	for _, sp := range specialistOrder {
		if tag == string(sp) {
			return sp, nil
		}
	}
	if sp, ok := aliases[tag]; ok {
		return sp, nil
	}
	return "", fmt.Errorf("unknown specialty %q", s)
}

// IsValid reports whether s is part of the fixed vocabulary.
func (s Specialty) IsValid() bool {
	if s == General {
		return true
	}
	for _, sp := range specialistOrder {
		if s == sp {
			return true
		}
	}
	return false
}
