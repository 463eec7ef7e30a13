// Package clinic holds the medical vocabulary of the simulator: the specialty
// tags carried by doctors and the classifier that turns a patient's free-text
// description into a canonical condition and the specialty that treats it.
//
// Classification never affects queue order. Every patient has PriorityNormal;
// clinical notes are informational only.
package clinic

import "strings"

// Condition is a canonical condition keyword.
type Condition string

// CommonIllness is assigned when no keyword matches the description.
const CommonIllness Condition = "common illness"

// PriorityNormal is the only priority the clinic uses.
const PriorityNormal = "normal"

// conditionKeywords is scanned in order; the first keyword contained in the
// lower-cased description wins.
var conditionKeywords = []struct {
	keyword   string
	condition Condition
}{
	{"enfarte", "heart attack"},
	{"heart attack", "heart attack"},
	{"arritmia", "arrhythmia"},
	{"arrhythmia", "arrhythmia"},
	{"hipertens", "hypertension"},
	{"hypertension", "hypertension"},
	{"dor no peito", "chest pain"},
	{"chest pain", "chest pain"},
	{"eczema", "eczema"},
	{"psoríase", "psoriasis"},
	{"psoriasis", "psoriasis"},
	{"acne", "acne"},
	{"erupção", "rash"},
	{"rash", "rash"},
	{"enxaqueca", "migraine"},
	{"migraine", "migraine"},
	{"epilep", "epilepsy"},
	{"avc", "stroke"},
	{"stroke", "stroke"},
	{"fratura", "fracture"},
	{"fracture", "fracture"},
	{"entorse", "sprain"},
	{"sprain", "sprain"},
	{"dor nas costas", "back pain"},
	{"lombalgia", "back pain"},
	{"back pain", "back pain"},
	{"depress", "depression"},
	{"ansiedade", "anxiety"},
	{"anxiety", "anxiety"},
	{"asma", "asthma"},
	{"asthma", "asthma"},
	{"bronquite", "bronchitis"},
	{"bronchitis", "bronchitis"},
	{"pneumonia", "pneumonia"},
	{"gastrite", "gastritis"},
	{"gastritis", "gastritis"},
	{"úlcera", "ulcer"},
	{"ulcer", "ulcer"},
	{"diabet", "diabetes"},
	{"tiroide", "thyroid disorder"},
	{"thyroid", "thyroid disorder"},
	{"catarata", "cataract"},
	{"cataract", "cataract"},
	{"glaucoma", "glaucoma"},
	{"gripe", "flu"},
	{"flu", "flu"},
	{"constipação", "common cold"},
	{"cold", "common cold"},
	{"febre", "fever"},
	{"fever", "fever"},
}

var conditionSpecialty = map[Condition]Specialty{
	"heart attack":     Cardiology,
	"arrhythmia":       Cardiology,
	"hypertension":     Cardiology,
	"chest pain":       Cardiology,
	"eczema":           Dermatology,
	"psoriasis":        Dermatology,
	"acne":             Dermatology,
	"rash":             Dermatology,
	"migraine":         Neurology,
	"epilepsy":         Neurology,
	"stroke":           Neurology,
	"fracture":         Orthopedics,
	"sprain":           Orthopedics,
	"back pain":        Orthopedics,
	"depression":       Psychiatry,
	"anxiety":          Psychiatry,
	"asthma":           Pulmonology,
	"bronchitis":       Pulmonology,
	"pneumonia":        Pulmonology,
	"gastritis":        Gastroenterology,
	"ulcer":            Gastroenterology,
	"diabetes":         Endocrinology,
	"thyroid disorder": Endocrinology,
	"cataract":         Ophthalmology,
	"glaucoma":         Ophthalmology,
	"flu":              General,
	"common cold":      General,
	"fever":            General,
	CommonIllness:      General,
}

// specialtyHints catch descriptions that name a field of medicine rather
// than a condition, e.g. "seguimento em cardiologia".
var specialtyHints = []struct {
	fragment  string
	specialty Specialty
}{
	{"cardio", Cardiology},
	{"derm", Dermatology},
	{"pele", Dermatology},
	{"neuro", Neurology},
	{"orto", Orthopedics},
	{"ortho", Orthopedics},
	{"pediatr", Pediatrics},
	{"psiq", Psychiatry},
	{"psych", Psychiatry},
	{"pneumo", Pulmonology},
	{"pulmo", Pulmonology},
	{"respir", Pulmonology},
	{"gastro", Gastroenterology},
	{"estômago", Gastroenterology},
	{"stomach", Gastroenterology},
	{"endocr", Endocrinology},
	{"hormon", Endocrinology},
	{"oftalm", Ophthalmology},
	{"ophthalm", Ophthalmology},
}

// Classification is the outcome of triaging one patient.
type Classification struct {
	Condition Condition
	Specialty Specialty
	Priority  string
	Notes     []string
}

// Note renders the condition and clinical notes as a single display line.
func (c Classification) Note() string {
	if len(c.Notes) == 0 {
		return string(c.Condition)
	}
	return string(c.Condition) + "; " + strings.Join(c.Notes, "; ")
}

// ClassifyCondition maps a free-text description to a canonical condition.
func ClassifyCondition(description string) Condition {
	text := strings.ToLower(description)
	for _, kw := range conditionKeywords {
		if strings.Contains(text, kw.keyword) {
			return kw.condition
		}
	}
	return CommonIllness
}

// RequiredSpecialty maps a condition to the specialty that treats it. The
// explicit table is consulted first, then substring hints over the condition
// and the raw description; anything left over goes to General.
func RequiredSpecialty(condition Condition, description string) Specialty {
	if sp, ok := conditionSpecialty[condition]; ok && sp != General {
		return sp
	}
	for _, text := range []string{string(condition), strings.ToLower(description)} {
		for _, h := range specialtyHints {
			if strings.Contains(text, h.fragment) {
				return h.specialty
			}
		}
	}
	return General
}

// Profile is the subset of a patient record the classifier inspects.
type Profile struct {
	Age         int
	Description string
	Religion    string
	Smoker      bool
}

// Classify triages a patient profile.
func Classify(p Profile) Classification {
	condition := ClassifyCondition(p.Description)
	return Classification{
		Condition: condition,
		Specialty: RequiredSpecialty(condition, p.Description),
		Priority:  PriorityNormal,
		Notes:     ClinicalNotes(p),
	}
}

// ClinicalNotes lists the display-only remarks for a patient.
func ClinicalNotes(p Profile) []string {
	var notes []string
	religion := strings.ToLower(p.Religion)
	if strings.Contains(religion, "jeová") || strings.Contains(religion, "jehovah") {
		notes = append(notes, "no blood transfusion")
	}
	if p.Smoker {
		notes = append(notes, "smoker")
	}
	if p.Age >= 65 {
		notes = append(notes, "elderly")
	}
	return notes
}
