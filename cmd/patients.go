package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/sirupsen/logrus"

	sim "github.com/clinic-sim/clinic-sim/sim"
)

// PersonRecord is one entry of a people dataset. Both the Portuguese and the
// English key spellings are accepted; the Portuguese one wins when both are set.
type PersonRecord struct {
	ID          json.RawMessage `json:"id"`
	Nome        string          `json:"nome"`
	Name        string          `json:"name"`
	Idade       *float64        `json:"idade"`
	Age         *float64        `json:"age"`
	Profissao   string          `json:"profissao"`
	Profession  string          `json:"profession"`
	Descricao   string          `json:"descricao"`
	Description string          `json:"description"`
	Distrito    string          `json:"distrito"`
	District    string          `json:"district"`
	Religiao    string          `json:"religiao"`
	Religion    string          `json:"religion"`
	Fumador     *bool           `json:"fumador"`
	Smoker      *bool           `json:"smoker"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// isMedicalProfession reports whether a person works in medicine and so
// belongs to the staff, not the patient pool.
func isMedicalProfession(profession string) bool {
	p := strings.ToLower(profession)
	for _, kw := range []string{"médico", "médica", "medicina", "physician", "doctor"} {
		if strings.Contains(p, kw) {
			return true
		}
	}
	return false
}

// recordID renders the id field whether it was encoded as a string or a number.
func recordID(raw json.RawMessage, idx int) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return strconv.Itoa(idx + 1)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Patient converts the record at position idx into a sim.Patient.
func (r PersonRecord) Patient(idx int) sim.Patient {
	p := sim.Patient{
		ID:          recordID(r.ID, idx),
		Name:        firstNonEmpty(r.Nome, r.Name, fmt.Sprintf("Pessoa %d", idx+1)),
		Profession:  firstNonEmpty(r.Profissao, r.Profession),
		Description: firstNonEmpty(r.Descricao, r.Description),
		District:    firstNonEmpty(r.Distrito, r.District),
		Religion:    firstNonEmpty(r.Religiao, r.Religion),
	}
	switch {
	case r.Idade != nil:
		p.Age = int(*r.Idade)
	case r.Age != nil:
		p.Age = int(*r.Age)
	}
	smoker := r.Fumador
	if smoker == nil {
		smoker = r.Smoker
	}
	if smoker != nil && *smoker {
		p.Attributes |= sim.AttrSmoker
	}
	return p
}

// LoadPatients reads a JSON array of person records, drops medical staff,
// shuffles the remainder with rng and keeps at most limit of them
// (limit <= 0 keeps all).
func LoadPatients(path string, limit int, rng *rand.Rand) ([]sim.Patient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	var records []PersonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	patients := make([]sim.Patient, 0, len(records))
	skipped := 0
	for i, rec := range records {
		p := rec.Patient(i)
		if isMedicalProfession(p.Profession) {
			skipped++
			continue
		}
		patients = append(patients, p)
	}
	if skipped > 0 {
		logrus.Warnf("Skipped %d medical professionals in %s", skipped, path)
	}

	rng.Shuffle(len(patients), func(i, j int) { patients[i], patients[j] = patients[j], patients[i] })
	if limit > 0 && len(patients) > limit {
		patients = patients[:limit]
	}
	logrus.Infof("Loaded %d patients from %s", len(patients), path)
	return patients, nil
}

// walkInComplaints and districts feed SyntheticPatients.
var (
	walkInComplaints = []string{
		"gripe", "febre", "constipação", "dor no peito", "arritmia", "hipertensão",
		"acne", "eczema", "enxaqueca", "entorse no tornozelo", "dor nas costas",
		"ansiedade", "asma", "bronquite", "gastrite", "diabetes", "glaucoma", "check-up",
	}
	districts = []string{
		"Lisboa", "Porto", "Braga", "Coimbra", "Aveiro", "Faro", "Setúbal", "Viseu", "Leiria", "Évora",
	}
)

// SyntheticPatients returns n made-up walk-in patients, used when no dataset
// is configured. The same seed always yields the same patients.
func SyntheticPatients(n int, seed int64) []sim.Patient {
	fake := faker.NewWithSeed(rand.NewSource(seed))
	patients := make([]sim.Patient, n)
	for i := range patients {
		p := sim.Patient{
			ID:          strconv.Itoa(i + 1),
			Name:        fake.Person().Name(),
			Age:         fake.IntBetween(1, 95),
			Description: fake.RandomStringElement(walkInComplaints),
			District:    fake.RandomStringElement(districts),
		}
		if fake.IntBetween(1, 100) <= 20 {
			p.Attributes |= sim.AttrSmoker
		}
		patients[i] = p
	}
	return patients
}
