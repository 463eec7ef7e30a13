package sim

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ServiceDistribution names the law consultation durations are drawn from.
type ServiceDistribution int

const (
	DistExponential ServiceDistribution = iota
	DistNormal
	DistUniform
	DistConstant
)

// String returns the canonical name of the distribution.
func (d ServiceDistribution) String() string {
	switch d {
	case DistExponential:
		return "exponential"
	case DistNormal:
		return "normal"
	case DistUniform:
		return "uniform"
	case DistConstant:
		return "constant"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// ParseServiceDistribution parses a distribution name. The Portuguese
// spellings "exponencial" and "uniforme" are accepted as aliases.
func ParseServiceDistribution(s string) (ServiceDistribution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exponential", "exponencial":
		return DistExponential, nil
	case "normal":
		return DistNormal, nil
	case "uniform", "uniforme":
		return DistUniform, nil
	case "constant":
		return DistConstant, nil
	default:
		return DistExponential, fmt.Errorf("invalid service distribution %q (must be 'exponential', 'normal', 'uniform' or 'constant')", s)
	}
}

// MarshalJSON implements json.Marshaler.
func (d ServiceDistribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *ServiceDistribution) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseServiceDistribution(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
