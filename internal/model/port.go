package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Port is a TCP port that accepts both JSON numbers and numeric strings,
// since form-driven clients commonly send "587".
type Port int

// UnmarshalJSON implements json.Unmarshaler
func (p *Port) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Port(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("port must be a number or numeric string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be numeric: %w", err)
	}
	*p = Port(n)
	return nil
}
