package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OTP is the one-time passcode challenge issued by /login. The backend sends
// it as a JSON number; strings are accepted too. It is kept in its literal
// decimal form and compared as an exact string.
type OTP string

// UnmarshalJSON implements json.Unmarshaler.
func (o *OTP) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = OTP(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("otp must be a number or string: %w", err)
	}
	*o = OTP(n.String())
	return nil
}

// Matches reports whether code equals the challenge exactly.
func (o OTP) Matches(code string) bool {
	return o != "" && string(o) == code
}

func (o OTP) String() string {
	return string(o)
}
