package main

import (
	"bytes"
	"fmt"
	"time"
)

// wsDateTime is a UTC time query parameter.  Accepted formats are:
//
//	YYYY-MM-DDTHH:MM:SS.ssssss
//	YYYY-MM-DDTHH:MM:SS
//	YYYY-MM-DD
//
// with an optional trailing Z.  Other time zones are not accepted.
type wsDateTime struct {
	time.Time
}

func (t *wsDateTime) UnmarshalText(text []byte) (err error) {
	s := string(bytes.TrimSpace(text))
	if len(s) == 10 {
		t.Time, err = time.Parse(time.DateOnly, s)
		return err
	}

	if len(s) > 0 && s[len(s)-1] != 'Z' {
		s += "Z"
	}

	// at most microseconds
	if len(s) > 27 {
		return fmt.Errorf("invalid time string: %s", s)
	}

	if t.Time, err = time.Parse(time.RFC3339Nano, s); err != nil {
		return fmt.Errorf("invalid time string: %s - %s", s, err.Error())
	}

	return nil
}
