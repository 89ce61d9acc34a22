/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/suparena/tablestore/errors"
)

// DateTimeLayout is the round-trip form of an Edm.DateTime value. Values are
// always converted to UTC before formatting.
const DateTimeLayout = "2006-01-02T15:04:05.0000000Z"

func encodeDouble(value any) (string, error) {
	v, ok := value.(float64)
	if !ok {
		return "", mismatch(Double, value)
	}
	return FormatDouble(v), nil
}

// FormatDouble renders v as the shortest text that parses back to v.
// Exponents below -4 or from 15 up use scientific notation.
func FormatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "-INF"
	}

	sci := strconv.FormatFloat(v, 'E', -1, 64)
	i := strings.IndexByte(sci, 'E')
	exp, err := strconv.Atoi(sci[i+1:])
	if err != nil || exp < -4 || exp >= 15 {
		return sci
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func encodeBoolean(value any) (string, error) {
	v, ok := value.(bool)
	if !ok {
		return "", mismatch(Boolean, value)
	}
	return strconv.FormatBool(v), nil
}

func encodeDateTime(value any) (string, error) {
	v, ok := value.(time.Time)
	if !ok {
		return "", mismatch(DateTime, value)
	}
	return v.UTC().Format(DateTimeLayout), nil
}

func encodeBinary(value any) (string, error) {
	v, ok := value.([]byte)
	if !ok {
		return "", mismatch(Binary, value)
	}
	return base64.StdEncoding.EncodeToString(v), nil
}

func encodeURI(value any) (string, error) {
	v, ok := value.(*url.URL)
	if !ok || v == nil {
		return "", mismatch(URI, value)
	}
	return AbsoluteURI(v)
}

// AbsoluteURI returns the absolute form of u. Relative references have no
// absolute form and are rejected.
func AbsoluteURI(u *url.URL) (string, error) {
	if !u.IsAbs() {
		return "", errors.NewValidationError("", fmt.Sprintf("%q is not an absolute URI", u.String()))
	}
	abs := *u
	abs.Scheme = strings.ToLower(abs.Scheme)
	abs.Host = strings.ToLower(abs.Host)
	if abs.Opaque == "" && abs.Host != "" && abs.Path == "" {
		abs.Path = "/"
	}
	return abs.String(), nil
}

func mismatch(t Type, value any) error {
	return errors.NewValidationError("", fmt.Sprintf("value of type %T cannot be encoded as %s", value, t))
}
