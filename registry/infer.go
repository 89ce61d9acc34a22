/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/tablestore/errors"
)

// TypeOf infers the declared type of a Go value. Pointers map to the
// nullable variant. It reports false for values with no EDM representation.
func TypeOf(v any) (Type, bool) {
	switch v.(type) {
	case int32:
		return Int32, true
	case *int32:
		return NullableInt32, true
	case int, int64:
		return Int64, true
	case *int, *int64:
		return NullableInt64, true
	case float64, float32:
		return Double, true
	case *float64:
		return NullableDouble, true
	case bool:
		return Boolean, true
	case *bool:
		return NullableBoolean, true
	case uuid.UUID, strfmt.UUID:
		return Guid, true
	case *uuid.UUID, *strfmt.UUID:
		return NullableGuid, true
	case time.Time, strfmt.DateTime:
		return DateTime, true
	case *time.Time, *strfmt.DateTime:
		return NullableDateTime, true
	case []byte, strfmt.Base64:
		return Binary, true
	case string, *string:
		return String, true
	case url.URL, *url.URL, strfmt.URI:
		return URI, true
	}
	return Invalid, false
}

// Normalize converts v, declared as t, into the canonical value the
// encoders accept: int32, int64, float64, bool, uuid.UUID, time.Time,
// []byte, string or *url.URL. Nil values and nil pointers report isNull.
func Normalize(t Type, v any) (value any, isNull bool, err error) {
	if !IsSupported(t) {
		return nil, false, errors.NewUnsupportedTypeError("", t.String())
	}

	v, isNull = indirect(v)
	if isNull {
		return nil, true, nil
	}

	switch t {
	case Int32, NullableInt32:
		if x, ok := v.(int32); ok {
			return x, false, nil
		}
	case Int64, NullableInt64:
		switch x := v.(type) {
		case int64:
			return x, false, nil
		case int:
			return int64(x), false, nil
		case int32:
			return int64(x), false, nil
		}
	case Double, NullableDouble:
		switch x := v.(type) {
		case float64:
			return x, false, nil
		case float32:
			return float64(x), false, nil
		}
	case Boolean, NullableBoolean:
		if x, ok := v.(bool); ok {
			return x, false, nil
		}
	case Guid, NullableGuid:
		switch x := v.(type) {
		case uuid.UUID:
			return x, false, nil
		case strfmt.UUID:
			return parseGuid(string(x))
		case string:
			return parseGuid(x)
		}
	case DateTime, NullableDateTime:
		switch x := v.(type) {
		case time.Time:
			return x, false, nil
		case strfmt.DateTime:
			return time.Time(x), false, nil
		}
	case Binary:
		switch x := v.(type) {
		case []byte:
			return x, false, nil
		case strfmt.Base64:
			return []byte(x), false, nil
		}
	case String:
		if x, ok := v.(string); ok {
			return x, false, nil
		}
	case URI:
		switch x := v.(type) {
		case *url.URL:
			return x, false, nil
		case url.URL:
			return &x, false, nil
		case strfmt.URI:
			return parseURI(string(x))
		case string:
			return parseURI(x)
		}
	}
	return nil, false, mismatch(t, v)
}

// indirect dereferences the pointer shapes TypeOf understands.
func indirect(v any) (any, bool) {
	switch p := v.(type) {
	case nil:
		return nil, true
	case *int32:
		return deref(p)
	case *int:
		return deref(p)
	case *int64:
		return deref(p)
	case *float64:
		return deref(p)
	case *bool:
		return deref(p)
	case *uuid.UUID:
		return deref(p)
	case *strfmt.UUID:
		return deref(p)
	case *time.Time:
		return deref(p)
	case *strfmt.DateTime:
		return deref(p)
	case *string:
		return deref(p)
	case *url.URL:
		return v, p == nil
	case []byte:
		return v, p == nil
	case strfmt.Base64:
		return v, p == nil
	}
	return v, false
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, true
	}
	return *p, false
}

func parseGuid(s string) (any, bool, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, false, errors.NewValidationError("", fmt.Sprintf("invalid guid %q: %v", s, err))
	}
	return id, false, nil
}

func parseURI(s string) (any, bool, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, false, errors.NewValidationError("", fmt.Sprintf("invalid uri %q: %v", s, err))
	}
	return u, false, nil
}
