package compiler

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Accepted layouts for from/until. Layouts without a zone are read in local time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	nameListType = reflect.TypeOf([]string{})
)

// ParseTime reads a point in time in any of the accepted layouts.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return ParseTime(v)
	case time.Time:
		return v, nil
	default:
		return data, nil
	}
}

// nameListHook lets dependencies be written as "a, b" as well as a list.
func nameListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != nameListType || from.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	if strings.TrimSpace(s) == "" {
		return []string{}, nil
	}
	return strings.Split(s, ","), nil
}
