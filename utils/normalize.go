package utils

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*
* Clients historically sent list fields either as a JSON array or as a single
* comma separated string. Normalize once at the boundary, nothing deeper in
* the system branches on representation.
 */
func NormalizeStringList(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, errors.New("value is required")
	case []string:
		return trimAll(v), nil
	case string:
		return trimAll(strings.Split(v, ",")), nil
	case []interface{}:
		return fromAnySlice(v)
	case primitive.A:
		return fromAnySlice(v)
	default:
		return nil, errors.New("value must be a list or a comma separated string")
	}
}

func fromAnySlice(items []interface{}) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New("list items must be strings")
		}
		out = append(out, s)
	}
	return trimAll(out), nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}
