package form

import (
	"fmt"
	"strconv"
	"time"
)

// DateFormat is the wire layout for date values in the generic variant.
const DateFormat = "2006-01-02"

// Str passes string values through. With AllowEmpty unset, empty strings
// deserialize to the Null sentinel.
type Str struct {
	AllowEmpty bool
}

func (c Str) Serialize(node *Node, value any) (any, error) {
	if value == nil || value == Null {
		return Null, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a string", value)}
	}
	return s, nil
}

func (c Str) Deserialize(node *Node, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a string", value)}
	}
	if s == "" && !c.AllowEmpty {
		return Null, nil
	}
	return s, nil
}

// Int carries integers as decimal strings.
type Int struct{}

func (Int) Serialize(node *Node, value any) (any, error) {
	if value == nil || value == Null {
		return Null, nil
	}
	n, err := toInt(node, value)
	if err != nil {
		return nil, err
	}
	return strconv.Itoa(n), nil
}

func (Int) Deserialize(node *Node, value any) (any, error) {
	n, err := toInt(node, value)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Float carries floats as decimal strings.
type Float struct{}

func (Float) Serialize(node *Node, value any) (any, error) {
	if value == nil || value == Null {
		return Null, nil
	}
	f, err := toFloat(node, value)
	if err != nil {
		return nil, err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func (Float) Deserialize(node *Node, value any) (any, error) {
	f, err := toFloat(node, value)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Bool carries booleans as the lowercase tokens "true" and "false".
type Bool struct{}

func (Bool) Serialize(node *Node, value any) (any, error) {
	if value == nil || value == Null {
		return Null, nil
	}
	b, err := toBool(node, value)
	if err != nil {
		return nil, err
	}
	return strconv.FormatBool(b), nil
}

func (Bool) Deserialize(node *Node, value any) (any, error) {
	b, err := toBool(node, value)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Date carries calendar dates as ISO strings.
type Date struct{}

func (Date) Serialize(node *Node, value any) (any, error) {
	t, ok, err := toTime(node, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Null, nil
	}
	return t.Format(DateFormat), nil
}

func (Date) Deserialize(node *Node, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &Invalid{Node: node.Name, Message: "date is expected in ISO formatted date string"}
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return nil, &Invalid{Node: node.Name, Message: fmt.Sprintf("invalid date %q", s)}
	}
	return t, nil
}

// DateTime carries timestamps as RFC 3339 strings. Deserialized values land
// in Location (UTC when unset).
type DateTime struct {
	Location *time.Location
}

func (c DateTime) Serialize(node *Node, value any) (any, error) {
	t, ok, err := toTime(node, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Null, nil
	}
	return t.Format(time.RFC3339), nil
}

func (c DateTime) Deserialize(node *Node, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &Invalid{Node: node.Name, Message: "datetime is expected in ISO formatted string"}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, &Invalid{Node: node.Name, Message: fmt.Sprintf("invalid datetime %q", s)}
	}
	return t.In(c.location()), nil
}

func (c DateTime) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}

// Mapping passes nested maps through, serializing nil as an empty map.
type Mapping struct{}

func (Mapping) Serialize(node *Node, value any) (any, error) {
	if value == nil || value == Null {
		return map[string]any{}, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a mapping", value)}
	}
	return m, nil
}

func (Mapping) Deserialize(node *Node, value any) (any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a mapping", value)}
	}
	return m, nil
}

// List passes sequences through.
type List struct{}

func (List) Serialize(node *Node, value any) (any, error) {
	if value == nil || value == Null {
		return Null, nil
	}
	return toList(node, value)
}

func (List) Deserialize(node *Node, value any) (any, error) {
	return toList(node, value)
}

// Set passes set-valued sequences through. Wire form is a list.
type Set struct{}

func (Set) Serialize(node *Node, value any) (any, error) {
	if value == nil || value == Null {
		return Null, nil
	}
	return toList(node, value)
}

func (Set) Deserialize(node *Node, value any) (any, error) {
	return toList(node, value)
}

// FileData passes uploaded file payloads through untouched.
type FileData struct{}

func (FileData) Serialize(node *Node, value any) (any, error) {
	if value == nil || value == Null {
		return Null, nil
	}
	return value, nil
}

func (FileData) Deserialize(node *Node, value any) (any, error) {
	return value, nil
}

func toInt(node *Node, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, &Invalid{Node: node.Name, Message: fmt.Sprintf("%q is not a number", v)}
		}
		return n, nil
	}
	return 0, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a number", value)}
}

func toFloat(node *Node, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &Invalid{Node: node.Name, Message: fmt.Sprintf("%q is not a number", v)}
		}
		return f, nil
	}
	return 0, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a number", value)}
}

func toBool(node *Node, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "true":
			return true, nil
		case "false", "":
			return false, nil
		}
		return false, &Invalid{Node: node.Name, Message: fmt.Sprintf("%q is not a boolean", v)}
	}
	return false, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a boolean", value)}
}

func toTime(node *Node, value any) (time.Time, bool, error) {
	if value == nil || value == Null {
		return time.Time{}, false, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return time.Time{}, false, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a time value", value)}
	}
	if t.IsZero() {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func toList(node *Node, value any) ([]any, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, &Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a sequence", value)}
	}
	return list, nil
}
