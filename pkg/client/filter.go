package client

import (
	"net/url"
	"strconv"
)

// FilterCriteria is a sparse set of listing constraints. A nil field means
// "no constraint"; an empty string is treated the same way so form state can
// be fed through unchanged. Range bounds are inclusive and independently
// optional, and a min greater than max is passed through uninterpreted.
type FilterCriteria struct {
	PropertyType *string
	City         *string
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *float64
	MaxBedrooms  *float64
	MinBathrooms *float64
	MaxBathrooms *float64
	MinSqft      *int
	MaxSqft      *int
}

// Param is one active constraint as a query parameter.
type Param struct {
	Key   string
	Value string
}

// Normalize returns only the active constraints as query parameters, in a
// fixed field order. Unset and empty values are dropped so the backend never
// sees a parameter for a constraint the user did not set. Normalization is
// idempotent: criteria parsed back from the result normalize identically.
func (c FilterCriteria) Normalize() []Param {
	params := make([]Param, 0, 10)

	appendString := func(key string, value *string) {
		if value != nil && *value != "" {
			params = append(params, Param{Key: key, Value: *value})
		}
	}
	appendFloat := func(key string, value *float64) {
		if value != nil {
			params = append(params, Param{Key: key, Value: strconv.FormatFloat(*value, 'f', -1, 64)})
		}
	}
	appendInt := func(key string, value *int) {
		if value != nil {
			params = append(params, Param{Key: key, Value: strconv.Itoa(*value)})
		}
	}

	appendString("propertyType", c.PropertyType)
	appendString("city", c.City)
	appendFloat("minPrice", c.MinPrice)
	appendFloat("maxPrice", c.MaxPrice)
	appendFloat("minBedrooms", c.MinBedrooms)
	appendFloat("maxBedrooms", c.MaxBedrooms)
	appendFloat("minBathrooms", c.MinBathrooms)
	appendFloat("maxBathrooms", c.MaxBathrooms)
	appendInt("minSqft", c.MinSqft)
	appendInt("maxSqft", c.MaxSqft)

	return params
}

// Values renders the normalized constraints as url.Values.
func (c FilterCriteria) Values() url.Values {
	values := url.Values{}
	for _, p := range c.Normalize() {
		values.Set(p.Key, p.Value)
	}
	return values
}

// ParseCriteria rebuilds criteria from previously normalized query values.
// Unparsable numeric values are dropped rather than guessed at.
func ParseCriteria(values url.Values) FilterCriteria {
	var c FilterCriteria

	if v := values.Get("propertyType"); v != "" {
		c.PropertyType = &v
	}
	if v := values.Get("city"); v != "" {
		c.City = &v
	}
	c.MinPrice = parseFloat(values.Get("minPrice"))
	c.MaxPrice = parseFloat(values.Get("maxPrice"))
	c.MinBedrooms = parseFloat(values.Get("minBedrooms"))
	c.MaxBedrooms = parseFloat(values.Get("maxBedrooms"))
	c.MinBathrooms = parseFloat(values.Get("minBathrooms"))
	c.MaxBathrooms = parseFloat(values.Get("maxBathrooms"))
	c.MinSqft = parseInt(values.Get("minSqft"))
	c.MaxSqft = parseInt(values.Get("maxSqft"))

	return c
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// Pointer helpers for building criteria literals.

func String(v string) *string {
	return &v
}

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}
