package agent

import (
	"fmt"
	"reflect"
)

// ConfigList stores a number of Configs. Instead of storing a slice of
// Configs, a ConfigList stores a slice of values for each field of the
// Config it describes, and the list consists of every combination of
// field values.
//
// Each field of a ConfigList must be a slice whose name and element
// type match a field of the Config returned by the list's Config
// method.
type ConfigList interface {
	// Config returns an empty Config of the type stored by the list
	Config() Config

	// Type returns the type of agent created by Configs in the list
	Type() Type

	// NumFields returns the number of settable fields
	NumFields() int

	// Len returns the number of Configs stored by the list
	Len() int
}

// ConfigAt returns the Config at index i in the ConfigList. Configs are
// enumerated with the last field of the ConfigList varying fastest.
func ConfigAt(i int, c ConfigList) Config {
	if i < 0 || i >= c.Len() {
		panic(fmt.Sprintf("configAt: index %d out of range [0, %d)", i,
			c.Len()))
	}

	list := reflect.ValueOf(c)
	config := reflect.New(reflect.TypeOf(c.Config())).Elem()

	for field := list.NumField() - 1; field >= 0; field-- {
		values := list.Field(field)
		name := list.Type().Field(field).Name

		index := i % values.Len()
		i /= values.Len()

		target := config.FieldByName(name)
		if !target.IsValid() {
			panic(fmt.Sprintf("configAt: config %T has no field %v",
				c.Config(), name))
		}
		target.Set(values.Index(index))
	}

	return config.Interface().(Config)
}
