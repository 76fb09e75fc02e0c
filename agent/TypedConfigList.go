package agent

import (
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// TypedConfigList implements functionality for typing a ConfigList.
// In this way, a ConfigList can explicitly have its type stored so
// that when deserializing the ConfigList, we can deserialize it into
// its concrete type without knowing beforehand or declaring beforehand
// a variable of its concrete type.
type TypedConfigList struct {
	Type
	ConfigList
}

// NewTypedConfigList types the argument ConfigList and returns it
// as a TypedConfigList which explicitly holds its Type.
func NewTypedConfigList(c ConfigList) TypedConfigList {
	return TypedConfigList{Type: c.Type(), ConfigList: c}
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (j *TypedConfigList) UnmarshalJSON(data []byte) error {
	configs, typeName, err := unmarshalConfigList(
		data,
		"Type",
		"ConfigList")
	if err != nil {
		return err
	}

	j.Type = typeName
	j.ConfigList = configs

	return nil
}

// unmarshalConfig uses reflection to unmarshall a Config into its
// concrete type. Both the Config and its Type are returned.
func unmarshalConfigList(data []byte, typeJsonField, valueJsonField string) (ConfigList, Type, error) {
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", err
	}

	name, ok := m[typeJsonField].(string)
	if !ok {
		return nil, "", fmt.Errorf("unmarshalConfigList: missing field %v",
			typeJsonField)
	}

	typeName := Type(name)
	value, err := newConfigList(typeName)
	if err != nil {
		return nil, "", err
	}

	valueBytes, err := json.Marshal(m[valueJsonField])
	if err != nil {
		return nil, "", err
	}

	if err = json.Unmarshal(valueBytes, value); err != nil {
		return nil, "", err
	}
	concreteValue := reflect.ValueOf(value).Elem().Interface().(ConfigList)

	return concreteValue, typeName, nil
}

// yamlConfigList is the layout of a TypedConfigList in YAML documents
type yamlConfigList struct {
	Type    Type      `yaml:"type"`
	Configs yaml.Node `yaml:"configs"`
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (j *TypedConfigList) UnmarshalYAML(node *yaml.Node) error {
	var raw yamlConfigList
	if err := node.Decode(&raw); err != nil {
		return err
	}

	value, err := newConfigList(raw.Type)
	if err != nil {
		return err
	}
	if err := raw.Configs.Decode(value); err != nil {
		return fmt.Errorf("unmarshalYAML: %v", err)
	}

	j.Type = raw.Type
	j.ConfigList = reflect.ValueOf(value).Elem().Interface().(ConfigList)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface
func (j TypedConfigList) MarshalYAML() (interface{}, error) {
	return struct {
		Type    Type       `yaml:"type"`
		Configs ConfigList `yaml:"configs"`
	}{j.Type, j.ConfigList}, nil
}

// newConfigList returns a pointer to a new zero ConfigList of the
// concrete type registered with typeName
func newConfigList(typeName Type) (interface{}, error) {
	ty, found := registry[typeName]
	if !found {
		return nil, fmt.Errorf("newConfigList: agent type %v not "+
			"registered, have %v", typeName, Types())
	}
	return reflect.New(ty).Interface(), nil
}

// At returns the Config at index i in the TypedConfigList
func (t *TypedConfigList) At(i int) Config {
	return ConfigAt(i, t.ConfigList)
}
