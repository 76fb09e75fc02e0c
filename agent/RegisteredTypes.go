package agent

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
)

// Type names a kind of agent. A Config of a given Type creates Agents
// of that kind, and serialized ConfigLists record their Type so they
// can be decoded into the right concrete list.
type Type string

const (
	EGreedyQLearningTabular Type = "EGreedyQLearning-Tabular"
)

// registry maps each Type to the concrete ConfigList type that
// decodes it. Agent packages fill it from their init functions, so
// this package never imports them.
var registry = make(map[Type]reflect.Type)

// Register records that serialized ConfigLists of agentType decode
// into the concrete type of configs. Register panics if agentType is
// already registered with a different type.
func Register(agentType Type, configs ConfigList) {
	ty := reflect.TypeOf(configs)
	if prev, ok := registry[agentType]; ok && prev != ty {
		panic(fmt.Sprintf("register: agent type %v already registered "+
			"with %v", agentType, prev))
	}

	slog.Debug("registering agent type", "type", agentType, "configs", ty)
	registry[agentType] = ty
}

// Registered returns whether agentType has been registered
func Registered(agentType Type) bool {
	_, ok := registry[agentType]
	return ok
}

// Types returns the registered agent types in sorted order
func Types() []Type {
	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
