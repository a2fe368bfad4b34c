// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/elliotchance/orderedmap/v3"
)

type Function uint32

const (
	FunctionPixelFormatter Function = 0x4002
)

type PadFlag uint32

const (
	PadFlagSink   PadFlag = 1 << 0
	PadFlagSource PadFlag = 1 << 1
)

type Entity struct {
	Name     string
	Function Function
	Pads     []PadFlag
}

type Registrar interface {
	Register(e Entity) error
	Unregister(name string)
}

// Graph is an in-memory registry of entities, names are unique.
type Graph struct {
	mu       sync.Mutex
	entities *orderedmap.OrderedMap[string, Entity]
}

func NewGraph() *Graph {
	return &Graph{entities: orderedmap.NewOrderedMap[string, Entity]()}
}

func (g *Graph) Register(e Entity) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(e.Name) == 0 {
		return fmt.Errorf("entity name missing")
	}
	if g.entities.Has(e.Name) {
		return fmt.Errorf("entity exists: %q", e.Name)
	}
	g.entities.Set(e.Name, e)
	slog.Debug(fmt.Sprintf("media: register %s (function 0x%04x, %d pads)", e.Name, e.Function, len(e.Pads)))
	return nil
}

func (g *Graph) Unregister(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.entities.Delete(name) {
		slog.Debug(fmt.Sprintf("media: unregister %s", name))
	}
}

func (g *Graph) Entity(name string) (Entity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.entities.Get(name)
}

// Entities lists the registered entities in registration order.
func (g *Graph) Entities() []Entity {
	g.mu.Lock()
	defer g.mu.Unlock()
	l := make([]Entity, 0, g.entities.Len())
	for e := range g.entities.Values() {
		l = append(l, e)
	}
	return l
}
