// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package power

import (
	"sync"
)

type Runtime interface {
	IsPowered() bool
	// Acquire takes a reference only when the device is already in use.
	// The returned release must be called once when ok is true.
	Acquire() (release func(), ok bool)
}

// Counter is a usage counted power domain. The device is powered while
// the count is above zero.
type Counter struct {
	mu    sync.Mutex
	usage int
}

// Get powers the device up, or adds a reference when already powered.
func (c *Counter) Get() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.usage++
}

func (c *Counter) Put() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.usage > 0 {
		c.usage--
	}
}

func (c *Counter) IsPowered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage > 0
}

func (c *Counter) Usage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage
}

func (c *Counter) Acquire() (func(), bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.usage == 0 {
		return nil, false
	}
	c.usage++
	var once sync.Once
	return func() { once.Do(c.Put) }, true
}

// AlwaysOn is a power domain which is never switched off.
type AlwaysOn struct{}

func (AlwaysOn) IsPowered() bool {
	return true
}

func (AlwaysOn) Acquire() (func(), bool) {
	return func() {}, true
}
