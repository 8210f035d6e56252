package system

import (
	"github.com/pdxgo/playdate/callbacks"
	"github.com/pdxgo/playdate/host"
)

// MenuItem is an entry added to the System Menu. Its closure runs through
// the game's Callbacks collection when the player chooses it; hold the item
// for as long as it should stay in the menu, then Remove it.
type MenuItem struct {
	s   *System
	ref host.MenuItemRef
	reg *callbacks.Registered
}

func (s *System) nextMenuKey() uintptr {
	s.menuKey++
	return s.menuKey
}

// NewActionItem adds a plain menu item. cb runs via cbs.Run when chosen.
func NewActionItem[T any](s *System, title string, cbs *callbacks.Callbacks[T], cb func(T)) *MenuItem {
	k := s.nextMenuKey()
	fn, reg := cbs.AddMenuItem(k, cb)
	return &MenuItem{s: s, ref: s.h.AddMenuItem(title, k, fn), reg: reg}
}

// NewCheckmarkItem adds a menu item with a checkbox. The closure receives
// the game state; read the checked state with Value.
func NewCheckmarkItem[T any](s *System, title string, checked bool, cbs *callbacks.Callbacks[T], cb func(T)) *MenuItem {
	k := s.nextMenuKey()
	fn, reg := cbs.AddMenuItem(k, cb)
	return &MenuItem{s: s, ref: s.h.AddCheckmarkMenuItem(title, checked, k, fn), reg: reg}
}

// NewOptionsItem adds a menu item cycling through options. Value indexes
// into options.
func NewOptionsItem[T any](s *System, title string, options []string, cbs *callbacks.Callbacks[T], cb func(T)) *MenuItem {
	k := s.nextMenuKey()
	fn, reg := cbs.AddMenuItem(k, cb)
	return &MenuItem{s: s, ref: s.h.AddOptionsMenuItem(title, options, k, fn), reg: reg}
}

// SetTitle changes the item's menu text.
func (m *MenuItem) SetTitle(title string) {
	m.s.h.SetMenuItemTitle(m.ref, title)
}

// Value returns the item's current value: 0/1 for checkmark items, the
// option index for options items.
func (m *MenuItem) Value() int32 {
	return m.s.h.MenuItemValue(m.ref)
}

// SetValue sets the item's value.
func (m *MenuItem) SetValue(v int32) {
	m.s.h.SetMenuItemValue(m.ref, v)
}

// Remove takes the item out of the System Menu and releases its closure.
// A stale host callback for the removed item finds no registration.
func (m *MenuItem) Remove() {
	if m.reg == nil {
		return
	}
	m.s.h.RemoveMenuItem(m.ref)
	m.reg.Remove()
	m.reg = nil
}
