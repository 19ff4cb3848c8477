package course

import "fmt"

// ModuleIndex is the ordered, immutable module list of a course.
type ModuleIndex struct {
	modules []Module
}

// NewModuleIndex copies titles and bodies in order and assigns ordinals by position.
func NewModuleIndex(modules []Module) *ModuleIndex {
	ms := make([]Module, len(modules))
	for i, m := range modules {
		m.Ordinal = i
		ms[i] = m
	}
	return &ModuleIndex{modules: ms}
}

// Len returns the number of modules.
func (idx *ModuleIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.modules)
}

// At returns the module at ordinal.
func (idx *ModuleIndex) At(ordinal int) (Module, error) {
	if ordinal < 0 || ordinal >= idx.Len() {
		return Module{}, fmt.Errorf("module %d of %d: %w", ordinal, idx.Len(), ErrIndexOutOfRange)
	}
	return idx.modules[ordinal], nil
}

// All returns a copy of the modules in learning order.
func (idx *ModuleIndex) All() []Module {
	if idx == nil {
		return nil
	}
	return append([]Module(nil), idx.modules...)
}

// ModuleIndexState tracks which module, if any, is expanded.
// The zero value has every module collapsed.
type ModuleIndexState struct {
	open    int
	hasOpen bool
}

// Toggle collapses ordinal if it is open, otherwise expands it and
// collapses whatever was open before.
func (s *ModuleIndexState) Toggle(idx *ModuleIndex, ordinal int) error {
	if ordinal < 0 || ordinal >= idx.Len() {
		return fmt.Errorf("toggle module %d of %d: %w", ordinal, idx.Len(), ErrIndexOutOfRange)
	}
	if s.hasOpen && s.open == ordinal {
		s.hasOpen = false
		s.open = 0
		return nil
	}
	s.open = ordinal
	s.hasOpen = true
	return nil
}

// IsOpen reports whether ordinal is the expanded module.
func (s *ModuleIndexState) IsOpen(ordinal int) bool {
	return s.hasOpen && s.open == ordinal
}

// Open returns the expanded ordinal, if any.
func (s *ModuleIndexState) Open() (int, bool) {
	return s.open, s.hasOpen
}
