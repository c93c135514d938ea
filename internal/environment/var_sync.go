package environment

import (
	"os"

	"mvdan.cc/sh/v3/expand"
)

// DynamicEnviron implements expand.Environ so the rc interpreter sees both the
// process environment and the variables acinput defines before loading
// configuration, such as ACINPUT_BUILD_VERSION.
type DynamicEnviron struct {
	systemEnv expand.Environ
	vars      map[string]string
}

func NewDynamicEnviron() *DynamicEnviron {
	return &DynamicEnviron{
		systemEnv: expand.ListEnviron(os.Environ()...),
		vars:      make(map[string]string),
	}
}

// Get checks acinput variables first, then the system environment
func (de *DynamicEnviron) Get(name string) expand.Variable {
	if value, exists := de.vars[name]; exists {
		return expand.Variable{
			Exported: true,
			Kind:     expand.String,
			Str:      value,
		}
	}

	return de.systemEnv.Get(name)
}

func (de *DynamicEnviron) Each(fn func(name string, vr expand.Variable) bool) {
	for name, value := range de.vars {
		if !fn(name, expand.Variable{
			Exported: true,
			Kind:     expand.String,
			Str:      value,
		}) {
			return
		}
	}

	de.systemEnv.Each(func(name string, vr expand.Variable) bool {
		if _, shadowed := de.vars[name]; !shadowed {
			return fn(name, vr)
		}
		return true
	})
}

func (de *DynamicEnviron) UpdateVar(name, value string) {
	de.vars[name] = value
}
