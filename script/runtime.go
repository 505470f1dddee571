package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var ErrNilRuntime = errors.New("script: nil runtime")

// Runtime runs one tengo script. The script declares any of the hooks
//
//	init(engine, state)
//	update(engine, state, dt)
//	on_collision(engine, state, contacts)
//	after_physics(engine, state, dt)
//
// as top-level functions. Top-level code re-runs before every hook, so
// anything that must persist belongs in `state`.
type Runtime struct {
	name     string
	compiled *tengo.Compiled
	hooks    map[string]bool
	state    *tengo.Map
	queue    queue
}

// NewRuntime compiles src. name is used in logs and errors only.
func NewRuntime(name string, src []byte) (*Runtime, error) {
	hooks, err := declaredHooks(src)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchSource(hooks)))
	_ = script.Add("__hook", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__arg", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: %s: compile: %w", name, err)
	}

	return &Runtime{
		name:     name,
		compiled: compiled,
		hooks:    hooks,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *Runtime) Name() string {
	if rt == nil {
		return ""
	}
	return rt.name
}

// Declares reports whether the script defines hook.
func (rt *Runtime) Declares(hook string) bool {
	if rt == nil {
		return false
	}
	return rt.hooks[hook]
}

// State returns the script's persistent state as Go values.
func (rt *Runtime) State() map[string]any {
	if rt == nil {
		return nil
	}
	out, _ := objectToAny(rt.state).(map[string]any)
	return out
}

// Dispatch runs the hook for ev and returns the commands it queued, in
// issue order. Undeclared hooks are a no-op. A script error still returns
// whatever was queued before it.
func (rt *Runtime) Dispatch(host Host, ev Event) ([]Command, error) {
	if rt == nil || rt.compiled == nil {
		return nil, ErrNilRuntime
	}
	if host == nil {
		return nil, fmt.Errorf("script: %s: nil host", rt.name)
	}

	var arg tengo.Object = tengo.UndefinedValue
	switch e := ev.(type) {
	case Init:
	case Update:
		arg = &tengo.Float{Value: e.DT}
	case Collisions:
		arg = ContactsObject(e.Contacts)
	case AfterPhysics:
		arg = &tengo.Float{Value: e.DT}
	default:
		return nil, fmt.Errorf("script: %s: unknown event %T", rt.name, ev)
	}

	hook := ev.hook()
	if !rt.hooks[hook] {
		return nil, nil
	}

	engine := buildEngine(rt.name, host, &rt.queue)
	err := rt.run(hook, engine, arg)
	commands := rt.queue.drain()
	if err != nil {
		return commands, fmt.Errorf("script: %s: %s: %w", rt.name, hook, err)
	}
	return commands, nil
}

func (rt *Runtime) run(hook string, engine *tengo.ImmutableMap, arg tengo.Object) error {
	if err := rt.compiled.Set("__hook", hook); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__arg", arg); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// declaredHooks runs src once on its own and reports which hooks it defines
// as functions.
func declaredHooks(src []byte) (map[string]bool, error) {
	probe := tengo.NewScript(src)
	probe.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := probe.Run()
	if err != nil {
		return nil, err
	}
	hooks := make(map[string]bool, len(Hooks))
	for _, name := range Hooks {
		if !compiled.IsDefined(name) {
			continue
		}
		if _, ok := compiled.Get(name).Object().(*tengo.CompiledFunction); ok {
			hooks[name] = true
		}
	}
	return hooks, nil
}

func dispatchSource(hooks map[string]bool) string {
	var b strings.Builder
	for _, name := range Hooks {
		if !hooks[name] {
			continue
		}
		if name == "init" {
			fmt.Fprintf(&b, "if __hook == %q { %s(__engine, __state) }\n", name, name)
			continue
		}
		fmt.Fprintf(&b, "if __hook == %q { %s(__engine, __state, __arg) }\n", name, name)
	}
	return b.String()
}
