package vdom

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// Reserved attribute keys.
const (
	KeyAttr       = "key"
	BindingAttr   = "binding"
	StyleAttrKey  = "style"
	ClassNameAttr = "className"

	OnCreateAttr  = "oncreate"
	OnRefreshAttr = "onrefresh"
	OnRemoveAttr  = "onremove"
)

// IsTransient reports whether key is ignored when comparing component
// attributes ("$state", "_private").
func IsTransient(key string) bool {
	return key != "" && (key[0] == '$' || key[0] == '_')
}

// IsLifecycleKey reports whether key names a lifecycle hook.
func IsLifecycleKey(key string) bool {
	return key == OnCreateAttr || key == OnRefreshAttr || key == OnRemoveAttr
}

// IsEventKey reports whether key names a delegated event handler.
// Case-insensitive to catch onclick, onClick and ONCLICK alike.
func IsEventKey(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on") && !IsLifecycleKey(key)
}

// EventType returns the host event type for an event key ("onclick" -> "click").
func EventType(key string) string {
	return strings.ToLower(key[2:])
}

// AttrsEqual reports whether a and b are shallow-equal, ignoring transient keys.
func AttrsEqual(a, b Attrs) bool {
	for k, av := range a {
		if IsTransient(k) {
			continue
		}
		bv, ok := b[k]
		if !ok || !ValuesEqual(av, bv) {
			return false
		}
	}
	for k := range b {
		if IsTransient(k) {
			continue
		}
		if _, ok := a[k]; !ok {
			return false
		}
	}
	return true
}

// ValuesEqual compares two attribute values.
//
// Functions never compare equal: a handler closure may capture different
// state on every render even when its code is the same.
func ValuesEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	if reflect.TypeOf(a).Kind() == reflect.Func || (b != nil && reflect.TypeOf(b).Kind() == reflect.Func) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// AttrString converts an attribute value to its host string form.
func AttrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// funcName returns the symbol name of f, trimmed to package.Func.
func funcName(f any) string {
	fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
