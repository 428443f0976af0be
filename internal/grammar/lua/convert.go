package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// toGoValue converts a Lua value to its Go equivalent. Tables become
// []any when their keys are 1..n, maps otherwise; functions and userdata
// convert to nil. visited breaks table cycles.
func toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.Len(); n > 0 && isArray(t, n) {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGoValue(v, visited)
	})
	return m
}

// isArray reports whether t's keys are exactly the integers 1..n.
func isArray(t *lua.LTable, n int) bool {
	count := 0
	ok := true
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, isNum := k.(lua.LNumber)
		if !isNum {
			ok = false
			return
		}
		i := int(kn)
		if float64(i) != float64(kn) || i < 1 || i > n {
			ok = false
		}
	})
	return ok && count == n
}
