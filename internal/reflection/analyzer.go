package reflection

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"go.uber.org/dig"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Analyzer performs reflection-based analysis of constructors and callables.
// It caches analysis results for performance.
type Analyzer struct {
	mu    sync.RWMutex
	cache map[reflect.Type]*ConstructorInfo
}

// ConstructorInfo contains analyzed information about a function.
type ConstructorInfo struct {
	Type           reflect.Type
	Value          reflect.Value
	Parameters     []ParameterInfo
	ResultType     reflect.Type // First non-error return, nil when the function only returns error or nothing
	NumReturns     int
	IsParamObject  bool // Single parameter struct embedding dig.In
	HasErrorReturn bool // Returns error as last value
	IsVariadic     bool
}

// ParameterInfo describes a function parameter or a field in an In struct.
type ParameterInfo struct {
	Type     reflect.Type
	Name     string // Field-derived or registration-supplied name, empty if unnamed
	Index    int    // Position among injectable parameters
	Field    int    // Struct field index for param objects, -1 otherwise
	Optional bool   // From optional:"true" tag, or the variadic tail
	Variadic bool
}

// TagInfo contains parsed struct tag information.
type TagInfo struct {
	Optional bool
	Name     string
	Ignore   bool
}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{
		cache: make(map[reflect.Type]*ConstructorInfo),
	}
}

// Analyze analyzes a function and extracts its parameter and return information.
func (a *Analyzer) Analyze(fn any) (*ConstructorInfo, error) {
	if fn == nil {
		return nil, fmt.Errorf("function cannot be nil")
	}

	val := reflect.ValueOf(fn)
	if val.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a function, got %T", fn)
	}
	if val.IsNil() {
		return nil, fmt.Errorf("function cannot be nil")
	}

	// Analysis depends only on the signature. Method values produced by
	// reflect share one code pointer, so the type is the cache key.
	cacheKey := val.Type()

	a.mu.RLock()
	if cached, ok := a.cache[cacheKey]; ok {
		a.mu.RUnlock()
		return cached.bind(val), nil
	}
	a.mu.RUnlock()

	info := &ConstructorInfo{
		Type:       val.Type(),
		Value:      val,
		NumReturns: val.Type().NumOut(),
		IsVariadic: val.Type().IsVariadic(),
	}

	if err := a.analyzeParameters(info); err != nil {
		return nil, fmt.Errorf("failed to analyze parameters: %w", err)
	}

	a.analyzeReturns(info)

	a.mu.Lock()
	a.cache[cacheKey] = info
	a.mu.Unlock()

	return info.bind(val), nil
}

// bind returns a copy of the analysis attached to a concrete function value.
func (info *ConstructorInfo) bind(val reflect.Value) *ConstructorInfo {
	cp := *info
	cp.Value = val
	return &cp
}

// analyzeParameters analyzes function parameters or In struct fields.
func (a *Analyzer) analyzeParameters(info *ConstructorInfo) error {
	fnType := info.Type

	if fnType.NumIn() == 1 && !fnType.IsVariadic() && dig.IsIn(fnType.In(0)) {
		info.IsParamObject = true
		return a.analyzeParamObject(info, fnType.In(0))
	}

	info.Parameters = make([]ParameterInfo, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		variadic := fnType.IsVariadic() && i == fnType.NumIn()-1
		info.Parameters[i] = ParameterInfo{
			Type:     fnType.In(i),
			Index:    i,
			Field:    -1,
			Optional: variadic,
			Variadic: variadic,
		}
	}

	return nil
}

// analyzeParamObject analyzes an In struct's fields.
func (a *Analyzer) analyzeParamObject(info *ConstructorInfo, structType reflect.Type) error {
	if structType.Kind() == reflect.Pointer {
		return fmt.Errorf("In parameter must be passed by value, got %v", structType)
	}

	params := make([]ParameterInfo, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Anonymous && dig.IsIn(field.Type) {
			continue
		}

		if !field.IsExported() {
			return fmt.Errorf("unexported field %q in %v", field.Name, structType)
		}

		tagInfo := ParseFieldTags(field.Tag)
		if tagInfo.Ignore {
			continue
		}

		name := tagInfo.Name
		if name == "" {
			name = lowerFirst(field.Name)
		}

		params = append(params, ParameterInfo{
			Type:     field.Type,
			Name:     name,
			Index:    len(params),
			Field:    i,
			Optional: tagInfo.Optional,
		})
	}

	info.Parameters = params
	return nil
}

// analyzeReturns records the primary result type and the error convention.
func (a *Analyzer) analyzeReturns(info *ConstructorInfo) {
	fnType := info.Type
	n := fnType.NumOut()
	if n == 0 {
		return
	}

	if fnType.Out(n-1).Implements(errType) {
		info.HasErrorReturn = true
	}

	if info.HasErrorReturn && n == 1 {
		return
	}

	info.ResultType = fnType.Out(0)
}

// ParseFieldTags parses struct field tags for injection annotations.
func ParseFieldTags(tag reflect.StructTag) TagInfo {
	info := TagInfo{}

	if val, ok := tag.Lookup("optional"); ok {
		info.Optional = val == "true"
	}

	if val, ok := tag.Lookup("param"); ok {
		info.Name = val
	}

	if val, ok := tag.Lookup("inject"); ok && val == "-" {
		info.Ignore = true
	}

	return info
}

// Embeds reports whether t (or the struct t points to) embeds the embedded
// type, by value or by pointer, directly or through other embedded structs.
func Embeds(t, embedded reflect.Type) bool {
	return embeds(t, embedded, make(map[reflect.Type]bool))
}

func embeds(t, embedded reflect.Type, seen map[reflect.Type]bool) bool {
	if t == nil || embedded == nil {
		return false
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct || seen[t] {
		return false
	}
	seen[t] = true

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}
		if field.Type == embedded {
			return true
		}
		if field.Type.Kind() == reflect.Pointer && field.Type.Elem() == embedded {
			return true
		}
		if embeds(field.Type, embedded, seen) {
			return true
		}
	}

	return false
}

// IsObject reports whether v carries identity or structure of its own, as
// opposed to a plain scalar, string, slice or array.
func IsObject(v any) bool {
	if v == nil {
		return false
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Pointer, reflect.Struct, reflect.Map, reflect.Func, reflect.Chan,
		reflect.Interface, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	// Keep acronyms readable: "DB" -> "db", "URLPath" -> "urlPath".
	upper := 0
	for _, c := range s {
		if !unicode.IsUpper(c) {
			break
		}
		upper++
	}
	if upper > 1 {
		if upper == utf8.RuneCountInString(s) {
			return strings.ToLower(s)
		}
		prefix := []rune(s)[:upper-1]
		return strings.ToLower(string(prefix)) + string([]rune(s)[upper-1:])
	}

	return string(unicode.ToLower(r)) + s[size:]
}
