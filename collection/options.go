package collection

import (
	"log/slog"
	"reflect"
	"strings"
)

// DefaultIDProperty is the identity attribute used when Options.IDProperty
// is empty.
const DefaultIDProperty = "id"

// PropertyFunc reads a named property off an item. The second return value
// reports whether the item carries that property at all.
type PropertyFunc[T any] func(item T, property string) (any, bool)

// ContentFunc derives the full-text content of an item for search indexing.
// Returning false skips (or removes) the item's search entry.
type ContentFunc[T any] func(item T) (string, bool)

// TagConfig configures a single tag.
type TagConfig struct {
	// Cardinality is the maximum number of tagged positions.
	// Zero or negative means unbounded.
	Cardinality int `json:"cardinality"`
}

// Options configures a Collection. The zero value is usable for
// map[string]any items: unbounded capacity, uniqueness enforced,
// identity attribute "id", non-cyclic navigation, unconfigured tags allowed.
type Options[T any] struct {
	// Capacity is the maximum item count. Zero or negative means unbounded.
	Capacity int

	// AllowDuplicates disables uniqueness enforcement on the identity
	// attribute. Default false (uniqueness enforced).
	AllowDuplicates bool

	// IDProperty is the identity attribute name. Default "id".
	IDProperty string

	// Cyclic makes Next/Previous wrap around at the sequence ends.
	Cyclic bool

	// StrictTags rejects (panics on) tag mutations naming a tag that was
	// never configured. Default false: unknown tags auto-initialize with
	// unbounded cardinality.
	StrictTags bool

	// Tags pre-registers tag configurations.
	Tags map[string]TagConfig

	// Less is an optional total-order comparator applied after every
	// insertion and used as the default for Sort.
	Less func(a, b T) bool

	// Normalize is applied to every item before insertion.
	Normalize func(item T) T

	// Property reads named properties off items. If nil, MapProperty is
	// used, which supports map[string]any items.
	Property PropertyFunc[T]

	// Search is an optional full-text search adapter. Requires Content.
	// Search wiring is construction-only; there is no post-construction
	// setter.
	Search SearchAdapter

	// Content derives searchable text from an item. Required when Search
	// is set.
	Content ContentFunc[T]

	// Publisher receives change notifications. If nil, an in-process
	// synchronous publisher is created.
	Publisher Publisher

	// Logger receives internal diagnostics such as restore failures and
	// search adapter errors. If nil, diagnostics are discarded.
	Logger *slog.Logger
}

// MapProperty returns a PropertyFunc that reads properties from items whose
// dynamic type is map[string]any. Items of any other type report no
// properties.
func MapProperty[T any]() PropertyFunc[T] {
	return func(item T, property string) (any, bool) {
		m, ok := any(item).(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[property]
		return v, ok
	}
}

// FieldProperty returns a PropertyFunc that reads exported struct fields by
// json tag or field name (case-insensitive fallback). Pointer items are
// dereferenced; nil pointers and non-struct items report no properties.
func FieldProperty[T any]() PropertyFunc[T] {
	return func(item T, property string) (any, bool) {
		v := reflect.ValueOf(item)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil, false
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return nil, false
		}
		t := v.Type()
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				if base, _, _ := strings.Cut(tag, ","); base != "" && base != "-" {
					name = base
				}
			}
			if name == property || strings.EqualFold(f.Name, property) {
				return v.Field(i).Interface(), true
			}
		}
		return nil, false
	}
}
