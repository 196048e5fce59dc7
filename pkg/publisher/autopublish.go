package publisher

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// tag is the struct tag key auto-publish looks for: a derive-style
// replacement for hand-written "auto-publish"/"hide" field annotations,
// synthesizing the descriptor list directly from struct tags.
const tag = "objectgraph"

// AutoPublish walks the exported fields of the struct pointed to by
// target, publishing one descriptor per field tagged `objectgraph:"publish"`
// into c. Composite object fields (struct pointers implementing Publisher)
// that are currently non-nil have their ownership claimed by owner: if
// it's initialized, it's mine.
//
// Tag forms recognized:
//
//	`objectgraph:"publish"`              publish under the Go field name
//	`objectgraph:"publish,name=foo"`     publish under the name "foo"
//	`objectgraph:"publish,kind=wchar"`   publish a string field as a wchar
//	                                      array instead of the default char
//	`objectgraph:"publish,kind=dchar"`   publish a string field as a dchar
//	                                      array
//	`objectgraph:"hide"`                  remove an already-published descriptor
//	                                      of the same name (used by embedding
//	                                      derived types to suppress an ancestor's
//	                                      publication)
//
// target must be a non-nil pointer to a struct.
func AutoPublish(c *Collector, owner any, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("publisher: AutoPublish requires a non-nil pointer to a struct, got %T", target)
	}
	sv := v.Elem()
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		spec, ok := parseTag(field.Tag.Get(tag))
		if !ok {
			continue
		}
		if spec.hide {
			c.Hide(spec.name(field.Name))
			continue
		}

		fv := sv.Field(i)
		name := spec.name(field.Name)

		if fv.Kind() == reflect.Ptr && isPublisherPointer(fv.Type()) {
			if !fv.IsNil() {
				Claim(owner, fv.Interface())
			}
			d := descriptor.FromAccessors[any](name, rtti.Tag{Kind: rtti.Object}, owner,
				func() any { return fv.Interface() },
				func(v any) {
					if v == nil {
						fv.Set(reflect.Zero(fv.Type()))
						return
					}
					fv.Set(reflect.ValueOf(v))
				},
			)
			c.Add(d)
			continue
		}

		kind, isArray, err := kindOf(fv.Type())
		if err != nil {
			return fmt.Errorf("publisher: field %s.%s: %w", st.Name(), field.Name, err)
		}
		if spec.kind != "" {
			kind, err = charKindOverride(fv.Kind(), spec.kind)
			if err != nil {
				return fmt.Errorf("publisher: field %s.%s: %w", st.Name(), field.Name, err)
			}
		}
		d := fieldDescriptor(name, rtti.Tag{Kind: kind, IsArray: isArray}, owner, fv)
		c.Add(d)
	}
	return nil
}

type tagSpec struct {
	publish  bool
	hide     bool
	override string
	kind     string
}

func (s tagSpec) name(fieldName string) string {
	if s.override != "" {
		return s.override
	}
	return fieldName
}

func parseTag(raw string) (tagSpec, bool) {
	if raw == "" || raw == "-" {
		return tagSpec{}, false
	}
	var spec tagSpec
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "publish":
			spec.publish = true
		case part == "hide":
			spec.hide = true
		case strings.HasPrefix(part, "name="):
			spec.override = strings.TrimPrefix(part, "name=")
		case strings.HasPrefix(part, "kind="):
			spec.kind = strings.TrimPrefix(part, "kind=")
		}
	}
	return spec, spec.publish || spec.hide
}

func isPublisherPointer(t reflect.Type) bool {
	if t.Kind() != reflect.Ptr {
		return false
	}
	pubType := reflect.TypeOf((*Publisher)(nil)).Elem()
	return t.Implements(pubType)
}

// kindOf maps a Go field type to an RTTI tag. Strings and rune/byte slices
// map to character array kinds; plain slices of a primitive map to that
// primitive's array form.
func kindOf(t reflect.Type) (rtti.Kind, bool, error) {
	switch t.Kind() {
	case reflect.Bool:
		return rtti.Bool, false, nil
	case reflect.Int8:
		return rtti.Byte, false, nil
	case reflect.Uint8:
		return rtti.UByte, false, nil
	case reflect.Int16:
		return rtti.Short, false, nil
	case reflect.Uint16:
		return rtti.UShort, false, nil
	case reflect.Int32:
		return rtti.Int, false, nil
	case reflect.Uint32:
		return rtti.UInt, false, nil
	case reflect.Int, reflect.Int64:
		return rtti.Long, false, nil
	case reflect.Uint, reflect.Uint64:
		return rtti.ULong, false, nil
	case reflect.Float32:
		return rtti.Float, false, nil
	case reflect.Float64:
		return rtti.Double, false, nil
	case reflect.String:
		return rtti.Char, true, nil
	case reflect.Slice:
		elemKind, _, err := kindOf(t.Elem())
		if err != nil {
			return rtti.Invalid, false, err
		}
		return elemKind, true, nil
	default:
		return rtti.Invalid, false, fmt.Errorf("unsupported field type %s", t)
	}
}

// charKindOverride resolves a tag's "kind=" hint for a string field, letting
// it publish as wchar or dchar instead of kindOf's default char mapping.
func charKindOverride(goKind reflect.Kind, hint string) (rtti.Kind, error) {
	if goKind != reflect.String {
		return rtti.Invalid, fmt.Errorf("kind=%s only applies to string fields", hint)
	}
	switch hint {
	case "char":
		return rtti.Char, nil
	case "wchar":
		return rtti.WChar, nil
	case "dchar":
		return rtti.DChar, nil
	default:
		return rtti.Invalid, fmt.Errorf("unrecognized kind hint %q", hint)
	}
}

// fieldDescriptor builds a descriptor whose get/set operate on fv via
// reflection, erased to `any` the same way descriptor.FromValue erases a
// concrete *T. Primitive fields are compared before writing; the reflect
// path can't use Go's comparable constraint generically, so it reimplements
// the no-op check via reflect.DeepEqual.
func fieldDescriptor(name string, tg rtti.Tag, declarator any, fv reflect.Value) *descriptor.Descriptor {
	d := descriptor.FromAccessors[any](name, tg, declarator,
		func() any { return fv.Interface() },
		func(v any) {
			rv := reflect.ValueOf(v)
			if !rv.IsValid() {
				rv = reflect.Zero(fv.Type())
			}
			if reflect.DeepEqual(fv.Interface(), rv.Interface()) {
				return
			}
			fv.Set(rv)
		},
	)
	return d
}
