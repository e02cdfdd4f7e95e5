// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/pkdiff/pkdiff/internal/log"
)

// schemaTag is one documented field of a structured output document.
type schemaTag struct {
	Name string
	Kind string
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	return fmt.Sprintf("%-36s %s", t.Name, t.Kind)
}

// maxSchemaDepth limits the depth of schema walking to prevent infinite
// recursion.
const maxSchemaDepth = 4

// keyedTypes lists types that marshal as objects keyed by data rather than
// by field name, with the key path they use and the value type they hold.
var keyedTypes = map[reflect.Type]struct {
	keys string
	elem reflect.Type
}{
	reflect.TypeOf(Differences{}): {keys: "<sequence>.<branch>", elem: reflect.TypeOf(Pair{})},
}

// DumpSchema writes the sorted field paths of the JSON and YAML document
// built from typ to the provided writer. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	prefix := ""
	if typ.Kind() == reflect.Slice {
		prefix = "[]"
		typ = typ.Elem()
	}

	tags := dumpSchemaWalker(prefix, typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// dumpSchemaWalker recursively walks a struct type discovering json tags.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	tags := make([]schemaTag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok || tagValue == "-" {
			continue
		}
		name := strings.Split(tagValue, ",")[0]
		if holder != "" {
			name = holder + "." + name
		}

		ft := field.Type
		nullable := ft.Kind() == reflect.Ptr
		if nullable {
			ft = ft.Elem()
		}

		if keyed, ok := keyedTypes[ft]; ok {
			tags = append(tags, schemaTag{Name: name, Kind: "object"})
			if depth < maxSchemaDepth {
				tags = append(tags, dumpSchemaWalker(name+"."+keyed.keys, keyed.elem, depth+1)...)
			}
			continue
		}

		kind := jsonKind(ft)
		if nullable {
			kind += "|null"
		}
		tags = append(tags, schemaTag{Name: name, Kind: kind})

		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			tags = append(tags, dumpSchemaWalker(name, ft, depth+1)...)
		}
	}

	return tags
}

// jsonKind names the JSON type encoding/json produces for t.
func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
